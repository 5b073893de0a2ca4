package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults
const (
	DefaultNutritionURL     = "https://trackapi.nutritionix.com/v2/natural/nutrients"
	DefaultRecipeServiceURL = "http://127.0.0.1:5000"
	DefaultUpstreamTimeout  = 30 * time.Second
	DefaultRateLimit        = 60
	DefaultRateWindow       = time.Minute
)

// Database drivers for the search activity log
const (
	DriverNone     = ""
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Upstream APIs
	NutritionURL     string
	NutritionAppID   string
	NutritionAppKey  string
	RecipeServiceURL string
	UpstreamTimeout  time.Duration

	// Activity log database. An empty driver disables the log.
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration. With neither URL nor host set, session state stays in memory.
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// HTTP surface
	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration

	LogLevel string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}

	// Load configuration based on environment
	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadShared reads the settings that come from plain environment variables everywhere
func loadShared(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.NutritionURL = getEnv("NUTRITION_API_URL", DefaultNutritionURL)
	cfg.RecipeServiceURL = getEnv("RECIPE_SERVICE_URL", DefaultRecipeServiceURL)
	cfg.UpstreamTimeout = getDuration("UPSTREAM_TIMEOUT", DefaultUpstreamTimeout)

	cfg.DBDriver = strings.ToLower(os.Getenv("DB_DRIVER"))
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "nutriscope.db")

	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisDB = getInt("REDIS_DB", 0)

	cfg.AllowedOrigins = splitList(os.Getenv("ALLOWED_ORIGINS"))
	cfg.RateLimit = getInt("RATE_LIMIT", DefaultRateLimit)
	cfg.RateWindow = getDuration("RATE_WINDOW", DefaultRateWindow)
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
}

// loadCIConfig loads configuration for CI using only environment variables
func loadCIConfig(cfg *Config) {
	loadShared(cfg)
	cfg.NutritionAppID = os.Getenv("NUTRITION_APP_ID")
	cfg.NutritionAppKey = os.Getenv("NUTRITION_APP_KEY")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
}

// loadDevConfig loads configuration for development. A .env file is read first
// when present; secrets fall back to environment variables.
func loadDevConfig(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	loadShared(cfg)
	cfg.NutritionAppID = secretOrEnv("nutrition_app_id", "NUTRITION_APP_ID")
	cfg.NutritionAppKey = secretOrEnv("nutrition_app_key", "NUTRITION_APP_KEY")
	cfg.DBPassword = secretOrEnv("db_password", "DB_PASSWORD")
	cfg.RedisPassword = secretOrEnv("redis_password", "REDIS_PASSWORD")
	return nil
}

// loadProdConfig loads configuration for production. Credentials come only from Docker secrets.
func loadProdConfig(cfg *Config) {
	loadShared(cfg)
	cfg.NutritionAppID = readSecret("nutrition_app_id")
	cfg.NutritionAppKey = readSecret("nutrition_app_key")
	cfg.DBPassword = readSecret("db_password")
	cfg.RedisPassword = readSecret("redis_password")
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN builds the connection string for the postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether Redis is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func secretOrEnv(secret, envVar string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return os.Getenv(envVar)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
