package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// secretSource names where a credential is expected to come from in env
func secretSource(env Environment, secret, envVar string) string {
	switch env {
	case CI:
		return envVar + " environment variable"
	case Production:
		return secret + " secret"
	default:
		return secret + " secret or " + envVar + " environment variable"
	}
}

// ValidateConfig checks if the configuration meets the requirements for its environment.
// Every problem is reported, not only the first.
func ValidateConfig(cfg *Config) error {
	env := cfg.Environment
	var errs []ValidationError

	if cfg.NutritionAppID == "" {
		errs = append(errs, ValidationError{"NutritionAppID", secretSource(env, "nutrition_app_id", "NUTRITION_APP_ID") + " is required"})
	}
	if cfg.NutritionAppKey == "" {
		errs = append(errs, ValidationError{"NutritionAppKey", secretSource(env, "nutrition_app_key", "NUTRITION_APP_KEY") + " is required"})
	}
	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"ServerPort", "SERVER_PORT is required"})
	}
	if cfg.UpstreamTimeout <= 0 {
		errs = append(errs, ValidationError{"UpstreamTimeout", "UPSTREAM_TIMEOUT must be positive"})
	}
	if cfg.RateLimit <= 0 || cfg.RateWindow <= 0 {
		errs = append(errs, ValidationError{"RateLimit", "RATE_LIMIT and RATE_WINDOW must be positive"})
	}

	switch cfg.DBDriver {
	case DriverNone, DriverSQLite:
	case DriverPostgres:
		required := []struct{ envVar, value string }{
			{"DB_HOST", cfg.DBHost},
			{"DB_USER", cfg.DBUser},
			{"DB_NAME", cfg.DBName},
		}
		for _, r := range required {
			if r.value == "" {
				errs = append(errs, ValidationError{r.envVar, "required environment variable " + r.envVar + " is not set"})
			}
		}
		if cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"DBPassword", secretSource(env, "db_password", "DB_PASSWORD") + " is required"})
		}
	default:
		errs = append(errs, ValidationError{"DBDriver", fmt.Sprintf("unsupported DB_DRIVER %q", cfg.DBDriver)})
	}

	// Production keeps session state in Redis so every instance sees it
	if env == Production && !cfg.RedisEnabled() {
		errs = append(errs, ValidationError{"RedisURL", "REDIS_URL or REDIS_HOST is required in production"})
	}

	if len(errs) > 0 {
		lines := make([]string, len(errs))
		for i, e := range errs {
			lines[i] = e.Error()
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
	}

	return nil
}
