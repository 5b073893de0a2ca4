package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/nutriscope/backend/config"
	"github.com/pageza/nutriscope/backend/internal/activity"
	"github.com/pageza/nutriscope/backend/internal/api"
	"github.com/pageza/nutriscope/backend/internal/database"
	"github.com/pageza/nutriscope/backend/internal/metrics"
	"github.com/pageza/nutriscope/backend/internal/middleware"
	"github.com/pageza/nutriscope/backend/internal/router"
	"github.com/pageza/nutriscope/backend/internal/search"
	"github.com/pageza/nutriscope/backend/internal/service"
	"github.com/pageza/nutriscope/backend/internal/view"
)

const (
	readHeaderTimeout = 10 * time.Second
	// Responses wait on the upstream APIs, so leave room beyond their timeout
	writeSlack = 10 * time.Second
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
	log    *zap.Logger
}

// New wires every component the configuration enables and registers the routes.
// The activity log needs a database driver and session state moves to Redis
// when Redis is configured; both are optional.
func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	s := &Server{log: log}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	var recorder activity.Recorder = activity.NopRecorder{}
	db, err := database.Open(cfg, log)
	switch {
	case errors.Is(err, database.ErrDisabled):
		log.Info("Search activity log disabled: no database driver configured")
	case err != nil:
		return nil, err
	default:
		s.db = db
		if err := database.RunMigrations(db, log); err != nil {
			s.Close()
			return nil, err
		}
		recorder = activity.NewGormRecorder(db)
	}

	var (
		store   view.Store = view.NewMemoryStore()
		limiter *middleware.RateLimiter
	)
	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(cfg, log)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.redis = client
		store = view.NewRedisStore(client, view.StateTTL)
		limiter = middleware.NewSearchRateLimiter(client, cfg.RateLimit, cfg.RateWindow)
	} else {
		log.Info("Session state kept in memory: Redis is not configured")
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	client := service.NewHTTPClient(cfg.UpstreamTimeout)
	s.router = router.SetupRouter(cfg, log, m)
	api.RegisterRoutes(s.router, api.Dependencies{
		Nutrition: service.NewNutritionService(service.NutritionConfig{
			URL:    cfg.NutritionURL,
			AppID:  cfg.NutritionAppID,
			AppKey: cfg.NutritionAppKey,
		}, client, m, log),
		Recipes:     service.NewRecipeService(cfg.RecipeServiceURL, client, m, log),
		Renderer:    renderer,
		Sessions:    view.NewSessions(store),
		Tracker:     search.NewTracker(),
		Activity:    recorder,
		Metrics:     m,
		Log:         log,
		DB:          s.db,
		Redis:       s.redis,
		RateLimiter: limiter,
		Gatherer:    registry,
	})

	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.UpstreamTimeout + writeSlack,
	}
	return s, nil
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.log.Info("Starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and closes the stores
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.Close()
	return err
}

// Close releases the database and Redis connections
func (s *Server) Close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.log.Warn("Failed to close Redis client", zap.Error(err))
		}
		s.redis = nil
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				s.log.Warn("Failed to close database", zap.Error(err))
			}
		}
		s.db = nil
	}
}
