package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/nutriscope/backend/internal/activity"
	"github.com/pageza/nutriscope/backend/internal/metrics"
	"github.com/pageza/nutriscope/backend/internal/middleware"
	"github.com/pageza/nutriscope/backend/internal/search"
	"github.com/pageza/nutriscope/backend/internal/service"
	"github.com/pageza/nutriscope/backend/internal/view"
	"github.com/pageza/nutriscope/backend/web"
)

// Dependencies holds everything the handlers need. DB, Redis, RateLimiter and
// Gatherer are optional.
type Dependencies struct {
	Nutrition   service.INutritionService
	Recipes     service.IRecipeService
	Renderer    *view.Renderer
	Sessions    *view.Sessions
	Tracker     *search.Tracker
	Activity    activity.Recorder
	Metrics     *metrics.Metrics
	Log         *zap.Logger
	DB          *gorm.DB
	Redis       *redis.Client
	RateLimiter *middleware.RateLimiter
	Gatherer    prometheus.Gatherer
}

func (d *Dependencies) defaults() {
	if d.Tracker == nil {
		d.Tracker = search.NewTracker()
	}
	if d.Sessions == nil {
		d.Sessions = view.NewSessions(view.NewMemoryStore())
	}
	if d.Activity == nil {
		d.Activity = activity.NopRecorder{}
	}
	if d.Metrics == nil {
		d.Metrics = metrics.NewNop()
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
}

// RegisterRoutes registers all page and API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	deps.defaults()

	tracked := &searches{
		tracker:  deps.Tracker,
		activity: deps.Activity,
		metrics:  deps.Metrics,
	}

	healthHandler := NewHealthHandler(deps.DB, deps.Redis)
	pageHandler := NewPageHandler(deps.Renderer, deps.Sessions)
	nutritionHandler := NewNutritionHandler(deps.Nutrition, deps.Renderer, deps.Sessions, tracked)
	recipeHandler := NewRecipeHandler(deps.Recipes, deps.Renderer, deps.Sessions, tracked)
	modalHandler := NewModalHandler(deps.Renderer, deps.Sessions)
	activityHandler := NewActivityHandler(deps.Activity)

	// Health check endpoint
	router.GET("/health", healthHandler.Health)
	router.GET("/api/health", healthHandler.Health)

	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	router.StaticFS("/static", http.FS(web.Static()))
	pageHandler.RegisterRoutes(router)

	v1 := router.Group("/api/v1")
	limited := v1.Group("")
	if deps.RateLimiter != nil {
		limited.Use(deps.RateLimiter.RateLimitMiddleware())
	} else {
		deps.Log.Info("Rate limiting disabled: Redis is not configured")
	}

	nutritionHandler.RegisterRoutes(limited)
	recipeHandler.RegisterRoutes(v1, limited)
	modalHandler.RegisterRoutes(v1)
	activityHandler.RegisterRoutes(v1)
}
