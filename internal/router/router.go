package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/nutriscope/backend/config"
	"github.com/pageza/nutriscope/backend/internal/metrics"
	"github.com/pageza/nutriscope/backend/internal/middleware"
)

// SetupRouter creates the gin engine with the middleware every route shares.
// Routes are registered by api.RegisterRoutes.
func SetupRouter(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.Logging(log),
		middleware.Metrics(m),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.Session(cfg.Environment == config.Production),
		middleware.ErrorHandler(),
	)
	return router
}
