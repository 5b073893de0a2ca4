package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriscope/backend/internal/search"
)

const corsMaxAge = 24 * time.Hour

// DefaultOrigins are allowed when no origins are configured
var DefaultOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// CORS allows the configured origins to call the API with the session cookie
func CORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = DefaultOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Cache-Control", "X-Requested-With",
			search.SeqHeader,
			search.PageHeader,
		},
		ExposeHeaders:    []string{search.SupersededHeader, "X-RateLimit-Remaining", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	})
}
