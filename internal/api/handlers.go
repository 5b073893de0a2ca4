package api

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/nutriscope/backend/internal/database"
	"github.com/pageza/nutriscope/backend/internal/middleware"
	"github.com/pageza/nutriscope/backend/internal/view"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports whether the service and its stores are reachable
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: rdb}
}

// Health returns the health status of the API
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	checks := gin.H{}
	healthy := true

	if h.db != nil {
		if err := database.HealthCheck(ctx, h.db); err != nil {
			checks["database"] = err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":  status,
		"message": "Nutriscope is running",
		"version": "v1.0.0",
		"checks":  checks,
	})
}

// PageHandler serves the three full pages
type PageHandler struct {
	renderer *view.Renderer
	sessions *view.Sessions
}

func NewPageHandler(renderer *view.Renderer, sessions *view.Sessions) *PageHandler {
	return &PageHandler{renderer: renderer, sessions: sessions}
}

func (h *PageHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.page(view.PageNutrition))
	router.GET("/nutrition", h.page(view.PageNutrition))
	router.GET("/recommendations", h.page(view.PageRecommendations))
	router.GET("/filter", h.page(view.PageFilter))
}

// page starts a fresh view for the session, since a loaded document holds no
// charts or open modals. Each document gets its own page id, which scopes the
// numbering of its searches.
func (h *PageHandler) page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var state *view.State
		err := h.sessions.Do(c.Request.Context(), middleware.SessionID(c), func(ctrl *view.Controller) error {
			ctrl.Reset()
			state = ctrl.State()
			return nil
		})
		if err != nil {
			internalError(c, err)
			return
		}

		var buf bytes.Buffer
		if err := h.renderer.Page(&buf, name, uuid.NewString(), state); err != nil {
			internalError(c, err)
			return
		}
		c.Data(http.StatusOK, htmlContentType, buf.Bytes())
	}
}
