package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriscope/backend/internal/activity"
	"github.com/pageza/nutriscope/backend/internal/middleware"
	"github.com/pageza/nutriscope/backend/internal/models"
	"github.com/pageza/nutriscope/backend/internal/types"
)

// ActivityHandler lists the session's recent searches
type ActivityHandler struct {
	recorder activity.Recorder
}

func NewActivityHandler(recorder activity.Recorder) *ActivityHandler {
	return &ActivityHandler{recorder: recorder}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/activity", h.Recent)
}

func (h *ActivityHandler) Recent(c *gin.Context) {
	var query types.ActivityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err.Error())
		return
	}

	events, err := h.recorder.Recent(c.Request.Context(), models.SearchEventFilters{
		SessionID: middleware.SessionID(c),
		Kind:      query.Kind,
		Limit:     query.Limit,
	})
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}
