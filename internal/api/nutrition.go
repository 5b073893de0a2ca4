package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/nutriscope/backend/internal/chart"
	"github.com/pageza/nutriscope/backend/internal/formatter"
	"github.com/pageza/nutriscope/backend/internal/logger"
	"github.com/pageza/nutriscope/backend/internal/middleware"
	"github.com/pageza/nutriscope/backend/internal/models"
	"github.com/pageza/nutriscope/backend/internal/search"
	"github.com/pageza/nutriscope/backend/internal/service"
	"github.com/pageza/nutriscope/backend/internal/types"
	"github.com/pageza/nutriscope/backend/internal/view"
)

// NutritionResponse is what the page script applies after a nutrition search.
// On error HTML is empty and the page keeps its previous results.
type NutritionResponse struct {
	SearchID string          `json:"searchId"`
	Outcome  string          `json:"outcome"`
	HTML     string          `json:"html,omitempty"`
	Message  string          `json:"message,omitempty"`
	Charts   []*chart.Config `json:"charts"`
	Released []string        `json:"released"`
}

type NutritionHandler struct {
	nutrition service.INutritionService
	renderer  *view.Renderer
	sessions  *view.Sessions
	searches  *searches
}

func NewNutritionHandler(nutrition service.INutritionService, renderer *view.Renderer, sessions *view.Sessions, searches *searches) *NutritionHandler {
	return &NutritionHandler{
		nutrition: nutrition,
		renderer:  renderer,
		sessions:  sessions,
		searches:  searches,
	}
}

func (h *NutritionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/nutrition", h.Search)
}

// Search looks up the query, renders the food cards and builds their charts
func (h *NutritionHandler) Search(c *gin.Context) {
	var req types.NutritionRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	r, ok := h.searches.begin(c, search.KindNutrition, req.Search)
	if !ok {
		return
	}

	foods, err := h.nutrition.Lookup(r.Ctx, req.Search)
	if !h.searches.finish(c, r) {
		return
	}

	if err != nil {
		logger.FromContext(c.Request.Context()).Error("Nutrition search failed",
			zap.String("query", req.Search),
			zap.Error(err),
		)
		h.searches.record(c, r, models.OutcomeError, 0)
		c.JSON(http.StatusOK, NutritionResponse{
			SearchID: r.Token.ID,
			Outcome:  models.OutcomeError,
			Message:  view.MsgNutritionError,
			Charts:   []*chart.Config{},
			Released: []string{},
		})
		return
	}

	nutritionView := formatter.FormatFoods(foods)

	var (
		html   string
		charts = []*chart.Config{}
		g      errgroup.Group
	)
	g.Go(func() error {
		var err error
		html, err = h.renderer.NutritionResults(nutritionView)
		return err
	})
	if !nutritionView.Empty() {
		g.Go(func() error {
			charts = chart.BuildAll(nutritionView)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		internalError(c, err)
		return
	}

	var released []string
	err = h.sessions.Do(c.Request.Context(), middleware.SessionID(c), func(ctrl *view.Controller) error {
		// A newer search may have finished while this one rendered
		if !h.searches.tracker.IsCurrent(r.Token) {
			return search.ErrStale
		}
		released = ctrl.AttachCharts(charts)
		return nil
	})
	if h.searches.stale(c, r, err) {
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	outcome := outcomeFor(len(foods))
	h.searches.record(c, r, outcome, len(foods))
	c.JSON(http.StatusOK, NutritionResponse{
		SearchID: r.Token.ID,
		Outcome:  outcome,
		HTML:     html,
		Charts:   charts,
		Released: released,
	})
}
