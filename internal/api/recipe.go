package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/nutriscope/backend/internal/logger"
	"github.com/pageza/nutriscope/backend/internal/middleware"
	"github.com/pageza/nutriscope/backend/internal/models"
	"github.com/pageza/nutriscope/backend/internal/search"
	"github.com/pageza/nutriscope/backend/internal/service"
	"github.com/pageza/nutriscope/backend/internal/types"
	"github.com/pageza/nutriscope/backend/internal/view"
)

// RecipeHandler serves the autocomplete, recommendation and filter fragments
type RecipeHandler struct {
	recipes  service.IRecipeService
	renderer *view.Renderer
	sessions *view.Sessions
	searches *searches
}

func NewRecipeHandler(recipes service.IRecipeService, renderer *view.Renderer, sessions *view.Sessions, searches *searches) *RecipeHandler {
	return &RecipeHandler{
		recipes:  recipes,
		renderer: renderer,
		sessions: sessions,
		searches: searches,
	}
}

// RegisterRoutes registers the recipe routes. Autocomplete fires on every
// keystroke so it stays outside the rate limited group.
func (h *RecipeHandler) RegisterRoutes(router, limited *gin.RouterGroup) {
	router.GET("/autocomplete", h.Autocomplete)
	limited.POST("/recommendations", h.Recommend)
	limited.POST("/recipes/filter", h.Filter)
}

func (h *RecipeHandler) html(c *gin.Context, fragment string) {
	c.Data(http.StatusOK, htmlContentType, []byte(fragment))
}

// Autocomplete renders suggestions for the typed fragment. On failure the
// current suggestions are left as they are.
func (h *RecipeHandler) Autocomplete(c *gin.Context) {
	var req types.AutocompleteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	r, ok := h.searches.begin(c, search.KindAutocomplete, req.Query)
	if !ok {
		return
	}

	suggestions, err := h.recipes.Autocomplete(r.Ctx, req.Query)
	if !h.searches.finish(c, r) {
		return
	}
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("Error fetching suggestions", zap.Error(err))
		h.searches.record(c, r, models.OutcomeError, 0)
		c.Status(http.StatusNoContent)
		return
	}

	fragment, err := h.renderer.Suggestions(suggestions)
	if err != nil {
		internalError(c, err)
		return
	}
	h.searches.record(c, r, outcomeFor(len(suggestions)), len(suggestions))
	h.html(c, fragment)
}

// Recommend renders the recommendations for a recipe name
func (h *RecipeHandler) Recommend(c *gin.Context) {
	var req types.RecommendationRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	r, ok := h.searches.begin(c, search.KindRecommend, req.RecipeName)
	if !ok {
		return
	}

	recipes, err := h.recipes.Recommend(r.Ctx, req.RecipeName)
	if !h.searches.finish(c, r) {
		return
	}

	var fragment string
	switch {
	case err != nil:
		logger.FromContext(c.Request.Context()).Error("Error fetching recommendations",
			zap.String("recipe_name", req.RecipeName),
			zap.Error(err),
		)
		h.searches.record(c, r, models.OutcomeError, 0)
		fragment, err = h.renderer.Message(view.MsgRecommendationError)
	case len(recipes) == 0:
		h.searches.record(c, r, models.OutcomeEmpty, 0)
		fragment, err = h.renderer.Message(view.MsgNoResults)
	default:
		h.searches.record(c, r, models.OutcomeResults, len(recipes))
		fragment, err = h.renderer.Recommendations(recipes)
	}
	if err != nil {
		internalError(c, err)
		return
	}
	h.html(c, fragment)
}

// Filter renders the recipes matching the filter form and remembers them so a
// card can be opened by its index
func (h *RecipeHandler) Filter(c *gin.Context) {
	var req types.FilterRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	criteria := req.Criteria()

	r, ok := h.searches.begin(c, search.KindFilter, criteria.Category+" "+criteria.DietType+" "+criteria.Ingredients)
	if !ok {
		return
	}

	recipes, err := h.recipes.Filter(r.Ctx, criteria)
	if !h.searches.finish(c, r) {
		return
	}

	if err != nil {
		logger.FromContext(c.Request.Context()).Error("Error in filter search", zap.Error(err))
		h.searches.record(c, r, models.OutcomeError, 0)
		fragment, err := h.renderer.Message(view.MsgFilterError)
		if err != nil {
			internalError(c, err)
			return
		}
		h.html(c, fragment)
		return
	}

	fragment, err := h.renderer.FilteredResults(recipes)
	if err != nil {
		internalError(c, err)
		return
	}

	err = h.sessions.Do(c.Request.Context(), middleware.SessionID(c), func(ctrl *view.Controller) error {
		if !h.searches.tracker.IsCurrent(r.Token) {
			return search.ErrStale
		}
		ctrl.RememberFiltered(recipes)
		return nil
	})
	if h.searches.stale(c, r, err) {
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	h.searches.record(c, r, outcomeFor(len(recipes)), len(recipes))
	h.html(c, fragment)
}

