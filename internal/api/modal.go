package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriscope/backend/internal/middleware"
	"github.com/pageza/nutriscope/backend/internal/model"
	"github.com/pageza/nutriscope/backend/internal/types"
	"github.com/pageza/nutriscope/backend/internal/view"
)

var errRecipeNotFound = errors.New("no filtered recipe at that index")

// ModalHandler opens and closes the two recipe modals. Every response is the
// whole modal element, which the page script swaps in place.
type ModalHandler struct {
	renderer *view.Renderer
	sessions *view.Sessions
}

func NewModalHandler(renderer *view.Renderer, sessions *view.Sessions) *ModalHandler {
	return &ModalHandler{renderer: renderer, sessions: sessions}
}

func (h *ModalHandler) RegisterRoutes(router *gin.RouterGroup) {
	modals := router.Group("/modals")
	{
		modals.POST("/full", h.OpenFull)
		modals.POST("/filtered/:index", h.OpenFiltered)
		modals.POST("/close/:kind", h.Close)
		modals.POST("/click", h.Click)
	}
}

// update runs fn on the session's view and renders the modal it returns
func (h *ModalHandler) update(c *gin.Context, fn func(*view.Controller) (*view.Modal, error)) {
	var modal view.Modal
	err := h.sessions.Do(c.Request.Context(), middleware.SessionID(c), func(ctrl *view.Controller) error {
		m, err := fn(ctrl)
		if err != nil {
			return err
		}
		modal = *m
		return nil
	})

	switch {
	case errors.Is(err, view.ErrUnknownModal), errors.Is(err, errRecipeNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		internalError(c, err)
		return
	}

	fragment, err := h.renderer.Modal(&modal)
	if err != nil {
		internalError(c, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(fragment))
}

// OpenFull shows a recommended recipe. The body is the recipe record exactly as
// the recommendation line carried it.
func (h *ModalHandler) OpenFull(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if !json.Valid(raw) {
		badRequest(c, "recipe payload must be JSON")
		return
	}
	recipe := model.NormalizeRecipe(raw)

	h.update(c, func(ctrl *view.Controller) (*view.Modal, error) {
		return ctrl.OpenFull(recipe), nil
	})
}

// OpenFiltered shows the filtered recipe at the card's index
func (h *ModalHandler) OpenFiltered(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, "index must be a number")
		return
	}

	h.update(c, func(ctrl *view.Controller) (*view.Modal, error) {
		recipe, ok := ctrl.FilteredAt(index)
		if !ok {
			return nil, errRecipeNotFound
		}
		return ctrl.OpenFiltered(recipe), nil
	})
}

// Close hides the modal named by :kind
func (h *ModalHandler) Close(c *gin.Context) {
	kind := view.ModalKind(c.Param("kind"))
	h.update(c, func(ctrl *view.Controller) (*view.Modal, error) {
		return ctrl.Close(kind)
	})
}

// Click handles a click anywhere on the page. Only a click on a modal's
// backdrop changes anything; every other click gets 204.
func (h *ModalHandler) Click(c *gin.Context) {
	var req types.ModalClickRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	var (
		modal   view.Modal
		handled bool
	)
	err := h.sessions.Do(c.Request.Context(), middleware.SessionID(c), func(ctrl *view.Controller) error {
		m, ok := ctrl.ClickOutside(req.Target)
		if ok {
			modal, handled = *m, true
		}
		return nil
	})
	if err != nil {
		internalError(c, err)
		return
	}
	if !handled {
		c.Status(http.StatusNoContent)
		return
	}

	fragment, err := h.renderer.Modal(&modal)
	if err != nil {
		internalError(c, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(fragment))
}
