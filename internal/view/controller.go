// Package view owns what the page shows: the per-session view state (modals,
// attached charts, the last filtered result set) and the HTML fragments the
// page script swaps into its binding points.
package view

import (
	"errors"
	"fmt"
	"time"

	"github.com/pageza/nutriscope/backend/internal/chart"
	"github.com/pageza/nutriscope/backend/internal/formatter"
	"github.com/pageza/nutriscope/backend/internal/model"
)

// ModalKind names one of the two recipe modals
type ModalKind string

// Modal kinds
const (
	ModalFull     ModalKind = "full"
	ModalFiltered ModalKind = "filtered"
)

// Element ids of the modals on the page
const (
	FullModalElementID     = "recipeModal"
	FilteredModalElementID = "filteredRecipeModal"
)

// ErrUnknownModal is returned for a modal kind other than full or filtered
var ErrUnknownModal = errors.New("unknown modal kind")

// Modal is the content and visibility of one recipe modal
type Modal struct {
	Kind      ModalKind              `json:"kind"`
	ElementID string                 `json:"elementId"`
	Visible   bool                   `json:"visible"`
	Detail    formatter.RecipeDetail `json:"detail"`
}

// State is everything the page currently shows for one session
type State struct {
	Full      Modal           `json:"full"`
	Filtered  Modal           `json:"filtered"`
	Charts    *chart.Registry `json:"charts"`
	LastFound []model.Recipe  `json:"lastFound"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewState returns the state of a freshly loaded page: both modals hidden and empty, no charts
func NewState() *State {
	return &State{
		Full:     Modal{Kind: ModalFull, ElementID: FullModalElementID},
		Filtered: Modal{Kind: ModalFiltered, ElementID: FilteredModalElementID},
		Charts:   chart.NewRegistry(),
	}
}

// Controller applies view operations to one session's state
type Controller struct {
	state *State
}

// NewController wraps state. A nil state starts from NewState.
func NewController(state *State) *Controller {
	if state == nil {
		state = NewState()
	}
	if state.Charts == nil {
		state.Charts = chart.NewRegistry()
	}
	return &Controller{state: state}
}

// State returns the controlled state
func (c *Controller) State() *State {
	return c.state
}

// Modal returns the modal of the given kind
func (c *Controller) Modal(kind ModalKind) (*Modal, error) {
	switch kind {
	case ModalFull:
		return &c.state.Full, nil
	case ModalFiltered:
		return &c.state.Filtered, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModal, kind)
	}
}

// OpenFull shows a recommended recipe in the full modal. Every content field is
// replaced, so nothing from a previously shown recipe survives.
func (c *Controller) OpenFull(r model.Recipe) *Modal {
	c.state.Full = Modal{
		Kind:      ModalFull,
		ElementID: FullModalElementID,
		Visible:   true,
		Detail:    formatter.FormatFullDetail(r),
	}
	return &c.state.Full
}

// OpenFiltered shows a filtered recipe in the filtered modal, replacing all of its content
func (c *Controller) OpenFiltered(r model.Recipe) *Modal {
	c.state.Filtered = Modal{
		Kind:      ModalFiltered,
		ElementID: FilteredModalElementID,
		Visible:   true,
		Detail:    formatter.FormatFilteredDetail(r),
	}
	return &c.state.Filtered
}

// Close hides the modal of the given kind. Its content stays until the next open.
func (c *Controller) Close(kind ModalKind) (*Modal, error) {
	m, err := c.Modal(kind)
	if err != nil {
		return nil, err
	}
	m.Visible = false
	return m, nil
}

// ClickOutside handles a click whose target element id is target. A click on a
// modal's backdrop (the modal element itself) hides that modal.
func (c *Controller) ClickOutside(target string) (*Modal, bool) {
	for _, m := range []*Modal{&c.state.Full, &c.state.Filtered} {
		if m.ElementID == target {
			m.Visible = false
			return m, true
		}
	}
	return nil, false
}

// AttachCharts attaches a nutrition result's charts, replacing what each canvas
// held before. With no charts (an empty result) the per-food charts are released
// and the overall chart is kept. It returns the released canvas ids.
func (c *Controller) AttachCharts(configs []*chart.Config) []string {
	if len(configs) == 0 {
		return c.state.Charts.ReplaceAll(nil, chart.OverallCanvasID)
	}
	return c.state.Charts.ReplaceAll(configs)
}

// Reset discards the whole view, as a page load does
func (c *Controller) Reset() {
	c.state = NewState()
}

// RememberFiltered keeps the filtered result set so a card can be opened by index
func (c *Controller) RememberFiltered(recipes []model.Recipe) {
	c.state.LastFound = recipes
}

// FilteredAt returns the filtered recipe shown at index
func (c *Controller) FilteredAt(index int) (model.Recipe, bool) {
	if index < 0 || index >= len(c.state.LastFound) {
		return model.Recipe{}, false
	}
	return c.state.LastFound[index], true
}
