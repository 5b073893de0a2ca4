package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/pageza/nutriscope/backend/internal/formatter"
	"github.com/pageza/nutriscope/backend/internal/model"
)

// Outcome messages shown in place of results
const (
	MsgNoResults           = "No results found."
	MsgRecommendationError = "Error fetching recommendations."
	MsgNoRecipes           = "No recipes found matching your criteria."
	MsgFilterError         = "An error occurred while fetching recipes. Please try again."
	MsgNutritionError      = "An error occurred while fetching data. Please try again later."
)

// Pages served as full documents
const (
	PageNutrition       = "nutrition"
	PageRecommendations = "recommendations"
	PageFilter          = "filter"
)

var pageTitles = map[string]string{
	PageNutrition:       "Nutrition Search",
	PageRecommendations: "Recipe Recommendations",
	PageFilter:          "Filtered Search",
}

// pageErrors is shown by the browser when a page's search request itself fails
var pageErrors = map[string]string{
	PageNutrition:       MsgNutritionError,
	PageRecommendations: MsgRecommendationError,
	PageFilter:          MsgFilterError,
}

//go:embed templates/*.html
var templateFS embed.FS

// PageData is what a full page is rendered with
type PageData struct {
	Title    string
	Page     string
	PageID   string
	Error    string
	Full     Modal
	Filtered Modal
}

// Renderer renders pages and the fragments swapped into their binding points
type Renderer struct {
	pages     map[string]*template.Template
	fragments *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	fragments, err := template.ParseFS(templateFS, "templates/fragments.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageTitles))
	for page := range pageTitles {
		tmpl, err := template.ParseFS(templateFS,
			"templates/layout.html",
			"templates/fragments.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s page: %w", page, err)
		}
		pages[page] = tmpl
	}

	return &Renderer{pages: pages, fragments: fragments}, nil
}

// Page writes the full document for page. The modals are rendered from state so
// a reload shows exactly what the session last saw.
func (r *Renderer) Page(w io.Writer, page, pageID string, state *State) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	if state == nil {
		state = NewState()
	}

	return tmpl.ExecuteTemplate(w, "layout", PageData{
		Title:    pageTitles[page],
		Page:     page,
		PageID:   pageID,
		Error:    pageErrors[page],
		Full:     state.Full,
		Filtered: state.Filtered,
	})
}

func (r *Renderer) fragment(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// Message renders an outcome message
func (r *Renderer) Message(msg string) (string, error) {
	return r.fragment("message", msg)
}

// NutritionResults renders the food cards for the result container, or the
// no-results message when the response had no foods
func (r *Renderer) NutritionResults(view formatter.NutritionView) (string, error) {
	if view.Empty() {
		return r.Message(MsgNoResults)
	}
	return r.fragment("nutrition_results", view)
}

// Suggestions renders the autocomplete list. No suggestions renders nothing.
func (r *Renderer) Suggestions(suggestions []string) (string, error) {
	return r.fragment("suggestions", suggestions)
}

// Recommendations renders one clickable line per recommended recipe
func (r *Renderer) Recommendations(recipes []model.Recipe) (string, error) {
	lines := make([]formatter.RecommendationLine, 0, len(recipes))
	for _, recipe := range recipes {
		lines = append(lines, formatter.FormatRecommendation(recipe))
	}
	return r.fragment("recommendations", lines)
}

// FilteredResults renders the filtered recipe cards, or the no-recipes message
func (r *Renderer) FilteredResults(recipes []model.Recipe) (string, error) {
	if len(recipes) == 0 {
		return r.Message(MsgNoRecipes)
	}
	return r.fragment("filtered_results", formatter.FormatRecipeCards(recipes))
}

// Modal renders the whole modal element, content and visibility included
func (r *Renderer) Modal(m *Modal) (string, error) {
	switch m.Kind {
	case ModalFull:
		return r.fragment("full_modal", m)
	case ModalFiltered:
		return r.fragment("filtered_modal", m)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownModal, m.Kind)
	}
}
