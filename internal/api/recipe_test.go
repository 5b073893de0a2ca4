package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutriscope/backend/internal/mocks"
	"github.com/pageza/nutriscope/backend/internal/model"
	"github.com/pageza/nutriscope/backend/internal/models"
	"github.com/pageza/nutriscope/backend/internal/search"
	"github.com/pageza/nutriscope/backend/internal/service"
	"github.com/pageza/nutriscope/backend/internal/types"
	"github.com/pageza/nutriscope/backend/internal/view"
)

func jsonRequest(method, path, body string) *http.Request {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAutocomplete(t *testing.T) {
	env := setupTestRouter(t)
	env.recipes.On("Autocomplete", mockAny, "chi").Return([]string{"chili", `<b>"hot"</b>`}, nil)

	w := env.get("/api/v1/autocomplete?query=chi")

	require.Equal(t, http.StatusOK, w.Code)
	items := parse(t, w.Body.String()).Find(".suggestion")
	require.Equal(t, 2, items.Length())
	assert.Equal(t, `<b>"hot"</b>`, items.Eq(1).Text(), "suggestions are escaped")
	suggestion, _ := items.Eq(0).Attr("data-suggestion")
	assert.Equal(t, "chili", suggestion)
}

func TestAutocomplete_ErrorKeepsSuggestions(t *testing.T) {
	env := setupTestRouter(t)
	env.recipes.On("Autocomplete", mockAny, "chi").Return(nil, &service.UpstreamError{Upstream: service.UpstreamAutocomplete, Err: errors.New("connection refused")})

	w := env.get("/api/v1/autocomplete?query=chi")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get(search.SupersededHeader))
}

func TestRecommend(t *testing.T) {
	full := `{"Recipe Name": "Chili con carne", "Rating": 4.7, "Ingredients": "beans, beef"}`
	recipes := []model.Recipe{model.NormalizeRecipe([]byte(full))}

	cases := []struct {
		name    string
		recipes []model.Recipe
		err     error
		check   func(t *testing.T, body string)
	}{
		{
			name:    "results",
			recipes: recipes,
			check: func(t *testing.T, body string) {
				item := parse(t, body).Find(".recipe-item")
				require.Equal(t, 1, item.Length())
				assert.Equal(t, "Chili con carne - 4.7", item.Text())
				payload, _ := item.Attr("data-payload")
				assert.JSONEq(t, full, payload)
			},
		},
		{
			name:    "no recipes",
			recipes: []model.Recipe{},
			check: func(t *testing.T, body string) {
				assert.Equal(t, view.MsgNoResults, parse(t, body).Find("p.message").Text())
			},
		},
		{
			name: "malformed response",
			err:  fmt.Errorf("%w: recipes is not an array", service.ErrMalformedResponse),
			check: func(t *testing.T, body string) {
				assert.Equal(t, view.MsgRecommendationError, parse(t, body).Find("p.message").Text())
			},
		},
		{
			name: "transport failure",
			err:  &service.UpstreamError{Upstream: service.UpstreamRecommend, StatusCode: http.StatusBadGateway},
			check: func(t *testing.T, body string) {
				assert.Equal(t, view.MsgRecommendationError, parse(t, body).Find("p.message").Text())
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := setupTestRouter(t)
			if tc.err != nil {
				env.recipes.On("Recommend", mockAny, "Chili").Return(nil, tc.err)
			} else {
				env.recipes.On("Recommend", mockAny, "Chili").Return(tc.recipes, nil)
			}

			w := env.postForm("/api/v1/recommendations", url.Values{"recipe-name": {"Chili"}})

			require.Equal(t, http.StatusOK, w.Code)
			tc.check(t, w.Body.String())
		})
	}
}

func TestRecommend_ActivityFailureKeepsFragment(t *testing.T) {
	recorder := &mocks.MockRecorder{}
	recorder.On("Record", mockAny, mock.MatchedBy(func(e *models.SearchEvent) bool {
		return e.Kind == string(search.KindRecommend) && e.Outcome == models.OutcomeResults
	})).Return(errors.New("connection refused"))
	env := setupTestRouterWithRecorder(t, recorder)
	env.recipes.On("Recommend", mockAny, "Chili").
		Return([]model.Recipe{model.NormalizeRecipe([]byte(`{"Recipe Name": "Chili con carne", "Rating": 4.7}`))}, nil)

	w := env.postForm("/api/v1/recommendations", url.Values{"recipe-name": {"Chili"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Chili con carne - 4.7", parse(t, w.Body.String()).Find(".recipe-item").Text())
	recorder.AssertExpectations(t)
}

func TestFilter(t *testing.T) {
	env := setupTestRouter(t)
	criteria := types.FilterCriteria{Category: "Dessert", DietType: "Vegan", ServingTwo: true}
	env.recipes.On("Filter", mockAny, criteria).Return([]model.Recipe{
		model.NormalizeRecipe([]byte(`{"name": "Vegan brownies", "category": "Dessert", "calories": 250, "cook_time_mins": 30, "rating": 4.5}`)),
		model.NormalizeRecipe([]byte(`{"category": "Dessert"}`)),
	}, nil)

	w := env.postForm("/api/v1/recipes/filter", url.Values{
		"category":    {"Dessert"},
		"diet-type":   {"Vegan"},
		"serving-two": {"on"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	cards := parse(t, w.Body.String()).Find(".recipe-item")
	require.Equal(t, 2, cards.Length())
	assert.Equal(t, "Vegan brownies", cards.Eq(0).Find("h3").Text())
	index, _ := cards.Eq(1).Attr("data-index")
	assert.Equal(t, "1", index)

	w = env.do(jsonRequest(http.MethodPost, "/api/v1/modals/filtered/0", ""))
	require.Equal(t, http.StatusOK, w.Code)
	modal := parse(t, w.Body.String()).Find("#filteredRecipeModal")
	assert.Equal(t, "Vegan brownies", modal.Find("#filteredModalRecipeName").Text())
	style, _ := modal.Attr("style")
	assert.Equal(t, "display: block", style)
}

func TestFilter_Outcomes(t *testing.T) {
	t.Run("no recipes", func(t *testing.T) {
		env := setupTestRouter(t)
		env.recipes.On("Filter", mockAny, types.FilterCriteria{}).Return([]model.Recipe{}, nil)

		w := env.postForm("/api/v1/recipes/filter", url.Values{})

		assert.Equal(t, view.MsgNoRecipes, parse(t, w.Body.String()).Find("p.message").Text())
	})

	t.Run("upstream failure", func(t *testing.T) {
		env := setupTestRouter(t)
		env.recipes.On("Filter", mockAny, types.FilterCriteria{}).Return(nil, &service.UpstreamError{Upstream: service.UpstreamFilter, StatusCode: 500})

		w := env.postForm("/api/v1/recipes/filter", url.Values{})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, view.MsgFilterError, parse(t, w.Body.String()).Find("p.message").Text())
	})
}
