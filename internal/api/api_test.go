package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutriscope/backend/internal/activity"
	"github.com/pageza/nutriscope/backend/internal/metrics"
	"github.com/pageza/nutriscope/backend/internal/middleware"
	"github.com/pageza/nutriscope/backend/internal/mocks"
	"github.com/pageza/nutriscope/backend/internal/models"
	"github.com/pageza/nutriscope/backend/internal/search"
	"github.com/pageza/nutriscope/backend/internal/testhelpers"
	"github.com/pageza/nutriscope/backend/internal/view"
)

type testEnv struct {
	router    *gin.Engine
	nutrition *mocks.MockNutritionService
	recipes   *mocks.MockRecipeService
	sessions  *view.Sessions
	metrics   *metrics.Metrics
	cookie    *http.Cookie
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	return setupTestRouterWithRecorder(t, nil)
}

// setupTestRouterWithRecorder records activity through recorder, or into an
// in-memory sqlite database when it is nil
func setupTestRouterWithRecorder(t *testing.T, recorder activity.Recorder) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	db := testhelpers.SetupSQLiteDB(t)
	if recorder == nil {
		recorder = activity.NewGormRecorder(db)
	}
	reg := prometheus.NewRegistry()
	env := &testEnv{
		router:    gin.New(),
		nutrition: &mocks.MockNutritionService{},
		recipes:   &mocks.MockRecipeService{},
		sessions:  view.NewSessions(view.NewMemoryStore()),
		metrics:   metrics.New(reg),
	}
	env.router.Use(middleware.Session(false), middleware.ErrorHandler())

	RegisterRoutes(env.router, Dependencies{
		Nutrition: env.nutrition,
		Recipes:   env.recipes,
		Renderer:  renderer,
		Sessions:  env.sessions,
		Tracker:   search.NewTracker(),
		Activity:  recorder,
		Metrics:   env.metrics,
		DB:        db,
		Gatherer:  reg,
	})
	return env
}

// do serves req within the env's session, starting one on first use
func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if e.cookie == nil {
		for _, c := range w.Result().Cookies() {
			if c.Name == middleware.SessionCookie {
				e.cookie = c
			}
		}
	}
	return w
}

func (e *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// loadPage fetches a full page and returns the page id it was issued
func (e *testEnv) loadPage(t *testing.T, path string) string {
	t.Helper()
	w := e.get(path)
	require.Equal(t, http.StatusOK, w.Code)
	pageID, ok := parse(t, w.Body.String()).Find("body").Attr("data-page-id")
	require.True(t, ok)
	require.NotEmpty(t, pageID)
	return pageID
}

func parse(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func TestPages(t *testing.T) {
	env := setupTestRouter(t)

	cases := map[string]string{
		"/":                "#nutrition-search",
		"/nutrition":       "#nutrition-search",
		"/recommendations": "#recommendation-search",
		"/filter":          "#filtered-search",
	}
	for path, selector := range cases {
		t.Run(path, func(t *testing.T) {
			w := env.get(path)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			assert.Equal(t, 1, parse(t, w.Body.String()).Find(selector).Length())
		})
	}
	assert.NotNil(t, env.cookie, "first visit issues a session cookie")
}

func TestPages_FormsCarryFailureMessage(t *testing.T) {
	env := setupTestRouter(t)

	cases := map[string]string{
		"/nutrition":       view.MsgNutritionError,
		"/recommendations": view.MsgRecommendationError,
		"/filter":          view.MsgFilterError,
	}
	for path, msg := range cases {
		t.Run(path, func(t *testing.T) {
			w := env.get(path)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, msg, parse(t, w.Body.String()).Find("form").AttrOr("data-error", ""))
		})
	}
}

func TestPages_ReloadHidesOpenModal(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(jsonRequest(http.MethodPost, "/api/v1/modals/full", `{"Recipe Name": "Chili"}`))
	require.Equal(t, http.StatusOK, w.Code)

	w = env.get("/recommendations")

	modal := parse(t, w.Body.String()).Find("#recipeModal")
	_, styled := modal.Attr("style")
	assert.False(t, styled)
}

func TestHealth(t *testing.T) {
	env := setupTestRouter(t)

	w := env.get("/health")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ok", body["checks"].(map[string]any)["database"])
}

func TestStaticAssets(t *testing.T) {
	env := setupTestRouter(t)

	w := env.get("/static/app.js")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.get("/static/style.css")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestRouter(t)
	env.recipes.On("Autocomplete", mockAny, "chi").Return([]string{"chili"}, nil)
	env.get("/api/v1/autocomplete?query=chi")

	w := env.get("/metrics")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `nutriscope_searches_total{kind="autocomplete",outcome="results"} 1`)
}

func TestActivity(t *testing.T) {
	env := setupTestRouter(t)
	env.recipes.On("Autocomplete", mockAny, "chi").Return([]string{"chili", "chicken"}, nil)
	env.recipes.On("Autocomplete", mockAny, "zzz").Return([]string{}, nil)

	env.get("/api/v1/autocomplete?query=chi")
	env.get("/api/v1/autocomplete?query=zzz")

	w := env.get("/api/v1/activity?limit=10")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Events []models.SearchEvent `json:"events"`
		Count  int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 2, body.Count)
	assert.Equal(t, "zzz", body.Events[0].Query, "newest first")
	assert.Equal(t, models.OutcomeEmpty, body.Events[0].Outcome)
	assert.Equal(t, models.OutcomeResults, body.Events[1].Outcome)
	assert.Equal(t, 2, body.Events[1].ResultCount)

	t.Run("other sessions see nothing", func(t *testing.T) {
		other := &testEnv{router: env.router}
		w := other.get("/api/v1/activity")

		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Zero(t, body.Count)
	})
}
