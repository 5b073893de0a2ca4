package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/pageza/nutriscope/backend/internal/metrics"
	"github.com/pageza/nutriscope/backend/internal/model"
	"github.com/pageza/nutriscope/backend/internal/types"
	"go.uber.org/zap"
)

// RecipeService talks to the recipe recommendation service
type RecipeService struct {
	client  upstreamClient
	baseURL string
}

// NewRecipeService creates a new RecipeService instance. baseURL is the root
// the /autocomplete, /recommend and /filter endpoints hang off.
func NewRecipeService(baseURL string, client *http.Client, m *metrics.Metrics, log *zap.Logger) *RecipeService {
	return &RecipeService{
		client:  newUpstreamClient(client, m, log),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type recipesResponse struct {
	Recipes json.RawMessage `json:"recipes"`
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Autocomplete returns recipe name suggestions for fragment. An empty
// fragment yields no suggestions without contacting the service.
func (s *RecipeService) Autocomplete(ctx context.Context, fragment string) ([]string, error) {
	if fragment == "" {
		return []string{}, nil
	}

	endpoint := s.baseURL + "/autocomplete?" + url.Values{"query": {fragment}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	body, err := s.client.do(UpstreamAutocomplete, req)
	if err != nil {
		return nil, err
	}

	var result suggestionsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, s.client.malformed(UpstreamAutocomplete, err)
	}
	s.client.ok(UpstreamAutocomplete)

	if result.Suggestions == nil {
		return []string{}, nil
	}
	return result.Suggestions, nil
}

// Recommend returns recipes similar to name. A "recipes" field that is not an
// array is reported as ErrMalformedResponse.
func (s *RecipeService) Recommend(ctx context.Context, name string) ([]model.Recipe, error) {
	form := url.Values{"recipe_name": {name}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/recommend", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := s.client.do(UpstreamRecommend, req)
	if err != nil {
		return nil, err
	}

	records, isArray, err := decodeRecipeArray(body)
	if err != nil {
		return nil, s.client.malformed(UpstreamRecommend, err)
	}
	if !isArray {
		return nil, s.client.malformed(UpstreamRecommend, nil)
	}
	s.client.ok(UpstreamRecommend)

	return model.NormalizeRecipes(records), nil
}

// Filter returns the recipes matching criteria. Unlike Recommend, a response
// whose "recipes" field is missing or not an array is an empty result. A body
// that is not a JSON object at all is still ErrMalformedResponse.
func (s *RecipeService) Filter(ctx context.Context, criteria types.FilterCriteria) ([]model.Recipe, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct {
		name  string
		value string
	}{
		{"category", criteria.Category},
		{"diet_type", criteria.DietType},
		{"ingredients", criteria.Ingredients},
	}
	flags := []struct {
		name string
		set  bool
	}{
		{"serving_one", criteria.ServingOne},
		{"serving_two", criteria.ServingTwo},
		{"serving_crowd", criteria.ServingCrowd},
		{"quick_and_easy", criteria.QuickAndEasy},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", f.name, err)
		}
	}
	// The service tests flags for presence, so unchecked ones are left out
	for _, f := range flags {
		if !f.set {
			continue
		}
		if err := w.WriteField(f.name, "on"); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", f.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/filter", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	body, err := s.client.do(UpstreamFilter, req)
	if err != nil {
		return nil, err
	}
	records, isArray, err := decodeRecipeArray(body)
	if err != nil {
		return nil, s.client.malformed(UpstreamFilter, err)
	}
	s.client.ok(UpstreamFilter)

	if !isArray {
		return []model.Recipe{}, nil
	}
	return model.NormalizeRecipes(records), nil
}

// decodeRecipeArray extracts the "recipes" array. isArray is false when the
// field is absent or holds something other than an array.
func decodeRecipeArray(body []byte) ([]json.RawMessage, bool, error) {
	var result recipesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, false, err
	}

	trimmed := bytes.TrimSpace(result.Recipes)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, false, err
	}
	return records, true, nil
}
