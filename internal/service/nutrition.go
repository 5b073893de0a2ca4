package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pageza/nutriscope/backend/internal/metrics"
	"github.com/pageza/nutriscope/backend/internal/model"
	"go.uber.org/zap"
)

// NutritionService queries the natural-language nutrition endpoint. The app
// credentials stay on the server and are never sent to the browser.
type NutritionService struct {
	client upstreamClient
	url    string
	appID  string
	appKey string
}

// NutritionConfig configures NutritionService
type NutritionConfig struct {
	URL    string
	AppID  string
	AppKey string
}

// NewNutritionService creates a new NutritionService instance
func NewNutritionService(cfg NutritionConfig, client *http.Client, m *metrics.Metrics, log *zap.Logger) *NutritionService {
	return &NutritionService{
		client: newUpstreamClient(client, m, log),
		url:    cfg.URL,
		appID:  cfg.AppID,
		appKey: cfg.AppKey,
	}
}

type nutritionRequest struct {
	Query string `json:"query"`
}

type nutritionResponse struct {
	Foods []model.FoodItem `json:"foods"`
}

// Lookup returns the foods recognised in query. An empty slice means no results.
func (s *NutritionService) Lookup(ctx context.Context, query string) ([]model.FoodItem, error) {
	jsonData, err := json.Marshal(nutritionRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-app-id", s.appID)
	req.Header.Set("x-app-key", s.appKey)

	body, err := s.client.do(UpstreamNutrition, req)
	if err != nil {
		return nil, err
	}

	var result nutritionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, s.client.malformed(UpstreamNutrition, err)
	}
	s.client.ok(UpstreamNutrition)

	if result.Foods == nil {
		return []model.FoodItem{}, nil
	}
	return result.Foods, nil
}
