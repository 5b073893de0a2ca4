package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/nutriscope/backend/internal/model"
	"github.com/pageza/nutriscope/backend/internal/types"
)

// MockNutritionService is a mock implementation of the INutritionService interface
type MockNutritionService struct {
	mock.Mock
}

func (m *MockNutritionService) Lookup(ctx context.Context, query string) ([]model.FoodItem, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodItem), args.Error(1)
}

// MockRecipeService is a mock implementation of the IRecipeService interface
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) Autocomplete(ctx context.Context, fragment string) ([]string, error) {
	args := m.Called(ctx, fragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRecipeService) Recommend(ctx context.Context, name string) ([]model.Recipe, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Filter(ctx context.Context, criteria types.FilterCriteria) ([]model.Recipe, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}
