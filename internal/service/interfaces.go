package service

import (
	"context"

	"github.com/pageza/nutriscope/backend/internal/model"
	"github.com/pageza/nutriscope/backend/internal/types"
)

// INutritionService looks up nutrition facts for a free-text food query
type INutritionService interface {
	Lookup(ctx context.Context, query string) ([]model.FoodItem, error)
}

// IRecipeService defines the recipe search operations
type IRecipeService interface {
	Autocomplete(ctx context.Context, fragment string) ([]string, error)
	Recommend(ctx context.Context, name string) ([]model.Recipe, error)
	Filter(ctx context.Context, criteria types.FilterCriteria) ([]model.Recipe, error)
}
