package formatter

import "github.com/pageza/nutriscope/backend/internal/model"

// Placeholders for absent recipe fields
const (
	NotAvailable          = "N/A"
	UnnamedRecipe         = "Unnamed Recipe"
	DirectionsUnavailable = "Directions not available"
)

// Detail is one labelled line of a recipe's additional details block
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// RecommendationLine is a clickable "<name> - <rating>" entry. Payload is the raw
// full-shape record the detail view is opened with.
type RecommendationLine struct {
	Text    string
	Payload string
}

// RecipeCard is a filtered-search result card
type RecipeCard struct {
	Index    int
	Name     string
	Category string
	Calories string
	CookTime string
	Rating   string
}

// RecipeDetail is the content of a recipe modal
type RecipeDetail struct {
	Name        string
	Ingredients []string
	Directions  string
	Details     []Detail
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// truthyOrNA is orNA for views that treat a numeric zero as missing
func truthyOrNA(s string) string {
	if model.IsZero(s) {
		return NotAvailable
	}
	return orNA(s)
}

func orDefault(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// FormatRecommendation builds the summary line for a recommended recipe
func FormatRecommendation(r model.Recipe) RecommendationLine {
	return RecommendationLine{
		Text:    orDefault(r.Name, UnnamedRecipe) + " - " + orNA(r.Rating),
		Payload: string(r.Raw),
	}
}

// FormatRecipeCard builds the card for the filtered result at position index
func FormatRecipeCard(index int, r model.Recipe) RecipeCard {
	return RecipeCard{
		Index:    index,
		Name:     orDefault(r.Name, UnnamedRecipe),
		Category: orNA(r.Category),
		Calories: truthyOrNA(r.Calories),
		CookTime: truthyOrNA(r.CookTime) + " minutes",
		Rating:   truthyOrNA(r.Rating) + " (" + truthyOrNA(r.RatingCount) + " ratings)",
	}
}

// FormatRecipeCards builds a card for every filtered result
func FormatRecipeCards(recipes []model.Recipe) []RecipeCard {
	cards := make([]RecipeCard, 0, len(recipes))
	for i, r := range recipes {
		cards = append(cards, FormatRecipeCard(i, r))
	}
	return cards
}

func ingredientItems(text string) []string {
	if text == "" {
		return nil
	}
	return SplitIngredients(text)
}

// FormatFullDetail builds the recommendation modal content
func FormatFullDetail(r model.Recipe) RecipeDetail {
	return RecipeDetail{
		Name:        orDefault(r.Name, UnnamedRecipe),
		Ingredients: ingredientItems(r.Ingredients),
		Directions:  orDefault(r.Directions, DirectionsUnavailable),
		Details: []Detail{
			{Label: "Category", Value: orNA(r.Category)},
			{Label: "Calories", Value: orNA(r.Calories)},
			{Label: "Servings", Value: orNA(r.Servings)},
			{Label: "Carbohydrates", Value: orNA(r.Carbohydrates)},
			{Label: "Sugars", Value: orNA(r.Sugars)},
			{Label: "Fat", Value: orNA(r.Fat)},
			{Label: "Protein", Value: orNA(r.Protein)},
			{Label: "Cook Time", Value: orNA(r.CookTime) + " minutes"},
			{Label: "Rating", Value: orNA(r.Rating) + " (" + orNA(r.RatingCount) + " ratings)"},
			{Label: "Diet Type", Value: orNA(r.DietType)},
		},
	}
}

// FormatFilteredDetail builds the filtered-search modal content
func FormatFilteredDetail(r model.Recipe) RecipeDetail {
	return RecipeDetail{
		Name:        orDefault(r.Name, UnnamedRecipe),
		Ingredients: ingredientItems(r.Ingredients),
		Directions:  orDefault(r.Directions, DirectionsUnavailable),
		Details: []Detail{
			{Label: "Calories", Value: truthyOrNA(r.Calories)},
			{Label: "Servings", Value: truthyOrNA(r.Servings)},
			{Label: "Cook Time", Value: truthyOrNA(r.Cook)},
			{Label: "Rating", Value: truthyOrNA(r.Rating) + " (" + truthyOrNA(r.RatingCount) + " ratings)"},
			{Label: "Diet Type", Value: orNA(r.DietType)},
			{Label: "Carbohydrates", Value: orNA(r.Carbohydrates)},
			{Label: "Sugars", Value: orNA(r.Sugars)},
			{Label: "Fat", Value: orNA(r.Fat)},
			{Label: "Protein", Value: orNA(r.Protein)},
		},
	}
}
