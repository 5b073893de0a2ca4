package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Recipe is the canonical recipe used by every view. Both the recommendation
// ("full") and filter ("filtered") API shapes are mapped into it on receipt.
// Scalar fields hold display text; "" means the value was absent. A numeric zero
// is kept as "0" only when no key of the field held a truthy value.
type Recipe struct {
	ID            string          `json:"id,omitempty"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	DietType      string          `json:"diet_type"`
	Ingredients   string          `json:"ingredients"`
	Directions    string          `json:"directions"`
	Calories      string          `json:"calories"`
	Servings      string          `json:"servings"`
	CookTime      string          `json:"cook_time"`
	Cook          string          `json:"cook"`
	Rating        string          `json:"rating"`
	RatingCount   string          `json:"rating_count"`
	Carbohydrates string          `json:"carbohydrates"`
	Sugars        string          `json:"sugars"`
	Fat           string          `json:"fat"`
	Protein       string          `json:"protein"`
	Raw           json.RawMessage `json:"raw,omitempty"`
}

// Field keys, full shape first. Lookups take the first key holding a truthy value.
// The card reads cook_time_mins while the filtered detail reads cook.
var (
	nameKeys          = []string{"Recipe Name", "name"}
	categoryKeys      = []string{"Category", "category"}
	dietTypeKeys      = []string{"Diet Type", "diet_type"}
	ingredientsKeys   = []string{"Ingredients", "ingredients"}
	directionsKeys    = []string{"Directions", "directions"}
	caloriesKeys      = []string{"Calories (kcal)", "calories"}
	servingsKeys      = []string{"Servings", "servings"}
	cookTimeKeys      = []string{"Cook Time (minutes)", "cook_time_mins"}
	cookKeys          = []string{"Cook Time (minutes)", "cook"}
	ratingKeys        = []string{"Rating", "rating"}
	ratingCountKeys   = []string{"Rating Count", "rating_count"}
	carbohydratesKeys = []string{"Carbohydrates g(Daily %)"}
	sugarsKeys        = []string{"Sugars g(Daily %)"}
	fatKeys           = []string{"Fat g(Daily %)"}
	proteinKeys       = []string{"Protein g(Daily %)"}
	idKeys            = []string{"Recipe ID"}
)

// NormalizeRecipe maps a recipe record of either API shape into a Recipe.
// A record that is not a JSON object yields a Recipe with every field absent.
func NormalizeRecipe(raw json.RawMessage) Recipe {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		fields = nil
	}

	return Recipe{
		ID:            lookup(fields, idKeys),
		Name:          lookup(fields, nameKeys),
		Category:      lookup(fields, categoryKeys),
		DietType:      lookup(fields, dietTypeKeys),
		Ingredients:   lookup(fields, ingredientsKeys),
		Directions:    lookup(fields, directionsKeys),
		Calories:      lookup(fields, caloriesKeys),
		Servings:      lookup(fields, servingsKeys),
		CookTime:      lookup(fields, cookTimeKeys),
		Cook:          lookup(fields, cookKeys),
		Rating:        lookup(fields, ratingKeys),
		RatingCount:   lookup(fields, ratingCountKeys),
		Carbohydrates: lookup(fields, carbohydratesKeys),
		Sugars:        lookup(fields, sugarsKeys),
		Fat:           lookup(fields, fatKeys),
		Protein:       lookup(fields, proteinKeys),
		Raw:           append(json.RawMessage(nil), raw...),
	}
}

// NormalizeRecipes maps a sequence of records. See NormalizeRecipe.
func NormalizeRecipes(raws []json.RawMessage) []Recipe {
	recipes := make([]Recipe, 0, len(raws))
	for _, raw := range raws {
		recipes = append(recipes, NormalizeRecipe(raw))
	}
	return recipes
}

func lookup(fields map[string]json.RawMessage, keys []string) string {
	zero := ""
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		text, truthy := displayText(raw)
		if truthy {
			return text
		}
		if zero == "" {
			zero = text
		}
	}
	return zero
}

// IsZero reports whether a field's text is the numeric zero kept by lookup
func IsZero(text string) bool {
	return text == "0"
}

// displayText renders a JSON scalar the way it is shown on the page and reports
// whether the value is truthy. null, false and "" render as "", a numeric zero
// renders as "0" but is not truthy.
func displayText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, s != ""
	case 't':
		return "true", true
	case 'f', 'n':
		return "", false
	case '{', '[':
		return string(raw), true
	}

	n, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return "", false
	}
	if n == 0 {
		return "0", false
	}
	return strconv.FormatFloat(n, 'f', -1, 64), true
}
