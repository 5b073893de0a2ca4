package formatter

import "github.com/pageza/nutriscope/backend/internal/model"

// Insight texts
const (
	InsightExcellentProtein = "Excellent source of protein (muscle building)"
	InsightGoodProtein      = "Good source of protein"
	InsightHighFiber        = "High in fiber (aids digestion)"
	InsightGoodFiber        = "Good source of fiber"
	InsightLowSodium        = "Low sodium (heart-healthy)"
	InsightHighSodium       = "High sodium content"
	InsightRichPotassium    = "Rich in potassium (supports blood pressure)"
)

// Insights derives the health insight lines for a food. Each nutrient contributes
// at most one line, in the order protein, fiber, sodium, potassium.
func Insights(f model.FoodItem) []string {
	insights := make([]string, 0, 4)

	switch {
	case f.Protein > 20:
		insights = append(insights, InsightExcellentProtein)
	case f.Protein > 10:
		insights = append(insights, InsightGoodProtein)
	}

	fiber := valueOrZero(f.DietaryFiber)
	switch {
	case fiber > 5:
		insights = append(insights, InsightHighFiber)
	case fiber > 2.5:
		insights = append(insights, InsightGoodFiber)
	}

	// absent sodium is not evaluated; zero would read as "low sodium"
	if f.Sodium != nil {
		switch {
		case *f.Sodium < 140:
			insights = append(insights, InsightLowSodium)
		case *f.Sodium > 500:
			insights = append(insights, InsightHighSodium)
		}
	}

	if valueOrZero(f.Potassium) > 350 {
		insights = append(insights, InsightRichPotassium)
	}

	return insights
}
