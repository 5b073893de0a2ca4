package formatter

import (
	"fmt"
	"strings"

	"github.com/pageza/nutriscope/backend/internal/model"
)

// DailyValueLine is one "<label>: <percent>% of daily value" entry on a food card
type DailyValueLine struct {
	Label   string
	Percent string
}

// FoodCard is the display-ready form of one FoodItem
type FoodCard struct {
	Index           int
	Name            string
	ImageURL        string
	Serving         string
	AltServings     string
	Calories        string
	Fat             string
	Carbs           string
	Protein         string
	Insights        []string
	DailyValues     []DailyValueLine
	MacroChartID    string
	MineralsChartID string
}

// NutritionView is the display-ready form of one nutrition response
type NutritionView struct {
	Cards     []FoodCard
	Foods     []model.FoodItem
	Aggregate model.AggregateNutrition
}

// Empty reports whether the response had no foods
func (v NutritionView) Empty() bool {
	return len(v.Cards) == 0
}

// MacroChartID is the canvas id of the macro chart for the food at index i
func MacroChartID(i int) string {
	return fmt.Sprintf("macroChart-%d", i)
}

// MineralsChartID is the canvas id of the minerals chart for the food at index i
func MineralsChartID(i int) string {
	return fmt.Sprintf("mineralsChart-%d", i)
}

// FormatFood builds the card for the food at position index
func FormatFood(index int, f model.FoodItem) FoodCard {
	return FoodCard{
		Index:       index,
		Name:        f.FoodName,
		ImageURL:    f.ImageURL(),
		Serving:     servingLine(f),
		AltServings: altServingsLine(f.AltMeasures),
		Calories:    OneDecimal(f.Calories),
		Fat:         OneDecimal(f.TotalFat),
		Carbs:       OneDecimal(f.TotalCarbohydrate),
		Protein:     OneDecimal(f.Protein),
		Insights:    Insights(f),
		DailyValues: []DailyValueLine{
			{Label: "Protein", Percent: OneDecimal(DailyValuePercent(&f.Protein, ProteinDailyGrams))},
			{Label: "Fiber", Percent: OneDecimal(DailyValuePercent(f.DietaryFiber, FiberDailyGrams))},
			{Label: "Potassium", Percent: OneDecimal(DailyValuePercent(f.Potassium, PotassiumDailyMilligram))},
			{Label: "Sodium", Percent: OneDecimal(DailyValuePercent(f.Sodium, SodiumDailyMilligram))},
		},
		MacroChartID:    MacroChartID(index),
		MineralsChartID: MineralsChartID(index),
	}
}

// FormatFoods builds the cards and the exact aggregate for a response
func FormatFoods(foods []model.FoodItem) NutritionView {
	view := NutritionView{
		Cards:     make([]FoodCard, 0, len(foods)),
		Foods:     foods,
		Aggregate: model.Aggregate(foods),
	}
	for i, f := range foods {
		view.Cards = append(view.Cards, FormatFood(i, f))
	}
	return view
}

func servingLine(f model.FoodItem) string {
	line := strings.TrimSpace(Number(f.ServingQty) + " " + f.ServingUnit)
	if f.ServingWeightGrams != nil {
		line += fmt.Sprintf(" (%sg)", Number(*f.ServingWeightGrams))
	}
	return line
}

func altServingsLine(measures []model.AltMeasure) string {
	if len(measures) == 0 {
		return ""
	}
	parts := make([]string, 0, len(measures))
	for _, m := range measures {
		parts = append(parts, fmt.Sprintf("%sg (%s)", Number(m.ServingWeight), m.Measure))
	}
	return strings.Join(parts, ", ")
}
