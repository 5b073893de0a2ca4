package chart

import (
	"github.com/pageza/nutriscope/backend/internal/formatter"
	"github.com/pageza/nutriscope/backend/internal/model"
)

// OverallCanvasID is the canvas holding the aggregate pie chart
const OverallCanvasID = "overallNutritionChart"

type series struct {
	label string
	icon  string
	color string
	value float64
}

func macroSeries(f model.FoodItem) []series {
	return []series{
		{label: "Protein", icon: "💪", color: "#FF6B6B", value: f.Protein},
		{label: "Carbs", icon: "🌾", color: "#4ECDC4", value: f.TotalCarbohydrate},
		{label: "Fat", icon: "🥑", color: "#45B7D1", value: f.TotalFat},
	}
}

func mineralSeries(f model.FoodItem) []series {
	return []series{
		{label: "Iron", icon: "🔨", color: "#96CEB4", value: formatter.DailyValuePercent(f.Iron, formatter.IronDailyMilligram)},
		{label: "Calcium", icon: "🦴", color: "#88D8B0", value: formatter.DailyValuePercent(f.Calcium, formatter.CalciumDailyMilligram)},
		{label: "Potassium", icon: "🍌", color: "#FF6F69", value: formatter.DailyValuePercent(f.Potassium, formatter.PotassiumDailyMilligram)},
		{label: "Zinc", icon: "🛡️", color: "#FFCC5C", value: formatter.DailyValuePercent(f.Zinc, formatter.ZincDailyMilligram)},
	}
}

func labelsAndColors(s []series) ([]string, []string) {
	labels := make([]string, len(s))
	colors := make([]string, len(s))
	for i, item := range s {
		labels[i] = item.icon + " " + item.label
		colors[i] = item.color
	}
	return labels, colors
}

// MacroPolar builds the per-food polar area chart of protein, carbs and fat.
// Each tooltip shows the amount and its share of the food's macro total.
func MacroPolar(index int, f model.FoodItem) *Config {
	items := macroSeries(f)
	labels, colors := labelsAndColors(items)

	var total float64
	for _, item := range items {
		total += item.value
	}

	values := make([]float64, len(items))
	tooltips := make([]string, len(items))
	for i, item := range items {
		values[i] = item.value
		share := "0"
		if total > 0 {
			share = formatter.OneDecimal(item.value / total * 100)
		}
		tooltips[i] = formatter.OneDecimal(item.value) + "g (" + share + "%)"
	}

	return &Config{
		CanvasID: formatter.MacroChartID(index),
		Type:     TypePolarArea,
		Data: Data{
			Labels:   labels,
			Datasets: []Dataset{{Data: values, BackgroundColor: colors, BorderWidth: intPtr(0)}},
		},
		Options: Options{
			Plugins: Plugins{
				Legend: Legend{Position: "bottom"},
				Title:  Title{Display: true, Text: "Macronutrient Distribution"},
			},
			Scales: map[string]Scale{
				"r": {
					Ticks: &Ticks{Display: boolPtr(false)},
					Grid:  &Toggle{Display: false},
				},
			},
		},
		TooltipLabels: tooltips,
	}
}

// MineralsBar builds the per-food horizontal bar chart of mineral daily values.
// Bar magnitude is capped at 200 while the tooltip keeps the true percentage.
func MineralsBar(index int, f model.FoodItem) *Config {
	items := mineralSeries(f)
	labels, colors := labelsAndColors(items)

	values := make([]float64, len(items))
	tooltips := make([]string, len(items))
	for i, item := range items {
		values[i] = formatter.CapMineral(item.value)
		tooltips[i] = formatter.OneDecimal(item.value) + "% of daily value"
	}

	return &Config{
		CanvasID: formatter.MineralsChartID(index),
		Type:     TypeBar,
		Data: Data{
			Labels:   labels,
			Datasets: []Dataset{{Data: values, BackgroundColor: colors, BorderWidth: intPtr(0)}},
		},
		Options: Options{
			IndexAxis:           "y",
			MaintainAspectRatio: boolPtr(false),
			Plugins: Plugins{
				Legend: Legend{Display: boolPtr(false)},
				Title:  Title{Display: true, Text: "Daily Value (%)"},
			},
			Scales: map[string]Scale{
				"x": {
					Max:   floatPtr(formatter.MineralChartCap),
					Grid:  &Toggle{Display: false},
					Ticks: &Ticks{StepSize: 50, Suffix: "%"},
				},
				"y": {
					Grid: &Toggle{Display: false},
				},
			},
		},
		TooltipLabels: tooltips,
	}
}

// OverallPie builds the aggregate pie chart from exact (unrounded) totals
func OverallPie(total model.AggregateNutrition) *Config {
	labels := []string{"Fat", "Carbs", "Protein"}
	values := []float64{total.Fat, total.Carbs, total.Protein}

	tooltips := make([]string, len(labels))
	for i, label := range labels {
		tooltips[i] = label + ": " + formatter.TwoDecimals(values[i]) + "g"
	}

	return &Config{
		CanvasID: OverallCanvasID,
		Type:     TypePie,
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Data: values,
				BackgroundColor: []string{
					"rgba(255, 99, 132, 0.8)",
					"rgba(54, 162, 235, 0.8)",
					"rgba(255, 206, 86, 0.8)",
				},
			}},
		},
		Options: Options{
			Responsive: boolPtr(true),
			Plugins: Plugins{
				Legend: Legend{Position: "top"},
				Title:  Title{Display: true, Text: "Overall Nutritional Breakdown"},
			},
		},
		TooltipLabels: tooltips,
	}
}

// BuildAll builds every chart for one nutrition view: two per food, then the overall pie
func BuildAll(view formatter.NutritionView) []*Config {
	charts := make([]*Config, 0, len(view.Foods)*2+1)
	for i, f := range view.Foods {
		charts = append(charts, MacroPolar(i, f), MineralsBar(i, f))
	}
	return append(charts, OverallPie(view.Aggregate))
}
