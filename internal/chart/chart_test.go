package chart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutriscope/backend/internal/formatter"
	"github.com/pageza/nutriscope/backend/internal/model"
)

func TestMacroPolar(t *testing.T) {
	food := model.FoodItem{Protein: 30, TotalCarbohydrate: 10, TotalFat: 10}

	cfg := MacroPolar(1, food)

	assert.Equal(t, "macroChart-1", cfg.CanvasID)
	assert.Equal(t, TypePolarArea, cfg.Type)
	assert.Equal(t, []string{"💪 Protein", "🌾 Carbs", "🥑 Fat"}, cfg.Data.Labels)
	require.Len(t, cfg.Data.Datasets, 1)
	assert.Equal(t, []float64{30, 10, 10}, cfg.Data.Datasets[0].Data)
	assert.Equal(t, []string{"#FF6B6B", "#4ECDC4", "#45B7D1"}, cfg.Data.Datasets[0].BackgroundColor)
	assert.Equal(t, "bottom", cfg.Options.Plugins.Legend.Position)
	assert.Equal(t, "Macronutrient Distribution", cfg.Options.Plugins.Title.Text)
	assert.Equal(t, []string{"30.0g (60.0%)", "10.0g (20.0%)", "10.0g (20.0%)"}, cfg.TooltipLabels)
}

func TestMacroPolar_ZeroTotal(t *testing.T) {
	cfg := MacroPolar(0, model.FoodItem{})

	assert.Equal(t, []string{"0.0g (0%)", "0.0g (0%)", "0.0g (0%)"}, cfg.TooltipLabels)
}

func TestMineralsBar(t *testing.T) {
	food := model.FoodItem{
		Iron:      model.Float(36),  // 200%
		Calcium:   model.Float(130), // 10%
		Potassium: model.Float(350), // 10%
		Zinc:      model.Float(55),  // 500%
	}

	cfg := MineralsBar(0, food)

	assert.Equal(t, "mineralsChart-0", cfg.CanvasID)
	assert.Equal(t, TypeBar, cfg.Type)
	assert.Equal(t, "y", cfg.Options.IndexAxis)
	assert.Equal(t, []string{"🔨 Iron", "🦴 Calcium", "🍌 Potassium", "🛡️ Zinc"}, cfg.Data.Labels)

	data := cfg.Data.Datasets[0].Data
	require.Len(t, data, 4)
	assert.InDelta(t, 200, data[0], 1e-9)
	assert.InDelta(t, 10, data[1], 1e-9)
	assert.InDelta(t, 10, data[2], 1e-9)
	assert.Equal(t, 200.0, data[3], "bar is capped")

	assert.Equal(t, "500.0% of daily value", cfg.TooltipLabels[3], "tooltip keeps the uncapped value")

	x := cfg.Options.Scales["x"]
	require.NotNil(t, x.Max)
	assert.Equal(t, formatter.MineralChartCap, *x.Max)
	assert.Equal(t, 50.0, x.Ticks.StepSize)
	assert.Equal(t, "%", x.Ticks.Suffix)
	assert.Equal(t, "Daily Value (%)", cfg.Options.Plugins.Title.Text)
}

func TestOverallPie(t *testing.T) {
	cfg := OverallPie(model.AggregateNutrition{Fat: 2.08, Carbs: 4.08, Protein: 6.085})

	assert.Equal(t, OverallCanvasID, cfg.CanvasID)
	assert.Equal(t, TypePie, cfg.Type)
	assert.Equal(t, []string{"Fat", "Carbs", "Protein"}, cfg.Data.Labels)
	assert.Equal(t, []float64{2.08, 4.08, 6.085}, cfg.Data.Datasets[0].Data)
	assert.Equal(t, "Fat: 2.08g", cfg.TooltipLabels[0])
	assert.Equal(t, "top", cfg.Options.Plugins.Legend.Position)
	assert.Equal(t, "Overall Nutritional Breakdown", cfg.Options.Plugins.Title.Text)
}

func TestConfig_JSONShape(t *testing.T) {
	raw, err := json.Marshal(MineralsBar(0, model.FoodItem{}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "mineralsChart-0", decoded["canvasId"])
	assert.Contains(t, decoded, "tooltipLabels")
	options := decoded["options"].(map[string]any)
	assert.Equal(t, false, options["maintainAspectRatio"])
}

func TestBuildAll(t *testing.T) {
	view := formatter.FormatFoods([]model.FoodItem{{FoodName: "a"}, {FoodName: "b"}})

	charts := BuildAll(view)

	require.Len(t, charts, 5)
	assert.Equal(t, "macroChart-0", charts[0].CanvasID)
	assert.Equal(t, "mineralsChart-0", charts[1].CanvasID)
	assert.Equal(t, "macroChart-1", charts[2].CanvasID)
	assert.Equal(t, "mineralsChart-1", charts[3].CanvasID)
	assert.Equal(t, OverallCanvasID, charts[4].CanvasID)
}

func TestRegistry_Replace(t *testing.T) {
	r := NewRegistry()

	first := MacroPolar(0, model.FoodItem{})
	_, released := r.Replace(first)
	assert.False(t, released)
	assert.Equal(t, uint64(1), first.Generation)

	second := MacroPolar(0, model.FoodItem{Protein: 1})
	prev, released := r.Replace(second)
	assert.True(t, released)
	assert.Equal(t, uint64(1), prev.Generation)
	assert.Equal(t, uint64(2), second.Generation)
	assert.Equal(t, 1, r.Len(), "only one chart per canvas")
}

func TestRegistry_ReplaceAll(t *testing.T) {
	r := NewRegistry()
	r.ReplaceAll(BuildAll(formatter.FormatFoods([]model.FoodItem{{}, {}, {}})))
	require.Equal(t, 7, r.Len())

	released := r.ReplaceAll(BuildAll(formatter.FormatFoods([]model.FoodItem{{}})))

	assert.Equal(t, []string{
		"macroChart-0", "macroChart-1", "macroChart-2",
		"mineralsChart-0", "mineralsChart-1", "mineralsChart-2",
		OverallCanvasID,
	}, released)
	assert.Equal(t, 3, r.Len())
}

func TestRegistry_ReplaceAll_Retain(t *testing.T) {
	r := NewRegistry()
	r.ReplaceAll(BuildAll(formatter.FormatFoods([]model.FoodItem{{}})))

	released := r.ReplaceAll(nil, OverallCanvasID)

	assert.Equal(t, []string{"macroChart-0", "mineralsChart-0"}, released)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Release(t *testing.T) {
	r := NewRegistry()
	r.Replace(OverallPie(model.AggregateNutrition{}))

	_, ok := r.Release(OverallCanvasID)
	assert.True(t, ok)
	_, ok = r.Release(OverallCanvasID)
	assert.False(t, ok)
	assert.Zero(t, r.Len())
}

func TestRegistry_ZeroValueUsable(t *testing.T) {
	var r Registry
	_, released := r.Replace(OverallPie(model.AggregateNutrition{}))
	assert.False(t, released)
	assert.Equal(t, 1, r.Len())
}
