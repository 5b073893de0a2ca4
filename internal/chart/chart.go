// Package chart builds Chart.js configurations for nutrition results.
//
// Tooltip callbacks cannot travel as JSON, so every config carries the tooltip
// text for each data point in TooltipLabels. The page script installs a callback
// that indexes into it.
package chart

// Chart types understood by the page script
const (
	TypePolarArea = "polarArea"
	TypeBar       = "bar"
	TypePie       = "pie"
)

// Config is one chart attached to one canvas
type Config struct {
	CanvasID      string   `json:"canvasId"`
	Type          string   `json:"type"`
	Data          Data     `json:"data"`
	Options       Options  `json:"options"`
	TooltipLabels []string `json:"tooltipLabels"`
	Generation    uint64   `json:"generation"`
}

// Data is the Chart.js data block
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is a single Chart.js dataset
type Dataset struct {
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor"`
	BorderWidth     *int      `json:"borderWidth,omitempty"`
}

// Options is the subset of Chart.js options the builders use
type Options struct {
	IndexAxis           string           `json:"indexAxis,omitempty"`
	Responsive          *bool            `json:"responsive,omitempty"`
	MaintainAspectRatio *bool            `json:"maintainAspectRatio,omitempty"`
	Plugins             Plugins          `json:"plugins"`
	Scales              map[string]Scale `json:"scales,omitempty"`
}

// Plugins configures legend and title
type Plugins struct {
	Legend Legend `json:"legend"`
	Title  Title  `json:"title"`
}

// Legend configures the chart legend
type Legend struct {
	Display  *bool  `json:"display,omitempty"`
	Position string `json:"position,omitempty"`
}

// Title configures the chart title
type Title struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

// Scale configures one axis
type Scale struct {
	Max   *float64 `json:"max,omitempty"`
	Grid  *Toggle  `json:"grid,omitempty"`
	Ticks *Ticks   `json:"ticks,omitempty"`
}

// Toggle is a {display: bool} block
type Toggle struct {
	Display bool `json:"display"`
}

// Ticks configures axis ticks. Suffix is appended to each tick label by the page script.
type Ticks struct {
	Display  *bool   `json:"display,omitempty"`
	StepSize float64 `json:"stepSize,omitempty"`
	Suffix   string  `json:"suffix,omitempty"`
}

func boolPtr(v bool) *bool {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
