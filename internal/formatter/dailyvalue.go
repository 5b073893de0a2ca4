// Package formatter turns API records into display-ready values. Everything here is pure.
package formatter

import "strconv"

// Reference daily intakes used for daily value percentages
const (
	ProteinDailyGrams       = 50.0
	FiberDailyGrams         = 28.0
	PotassiumDailyMilligram = 3500.0
	SodiumDailyMilligram    = 2300.0
	IronDailyMilligram      = 18.0
	CalciumDailyMilligram   = 1300.0
	ZincDailyMilligram      = 11.0
)

// MineralChartCap bounds the bar magnitude of a mineral daily value percentage
const MineralChartCap = 200.0

// DailyValuePercent expresses value as a percentage of reference. An absent value counts as zero.
func DailyValuePercent(value *float64, reference float64) float64 {
	return valueOrZero(value) / reference * 100
}

// CapMineral limits a mineral percentage to MineralChartCap for bar magnitude only
func CapMineral(percent float64) float64 {
	if percent > MineralChartCap {
		return MineralChartCap
	}
	return percent
}

// OneDecimal formats v with exactly one decimal place
func OneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// TwoDecimals formats v with exactly two decimal places
func TwoDecimals(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Number formats v with the shortest representation, e.g. 1 or 182.5
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
