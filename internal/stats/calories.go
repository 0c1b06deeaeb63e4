package stats

import (
	"math"
	"strings"
	"unicode"
)

// AverageWeightKg is the body weight used when no per-user weight is known
const AverageWeightKg = 70.0

const defaultMET = 4.0

// metTable maps normalized activity labels to their metabolic equivalent
var metTable = map[string]float64{
	"walking":       3.5,
	"running":       8,
	"cycling":       7.5,
	"swimming":      6,
	"weightlifting": 3.5,
	"yoga":          2.5,
	"hiit":          8,
}

// EstimateCalories estimates the calories burned for an activity using the
// average body weight.
func EstimateCalories(durationMinutes float64, label string) float64 {
	return EstimateCaloriesForWeight(durationMinutes, label, AverageWeightKg)
}

// EstimateCaloriesForWeight estimates calories as MET * weight * hours, rounded
// half up. Unknown labels use a MET of 4. A non-positive weight falls back to
// AverageWeightKg.
func EstimateCaloriesForWeight(durationMinutes float64, label string, weightKg float64) float64 {
	durationMinutes = sanitize(durationMinutes)
	if !(weightKg > 0) || math.IsInf(weightKg, 0) {
		weightKg = AverageWeightKg
	}

	met, ok := metTable[normalizeLabel(label)]
	if !ok {
		met = defaultMET
	}

	return roundHalfUp(met * weightKg * (durationMinutes / 60))
}

// METFor returns the MET used for a label and whether the label was known
func METFor(label string) (float64, bool) {
	met, ok := metTable[normalizeLabel(label)]
	if !ok {
		return defaultMET, false
	}
	return met, true
}

func normalizeLabel(label string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, label)
}

// sanitize coerces NaN, infinite and negative values to 0
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
