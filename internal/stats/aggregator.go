// Package stats computes workout statistics from a flat set of activity
// records. Every function is pure: it recomputes from the input it is given
// and holds no state between calls.
package stats

import (
	"time"

	"github.com/nnamm/go-workout-tracker/internal/models"
)

// Summary is everything the progress view needs in one payload
type Summary struct {
	Weekly        models.WeeklySeries `json:"weekly"`
	Monthly       models.MonthlyStats `json:"monthly"`
	LongestStreak int                 `json:"longest_streak"`
	Records       int                 `json:"records"`
}

// Aggregator normalizes raw rows and computes a Summary. WeightKg is used for
// calorie estimation of exercise tracking rows; zero means AverageWeightKg.
type Aggregator struct {
	WeightKg float64
}

func NewAggregator(weightKg float64) *Aggregator {
	return &Aggregator{WeightKg: weightKg}
}

// Normalize maps both raw sources into ActivityRecords
func (a *Aggregator) Normalize(workouts []models.Workout, tracking []models.ExerciseTracking) []models.ActivityRecord {
	return normalizeRecords(workouts, tracking, a.weight())
}

// Summarize computes the weekly series and monthly stats relative to today
func (a *Aggregator) Summarize(workouts []models.Workout, tracking []models.ExerciseTracking, today time.Time) Summary {
	today = resolveToday(today)
	records := a.Normalize(workouts, tracking)

	return Summary{
		Weekly:        ComputeWeeklySeries(records, today),
		Monthly:       ComputeMonthlyStats(records, today),
		LongestStreak: LongestStreak(records, today.Location()),
		Records:       len(records),
	}
}

func (a *Aggregator) weight() float64 {
	if a == nil || !(a.WeightKg > 0) {
		return AverageWeightKg
	}
	return a.WeightKg
}
