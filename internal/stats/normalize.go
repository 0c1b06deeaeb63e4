package stats

import (
	"github.com/nnamm/go-workout-tracker/internal/models"
)

// NormalizeRecords maps both raw sources into ActivityRecords using the
// average body weight. Workouts come first, then exercise tracking rows, each
// in input order. Nothing is deduplicated across sources.
func NormalizeRecords(workouts []models.Workout, tracking []models.ExerciseTracking) []models.ActivityRecord {
	return normalizeRecords(workouts, tracking, AverageWeightKg)
}

func normalizeRecords(workouts []models.Workout, tracking []models.ExerciseTracking, weightKg float64) []models.ActivityRecord {
	records := make([]models.ActivityRecord, 0, len(workouts)+len(tracking))
	for _, w := range workouts {
		records = append(records, FromWorkout(w))
	}
	for _, et := range tracking {
		records = append(records, FromExerciseTracking(et, weightKg))
	}
	return records
}

// FromWorkout maps a workout row. Missing calories or duration become 0.
func FromWorkout(w models.Workout) models.ActivityRecord {
	occurredAt := w.Date
	if occurredAt.IsZero() {
		occurredAt = w.CreatedAt
	}

	return models.ActivityRecord{
		ID:              w.ID,
		UserID:          w.UserID,
		OccurredAt:      occurredAt,
		CaloriesBurned:  valueOrZero(w.Calories),
		DurationMinutes: valueOrZero(w.Duration),
		Label:           w.WorkoutType,
	}
}

// FromExerciseTracking maps an exercise tracking row. Calories are always
// estimated from the duration and the exercise name.
func FromExerciseTracking(et models.ExerciseTracking, weightKg float64) models.ActivityRecord {
	occurredAt := et.CreatedAt
	if et.CompletedAt != nil && !et.CompletedAt.IsZero() {
		occurredAt = *et.CompletedAt
	}

	duration := valueOrZero(et.DurationMinutes)
	return models.ActivityRecord{
		ID:              et.ID,
		UserID:          et.UserID,
		OccurredAt:      occurredAt,
		CaloriesBurned:  EstimateCaloriesForWeight(duration, et.ExerciseName, weightKg),
		DurationMinutes: duration,
		Label:           et.ExerciseName,
	}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return sanitize(*v)
}
