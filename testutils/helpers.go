package testutils

import (
	"testing"
	"time"

	"github.com/nnamm/go-workout-tracker/internal/models"
	"github.com/stretchr/testify/assert"
)

func CreateDate(dateStr string) time.Time {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}

// FindWorkoutByDate returns the first workout on the given calendar date
func FindWorkoutByDate(workouts []models.Workout, dateStr string) *models.Workout {
	for i := range workouts {
		if workouts[i].Date.UTC().Format("2006-01-02") == dateStr {
			return &workouts[i]
		}
	}
	return nil
}

// AssertWorkout compares the stored fields of got against want
func AssertWorkout(t *testing.T, got, want *models.Workout) {
	t.Helper()

	assert.Equal(t, want.UserID, got.UserID)
	assert.Equal(t, want.Date.UTC().Format("2006-01-02"), got.Date.UTC().Format("2006-01-02"))
	assert.Equal(t, want.Calories, got.Calories)
	assert.Equal(t, want.Duration, got.Duration)
	assert.Equal(t, want.WorkoutType, got.WorkoutType)
	assert.Equal(t, want.Notes, got.Notes)
	assert.NotEmpty(t, got.ID)
	assert.NotZero(t, got.CreatedAt)
	assert.NotZero(t, got.UpdatedAt)
}

// AssertWorkouts compares workouts pairwise by position
func AssertWorkouts(t *testing.T, got, want []models.Workout) {
	t.Helper()

	if !assert.Len(t, got, len(want)) {
		return
	}
	for i := range want {
		AssertWorkout(t, &got[i], &want[i])
	}
}
