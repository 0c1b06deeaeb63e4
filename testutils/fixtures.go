package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/nnamm/go-workout-tracker/internal/database"
	"github.com/nnamm/go-workout-tracker/internal/models"
)

const TestUserID = "user-test-1"

var workoutTypes = []string{"walking", "running", "cycling", "swimming", "weightlifting", "yoga", "hiit"}

func CreateWorkout(userID, date string, calories, duration float64, workoutType string) *models.Workout {
	return &models.Workout{
		UserID:      userID,
		Date:        CreateDate(date),
		Calories:    Float(calories),
		Duration:    Float(duration),
		WorkoutType: workoutType,
	}
}

func CreateWorkouts(userID string) []*models.Workout {
	return []*models.Workout{
		CreateWorkout(userID, "2024-01-01", 300, 30, "running"),
		CreateWorkout(userID, "2024-01-02", 150, 45, "yoga"),
		CreateWorkout(userID, "2024-01-15", 420, 60, "cycling"),
		CreateWorkout(userID, "2024-01-31", 200, 20, "hiit"),
		CreateWorkout(userID, "2024-02-01", 250, 40, "swimming"),
		CreateWorkout(userID, "2024-02-14", 180, 50, "walking"),
		CreateWorkout(userID, "2024-12-31", 500, 75, "running"),
		CreateWorkout(userID, "2025-01-01", 100, 15, "yoga"),
	}
}

func CreateExerciseTracking(userID, name string, duration float64, completedAt *time.Time) *models.ExerciseTracking {
	return &models.ExerciseTracking{
		UserID:          userID,
		ExerciseID:      "0001",
		ExerciseName:    name,
		TargetMuscle:    "abs",
		EquipmentUsed:   "body weight",
		BodyPart:        "waist",
		DurationMinutes: Float(duration),
		CompletedAt:     completedAt,
	}
}

// RandomWorkouts builds n plausible workouts dated within the last 60 days.
// The same seed always yields the same workouts.
func RandomWorkouts(seed int64, userID string, n int) []*models.Workout {
	faker := gofakeit.New(seed)
	now := time.Now()

	workouts := make([]*models.Workout, 0, n)
	for range n {
		workouts = append(workouts, &models.Workout{
			UserID:      userID,
			Date:        faker.DateRange(now.AddDate(0, 0, -60), now),
			Calories:    Float(float64(faker.Number(50, 900))),
			Duration:    Float(float64(faker.Number(5, 120))),
			WorkoutType: faker.RandomString(workoutTypes),
			Notes:       faker.Sentence(6),
		})
	}
	return workouts
}

// SeedWorkouts stores workouts and fails the test on the first error
func SeedWorkouts(ctx context.Context, t *testing.T, db database.WorkoutStore, workouts []*models.Workout) []*models.Workout {
	t.Helper()

	created := make([]*models.Workout, 0, len(workouts))
	for _, w := range workouts {
		c, err := db.CreateWorkout(ctx, w)
		if err != nil {
			t.Fatalf("failed to setup test data: %v", err)
		}
		created = append(created, c)
	}
	return created
}
