// Package database provides record storage for the workout tracker: raw
// workout rows, exercise tracking rows and daily progress, always scoped to
// one user.
package database

import (
	"context"
	"errors"
	"time"

	"github.com/nnamm/go-workout-tracker/internal/models"
)

// ErrRecordNotFound is returned (wrapped) by update and delete operations
// when no row matches. Reads of a missing row return (nil, nil) instead.
var ErrRecordNotFound = errors.New("record not found")

type WorkoutStore interface {
	CreateWorkout(ctx context.Context, w *models.Workout) (*models.Workout, error)
	ReadWorkout(ctx context.Context, userID, id string) (*models.Workout, error)
	// ReadWorkouts returns every workout of the user in insertion order.
	ReadWorkouts(ctx context.Context, userID string) ([]models.Workout, error)
	// ReadWorkoutsByRange returns workouts whose effective date (date, or
	// created_at when the date is missing) is in [start, end).
	ReadWorkoutsByRange(ctx context.Context, userID string, start, end time.Time) ([]models.Workout, error)
	UpdateWorkout(ctx context.Context, w *models.Workout) error
	DeleteWorkout(ctx context.Context, userID, id string) error
}

type ExerciseTrackingStore interface {
	CreateExerciseTracking(ctx context.Context, et *models.ExerciseTracking) (*models.ExerciseTracking, error)
	ReadExerciseTrackings(ctx context.Context, userID string) ([]models.ExerciseTracking, error)
	DeleteExerciseTracking(ctx context.Context, userID, id string) error
}

type ProgressStore interface {
	// AddDailyProgress adds minutes to the user's row for the calendar day of
	// date, creating the row when absent, and returns the resulting row.
	AddDailyProgress(ctx context.Context, userID string, date time.Time, minutes int) (*models.DailyProgress, error)
	// ReadDailyProgress returns the user's rows ordered by date ascending.
	ReadDailyProgress(ctx context.Context, userID string) ([]models.DailyProgress, error)
}

type ProfileStore interface {
	// UpsertUserDetails creates or replaces the profile of d.UserID and
	// returns the stored row.
	UpsertUserDetails(ctx context.Context, d *models.UserDetails) (*models.UserDetails, error)
	// ReadUserDetails returns (nil, nil) when the user has no profile yet.
	ReadUserDetails(ctx context.Context, userID string) (*models.UserDetails, error)
}

type DBInterface interface {
	WorkoutStore
	ExerciseTrackingStore
	ProgressStore
	ProfileStore
	HealthCheck(ctx context.Context) error
	Close() error
}

// calendarDay keeps only the calendar date of t, as midnight UTC, which is
// how daily progress rows are keyed.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
