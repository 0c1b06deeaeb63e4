package validators

import (
	"github.com/nnamm/go-workout-tracker/internal/apperr"
	"github.com/nnamm/go-workout-tracker/internal/models"
)

type WorkoutValidator interface {
	Validate(*models.Workout) error
}

type DefaultWorkoutValidator struct{}

func NewWorkoutValidator() WorkoutValidator {
	return &DefaultWorkoutValidator{}
}

// Validate checks a workout before it is stored. The date may be omitted,
// in which case the creation time stands in for it.
func (v *DefaultWorkoutValidator) Validate(w *models.Workout) error {
	if w == nil {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, "workout is required")
	}

	if !w.Date.IsZero() && isFuture(w.Date) {
		return apperr.NewAppError(apperr.ErrorTypeInvalidDate, "future dates are not allowed")
	}

	if err := checkAmount(w.Calories, "calories", MaxCalories); err != nil {
		return err
	}
	if err := checkAmount(w.Duration, "duration", MaxMinutesPerDay); err != nil {
		return err
	}

	if len(w.WorkoutType) > MaxWorkoutTypeLen {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, "workout type is too long")
	}
	if len(w.Notes) > MaxNotesLen {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, "notes are too long")
	}

	return nil
}
