package validators

import (
	"strings"

	"github.com/nnamm/go-workout-tracker/internal/apperr"
	"github.com/nnamm/go-workout-tracker/internal/models"
)

type ExerciseTrackingValidator interface {
	Validate(*models.ExerciseTracking) error
}

type DefaultExerciseTrackingValidator struct{}

func NewExerciseTrackingValidator() ExerciseTrackingValidator {
	return &DefaultExerciseTrackingValidator{}
}

func (v *DefaultExerciseTrackingValidator) Validate(et *models.ExerciseTracking) error {
	if et == nil {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, "exercise tracking is required")
	}

	// the name drives calorie estimation
	if strings.TrimSpace(et.ExerciseName) == "" {
		return apperr.NewAppError(apperr.ErrorTypeBadRequest, "exercise name is required")
	}

	if err := checkAmount(et.DurationMinutes, "duration minutes", MaxMinutesPerDay); err != nil {
		return err
	}

	if et.CompletedAt != nil && isFuture(*et.CompletedAt) {
		return apperr.NewAppError(apperr.ErrorTypeInvalidDate, "future dates are not allowed")
	}

	return nil
}
