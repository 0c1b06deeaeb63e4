package validators

import (
	"math"
	"time"

	"github.com/nnamm/go-workout-tracker/internal/apperr"
)

const (
	MaxCalories       = 10000
	MaxMinutesPerDay  = 24 * 60
	MaxWorkoutTypeLen = 100
	MaxNotesLen       = 1000
)

// isFuture reports whether t falls on a calendar day after today (local time)
func isFuture(t time.Time) bool {
	now := time.Now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return !t.Before(tomorrow)
}

func checkAmount(v *float64, field string, limit float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, field+" must be a number")
	}
	if *v < 0 {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, field+" must not be negative")
	}
	if *v > limit {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, field+" is unrealistically high")
	}
	return nil
}
