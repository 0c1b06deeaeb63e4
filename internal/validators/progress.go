package validators

import (
	"time"

	"github.com/nnamm/go-workout-tracker/internal/apperr"
)

// ValidateDailyProgress checks minutes to be added to the day of date
func ValidateDailyProgress(date time.Time, minutes int) error {
	if date.IsZero() {
		return apperr.NewAppError(apperr.ErrorTypeInvalidDate, "date is required")
	}
	if isFuture(date) {
		return apperr.NewAppError(apperr.ErrorTypeInvalidDate, "future dates are not allowed")
	}
	if minutes <= 0 {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, "minutes spent must be positive")
	}
	if minutes > MaxMinutesPerDay {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, "minutes spent is unrealistically high")
	}
	return nil
}
