package validators

import (
	"fmt"
	"math"
	"slices"

	"github.com/nnamm/go-workout-tracker/internal/apperr"
	"github.com/nnamm/go-workout-tracker/internal/models"
)

const (
	MinAge      = 13
	MaxAge      = 100
	MinWeightKg = 30
	MaxWeightKg = 300
	MinHeightCm = 100
	MaxHeightCm = 250
)

// ValidateUserDetails checks a profile before it is stored
func ValidateUserDetails(d *models.UserDetails) error {
	if d == nil {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, "profile is required")
	}

	if d.Age < MinAge || d.Age > MaxAge {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, fmt.Sprintf("age must be between %d and %d", MinAge, MaxAge))
	}
	if math.IsNaN(d.WeightKg) || d.WeightKg < MinWeightKg || d.WeightKg > MaxWeightKg {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, fmt.Sprintf("weight must be between %d and %d kg", MinWeightKg, MaxWeightKg))
	}
	if d.HeightCm < MinHeightCm || d.HeightCm > MaxHeightCm {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, fmt.Sprintf("height must be between %d and %d cm", MinHeightCm, MaxHeightCm))
	}
	if !slices.Contains(models.FitnessGoals, d.FitnessGoal) {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, "unknown fitness goal: "+d.FitnessGoal)
	}

	return nil
}
