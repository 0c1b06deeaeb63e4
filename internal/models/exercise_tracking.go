package models

import (
	"encoding/json"
	"time"
)

// ExerciseTracking is a timed session of a single catalog exercise.
// It never carries calories; those are estimated from the duration.
type ExerciseTracking struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	ExerciseID      string     `json:"exercise_id"`
	ExerciseName    string     `json:"exercise_name"`
	TargetMuscle    string     `json:"target_muscle"`
	EquipmentUsed   string     `json:"equipment_used"`
	BodyPart        string     `json:"body_part"`
	DurationMinutes *float64   `json:"duration_minutes,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (et *ExerciseTracking) UnmarshalJSON(data []byte) error {
	type alias ExerciseTracking
	aux := &struct {
		CompletedAt *string `json:"completed_at"`
		*alias
	}{
		alias: (*alias)(et),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	et.CompletedAt = nil
	if aux.CompletedAt != nil {
		completedAt, err := ParseFlexibleTime(*aux.CompletedAt)
		if err != nil {
			return err
		}
		if !completedAt.IsZero() {
			et.CompletedAt = &completedAt
		}
	}
	return nil
}
