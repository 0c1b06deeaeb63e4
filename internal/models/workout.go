package models

import (
	"encoding/json"
	"time"
)

// Workout is a generic workout row that reports calories and duration directly
type Workout struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Date        time.Time `json:"date"`
	Calories    *float64  `json:"calories,omitempty"`
	Duration    *float64  `json:"duration,omitempty"`
	WorkoutType string    `json:"workout_type"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UnmarshalJSON accepts the date either as YYYY-MM-DD or as an RFC3339 timestamp
func (w *Workout) UnmarshalJSON(data []byte) error {
	type alias Workout
	aux := &struct {
		Date string `json:"date"`
		*alias
	}{
		alias: (*alias)(w),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	date, err := ParseFlexibleTime(aux.Date)
	if err != nil {
		return err
	}
	w.Date = date
	return nil
}
