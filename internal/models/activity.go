package models

import "time"

// ActivityRecord is the normalized shape every stored row is mapped to
// before statistics are computed.
type ActivityRecord struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	OccurredAt      time.Time `json:"occurred_at"`
	CaloriesBurned  float64   `json:"calories_burned"`
	DurationMinutes float64   `json:"duration_minutes"`
	Label           string    `json:"label"`
}

// WeekdayLabels are the fixed labels of a WeeklySeries
var WeekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeeklySeries holds calories for the trailing 7 days; index 6 is today
type WeeklySeries struct {
	Labels [7]string  `json:"labels"`
	Values [7]float64 `json:"values"`
}

// MonthlyStats summarizes the current month. StreakDays covers the whole history.
type MonthlyStats struct {
	WorkoutCount         int     `json:"workout_count"`
	TotalCalories        float64 `json:"total_calories"`
	TotalDurationMinutes float64 `json:"total_duration_minutes"`
	StreakDays           int     `json:"streak_days"`
}
