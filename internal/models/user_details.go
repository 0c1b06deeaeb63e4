package models

import "time"

// FitnessGoals are the goals a user can pick for their profile
var FitnessGoals = []string{
	"Weight Loss",
	"Muscle Gain",
	"General Fitness",
	"Sports Performance",
	"Flexibility",
}

// UserDetails is the per-user profile. WeightKg feeds calorie estimation.
type UserDetails struct {
	UserID      string    `json:"user_id"`
	Age         int       `json:"age"`
	WeightKg    float64   `json:"weight_kg"`
	HeightCm    int       `json:"height_cm"`
	FitnessGoal string    `json:"fitness_goal"`
	UpdatedAt   time.Time `json:"updated_at"`
}
