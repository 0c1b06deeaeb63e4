package models

import "time"

// DailyProgress holds the minutes a user spent exercising on one calendar day
type DailyProgress struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Date         time.Time `json:"date"`
	MinutesSpent int       `json:"minutes_spent"`
	CreatedAt    time.Time `json:"created_at"`
}
