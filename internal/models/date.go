package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout used for calendar dates in request and response bodies
const DateLayout = "2006-01-02"

// ParseFlexibleTime accepts either a calendar date (YYYY-MM-DD) or an RFC3339 timestamp
func ParseFlexibleTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}
