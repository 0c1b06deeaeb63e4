package stats

import "time"

// startOfDay truncates t to midnight in loc
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// resolveToday returns the midnight of today, defaulting to the current date
func resolveToday(today time.Time) time.Time {
	if today.IsZero() {
		today = time.Now()
	}
	return startOfDay(today, today.Location())
}

// daysBetween counts whole calendar days from a to b. Both are compared by
// their calendar date so DST transitions do not shift the result.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
