package stats

import (
	"sort"
	"time"

	"github.com/nnamm/go-workout-tracker/internal/models"
)

// ComputeWeeklySeries sums calories into the trailing 7 days. Bucket 6 is
// today and bucket 0 is six days ago; future and older records are ignored.
// A zero today means the current date.
func ComputeWeeklySeries(records []models.ActivityRecord, today time.Time) models.WeeklySeries {
	today = resolveToday(today)
	series := models.WeeklySeries{Labels: models.WeekdayLabels}

	for _, r := range records {
		if r.OccurredAt.IsZero() {
			continue
		}
		occurred := startOfDay(r.OccurredAt, today.Location())
		daysAgo := daysBetween(occurred, today)
		if daysAgo < 0 || daysAgo >= 7 {
			continue
		}
		series.Values[6-daysAgo] += sanitize(r.CaloriesBurned)
	}

	return series
}

// ComputeMonthlyStats totals the records from the first of today's month.
// The streak is computed over every record so it can cross a month boundary.
func ComputeMonthlyStats(records []models.ActivityRecord, today time.Time) models.MonthlyStats {
	today = resolveToday(today)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	var stats models.MonthlyStats
	for _, r := range records {
		if r.OccurredAt.Before(monthStart) {
			continue
		}
		stats.WorkoutCount++
		stats.TotalCalories += sanitize(r.CaloriesBurned)
		stats.TotalDurationMinutes += sanitize(r.DurationMinutes)
	}
	stats.StreakDays = ComputeStreak(records, today)

	return stats
}

// ComputeStreak counts consecutive activity days ending at the most recent
// one. The streak is 0 when the most recent activity is older than yesterday.
func ComputeStreak(records []models.ActivityRecord, today time.Time) int {
	today = resolveToday(today)
	days := distinctDaysDesc(records, today.Location())
	if len(days) == 0 {
		return 0
	}

	mostRecent := days[0]
	if gap := daysBetween(mostRecent, today); gap != 0 && gap != 1 {
		return 0
	}

	streak := 1
	cursor := mostRecent
	for _, day := range days[1:] {
		if daysBetween(day, cursor) != 1 {
			break
		}
		streak++
		cursor = day
	}
	return streak
}

// LongestStreak returns the longest run of consecutive activity days ever
// recorded, independent of today.
func LongestStreak(records []models.ActivityRecord, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	days := distinctDaysDesc(records, loc)
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) == 1 {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 1
	}
	return longest
}

// distinctDaysDesc returns the calendar days with at least one record, most
// recent first
func distinctDaysDesc(records []models.ActivityRecord, loc *time.Location) []time.Time {
	seen := make(map[string]struct{}, len(records))
	days := make([]time.Time, 0, len(records))
	for _, r := range records {
		if r.OccurredAt.IsZero() {
			continue
		}
		day := startOfDay(r.OccurredAt, loc)
		key := day.Format(models.DateLayout)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})
	return days
}
