package handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/nnamm/go-workout-tracker/internal/apperr"
	"github.com/nnamm/go-workout-tracker/internal/database"
	"github.com/nnamm/go-workout-tracker/internal/metrics"
	"github.com/nnamm/go-workout-tracker/internal/stats"
)

// StatsHandler serves statistics recomputed from the user's full record set
type StatsHandler struct {
	base
	Workouts        database.WorkoutStore
	Tracking        database.ExerciseTrackingStore
	Profiles        database.ProfileStore
	defaultWeightKg float64
	metrics         *metrics.Manager
}

func NewStatsHandler(
	workouts database.WorkoutStore,
	tracking database.ExerciseTrackingStore,
	profiles database.ProfileStore,
	defaultWeightKg float64,
	metricsManager *metrics.Manager,
	settings Settings,
) *StatsHandler {
	return &StatsHandler{
		base:            base{settings: settings},
		Workouts:        workouts,
		Tracking:        tracking,
		Profiles:        profiles,
		defaultWeightKg: defaultWeightKg,
		metrics:         metricsManager,
	}
}

// Where the body weight used for calorie estimation came from
const (
	WeightFromQuery   = "query"
	WeightFromProfile = "profile"
	WeightFromDefault = "default"
)

type SummaryResult struct {
	Today        string  `json:"today"`
	WeightKg     float64 `json:"weight_kg"`
	WeightSource string  `json:"weight_source"`
	stats.Summary
}

type EstimateResult struct {
	Label           string  `json:"label"`
	DurationMinutes float64 `json:"duration_minutes"`
	WeightKg        float64 `json:"weight_kg"`
	WeightSource    string  `json:"weight_source"`
	MET             float64 `json:"met"`
	KnownLabel      bool    `json:"known_label"`
	Calories        float64 `json:"calories"`
}

// GetSummary returns the trailing 7-day series and month-to-date stats.
// Query: today=YYYYMMDD (default now), weight_kg=n (default: profile weight).
func (h *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	query := r.URL.Query()
	today := time.Now()
	if todayStr := query.Get("today"); todayStr != "" {
		today, err = time.ParseInLocation("20060102", todayStr, time.Local)
		if err != nil {
			h.handleError(w, apperr.NewAppError(apperr.ErrorTypeInvalidDate, "Invalid date format: "+todayStr+" (Use YYYYMMDD)"))
			return
		}
	}

	weightKg, source, err := h.weight(ctx, userID, query.Get("weight_kg"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	workouts, err := h.Workouts.ReadWorkouts(ctx, userID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	tracking, err := h.Tracking.ReadExerciseTrackings(ctx, userID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	summary := stats.NewAggregator(weightKg).Summarize(workouts, tracking, today)
	h.metrics.StatsComputed("summary")

	h.sendJSONResponse(w, SummaryResult{
		Today:        today.Format("2006-01-02"),
		WeightKg:     weightKg,
		WeightSource: source,
		Summary:      summary,
	}, http.StatusOK)
}

// GetEstimate estimates calories for a single activity.
// Query: duration=minutes (required), label=s, weight_kg=n (default: profile weight).
func (h *StatsHandler) GetEstimate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	query := r.URL.Query()

	durationStr := query.Get("duration")
	if durationStr == "" {
		h.handleError(w, apperr.NewAppError(apperr.ErrorTypeBadRequest, "duration parameter is required"))
		return
	}
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil || math.IsNaN(duration) || math.IsInf(duration, 0) || duration < 0 {
		h.handleError(w, apperr.NewAppError(apperr.ErrorTypeInvalidFormat, "Invalid duration: "+durationStr+" (minutes, not negative)"))
		return
	}

	weightKg, source, err := h.weight(ctx, userID, query.Get("weight_kg"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	label := query.Get("label")
	met, known := stats.METFor(label)
	h.metrics.StatsComputed("estimate")

	h.sendJSONResponse(w, EstimateResult{
		Label:           label,
		DurationMinutes: duration,
		WeightKg:        weightKg,
		WeightSource:    source,
		MET:             met,
		KnownLabel:      known,
		Calories:        stats.EstimateCaloriesForWeight(duration, label, weightKg),
	}, http.StatusOK)
}

// weight picks the body weight for calorie estimation: the weight_kg query
// parameter, then the user's stored profile, then the configured default.
func (h *StatsHandler) weight(ctx context.Context, userID, weightStr string) (float64, string, error) {
	if weightStr != "" {
		weightKg, err := strconv.ParseFloat(weightStr, 64)
		if err != nil || !(weightKg > 0) || math.IsInf(weightKg, 0) {
			return 0, "", apperr.NewAppError(apperr.ErrorTypeInvalidFormat, "Invalid weight_kg: "+weightStr+" (must be positive)")
		}
		return weightKg, WeightFromQuery, nil
	}

	if h.Profiles != nil {
		details, err := h.Profiles.ReadUserDetails(ctx, userID)
		if err != nil {
			return 0, "", err
		}
		if details != nil && details.WeightKg > 0 {
			return details.WeightKg, WeightFromProfile, nil
		}
	}

	if h.defaultWeightKg > 0 {
		return h.defaultWeightKg, WeightFromDefault, nil
	}
	return stats.AverageWeightKg, WeightFromDefault, nil
}
