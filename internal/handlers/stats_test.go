package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/nnamm/go-workout-tracker/internal/models"
	"github.com/nnamm/go-workout-tracker/internal/stats"
	"github.com/nnamm/go-workout-tracker/internal/testutil"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStatsData(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()

	seedWorkout(t, env, testUser, time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local), 300)
	seedWorkout(t, env, testUser, time.Date(2024, 3, 14, 12, 0, 0, 0, time.Local), 200)
	seedWorkout(t, env, "other-user", time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local), 999)

	completed := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	_, err := env.db.CreateExerciseTracking(ctx, &models.ExerciseTracking{
		UserID:          testUser,
		ExerciseName:    "Running",
		DurationMinutes: ptr(30.0),
		CompletedAt:     &completed,
	})
	require.NoError(t, err)
}

func TestStatsHandler_GetSummary(t *testing.T) {
	env := newTestEnv(t, devSettings)
	seedStatsData(t, env)

	rr := env.do(t, http.MethodGet, "/stats/summary?today=20240315", "", testUser)
	testutil.AssertHTTPStatusCode(t, rr.Code, http.StatusOK)

	result := decode[SummaryResult](t, rr)
	assert.Equal(t, "2024-03-15", result.Today)
	assert.Equal(t, 3, result.Records)
	assert.Equal(t, models.WeekdayLabels, result.Weekly.Labels)
	// running at 70kg for 30 minutes: 8 * 70 * 0.5
	assert.Equal(t, [7]float64{0, 0, 0, 0, 0, 200, 580}, result.Weekly.Values)
	assert.Equal(t, models.MonthlyStats{
		WorkoutCount:         3,
		TotalCalories:        780,
		TotalDurationMinutes: 90,
		StreakDays:           2,
	}, result.Monthly)
	assert.Equal(t, 2, result.LongestStreak)

	assert.Equal(t, 1.0, promtestutil.ToFloat64(env.metrics.CounterStatsComputations.WithLabelValues("summary")))
}

func TestStatsHandler_GetSummaryWeight(t *testing.T) {
	env := newTestEnv(t, devSettings)
	seedStatsData(t, env)

	rr := env.do(t, http.MethodGet, "/stats/summary?today=20240315&weight_kg=80", "", testUser)
	testutil.AssertHTTPStatusCode(t, rr.Code, http.StatusOK)

	result := decode[SummaryResult](t, rr)
	assert.Equal(t, 620.0, result.Weekly.Values[6])
	assert.Equal(t, 820.0, result.Monthly.TotalCalories)
}

func TestStatsHandler_GetSummaryEmpty(t *testing.T) {
	env := newTestEnv(t, devSettings)

	rr := env.do(t, http.MethodGet, "/stats/summary", "", testUser)
	testutil.AssertHTTPStatusCode(t, rr.Code, http.StatusOK)

	result := decode[SummaryResult](t, rr)
	assert.Equal(t, time.Now().Format("2006-01-02"), result.Today)
	assert.Equal(t, [7]float64{}, result.Weekly.Values)
	assert.Equal(t, models.MonthlyStats{}, result.Monthly)
	assert.Equal(t, 0, result.Records)
}

func TestStatsHandler_GetSummaryInvalid(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		userID         string
		expectedStatus int
	}{
		{"unauthenticated", "/stats/summary", "", http.StatusUnauthorized},
		{"invalid today", "/stats/summary?today=2024-03-15", testUser, http.StatusBadRequest},
		{"zero weight", "/stats/summary?weight_kg=0", testUser, http.StatusBadRequest},
		{"non-numeric weight", "/stats/summary?weight_kg=heavy", testUser, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, devSettings)
			rr := env.do(t, http.MethodGet, tt.url, "", tt.userID)
			testutil.AssertHTTPStatusCode(t, rr.Code, tt.expectedStatus)
		})
	}
}

func TestStatsHandler_GetEstimate(t *testing.T) {
	tests := []struct {
		name             string
		query            string
		expectedStatus   int
		expectedCalories float64
		expectedMET      float64
		expectedKnown    bool
	}{
		{"known label", "duration=30&label=Running", http.StatusOK, 280, 8, true},
		{"label with spaces", "duration=60&label=Weight%20Lifting", http.StatusOK, 245, 3.5, true},
		{"unknown label uses default MET", "duration=30&label=zumba", http.StatusOK, 140, 4, false},
		{"custom weight", "duration=30&label=yoga&weight_kg=80", http.StatusOK, 100, 2.5, true},
		{"zero duration", "duration=0&label=hiit", http.StatusOK, 0, 8, true},
		{"missing duration", "label=running", http.StatusBadRequest, 0, 0, false},
		{"negative duration", "duration=-10", http.StatusBadRequest, 0, 0, false},
		{"NaN duration", "duration=NaN", http.StatusBadRequest, 0, 0, false},
		{"invalid weight", "duration=10&weight_kg=-1", http.StatusBadRequest, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, devSettings)

			rr := env.do(t, http.MethodGet, fmt.Sprintf("/stats/estimate?%s", tt.query), "", testUser)
			testutil.AssertHTTPStatusCode(t, rr.Code, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			result := decode[EstimateResult](t, rr)
			assert.Equal(t, tt.expectedCalories, result.Calories)
			assert.Equal(t, tt.expectedMET, result.MET)
			assert.Equal(t, tt.expectedKnown, result.KnownLabel)
			assert.Equal(t, 1.0, promtestutil.ToFloat64(env.metrics.CounterStatsComputations.WithLabelValues("estimate")))
		})
	}
}

func TestStatsHandler_WeightResolution(t *testing.T) {
	tests := []struct {
		name           string
		profileWeight  float64
		query          string
		expectedWeight float64
		expectedSource string
	}{
		{"configured default without a profile", 0, "", 70, WeightFromDefault},
		{"stored profile weight", 90, "", 90, WeightFromProfile},
		{"query overrides the profile", 90, "&weight_kg=50", 50, WeightFromQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, devSettings)
			seedStatsData(t, env)
			if tt.profileWeight > 0 {
				_, err := env.db.UpsertUserDetails(context.Background(), &models.UserDetails{
					UserID: testUser, Age: 40, WeightKg: tt.profileWeight, HeightCm: 180, FitnessGoal: "General Fitness",
				})
				require.NoError(t, err)
			}
			// 30 minutes of running
			wantTracked := stats.EstimateCaloriesForWeight(30, "running", tt.expectedWeight)

			rr := env.do(t, http.MethodGet, "/stats/summary?today=20240315"+tt.query, "", testUser)
			testutil.AssertHTTPStatusCode(t, rr.Code, http.StatusOK)
			summary := decode[SummaryResult](t, rr)
			assert.Equal(t, tt.expectedWeight, summary.WeightKg)
			assert.Equal(t, tt.expectedSource, summary.WeightSource)
			assert.Equal(t, 300+wantTracked, summary.Weekly.Values[6])

			rr = env.do(t, http.MethodGet, "/stats/estimate?duration=30&label=running"+tt.query, "", testUser)
			testutil.AssertHTTPStatusCode(t, rr.Code, http.StatusOK)
			estimate := decode[EstimateResult](t, rr)
			assert.Equal(t, tt.expectedWeight, estimate.WeightKg)
			assert.Equal(t, tt.expectedSource, estimate.WeightSource)
			assert.Equal(t, wantTracked, estimate.Calories)
		})
	}
}

func TestStatsHandler_ProfileReadError(t *testing.T) {
	env := newTestEnv(t, devSettings)
	env.db.SetSimulateDBError(true)

	rr := env.do(t, http.MethodGet, "/stats/estimate?duration=30", "", testUser)
	testutil.AssertHTTPStatusCode(t, rr.Code, http.StatusInternalServerError)

	rr = env.do(t, http.MethodGet, "/stats/estimate?duration=30", "", "")
	testutil.AssertHTTPStatusCode(t, rr.Code, http.StatusUnauthorized)
}
