package handlers

import (
	"net/http"
	"testing"

	"github.com/nnamm/go-workout-tracker/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExerciseTrackingHandler_Lifecycle(t *testing.T) {
	env := newTestEnv(t, devSettings)

	body := `{"exercise_id":"0001","exercise_name":"3/4 sit-up","target_muscle":"abs","body_part":"waist","duration_minutes":12,"completed_at":"2024-03-01T10:00:00Z"}`
	rr := env.do(t, http.MethodPost, "/exercise-tracking", body, testUser)
	testutil.AssertHTTPStatusCode(t, rr.Code, http.StatusCreated)

	created := decode[ExerciseTrackingResult](t, rr)
	require.Len(t, created.Tracking, 1)
	tracked := created.Tracking[0]
	assert.NotEmpty(t, tracked.ID)
	assert.Equal(t, testUser, tracked.UserID)
	assert.Equal(t, "abs", tracked.TargetMuscle)
	require.NotNil(t, tracked.DurationMinutes)
	assert.Equal(t, 12.0, *tracked.DurationMinutes)

	rr = env.do(t, http.MethodGet, "/exercise-tracking", "", testUser)
	testutil.AssertHTTPStatusCode(t, rr.Code, http.StatusOK)
	assert.Len(t, decode[ExerciseTrackingResult](t, rr).Tracking, 1)

	rr = env.do(t, http.MethodGet, "/exercise-tracking", "", "other-user")
	testutil.AssertHTTPStatusCode(t, rr.Code, http.StatusOK)
	assert.Empty(t, decode[ExerciseTrackingResult](t, rr).Tracking)

	rr = env.do(t, http.MethodDelete, "/exercise-tracking/"+tracked.ID, "", "other-user")
	testutil.AssertHTTPStatusCode(t, rr.Code, http.StatusNotFound)

	rr = env.do(t, http.MethodDelete, "/exercise-tracking/"+tracked.ID, "", testUser)
	testutil.AssertHTTPStatusCode(t, rr.Code, http.StatusOK)

	rr = env.do(t, http.MethodGet, "/exercise-tracking", "", testUser)
	assert.Empty(t, decode[ExerciseTrackingResult](t, rr).Tracking)
}

func TestExerciseTrackingHandler_CreateInvalid(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedError string
	}{
		{
			name:          "missing exercise name",
			body:          `{"exercise_id":"0001","duration_minutes":10}`,
			expectedError: "exercise name is required",
		},
		{
			name:          "negative duration",
			body:          `{"exercise_name":"push-up","duration_minutes":-1}`,
			expectedError: "duration minutes must not be negative",
		},
		{
			name: "invalid completed_at",
			body: `{"exercise_name":"push-up","completed_at":"yesterday"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, devSettings)

			rr := env.do(t, http.MethodPost, "/exercise-tracking", tt.body, testUser)
			testutil.AssertHTTPStatusCode(t, rr.Code, http.StatusBadRequest)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorMessage(t, rr))
			}
		})
	}
}
