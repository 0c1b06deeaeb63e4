package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestExerciseTracking_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		wantCompletedAt *time.Time
		wantDuration    *float64
		wantErr         bool
	}{
		{
			name:            "completed at timestamp",
			body:            `{"exercise_name":"Push Up","duration_minutes":12,"completed_at":"2024-06-10T08:00:00Z"}`,
			wantCompletedAt: ptrTime(time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)),
			wantDuration:    ptrFloat(12),
		},
		{
			name: "completed at missing",
			body: `{"exercise_name":"Push Up"}`,
		},
		{
			name: "completed at null",
			body: `{"exercise_name":"Push Up","completed_at":null}`,
		},
		{
			name:    "completed at invalid",
			body:    `{"exercise_name":"Push Up","completed_at":"yesterday"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var et ExerciseTracking
			err := json.Unmarshal([]byte(tt.body), &et)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if et.ExerciseName != "Push Up" {
				t.Errorf("ExerciseName = %q, want %q", et.ExerciseName, "Push Up")
			}
			switch {
			case tt.wantCompletedAt == nil && et.CompletedAt != nil:
				t.Errorf("CompletedAt = %v, want nil", et.CompletedAt)
			case tt.wantCompletedAt != nil && (et.CompletedAt == nil || !et.CompletedAt.Equal(*tt.wantCompletedAt)):
				t.Errorf("CompletedAt = %v, want %v", et.CompletedAt, tt.wantCompletedAt)
			}
			switch {
			case tt.wantDuration == nil && et.DurationMinutes != nil:
				t.Errorf("DurationMinutes = %v, want nil", *et.DurationMinutes)
			case tt.wantDuration != nil && (et.DurationMinutes == nil || *et.DurationMinutes != *tt.wantDuration):
				t.Errorf("DurationMinutes = %v, want %v", et.DurationMinutes, *tt.wantDuration)
			}
		})
	}
}

func TestExercise_RoundTripKeepsUnknownFields(t *testing.T) {
	body := `{"id":"0001","name":"3/4 sit-up","bodyPart":"waist","target":"abs","equipment":"body weight","gifUrl":"https://example.com/0001.gif","secondaryMuscles":["hip flexors"]}`

	var e Exercise
	if err := json.Unmarshal([]byte(body), &e); err != nil {
		t.Fatalf("Failed to unmarshal Exercise: %v", err)
	}
	if e.Target != "abs" || e.BodyPart != "waist" {
		t.Errorf("Unexpected fields: %+v", e)
	}

	out, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Failed to marshal Exercise: %v", err)
	}
	if string(out) != body {
		t.Errorf("Got %s, want %s", out, body)
	}
}

func ptrTime(t time.Time) *time.Time { return &t }

func ptrFloat(f float64) *float64 { return &f }
