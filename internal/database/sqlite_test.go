package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nnamm/go-workout-tracker/internal/database"
	"github.com/nnamm/go-workout-tracker/internal/models"
	"github.com/nnamm/go-workout-tracker/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_WorkoutCRUDScenarios(t *testing.T) {
	testDB, cleanup := testutils.SetupSQLiteTester(t)
	defer cleanup()

	scenarios := []struct {
		name          string
		initial       *models.Workout // scenario data - initial data
		update        func(created *models.Workout) *models.Workout
		wantAfterRead *models.Workout
		wantUpdateErr error
		wantDeleteErr error
		deleteAs      string
	}{
		{
			name:    "normal scenario - create, update, delete success",
			initial: testutils.CreateWorkout(testutils.TestUserID, "2024-01-01", 300, 30, "running"),
			update: func(created *models.Workout) *models.Workout {
				w := *created
				w.Calories = testutils.Float(450)
				w.Notes = "felt strong"
				return &w
			},
			wantAfterRead: &models.Workout{
				UserID:      testutils.TestUserID,
				Date:        testutils.CreateDate("2024-01-01"),
				Calories:    testutils.Float(450),
				Duration:    testutils.Float(30),
				WorkoutType: "running",
				Notes:       "felt strong",
			},
		},
		{
			name:    "error scenario - update non-existent workout",
			initial: testutils.CreateWorkout(testutils.TestUserID, "2024-01-01", 300, 30, "running"),
			update: func(created *models.Workout) *models.Workout {
				w := *created
				w.ID = "does-not-exist"
				return &w
			},
			wantUpdateErr: database.ErrRecordNotFound,
		},
		{
			name:    "error scenario - update another user's workout",
			initial: testutils.CreateWorkout(testutils.TestUserID, "2024-01-01", 300, 30, "running"),
			update: func(created *models.Workout) *models.Workout {
				w := *created
				w.UserID = "intruder"
				return &w
			},
			wantUpdateErr: database.ErrRecordNotFound,
		},
		{
			name:          "error scenario - delete another user's workout",
			initial:       testutils.CreateWorkout(testutils.TestUserID, "2024-01-01", 300, 30, "running"),
			deleteAs:      "intruder",
			wantDeleteErr: database.ErrRecordNotFound,
		},
	}

	for _, tt := range scenarios {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			testutils.CleanupDB(t, testDB.DB)

			created, err := testDB.CreateWorkout(ctx, tt.initial)
			require.NoError(t, err)
			testutils.AssertWorkout(t, created, tt.initial)

			read, err := testDB.ReadWorkout(ctx, testutils.TestUserID, created.ID)
			require.NoError(t, err)
			require.NotNil(t, read)
			testutils.AssertWorkout(t, read, tt.initial)

			if tt.update != nil {
				err = testDB.UpdateWorkout(ctx, tt.update(created))
				if tt.wantUpdateErr != nil {
					assert.True(t, errors.Is(err, tt.wantUpdateErr), "UpdateWorkout() error = %v, want %v", err, tt.wantUpdateErr)
				} else {
					require.NoError(t, err)
				}
			}

			if tt.wantAfterRead != nil {
				read, err = testDB.ReadWorkout(ctx, testutils.TestUserID, created.ID)
				require.NoError(t, err)
				testutils.AssertWorkout(t, read, tt.wantAfterRead)
			}

			owner := testutils.TestUserID
			if tt.deleteAs != "" {
				owner = tt.deleteAs
			}
			err = testDB.DeleteWorkout(ctx, owner, created.ID)
			if tt.wantDeleteErr != nil {
				assert.True(t, errors.Is(err, tt.wantDeleteErr), "DeleteWorkout() error = %v, want %v", err, tt.wantDeleteErr)
				return
			}
			require.NoError(t, err)

			read, err = testDB.ReadWorkout(ctx, testutils.TestUserID, created.ID)
			assert.NoError(t, err)
			assert.Nil(t, read, "deleted workout should read as nil")
		})
	}
}

func TestSQLite_ReadWorkoutMissing(t *testing.T) {
	testDB, cleanup := testutils.SetupSQLiteTester(t)
	defer cleanup()

	w, err := testDB.ReadWorkout(context.Background(), testutils.TestUserID, "missing")
	assert.NoError(t, err)
	assert.Nil(t, w)
}

func TestSQLite_ReadWorkoutsAndRange(t *testing.T) {
	testDB, cleanup := testutils.SetupSQLiteTester(t)
	defer cleanup()
	ctx := context.Background()

	testutils.SeedWorkouts(ctx, t, testDB, testutils.CreateWorkouts(testutils.TestUserID))
	testutils.SeedWorkouts(ctx, t, testDB, testutils.CreateWorkouts("other-user")[:2])

	// missing date and calories: effective date is created_at
	undated, err := testDB.CreateWorkout(ctx, &models.Workout{UserID: testutils.TestUserID, WorkoutType: "walking"})
	require.NoError(t, err)

	all, err := testDB.ReadWorkouts(ctx, testutils.TestUserID)
	require.NoError(t, err)
	require.Len(t, all, 9)
	assert.Equal(t, "2024-01-01", all[0].Date.UTC().Format("2006-01-02"), "insertion order")
	assert.Equal(t, undated.ID, all[8].ID)
	assert.True(t, all[8].Date.IsZero())
	assert.Nil(t, all[8].Calories)
	assert.Nil(t, all[8].Duration)

	january, err := testDB.ReadWorkoutsByRange(ctx, testutils.TestUserID,
		testutils.CreateDate("2024-01-01"), testutils.CreateDate("2024-02-01"))
	require.NoError(t, err)
	require.Len(t, january, 4)
	assert.NotNil(t, testutils.FindWorkoutByDate(january, "2024-01-31"))
	assert.Nil(t, testutils.FindWorkoutByDate(january, "2024-02-01"), "end is exclusive")

	now := time.Now()
	recent, err := testDB.ReadWorkoutsByRange(ctx, testutils.TestUserID, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, undated.ID, recent[0].ID)

	none, err := testDB.ReadWorkouts(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSQLite_ExerciseTracking(t *testing.T) {
	testDB, cleanup := testutils.SetupSQLiteTester(t)
	defer cleanup()
	ctx := context.Background()

	completed := time.Date(2025, 1, 5, 18, 30, 0, 0, time.UTC)
	first, err := testDB.CreateExerciseTracking(ctx, testutils.CreateExerciseTracking(testutils.TestUserID, "Running", 30, &completed))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	bare := &models.ExerciseTracking{UserID: testutils.TestUserID, ExerciseName: "plank"}
	second, err := testDB.CreateExerciseTracking(ctx, bare)
	require.NoError(t, err)

	rows, err := testDB.ReadExerciseTrackings(ctx, testutils.TestUserID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, first.ID, rows[0].ID)
	require.NotNil(t, rows[0].DurationMinutes)
	assert.Equal(t, 30.0, *rows[0].DurationMinutes)
	require.NotNil(t, rows[0].CompletedAt)
	assert.True(t, completed.Equal(*rows[0].CompletedAt))
	assert.Equal(t, "abs", rows[0].TargetMuscle)

	assert.Equal(t, second.ID, rows[1].ID)
	assert.Nil(t, rows[1].DurationMinutes)
	assert.Nil(t, rows[1].CompletedAt)

	err = testDB.DeleteExerciseTracking(ctx, "intruder", first.ID)
	assert.ErrorIs(t, err, database.ErrRecordNotFound)

	require.NoError(t, testDB.DeleteExerciseTracking(ctx, testutils.TestUserID, first.ID))
	rows, err = testDB.ReadExerciseTrackings(ctx, testutils.TestUserID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSQLite_DailyProgressUpsert(t *testing.T) {
	testDB, cleanup := testutils.SetupSQLiteTester(t)
	defer cleanup()
	ctx := context.Background()

	day2 := testutils.CreateDate("2025-03-02")
	day1 := testutils.CreateDate("2025-03-01")

	p, err := testDB.AddDailyProgress(ctx, testutils.TestUserID, day2.Add(9*time.Hour), 20)
	require.NoError(t, err)
	assert.Equal(t, 20, p.MinutesSpent)

	p, err = testDB.AddDailyProgress(ctx, testutils.TestUserID, day2.Add(20*time.Hour), 15)
	require.NoError(t, err)
	assert.Equal(t, 35, p.MinutesSpent, "same calendar day accumulates")
	firstID := p.ID

	_, err = testDB.AddDailyProgress(ctx, testutils.TestUserID, day1, 10)
	require.NoError(t, err)
	_, err = testDB.AddDailyProgress(ctx, "other-user", day2, 99)
	require.NoError(t, err)

	rows, err := testDB.ReadDailyProgress(ctx, testutils.TestUserID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, day1.Equal(rows[0].Date), "ascending by date")
	assert.Equal(t, 10, rows[0].MinutesSpent)
	assert.True(t, day2.Equal(rows[1].Date))
	assert.Equal(t, 35, rows[1].MinutesSpent)
	assert.Equal(t, firstID, rows[1].ID, "upsert keeps the original row")
}

func TestSQLite_UserDetailsUpsert(t *testing.T) {
	testDB, cleanup := testutils.SetupSQLiteTester(t)
	defer cleanup()
	ctx := context.Background()

	missing, err := testDB.ReadUserDetails(ctx, testutils.TestUserID)
	require.NoError(t, err)
	assert.Nil(t, missing, "no profile yet")

	first := &models.UserDetails{UserID: testutils.TestUserID, Age: 29, WeightKg: 64.5, HeightCm: 170, FitnessGoal: "Weight Loss"}
	stored, err := testDB.UpsertUserDetails(ctx, first)
	require.NoError(t, err)
	assert.False(t, stored.UpdatedAt.IsZero())
	assert.True(t, first.UpdatedAt.IsZero(), "input must not be mutated")

	_, err = testDB.UpsertUserDetails(ctx, &models.UserDetails{
		UserID: testutils.TestUserID, Age: 30, WeightKg: 62, HeightCm: 170, FitnessGoal: "General Fitness",
	})
	require.NoError(t, err)
	_, err = testDB.UpsertUserDetails(ctx, &models.UserDetails{
		UserID: "other-user", Age: 50, WeightKg: 90, HeightCm: 185, FitnessGoal: "Muscle Gain",
	})
	require.NoError(t, err)

	got, err := testDB.ReadUserDetails(ctx, testutils.TestUserID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 30, got.Age, "second upsert replaces the profile")
	assert.Equal(t, 62.0, got.WeightKg)
	assert.Equal(t, "General Fitness", got.FitnessGoal)
}

func TestSQLite_HealthCheckAndClose(t *testing.T) {
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)

	assert.NoError(t, db.HealthCheck(context.Background()))
	assert.NoError(t, db.Close())
	assert.Error(t, db.HealthCheck(context.Background()))
}

func TestSQLite_RandomWorkoutsRoundTrip(t *testing.T) {
	testDB, cleanup := testutils.SetupSQLiteTester(t)
	defer cleanup()

	ctx := context.Background()
	workouts := testutils.RandomWorkouts(42, testutils.TestUserID, 20)
	testutils.SeedWorkouts(ctx, t, testDB, workouts)

	want := make([]models.Workout, 0, len(workouts))
	for _, w := range workouts {
		want = append(want, *w)
	}

	got, err := testDB.ReadWorkouts(ctx, testutils.TestUserID)
	require.NoError(t, err)
	testutils.AssertWorkouts(t, got, want)
}
