package testutils

import (
	"database/sql"
	"testing"

	"github.com/nnamm/go-workout-tracker/internal/database"
	"github.com/stretchr/testify/require"
)

// SetupSQLiteTester sets up an in-memory SQLite database for testing
func SetupSQLiteTester(t *testing.T) (*database.SQLiteDB, func()) {
	t.Helper()

	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}
	return db, cleanup
}

// CleanupDB removes all records from the test tables
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, table := range []string{"workouts", "exercise_tracking", "daily_exercise_progress"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("failed to cleanup %s: %v", table, err)
		}
	}
}
