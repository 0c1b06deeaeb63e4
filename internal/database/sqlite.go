package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/nnamm/go-workout-tracker/internal/models"
	"go.uber.org/multierr"
)

const (
	workoutColumns  = `id, user_id, date, calories, duration, workout_type, notes, created_at, updated_at`
	trackingColumns = `id, user_id, exercise_id, exercise_name, target_muscle, equipment_used, body_part, duration_minutes, completed_at, created_at`
	progressColumns = `id, user_id, date, minutes_spent, created_at`
	profileColumns  = `user_id, age, weight_kg, height_cm, fitness_goal, updated_at`
)

// sqliteQueries are prepared once when the database is opened
var sqliteQueries = map[string]string{
	"insert_workout":           `INSERT INTO workouts (` + workoutColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	"select_workout":           `SELECT ` + workoutColumns + ` FROM workouts WHERE id = ? AND user_id = ?`,
	"select_workouts":          `SELECT ` + workoutColumns + ` FROM workouts WHERE user_id = ? ORDER BY created_at, rowid`,
	"select_range_workout":     `SELECT ` + workoutColumns + ` FROM workouts WHERE user_id = ? AND COALESCE(date, created_at) >= ? AND COALESCE(date, created_at) < ? ORDER BY COALESCE(date, created_at), rowid`,
	"update_workout":           `UPDATE workouts SET date = ?, calories = ?, duration = ?, workout_type = ?, notes = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
	"delete_workout":           `DELETE FROM workouts WHERE id = ? AND user_id = ?`,
	"insert_exercise_tracking": `INSERT INTO exercise_tracking (` + trackingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	"select_exercise_tracking": `SELECT ` + trackingColumns + ` FROM exercise_tracking WHERE user_id = ? ORDER BY created_at, rowid`,
	"delete_exercise_tracking": `DELETE FROM exercise_tracking WHERE id = ? AND user_id = ?`,
	"upsert_daily_progress":    `INSERT INTO daily_exercise_progress (` + progressColumns + `) VALUES (?, ?, ?, ?, ?) ON CONFLICT(user_id, date) DO UPDATE SET minutes_spent = minutes_spent + excluded.minutes_spent`,
	"select_daily_progress":    `SELECT ` + progressColumns + ` FROM daily_exercise_progress WHERE user_id = ? AND date = ?`,
	"select_daily_progresses":  `SELECT ` + progressColumns + ` FROM daily_exercise_progress WHERE user_id = ? ORDER BY date`,
	"upsert_user_details":      `INSERT INTO user_details (` + profileColumns + `) VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT(user_id) DO UPDATE SET age = excluded.age, weight_kg = excluded.weight_kg, height_cm = excluded.height_cm, fitness_goal = excluded.fitness_goal, updated_at = excluded.updated_at`,
	"select_user_details":      `SELECT ` + profileColumns + ` FROM user_details WHERE user_id = ?`,
}

// SQLiteQueries returns a copy of the statements SQLiteDB prepares, keyed by name.
func SQLiteQueries() map[string]string {
	out := make(map[string]string, len(sqliteQueries))
	for k, v := range sqliteQueries {
		out[k] = v
	}
	return out
}

type SQLiteDB struct {
	*sql.DB
	Stmts map[string]*sql.Stmt
	Mu    sync.RWMutex
}

// NewSQLiteDB opens the DB
func NewSQLiteDB(dataSourceName string) (*SQLiteDB, error) {
	sqlDB, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	// :memory: databases exist per connection
	if dataSourceName == ":memory:" {
		sqlDB.SetMaxOpenConns(1)
	}

	db := &SQLiteDB{
		DB:    sqlDB,
		Stmts: make(map[string]*sql.Stmt),
		Mu:    sync.RWMutex{},
	}

	if err := db.CreateTable(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	if err := db.prepareStatements(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("preparing statements: %w", err)
	}

	return db, nil
}

// CreateTable initializes the tables
func (db *SQLiteDB) CreateTable() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS workouts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			date DATETIME,
			calories REAL CHECK (calories IS NULL OR calories >= 0),
			duration REAL CHECK (duration IS NULL OR duration >= 0),
			workout_type TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_workouts_user_date
		 ON workouts(user_id, date)`,
		`CREATE TABLE IF NOT EXISTS exercise_tracking (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			exercise_id TEXT NOT NULL DEFAULT '',
			exercise_name TEXT NOT NULL DEFAULT '',
			target_muscle TEXT NOT NULL DEFAULT '',
			equipment_used TEXT NOT NULL DEFAULT '',
			body_part TEXT NOT NULL DEFAULT '',
			duration_minutes REAL CHECK (duration_minutes IS NULL OR duration_minutes >= 0),
			completed_at DATETIME,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exercise_tracking_user
		 ON exercise_tracking(user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS daily_exercise_progress (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			date DATE NOT NULL,
			minutes_spent INTEGER NOT NULL CHECK (minutes_spent >= 0),
			created_at DATETIME NOT NULL,
			UNIQUE (user_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS user_details (
			user_id TEXT PRIMARY KEY,
			age INTEGER NOT NULL,
			weight_kg REAL NOT NULL CHECK (weight_kg > 0),
			height_cm INTEGER NOT NULL,
			fitness_goal TEXT NOT NULL DEFAULT '',
			updated_at DATETIME NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// prepareStatements prepares SQL statements in name order
func (db *SQLiteDB) prepareStatements() error {
	names := make([]string, 0, len(sqliteQueries))
	for name := range sqliteQueries {
		names = append(names, name)
	}
	sort.Strings(names)

	db.Mu.Lock()
	defer db.Mu.Unlock()

	for _, name := range names {
		stmt, err := db.Prepare(sqliteQueries[name])
		if err != nil {
			return fmt.Errorf("prepare statement %s: %w", name, err)
		}
		db.Stmts[name] = stmt
	}

	return nil
}

// getStmt is helper function to get a prepared statement
func (db *SQLiteDB) getStmt(name string) (*sql.Stmt, error) {
	db.Mu.RLock()
	stmt, ok := db.Stmts[name]
	db.Mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("statement %s not found", name)
	}
	return stmt, nil
}

// HealthCheck pings the database
func (db *SQLiteDB) HealthCheck(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes every prepared statement and then the DB. All close errors
// are reported.
func (db *SQLiteDB) Close() error {
	db.Mu.Lock()
	defer db.Mu.Unlock()

	var err error
	for name, stmt := range db.Stmts {
		if closeErr := stmt.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("closing statement %s: %w", name, closeErr))
		}
	}
	db.Stmts = make(map[string]*sql.Stmt)

	return multierr.Append(err, db.DB.Close())
}

// withTxContext executes a function with a transaction and context
func (db *SQLiteDB) withTxContext(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	// Rollback if the context is canceled
	select {
	case <-ctx.Done():
		tx.Rollback()
		return ctx.Err()
	default:
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	}
}

// CreateWorkout inserts a new workout row
func (db *SQLiteDB) CreateWorkout(ctx context.Context, w *models.Workout) (*models.Workout, error) {
	insertStmt, err := db.getStmt("insert_workout")
	if err != nil {
		return nil, fmt.Errorf("getting insert statement: %w", err)
	}

	created := *w
	created.ID = uuid.NewString()
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	err = db.withTxContext(ctx, func(tx *sql.Tx) error {
		stmt := tx.StmtContext(ctx, insertStmt)
		_, err := stmt.ExecContext(ctx,
			created.ID, created.UserID, nullTime(created.Date),
			nullFloat(created.Calories), nullFloat(created.Duration),
			created.WorkoutType, created.Notes, now, now)
		if err != nil {
			return fmt.Errorf("insert workout: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// ReadWorkout retrieves one workout of the user
func (db *SQLiteDB) ReadWorkout(ctx context.Context, userID, id string) (*models.Workout, error) {
	selectStmt, err := db.getStmt("select_workout")
	if err != nil {
		return nil, fmt.Errorf("getting select statement: %w", err)
	}

	w, err := scanSQLiteWorkout(selectStmt.QueryRowContext(ctx, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan workout: %w", err)
	}
	return w, nil
}

func (db *SQLiteDB) ReadWorkouts(ctx context.Context, userID string) ([]models.Workout, error) {
	return db.queryWorkouts(ctx, "select_workouts", userID)
}

func (db *SQLiteDB) ReadWorkoutsByRange(ctx context.Context, userID string, start, end time.Time) ([]models.Workout, error) {
	return db.queryWorkouts(ctx, "select_range_workout", userID, start.UTC(), end.UTC())
}

func (db *SQLiteDB) queryWorkouts(ctx context.Context, stmtName string, args ...any) ([]models.Workout, error) {
	selectStmt, err := db.getStmt(stmtName)
	if err != nil {
		return nil, fmt.Errorf("getting %s statement: %w", stmtName, err)
	}

	rows, err := selectStmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	defer rows.Close()

	workouts := []models.Workout{}
	for rows.Next() {
		w, err := scanSQLiteWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, *w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating through rows: %w", err)
	}

	return workouts, nil
}

// UpdateWorkout replaces the mutable fields of an existing workout
func (db *SQLiteDB) UpdateWorkout(ctx context.Context, w *models.Workout) error {
	updateStmt, err := db.getStmt("update_workout")
	if err != nil {
		return fmt.Errorf("getting update statement: %w", err)
	}

	return db.withTxContext(ctx, func(tx *sql.Tx) error {
		if err := existsInTx(ctx, tx, "SELECT 1 FROM workouts WHERE id = ? AND user_id = ?", w.ID, w.UserID); err != nil {
			return err
		}

		stmt := tx.StmtContext(ctx, updateStmt)
		_, err := stmt.ExecContext(ctx,
			nullTime(w.Date), nullFloat(w.Calories), nullFloat(w.Duration),
			w.WorkoutType, w.Notes, time.Now().UTC(), w.ID, w.UserID)
		if err != nil {
			return fmt.Errorf("execute update: %w", err)
		}
		return nil
	})
}

// DeleteWorkout deletes one workout of the user
func (db *SQLiteDB) DeleteWorkout(ctx context.Context, userID, id string) error {
	return db.deleteOwned(ctx, "delete_workout", "SELECT 1 FROM workouts WHERE id = ? AND user_id = ?", userID, id)
}

// CreateExerciseTracking inserts a tracked exercise session
func (db *SQLiteDB) CreateExerciseTracking(ctx context.Context, et *models.ExerciseTracking) (*models.ExerciseTracking, error) {
	insertStmt, err := db.getStmt("insert_exercise_tracking")
	if err != nil {
		return nil, fmt.Errorf("getting insert statement: %w", err)
	}

	created := *et
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()

	err = db.withTxContext(ctx, func(tx *sql.Tx) error {
		stmt := tx.StmtContext(ctx, insertStmt)
		_, err := stmt.ExecContext(ctx,
			created.ID, created.UserID, created.ExerciseID, created.ExerciseName,
			created.TargetMuscle, created.EquipmentUsed, created.BodyPart,
			nullFloat(created.DurationMinutes), nullTimePtr(created.CompletedAt), created.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert exercise tracking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (db *SQLiteDB) ReadExerciseTrackings(ctx context.Context, userID string) ([]models.ExerciseTracking, error) {
	selectStmt, err := db.getStmt("select_exercise_tracking")
	if err != nil {
		return nil, fmt.Errorf("getting select statement: %w", err)
	}

	rows, err := selectStmt.QueryContext(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query exercise tracking: %w", err)
	}
	defer rows.Close()

	tracking := []models.ExerciseTracking{}
	for rows.Next() {
		var (
			et          models.ExerciseTracking
			duration    sql.NullFloat64
			completedAt sql.NullTime
		)
		if err := rows.Scan(&et.ID, &et.UserID, &et.ExerciseID, &et.ExerciseName,
			&et.TargetMuscle, &et.EquipmentUsed, &et.BodyPart,
			&duration, &completedAt, &et.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan exercise tracking: %w", err)
		}
		if duration.Valid {
			et.DurationMinutes = &duration.Float64
		}
		if completedAt.Valid {
			et.CompletedAt = &completedAt.Time
		}
		tracking = append(tracking, et)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating through rows: %w", err)
	}

	return tracking, nil
}

func (db *SQLiteDB) DeleteExerciseTracking(ctx context.Context, userID, id string) error {
	return db.deleteOwned(ctx, "delete_exercise_tracking", "SELECT 1 FROM exercise_tracking WHERE id = ? AND user_id = ?", userID, id)
}

// AddDailyProgress upserts the user's row for the day and returns it
func (db *SQLiteDB) AddDailyProgress(ctx context.Context, userID string, date time.Time, minutes int) (*models.DailyProgress, error) {
	upsertStmt, err := db.getStmt("upsert_daily_progress")
	if err != nil {
		return nil, fmt.Errorf("getting upsert statement: %w", err)
	}
	selectStmt, err := db.getStmt("select_daily_progress")
	if err != nil {
		return nil, fmt.Errorf("getting select statement: %w", err)
	}

	day := calendarDay(date)
	var progress models.DailyProgress
	err = db.withTxContext(ctx, func(tx *sql.Tx) error {
		_, err := tx.StmtContext(ctx, upsertStmt).ExecContext(ctx,
			uuid.NewString(), userID, day, minutes, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("upsert daily progress: %w", err)
		}

		err = tx.StmtContext(ctx, selectStmt).QueryRowContext(ctx, userID, day).Scan(
			&progress.ID, &progress.UserID, &progress.Date, &progress.MinutesSpent, &progress.CreatedAt)
		if err != nil {
			return fmt.Errorf("read daily progress: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &progress, nil
}

func (db *SQLiteDB) ReadDailyProgress(ctx context.Context, userID string) ([]models.DailyProgress, error) {
	selectStmt, err := db.getStmt("select_daily_progresses")
	if err != nil {
		return nil, fmt.Errorf("getting select statement: %w", err)
	}

	rows, err := selectStmt.QueryContext(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query daily progress: %w", err)
	}
	defer rows.Close()

	progress := []models.DailyProgress{}
	for rows.Next() {
		var p models.DailyProgress
		if err := rows.Scan(&p.ID, &p.UserID, &p.Date, &p.MinutesSpent, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan daily progress: %w", err)
		}
		progress = append(progress, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating through rows: %w", err)
	}

	return progress, nil
}

// UpsertUserDetails stores the user's profile, replacing any previous one
func (db *SQLiteDB) UpsertUserDetails(ctx context.Context, d *models.UserDetails) (*models.UserDetails, error) {
	upsertStmt, err := db.getStmt("upsert_user_details")
	if err != nil {
		return nil, fmt.Errorf("getting upsert statement: %w", err)
	}

	stored := *d
	stored.UpdatedAt = time.Now().UTC()

	err = db.withTxContext(ctx, func(tx *sql.Tx) error {
		_, err := tx.StmtContext(ctx, upsertStmt).ExecContext(ctx,
			stored.UserID, stored.Age, stored.WeightKg, stored.HeightCm, stored.FitnessGoal, stored.UpdatedAt)
		if err != nil {
			return fmt.Errorf("upsert user details: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

func (db *SQLiteDB) ReadUserDetails(ctx context.Context, userID string) (*models.UserDetails, error) {
	selectStmt, err := db.getStmt("select_user_details")
	if err != nil {
		return nil, fmt.Errorf("getting select statement: %w", err)
	}

	var d models.UserDetails
	err = selectStmt.QueryRowContext(ctx, userID).Scan(
		&d.UserID, &d.Age, &d.WeightKg, &d.HeightCm, &d.FitnessGoal, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user details: %w", err)
	}
	return &d, nil
}

// deleteOwned deletes a row by id after checking it belongs to userID
func (db *SQLiteDB) deleteOwned(ctx context.Context, stmtName, existsQuery, userID, id string) error {
	deleteStmt, err := db.getStmt(stmtName)
	if err != nil {
		return fmt.Errorf("getting delete statement: %w", err)
	}

	return db.withTxContext(ctx, func(tx *sql.Tx) error {
		if err := existsInTx(ctx, tx, existsQuery, id, userID); err != nil {
			return err
		}

		stmt := tx.StmtContext(ctx, deleteStmt)
		if _, err := stmt.ExecContext(ctx, id, userID); err != nil {
			return fmt.Errorf("execute delete: %w", err)
		}
		return nil
	})
}

func existsInTx(ctx context.Context, tx *sql.Tx, query string, args ...any) error {
	var exists bool
	err := tx.QueryRowContext(ctx, query, args...).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !exists) {
		return fmt.Errorf("id %v: %w", args[0], ErrRecordNotFound)
	}
	if err != nil {
		return fmt.Errorf("check existence: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteWorkout(row rowScanner) (*models.Workout, error) {
	var (
		w        models.Workout
		date     sql.NullTime
		calories sql.NullFloat64
		duration sql.NullFloat64
	)
	if err := row.Scan(&w.ID, &w.UserID, &date, &calories, &duration,
		&w.WorkoutType, &w.Notes, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	if date.Valid {
		w.Date = date.Time
	}
	if calories.Valid {
		w.Calories = &calories.Float64
	}
	if duration.Valid {
		w.Duration = &duration.Float64
	}
	return &w, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return nullTime(*t)
}
