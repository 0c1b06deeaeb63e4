package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nnamm/go-workout-tracker/internal/config"
	"github.com/nnamm/go-workout-tracker/internal/models"
)

// pgxPool is the subset of *pgxpool.Pool used by PostgresDB
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresDB represents a PostgreSQL database connection pool
type PostgresDB struct {
	pool pgxPool
}

// NewPostgresDBWithConfig creates a new PostgreSQL database connection pool
func NewPostgresDBWithConfig(dataSourceName string, dbConfig *config.DatabaseConfig) (*PostgresDB, error) {
	if dbConfig == nil {
		return nil, fmt.Errorf("database configuration cannot be nil")
	}

	if err := ValidateConfiguration(dbConfig); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	poolConfig, err := pgxpool.ParseConfig(dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	poolConfig.MaxConns = dbConfig.MaxConns
	poolConfig.MinConns = dbConfig.MinConns
	poolConfig.MaxConnLifetime = dbConfig.MaxConnLifetime
	poolConfig.MaxConnIdleTime = dbConfig.MaxConnIdleTime

	// Health check period stays below the max idle time
	healthCheckPeriod := time.Minute
	if dbConfig.MaxConnIdleTime > 2*time.Minute {
		healthCheckPeriod = dbConfig.MaxConnIdleTime / 2
	}
	poolConfig.HealthCheckPeriod = healthCheckPeriod

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	db := &PostgresDB{pool: pool}

	if err := db.createTable(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return db, nil
}

// createTable creates the tables if they don't exist
func (db *PostgresDB) createTable() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS workouts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			date TIMESTAMP WITH TIME ZONE,
			calories DOUBLE PRECISION CHECK (calories IS NULL OR calories >= 0),
			duration DOUBLE PRECISION CHECK (duration IS NULL OR duration >= 0),
			workout_type TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
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
			duration_minutes DOUBLE PRECISION CHECK (duration_minutes IS NULL OR duration_minutes >= 0),
			completed_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exercise_tracking_user
		 ON exercise_tracking(user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS daily_exercise_progress (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			date DATE NOT NULL,
			minutes_spent INTEGER NOT NULL CHECK (minutes_spent >= 0),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS user_details (
			user_id TEXT PRIMARY KEY,
			age INTEGER NOT NULL,
			weight_kg DOUBLE PRECISION NOT NULL CHECK (weight_kg > 0),
			height_cm INTEGER NOT NULL,
			fitness_goal TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, query := range queries {
		if _, err := db.pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}
	return nil
}

// withTx runs fn in a transaction, rolling back when fn fails
func (db *PostgresDB) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateWorkout creates a new workout row
func (db *PostgresDB) CreateWorkout(ctx context.Context, w *models.Workout) (*models.Workout, error) {
	query := `
		INSERT INTO workouts (` + workoutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	created := *w
	created.ID = uuid.NewString()
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err := db.pool.Exec(ctx, query,
		created.ID, created.UserID, timeOrNil(created.Date),
		created.Calories, created.Duration,
		created.WorkoutType, created.Notes, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create workout: %w", err)
	}

	return &created, nil
}

// ReadWorkout reads one workout of the user
func (db *PostgresDB) ReadWorkout(ctx context.Context, userID, id string) (*models.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = $1 AND user_id = $2`

	w, err := scanPgWorkout(db.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read workout: %w", err)
	}
	return w, nil
}

func (db *PostgresDB) ReadWorkouts(ctx context.Context, userID string) ([]models.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE user_id = $1 ORDER BY created_at, id`
	return db.queryWorkouts(ctx, query, userID)
}

func (db *PostgresDB) ReadWorkoutsByRange(ctx context.Context, userID string, start, end time.Time) ([]models.Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE user_id = $1 AND COALESCE(date, created_at) >= $2 AND COALESCE(date, created_at) < $3
		ORDER BY COALESCE(date, created_at), id`
	return db.queryWorkouts(ctx, query, userID, start, end)
}

func (db *PostgresDB) queryWorkouts(ctx context.Context, query string, args ...any) ([]models.Workout, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workouts: %w", err)
	}
	defer rows.Close()

	workouts := []models.Workout{}
	for rows.Next() {
		w, err := scanPgWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workout: %w", err)
		}
		workouts = append(workouts, *w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating through rows: %w", err)
	}

	return workouts, nil
}

// UpdateWorkout updates an existing workout
func (db *PostgresDB) UpdateWorkout(ctx context.Context, w *models.Workout) error {
	return db.withTx(ctx, func(tx pgx.Tx) error {
		if err := existsInPgTx(ctx, tx, "SELECT EXISTS(SELECT 1 FROM workouts WHERE id = $1 AND user_id = $2)", w.ID, w.UserID); err != nil {
			return err
		}

		updateQuery := `UPDATE workouts
		                SET date = $1, calories = $2, duration = $3, workout_type = $4, notes = $5, updated_at = $6
		                WHERE id = $7 AND user_id = $8`
		_, err := tx.Exec(ctx, updateQuery,
			timeOrNil(w.Date), w.Calories, w.Duration, w.WorkoutType, w.Notes,
			time.Now().UTC(), w.ID, w.UserID)
		if err != nil {
			return fmt.Errorf("failed to update workout: %w", err)
		}
		return nil
	})
}

func (db *PostgresDB) DeleteWorkout(ctx context.Context, userID, id string) error {
	return db.deleteOwned(ctx, "workouts", userID, id)
}

func (db *PostgresDB) CreateExerciseTracking(ctx context.Context, et *models.ExerciseTracking) (*models.ExerciseTracking, error) {
	query := `
		INSERT INTO exercise_tracking (` + trackingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	created := *et
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()

	_, err := db.pool.Exec(ctx, query,
		created.ID, created.UserID, created.ExerciseID, created.ExerciseName,
		created.TargetMuscle, created.EquipmentUsed, created.BodyPart,
		created.DurationMinutes, created.CompletedAt, created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create exercise tracking: %w", err)
	}

	return &created, nil
}

func (db *PostgresDB) ReadExerciseTrackings(ctx context.Context, userID string) ([]models.ExerciseTracking, error) {
	query := `SELECT ` + trackingColumns + ` FROM exercise_tracking WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := db.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exercise tracking: %w", err)
	}
	defer rows.Close()

	tracking := []models.ExerciseTracking{}
	for rows.Next() {
		var et models.ExerciseTracking
		if err := rows.Scan(&et.ID, &et.UserID, &et.ExerciseID, &et.ExerciseName,
			&et.TargetMuscle, &et.EquipmentUsed, &et.BodyPart,
			&et.DurationMinutes, &et.CompletedAt, &et.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exercise tracking: %w", err)
		}
		tracking = append(tracking, et)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating through rows: %w", err)
	}

	return tracking, nil
}

func (db *PostgresDB) DeleteExerciseTracking(ctx context.Context, userID, id string) error {
	return db.deleteOwned(ctx, "exercise_tracking", userID, id)
}

// AddDailyProgress upserts the user's row for the day in one statement
func (db *PostgresDB) AddDailyProgress(ctx context.Context, userID string, date time.Time, minutes int) (*models.DailyProgress, error) {
	query := `
		INSERT INTO daily_exercise_progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date)
		DO UPDATE SET minutes_spent = daily_exercise_progress.minutes_spent + EXCLUDED.minutes_spent
		RETURNING ` + progressColumns

	var p models.DailyProgress
	err := db.pool.QueryRow(ctx, query, uuid.NewString(), userID, calendarDay(date), minutes, time.Now().UTC()).Scan(
		&p.ID, &p.UserID, &p.Date, &p.MinutesSpent, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert daily progress: %w", err)
	}
	return &p, nil
}

func (db *PostgresDB) ReadDailyProgress(ctx context.Context, userID string) ([]models.DailyProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM daily_exercise_progress WHERE user_id = $1 ORDER BY date`

	rows, err := db.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily progress: %w", err)
	}
	defer rows.Close()

	progress := []models.DailyProgress{}
	for rows.Next() {
		var p models.DailyProgress
		if err := rows.Scan(&p.ID, &p.UserID, &p.Date, &p.MinutesSpent, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan daily progress: %w", err)
		}
		progress = append(progress, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating through rows: %w", err)
	}

	return progress, nil
}

// UpsertUserDetails stores the user's profile, replacing any previous one
func (db *PostgresDB) UpsertUserDetails(ctx context.Context, d *models.UserDetails) (*models.UserDetails, error) {
	query := `
		INSERT INTO user_details (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id)
		DO UPDATE SET age = EXCLUDED.age, weight_kg = EXCLUDED.weight_kg, height_cm = EXCLUDED.height_cm,
		              fitness_goal = EXCLUDED.fitness_goal, updated_at = EXCLUDED.updated_at
		RETURNING ` + profileColumns

	var stored models.UserDetails
	err := db.pool.QueryRow(ctx, query, d.UserID, d.Age, d.WeightKg, d.HeightCm, d.FitnessGoal, time.Now().UTC()).Scan(
		&stored.UserID, &stored.Age, &stored.WeightKg, &stored.HeightCm, &stored.FitnessGoal, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user details: %w", err)
	}
	return &stored, nil
}

func (db *PostgresDB) ReadUserDetails(ctx context.Context, userID string) (*models.UserDetails, error) {
	query := `SELECT ` + profileColumns + ` FROM user_details WHERE user_id = $1`

	var d models.UserDetails
	err := db.pool.QueryRow(ctx, query, userID).Scan(
		&d.UserID, &d.Age, &d.WeightKg, &d.HeightCm, &d.FitnessGoal, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user details: %w", err)
	}
	return &d, nil
}

// deleteOwned deletes a row of table by id after checking it belongs to userID.
// table is always one of the package's own table names.
func (db *PostgresDB) deleteOwned(ctx context.Context, table, userID, id string) error {
	return db.withTx(ctx, func(tx pgx.Tx) error {
		checkQuery := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1 AND user_id = $2)", table)
		if err := existsInPgTx(ctx, tx, checkQuery, id, userID); err != nil {
			return err
		}

		deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND user_id = $2", table)
		if _, err := tx.Exec(ctx, deleteQuery, id, userID); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
		return nil
	})
}

func existsInPgTx(ctx context.Context, tx pgx.Tx, query, id, userID string) error {
	var exists bool
	if err := tx.QueryRow(ctx, query, id, userID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check record existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("id %s: %w", id, ErrRecordNotFound)
	}
	return nil
}

func scanPgWorkout(row pgx.Row) (*models.Workout, error) {
	var (
		w    models.Workout
		date *time.Time
	)
	if err := row.Scan(&w.ID, &w.UserID, &date, &w.Calories, &w.Duration,
		&w.WorkoutType, &w.Notes, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	if date != nil {
		w.Date = *date
	}
	return &w, nil
}

// timeOrNil maps the zero time to SQL NULL
func timeOrNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

// Close closes the database connection pool
func (db *PostgresDB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (db *PostgresDB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// HealthCheck pings the database and runs a trivial query
func (db *PostgresDB) HealthCheck(ctx context.Context) error {
	if db.pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	var result int
	if err := db.pool.QueryRow(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query test failed: %w", err)
	}
	if result != 1 {
		return fmt.Errorf("database query returned unexpected result: %d", result)
	}

	return nil
}

// Exec executes a query that doesn't return rows
func (db *PostgresDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return db.pool.Exec(ctx, sql, args...)
}

// GetPoolInfo returns formatted pool information for monitoring/debugging
func (db *PostgresDB) GetPoolInfo() map[string]any {
	if db.pool == nil {
		return map[string]any{
			"status": "not_initialized",
		}
	}

	pool, ok := db.pool.(*pgxpool.Pool)
	if !ok {
		return map[string]any{
			"status": "active",
		}
	}

	stats := pool.Stat()
	return map[string]any{
		"status":               "active",
		"total_connections":    stats.TotalConns(),
		"acquired_connections": stats.AcquiredConns(),
		"idle_connections":     stats.IdleConns(),
		"max_connections":      stats.MaxConns(),
		"acquire_count":        stats.AcquireCount(),
		"acquire_duration":     stats.AcquireDuration(),
		"new_conns_count":      stats.NewConnsCount(),
	}
}
