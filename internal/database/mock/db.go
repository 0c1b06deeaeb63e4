// Package mock provides an in-memory, thread-safe database.DBInterface for
// handler tests.
package mock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nnamm/go-workout-tracker/internal/database"
	"github.com/nnamm/go-workout-tracker/internal/models"
)

var ErrDataBaseConnection = errors.New("database connection failed")

type MockDB struct {
	mu       sync.RWMutex
	seq      int
	workouts []*models.Workout
	tracking []*models.ExerciseTracking
	progress []*models.DailyProgress
	profiles map[string]models.UserDetails
	closed   bool

	simulateTimeout       bool
	simulateContextCancel bool
	simulateDBError       bool
}

var _ database.DBInterface = (*MockDB)(nil)

func NewMockDB() *MockDB {
	return &MockDB{profiles: make(map[string]models.UserDetails)}
}

func (m *MockDB) SetSimulateTimeout(simulate bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulateTimeout = simulate
}

func (m *MockDB) SetSimulateContextCancel(simulate bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulateContextCancel = simulate
}

func (m *MockDB) SetSimulateDBError(simulate bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulateDBError = simulate
}

func (m *MockDB) checkContext(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.simulateTimeout {
		return context.DeadlineExceeded
	}
	if m.simulateContextCancel {
		return context.Canceled
	}
	if m.simulateDBError {
		return ErrDataBaseConnection
	}
	return ctx.Err()
}

// nextID must be called with the write lock held
func (m *MockDB) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *MockDB) CreateWorkout(ctx context.Context, w *models.Workout) (*models.Workout, error) {
	if err := m.checkContext(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	created := *w
	created.ID = m.nextID("workout")
	now := time.Now()
	created.CreatedAt = now
	created.UpdatedAt = now
	m.workouts = append(m.workouts, &created)

	out := created
	return &out, nil
}

func (m *MockDB) ReadWorkout(ctx context.Context, userID, id string) (*models.Workout, error) {
	if err := m.checkContext(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, w := range m.workouts {
		if w.ID == id && w.UserID == userID {
			out := *w
			return &out, nil
		}
	}
	return nil, nil
}

func (m *MockDB) ReadWorkouts(ctx context.Context, userID string) ([]models.Workout, error) {
	if err := m.checkContext(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Workout{}
	for _, w := range m.workouts {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (m *MockDB) ReadWorkoutsByRange(ctx context.Context, userID string, start, end time.Time) ([]models.Workout, error) {
	all, err := m.ReadWorkouts(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := []models.Workout{}
	for _, w := range all {
		effective := w.Date
		if effective.IsZero() {
			effective = w.CreatedAt
		}
		if !effective.Before(start) && effective.Before(end) {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return effectiveDate(out[i]).Before(effectiveDate(out[j]))
	})
	return out, nil
}

func effectiveDate(w models.Workout) time.Time {
	if w.Date.IsZero() {
		return w.CreatedAt
	}
	return w.Date
}

func (m *MockDB) UpdateWorkout(ctx context.Context, w *models.Workout) error {
	if err := m.checkContext(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, stored := range m.workouts {
		if stored.ID == w.ID && stored.UserID == w.UserID {
			stored.Date = w.Date
			stored.Calories = w.Calories
			stored.Duration = w.Duration
			stored.WorkoutType = w.WorkoutType
			stored.Notes = w.Notes
			stored.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("id %s: %w", w.ID, database.ErrRecordNotFound)
}

func (m *MockDB) DeleteWorkout(ctx context.Context, userID, id string) error {
	if err := m.checkContext(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, stored := range m.workouts {
		if stored.ID == id && stored.UserID == userID {
			m.workouts = append(m.workouts[:i], m.workouts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("id %s: %w", id, database.ErrRecordNotFound)
}

func (m *MockDB) CreateExerciseTracking(ctx context.Context, et *models.ExerciseTracking) (*models.ExerciseTracking, error) {
	if err := m.checkContext(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	created := *et
	created.ID = m.nextID("tracking")
	created.CreatedAt = time.Now()
	m.tracking = append(m.tracking, &created)

	out := created
	return &out, nil
}

func (m *MockDB) ReadExerciseTrackings(ctx context.Context, userID string) ([]models.ExerciseTracking, error) {
	if err := m.checkContext(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.ExerciseTracking{}
	for _, et := range m.tracking {
		if et.UserID == userID {
			out = append(out, *et)
		}
	}
	return out, nil
}

func (m *MockDB) DeleteExerciseTracking(ctx context.Context, userID, id string) error {
	if err := m.checkContext(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, stored := range m.tracking {
		if stored.ID == id && stored.UserID == userID {
			m.tracking = append(m.tracking[:i], m.tracking[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("id %s: %w", id, database.ErrRecordNotFound)
}

func (m *MockDB) AddDailyProgress(ctx context.Context, userID string, date time.Time, minutes int) (*models.DailyProgress, error) {
	if err := m.checkContext(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	y, mo, d := date.Date()
	day := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	for _, p := range m.progress {
		if p.UserID == userID && p.Date.Equal(day) {
			p.MinutesSpent += minutes
			out := *p
			return &out, nil
		}
	}

	p := &models.DailyProgress{
		ID:           m.nextID("progress"),
		UserID:       userID,
		Date:         day,
		MinutesSpent: minutes,
		CreatedAt:    time.Now(),
	}
	m.progress = append(m.progress, p)

	out := *p
	return &out, nil
}

func (m *MockDB) ReadDailyProgress(ctx context.Context, userID string) ([]models.DailyProgress, error) {
	if err := m.checkContext(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.DailyProgress{}
	for _, p := range m.progress {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (m *MockDB) UpsertUserDetails(ctx context.Context, d *models.UserDetails) (*models.UserDetails, error) {
	if err := m.checkContext(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *d
	stored.UpdatedAt = time.Now()
	m.profiles[stored.UserID] = stored
	return &stored, nil
}

func (m *MockDB) ReadUserDetails(ctx context.Context, userID string) (*models.UserDetails, error) {
	if err := m.checkContext(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *MockDB) HealthCheck(ctx context.Context) error {
	if err := m.checkContext(ctx); err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return errors.New("database is closed")
	}
	return nil
}

func (m *MockDB) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// WorkoutCount returns the number of stored workouts of all users
func (m *MockDB) WorkoutCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.workouts)
}
