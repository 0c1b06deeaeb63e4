package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nnamm/go-workout-tracker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestNewTestDatabase(t *testing.T) {
	db, err := NewTestDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, ok := db.(*SQLiteDB)
	assert.True(t, ok, "test database should be in-memory SQLite")
	assert.NoError(t, db.HealthCheck(context.Background()))
}

func TestNewDatabaseWithConfig_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workouts.db")

	db, err := NewDatabaseWithConfig(&config.DatabaseConfig{Type: config.DatabaseSQLite, SQLitePath: path})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	_, err = db.AddDailyProgress(ctx, "user-1", time.Now(), 15)
	require.NoError(t, err)

	progress, err := db.ReadDailyProgress(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, progress, 1)
}

func TestNewDatabaseWithConfig_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		dbConfig *config.DatabaseConfig
		errorMsg string
	}{
		{"nil config", nil, "configuration is nil"},
		{"unknown type", &config.DatabaseConfig{Type: "mysql"}, `unknown database type "mysql"`},
		{"sqlite without path", &config.DatabaseConfig{Type: config.DatabaseSQLite}, "sqlite_path is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := NewDatabaseWithConfig(tt.dbConfig)
			require.Error(t, err)
			assert.Nil(t, db)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestValidateConfiguration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(c *config.DatabaseConfig)
		want   []string
	}{
		{
			name:   "valid postgres config",
			modify: func(c *config.DatabaseConfig) {},
		},
		{
			name:   "missing host",
			modify: func(c *config.DatabaseConfig) { c.Host = "" },
			want:   []string{"postgres host is required"},
		},
		{
			name:   "missing database name",
			modify: func(c *config.DatabaseConfig) { c.Database = "" },
			want:   []string{"postgres database name is required"},
		},
		{
			name:   "missing user",
			modify: func(c *config.DatabaseConfig) { c.Username = "" },
			want:   []string{"postgres user is required"},
		},
		{
			name:   "port zero",
			modify: func(c *config.DatabaseConfig) { c.Port = 0 },
			want:   []string{"postgres port 0 is out of range"},
		},
		{
			name:   "port too high",
			modify: func(c *config.DatabaseConfig) { c.Port = 65536 },
			want:   []string{"postgres port 65536 is out of range"},
		},
		{
			name:   "zero max connections",
			modify: func(c *config.DatabaseConfig) { c.MaxConns = 0 },
			want:   []string{"max_conns must be at least 1, got 0"},
		},
		{
			name:   "negative min connections",
			modify: func(c *config.DatabaseConfig) { c.MinConns = -1 },
			want:   []string{"min_conns must not be negative, got -1"},
		},
		{
			name:   "min above max",
			modify: func(c *config.DatabaseConfig) { c.MaxConns, c.MinConns = 5, 10 },
			want:   []string{"min_conns 10 is above max_conns 5"},
		},
		{
			name: "every problem is reported",
			modify: func(c *config.DatabaseConfig) {
				c.Host, c.Username, c.Port = "", "", -1
			},
			want: []string{"postgres host is required", "postgres user is required", "postgres port -1 is out of range"},
		},
		{
			name: "valid sqlite config",
			modify: func(c *config.DatabaseConfig) {
				*c = config.DatabaseConfig{Type: config.DatabaseSQLite, SQLitePath: "/tmp/test.db"}
			},
		},
		{
			name: "unknown type",
			modify: func(c *config.DatabaseConfig) {
				c.Type = config.DatabaseType("unsupported")
			},
			want: []string{`unknown database type "unsupported"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := newValidPostgreSQLConfig()
			tt.modify(cfg)

			err := ValidateConfiguration(cfg)
			if len(tt.want) == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			errs := multierr.Errors(err)
			require.Len(t, errs, len(tt.want))
			for i, want := range tt.want {
				assert.ErrorIs(t, errs[i], ErrInvalidConfig)
				assert.Contains(t, errs[i].Error(), want)
			}
		})
	}
}

func newValidPostgreSQLConfig() *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Type:            config.DatabasePostgreSQL,
		Host:            "localhost",
		Port:            5432,
		Database:        "workout_tracker_test",
		Username:        "test_user",
		Password:        "password",
		SSLMode:         "disable",
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 15 * time.Minute,
	}
}
