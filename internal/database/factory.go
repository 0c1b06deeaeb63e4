package database

import (
	"errors"
	"fmt"

	"github.com/nnamm/go-workout-tracker/internal/config"
	"go.uber.org/multierr"

	log "github.com/sirupsen/logrus"
)

// ErrInvalidConfig is wrapped by every configuration problem ValidateConfiguration reports
var ErrInvalidConfig = errors.New("invalid database configuration")

type opener func(dsn string, dbConfig *config.DatabaseConfig) (DBInterface, error)

// openers maps each supported backend to its constructor. The nil checks keep
// a failed constructor from leaking a typed nil through DBInterface.
var openers = map[config.DatabaseType]opener{
	config.DatabasePostgreSQL: func(dsn string, dbConfig *config.DatabaseConfig) (DBInterface, error) {
		db, err := NewPostgresDBWithConfig(dsn, dbConfig)
		if err != nil {
			return nil, err
		}
		return db, nil
	},
	config.DatabaseSQLite: func(dsn string, _ *config.DatabaseConfig) (DBInterface, error) {
		db, err := NewSQLiteDB(dsn)
		if err != nil {
			return nil, err
		}
		return db, nil
	},
}

// NewDatabaseWithConfig opens the store selected by dbConfig.Type
func NewDatabaseWithConfig(dbConfig *config.DatabaseConfig) (DBInterface, error) {
	if err := ValidateConfiguration(dbConfig); err != nil {
		return nil, err
	}

	open := openers[dbConfig.Type]
	db, err := open(dbConfig.GetConnectionString(), dbConfig)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", dbConfig.Type, err)
	}

	log.WithField("type", dbConfig.Type).Debug("database opened")
	return db, nil
}

// ValidateConfiguration reports every problem with dbConfig at once, each
// wrapping ErrInvalidConfig.
func ValidateConfiguration(dbConfig *config.DatabaseConfig) error {
	if dbConfig == nil {
		return fmt.Errorf("%w: configuration is nil", ErrInvalidConfig)
	}

	var errs error
	invalid := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	switch dbConfig.Type {
	case config.DatabasePostgreSQL:
		if dbConfig.Host == "" {
			invalid("postgres host is required")
		}
		if dbConfig.Database == "" {
			invalid("postgres database name is required")
		}
		if dbConfig.Username == "" {
			invalid("postgres user is required")
		}
		if dbConfig.Port < 1 || dbConfig.Port > 65535 {
			invalid("postgres port %d is out of range", dbConfig.Port)
		}
		if dbConfig.MaxConns < 1 {
			invalid("max_conns must be at least 1, got %d", dbConfig.MaxConns)
		}
		if dbConfig.MinConns < 0 {
			invalid("min_conns must not be negative, got %d", dbConfig.MinConns)
		} else if dbConfig.MaxConns >= 1 && dbConfig.MinConns > dbConfig.MaxConns {
			invalid("min_conns %d is above max_conns %d", dbConfig.MinConns, dbConfig.MaxConns)
		}
	case config.DatabaseSQLite:
		if dbConfig.SQLitePath == "" {
			invalid("sqlite_path is required")
		}
	default:
		invalid("unknown database type %q", dbConfig.Type)
	}

	return errs
}

// NewTestDatabase opens a fresh in-memory SQLite store
func NewTestDatabase() (DBInterface, error) {
	return NewDatabaseWithConfig(&config.DatabaseConfig{
		Type:       config.DatabaseSQLite,
		SQLitePath: ":memory:",
	})
}
