package config

import (
	"fmt"
	"time"
)

// DatabaseType defines the type of database to use
type DatabaseType string

const (
	DatabaseSQLite     DatabaseType = "sqlite"
	DatabasePostgreSQL DatabaseType = "postgresql"
)

// DatabaseConfig holds all database-related configuration
type DatabaseConfig struct {
	Type     DatabaseType `toml:"type"`
	Host     string       `toml:"host"`
	Port     int          `toml:"port"`
	Database string       `toml:"name"`
	Username string       `toml:"user"`
	Password string       `toml:"password"`
	SSLMode  string       `toml:"ssl_mode"`

	// SQLite specific
	SQLitePath string `toml:"sqlite_path"`

	// Connection pool settings for PostgreSQL
	MaxConns        int32         `toml:"max_conns"`
	MinConns        int32         `toml:"min_conns"`
	MaxConnLifetime time.Duration `toml:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `toml:"max_conn_idle_time"`
}

// LoadDatabaseConfig loads database configuration from environment variables
func LoadDatabaseConfig() *DatabaseConfig {
	config := &DatabaseConfig{
		Type:     DatabaseSQLite,
		Host:     "localhost",
		Port:     5432,
		Database: "workout_tracker",
		Username: "postgres",
		SSLMode:  "disable",

		SQLitePath: "./workout_tracker.db",

		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 60 * time.Minute,
		MaxConnIdleTime: 30 * time.Minute,
	}
	config.applyEnv()

	return config
}

func (c *DatabaseConfig) applyEnv() {
	c.Type = DatabaseType(getEnv("DB_TYPE", string(c.Type)))
	c.Host = getEnv("DB_HOST", c.Host)
	c.Port = getEnvAsInt("DB_PORT", c.Port)
	c.Database = getEnv("DB_NAME", c.Database)
	c.Username = getEnv("DB_USER", c.Username)
	c.Password = getEnv("DB_PASSWORD", c.Password)
	c.SSLMode = getEnv("DB_SSL_MODE", c.SSLMode)

	c.SQLitePath = getEnv("DB_PATH", c.SQLitePath)

	c.MaxConns = int32(getEnvAsInt("DB_MAX_CONNS", int(c.MaxConns)))
	c.MinConns = int32(getEnvAsInt("DB_MIN_CONNS", int(c.MinConns)))
	if minutes := getEnvAsInt("DB_MAX_CONN_LIFETIME_MINUTES", 0); minutes > 0 {
		c.MaxConnLifetime = time.Duration(minutes) * time.Minute
	}
	if minutes := getEnvAsInt("DB_MAX_CONN_IDLE_MINUTES", 0); minutes > 0 {
		c.MaxConnIdleTime = time.Duration(minutes) * time.Minute
	}
}

// GetConnectionString returns the appropriate connection string based on database type
func (c *DatabaseConfig) GetConnectionString() string {
	switch c.Type {
	case DatabasePostgreSQL:
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			c.Username, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
	case DatabaseSQLite:
		return c.SQLitePath
	default:
		return c.SQLitePath
	}
}

// IsPostgreSQL returns true if PostgreSQL is configured
func (c *DatabaseConfig) IsPostgreSQL() bool {
	return c.Type == DatabasePostgreSQL
}

// IsSQLite returns true if SQLite is configured
func (c *DatabaseConfig) IsSQLite() bool {
	return c.Type == DatabaseSQLite
}
