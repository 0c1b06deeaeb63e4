// Package config loads the service configuration: built-in defaults, then an
// optional TOML file, then environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the whole service configuration
type Config struct {
	Env            string        `toml:"env"`
	Port           int           `toml:"port"`
	RequestTimeout time.Duration `toml:"request_timeout"`

	Logging  LoggingConfig  `toml:"logging"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Stats    StatsConfig    `toml:"stats"`
}

type LoggingConfig struct {
	Level       string `toml:"level"`
	FormatJSON  bool   `toml:"format_json"`
	File        string `toml:"file"`
	LogToStdout bool   `toml:"log_to_stdout"`
}

// AuthConfig holds the bearer token verification parameters
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	JWTIssuer string `toml:"jwt_issuer"`
}

// CatalogConfig configures the exercise catalog client
type CatalogConfig struct {
	BaseURL     string        `toml:"base_url"`
	APIKey      string        `toml:"api_key"`
	APIHost     string        `toml:"api_host"`
	Timeout     time.Duration `toml:"timeout"`
	CacheTTL    time.Duration `toml:"cache_ttl"`
	CacheSizeMB int           `toml:"cache_size_mb"`
}

type StatsConfig struct {
	// WeightKg is used for calorie estimation when neither the request nor the user profile gives a weight
	WeightKg float64 `toml:"weight_kg"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		Env:            "production",
		Port:           8000,
		RequestTimeout: 30 * time.Second,
		Logging: LoggingConfig{
			Level: "info",
		},
		Database: *LoadDatabaseConfig(),
		Auth: AuthConfig{
			JWTIssuer: "go-workout-tracker",
		},
		Catalog: CatalogConfig{
			BaseURL:     "https://exercisedb.p.rapidapi.com",
			APIHost:     "exercisedb.p.rapidapi.com",
			Timeout:     10 * time.Second,
			CacheTTL:    time.Hour,
			CacheSizeMB: 16,
		},
		Stats: StatsConfig{
			WeightKg: 70,
		},
	}
}

// Load builds the configuration. tomlPath may be empty, in which case only
// defaults and environment variables are used.
func Load(tomlPath string) (*Config, error) {
	cfg := Default()

	if tomlPath != "" {
		if _, err := toml.DecodeFile(tomlPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", tomlPath, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// IsDevelopment reports whether internal error details may be returned to clients
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.Env) {
	case "dev", "development":
		return true
	default:
		return false
	}
}

// applyEnv overrides fields whose environment variable is set
func (c *Config) applyEnv() {
	c.Env = getEnv("ENV", c.Env)
	c.Port = getEnvAsInt("PORT", c.Port)
	if timeout := getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 0); timeout > 0 {
		c.RequestTimeout = time.Duration(timeout) * time.Second
	}

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.FormatJSON = getEnvAsBool("LOG_FORMAT_JSON", c.Logging.FormatJSON)
	c.Logging.File = getEnv("LOG_FILE", c.Logging.File)
	c.Logging.LogToStdout = getEnvAsBool("LOG_TO_STDOUT", c.Logging.LogToStdout)

	c.Database.applyEnv()

	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.JWTIssuer = getEnv("JWT_ISSUER", c.Auth.JWTIssuer)

	c.Catalog.BaseURL = getEnv("CATALOG_BASE_URL", c.Catalog.BaseURL)
	c.Catalog.APIKey = getEnv("CATALOG_API_KEY", c.Catalog.APIKey)
	c.Catalog.APIHost = getEnv("CATALOG_API_HOST", c.Catalog.APIHost)
	c.Catalog.Timeout = getEnvAsDuration("CATALOG_TIMEOUT", c.Catalog.Timeout)
	c.Catalog.CacheTTL = getEnvAsDuration("CATALOG_CACHE_TTL", c.Catalog.CacheTTL)
	c.Catalog.CacheSizeMB = getEnvAsInt("CATALOG_CACHE_SIZE_MB", c.Catalog.CacheSizeMB)

	c.Stats.WeightKg = getEnvAsFloat("STATS_WEIGHT_KG", c.Stats.WeightKg)
}

// getEnvAsBool retrieves the value of an environment variable by key and converts it to a bool.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsFloat retrieves the value of an environment variable by key and converts it to a float64.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings such as "90s" or "1h".
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// getEnv retrieves the value of an environment variable by key.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves the value of an environment variable by key and converts it to an integer.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr != "" {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
