// Package config provides centralized configuration management for the importer.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Ingest   IngestConfig
	Database DatabaseConfig
	Store    StoreConfig
	Logging  LoggingConfig
}

// IngestConfig holds directory scanning and parsing settings.
type IngestConfig struct {
	// Root is the directory holding one subdirectory per city period (required)
	Root string `env:"LVR_ROOT" required:"true"`

	// OutputMode is flat or grouped (default: flat)
	OutputMode string `env:"LVR_OUTPUT_MODE" default:"flat"`

	// MaxCities caps the number of city directories scanned, 0 = all (default: 0)
	MaxCities int `env:"LVR_MAX_CITIES" default:"0"`

	// MaxLetters caps the letter positions scanned per city, 0 = all (default: 0)
	MaxLetters int `env:"LVR_MAX_LETTERS" default:"0"`

	// Workers is the number of units processed concurrently (default: 1)
	Workers int `env:"LVR_WORKERS" default:"1"`

	// SkipLeadingRow drops the row after the header, which the exports use
	// for English labels (default: true)
	SkipLeadingRow bool `env:"LVR_SKIP_LEADING_ROW" default:"true"`

	// ReferencePath overrides the embedded city/town reference data
	ReferencePath string `env:"LVR_REFERENCE_PATH"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the connection string. Records are only written when it is set.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// Driver is postgres, mysql or sqlite3 (default: postgres)
	Driver string `env:"DB_DRIVER" default:"postgres"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 1)
	MinConns int `env:"DB_MIN_CONNS" default:"1"`

	// Table is the destination table (default: lvr_land)
	Table string `env:"DB_TABLE" default:"lvr_land"`
}

// StoreConfig holds batch write settings.
type StoreConfig struct {
	// BatchSize is the number of records written per batch (default: 1000)
	BatchSize int `env:"STORE_BATCH_SIZE" default:"1000"`

	// Timeout bounds the whole write phase (default: 10m)
	Timeout time.Duration `env:"STORE_TIMEOUT" default:"10m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// WriteEnabled reports whether scanned records should be written to a database.
func (c *DatabaseConfig) WriteEnabled() bool {
	return c.URL != ""
}
