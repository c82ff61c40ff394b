// Package sqlite provides the SQLite-backed sales store.
package sqlite

import (
	"errors"
	"time"
)

// Config configures the SQLite store.
type Config struct {
	// Path is the database file path. The file is created on demand.
	// The special value ":memory:" opens a shared in-memory database.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	MaxIdleConns int

	// ConnMaxLifetime is the maximum connection lifetime.
	ConnMaxLifetime time.Duration

	// JournalMode sets the SQLite journal mode (e.g., "WAL").
	JournalMode string

	// BusyTimeout sets the busy timeout in milliseconds. This is the
	// engine-level bound on waiting for the file lock; retries above
	// it are handled by the resilience executor.
	BusyTimeout int

	// ForeignKeys enables foreign key enforcement. When enabled,
	// deletes of referenced rows are rejected (references carry no
	// ON DELETE action).
	ForeignKeys bool
}

// Option configures the SQLite store.
type Option func(*Config)

// WithPath sets the database file path.
func WithPath(path string) Option {
	return func(c *Config) {
		c.Path = path
	}
}

// WithMaxOpenConns sets the maximum open connections.
func WithMaxOpenConns(n int) Option {
	return func(c *Config) {
		c.MaxOpenConns = n
	}
}

// WithJournalMode sets the SQLite journal mode.
func WithJournalMode(mode string) Option {
	return func(c *Config) {
		c.JournalMode = mode
	}
}

// WithBusyTimeout sets the busy timeout in milliseconds.
func WithBusyTimeout(ms int) Option {
	return func(c *Config) {
		c.BusyTimeout = ms
	}
}

// WithoutForeignKeys disables foreign key enforcement.
func WithoutForeignKeys() Option {
	return func(c *Config) {
		c.ForeignKeys = false
	}
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Path:            "sales_data.db",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		JournalMode:     "WAL",
		BusyTimeout:     5000,
		ForeignKeys:     true,
	}
}

// Errors
var (
	ErrConnectionFailed = errors.New("sqlite: connection failed")
	ErrMigrationFailed  = errors.New("sqlite: migration failed")
	ErrSeedFailed       = errors.New("sqlite: seed failed")
)
