package sqlite

import (
	"errors"
	"fmt"
	"testing"

	sqlite3 "github.com/mattn/go-sqlite3"
)

func TestIsBusy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"busy", sqlite3.Error{Code: sqlite3.ErrBusy}, true},
		{"locked", sqlite3.Error{Code: sqlite3.ErrLocked}, true},
		{"wrapped busy", fmt.Errorf("exec: %w", sqlite3.Error{Code: sqlite3.ErrBusy}), true},
		{"constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBusy(tt.err); got != tt.want {
				t.Errorf("IsBusy(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		path string
		mod  func(*Config)
		want string
	}{
		{
			name: "memory",
			path: ":memory:",
			want: "file::memory:?cache=shared&_busy_timeout=5000&_foreign_keys=on",
		},
		{
			name: "file",
			path: "sales.db",
			want: "file:sales.db?cache=shared&mode=rwc&_busy_timeout=5000&_foreign_keys=on",
		},
		{
			name: "foreign keys off",
			path: "sales.db",
			mod:  func(c *Config) { c.ForeignKeys = false },
			want: "file:sales.db?cache=shared&mode=rwc&_busy_timeout=5000",
		},
		{
			name: "no busy timeout",
			path: "sales.db",
			mod:  func(c *Config) { c.BusyTimeout = 0 },
			want: "file:sales.db?cache=shared&mode=rwc&_foreign_keys=on",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Path = tt.path
			if tt.mod != nil {
				tt.mod(&cfg)
			}
			if got := dsn(cfg); got != tt.want {
				t.Errorf("dsn(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestOpenAppliesOptions(t *testing.T) {
	cfg := DefaultConfig()

	opts := []Option{
		WithPath("custom.db"),
		WithBusyTimeout(250),
		WithJournalMode("DELETE"),
		WithMaxOpenConns(2),
		WithoutForeignKeys(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Path != "custom.db" || cfg.BusyTimeout != 250 || cfg.JournalMode != "DELETE" {
		t.Errorf("options not applied: %+v", cfg)
	}
	if cfg.MaxOpenConns != 2 {
		t.Errorf("expected MaxOpenConns 2, got %d", cfg.MaxOpenConns)
	}
	if cfg.ForeignKeys {
		t.Error("expected foreign keys disabled")
	}
}
