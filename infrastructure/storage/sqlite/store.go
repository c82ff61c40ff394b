package sqlite

import (
	"database/sql"
	"errors"
	"strconv"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// Store is the handle to the backing sales database. It is constructed
// once at startup and shared by every gateway call; the underlying
// pool hands each call its own scoped connection.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating on demand) the SQLite database described by the
// configuration.
func Open(cfg Config, opts ...Option) (*Store, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := sql.Open("sqlite3", dsn(cfg))
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// journal_mode persists in the database file, so one statement on
	// any connection is enough.
	if cfg.JournalMode != "" {
		if _, err := db.Exec("PRAGMA journal_mode=" + cfg.JournalMode); err != nil {
			_ = db.Close()
			return nil, errors.Join(ErrConnectionFailed, err)
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	return &Store{db: db, path: cfg.Path}, nil
}

// dsn builds the driver DSN for the configured path. In-memory
// databases use a shared cache so every pooled connection sees the
// same database. busy_timeout and foreign_keys are connection-scoped
// in SQLite, so they ride in the DSN where the driver applies them to
// every connection the pool opens, not just the first.
func dsn(cfg Config) string {
	base := "file:" + cfg.Path + "?cache=shared"
	if cfg.Path != ":memory:" {
		base += "&mode=rwc"
	}
	if cfg.BusyTimeout > 0 {
		base += "&_busy_timeout=" + strconv.Itoa(cfg.BusyTimeout)
	}
	if cfg.ForeignKeys {
		base += "&_foreign_keys=on"
	}
	return base
}

// DB returns the underlying connection pool.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the configured database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// IsBusy reports whether an error is a SQLite lock-contention error
// that is safe to retry after a bounded wait.
func IsBusy(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.Code == sqlite3.ErrBusy || serr.Code == sqlite3.ErrLocked
	}
	return false
}
