package store

import (
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is a Store backed by a local SQLite database, for front ends that
// already carry one (the dashboard keeps view caches in the same file).
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens the SQLite database at path and verifies the connection.
// The credentials table must exist; run migrations first (cmd/migrate).
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// NewSQLite wraps an existing database handle.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Get returns the value for key, or ErrNotFound.
func (s *SQLite) Get(key string) (string, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM credentials WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLite) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// Delete removes key.
func (s *SQLite) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM credentials WHERE key = ?`, key)
	return err
}

// CacheView stores the serialized payload last fetched for a dashboard view,
// so the shell can render stale data while a refresh is in flight.
func (s *SQLite) CacheView(view, payload string) error {
	_, err := s.db.Exec(
		`INSERT INTO view_cache (view, payload, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(view) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		view, payload, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// CachedView returns the cached payload and fetch time for view, or
// ErrNotFound when the view has never been cached.
func (s *SQLite) CachedView(view string) (payload string, fetchedAt time.Time, err error) {
	var ts string
	err = s.db.QueryRow(`SELECT payload, fetched_at FROM view_cache WHERE view = ?`, view).Scan(&payload, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, ErrNotFound
	}
	if err != nil {
		return "", time.Time{}, err
	}
	fetchedAt, err = time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return "", time.Time{}, err
	}
	return payload, fetchedAt, nil
}
