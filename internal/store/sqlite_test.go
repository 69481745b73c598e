package store

import (
	"database/sql"
	"errors"
	"testing"
	"time"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	schema := []string{
		`CREATE TABLE credentials (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at TEXT NOT NULL)`,
		`CREATE TABLE view_cache (view TEXT PRIMARY KEY, payload TEXT NOT NULL, fetched_at TEXT NOT NULL)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("schema: %v", err)
		}
	}
	return NewSQLite(db)
}

func TestSQLite_RoundTrip(t *testing.T) {
	s := openTestSQLite(t)
	if _, err := s.Get(KeyAuthToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on empty store = %v, want ErrNotFound", err)
	}
	if err := s.Set(KeyAuthToken, "tok-1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(KeyAuthToken, "tok-2"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, err := s.Get(KeyAuthToken)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "tok-2" {
		t.Errorf("Get = %q, want %q", v, "tok-2")
	}
	if err := s.Delete(KeyAuthToken); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(KeyAuthToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
}

func TestSQLite_ViewCache(t *testing.T) {
	s := openTestSQLite(t)
	if _, _, err := s.CachedView("orders"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CachedView on empty cache = %v, want ErrNotFound", err)
	}
	if err := s.CacheView("orders", `[{"id":"o1"}]`); err != nil {
		t.Fatalf("CacheView: %v", err)
	}
	payload, fetchedAt, err := s.CachedView("orders")
	if err != nil {
		t.Fatalf("CachedView: %v", err)
	}
	if payload != `[{"id":"o1"}]` {
		t.Errorf("payload = %q", payload)
	}
	if time.Since(fetchedAt) > time.Minute {
		t.Errorf("fetchedAt = %v, want recent", fetchedAt)
	}
	if err := s.CacheView("orders", `[]`); err != nil {
		t.Fatalf("CacheView overwrite: %v", err)
	}
	payload, _, err = s.CachedView("orders")
	if err != nil {
		t.Fatalf("CachedView: %v", err)
	}
	if payload != `[]` {
		t.Errorf("payload after overwrite = %q", payload)
	}
}
