package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store backed by a single encrypted JSON file. The whole key/value
// map is sealed with a passphrase-derived key and rewritten on every mutation;
// credential payloads are small so this stays cheap.
type File struct {
	path       string
	passphrase string

	mu sync.Mutex
	m  map[string]string
}

// OpenFile opens (or creates) the encrypted store at path. Returns
// ErrBadPassphrase if an existing file cannot be decrypted.
func OpenFile(path, passphrase string) (*File, error) {
	s := &File{path: path, passphrase: passphrase, m: make(map[string]string)}
	blob, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}
	plain, err := open(passphrase, blob)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(plain, &s.m); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", path, err)
	}
	return s, nil
}

// Get returns the value for key, or ErrNotFound.
func (s *File) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key and rewrites the file.
func (s *File) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.m[key]
	s.m[key] = value
	if err := s.flushLocked(); err != nil {
		if had {
			s.m[key] = prev
		} else {
			delete(s.m, key)
		}
		return err
	}
	return nil
}

// Delete removes key and rewrites the file.
func (s *File) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.m[key]
	if !had {
		return nil
	}
	delete(s.m, key)
	if err := s.flushLocked(); err != nil {
		s.m[key] = prev
		return err
	}
	return nil
}

// flushLocked seals the map and writes it via a temp file + rename so a crash
// mid-write cannot leave a truncated store.
func (s *File) flushLocked() error {
	plain, err := json.Marshal(s.m)
	if err != nil {
		return err
	}
	blob, err := seal(s.passphrase, plain)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
