// Package store provides the persistent local storage the session managers
// mirror into: plain string values under well-known keys, with in-memory,
// encrypted-file, and SQLite-backed implementations.
package store

import "errors"

// Well-known credential keys. Values are plain strings or JSON blobs; there is
// no schema versioning on the stored values.
const (
	KeyAuthToken  = "authToken"
	KeyAuthUser   = "authUser"
	KeyAdminToken = "adminToken"
	KeyAdminUser  = "adminUser"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("store: key not found")

// Store is the persistence interface injected into session managers.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}
