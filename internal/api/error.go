package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the typed error returned for failed API calls. Status is the HTTP
// status code, or 0 for network-level failures (timeout, connection reset,
// DNS). Message is human-readable and safe to surface to the user.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: network error: %s", e.Message)
	}
	return fmt.Sprintf("api: status=%d: %s", e.Status, e.Message)
}

// IsNetwork reports whether err is an API error with Status 0 (request never
// produced an HTTP response).
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 0
}

// IsStatus reports whether err is an API error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsUnauthorized reports whether err is a 401 API error.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// StatusOf returns the HTTP status of an API error, or -1 if err is not one.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return -1
}
