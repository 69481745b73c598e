// Package auth holds the client-side session lifecycle: the session manager
// (single source of truth for "is a user logged in", mirrored to persistent
// storage) and the OTP login flow state machine.
package auth

import "time"

// User is the identity payload returned by the auth endpoints and persisted
// alongside the token. Feature clients fetch the full profile separately.
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	IsEmailVerified bool      `json:"is_email_verified"`
	IsBrand         bool      `json:"is_brand,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// Session is an authenticated session. Token is the opaque bearer credential;
// ExpiresAt is recovered from the token's exp claim when not provided by the
// server. A zero Session (empty Token) means unauthenticated.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      User
}

// Expired reports whether the session has a known expiry in the past.
// Sessions without a parseable expiry are treated as live; the server is the
// authority and rejects them with 401.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !s.ExpiresAt.After(now)
}
