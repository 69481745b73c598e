// Package telemetry defines the client-side event emitter: fire-and-forget
// records of user-facing actions (login, OTP verification, session expiry)
// shipped through OpenTelemetry when an OTLP endpoint is configured.
package telemetry

import (
	"context"
	"time"
)

// Event is a single client event. Attrs carries event-specific key/values
// (e.g. view name, HTTP status); nothing secret goes in here.
type Event struct {
	EventType string
	Source    string
	UserID    string
	Attrs     map[string]string
	CreatedAt time.Time
}

// Event types emitted by the front ends.
const (
	EventLogin          = "login"
	EventLoginOTP       = "login_otp_required"
	EventOTPVerified    = "otp_verified"
	EventOTPResend      = "otp_resend"
	EventSessionExpired = "session_expired"
	EventLogout         = "logout"
	EventViewChange     = "view_change"
)

// EventEmitter sends client events to the telemetry backend. Implementations
// must tolerate nil Attrs and be safe for concurrent use.
type EventEmitter interface {
	Emit(ctx context.Context, event *Event) error
}

// Noop is an EventEmitter that discards everything.
type Noop struct{}

// Emit discards the event.
func (Noop) Emit(context.Context, *Event) error { return nil }
