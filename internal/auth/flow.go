package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State is the login flow state.
type State string

const (
	// StateIdle means no login attempt is in progress.
	StateIdle State = "idle"
	// StateOTPPending means credentials were accepted and the server is
	// waiting for the one-time code.
	StateOTPPending State = "otp_pending"
	// StateAuthenticated means a session is installed.
	StateAuthenticated State = "authenticated"
	// StateDisabling means a 2FA turn-off challenge is pending confirmation.
	StateDisabling State = "disabling"
)

// Resend policy: a new code may be requested at most maxResends times, and
// not before the countdown from the previous send has elapsed.
const (
	maxResends     = 3
	resendInterval = 60 * time.Second
)

// Flow state machine errors.
var (
	ErrNotIdle         = errors.New("auth: login already in progress")
	ErrNoChallenge     = errors.New("auth: no OTP challenge pending")
	ErrResendLimit     = errors.New("auth: OTP resend limit reached")
	ErrResendCountdown = errors.New("auth: OTP resend countdown still running")
	ErrNotAuthed       = errors.New("auth: not authenticated")
)

// LoginResult is the wire outcome of a credentials or OTP submission. Either
// a session (Token/ExpiresAt/User) or a pending challenge (OTPRequired with
// SessionToken), never both.
type LoginResult struct {
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	User      User      `json:"user,omitempty"`

	OTPRequired  bool   `json:"otp_required,omitempty"`
	SessionToken string `json:"session_token,omitempty"`
}

// Authenticator is the slice of the API surface the login flow needs.
// account.Client, brand.Client, and admin.Client implement it.
type Authenticator interface {
	// Login submits credentials. The result either carries a session or
	// signals that an OTP challenge was issued.
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	// VerifyOTP submits the one-time code for the pending challenge.
	VerifyOTP(ctx context.Context, sessionToken, code string) (*LoginResult, error)
	// ResendOTP asks the server to issue a new code for the challenge.
	ResendOTP(ctx context.Context, sessionToken string) error
}

// DisableAuthenticator is implemented by clients whose accounts can turn 2FA
// off; the flow drives the challenge the same way as login.
type DisableAuthenticator interface {
	// BeginDisableOTP starts a 2FA turn-off challenge and returns its token.
	BeginDisableOTP(ctx context.Context) (sessionToken string, err error)
	// ConfirmDisableOTP submits the code confirming the turn-off.
	ConfirmDisableOTP(ctx context.Context, sessionToken, code string) error
	// ResendOTP re-issues the challenge code (shared with login).
	ResendOTP(ctx context.Context, sessionToken string) error
}

// challenge is the active OTP challenge. At most one exists per flow.
type challenge struct {
	sessionToken string
	resendCount  int
	resendUntil  time.Time
}

// Flow drives the multi-step login (password, optional OTP, session) and the
// parallel 2FA turn-off challenge. Terminal success state is
// StateAuthenticated with the session installed in the Manager.
type Flow struct {
	auth     Authenticator
	sessions *Manager
	now      func() time.Time

	mu         sync.Mutex
	state      State
	challenge  *challenge
	submitting bool
}

// NewFlow returns a Flow in StateIdle, or StateAuthenticated when the manager
// already holds a rehydrated session.
func NewFlow(auth Authenticator, sessions *Manager) *Flow {
	f := &Flow{
		auth:     auth,
		sessions: sessions,
		now:      func() time.Time { return time.Now().UTC() },
		state:    StateIdle,
	}
	if sessions.Authenticated() {
		f.state = StateAuthenticated
	}
	return f
}

// State returns the current flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit submits credentials from StateIdle. On success the flow is either
// StateAuthenticated (session installed) or StateOTPPending (challenge held,
// resend countdown started at 60s). On error the flow stays idle. A second
// Submit while the first is still on the wire is rejected, so the single
// challenge slot is never contested.
func (f *Flow) Submit(ctx context.Context, identifier, password string) (State, error) {
	f.mu.Lock()
	if f.state != StateIdle || f.submitting {
		state := f.state
		f.mu.Unlock()
		return state, ErrNotIdle
	}
	f.submitting = true
	f.mu.Unlock()

	res, err := f.auth.Login(ctx, identifier, password)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		return StateIdle, err
	}
	if f.state != StateIdle {
		// The flow moved on while the request was on the wire (e.g. Reset
		// into a rehydrated session); drop the result.
		return f.state, ErrNotIdle
	}
	if res.OTPRequired {
		f.state = StateOTPPending
		f.challenge = &challenge{
			sessionToken: res.SessionToken,
			resendUntil:  f.now().Add(resendInterval),
		}
		return f.state, nil
	}
	if err := f.sessions.SetSession(res.Token, res.ExpiresAt, res.User); err != nil {
		f.state = StateIdle
		return f.state, err
	}
	f.state = StateAuthenticated
	f.challenge = nil
	return f.state, nil
}

// Verify submits the one-time code for the pending challenge. On success the
// session is installed and the flow is StateAuthenticated; on failure the
// flow stays in StateOTPPending so the user can retry or resend. A result
// arriving after the challenge was cancelled or replaced is dropped without
// touching the session.
func (f *Flow) Verify(ctx context.Context, code string) (State, error) {
	f.mu.Lock()
	if f.state != StateOTPPending || f.challenge == nil {
		state := f.state
		f.mu.Unlock()
		return state, ErrNoChallenge
	}
	ch := f.challenge
	f.mu.Unlock()

	res, err := f.auth.VerifyOTP(ctx, ch.sessionToken, code)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateOTPPending || f.challenge != ch {
		return f.state, ErrNoChallenge
	}
	if err != nil {
		return f.state, err
	}
	if err := f.sessions.SetSession(res.Token, res.ExpiresAt, res.User); err != nil {
		return f.state, err
	}
	f.state = StateAuthenticated
	f.challenge = nil
	return f.state, nil
}

// Resend requests a new code for the pending challenge. Rejected without a
// network call when the resend count reached the limit or the countdown from
// the previous send is still running. On success the countdown resets to 60s
// and the resend count increments.
func (f *Flow) Resend(ctx context.Context) error {
	f.mu.Lock()
	if (f.state != StateOTPPending && f.state != StateDisabling) || f.challenge == nil {
		f.mu.Unlock()
		return ErrNoChallenge
	}
	if f.challenge.resendCount >= maxResends {
		f.mu.Unlock()
		return ErrResendLimit
	}
	if f.now().Before(f.challenge.resendUntil) {
		f.mu.Unlock()
		return ErrResendCountdown
	}
	ch := f.challenge
	f.mu.Unlock()

	if err := f.auth.ResendOTP(ctx, ch.sessionToken); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.challenge == ch {
		ch.resendCount++
		ch.resendUntil = f.now().Add(resendInterval)
	}
	return nil
}

// ResendWait returns how long until a resend is allowed, and how many resends
// remain. A zero duration with remaining > 0 means resend is allowed now.
func (f *Flow) ResendWait() (time.Duration, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.challenge == nil {
		return 0, 0
	}
	remaining := maxResends - f.challenge.resendCount
	wait := f.challenge.resendUntil.Sub(f.now())
	if wait < 0 {
		wait = 0
	}
	return wait, remaining
}

// Cancel abandons the pending challenge and returns to StateIdle (or back to
// StateAuthenticated when cancelling a 2FA turn-off). The challenge token is
// discarded; the server expires it on its own schedule.
func (f *Flow) Cancel() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case StateOTPPending:
		f.state = StateIdle
		f.challenge = nil
	case StateDisabling:
		f.state = StateAuthenticated
		f.challenge = nil
	}
	return f.state
}

// BeginDisable starts a 2FA turn-off challenge from StateAuthenticated.
// The flow moves to StateDisabling with the same resend policy as login.
func (f *Flow) BeginDisable(ctx context.Context) (State, error) {
	da, ok := f.auth.(DisableAuthenticator)
	if !ok {
		return f.State(), errors.New("auth: account does not support 2FA turn-off")
	}
	f.mu.Lock()
	if f.state != StateAuthenticated {
		state := f.state
		f.mu.Unlock()
		return state, ErrNotAuthed
	}
	f.mu.Unlock()

	sessionToken, err := da.BeginDisableOTP(ctx)
	if err != nil {
		return StateAuthenticated, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateAuthenticated {
		// Logged out while the request was on the wire; the server expires
		// the unused challenge on its own schedule.
		return f.state, ErrNotAuthed
	}
	f.state = StateDisabling
	f.challenge = &challenge{
		sessionToken: sessionToken,
		resendUntil:  f.now().Add(resendInterval),
	}
	return f.state, nil
}

// ConfirmDisable submits the code confirming the 2FA turn-off and returns the
// flow to StateAuthenticated. The session is unchanged. A result arriving
// after the challenge was cancelled is dropped.
func (f *Flow) ConfirmDisable(ctx context.Context, code string) (State, error) {
	da, ok := f.auth.(DisableAuthenticator)
	if !ok {
		return f.State(), errors.New("auth: account does not support 2FA turn-off")
	}
	f.mu.Lock()
	if f.state != StateDisabling || f.challenge == nil {
		state := f.state
		f.mu.Unlock()
		return state, ErrNoChallenge
	}
	ch := f.challenge
	f.mu.Unlock()

	err := da.ConfirmDisableOTP(ctx, ch.sessionToken, code)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateDisabling || f.challenge != ch {
		return f.state, ErrNoChallenge
	}
	if err != nil {
		return f.state, err
	}
	f.state = StateAuthenticated
	f.challenge = nil
	return f.state, nil
}

// Reset returns the flow to StateIdle after a logout, discarding any
// challenge. Call from the session manager's logout handler.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateIdle
	f.challenge = nil
}
