package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"moda-marketplace/client/internal/store"
)

// Manager is the single source of truth for the current session. It holds the
// token and user in memory and mirrors them to the injected store so sessions
// survive process restarts. Safe for concurrent use.
type Manager struct {
	store    store.Store
	tokenKey string
	userKey  string

	// onLogout runs whenever a live session is cleared (explicit logout or
	// auth-expired signal from the API client); front ends hook their
	// redirect-to-login here.
	onLogout func()

	mu      sync.Mutex
	session Session
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithKeys overrides the storage keys. The admin panel uses its own token key
// so admin and brand sessions do not clobber each other.
func WithKeys(tokenKey, userKey string) ManagerOption {
	return func(m *Manager) {
		m.tokenKey = tokenKey
		m.userKey = userKey
	}
}

// WithLogoutHandler registers fn to run after a live session is cleared.
func WithLogoutHandler(fn func()) ManagerOption {
	return func(m *Manager) { m.onLogout = fn }
}

// NewManager returns a Manager rehydrated from st. A stored session whose
// token already expired is discarded on load.
func NewManager(st store.Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:    st,
		tokenKey: store.KeyAuthToken,
		userKey:  store.KeyAuthUser,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.rehydrate()
	return m
}

func (m *Manager) rehydrate() {
	token, err := m.store.Get(m.tokenKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("auth: rehydrate token: %v", err)
		}
		return
	}
	sess := Session{Token: token, ExpiresAt: tokenExpiry(token)}
	if sess.Expired(time.Now().UTC()) {
		m.wipeStore()
		return
	}
	if raw, err := m.store.Get(m.userKey); err == nil {
		// A corrupt user blob is not fatal; the token still authenticates.
		if err := json.Unmarshal([]byte(raw), &sess.User); err != nil {
			log.Printf("auth: rehydrate user: %v", err)
		}
	}
	m.session = sess
}

// Token returns the current bearer token, or "" when unauthenticated.
// Implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Token
}

// Session returns a copy of the current session and whether one is active.
func (m *Manager) Session() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, m.session.Token != ""
}

// Authenticated reports whether a session is active. Token absent implies
// unauthenticated; there is no other state.
func (m *Manager) Authenticated() bool {
	_, ok := m.Session()
	return ok
}

// SetSession installs a new session and persists it. expiresAt may be zero,
// in which case the token's exp claim is used if present.
func (m *Manager) SetSession(token string, expiresAt time.Time, user User) error {
	if token == "" {
		return errors.New("auth: empty session token")
	}
	if expiresAt.IsZero() {
		expiresAt = tokenExpiry(token)
	}
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("auth: encode user: %w", err)
	}
	if err := m.store.Set(m.tokenKey, token); err != nil {
		return fmt.Errorf("auth: persist token: %w", err)
	}
	if err := m.store.Set(m.userKey, string(rawUser)); err != nil {
		return fmt.Errorf("auth: persist user: %w", err)
	}
	m.mu.Lock()
	m.session = Session{Token: token, ExpiresAt: expiresAt, User: user}
	m.mu.Unlock()
	return nil
}

// Logout clears the session from memory and storage and notifies the logout
// handler. Clearing an already-clear manager is a no-op.
func (m *Manager) Logout() {
	m.clear()
}

// HandleExpired is the auth-expired signal target for the API client
// (api.WithAuthExpiredHandler). Concurrent 401s collapse into a single clear
// and a single logout notification.
func (m *Manager) HandleExpired() {
	m.clear()
}

func (m *Manager) clear() {
	m.mu.Lock()
	hadSession := m.session.Token != ""
	m.session = Session{}
	m.mu.Unlock()
	if !hadSession {
		return
	}
	m.wipeStore()
	if m.onLogout != nil {
		m.onLogout()
	}
}

func (m *Manager) wipeStore() {
	if err := m.store.Delete(m.tokenKey); err != nil {
		log.Printf("auth: clear token: %v", err)
	}
	if err := m.store.Delete(m.userKey); err != nil {
		log.Printf("auth: clear user: %v", err)
	}
}
