package account

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// CheckAvailability asks whether a username or email is free to register.
// field is "username" or "email".
func (c *Client) CheckAvailability(ctx context.Context, field, value string) (bool, error) {
	q := url.Values{}
	q.Set("field", field)
	q.Set("value", value)
	var out struct {
		Available bool `json:"available"`
	}
	if err := c.api.Get(ctx, "/api/v1/auth/availability?"+q.Encode(), &out); err != nil {
		return false, err
	}
	return out.Available, nil
}

// AvailabilityResult is delivered to the checker callback once a check
// settles. Err is set when the lookup itself failed.
type AvailabilityResult struct {
	Field     string
	Value     string
	Available bool
	Err       error
}

// AvailabilityChecker debounces availability lookups as the user types.
// Each Check supersedes the previous one for the same field: the pending
// timer is cancelled and a response for an outdated value is dropped, so the
// callback only ever sees the result for the latest input.
type AvailabilityChecker struct {
	client   *Client
	debounce time.Duration
	onResult func(AvailabilityResult)

	mu     sync.Mutex
	seq    map[string]int
	timers map[string]*time.Timer
	closed bool
}

// NewAvailabilityChecker wires a checker to the given client. The callback may
// be invoked from a background goroutine.
func NewAvailabilityChecker(client *Client, debounce time.Duration, onResult func(AvailabilityResult)) *AvailabilityChecker {
	return &AvailabilityChecker{
		client:   client,
		debounce: debounce,
		onResult: onResult,
		seq:      make(map[string]int),
		timers:   make(map[string]*time.Timer),
	}
}

// Check schedules an availability lookup for the value after the debounce
// window. A newer Check for the same field cancels it.
func (ac *AvailabilityChecker) Check(ctx context.Context, field, value string) {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	if ac.closed {
		return
	}
	ac.seq[field]++
	seq := ac.seq[field]
	if t, ok := ac.timers[field]; ok {
		t.Stop()
	}
	ac.timers[field] = time.AfterFunc(ac.debounce, func() {
		ac.run(ctx, field, value, seq)
	})
}

func (ac *AvailabilityChecker) run(ctx context.Context, field, value string, seq int) {
	available, err := ac.client.CheckAvailability(ctx, field, value)

	ac.mu.Lock()
	stale := ac.closed || ac.seq[field] != seq
	ac.mu.Unlock()
	if stale {
		return
	}
	ac.onResult(AvailabilityResult{Field: field, Value: value, Available: available, Err: err})
}

// Close cancels pending timers and suppresses any in-flight results.
func (ac *AvailabilityChecker) Close() {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.closed = true
	for _, t := range ac.timers {
		t.Stop()
	}
}
