// Package dashboard is the view shell shared by the CLIs: it routes between
// named views, runs their loads in the background, and drops results that
// arrive after the user has already navigated away.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// ErrUnknownView is rendered when navigation targets a view with no loader.
var ErrUnknownView = errors.New("dashboard: unknown view")

// View names routed by the shell.
const (
	ViewOrders   = "orders"
	ViewProducts = "products"
	ViewStats    = "stats"
	ViewProfile  = "profile"
	ViewSecurity = "security"
)

// Loader produces a view's data. Implementations are the feature clients'
// list/fetch calls; the payload must be JSON-marshalable so it can be cached.
type Loader func(ctx context.Context) (interface{}, error)

// ViewCache persists rendered view payloads between runs. store.SQLite
// implements it; a nil cache disables caching.
type ViewCache interface {
	CacheView(view, payload string) error
	CachedView(view string) (payload string, fetchedAt time.Time, err error)
}

// Update is delivered to the render callback when a view load settles.
// Stale reports a payload served from cache while the live load runs.
type Update struct {
	View  string
	Data  interface{}
	Err   error
	Stale bool
}

// Shell routes between named views. Each navigation bumps a generation
// counter; a load finishing under an old generation is discarded instead of
// overwriting the current view. In-flight requests are not aborted, matching
// best-effort cancellation on navigation.
type Shell struct {
	loaders map[string]Loader
	cache   ViewCache
	render  func(Update)

	mu     sync.Mutex
	view   string
	gen    int
	cancel context.CancelFunc
}

// NewShell builds a shell over the given view loaders. render is called from
// background goroutines whenever a view settles.
func NewShell(loaders map[string]Loader, cache ViewCache, render func(Update)) *Shell {
	return &Shell{loaders: loaders, cache: cache, render: render}
}

// View returns the currently displayed view name.
func (s *Shell) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Navigate switches to the named view and starts its load. A cached payload,
// when present, is rendered immediately as stale data; the live result
// replaces it unless the user navigated away in the meantime.
func (s *Shell) Navigate(ctx context.Context, view string) {
	loader, ok := s.loaders[view]
	if !ok {
		s.render(Update{View: view, Err: ErrUnknownView})
		return
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.view = view
	if s.cancel != nil {
		s.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	if s.cache != nil {
		if payload, _, err := s.cache.CachedView(view); err == nil {
			var data interface{}
			if json.Unmarshal([]byte(payload), &data) == nil && s.current(gen) {
				s.render(Update{View: view, Data: data, Stale: true})
			}
		}
	}

	go func() {
		defer cancel()
		data, err := loader(loadCtx)
		if !s.current(gen) {
			return
		}
		if err == nil && s.cache != nil {
			if payload, merr := json.Marshal(data); merr == nil {
				_ = s.cache.CacheView(view, string(payload))
			}
		}
		s.render(Update{View: view, Data: data, Err: err})
	}()
}

// Reload re-runs the current view's load.
func (s *Shell) Reload(ctx context.Context) {
	s.mu.Lock()
	view := s.view
	s.mu.Unlock()
	if view != "" {
		s.Navigate(ctx, view)
	}
}

// Close cancels any in-flight load.
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Shell) current(gen int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == gen
}
