package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type updateSink struct {
	mu      sync.Mutex
	updates []Update
	signal  chan struct{}
}

func newUpdateSink() *updateSink {
	return &updateSink{signal: make(chan struct{}, 16)}
}

func (s *updateSink) render(u Update) {
	s.mu.Lock()
	s.updates = append(s.updates, u)
	s.mu.Unlock()
	s.signal <- struct{}{}
}

func (s *updateSink) wait(t *testing.T) Update {
	t.Helper()
	select {
	case <-s.signal:
	case <-time.After(2 * time.Second):
		t.Fatal("no update delivered")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates[len(s.updates)-1]
}

func (s *updateSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.updates)
}

func TestNavigateRendersViewData(t *testing.T) {
	sink := newUpdateSink()
	shell := NewShell(map[string]Loader{
		ViewOrders: func(ctx context.Context) (interface{}, error) {
			return []string{"order-1"}, nil
		},
	}, nil, sink.render)
	defer shell.Close()

	shell.Navigate(context.Background(), ViewOrders)

	got := sink.wait(t)
	if got.View != ViewOrders || got.Err != nil || got.Stale {
		t.Fatalf("update = %+v", got)
	}
	if shell.View() != ViewOrders {
		t.Errorf("View() = %q", shell.View())
	}
}

func TestNavigateAwaySuppressesLateUpdate(t *testing.T) {
	slowDone := make(chan struct{})
	release := make(chan struct{})
	sink := newUpdateSink()
	shell := NewShell(map[string]Loader{
		ViewOrders: func(ctx context.Context) (interface{}, error) {
			<-release
			close(slowDone)
			return "late", nil
		},
		ViewProducts: func(ctx context.Context) (interface{}, error) {
			return "products", nil
		},
	}, nil, sink.render)
	defer shell.Close()

	shell.Navigate(context.Background(), ViewOrders)
	shell.Navigate(context.Background(), ViewProducts)

	got := sink.wait(t)
	if got.View != ViewProducts || got.Data != "products" {
		t.Fatalf("update = %+v", got)
	}

	close(release)
	<-slowDone
	time.Sleep(50 * time.Millisecond)
	if n := sink.count(); n != 1 {
		t.Errorf("updates = %d, want 1 (late orders result must be dropped)", n)
	}
}

func TestNavigateUnknownView(t *testing.T) {
	sink := newUpdateSink()
	shell := NewShell(map[string]Loader{}, nil, sink.render)

	shell.Navigate(context.Background(), "billing")

	got := sink.wait(t)
	if !errors.Is(got.Err, ErrUnknownView) {
		t.Fatalf("err = %v, want ErrUnknownView", got.Err)
	}
}

type memCache struct {
	mu      sync.Mutex
	views   map[string]string
	fetched map[string]time.Time
}

func newMemCache() *memCache {
	return &memCache{views: make(map[string]string), fetched: make(map[string]time.Time)}
}

func (c *memCache) CacheView(view, payload string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[view] = payload
	c.fetched[view] = time.Now().UTC()
	return nil
}

func (c *memCache) CachedView(view string) (string, time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.views[view]
	if !ok {
		return "", time.Time{}, errors.New("miss")
	}
	return payload, c.fetched[view], nil
}

func TestCachedPayloadRenderedStaleThenLive(t *testing.T) {
	cache := newMemCache()
	if err := cache.CacheView(ViewStats, `{"revenue":100}`); err != nil {
		t.Fatal(err)
	}

	sink := newUpdateSink()
	shell := NewShell(map[string]Loader{
		ViewStats: func(ctx context.Context) (interface{}, error) {
			return map[string]interface{}{"revenue": 225.0}, nil
		},
	}, cache, sink.render)
	defer shell.Close()

	shell.Navigate(context.Background(), ViewStats)

	first := sink.wait(t)
	if !first.Stale {
		t.Fatalf("first update = %+v, want stale cache hit", first)
	}
	second := sink.wait(t)
	if second.Stale || second.Err != nil {
		t.Fatalf("second update = %+v, want live result", second)
	}

	payload, _, err := cache.CachedView(ViewStats)
	if err != nil {
		t.Fatalf("CachedView: %v", err)
	}
	if payload != `{"revenue":225}` {
		t.Errorf("cached payload = %s", payload)
	}
}

func TestCloseSuppressesInflight(t *testing.T) {
	release := make(chan struct{})
	sink := newUpdateSink()
	shell := NewShell(map[string]Loader{
		ViewProfile: func(ctx context.Context) (interface{}, error) {
			<-release
			return "profile", nil
		},
	}, nil, sink.render)

	shell.Navigate(context.Background(), ViewProfile)
	shell.Close()
	close(release)

	time.Sleep(50 * time.Millisecond)
	if n := sink.count(); n != 0 {
		t.Errorf("updates = %d, want 0", n)
	}
}
