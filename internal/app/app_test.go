package app

import (
	"context"
	"testing"
	"time"

	"moda-marketplace/client/internal/auth"
	"moda-marketplace/client/internal/store"
)

func setEnv(t *testing.T) {
	t.Helper()
	t.Setenv("API_BASE_URL", "http://localhost:8000")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("OTLP_ENDPOINT", "")
}

func TestNewWiresMemoryStore(t *testing.T) {
	setEnv(t)

	a, err := New(context.Background(), Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close(context.Background())

	if _, ok := a.Store.(*store.Memory); !ok {
		t.Fatalf("Store = %T, want *store.Memory", a.Store)
	}
	if a.Sessions.Authenticated() {
		t.Error("fresh store should not be authenticated")
	}
	if a.API == nil || a.Emitter == nil {
		t.Error("API and Emitter must be wired")
	}
}

func TestNewAdminKeysIsolated(t *testing.T) {
	setEnv(t)

	a, err := New(context.Background(), Options{AdminKeys: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close(context.Background())

	if err := a.Sessions.SetSession("admin-tok", time.Now().Add(time.Hour), auth.User{ID: "a1"}); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if _, err := a.Store.Get(store.KeyAdminToken); err != nil {
		t.Errorf("admin token not stored under %s: %v", store.KeyAdminToken, err)
	}
	if _, err := a.Store.Get(store.KeyAuthToken); err == nil {
		t.Errorf("admin session must not touch %s", store.KeyAuthToken)
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	setEnv(t)
	t.Setenv("STORE_DRIVER", "redis")

	if _, err := New(context.Background(), Options{}); err == nil {
		t.Fatal("expected error for unknown store driver")
	}
}
