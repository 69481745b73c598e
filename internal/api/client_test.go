package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestDo_SuccessDecodesJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q, want application/json", r.Header.Get("Accept"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID header missing")
		}
		w.Write([]byte(`{"name":"silk dress","price":120.5}`))
	}))
	defer server.Close()

	client := New(server.URL)
	var out struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	if err := client.Get(context.Background(), "/api/v1/products/p1", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Name != "silk dress" {
		t.Errorf("Name = %q, want %q", out.Name, "silk dress")
	}
	if out.Price != 120.5 {
		t.Errorf("Price = %v, want 120.5", out.Price)
	}
}

func TestDo_TimeoutIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := New(server.URL, WithTimeout(20*time.Millisecond), WithRetry(0, time.Millisecond))
	err := client.Get(context.Background(), "/api/v1/orders", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNetwork(err) {
		t.Errorf("IsNetwork(%v) = false, want true", err)
	}
	if StatusOf(err) != 0 {
		t.Errorf("StatusOf = %d, want 0", StatusOf(err))
	}
}

func TestDo_TimeoutIsRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := New(server.URL, WithTimeout(20*time.Millisecond), WithRetry(2, time.Millisecond))
	err := client.Get(context.Background(), "/api/v1/orders", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestDo_ValidationErrorNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"Username cannot contain spaces"}`))
	}))
	defer server.Close()

	client := New(server.URL, WithRetry(3, time.Millisecond))
	err := client.Post(context.Background(), "/api/v1/auth/register", map[string]string{"username": "a b"}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
	if StatusOf(err) != http.StatusUnprocessableEntity {
		t.Errorf("StatusOf = %d, want 422", StatusOf(err))
	}
	apiErr := err.(*Error)
	if apiErr.Message != "Username cannot contain spaces" {
		t.Errorf("Message = %q, want server detail", apiErr.Message)
	}
}

func TestDo_ServerErrorRetriedForGET(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(server.URL, WithRetry(2, time.Millisecond))
	if err := client.Get(context.Background(), "/api/v1/styles", nil); err != nil {
		t.Fatalf("Get after retries: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestDo_ServerErrorNotRetriedForPOST(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, WithRetry(3, time.Millisecond))
	err := client.Post(context.Background(), "/api/v1/payments/create", map[string]string{}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}

func TestDo_BearerTokenInjected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer tok-123")
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(server.URL, WithTokenSource(TokenSourceFunc(func() string { return "tok-123" })))
	if err := client.Get(context.Background(), "/api/v1/user/profile", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
}

func TestDo_UnauthorizedFiresExpiredHandler(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid credentials"}`))
	}))
	defer server.Close()

	var fired int32
	client := New(server.URL,
		WithTokenSource(TokenSourceFunc(func() string { return "stale" })),
		WithAuthExpiredHandler(func() { atomic.AddInt32(&fired, 1) }))
	err := client.Get(context.Background(), "/api/v1/user/profile", nil)
	if !IsUnauthorized(err) {
		t.Fatalf("IsUnauthorized(%v) = false, want true", err)
	}
	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Errorf("expired handler fired %d times, want 1", got)
	}
}

func TestDo_UnauthorizedWithoutTokenDoesNotFireHandler(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	var fired int32
	client := New(server.URL, WithAuthExpiredHandler(func() { atomic.AddInt32(&fired, 1) }))
	err := client.Post(context.Background(), "/api/v1/auth/login", map[string]string{"identifier": "x", "password": "y"}, nil)
	if !IsUnauthorized(err) {
		t.Fatalf("IsUnauthorized(%v) = false, want true", err)
	}
	if got := atomic.LoadInt32(&fired); got != 0 {
		t.Errorf("expired handler fired %d times, want 0", got)
	}
}

func TestDo_ContextCancelStopsRetryLoop(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	client := New(server.URL, WithTimeout(10*time.Millisecond), WithRetry(10, 50*time.Millisecond))
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := client.Get(ctx, "/api/v1/orders", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("retry loop ran %v after cancellation", elapsed)
	}
}
