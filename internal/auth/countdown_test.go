package auth

import (
	"testing"
	"time"
)

func TestCountdown_TicksDownAndCloses(t *testing.T) {
	cd := NewCountdown(30*time.Millisecond, 10*time.Millisecond)
	defer cd.Stop()

	var ticks []int
	for remaining := range cd.C {
		ticks = append(ticks, remaining)
	}
	if len(ticks) == 0 {
		t.Fatal("expected at least one tick")
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i] >= ticks[i-1] {
			t.Errorf("ticks not decreasing: %v", ticks)
			break
		}
	}
}

func TestCountdown_StopClosesChannel(t *testing.T) {
	cd := NewCountdown(time.Hour, 10*time.Millisecond)
	cd.Stop()
	cd.Stop() // idempotent

	select {
	case _, ok := <-cd.C:
		if ok {
			// A tick may have been in flight; the channel must still close.
			if _, ok := <-cd.C; ok {
				t.Error("channel still open after Stop")
			}
		}
	case <-time.After(time.Second):
		t.Error("channel not closed after Stop")
	}
}

func TestTokenExpiry_OpaqueToken(t *testing.T) {
	if got := tokenExpiry("not-a-jwt"); !got.IsZero() {
		t.Errorf("tokenExpiry(opaque) = %v, want zero", got)
	}
}
