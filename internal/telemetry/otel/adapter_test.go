package otel

import (
	"context"
	"testing"
	"time"

	sdklog "go.opentelemetry.io/otel/sdk/log"

	"moda-marketplace/client/internal/telemetry"
)

func TestNewEventEmitter_NilProviderIsNoop(t *testing.T) {
	e := NewEventEmitter(nil)
	if err := e.Emit(context.Background(), &telemetry.Event{EventType: telemetry.EventLogin}); err != nil {
		t.Errorf("Emit on noop: %v", err)
	}
}

func TestEmit_RecordsEvent(t *testing.T) {
	// An SDK provider without a processor drops records; Emit must still not error.
	provider := sdklog.NewLoggerProvider()
	defer provider.Shutdown(context.Background())

	e := NewEventEmitter(provider)
	err := e.Emit(context.Background(), &telemetry.Event{
		EventType: telemetry.EventOTPVerified,
		Source:    "shop",
		UserID:    "u1",
		Attrs:     map[string]string{"view": "security"},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Errorf("Emit: %v", err)
	}
	if err := e.Emit(context.Background(), nil); err != nil {
		t.Errorf("Emit(nil): %v", err)
	}
}
