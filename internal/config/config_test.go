package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != "15s" {
		t.Errorf("RequestTimeout = %q, want %q", cfg.RequestTimeout, "15s")
	}
	if cfg.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want 2", cfg.MaxRetries)
	}
	if cfg.RetryBackoff != "500ms" {
		t.Errorf("RetryBackoff = %q, want %q", cfg.RetryBackoff, "500ms")
	}
	if cfg.ServiceName != "moda-client" {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, "moda-client")
	}
	if cfg.OTLPEndpoint != "" {
		t.Errorf("OTLPEndpoint = %q, want empty", cfg.OTLPEndpoint)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("API_BASE_URL", "https://api.moda.example")
	os.Setenv("STORE_DRIVER", "sqlite")
	os.Setenv("STORE_PATH", "/tmp/moda.db")
	os.Setenv("MAX_RETRIES", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://api.moda.example" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.StoreDriver != "sqlite" {
		t.Errorf("StoreDriver = %q", cfg.StoreDriver)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
}

func TestLoad_FileDriverRequiresPath(t *testing.T) {
	os.Clearenv()
	os.Setenv("STORE_DRIVER", "file")

	if _, err := Load(); err == nil {
		t.Error("expected error when STORE_DRIVER=file and STORE_PATH unset")
	}
}

func TestLoad_UnknownDriverRejected(t *testing.T) {
	os.Clearenv()
	os.Setenv("STORE_DRIVER", "redis")
	os.Setenv("STORE_PATH", "/tmp/x")

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown STORE_DRIVER")
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := &Config{RequestTimeout: "30s", RetryBackoff: "1s"}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout())
	}
	if cfg.Backoff() != time.Second {
		t.Errorf("Backoff = %v, want 1s", cfg.Backoff())
	}

	bad := &Config{RequestTimeout: "nope", RetryBackoff: "-1s"}
	if bad.Timeout() != 15*time.Second {
		t.Errorf("invalid Timeout = %v, want 15s fallback", bad.Timeout())
	}
	if bad.Backoff() != 500*time.Millisecond {
		t.Errorf("invalid Backoff = %v, want 500ms fallback", bad.Backoff())
	}
}
