// Package config loads and validates client config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds client configuration loaded from the environment.
type Config struct {
	// APIBaseURL is the marketplace API origin (e.g. https://api.moda.example).
	APIBaseURL string `mapstructure:"API_BASE_URL"`
	// RequestTimeout is the per-request timeout (e.g. "15s").
	RequestTimeout string `mapstructure:"REQUEST_TIMEOUT"`
	// MaxRetries is how many times transient request failures are retried.
	MaxRetries int `mapstructure:"MAX_RETRIES"`
	// RetryBackoff is the initial backoff between retries (doubled each attempt).
	RetryBackoff string `mapstructure:"RETRY_BACKOFF"`
	// StoreDriver selects the credential store: "file", "sqlite", or "memory".
	StoreDriver string `mapstructure:"STORE_DRIVER"`
	// StorePath is the credential store location (file or sqlite database path).
	StorePath string `mapstructure:"STORE_PATH"`
	// StorePassphrase unlocks the encrypted file store. Required when StoreDriver is "file".
	StorePassphrase string `mapstructure:"STORE_PASSPHRASE"`
	// OTLPEndpoint is the OTLP gRPC collector endpoint; empty disables telemetry export.
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP export even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTLP_INSECURE"`
	// ServiceName is the telemetry service.name (e.g. "moda-dashboard").
	ServiceName string `mapstructure:"SERVICE_NAME"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment via Viper. Missing .env is ignored (e.g. in CI). Env vars
// override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("MAX_RETRIES", 2)
	v.SetDefault("RETRY_BACKOFF", "500ms")
	v.SetDefault("STORE_DRIVER", "file")
	v.SetDefault("STORE_PATH", "")
	v.SetDefault("STORE_PASSPHRASE", "")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTLP_INSECURE", false)
	v.SetDefault("SERVICE_NAME", "moda-client")
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("config: API_BASE_URL must be set")
	}
	switch cfg.StoreDriver {
	case "file", "sqlite", "memory":
	default:
		return nil, fmt.Errorf("config: STORE_DRIVER must be file, sqlite, or memory, got %q", cfg.StoreDriver)
	}
	if cfg.StoreDriver != "memory" && cfg.StorePath == "" {
		return nil, fmt.Errorf("config: STORE_PATH must be set when STORE_DRIVER is %q", cfg.StoreDriver)
	}
	if cfg.MaxRetries < 0 {
		return nil, errors.New("config: MAX_RETRIES must not be negative")
	}

	return &cfg, nil
}

// Timeout parses RequestTimeout as a time.Duration. Returns 15s if unset or invalid.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// Backoff parses RetryBackoff as a time.Duration. Returns 500ms if unset or invalid.
func (c *Config) Backoff() time.Duration {
	d, err := time.ParseDuration(c.RetryBackoff)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}
