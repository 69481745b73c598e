// Package app assembles the pieces the CLIs share: config, the credential
// store, the API client with its session-backed token source, and telemetry.
package app

import (
	"context"
	"fmt"
	"io"
	"log"

	"moda-marketplace/client/internal/api"
	"moda-marketplace/client/internal/auth"
	"moda-marketplace/client/internal/config"
	"moda-marketplace/client/internal/store"
	"moda-marketplace/client/internal/telemetry"
	otelsetup "moda-marketplace/client/internal/telemetry/otel"
)

// App is a wired client runtime. Sessions is the session manager for the
// surface the CLI serves; admin CLIs get one keyed on the admin token.
type App struct {
	Config   *config.Config
	Store    store.Store
	API      *api.Client
	Sessions *auth.Manager
	Emitter  telemetry.EventEmitter

	providers *otelsetup.Providers
}

// Options select the session key set for the surface being wired.
type Options struct {
	// AdminKeys stores the session under the admin token key so admin and
	// brand/consumer sessions in the same store never collide.
	AdminKeys bool
}

// New loads config and wires the full client stack. The returned App must be
// closed to flush telemetry and release the store.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("app: config: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("app: store: %w", err)
	}

	providers, err := otelsetup.NewProviders(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.OTLPInsecure)
	if err != nil {
		closeStore(st)
		return nil, fmt.Errorf("app: telemetry: %w", err)
	}
	providers.SetGlobal()

	var managerOpts []auth.ManagerOption
	if opts.AdminKeys {
		managerOpts = append(managerOpts, auth.WithKeys(store.KeyAdminToken, store.KeyAdminUser))
	}
	sessions := auth.NewManager(st, managerOpts...)

	emitter := otelsetup.NewEventEmitter(providers.LoggerProvider)

	client := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.Timeout()),
		api.WithRetry(cfg.MaxRetries, cfg.Backoff()),
		api.WithTokenSource(sessions),
		api.WithTelemetry(providers.TracerProvider, providers.MeterProvider),
		api.WithAuthExpiredHandler(func() {
			sessions.HandleExpired()
			telemetry.EmitAsync(emitter, &telemetry.Event{
				EventType: telemetry.EventSessionExpired,
				Source:    cfg.ServiceName,
			})
		}),
	)

	return &App{
		Config:    cfg,
		Store:     st,
		API:       client,
		Sessions:  sessions,
		Emitter:   emitter,
		providers: providers,
	}, nil
}

// Close flushes telemetry and releases the store.
func (a *App) Close(ctx context.Context) {
	if err := a.providers.Shutdown(ctx); err != nil {
		log.Printf("telemetry shutdown: %v", err)
	}
	closeStore(a.Store)
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		return store.NewMemory(), nil
	case "file":
		return store.OpenFile(cfg.StorePath, cfg.StorePassphrase)
	case "sqlite":
		return store.OpenSQLite(cfg.StorePath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func closeStore(st store.Store) {
	if c, ok := st.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Printf("store close: %v", err)
		}
	}
}
