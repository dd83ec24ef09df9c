// Package chartlogservice wires and runs the chartlog HTTP service.
package chartlogservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/chartlog/chartlog/internal/api"
	"github.com/chartlog/chartlog/internal/config"
	"github.com/chartlog/chartlog/internal/events"
	"github.com/chartlog/chartlog/internal/health"
	"github.com/chartlog/chartlog/internal/logger"
	"github.com/chartlog/chartlog/internal/snapshot"
	"github.com/chartlog/chartlog/internal/store"
	"github.com/chartlog/chartlog/internal/store/memstore"
	"github.com/chartlog/chartlog/internal/store/postgres"
	"github.com/chartlog/chartlog/internal/store/sqlite"
	"github.com/chartlog/chartlog/internal/workflow"
)

// Run starts the chartlog HTTP service and blocks until shutdown or error.
func Run() error {
	log := logger.New("chartlog-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	return RunWithConfig(cfg, log)
}

// RunWithConfig starts the service using an already-resolved configuration.
func RunWithConfig(cfg *config.Config, log zerolog.Logger) error {
	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Str("owner", cfg.OwnerID).
		Msg("Chartlog service starting")

	// Cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	st, err := newStore(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Store adapter unavailable")
		return err
	}

	// Seed the snapshot from the store before serving reads.
	seed, err := st.Records().List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Snapshot seed failed")
		return err
	}
	cache := snapshot.NewCache(seed, log)

	bus := events.NewBus(cfg.EventBufferSize)
	go cache.Run(ctx, bus.Subscribe())

	svc := workflow.NewService(st, bus, log)
	router := api.NewRouter(svc, st, cache, log)

	svcHealth := startHealthCheckers(ctx, cfg, log, st)
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Err(err).Msg("startup health check failed")
		return err
	}

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newStore selects the store implementation from the resolved driver.
func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return postgres.NewWithDB(db, cfg.OwnerID), nil
	case "sqlite":
		return sqlite.New(cfg.SQLitePath, cfg.OwnerID)
	case "memory":
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}

// startHealthCheckers starts the store checker and the service aggregator,
// then binds service health into the API layer.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	api.BindServiceHealth(svcHealth.IsHealthy)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// calculateStartupHealthTimeout returns the startup health timeout in seconds,
// calculated as interval*2 with a minimum of 60 seconds.
func calculateStartupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until service health is healthy or the startup
// window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	timeoutSeconds := calculateStartupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on
// SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
