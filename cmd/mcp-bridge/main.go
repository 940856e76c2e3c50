package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/synapsecrm/mcp-bridge/pkg/api"
	"github.com/synapsecrm/mcp-bridge/pkg/catalog"
	"github.com/synapsecrm/mcp-bridge/pkg/config"
	"github.com/synapsecrm/mcp-bridge/pkg/dispatch"
	"github.com/synapsecrm/mcp-bridge/pkg/observability"
	"github.com/synapsecrm/mcp-bridge/pkg/rbac"
	"github.com/synapsecrm/mcp-bridge/pkg/session"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mcp-bridge: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stderr)
	logger.WithField("version", version).Info("Starting Synapse CRM MCP bridge")

	ctx := context.Background()

	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: cfg.Observability.OTelServiceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
	}, logger)
	if err != nil {
		return fmt.Errorf("initializing OpenTelemetry: %w", err)
	}

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(nil)
	}

	cat, err := catalog.New()
	if err != nil {
		return fmt.Errorf("building tool catalog: %w", err)
	}
	// The permission table must only name tools that exist; a mismatch
	// here is a programming error worth failing fast on.
	if err := rbac.ValidateCatalog(cat.Names()); err != nil {
		return fmt.Errorf("validating permission table: %w", err)
	}
	logger.WithField("tools", cat.Len()).Info("Tool catalog ready")

	store, closeStore, err := buildSessionStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing session store: %w", err)
	}

	dispatcher := dispatch.New(cat, rbac.NewChecker(), store, dispatch.Config{
		BackendURL:     cfg.Backend.URL,
		APIPrefix:      cfg.Backend.APIPrefix,
		RequestTimeout: cfg.Backend.RequestTimeout,
	}, logger, metrics)

	server := api.NewServer(cat, dispatcher, logger, metrics, version)

	var handler http.Handler = server
	if cfg.Observability.OTelEnabled {
		handler = otelhttp.NewHandler(server, "mcp-bridge")
	}

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := observability.NewShutdownManager(logger, httpServer, cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		return observability.ShutdownOTel(ctx, providers, logger)
	})
	if closeStore != nil {
		shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
			return closeStore()
		})
	}

	errChan := make(chan error, 1)
	go func() {
		logger.WithFields(map[string]interface{}{
			"addr":    addr,
			"backend": cfg.Backend.URL,
		}).Info("HTTP transport listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	shutdownDone := make(chan error, 1)
	go func() {
		shutdownDone <- shutdown.WaitForShutdown()
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("HTTP server failed: %w", err)
	case err := <-shutdownDone:
		return err
	}
}

// buildSessionStore picks the configured session backend. The returned
// close function is nil for stores with nothing to release.
func buildSessionStore(cfg *config.Config, logger *observability.Logger) (session.Store, func() error, error) {
	switch cfg.Session.StoreType {
	case config.SessionStoreRedis:
		store, err := session.NewRedisStore(cfg.Session.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using Redis session store")
		return store, store.Close, nil
	default:
		path := cfg.Session.FilePath
		if path == "" {
			path = session.DefaultSessionPath()
		}
		logger.WithField("path", path).Info("Using file session store")
		return session.NewFileStore(path), nil, nil
	}
}
