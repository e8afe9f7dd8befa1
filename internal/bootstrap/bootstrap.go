// Package bootstrap wires configuration into a runnable service.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http"
	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-generator-api/internal/adapters/quotestore"
	"github.com/jsamuelsen/quote-generator-api/internal/app"
	"github.com/jsamuelsen/quote-generator-api/internal/platform/config"
	"github.com/jsamuelsen/quote-generator-api/internal/platform/metrics"
	"github.com/jsamuelsen/quote-generator-api/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-generator-api/internal/ports"
)

// BuildInfo is injected at build time using ldflags.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// Service is a fully wired, not yet started quote service.
type Service struct {
	Server    *http.Server
	Store     *quotestore.Store
	Registry  *prometheus.Registry
	Health    *ports.DefaultHealthRegistry
	telemetry *telemetry.Provider
	logger    *slog.Logger
}

// New builds the service from cfg. The caller owns Shutdown.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, build BuildInfo) (*Service, error) {
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		Insecure:     cfg.Telemetry.Insecure,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	store, err := newStore(cfg.Quotes)
	if err != nil {
		return nil, errors.Join(err, telProvider.Shutdown(ctx))
	}

	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(store); err != nil {
		return nil, errors.Join(fmt.Errorf("registering quote store health check: %w", err), telProvider.Shutdown(ctx))
	}

	registry := prometheus.NewRegistry()
	prom := metrics.NewPrometheus(registry, metrics.Options{
		RuntimeCollectors: cfg.Metrics.RuntimeCollectors,
	})

	var recorder ports.MetricsRecorder = prom
	if telProvider.Enabled() {
		otelMetrics, err := telemetry.NewMetrics(telProvider.Meter())
		if err != nil {
			return nil, errors.Join(fmt.Errorf("creating otel metrics: %w", err), telProvider.Shutdown(ctx))
		}
		recorder = metrics.NewMulti(prom, otelMetrics)
	}

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: store,
		Logger:     logger,
	})

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:         logger,
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: telProvider.Enabled(),
		TrustRequestID: cfg.Server.TrustRequestID,
		QuoteHandler:   handlers.NewQuoteHandler(quoteService),
		HealthHandler: handlers.NewHealthHandler(healthRegistry, handlers.ServiceInfo{
			Name:    cfg.App.Name,
			Version: cfg.App.Version,
			Build:   handlers.NewBuildInfo(build.Version, build.Commit, build.BuildTime),
		}),
		Recorder: recorder,
		Exporter: prom,
	})

	logger.Info("quote store loaded",
		slog.Int("count", store.Len()),
		slog.String("source", sourceName(cfg.Quotes)),
	)

	return &Service{
		Server:    server,
		Store:     store,
		Registry:  registry,
		Health:    healthRegistry,
		telemetry: telProvider,
		logger:    logger,
	}, nil
}

// Shutdown stops the HTTP server and flushes telemetry.
func (s *Service) Shutdown(ctx context.Context) error {
	return errors.Join(s.Server.Shutdown(ctx), s.telemetry.Shutdown(ctx))
}

func newStore(cfg config.QuotesConfig) (*quotestore.Store, error) {
	if cfg.File == "" {
		store, err := quotestore.NewDefault()
		if err != nil {
			return nil, fmt.Errorf("loading embedded quotes: %w", err)
		}
		return store, nil
	}

	quotes, err := quotestore.LoadFile(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("loading quotes: %w", err)
	}

	store, err := quotestore.New(quotes)
	if err != nil {
		return nil, fmt.Errorf("creating quote store: %w", err)
	}

	return store, nil
}

func sourceName(cfg config.QuotesConfig) string {
	if cfg.File == "" {
		return "embedded"
	}
	return cfg.File
}
