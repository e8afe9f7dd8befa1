package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-generator-api/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-generator-api/internal/ports"
)

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName names the otelgin server spans.
	ServiceName string

	// TracingEnabled installs the OpenTelemetry tracing middleware.
	TracingEnabled bool

	// TrustRequestID reuses a valid inbound X-Request-ID.
	TrustRequestID bool

	QuoteHandler  *handlers.QuoteHandler
	HealthHandler *handlers.HealthHandler

	// Recorder receives one observation per completed request.
	Recorder ports.MetricsRecorder

	// Exporter serves GET /metrics.
	Exporter ports.MetricsExporter
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Security headers
//  2. Request ID - assign the id and per-request context
//  3. OpenTelemetry tracing (optional)
//  4. Observability - start log, then completion metrics and log
//  5. Recovery - panics become 500s that Observability still records
//
// Unknown paths and unsupported methods reach the NotFound catch-all.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false
	engine.HandleMethodNotAllowed = false

	engine.Use(
		middleware.SecurityHeaders(),
		middleware.RequestID(middleware.RequestIDConfig{
			Logger:       cfg.Logger,
			TrustInbound: cfg.TrustRequestID,
		}),
	)

	if cfg.TracingEnabled {
		engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	}

	engine.Use(
		middleware.Observability(middleware.ObservabilityConfig{
			Logger:   cfg.Logger,
			Recorder: cfg.Recorder,
		}),
		middleware.Recovery(cfg.Logger),
	)

	if cfg.HealthHandler != nil {
		engine.GET("/", cfg.HealthHandler.ServiceInfo)
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(engine)
	}

	if cfg.Exporter != nil {
		engine.GET("/metrics", handlers.MetricsHandler(cfg.Exporter))
	}

	engine.NoRoute(handlers.NotFound)
}
