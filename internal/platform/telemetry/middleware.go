package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-generator-api/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/quote-generator-api/telemetry"

	// TraceIDHeader carries the trace id back to the caller.
	TraceIDHeader = "X-Trace-ID"
)

// Metrics records HTTP server metrics through an OpenTelemetry meter. It
// implements ports.MetricsRecorder so it can sit next to Prometheus.
type Metrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// NewMetrics creates the HTTP server instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Metrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("http.route", route),
	))
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.response.status_code", status),
	))
}

// Middleware returns the tracing handlers: otelgin opens the server span,
// then the trace id is echoed in X-Trace-ID and attached to the context
// logger.
func Middleware(serviceName string, opts ...otelgin.Option) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		otelgin.Middleware(serviceName, opts...),
		traceID(),
	}
}

func traceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := TraceIDFromContext(c.Request.Context()); id != "" {
			c.Header(TraceIDHeader, id)
			c.Request = c.Request.WithContext(logging.WithTraceID(c.Request.Context(), id))
		}
		c.Next()
	}
}

// TraceIDFromContext returns the active trace id, or "" if there is none.
func TraceIDFromContext(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
