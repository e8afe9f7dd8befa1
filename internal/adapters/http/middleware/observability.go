package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-generator-api/internal/platform/logging"
	"github.com/jsamuelsen/quote-generator-api/internal/ports"
)

// Log event names.
const (
	EventRequestStart    = "request_start"
	EventRequestComplete = "request_complete"
)

// ObservabilityConfig configures the Observability middleware.
type ObservabilityConfig struct {
	// Logger is used when the request context carries no logger.
	Logger *slog.Logger

	// Recorder receives one observation per completed request. Nil disables
	// metrics.
	Recorder ports.MetricsRecorder

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Observability logs the start of each request and, from a completion hook
// that fires exactly once after the downstream chain returns, records
// metrics and logs the completion.
//
// The route label is the matched pattern (e.g. /quotes/:id); unmatched
// requests fall back to the raw path.
func Observability(cfg ObservabilityConfig) gin.HandlerFunc {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := logging.FromContextOr(ctx, loggerOrDefault(cfg.Logger))

		start := now()
		if rc, ok := RequestContextFrom(ctx); ok && !rc.StartTime.IsZero() {
			start = rc.StartTime
		}

		method := c.Request.Method
		path := c.Request.URL.Path

		logger.InfoContext(ctx, "request started",
			slog.String("event", EventRequestStart),
			slog.String("method", method),
			slog.String("path", path),
			slog.String("timestamp", start.UTC().Format(time.RFC3339Nano)),
		)

		var once sync.Once
		complete := func() {
			once.Do(func() {
				end := now()
				elapsed := end.Sub(start)
				status := c.Writer.Status()

				route := c.FullPath()
				if route == "" {
					route = path
				}

				if cfg.Recorder != nil {
					cfg.Recorder.ObserveRequest(ctx, method, route, status, elapsed)
				}

				logger.Log(ctx, levelForStatus(status), "request completed",
					slog.String("event", EventRequestComplete),
					slog.String("method", method),
					slog.String("path", path),
					slog.String("route", route),
					slog.Int("status", status),
					slog.Float64("duration_ms", float64(elapsed.Microseconds())/1000),
					slog.String("timestamp", end.UTC().Format(time.RFC3339Nano)),
				)
			})
		}
		defer complete()

		c.Next()
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return logging.Default()
	}
	return logger
}
