package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-generator-api/internal/platform/logging"
)

const (
	// HeaderRequestID is the header name for request ID.
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID is the gin context key for storing the request ID.
	ContextKeyRequestID = "request_id"
)

// RequestIDConfig configures the RequestID middleware.
type RequestIDConfig struct {
	// Logger is the base logger placed in the request context. Nil uses the
	// logging package default.
	Logger *slog.Logger

	// TrustInbound reuses an inbound X-Request-ID that is a valid UUID v4.
	TrustInbound bool
}

// RequestID returns middleware that assigns every request its id. It:
//   - Generates a UUID v4 (or reuses a trusted inbound one)
//   - Stores it in the gin.Context and a RequestContext in context.Context
//   - Sets the X-Request-ID response header
//   - Adds request_id to the context logger
func RequestID(cfg RequestIDConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := resolveID(c.GetHeader(HeaderRequestID), cfg.TrustInbound)

		c.Set(ContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)

		ctx := c.Request.Context()
		base := logging.FromContextOr(ctx, loggerOrDefault(cfg.Logger))

		ctx = WithRequestContext(ctx, RequestContext{ID: id, StartTime: time.Now()})
		ctx = logging.WithContext(ctx, base.With(slog.String("request_id", id)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetRequestID extracts the request ID from the gin.Context.
// Returns empty string if not set.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// MustGetRequestID extracts the request ID from the gin.Context.
// Returns "unknown" if not set (should not happen if middleware is applied).
func MustGetRequestID(c *gin.Context) string {
	if id := GetRequestID(c); id != "" {
		return id
	}

	return "unknown"
}
