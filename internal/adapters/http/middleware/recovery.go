package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-generator-api/internal/platform/logging"
	"github.com/jsamuelsen/quote-generator-api/internal/platform/telemetry"
)

// Recovery returns middleware that recovers from panics.
// On panic, it:
//   - Logs the error with full stack trace at ERROR level
//   - Returns a 500 with the error envelope, request id and trace id
//
// It sits after Observability so the completion hook sees the 500.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctx := c.Request.Context()
			traceID := telemetry.TraceIDFromContext(ctx)

			logging.FromContextOr(ctx, loggerOrDefault(logger)).ErrorContext(ctx, "panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewInternalErrorResponse().
					WithRequestID(GetRequestID(c)).
					WithTraceID(traceID),
			)
		}()

		c.Next()
	}
}
