// Package middleware provides HTTP middleware for the Gin framework.
package middleware

import (
	"context"
	"time"
)

// RequestContext is the per-request state created by the RequestID
// middleware. Exactly one exists per request and it is never shared.
type RequestContext struct {
	ID        string
	StartTime time.Time
}

type requestContextKey struct{}

// WithRequestContext stores rc in ctx.
func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// RequestContextFrom returns the RequestContext stored in ctx.
func RequestContextFrom(ctx context.Context) (RequestContext, bool) {
	if ctx == nil {
		return RequestContext{}, false
	}

	rc, ok := ctx.Value(requestContextKey{}).(RequestContext)
	return rc, ok
}

// RequestIDFromContext extracts the request ID from context.Context.
// Returns empty string if not set or if ctx is nil.
func RequestIDFromContext(ctx context.Context) string {
	rc, _ := RequestContextFrom(ctx)
	return rc.ID
}
