// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter for operations that read domain data
//   - Return domain types, never infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"
	"net/http"
	"time"

	"github.com/jsamuelsen/quote-generator-api/internal/domain"
)

// QuoteRepository provides read access to the quote collection.
// The collection is fixed at construction and never changes, so
// implementations must be safe for concurrent use without locking.
type QuoteRepository interface {
	// Random returns a uniformly selected quote.
	Random(ctx context.Context) (*domain.Quote, error)

	// GetByID returns the quote with the given id.
	// Returns domain.ErrNotFound if no quote has that id.
	GetByID(ctx context.Context, id int) (*domain.Quote, error)

	// List returns every quote in load order.
	List(ctx context.Context) ([]domain.Quote, error)
}

// MetricsRecorder accumulates per-request HTTP metrics.
// Implementations must accept concurrent calls from in-flight requests.
type MetricsRecorder interface {
	// ObserveRequest records one completed request: a counter increment keyed
	// by method, route and status, plus a duration observation keyed by
	// method and route.
	ObserveRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// MetricsExporter renders accumulated metrics for a pull-based collector.
type MetricsExporter interface {
	// Handler returns the HTTP handler serving the exposition format.
	Handler() http.Handler
}
