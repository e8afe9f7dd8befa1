package metrics

import (
	"context"
	"time"

	"github.com/jsamuelsen/quote-generator-api/internal/ports"
)

// Multi fans a request observation out to several recorders.
type Multi []ports.MetricsRecorder

// NewMulti drops nil recorders so callers can pass optional backends.
func NewMulti(recorders ...ports.MetricsRecorder) Multi {
	m := make(Multi, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			m = append(m, r)
		}
	}
	return m
}

// ObserveRequest forwards the observation to every recorder.
func (m Multi) ObserveRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	for _, r := range m {
		r.ObserveRequest(ctx, method, route, status, duration)
	}
}
