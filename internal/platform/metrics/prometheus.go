// Package metrics exposes HTTP request metrics in the Prometheus text format.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names.
const (
	RequestsTotalName   = "http_requests_total"
	RequestDurationName = "http_request_duration_seconds"
)

// DurationBuckets are the histogram bucket upper bounds in seconds.
var DurationBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5}

// Options configures the Prometheus recorder.
type Options struct {
	// RuntimeCollectors registers the Go runtime and process collectors.
	RuntimeCollectors bool
}

// Prometheus records request counts and durations into a registry owned by
// the caller. It implements ports.MetricsRecorder and ports.MetricsExporter.
type Prometheus struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewPrometheus registers the request metrics on reg. Registering twice on
// the same registry panics, so each registry gets exactly one recorder.
func NewPrometheus(reg *prometheus.Registry, opts Options) *Prometheus {
	factory := promauto.With(reg)

	p := &Prometheus{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: RequestsTotalName,
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    RequestDurationName,
				Help:    "Duration of HTTP requests in seconds",
				Buckets: DurationBuckets,
			},
			[]string{"method", "route"},
		),
	}

	if opts.RuntimeCollectors {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return p
}

// ObserveRequest increments the request counter and records the duration.
func (p *Prometheus) ObserveRequest(_ context.Context, method, route string, status int, duration time.Duration) {
	p.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler renders the registry in the Prometheus text exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		Registry: p.registry,
	})
}

// Registry returns the underlying registry.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}
