package benchmark

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	apphttp "github.com/jsamuelsen/quote-generator-api/internal/adapters/http"
	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-generator-api/internal/adapters/quotestore"
	"github.com/jsamuelsen/quote-generator-api/internal/app"
	"github.com/jsamuelsen/quote-generator-api/internal/platform/metrics"
	"github.com/jsamuelsen/quote-generator-api/internal/ports"
)

func init() {
	// Set Gin to release mode for accurate benchmarks
	gin.SetMode(gin.ReleaseMode)
}

var discard = slog.New(slog.DiscardHandler)

// createGinContext creates a Gin context for handler testing.
func createGinContext(w http.ResponseWriter, r *http.Request) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = r
	return c
}

func setupQuoteHandler(b *testing.B) *handlers.QuoteHandler {
	b.Helper()

	store, err := quotestore.NewDefault()
	if err != nil {
		b.Fatal(err)
	}

	return handlers.NewQuoteHandler(app.NewQuoteService(app.QuoteServiceConfig{
		Repository: store,
		Logger:     discard,
	}))
}

// setupRouter builds the full middleware chain over the embedded dataset.
func setupRouter(b *testing.B) *gin.Engine {
	b.Helper()

	store, err := quotestore.NewDefault()
	if err != nil {
		b.Fatal(err)
	}

	registry := ports.NewHealthRegistry()
	_ = registry.Register(store)

	prom := metrics.NewPrometheus(prometheus.NewRegistry(), metrics.Options{})

	engine := gin.New()
	apphttp.SetupRouter(engine, apphttp.RouterConfig{
		Logger: discard,
		QuoteHandler: handlers.NewQuoteHandler(app.NewQuoteService(app.QuoteServiceConfig{
			Repository: store,
			Logger:     discard,
		})),
		HealthHandler: handlers.NewHealthHandler(registry, handlers.ServiceInfo{
			Name:    "Quote Generator API",
			Version: "1.0.0",
			Build:   handlers.NewBuildInfo("1.0.0", "abc123", "2024-01-01T00:00:00Z"),
		}),
		Recorder: prom,
		Exporter: prom,
	})

	return engine
}

// BenchmarkRandomQuoteHandler measures GET /quote without middleware.
func BenchmarkRandomQuoteHandler(b *testing.B) {
	handler := setupQuoteHandler(b)
	req := httptest.NewRequest(http.MethodGet, "/quote", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		c := createGinContext(w, req)
		handler.GetRandomQuote(c)
	}
}

// BenchmarkListQuotesHandler measures GET /quotes without middleware.
func BenchmarkListQuotesHandler(b *testing.B) {
	handler := setupQuoteHandler(b)
	req := httptest.NewRequest(http.MethodGet, "/quotes", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		c := createGinContext(w, req)
		handler.ListQuotes(c)
	}
}

// BenchmarkQuoteByIDHandler measures GET /quotes/:id for a hit.
func BenchmarkQuoteByIDHandler(b *testing.B) {
	handler := setupQuoteHandler(b)
	req := httptest.NewRequest(http.MethodGet, "/quotes/7", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		c := createGinContext(w, req)
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		handler.GetQuoteByID(c)
	}
}

// BenchmarkRequestIDMiddleware measures id generation and context setup.
func BenchmarkRequestIDMiddleware(b *testing.B) {
	router := gin.New()
	router.Use(middleware.RequestID(middleware.RequestIDConfig{Logger: discard}))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}

// BenchmarkMiddlewareChain_Full measures a request through every middleware.
func BenchmarkMiddlewareChain_Full(b *testing.B) {
	router := setupRouter(b)
	req := httptest.NewRequest(http.MethodGet, "/quote", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}

// BenchmarkMiddlewareChain_Parallel measures contention on the shared
// metric vectors.
func BenchmarkMiddlewareChain_Parallel(b *testing.B) {
	router := setupRouter(b)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req := httptest.NewRequestWithContext(context.Background(), http.MethodGet, "/quotes/3", http.NoBody)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
		}
	})
}

// BenchmarkMetricsExposition measures rendering GET /metrics.
func BenchmarkMetricsExposition(b *testing.B) {
	router := setupRouter(b)
	for range 100 {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/quote", http.NoBody))
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}
