package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-generator-api/internal/adapters/quotestore"
	"github.com/jsamuelsen/quote-generator-api/internal/app"
	"github.com/jsamuelsen/quote-generator-api/internal/platform/metrics"
	"github.com/jsamuelsen/quote-generator-api/internal/ports"
)

var uuidV4Pattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func init() {
	gin.SetMode(gin.TestMode)
}

// testApp is a fully wired router over the embedded dataset with its own
// metrics registry.
type testApp struct {
	engine   *gin.Engine
	registry *prometheus.Registry
	store    *quotestore.Store
	logs     *bytes.Buffer
}

type testAppOption func(*RouterConfig)

func withTrustRequestID() testAppOption {
	return func(cfg *RouterConfig) { cfg.TrustRequestID = true }
}

func newTestApp(t *testing.T, opts ...testAppOption) *testApp {
	t.Helper()

	store, err := quotestore.NewDefault()
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&syncWriter{w: &logs}, nil))

	registry := prometheus.NewRegistry()
	prom := metrics.NewPrometheus(registry, metrics.Options{})

	health := ports.NewHealthRegistry()
	require.NoError(t, health.Register(store))

	cfg := RouterConfig{
		Logger:       logger,
		ServiceName:  "quote-generator-api",
		QuoteHandler: handlers.NewQuoteHandler(app.NewQuoteService(app.QuoteServiceConfig{Repository: store, Logger: logger})),
		HealthHandler: handlers.NewHealthHandler(health, handlers.ServiceInfo{
			Name:    "Quote Generator API",
			Version: "1.0.0",
			Build:   handlers.NewBuildInfo("1.0.0", "test", "now"),
		}),
		Recorder: prom,
		Exporter: prom,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	engine := gin.New()
	SetupRouter(engine, cfg)

	return &testApp{engine: engine, registry: registry, store: store, logs: &logs}
}

func (a *testApp) do(method, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	return w
}

// syncWriter serializes concurrent log writes to a buffer.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())

	return body
}

func TestRouter_Routes(t *testing.T) {
	a := newTestApp(t)

	routes := map[string]bool{}
	for _, r := range a.engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	assert.Len(t, routes, len(handlers.Endpoints))
	for _, key := range handlers.EndpointKeys() {
		assert.True(t, routes[key], key)
	}
}

func TestRouter_ServiceInfo(t *testing.T) {
	a := newTestApp(t)

	w := a.do(http.MethodGet, "/")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Quote Generator API", body["service"])
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.Contains(t, body["endpoints"], "GET /metrics")
}

func TestRouter_ListQuotesMatchesDataset(t *testing.T) {
	a := newTestApp(t)

	w := a.do(http.MethodGet, "/quotes")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count  int            `json:"count"`
		Quotes []dto.QuoteItem `json:"quotes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, 12, body.Count)
	assert.Len(t, body.Quotes, 12)
	assert.Equal(t, a.store.Len(), body.Count)
}

func TestRouter_EveryListedQuoteIsAddressable(t *testing.T) {
	a := newTestApp(t)

	var list struct {
		Quotes []struct {
			ID     int    `json:"id"`
			Text   string `json:"text"`
			Author string `json:"author"`
		} `json:"quotes"`
	}
	require.NoError(t, json.Unmarshal(a.do(http.MethodGet, "/quotes").Body.Bytes(), &list))
	require.NotEmpty(t, list.Quotes)

	for _, q := range list.Quotes {
		t.Run(fmt.Sprintf("id_%d", q.ID), func(t *testing.T) {
			w := a.do(http.MethodGet, fmt.Sprintf("/quotes/%d", q.ID))
			require.Equal(t, http.StatusOK, w.Code)

			body := decode(t, w)
			assert.InDelta(t, q.ID, body["id"], 0)
			assert.Equal(t, q.Text, body["text"])
			assert.Equal(t, q.Author, body["author"])
		})
	}
}

func TestRouter_UnknownQuoteIDs(t *testing.T) {
	a := newTestApp(t)

	for _, id := range []string{"999", "0", "-1", "abc", "1.5", "13"} {
		t.Run(id, func(t *testing.T) {
			w := a.do(http.MethodGet, "/quotes/"+id)

			require.Equal(t, http.StatusNotFound, w.Code)
			body := decode(t, w)
			assert.Equal(t, "Quote not found", body["error"])
			assert.Equal(t, "No quote exists with ID: "+id, body["message"])
		})
	}
}

func TestRouter_RandomQuoteIsFromDataset(t *testing.T) {
	a := newTestApp(t)

	all, err := a.store.List(t.Context())
	require.NoError(t, err)

	known := make(map[string]string, len(all))
	for _, q := range all {
		known[q.Text] = q.Author
	}

	seen := make(map[string]struct{})
	for range 1000 {
		w := a.do(http.MethodGet, "/quote")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		text, _ := body["quote"].(string)
		author, ok := known[text]
		require.True(t, ok, "unexpected quote %q", text)
		assert.Equal(t, author, body["author"])
		seen[text] = struct{}{}
	}

	// Missing any of 12 quotes in 1000 uniform draws has probability ~1e-37.
	assert.Len(t, seen, len(all))
}

func TestRouter_CatchAll(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/nonexistent-path"},
		{http.MethodGet, "/quotes/"},
		{http.MethodGet, "/quote/"},
		{http.MethodPost, "/quotes"},
		{http.MethodPut, "/quotes/1"},
		{http.MethodDelete, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := a.do(tt.method, tt.path)

			require.Equal(t, http.StatusNotFound, w.Code)
			body := decode(t, w)
			assert.Equal(t, "Not Found", body["error"])
			assert.Equal(t, fmt.Sprintf("%s %s does not exist", tt.method, tt.path), body["message"])
			assert.Len(t, body["availableEndpoints"], len(handlers.Endpoints))
		})
	}
}

func TestRouter_RequestIDOnEveryResponse(t *testing.T) {
	a := newTestApp(t)

	paths := []struct {
		method   string
		path     string
		jsonBody bool
	}{
		{http.MethodGet, "/", true},
		{http.MethodGet, "/quote", true},
		{http.MethodGet, "/quotes", true},
		{http.MethodGet, "/quotes/1", true},
		{http.MethodGet, "/quotes/999", true},
		{http.MethodGet, "/nonexistent-path", true},
		{http.MethodPost, "/quote", true},
		{http.MethodGet, "/metrics", false},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := a.do(p.method, p.path)

			id := w.Header().Get(middleware.HeaderRequestID)
			assert.Regexp(t, uuidV4Pattern, id)

			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
			assert.Equal(t, "0", w.Header().Get("X-XSS-Protection"))
			assert.Empty(t, w.Header().Get("X-Powered-By"))

			if p.jsonBody {
				assert.Equal(t, id, decode(t, w)["requestId"])
			}
		})
	}
}

func TestRouter_InboundRequestID(t *testing.T) {
	inbound := uuid.NewString()

	t.Run("ignored by default", func(t *testing.T) {
		w := newTestApp(t).do(http.MethodGet, "/quote", middleware.HeaderRequestID, inbound)
		assert.NotEqual(t, inbound, w.Header().Get(middleware.HeaderRequestID))
	})

	t.Run("reused when trusted", func(t *testing.T) {
		w := newTestApp(t, withTrustRequestID()).do(http.MethodGet, "/quote", middleware.HeaderRequestID, inbound)
		assert.Equal(t, inbound, w.Header().Get(middleware.HeaderRequestID))
		assert.Equal(t, inbound, decode(t, w)["requestId"])
	})
}

func TestRouter_MetricsExposition(t *testing.T) {
	a := newTestApp(t)

	a.do(http.MethodGet, "/quote")
	a.do(http.MethodGet, "/quotes/3")
	a.do(http.MethodGet, "/quotes/999")
	a.do(http.MethodGet, "/nonexistent-path")

	w := a.do(http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	body := w.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, "http_request_duration_seconds")
	assert.Contains(t, body, `http_requests_total{method="GET",route="/quotes/:id",status_code="200"} 1`)
	assert.Contains(t, body, `http_requests_total{method="GET",route="/quotes/:id",status_code="404"} 1`)
	assert.Contains(t, body, `http_requests_total{method="GET",route="/nonexistent-path",status_code="404"} 1`)
	assert.Contains(t, body, `http_request_duration_seconds_bucket{method="GET",route="/quote",le="0.01"}`)
}

func TestRouter_PanicBecomes500AndIsCounted(t *testing.T) {
	a := newTestApp(t)
	a.engine.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := a.do(http.MethodGet, "/boom")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Internal Server Error", body["error"])
	assert.Equal(t, w.Header().Get(middleware.HeaderRequestID), body["requestId"])
	assert.Regexp(t, uuidV4Pattern, w.Header().Get(middleware.HeaderRequestID))

	expected := `
# HELP http_requests_total Total number of HTTP requests
# TYPE http_requests_total counter
http_requests_total{method="GET",route="/boom",status_code="500"} 1
`
	require.NoError(t, testutil.GatherAndCompare(a.registry, strings.NewReader(expected), metrics.RequestsTotalName))
}

func TestRouter_LogOrderingPerRequest(t *testing.T) {
	a := newTestApp(t)

	w := a.do(http.MethodGet, "/quotes/1")
	id := w.Header().Get(middleware.HeaderRequestID)

	var events []string
	for _, line := range bytes.Split(bytes.TrimSpace(a.logs.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry["request_id"] == id {
			event, _ := entry["event"].(string)
			events = append(events, event)
		}
	}

	assert.Equal(t, []string{middleware.EventRequestStart, middleware.EventRequestComplete}, events)
}

func TestRouter_ConcurrentRequests(t *testing.T) {
	const n = 50

	a := newTestApp(t)
	srv := httptest.NewServer(a.engine)
	t.Cleanup(srv.Close)

	ids := make([]string, n)

	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			resp, err := srv.Client().Get(srv.URL + "/quote")
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("request %d: status %d", i, resp.StatusCode)
			}
			ids[i] = resp.Header.Get(middleware.HeaderRequestID)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	distinct := make(map[string]struct{}, n)
	for _, id := range ids {
		assert.Regexp(t, uuidV4Pattern, id)
		distinct[id] = struct{}{}
	}
	assert.Len(t, distinct, n)

	expected := fmt.Sprintf(`
# HELP http_requests_total Total number of HTTP requests
# TYPE http_requests_total counter
http_requests_total{method="GET",route="/quote",status_code="200"} %d
`, n)
	require.NoError(t, testutil.GatherAndCompare(a.registry, strings.NewReader(expected), metrics.RequestsTotalName))
}

func TestRouter_RegistriesAreIsolated(t *testing.T) {
	first := newTestApp(t)
	second := newTestApp(t)

	first.do(http.MethodGet, "/quote")

	count, err := testutil.GatherAndCount(second.registry, metrics.RequestsTotalName)
	require.NoError(t, err)
	assert.Zero(t, count)
}
