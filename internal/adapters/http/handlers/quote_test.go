package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-generator-api/internal/adapters/quotestore"
	"github.com/jsamuelsen/quote-generator-api/internal/app"
	"github.com/jsamuelsen/quote-generator-api/internal/domain"
	"github.com/jsamuelsen/quote-generator-api/internal/mocks"
	"github.com/jsamuelsen/quote-generator-api/internal/ports"
)

var testQuotes = []domain.Quote{
	{ID: 1, Text: "First quote.", Author: "Ada"},
	{ID: 2, Text: "Second quote.", Author: "Grace"},
	{ID: 3, Text: "Third quote.", Author: "Linus"},
}

// setupQuoteRouter wires a QuoteHandler over repo behind the RequestID
// middleware.
func setupQuoteRouter(t *testing.T, repo ports.QuoteRepository) *gin.Engine {
	t.Helper()

	service := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: repo,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	engine := gin.New()
	engine.Use(middleware.RequestID(middleware.RequestIDConfig{Logger: slog.New(slog.DiscardHandler)}))
	NewQuoteHandler(service).RegisterQuoteRoutes(engine)
	engine.NoRoute(NotFound)

	return engine
}

func newTestStore(t *testing.T, opts ...quotestore.Option) *quotestore.Store {
	t.Helper()

	store, err := quotestore.New(testQuotes, opts...)
	require.NoError(t, err)

	return store
}

func doGet(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func TestNewQuoteHandler(t *testing.T) {
	service := app.NewQuoteService(app.QuoteServiceConfig{Repository: newTestStore(t)})

	require.NotNil(t, NewQuoteHandler(service))
}

func TestQuoteHandler_GetRandomQuote(t *testing.T) {
	engine := setupQuoteRouter(t, newTestStore(t, quotestore.WithIntN(func(int) int { return 1 })))

	w := doGet(engine, "/quote")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	body := decodeBody(t, w)
	assert.Equal(t, "Second quote.", body["quote"])
	assert.Equal(t, "Grace", body["author"])
	assert.Equal(t, w.Header().Get(middleware.HeaderRequestID), body["requestId"])
	assert.Len(t, body, 3)
}

func TestQuoteHandler_ListQuotes(t *testing.T) {
	engine := setupQuoteRouter(t, newTestStore(t))

	w := doGet(engine, "/quotes")

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count  int `json:"count"`
		Quotes []struct {
			ID     int    `json:"id"`
			Text   string `json:"text"`
			Author string `json:"author"`
		} `json:"quotes"`
		RequestID string `json:"requestId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, len(testQuotes), body.Count)
	require.Len(t, body.Quotes, len(testQuotes))
	for i, q := range testQuotes {
		assert.Equal(t, q.ID, body.Quotes[i].ID)
		assert.Equal(t, q.Text, body.Quotes[i].Text)
		assert.Equal(t, q.Author, body.Quotes[i].Author)
	}
	assert.Equal(t, w.Header().Get(middleware.HeaderRequestID), body.RequestID)
}

func TestQuoteHandler_GetQuoteByID(t *testing.T) {
	engine := setupQuoteRouter(t, newTestStore(t))

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		wantText    string
		wantMessage string
	}{
		{name: "existing quote", path: "/quotes/2", wantStatus: http.StatusOK, wantText: "Second quote."},
		{name: "unknown id", path: "/quotes/999", wantStatus: http.StatusNotFound, wantMessage: "No quote exists with ID: 999"},
		{name: "zero", path: "/quotes/0", wantStatus: http.StatusNotFound, wantMessage: "No quote exists with ID: 0"},
		{name: "negative", path: "/quotes/-1", wantStatus: http.StatusNotFound, wantMessage: "No quote exists with ID: -1"},
		{name: "not a number", path: "/quotes/abc", wantStatus: http.StatusNotFound, wantMessage: "No quote exists with ID: abc"},
		{name: "trailing garbage", path: "/quotes/2abc", wantStatus: http.StatusNotFound, wantMessage: "No quote exists with ID: 2abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(engine, tt.path)

			require.Equal(t, tt.wantStatus, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, w.Header().Get(middleware.HeaderRequestID), body["requestId"])

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantText, body["text"])
				assert.InDelta(t, 2, body["id"], 0)
				assert.Equal(t, "Grace", body["author"])
				return
			}

			assert.Equal(t, "Quote not found", body["error"])
			assert.Equal(t, tt.wantMessage, body["message"])
			assert.NotContains(t, body, "availableEndpoints")
		})
	}
}

func TestQuoteHandler_RepositoryFailure(t *testing.T) {
	repo := mocks.NewMockQuoteRepository(t)
	repo.EXPECT().Random(mock.Anything).Return(nil, errors.New("disk on fire"))
	repo.EXPECT().List(mock.Anything).Return(nil, domain.NewUnavailableError("quote-store", "reloading"))

	engine := setupQuoteRouter(t, repo)

	w := doGet(engine, "/quote")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Internal Server Error", body["error"])
	assert.Equal(t, "an internal error occurred", body["message"])
	assert.NotContains(t, w.Body.String(), "disk on fire")

	w = doGet(engine, "/quotes")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Service Unavailable", decodeBody(t, w)["error"])
}

func TestQuoteHandler_RegisterQuoteRoutes(t *testing.T) {
	engine := gin.New()
	service := app.NewQuoteService(app.QuoteServiceConfig{Repository: newTestStore(t)})
	NewQuoteHandler(service).RegisterQuoteRoutes(engine)

	routes := map[string]bool{}
	for _, r := range engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	assert.True(t, routes["GET /quote"])
	assert.True(t, routes["GET /quotes"])
	assert.True(t, routes["GET /quotes/:id"])
	assert.Len(t, routes, 3)
}
