package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// echoAgent answers every question with a fixed prefix plus the
// question itself, standing in for the real agent's never-fails contract.
type echoAgent struct {
	prefix string
}

func (e *echoAgent) Answer(_ context.Context, question string) string {
	return e.prefix + question
}

func newTestServer(t *testing.T, cfg ServerConfig) *Server {
	t.Helper()

	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Agent == nil {
		cfg.Agent = &echoAgent{prefix: "answer: "}
	}
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	return srv
}

func TestNewServer_MissingAgent(t *testing.T) {
	_, err := NewServer(ServerConfig{Logger: slog.New(slog.DiscardHandler)})
	assert.Error(t, err)
}

func TestAsk(t *testing.T) {
	srv := newTestServer(t, ServerConfig{})

	body := strings.NewReader(`{"question": "Which crop is most profitable?"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/ask", body)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp askResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "answer: Which crop is most profitable?", resp.Response)
}

func TestAsk_EmptyQuestion(t *testing.T) {
	srv := newTestServer(t, ServerConfig{})

	for _, body := range []string{`{"question": ""}`, `{"question": "   "}`, `{}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(body))
		w := httptest.NewRecorder()

		srv.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "missing_question", resp.Error)
	}
}

func TestAsk_InvalidBody(t *testing.T) {
	srv := newTestServer(t, ServerConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAsk_ErrorAnswersAreStill200(t *testing.T) {
	srv := newTestServer(t, ServerConfig{Agent: &echoAgent{prefix: "Error: "}})

	req := httptest.NewRequest(http.MethodPost, "/api/ask",
		strings.NewReader(`{"question": "anything"}`))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp askResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Error: anything", resp.Response)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, ServerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReady_NilPool(t *testing.T) {
	srv := newTestServer(t, ServerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, ServerConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/ask",
		strings.NewReader(`{"question": "hi"}`))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	got := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, got)
	_, err := uuid.Parse(got)
	assert.NoError(t, err, "X-Request-ID is not a valid UUID")
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, ServerConfig{CORSOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/ask", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	srv := newTestServer(t, ServerConfig{CORSOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodPost, "/api/ask",
		strings.NewReader(`{"question": "hi"}`))
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, ServerConfig{RateBurst: 1})

	makeReq := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/ask",
			strings.NewReader(`{"question": "hi"}`))
		req.RemoteAddr = "203.0.113.7:55555"
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, makeReq())
	assert.Equal(t, http.StatusTooManyRequests, makeReq())
}
