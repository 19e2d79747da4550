// Package api exposes the question-answering boundary over HTTP as a
// small JSON API. The agent never fails, so the only non-200 answer
// path is request validation.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger      *slog.Logger
	Agent       Answerer      // Required
	Pool        *pgxpool.Pool // Optional: nil disables database ping in /ready
	CORSOrigins []string      // Allowed origins for CORS
	TrustProxy  bool          // Trust X-Real-IP/X-Forwarded-For headers (behind reverse proxy)
	RateBurst   int           // Rate limiter burst size per IP (0 = default 60)
}

// Server is the JSON API HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates a new API server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Agent == nil {
		return nil, errors.New("agent is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ah := &askHandler{agent: cfg.Agent, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/ask", ah.ask)

	// Per-IP token bucket, refilling one question per second.
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 60
	}
	th := newThrottle(1.0, burst)

	// Build middleware stack (outermost first):
	//   Recovery → RequestID → Logging → CORS → Throttle → Routes
	// RequestID must be before Logging so request_id is available in log attributes.
	// CORS must be before Throttle so preflight OPTIONS gets proper CORS headers.
	var handler http.Handler = mux
	handler = throttleMiddleware(th, cfg.TrustProxy, logger)(handler)
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	// Use a top-level mux to separate health probes from middleware stack
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health)
	topMux.Handle("GET /ready", readiness(cfg.Pool, logger))
	topMux.Handle("/", handler)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}
