// Package server provides the HTTP transports: REST endpoints per tool,
// JSON-RPC over SSE and WebSocket, MCP streamable HTTP and metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"simple-mcp/internal/dispatch"
	"simple-mcp/internal/metrics"
)

// Config contains server configuration values.
type Config struct {
	Addr           string
	RequestTimeout time.Duration
	Logger         zerolog.Logger
	Metrics        *metrics.Metrics
	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
	// Now is the clock used for health timestamps; nil means time.Now.
	Now func() time.Time
}

// Server contains the configured router and dispatcher.
type Server struct {
	cfg        Config
	router     *chi.Mux
	dispatcher *dispatch.Dispatcher
	logger     zerolog.Logger
	upgrader   websocket.Upgrader
	now        func() time.Time
}

// New constructs a Server with middleware and routes configured.
func New(cfg Config, d *dispatch.Dispatcher) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	s := &Server{
		cfg:        cfg,
		router:     chi.NewRouter(),
		dispatcher: d,
		logger:     cfg.Logger,
		now:        cfg.Now,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(recoverer(s.logger))

	s.router.Get("/", s.handleInfo)
	s.router.Get("/health", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())

	s.router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.RequestTimeout))

		r.Get("/tools", s.handleListTools)
		r.Post("/tools/echo", s.handleEcho)
		r.Get("/tools/time", s.handleTime)
		r.Post("/tools/calculate", s.handleCalculate)
		r.Post("/tools/reverse", s.handleReverse)

		r.Get("/sse", s.handleSSE)
		r.Post("/sse", s.handleSSE)
	})

	s.router.Get("/ws", s.handleWebSocket)
	if cfg.MCP != nil {
		s.router.Handle("/mcp", cfg.MCP)
	}

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr).Msg("Starting HTTP server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
