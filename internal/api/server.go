// Package api exposes the resolution service consumed by the browser-side
// overlay: fetch the current index, open an exact position, or open the
// best line found from textual clues.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/srcjump/srcjump/internal/index"
	"github.com/srcjump/srcjump/internal/launch"
	"github.com/srcjump/srcjump/internal/search"
)

// Server is the local HTTP resolution service.
type Server struct {
	router     *http.ServeMux
	server     *http.Server
	addr       string
	handle     *index.Handle
	ranker     *search.Ranker
	dispatcher *launch.Dispatcher
}

// NewServer creates the resolution service. All handlers read the index
// through the swappable handle, so requests stay consistent during
// background rebuilds.
func NewServer(addr string, handle *index.Handle, ranker *search.Ranker, dispatcher *launch.Dispatcher) *Server {
	s := &Server{
		addr:       addr,
		handle:     handle,
		ranker:     ranker,
		dispatcher: dispatcher,
		router:     http.NewServeMux(),
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.applyMiddleware(s.router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// registerRoutes registers the service's operations.
func (s *Server) registerRoutes() {
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/index", s.handleGetIndex)
	s.router.HandleFunc("/open", s.handleOpen)
	s.router.HandleFunc("/open/search", s.handleOpenSearch)
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// ServeHTTP implements http.Handler for tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}
