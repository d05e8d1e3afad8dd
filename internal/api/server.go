package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/ignite/message-relay/internal/config"
	"github.com/ignite/message-relay/internal/relay"
)

// Server hosts the relay API and the static file root.
type Server struct {
	config  config.ServerConfig
	handler http.Handler
	server  *http.Server
}

// NewServer creates the API server. db is only used for health reporting;
// all persistence goes through the dispatcher's stores.
func NewServer(cfg config.ServerConfig, core *relay.Dispatcher, db *sql.DB, webRoot string) *Server {
	return &Server{
		config:  cfg,
		handler: SetupRoutes(core, db, webRoot),
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.handler
}
