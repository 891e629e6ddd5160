// Package httpserver is the dashboard façade: a single-process HTTP server
// exposing connector auth state as JSON, driving browser OAuth flows, and
// serving the static dashboard bundle.
//
// This is the only layer that converts engine-level failures into HTTP
// status codes; nothing below it speaks HTTP.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driven"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driving"
	"github.com/custodia-labs/connect-cli/internal/logger"
)

// maxBodyBytes caps request bodies on JSON endpoints. Oversized requests
// are rejected with 413 before decoding.
const maxBodyBytes = 1 << 20 // 1 MiB

// Server is the dashboard HTTP façade.
type Server struct {
	port   int
	status driving.StatusService
	oauth  driving.OAuthService
	creds  driving.CredentialService
	events driven.EventStore // may be nil
	assets fs.FS             // static dashboard bundle, may be nil

	httpServer *http.Server
}

// New creates a dashboard server on the given port.
func New(
	port int,
	status driving.StatusService,
	oauth driving.OAuthService,
	creds driving.CredentialService,
	events driven.EventStore,
	assets fs.FS,
) *Server {
	return &Server{
		port:   port,
		status: status,
		oauth:  oauth,
		creds:  creds,
		events: events,
		assets: assets,
	}
}

// Port returns the configured port.
func (s *Server) Port() int {
	return s.port
}

// BaseURL returns the browser-facing origin of this server.
func (s *Server) BaseURL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/connectors", s.handleListConnectors)
	mux.HandleFunc("GET /api/connectors/{name}", s.handleGetConnector)
	mux.HandleFunc("POST /api/connectors/{name}/key", s.handleSaveKey)
	mux.HandleFunc("DELETE /api/connectors/{name}/key", s.handleClearKey)
	mux.HandleFunc("POST /api/connectors/{name}/refresh", s.handleRefresh)
	mux.HandleFunc("GET /api/events", s.handleListEvents)
	// Unknown API paths are JSON 404s, never the SPA fallback.
	mux.HandleFunc("/api/", func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusNotFound, "not found")
	})

	mux.HandleFunc("GET /oauth/{name}/start", s.handleOAuthStart)
	mux.HandleFunc("GET /oauth/{name}/callback", s.handleOAuthCallback)

	mux.Handle("/", s.staticHandler())

	return s.cors(mux)
}

// Start listens and serves until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	logger.Info("dashboard listening on %s", s.BaseURL())

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// cors scopes cross-origin access to this server's own localhost origin.
// Credentials flow through these endpoints, so a wildcard is never used.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.BaseURL())
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// httpStatusFor maps engine-level failures onto status codes.
func httpStatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidConnectorName), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
