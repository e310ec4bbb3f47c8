package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Server represents an HTTP server with graceful shutdown and readiness
// tracking.
type Server struct {
	handler http.Handler
	server  *http.Server
	mu      sync.RWMutex
	started bool
	ready   atomic.Bool
}

// Config holds server configuration.
type Config struct {
	Addr         string
	Handler      http.Handler
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// TLS enables HTTPS when both files are set.
	TLS TLSConfig
}

// New creates a new HTTP server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 120 * time.Second
	}

	s := &Server{handler: cfg.Handler}
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	if cfg.TLS.Enabled() {
		certs, err := cfg.TLS.LoadCertificates()
		if err != nil {
			return nil, err
		}
		s.server.TLSConfig = ServerTLSConfig(certs)
	}
	return s, nil
}

// ServeHTTP implements http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.handler == nil {
		http.NotFound(w, r)
		return
	}
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe listens on the configured address and serves until
// Shutdown. It returns nil after a graceful shutdown.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.server.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln. The server is ready once it is serving.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		ln.Close()
		return errors.New("server already started")
	}
	s.started = true
	s.mu.Unlock()

	s.ready.Store(true)
	var err error
	if s.server.TLSConfig != nil {
		err = s.server.Serve(tls.NewListener(ln, s.server.TLSConfig))
	} else {
		err = s.server.Serve(ln)
	}
	s.ready.Store(false)

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server. The server reports not ready
// as soon as shutdown starts.
func (s *Server) Shutdown(ctx context.Context) error {
	s.ready.Store(false)
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the configured server address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Started returns whether the server has been started.
func (s *Server) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// Ready reports whether the server is serving and not shutting down.
func (s *Server) Ready() bool {
	return s.ready.Load()
}

// HealthHandler returns a handler for health checks.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
}

// ReadyHandler returns a handler for readiness checks. It answers 503
// while ready reports false.
func ReadyHandler(ready func() bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if ready != nil && !ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "not ready"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ready"}`))
	})
}
