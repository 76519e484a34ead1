package instance

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// enqueueTimeout bounds how long a handler waits for the event loop.
const enqueueTimeout = 5 * time.Second

// Server accepts forwarded launch requests over a unix socket.
type Server struct {
	logger   *logrus.Entry
	server   *http.Server
	requests chan Request
}

// NewServer creates a Server. Requests are delivered on Requests().
func NewServer(logger *logrus.Entry) *Server {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Server{
		logger:   logger,
		requests: make(chan Request, 8),
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Requests returns the channel consumed by the application's event loop.
func (s *Server) Requests() <-chan Request {
	return s.requests
}

// Listen binds the unix socket. A stale socket file is replaced.
func (s *Server) Listen(socketPath string) (net.Listener, error) {
	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(socketPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}
	if err := os.Chmod(socketPath, 0600); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}
	return listener, nil
}

// Serve handles requests on listener until Shutdown.
func (s *Server) Serve(listener net.Listener) error {
	s.logger.WithField("socket", listener.Addr().String()).Info("Instance listening")
	err := s.server.Serve(listener)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// ListenAndServe binds socketPath and serves until Shutdown.
func (s *Server) ListenAndServe(socketPath string) error {
	listener, err := s.Listen(socketPath)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/activate", s.handleActivate)
	mux.HandleFunc("/api/open", s.handleOpen)
	return mux
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.enqueue(w, r, Request{Kind: KindActivate})
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body openBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	// An empty open is an activation.
	if len(body.Paths) == 0 {
		s.enqueue(w, r, Request{Kind: KindActivate})
		return
	}
	for _, p := range body.Paths {
		if !filepath.IsAbs(p) {
			http.Error(w, fmt.Sprintf("path must be absolute: %s", p), http.StatusBadRequest)
			return
		}
	}
	s.enqueue(w, r, Request{Kind: KindOpen, Paths: body.Paths})
}

func (s *Server) enqueue(w http.ResponseWriter, r *http.Request, req Request) {
	ctx, cancel := context.WithTimeout(r.Context(), enqueueTimeout)
	defer cancel()

	select {
	case s.requests <- req:
		s.logger.WithFields(logrus.Fields{"kind": req.Kind, "paths": len(req.Paths)}).Debug("Accepted forwarded request")
		w.WriteHeader(http.StatusAccepted)
	case <-ctx.Done():
		http.Error(w, "instance busy", http.StatusServiceUnavailable)
	}
}
