// Package server exposes an editing session over a local HTTP API:
// load and export SRT, edit cues, drive timeline gestures, and follow
// the playhead. One session is shared by all requests.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/ryokoh/cueline/internal/editor"
	"github.com/ryokoh/cueline/internal/logging"
)

// Editor serializes access to the session shared across requests.
type Editor struct {
	mu      sync.Mutex
	session *editor.Session
}

func NewEditor(session *editor.Session) *Editor {
	return &Editor{session: session}
}

// With runs fn while holding the session lock.
func (e *Editor) With(fn func(*editor.Session)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session)
}

type ServerConfig struct {
	Addr   string
	Editor *Editor
	Logger *logging.Logger
}

type Server struct {
	httpServer *http.Server
	logger     *logging.Logger
}

func NewServer(cfg ServerConfig) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      NewRouter(cfg),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: cfg.Logger,
	}
}

func (s *Server) Start() error {
	s.logger.Infow("starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}
