// Package server exposes match3 sessions over a JSON HTTP API so bots and
// web clients can play without a terminal.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

const (
	defaultAddr       = ":8080"
	defaultSessionTTL = 30 * time.Minute
	sweepInterval     = time.Minute
)

// Options configure a Server.
type Options struct {
	Addr       string
	Config     config.Config
	Levels     []levels.Level
	Store      *storage.Store // optional, finished runs are saved when set
	Logger     *log.Logger
	SessionTTL time.Duration // idle sessions are dropped after this long
}

// Server is the HTTP front end.
type Server struct {
	opts     Options
	router   chi.Router
	http     *http.Server
	sessions *sessionStore
	logger   *log.Logger
}

// New creates a server with its routes registered.
func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = defaultAddr
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix("api")

	r := chi.NewRouter()
	s := &Server{
		opts:     opts,
		router:   r,
		sessions: newSessionStore(),
		logger:   logger,
		http: &http.Server{
			Addr:         opts.Addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(chimid.RequestID)
	s.router.Use(accessLog(s.logger))
	s.router.Use(chimid.Recoverer)
	s.router.Use(compression)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/levels", s.handleLevels)
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/swap", s.handleSwap)
			r.Get("/hint", s.handleHint)
		})
	})
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.opts.Addr
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.opts.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("server: %w", err)
			}
			return nil
		case now := <-ticker.C:
			if n := s.sessions.sweep(now.Add(-s.opts.SessionTTL)); n > 0 {
				s.logger.Debug("idle sessions dropped", "count", n)
			}
		case <-ctx.Done():
			s.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return s.http.Shutdown(shutdownCtx)
		}
	}
}
