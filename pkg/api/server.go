package api

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/hubrank/pkg/config"
	"github.com/matzehuels/hubrank/pkg/pipeline"
	"github.com/matzehuels/hubrank/pkg/report"
)

// Config configures a Server.
type Config struct {
	// Options are the base pipeline options. Requests may override Mode
	// and Top; everything else is fixed for the server's lifetime.
	Options pipeline.Options

	// Store serves /v1/reports. Nil disables those routes (404).
	Store report.Store

	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler

	Logger *log.Logger
}

// Server is the HTTP front end of the pipeline.
type Server struct {
	runner  *pipeline.Runner
	opts    pipeline.Options
	store   report.Store
	metrics http.Handler
	logger  *log.Logger

	mu        sync.RWMutex
	snapshots map[string]*pipeline.Result
	group     singleflight.Group
}

// New creates a server around runner.
func New(runner *pipeline.Runner, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Server{
		runner:    runner,
		opts:      cfg.Options,
		store:     cfg.Store,
		metrics:   cfg.Metrics,
		logger:    logger,
		snapshots: make(map[string]*pipeline.Result),
	}
}

// Handler returns the router with all routes and middleware mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/ranking", s.handleRanking)
		r.Get("/airports/{code}", s.handleAirport)
		r.Get("/reports/latest", s.handleLatestReport)
		r.Get("/reports/{id}", s.handleReport)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, notFound("no route for %s", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error:   http.StatusText(http.StatusMethodNotAllowed),
			Message: r.Method + " is not allowed on " + r.URL.Path,
		})
	})
	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully
// within cfg.ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.Server) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  2 * cfg.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// snapshot returns the built and scored graph for mode, building it on
// first use.
func (s *Server) snapshot(ctx context.Context, mode string) (*pipeline.Result, error) {
	s.mu.RLock()
	res, ok := s.snapshots[mode]
	s.mu.RUnlock()
	if ok {
		return res, nil
	}

	// The build outlives the request that started it.
	ctx = context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(mode, func() (any, error) {
		opts := s.opts
		opts.Mode = mode
		opts.Top = -1

		start := time.Now()
		res, err := s.runner.Build(ctx, opts)
		if err != nil {
			return nil, err
		}
		if err := s.runner.Rank(ctx, res, opts); err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.snapshots[mode] = res
		s.mu.Unlock()
		s.logger.Debug("built graph snapshot", "mode", mode, "nodes", res.Stats.Nodes, "duration", time.Since(start))
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*pipeline.Result), nil
}
