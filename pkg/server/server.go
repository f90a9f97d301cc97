// Package server exposes the solving pipeline over HTTP.
//
// Routes:
//
//	POST /v1/solve          solve an arena posted as JSON
//	GET  /v1/solvers        list solver names
//	GET  /v1/records        list recent solve records
//	GET  /v1/records/{id}   fetch one solve record
//	GET  /metrics           Prometheus metrics, when configured
//	GET  /healthz           liveness check
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// with "error" and "code" fields; input errors map to 4xx statuses.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/gamesolver/pkg/observability"
	"github.com/matzehuels/gamesolver/pkg/pipeline"
)

// Defaults for request limits.
const (
	DefaultMaxBody      = 8 << 20
	DefaultMaxNodes     = 250_000
	DefaultSolveTimeout = 2 * time.Minute
)

// Option configures optional Server behavior.
type Option func(*Server)

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithMaxBody caps the size of request bodies in bytes.
func WithMaxBody(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

// WithMaxNodes rejects arenas with more than n nodes. Zero disables the
// limit.
func WithMaxNodes(n int) Option {
	return func(s *Server) { s.maxNodes = n }
}

// WithSolveTimeout bounds the time spent on one solve request.
func WithSolveTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// Server holds the chi router and the pipeline runner it serves.
type Server struct {
	router   chi.Router
	runner   *pipeline.Runner
	logger   *log.Logger
	metrics  http.Handler
	maxBody  int64
	maxNodes int
	timeout  time.Duration
}

// New creates a Server with all routes configured. Solve records are read
// from runner.Store; without a store the record routes answer 404.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:   runner,
		logger:   logger,
		maxBody:  DefaultMaxBody,
		maxNodes: DefaultMaxNodes,
		timeout:  DefaultSolveTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/solvers", s.handleSolvers)
		r.Get("/records", s.handleListRecords)
		r.Get("/records/{id}", s.handleGetRecord)
	})
	return r
}

// ServeHTTP implements the http.Handler interface, delegating to the chi router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.timeout + 30*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Middleware
// =============================================================================

const requestIDHeader = "X-Request-ID"

// requestID propagates a caller-supplied request ID or assigns a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// instrument logs each request and reports it to the HTTP hooks under its
// route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		d := time.Since(start)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnRequest(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", d,
			"request_id", w.Header().Get(requestIDHeader))
	})
}
