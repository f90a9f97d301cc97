// Package prom implements the observability hooks with Prometheus metrics.
package prom

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/gamesolver/pkg/observability"
)

// Hooks records solver, cache and HTTP events as Prometheus metrics.
type Hooks struct {
	gatherer prometheus.Gatherer

	solvesTotal     *prometheus.CounterVec
	solveDuration   *prometheus.HistogramVec
	arenaNodes      prometheus.Histogram
	attractorCalls  *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	cacheOps        *prometheus.CounterVec
	cacheBytes      prometheus.Counter
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers the gamesolver metrics with reg. reg must also be a
// Gatherer (a *prometheus.Registry or the default registerer) for
// [Hooks.Handler] to serve them; otherwise the default gatherer is used.
func New(reg prometheus.Registerer) *Hooks {
	f := promauto.With(reg)
	g, ok := reg.(prometheus.Gatherer)
	if !ok {
		g = prometheus.DefaultGatherer
	}
	return &Hooks{
		gatherer: g,

		solvesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gamesolver_solves_total",
			Help: "Total solver runs by solver and result",
		}, []string{"solver", "result"}),

		solveDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gamesolver_solve_duration_seconds",
			Help:    "Solver run duration",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
		}, []string{"solver"}),

		arenaNodes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gamesolver_arena_nodes",
			Help:    "Number of nodes per solved arena",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),

		attractorCalls: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gamesolver_attractor_computations",
			Help:    "Attractor computations per solve",
			Buckets: []float64{1, 2, 5, 10, 100, 1000, 10000},
		}, []string{"solver"}),

		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "gamesolver_solves_in_flight",
			Help: "Solver runs currently executing",
		}),

		cacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gamesolver_cache_operations_total",
			Help: "Cache operations by key type and outcome",
		}, []string{"key_type", "op"}),

		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "gamesolver_cache_written_bytes_total",
			Help: "Bytes written to the cache",
		}),

		requestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gamesolver_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gamesolver_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Handler serves the registered metrics in the Prometheus text format.
func (h *Hooks) Handler() http.Handler {
	return promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})
}

// OnSolveStart implements [observability.SolverHooks].
func (h *Hooks) OnSolveStart(_ context.Context, _ string, nodes int) {
	h.inFlight.Inc()
	h.arenaNodes.Observe(float64(nodes))
}

// OnSolveComplete implements [observability.SolverHooks].
func (h *Hooks) OnSolveComplete(_ context.Context, solver string, s observability.SolveStats, err error) {
	h.inFlight.Dec()
	h.solvesTotal.WithLabelValues(solver, result(s, err)).Inc()
	if err != nil || s.Cached {
		return
	}
	h.solveDuration.WithLabelValues(solver).Observe(s.Duration.Seconds())
	h.attractorCalls.WithLabelValues(solver).Observe(float64(s.Attractors))
}

func result(s observability.SolveStats, err error) string {
	switch {
	case err != nil:
		return "error"
	case s.Cached:
		return "cached"
	default:
		return "ok"
	}
}

// OnCacheHit implements [observability.CacheHooks].
func (h *Hooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements [observability.CacheHooks].
func (h *Hooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements [observability.CacheHooks].
func (h *Hooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheOps.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

// OnRequest implements [observability.HTTPHooks].
func (h *Hooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	h.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

var (
	_ observability.SolverHooks = (*Hooks)(nil)
	_ observability.CacheHooks  = (*Hooks)(nil)
	_ observability.HTTPHooks   = (*Hooks)(nil)
)
