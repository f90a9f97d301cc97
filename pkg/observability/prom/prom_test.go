package prom

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/gamesolver/pkg/observability"
)

func TestSolverMetrics(t *testing.T) {
	ctx := context.Background()
	h := New(prometheus.NewRegistry())

	h.OnSolveStart(ctx, "zielonka", 7)
	if got := testutil.ToFloat64(h.inFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	h.OnSolveComplete(ctx, "zielonka", observability.SolveStats{Nodes: 7, Attractors: 5, Duration: time.Millisecond}, nil)
	h.OnSolveStart(ctx, "zielonka", 7)
	h.OnSolveComplete(ctx, "zielonka", observability.SolveStats{Cached: true}, nil)
	h.OnSolveStart(ctx, "safety", 3)
	h.OnSolveComplete(ctx, "safety", observability.SolveStats{}, errors.New("boom"))

	if got := testutil.ToFloat64(h.inFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
	tests := []struct {
		solver, result string
		want           float64
	}{
		{"zielonka", "ok", 1},
		{"zielonka", "cached", 1},
		{"safety", "error", 1},
		{"safety", "ok", 0},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(h.solvesTotal.WithLabelValues(tt.solver, tt.result)); got != tt.want {
			t.Errorf("solves{%s,%s} = %v, want %v", tt.solver, tt.result, got, tt.want)
		}
	}
}

func TestCacheMetrics(t *testing.T) {
	ctx := context.Background()
	h := New(prometheus.NewRegistry())

	h.OnCacheMiss(ctx, "solution")
	h.OnCacheSet(ctx, "solution", 100)
	h.OnCacheHit(ctx, "solution")
	h.OnCacheHit(ctx, "solution")

	if got := testutil.ToFloat64(h.cacheOps.WithLabelValues("solution", "hit")); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(h.cacheBytes); got != 100 {
		t.Errorf("bytes = %v, want 100", got)
	}
}

func TestHandler(t *testing.T) {
	h := New(prometheus.NewRegistry())
	h.OnRequest(context.Background(), "POST", "/v1/solve", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{
		`gamesolver_http_requests_total{method="POST",route="/v1/solve",status="200"} 1`,
		"gamesolver_solves_in_flight 0",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
