package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gamesolver/pkg/arena"
	"github.com/matzehuels/gamesolver/pkg/buildinfo"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
	gio "github.com/matzehuels/gamesolver/pkg/io"
	"github.com/matzehuels/gamesolver/pkg/pipeline"
	"github.com/matzehuels/gamesolver/pkg/store"
)

// SolveRequest is the body of POST /v1/solve. Arena holds the game in the
// text format or as a JSON graph document; the remaining fields are
// pipeline options.
type SolveRequest struct {
	Arena json.RawMessage `json:"arena"`
	pipeline.Options
}

// SolveResponse is the body of a successful solve.
type SolveResponse struct {
	RecordID  string            `json:"record_id,omitempty"`
	ArenaHash string            `json:"arena_hash"`
	Nodes     int               `json:"nodes"`
	Edges     int               `json:"edges"`
	Cached    bool              `json:"cached"`
	Duration  string            `json:"duration"`
	Solution  gio.SolutionDoc   `json:"solution"`
	Artifacts map[string][]byte `json:"artifacts,omitempty"` // base64 in JSON
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleSolvers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"solvers": pipeline.SolverNames()})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		s.writeError(w, gerr.Wrap(gerr.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	a, err := decodeArena(req.Arena)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := gerr.ValidateArenaSize(a.Len(), s.maxNodes); err != nil {
		s.writeError(w, err)
		return
	}

	if req.Solver == "" {
		req.Solver = pipeline.DefaultSolver
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	res, err := s.runner.Execute(ctx, a, req.Options)
	if err != nil {
		if ctx.Err() != nil {
			err = gerr.Wrap(gerr.ErrCodeTimeout, err, "solve exceeded %s", s.timeout)
		}
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SolveResponse{
		RecordID:  res.RecordID,
		ArenaHash: res.ArenaHash,
		Nodes:     res.Stats.NodeCount,
		Edges:     res.Stats.EdgeCount,
		Cached:    res.CacheInfo.SolveHit,
		Duration:  res.Stats.SolveTime.Round(time.Microsecond).String(),
		Solution:  gio.NewSolutionDoc(req.Solver, res.Solution),
		Artifacts: res.Artifacts,
	})
}

// decodeArena accepts either a JSON string holding the text format or a
// JSON graph object.
func decodeArena(raw json.RawMessage) (*arena.Arena, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, gerr.New(gerr.ErrCodeInvalidInput, "arena is required")
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return pipeline.DecodeArena([]byte(text))
	}
	return pipeline.DecodeArena(raw)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		s.writeError(w, gerr.New(gerr.ErrCodeNotFound, "records are disabled"))
		return
	}
	id := chi.URLParam(r, "id")
	if err := gerr.ValidateRecordID(id); err != nil {
		s.writeError(w, err)
		return
	}
	rec, err := s.runner.Store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		s.writeError(w, gerr.New(gerr.ErrCodeNotFound, "records are disabled"))
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, gerr.New(gerr.ErrCodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}
	recs, err := s.runner.Store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": recs})
}

// =============================================================================
// Responses
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps an error to an HTTP status by its code.
func statusFor(err error) int {
	switch {
	case gerr.Is(err, gerr.ErrCodeNotFound):
		return http.StatusNotFound
	case gerr.Is(err, gerr.ErrCodeTimeout):
		return http.StatusGatewayTimeout
	case gerr.IsInputError(err):
		return http.StatusBadRequest
	case gerr.Is(err, gerr.ErrCodeUnsupported):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error: gerr.UserMessage(err),
		Code:  string(gerr.GetCode(err)),
	})
}
