// Package store persists solve records.
//
// A [Record] captures one solver run: which solver ran on which arena (by
// content hash), the size of the arena, how long the solve took and the
// serialized solution. Records are written by the pipeline after every
// solve and served back by the HTTP API.
//
// Backends:
//   - [FileStore]: one JSON file per record, for the CLI
//   - [MongoStore]: a MongoDB collection, for server deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gamesolver/pkg/arena"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
	gio "github.com/matzehuels/gamesolver/pkg/io"
)

// ErrNotFound is returned by Get when no record has the requested ID.
var ErrNotFound = errors.New("record not found")

// Record is one persisted solver run.
type Record struct {
	ID        string          `json:"id" bson:"_id"`
	Solver    string          `json:"solver" bson:"solver"`
	ArenaHash string          `json:"arena_hash" bson:"arena_hash"`
	Nodes     int             `json:"nodes" bson:"nodes"`
	Edges     int             `json:"edges" bson:"edges"`
	W0        int             `json:"w0" bson:"w0"`
	W1        int             `json:"w1" bson:"w1"`
	Duration  time.Duration   `json:"duration" bson:"duration"`
	Cached    bool            `json:"cached,omitempty" bson:"cached,omitempty"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	Solution  gio.SolutionDoc `json:"solution" bson:"solution"`
}

// NewRecord builds a record with a fresh ID for a solution of a.
func NewRecord(solver, arenaHash string, a *arena.Arena, sol *arena.Solution, d time.Duration) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Solver:    solver,
		ArenaHash: arenaHash,
		Nodes:     a.Len(),
		Edges:     a.EdgeCount(),
		W0:        len(sol.Regions[0]),
		W1:        len(sol.Regions[1]),
		Duration:  d,
		CreatedAt: time.Now().UTC(),
		Solution:  gio.NewSolutionDoc(solver, sol),
	}
}

// Store is the interface for record storage backends.
type Store interface {
	// Put inserts or replaces a record.
	Put(ctx context.Context, r *Record) error

	// Get returns the record with the given ID. A missing record yields an
	// error with code NOT_FOUND wrapping [ErrNotFound].
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first. A limit of zero or
	// less returns every record.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	Close() error
}

// ValidID reports whether id is a well-formed record ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFound(id string) error {
	return gerr.Wrap(gerr.ErrCodeNotFound, ErrNotFound, "record %s", id)
}
