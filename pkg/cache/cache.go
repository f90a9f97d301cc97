// Package cache stores solver output between runs.
//
// A [Cache] is a byte-oriented key/value store with optional expiry. The
// pipeline serializes solutions to JSON and stores them under keys derived
// by a [Keyer] from the arena's content hash and the solver options, so a
// cached entry can only be reused for an identical arena solved the same
// way.
//
// Backends:
//   - [NullCache]: stores nothing, for --no-cache
//   - [FileCache]: JSON entries on disk, for the CLI
//   - [RedisCache]: shared cache for server deployments
package cache

import (
	"context"
	"time"
)

// Cache is the interface every backend implements.
type Cache interface {
	// Get returns the data stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Clearer is implemented by backends that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Default TTLs.
const (
	// SolutionTTL bounds how long a solution is reused. Solutions are pure
	// functions of their key, so this only limits disk or memory growth.
	SolutionTTL = 7 * 24 * time.Hour

	// RenderTTL bounds how long rendered diagrams are kept.
	RenderTTL = 24 * time.Hour
)

// NullCache never stores anything. It backs --no-cache.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
