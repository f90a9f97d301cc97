package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of parts. Each part is length-prefixed, so
// Hash(a, b) differs from Hash(a+b).
func Hash(parts ...[]byte) string {
	h := sha256.New()
	var n [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// hashKey returns "kind:" followed by the hash of the JSON of parts.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}

// SolutionKeyOpts are the solver settings that affect a solution.
type SolutionKeyOpts struct {
	Solver    string `json:"solver"`
	Target    []int  `json:"target,omitempty"`
	Player    int    `json:"player,omitempty"`
	Compress  bool   `json:"compress,omitempty"`
	MaxStates int    `json:"max_states,omitempty"`
}

// RenderKeyOpts are the diagram settings that affect a rendered artifact.
type RenderKeyOpts struct {
	Format         string `json:"format"`
	Title          string `json:"title,omitempty"`
	HideStrategies bool   `json:"hide_strategies,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// SolutionKey returns the key of a solution of the arena with the given
	// content hash.
	SolutionKey(arenaHash string, opts SolutionKeyOpts) string

	// RenderKey returns the key of a rendered diagram of a solution.
	RenderKey(solutionHash string, opts RenderKeyOpts) string
}

// DefaultKeyer hashes its inputs into "solution:<sha256>" and
// "render:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SolutionKey implements [Keyer].
func (DefaultKeyer) SolutionKey(arenaHash string, opts SolutionKeyOpts) string {
	return hashKey("solution", arenaHash, opts)
}

// RenderKey implements [Keyer].
func (DefaultKeyer) RenderKey(solutionHash string, opts RenderKeyOpts) string {
	return hashKey("render", solutionHash, opts)
}
