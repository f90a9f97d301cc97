package solver

import "github.com/matzehuels/gamesolver/pkg/arena"

// Option configures a parity solver.
type Option func(*config)

type config struct {
	compress bool
}

// WithCompression renumbers priorities with [arena.Arena.CompressPriorities]
// before solving. Regions are unaffected; strategies may differ.
func WithCompression() Option {
	return func(c *config) { c.compress = true }
}

func newConfig(opts []Option) config {
	var c config
	for _, o := range opts {
		o(&c)
	}
	return c
}

// prepare validates a and applies the configured preprocessing.
func (c config) prepare(a *arena.Arena) (*arena.Arena, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if c.compress {
		return a.CompressPriorities(), nil
	}
	return a, nil
}
