package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments or
// users can share one backend without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "bench:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SolutionKey implements [Keyer].
func (k *ScopedKeyer) SolutionKey(arenaHash string, opts SolutionKeyOpts) string {
	return k.prefix + k.inner.SolutionKey(arenaHash, opts)
}

// RenderKey implements [Keyer].
func (k *ScopedKeyer) RenderKey(solutionHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(solutionHash, opts)
}
