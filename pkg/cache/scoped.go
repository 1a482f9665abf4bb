package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one Redis instance without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// LatticeKey generates a prefixed key for assembled lattices.
func (k *ScopedKeyer) LatticeKey(pathsHash string) string {
	return k.prefix + k.inner.LatticeKey(pathsHash)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(latticeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(latticeHash, opts)
}

// CandidatesKey generates a prefixed key for candidate searches.
func (k *ScopedKeyer) CandidatesKey(opts CandidatesKeyOpts) string {
	return k.prefix + k.inner.CandidatesKey(opts)
}
