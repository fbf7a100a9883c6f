package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tenants or
// environments can share one cache backend.
//
// Example usage:
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

// MatrixKey generates a prefixed key for matrix caching.
func (k *ScopedKeyer) MatrixKey(defHash string) string {
	return k.prefix + k.inner.MatrixKey(defHash)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(defHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(defHash, opts)
}
