package cache

// ScopedKeyer wraps a Keyer with a prefix so entries written by different
// program versions or configurations never collide.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
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

// ArtifactKey generates a prefixed key for diagram artifacts.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}

// OverviewKey generates a prefixed key for overview artifacts.
func (k *ScopedKeyer) OverviewKey(dotHash string, opts OverviewKeyOpts) string {
	return k.prefix + k.inner.OverviewKey(dotHash, opts)
}
