package cache

// ScopedKeyer wraps a Keyer with a prefix. Several deployments sharing one
// Redis instance each get their own namespace this way, and
// RedisCache.Clear only touches keys under it.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "hubrank:")
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

// RankingKey generates a prefixed ranking key.
func (k *ScopedKeyer) RankingKey(opts RankingKeyOpts) string {
	return k.prefix + k.inner.RankingKey(opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}
