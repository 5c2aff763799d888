package cache

// ScopedKeyer prefixes another keyer's keys with a namespace, so several
// dashboard teams can share one Redis or MongoDB cache. The CLI uses it
// when the config sets [cache] namespace.
type ScopedKeyer struct {
	inner     Keyer
	namespace string
}

// NewScopedKeyer returns a keyer whose keys read "<namespace>:<key>". A nil
// inner keyer means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, namespace string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, namespace: namespace}
}

func (k *ScopedKeyer) LayoutKey(layoutHash string, opts LayoutKeyOpts) string {
	return k.namespace + ":" + k.inner.LayoutKey(layoutHash, opts)
}

func (k *ScopedKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return k.namespace + ":" + k.inner.RenderKey(layoutHash, opts)
}
