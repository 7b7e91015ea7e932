package internal

import "sort"

// OncePropEntry describes a once-cached prop in the page payload: which
// prop fills the cache slot and when the client should consider it stale.
type OncePropEntry struct {
	Prop      string `json:"prop"`
	ExpiresAt *int64 `json:"expiresAt"`
}

// Metadata is the protocol-level description of a prop bag: which props
// are deferred and into which groups, which merge and how, and which
// participate in once caching. Derived without resolving any value.
type Metadata struct {
	DeferredProps  map[string][]string
	OnceProps      map[string]OncePropEntry
	MergeProps     []string
	PrependProps   []string
	DeepMergeProps []string
	MatchPropsOn   []string
}

// ExtractMetadata scans the bag and derives its protocol metadata. Props
// are visited in sorted name order so the output is byte-stable across
// renders. No computation is invoked.
func ExtractMetadata(props Props) Metadata {
	meta := Metadata{
		DeferredProps: make(map[string][]string),
		OnceProps:     make(map[string]OncePropEntry),
	}

	for _, name := range sortedKeys(props) {
		p, ok := props[name].(*Prop)
		if !ok {
			continue
		}

		switch p.Kind() {
		case KindDeferred:
			meta.DeferredProps[p.Group()] = append(meta.DeferredProps[p.Group()], name)
			meta.recordMerge(name, p.MergeConfig())
			if p.once {
				meta.recordOnce(name, p)
			}
		case KindMerge:
			meta.recordMerge(name, p.MergeConfig())
			if p.once {
				meta.recordOnce(name, p)
			}
		case KindOptional:
			if p.once {
				meta.recordOnce(name, p)
			}
		case KindOnce:
			meta.recordOnce(name, p)
		}
	}

	if len(meta.DeferredProps) == 0 {
		meta.DeferredProps = nil
	}
	if len(meta.OnceProps) == 0 {
		meta.OnceProps = nil
	}
	return meta
}

// recordMerge files a prop under the list matching its merge strategy and
// records any match keys as "name.key" entries.
func (m *Metadata) recordMerge(name string, cfg *MergeConfig) {
	if cfg == nil {
		return
	}
	switch cfg.Strategy {
	case StrategyPrepend:
		m.PrependProps = append(m.PrependProps, name)
	case StrategyDeep:
		m.DeepMergeProps = append(m.DeepMergeProps, name)
	default:
		m.MergeProps = append(m.MergeProps, name)
	}
	for _, key := range cfg.MatchKeys {
		m.MatchPropsOn = append(m.MatchPropsOn, name+"."+key)
	}
}

// recordOnce registers the prop's once-cache entry; a Deferred or Optional
// prop flagged with the Once modifier carries no expiration.
func (m *Metadata) recordOnce(name string, p *Prop) {
	entry := OncePropEntry{Prop: name}
	if t := p.ExpiresAt(); t != nil {
		ms := t.UnixMilli()
		entry.ExpiresAt = &ms
	}
	m.OnceProps[p.CacheKey(name)] = entry
}

// sortedKeys returns the bag's prop names in ascending order.
func sortedKeys(props Props) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
