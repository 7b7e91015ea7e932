package internal

// Page is the payload serialized across the wire: the component to render,
// its resolved props, and the protocol metadata the client needs to manage
// partial reloads, merges, and caches. Metadata fields are emitted only
// when non-empty.
type Page struct {
	Component      string                   `json:"component"`
	Props          Props                    `json:"props"`
	URL            string                   `json:"url"`
	Version        string                   `json:"version"`
	EncryptHistory bool                     `json:"encryptHistory"`
	ClearHistory   bool                     `json:"clearHistory"`
	DeferredProps  map[string][]string      `json:"deferredProps,omitempty"`
	MergeProps     []string                 `json:"mergeProps,omitempty"`
	PrependProps   []string                 `json:"prependProps,omitempty"`
	DeepMergeProps []string                 `json:"deepMergeProps,omitempty"`
	MatchPropsOn   []string                 `json:"matchPropsOn,omitempty"`
	OnceProps      map[string]OncePropEntry `json:"onceProps,omitempty"`
}

// newPage assembles the payload from resolved props and extracted
// metadata. Deferred groups are advertised only outside partial reloads:
// the response fulfilling a deferred fetch must not instruct the client to
// fetch again.
func newPage(component string, props Props, meta Metadata, intent Intent, url, version string, encrypt, clear bool) Page {
	page := Page{
		Component:      component,
		Props:          props,
		URL:            url,
		Version:        version,
		EncryptHistory: encrypt,
		ClearHistory:   clear,
		MergeProps:     meta.MergeProps,
		PrependProps:   meta.PrependProps,
		DeepMergeProps: meta.DeepMergeProps,
		MatchPropsOn:   meta.MatchPropsOn,
		OnceProps:      meta.OnceProps,
	}
	if !intent.IsPartial {
		page.DeferredProps = meta.DeferredProps
	}
	return page
}
