package inertia

import (
	"context"
	"time"

	"github.com/pagefold/inertia/internal"
)

// Type aliases - public API
type (
	// Adapter bridges server-side handlers and the Inertia client.
	Adapter = internal.Adapter

	// Props is the bag of values a component receives.
	Props = internal.Props

	// Prop wraps a value with a resolution policy.
	Prop = internal.Prop

	// Kind identifies a Prop's lifecycle policy.
	Kind = internal.Kind

	// MergeStrategy tells the client how to combine merged prop values.
	MergeStrategy = internal.MergeStrategy

	// MergeConfig carries client-side merge instructions.
	MergeConfig = internal.MergeConfig

	// Page is the payload serialized across the wire.
	Page = internal.Page

	// OncePropEntry describes a once-cached prop in the page payload.
	OncePropEntry = internal.OncePropEntry

	// Metadata is the protocol-level description of a prop bag.
	Metadata = internal.Metadata

	// Intent is the parsed protocol state of a request.
	Intent = internal.Intent

	// Set is an unordered collection of prop names.
	Set = internal.Set

	// ComposerFunc injects props before a component renders.
	ComposerFunc = internal.ComposerFunc

	// RootLayout renders the HTML document for non-Inertia requests.
	RootLayout = internal.RootLayout

	// Option configures the Adapter.
	Option = internal.Option
)

// Prop lifecycle kinds.
const (
	KindPlain    = internal.KindPlain
	KindAlways   = internal.KindAlways
	KindOptional = internal.KindOptional
	KindDeferred = internal.KindDeferred
	KindMerge    = internal.KindMerge
	KindOnce     = internal.KindOnce
)

// Merge strategies.
const (
	StrategyAppend  = internal.StrategyAppend
	StrategyPrepend = internal.StrategyPrepend
	StrategyDeep    = internal.StrategyDeep
)

// ComposerWildcard registers a composer for every component.
const ComposerWildcard = internal.ComposerWildcard

// Reserved prop names that bypass partial-reload filtering.
const (
	PropErrors = internal.PropErrors
	PropFlash  = internal.PropFlash
)

// Errors.
var ErrEmptyComponent = internal.ErrEmptyComponent

// New creates an Adapter with the given options.
//
// Example:
//
//	i := inertia.New(
//	    inertia.WithVersionResolver(version.Manifest("public/build/manifest.json")),
//	    inertia.WithFlashStore(flash.NewCookieStore(cm)),
//	    inertia.WithLogger(log),
//	)
//
//	func show(w http.ResponseWriter, r *http.Request) {
//	    err := i.Render(w, r, "Users/Show", inertia.Props{
//	        "user":  user,
//	        "stats": inertia.Defer(loadStats),
//	    })
//	    ...
//	}
func New(opts ...Option) *Adapter {
	return internal.New(opts...)
}

// Prop constructors

// Always returns a prop resolved on every response, bypassing partial
// filters.
func Always(value any) *Prop { return internal.Always(value) }

// Optional returns a prop excluded from the initial load and resolved only
// when a partial reload requests it.
func Optional(value any) *Prop { return internal.Optional(value) }

// Lazy is an alias for Optional kept for familiarity with older adapters.
func Lazy(value any) *Prop { return internal.Lazy(value) }

// Defer returns a prop fetched by the client right after first render,
// optionally batched into a named group.
func Defer(value any, group ...string) *Prop { return internal.Defer(value, group...) }

// Merge returns a prop the client appends to previously held data.
func Merge(value any) *Prop { return internal.Merge(value) }

// DeepMerge returns a prop the client merges recursively into previously
// held data.
func DeepMerge(value any) *Prop { return internal.DeepMerge(value) }

// Once returns a prop the client caches and will not re-request while it
// holds it.
func Once(value any) *Prop { return internal.Once(value) }

// Request helpers

// IsInertia reports whether the request was made by the Inertia client.
var IsInertia = internal.IsInertia

// Root returns the root element carrying the escaped page JSON, for use
// inside custom layouts.
var Root = internal.Root

// EncryptHistory marks the current response's history entry for
// client-side encryption. Pass the returned context back into the request:
//
//	r = r.WithContext(inertia.EncryptHistory(r.Context()))
func EncryptHistory(ctx context.Context) context.Context {
	return internal.SetEncryptHistory(ctx)
}

// ClearHistory instructs the client to wipe its encrypted history state,
// typically on logout.
func ClearHistory(ctx context.Context) context.Context {
	return internal.SetClearHistory(ctx)
}

// ShareProp attaches a prop to the current request only.
func ShareProp(ctx context.Context, key string, value any) context.Context {
	return internal.ShareProp(ctx, key, value)
}

// Expires is a convenience for Prop.Until relative to now.
func Expires(d time.Duration) time.Time {
	return time.Now().Add(d)
}
