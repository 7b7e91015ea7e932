package internal

import (
	"fmt"
	"time"
)

// Props is the bag of values a component receives. Values may be raw data,
// zero-argument computations (func() any or func() (any, error)), or *Prop
// wrappers carrying a lifecycle policy.
type Props map[string]any

// Kind identifies a Prop's lifecycle policy.
type Kind uint8

const (
	// KindPlain is a raw value resolved on every response.
	KindPlain Kind = iota

	// KindAlways is resolved on every response and bypasses partial filters.
	KindAlways

	// KindOptional (historically "lazy") is omitted from the initial load
	// and resolved only when explicitly requested via a partial reload.
	KindOptional

	// KindDeferred is omitted from the initial load and fetched by the
	// client in a follow-up partial reload, optionally batched by group.
	KindDeferred

	// KindMerge is resolved normally; its value is combined client-side
	// with previously held data instead of replacing it.
	KindMerge

	// KindOnce is cached client-side under a cache key after first receipt
	// and not re-sent while the client still holds it.
	KindOnce
)

// MergeStrategy tells the client how to combine a merge prop's new value
// with data it already holds.
type MergeStrategy string

const (
	StrategyAppend  MergeStrategy = "append"
	StrategyPrepend MergeStrategy = "prepend"
	StrategyDeep    MergeStrategy = "deep"
)

// MergeConfig carries the client-side merge instructions for a prop.
// MatchKeys lists object keys used to match existing items instead of
// blindly appending.
type MergeConfig struct {
	Strategy  MergeStrategy
	MatchKeys []string
}

// Prop wraps a value with a resolution policy. Construct one with Always,
// Optional, Defer, Merge, DeepMerge, or Once, then layer secondary behavior
// with the chained modifiers. A Prop's kind is fixed at construction; only
// modifiers may attach extra behavior.
//
// The wrapped value may be raw data, a func() any, or a func() (any, error).
// The resolution engine invokes the computation at most once per response.
type Prop struct {
	value     any
	expiresAt *time.Time
	merge     *MergeConfig
	kind      Kind
	group     string
	cacheKey  string
	fresh     bool
	once      bool
}

// Always returns a prop resolved on every response, including partial
// reloads that did not ask for it. Use for cross-cutting data the client
// depends on unconditionally.
func Always(value any) *Prop {
	return &Prop{kind: KindAlways, value: value}
}

// Optional returns a prop excluded from the initial page load and resolved
// only when a partial reload requests it.
func Optional(value any) *Prop {
	return &Prop{kind: KindOptional, value: value}
}

// Lazy is an alias for Optional kept for familiarity with older adapters.
func Lazy(value any) *Prop {
	return Optional(value)
}

// Defer returns a prop excluded from the initial page load and fetched by
// the client immediately after first render. Props sharing a group are
// fetched in one follow-up request; the group defaults to "default".
func Defer(value any, group ...string) *Prop {
	g := "default"
	if len(group) > 0 && group[0] != "" {
		g = group[0]
	}
	return &Prop{kind: KindDeferred, value: value, group: g}
}

// Merge returns a prop whose value the client appends to previously held
// data instead of replacing it. Use for infinite scroll and feed patterns.
func Merge(value any) *Prop {
	return &Prop{kind: KindMerge, value: value, merge: &MergeConfig{Strategy: StrategyAppend}}
}

// DeepMerge returns a prop whose value the client merges recursively into
// previously held data.
func DeepMerge(value any) *Prop {
	return &Prop{kind: KindMerge, value: value, merge: &MergeConfig{Strategy: StrategyDeep}}
}

// Once returns a prop the client caches after first receipt and will not
// re-request while it still holds it. The cache key defaults to the prop
// name; set a custom key with As to share the cached value across
// components.
func Once(value any) *Prop {
	return &Prop{kind: KindOnce, value: value}
}

// Once layers client-side caching onto an Optional, Deferred, or Merge
// prop. On a KindOnce prop it is a no-op.
func (p *Prop) Once() *Prop {
	p.once = true
	return p
}

// Fresh forces a once-cached prop to be re-sent even when the client
// reports holding it.
func (p *Prop) Fresh() *Prop {
	p.fresh = true
	return p
}

// As sets a custom cache key for a once-cached prop, allowing the cached
// value to be shared across different components.
func (p *Prop) As(key string) *Prop {
	p.cacheKey = key
	return p
}

// Until sets an expiration for a once-cached prop. The client re-requests
// the prop after the deadline passes.
func (p *Prop) Until(t time.Time) *Prop {
	p.expiresAt = &t
	return p
}

// MatchOn sets the object keys the client uses to match existing items
// when merging, replacing matches in place instead of appending.
func (p *Prop) MatchOn(keys ...string) *Prop {
	if p.merge == nil {
		p.merge = &MergeConfig{Strategy: StrategyAppend}
	}
	p.merge.MatchKeys = append(p.merge.MatchKeys, keys...)
	return p
}

// Append sets the append merge strategy. On a Deferred prop this attaches
// merge behavior, turning a deferred load into a deferred-then-merge.
func (p *Prop) Append() *Prop {
	return p.withStrategy(StrategyAppend)
}

// Prepend sets the prepend merge strategy.
func (p *Prop) Prepend() *Prop {
	return p.withStrategy(StrategyPrepend)
}

// Merge attaches append-merge behavior to a Deferred prop: the value is
// deferred on first load and merged client-side when it arrives.
func (p *Prop) Merge() *Prop {
	return p.withStrategy(StrategyAppend)
}

// DeepMerge attaches deep-merge behavior to a Deferred prop.
func (p *Prop) DeepMerge() *Prop {
	return p.withStrategy(StrategyDeep)
}

func (p *Prop) withStrategy(s MergeStrategy) *Prop {
	if p.merge == nil {
		p.merge = &MergeConfig{}
	}
	p.merge.Strategy = s
	return p
}

// Kind returns the prop's lifecycle kind.
func (p *Prop) Kind() Kind { return p.kind }

// Group returns the deferred group name. Empty for non-deferred props.
func (p *Prop) Group() string { return p.group }

// MergeConfig returns the attached merge instructions, or nil.
func (p *Prop) MergeConfig() *MergeConfig { return p.merge }

// IsOnce reports whether the prop participates in client-side once
// caching, either as a KindOnce prop or via the Once modifier.
func (p *Prop) IsOnce() bool { return p.kind == KindOnce || p.once }

// IsFresh reports whether the prop bypasses the client's once cache.
func (p *Prop) IsFresh() bool { return p.fresh }

// ExpiresAt returns the once-cache expiration, or nil.
func (p *Prop) ExpiresAt() *time.Time { return p.expiresAt }

// CacheKey returns the once-cache key: the custom key set with As, or the
// given prop name.
func (p *Prop) CacheKey(name string) string {
	if p.cacheKey != "" {
		return p.cacheKey
	}
	return name
}

// Resolve invokes the wrapped computation and returns its value. Callers
// must invoke Resolve at most once per response: computations are not
// required to be idempotent.
func (p *Prop) Resolve() (any, error) {
	return resolveValue(p.value)
}

// resolveValue invokes computation-typed values and passes everything else
// through untouched.
func resolveValue(v any) (any, error) {
	switch fn := v.(type) {
	case func() any:
		return fn(), nil
	case func() (any, error):
		return fn()
	case func() error:
		// A bare error-returning computation carries no value; surface the
		// error and send nothing.
		return nil, fn()
	default:
		return v, nil
	}
}

// String returns a debug representation of the prop's kind.
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindAlways:
		return "always"
	case KindOptional:
		return "optional"
	case KindDeferred:
		return "deferred"
	case KindMerge:
		return "merge"
	case KindOnce:
		return "once"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}
