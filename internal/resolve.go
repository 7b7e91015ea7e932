package internal

import (
	"errors"
	"fmt"
)

// Reserved prop names that bypass the partial-reload allowlist. The client
// depends on them unconditionally for validation messages and one-time
// notifications.
const (
	PropErrors = "errors"
	PropFlash  = "flash"
)

// ResolveProps applies the per-key inclusion policy and invokes each
// surviving prop's computation exactly once. Props are visited in sorted
// name order so computations with side effects run deterministically. The
// first computation error aborts resolution; nothing is emitted.
//
// Initial (non-Inertia) loads resolve everything except Deferred and
// Optional props, which are omitted entirely and fetched later. Inertia
// loads apply, in order: the partial except list (explicit exclusion wins
// over everything), the partial only allowlist (Always props and the
// reserved errors/flash names bypass it), then per-kind policy.
func ResolveProps(props Props, intent Intent) (Props, error) {
	resolved := make(Props, len(props))

	for _, name := range sortedKeys(props) {
		value := props[name]

		p, isProp := value.(*Prop)
		if !isProp {
			if !include(name, nil, intent) {
				continue
			}
			out, err := resolveNested(value)
			if err != nil {
				if errors.Is(err, errSkipNested) {
					continue
				}
				return nil, fmt.Errorf("inertia: resolve prop %q: %w", name, err)
			}
			resolved[name] = out
			continue
		}

		if !include(name, p, intent) {
			continue
		}

		out, err := p.Resolve()
		if err != nil {
			return nil, fmt.Errorf("inertia: resolve prop %q: %w", name, err)
		}
		out, err = resolveNested(out)
		if err != nil {
			if errors.Is(err, errSkipNested) {
				continue
			}
			return nil, fmt.Errorf("inertia: resolve prop %q: %w", name, err)
		}
		resolved[name] = out
	}

	return resolved, nil
}

// include is the policy matrix: it decides whether a single prop belongs
// in the response for the given intent. p is nil for raw values and plain
// computations.
func include(name string, p *Prop, intent Intent) bool {
	// Initial browser load: everything except Deferred/Optional.
	if !intent.IsInertia {
		if p == nil {
			return true
		}
		return p.Kind() != KindDeferred && p.Kind() != KindOptional
	}

	// Explicit exclusion wins over everything, including Always.
	if intent.IsPartial && intent.Except.Has(name) {
		return false
	}

	always := p != nil && p.Kind() == KindAlways
	reserved := name == PropErrors || name == PropFlash
	if intent.IsPartial && !intent.Only.Empty() && !intent.Only.Has(name) && !always && !reserved {
		return false
	}

	if p == nil {
		// Raw values and plain computations are always sent.
		return true
	}

	switch p.Kind() {
	case KindOnce:
		return !onceExcluded(name, p, intent)

	case KindDeferred, KindOptional:
		// Sent only by the targeted partial fetch; any other Inertia pass
		// (full navigation, mismatched partial component) drops them.
		if !intent.IsPartial {
			return false
		}
		if !intent.Only.Empty() && !intent.Only.Has(name) {
			return false
		}
		if p.IsOnce() && onceExcluded(name, p, intent) {
			return false
		}
		return true

	case KindMerge:
		if p.IsOnce() && onceExcluded(name, p, intent) {
			return false
		}
		return true

	case KindAlways:
		return true

	default:
		return true
	}
}

// onceExcluded reports whether the client already holds this prop's
// once-cache entry and nothing forces a re-send: the prop was not named in
// a non-empty only set, is not flagged fresh, and the client did not ask
// for a reset of the prop or its cache key.
func onceExcluded(name string, p *Prop, intent Intent) bool {
	key := p.CacheKey(name)
	if !intent.ExceptOnce.Has(key) {
		return false
	}
	if !intent.Only.Empty() && intent.Only.Has(name) {
		return false
	}
	if p.IsFresh() {
		return false
	}
	if intent.Reset.Has(name) || intent.Reset.Has(key) {
		return false
	}
	return true
}

// resolveNested walks maps and slices inside an already-included value,
// invoking nested computations and applying prop policy: nested Deferred
// and Optional props are dropped, nested Always/Merge/Once props are
// resolved in place.
func resolveNested(value any) (any, error) {
	switch v := value.(type) {
	case Props:
		return resolveNestedMap(v)
	case map[string]any:
		return resolveNestedMap(v)
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			r, err := resolveNested(item)
			if err != nil {
				if errors.Is(err, errSkipNested) {
					continue
				}
				return nil, err
			}
			out = append(out, r)
		}
		return out, nil
	case *Prop:
		if v.Kind() == KindDeferred || v.Kind() == KindOptional {
			return nil, errSkipNested
		}
		r, err := v.Resolve()
		if err != nil {
			return nil, err
		}
		return resolveNested(r)
	case func() any, func() (any, error), func() error:
		r, err := resolveValue(v)
		if err != nil {
			return nil, err
		}
		return resolveNested(r)
	default:
		return value, nil
	}
}

func resolveNestedMap(m map[string]any) (any, error) {
	out := make(map[string]any, len(m))
	for k, item := range m {
		r, err := resolveNested(item)
		if err != nil {
			if errors.Is(err, errSkipNested) {
				continue
			}
			return nil, err
		}
		out[k] = r
	}
	return out, nil
}
