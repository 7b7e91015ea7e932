package internal

import (
	"net/http"
	"strings"
)

// Request and response headers fixed by the Inertia protocol.
const (
	HeaderInertia          = "X-Inertia"
	HeaderVersion          = "X-Inertia-Version"
	HeaderLocation         = "X-Inertia-Location"
	HeaderPartialComponent = "X-Inertia-Partial-Component"
	HeaderPartialOnly      = "X-Inertia-Partial-Data"
	HeaderPartialExcept    = "X-Inertia-Partial-Except"
	HeaderExceptOnceProps  = "X-Inertia-Except-Once-Props"
	HeaderReset            = "X-Inertia-Reset"
	HeaderPurpose          = "Purpose"
)

// Set is an unordered collection of prop names.
type Set map[string]struct{}

// Has reports whether name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Empty reports whether the set has no entries.
func (s Set) Empty() bool { return len(s) == 0 }

// Intent is the parsed protocol state of a request: whether the client
// speaks Inertia, whether this is a partial reload of the rendered
// component, and which props it wants, excludes, or already holds.
// Derived once per request and immutable afterwards.
type Intent struct {
	Only       Set
	Except     Set
	ExceptOnce Set
	Reset      Set
	Version    string
	IsInertia  bool
	IsPartial  bool
	IsPrefetch bool
}

// ParseIntent decodes protocol headers against the component being
// rendered. A partial-component header naming a different component is
// ignored: the client's view is stale and the render must be treated as a
// full load. Malformed list headers degrade to empty sets.
func ParseIntent(r *http.Request, component string) Intent {
	h := r.Header
	return Intent{
		IsInertia:  h.Get(HeaderInertia) == "true",
		IsPartial:  h.Get(HeaderPartialComponent) != "" && h.Get(HeaderPartialComponent) == component,
		IsPrefetch: h.Get(HeaderPurpose) == "prefetch",
		Version:    h.Get(HeaderVersion),
		Only:       splitNameList(h.Get(HeaderPartialOnly)),
		Except:     splitNameList(h.Get(HeaderPartialExcept)),
		ExceptOnce: splitNameList(h.Get(HeaderExceptOnceProps)),
		Reset:      splitNameList(h.Get(HeaderReset)),
	}
}

// splitNameList parses a comma-separated header value into a set, dropping
// blank segments. Absent and empty headers both yield an empty set.
func splitNameList(value string) Set {
	if value == "" {
		return Set{}
	}
	set := make(Set)
	for _, part := range strings.Split(value, ",") {
		if name := strings.TrimSpace(part); name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}
