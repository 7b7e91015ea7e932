package internal

import (
	"net/http"
	"sync"
)

// ComposerWildcard registers a composer for every component.
const ComposerWildcard = "*"

// ComposerFunc injects props into the bag before a component renders.
// Composers for the exact component name run before wildcard composers.
type ComposerFunc func(r *http.Request, props Props)

// registry holds the adapter-wide shared props and component composers.
// Both are expected to be populated at startup and read per-request; the
// lock exists so tests and dynamic setups stay correct under concurrency.
type registry struct {
	mu        sync.RWMutex
	shared    Props
	composers map[string][]ComposerFunc
}

func newRegistry() *registry {
	return &registry{
		shared:    make(Props),
		composers: make(map[string][]ComposerFunc),
	}
}

// share registers a prop sent with every response.
func (rg *registry) share(key string, value any) {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	rg.shared[key] = value
}

// sharedProps returns a snapshot of the shared bag so a render pass never
// observes a concurrent mutation.
func (rg *registry) sharedProps() Props {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	snapshot := make(Props, len(rg.shared))
	for k, v := range rg.shared {
		snapshot[k] = v
	}
	return snapshot
}

// compose registers a composer for a component name, or for every
// component when the name is ComposerWildcard.
func (rg *registry) compose(component string, fn ComposerFunc) {
	if fn == nil {
		return
	}
	rg.mu.Lock()
	defer rg.mu.Unlock()
	rg.composers[component] = append(rg.composers[component], fn)
}

// composersFor returns the composers to run for a component: exact-name
// registrations first, then wildcard registrations, each in registration
// order.
func (rg *registry) composersFor(component string) []ComposerFunc {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	exact := rg.composers[component]
	wild := rg.composers[ComposerWildcard]
	out := make([]ComposerFunc, 0, len(exact)+len(wild))
	out = append(out, exact...)
	out = append(out, wild...)
	return out
}

// flush clears all shared props and composers. Intended for test isolation.
func (rg *registry) flush() {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	rg.shared = make(Props)
	rg.composers = make(map[string][]ComposerFunc)
}
