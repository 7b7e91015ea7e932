package internal

import (
	"log/slog"
	"net/http"

	"github.com/pagefold/inertia/pkg/flash"
)

// Option configures the Adapter.
type Option func(*Adapter)

// WithVersion sets a fixed asset version.
func WithVersion(v string) Option {
	return func(a *Adapter) {
		a.version = func() string { return v }
	}
}

// WithVersionResolver sets a dynamic asset version source, e.g. a build
// manifest fingerprint. See the version package.
func WithVersionResolver(fn func() string) Option {
	return func(a *Adapter) {
		if fn != nil {
			a.version = fn
		}
	}
}

// WithLogger sets the adapter logger. Logging is disabled by default.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithFlashStore sets the store carrying validation errors and one-time
// messages across redirects. Without one, the reserved errors and flash
// props are never populated and FlashErrors returns ErrNotConfigured.
func WithFlashStore(s flash.Store) Option {
	return func(a *Adapter) {
		a.flash = s
	}
}

// WithAuthResolver sets the function producing the base "auth" prop. It
// runs once per response, and only when the resolution policy includes
// the prop.
func WithAuthResolver(fn func(r *http.Request) any) Option {
	return func(a *Adapter) {
		a.auth = fn
	}
}

// WithRootLayout replaces the default HTML document shell for non-Inertia
// responses. The layout receives the page JSON and must embed it, HTML
// attribute escaped, in the client's root element.
func WithRootLayout(layout RootLayout) Option {
	return func(a *Adapter) {
		if layout != nil {
			a.rootLayout = layout
		}
	}
}

// WithContainerID sets the root element id used by the default layout.
// Defaults to "app".
func WithContainerID(id string) Option {
	return func(a *Adapter) {
		if id != "" {
			a.containerID = id
		}
	}
}

// WithEncryptHistory makes history encryption the default for every
// response; individual requests can still override via the context
// helpers.
func WithEncryptHistory() Option {
	return func(a *Adapter) {
		a.encryptHistory = true
	}
}
