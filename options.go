package inertia

import (
	"log/slog"
	"net/http"

	"github.com/pagefold/inertia/internal"
	"github.com/pagefold/inertia/pkg/flash"
)

// WithVersion sets a fixed asset version.
func WithVersion(v string) Option {
	return internal.WithVersion(v)
}

// WithVersionResolver sets a dynamic asset version source, e.g.
// version.Manifest("public/build/manifest.json").
func WithVersionResolver(fn func() string) Option {
	return internal.WithVersionResolver(fn)
}

// WithLogger sets the adapter logger. Logging is disabled by default.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithFlashStore sets the store carrying validation errors and one-time
// messages across redirects.
func WithFlashStore(s flash.Store) Option {
	return internal.WithFlashStore(s)
}

// WithAuthResolver sets the function producing the base "auth" prop.
func WithAuthResolver(fn func(r *http.Request) any) Option {
	return internal.WithAuthResolver(fn)
}

// WithRootLayout replaces the default HTML document shell for non-Inertia
// responses.
func WithRootLayout(layout RootLayout) Option {
	return internal.WithRootLayout(layout)
}

// WithContainerID sets the root element id used by the default layout.
// Defaults to "app".
func WithContainerID(id string) Option {
	return internal.WithContainerID(id)
}

// WithEncryptHistory makes history encryption the default for every
// response.
func WithEncryptHistory() Option {
	return internal.WithEncryptHistory()
}
