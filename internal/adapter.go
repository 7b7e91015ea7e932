package internal

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pagefold/inertia/pkg/flash"
	"github.com/pagefold/inertia/pkg/logger"
)

// Adapter bridges server-side handlers and the Inertia client. It is
// configured once at startup and is safe for concurrent use: everything
// request-scoped (history flags, per-request shared props) travels in the
// request context, and the shared registries are read through snapshots.
type Adapter struct {
	logger         *slog.Logger
	flash          flash.Store
	version        func() string
	auth           func(r *http.Request) any
	rootLayout     RootLayout
	reg            *registry
	containerID    string
	encryptHistory bool
}

// New creates an Adapter with the given options.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		logger:      logger.NewNope(),
		version:     func() string { return "" },
		reg:         newRegistry(),
		containerID: "app",
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rootLayout == nil {
		a.rootLayout = DefaultRootLayout(a.containerID)
	}
	return a
}

// Share registers a prop sent with every response.
func (a *Adapter) Share(key string, value any) {
	a.reg.share(key, value)
}

// Compose registers a composer run before the named component renders.
// Use ComposerWildcard to run for every component. Exact-name composers
// run first.
func (a *Adapter) Compose(component string, fn ComposerFunc) {
	a.reg.compose(component, fn)
}

// Flush clears all shared props and composers. Intended for test isolation.
func (a *Adapter) Flush() {
	a.reg.flush()
}

// Version returns the current asset version.
func (a *Adapter) Version() string {
	return a.version()
}

// Render resolves the prop bag against the request's protocol intent and
// writes the page: JSON for Inertia requests, an HTML document embedding
// the page object otherwise. A stale asset version on a GET short-circuits
// to a 409 pointing the client back at the same URL for a full reload.
//
// Prop computation errors are returned before anything is written; the
// surrounding handler or middleware owns the 5xx response.
func (a *Adapter) Render(w http.ResponseWriter, r *http.Request, component string, props Props) error {
	if component == "" {
		return ErrEmptyComponent
	}

	intent := ParseIntent(r, component)

	if a.staleVersion(r, intent) {
		a.logger.DebugContext(r.Context(), "asset version mismatch",
			slog.String("client", intent.Version),
			slog.String("server", a.Version()),
		)
		a.Location(w, r, requestURL(r))
		return nil
	}

	bag := a.buildBag(w, r, component, props, intent)

	meta := ExtractMetadata(bag)
	resolved, err := ResolveProps(bag, intent)
	if err != nil {
		return err
	}

	page := newPage(component, resolved, meta, intent,
		requestURL(r), a.Version(),
		encryptHistoryFrom(r.Context(), a.encryptHistory),
		clearHistoryFrom(r.Context()),
	)

	if intent.IsInertia {
		return a.renderJSON(w, page)
	}
	return a.renderHTML(w, r, page)
}

// staleVersion reports whether the client's cached assets are outdated.
// Only GET requests are checked: a mismatch on a mutation must not discard
// the in-flight change.
func (a *Adapter) staleVersion(r *http.Request, intent Intent) bool {
	return intent.IsInertia &&
		r.Method == http.MethodGet &&
		intent.Version != "" &&
		intent.Version != a.Version()
}

// buildBag merges, in precedence order (later wins): the base set pulled
// from the flash store and auth resolver, adapter-wide shared props,
// per-request shared props, composer output, and the call-site props.
func (a *Adapter) buildBag(w http.ResponseWriter, r *http.Request, component string, props Props, intent Intent) Props {
	bag := make(Props, len(props)+4)

	// Prefetch responses must not consume flash data: the messages belong
	// to the navigation the user actually performs.
	if a.flash != nil && !intent.IsPrefetch {
		data, err := a.flash.Pull(w, r)
		switch {
		case err == nil:
			if len(data.Errors) > 0 {
				bag[PropErrors] = data.Errors
			}
			if len(data.Messages) > 0 {
				bag[PropFlash] = data.Messages
			}
		case !errors.Is(err, flash.ErrEmpty):
			a.logger.ErrorContext(r.Context(), "flash pull failed", slog.String("error", err.Error()))
		}
	}

	if a.auth != nil {
		// Wrapped so the resolver runs only when the policy includes it.
		bag["auth"] = func() any { return a.auth(r) }
	}

	for k, v := range a.reg.sharedProps() {
		bag[k] = v
	}
	for k, v := range sharedPropsFrom(r.Context()) {
		bag[k] = v
	}

	for _, fn := range a.reg.composersFor(component) {
		fn(r, bag)
	}

	for k, v := range props {
		bag[k] = v
	}

	return bag
}

// FlashErrors stores validation errors for the next render, where they
// surface as the reserved "errors" prop. Call before redirecting back.
func (a *Adapter) FlashErrors(w http.ResponseWriter, r *http.Request, errs map[string]string) error {
	if a.flash == nil {
		return flash.ErrNotConfigured
	}
	return a.flash.Flash(w, r, flash.Data{Errors: errs})
}

// FlashMessage stores a one-time notification for the next render, where
// it surfaces in the reserved "flash" prop.
func (a *Adapter) FlashMessage(w http.ResponseWriter, r *http.Request, level, text string) error {
	if a.flash == nil {
		return flash.ErrNotConfigured
	}
	return a.flash.Flash(w, r, flash.Data{Messages: []flash.Message{{Level: level, Text: text}}})
}
