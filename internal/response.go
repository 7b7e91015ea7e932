package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// RootLayout renders the HTML document for non-Inertia requests. It
// receives the page object as a JSON string and must embed it, HTML
// attribute escaped, in the element the client boots from.
type RootLayout func(pageJSON string) templ.Component

// IsInertia reports whether the request was made by the Inertia client.
func IsInertia(r *http.Request) bool {
	return r.Header.Get(HeaderInertia) == "true"
}

// renderJSON writes the page payload for an Inertia request. The payload
// is marshaled before any byte is written so a failure emits nothing.
func (a *Adapter) renderJSON(w http.ResponseWriter, page Page) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("inertia: marshal page: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(HeaderInertia, "true")
	addVary(w.Header())
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(data)
	return err
}

// renderHTML writes the full document for a browser request, embedding the
// page object in the root element via the configured layout.
func (a *Adapter) renderHTML(w http.ResponseWriter, r *http.Request, page Page) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("inertia: marshal page: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	addVary(w.Header())
	return a.rootLayout(string(data)).Render(r.Context(), w)
}

// addVary records that the response varies on X-Inertia, unless an outer
// layer (typically the protocol middleware) already did.
func addVary(h http.Header) {
	for _, v := range h.Values("Vary") {
		for _, part := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(part), HeaderInertia) {
				return
			}
		}
	}
	h.Add("Vary", HeaderInertia)
}

// Root returns the element the client boots from: a div carrying the
// escaped page JSON in its data-page attribute. Custom layouts embed it
// wherever the application shell wants the SPA mounted.
func Root(containerID, pageJSON string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<div id="`+html.EscapeString(containerID)+`" data-page="`+html.EscapeString(pageJSON)+`"></div>`)
		return err
	})
}

// DefaultRootLayout returns a minimal document shell: a head with viewport
// meta and the root element. Applications replace it via WithRootLayout to
// add asset tags and their own markup.
func DefaultRootLayout(containerID string) RootLayout {
	return func(pageJSON string) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if _, err := io.WriteString(w, `<!DOCTYPE html><html><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"></head><body>`); err != nil {
				return err
			}
			if err := Root(containerID, pageJSON).Render(ctx, w); err != nil {
				return err
			}
			_, err := io.WriteString(w, `</body></html>`)
			return err
		})
	}
}

// Location answers with a 409 and X-Inertia-Location for Inertia requests,
// instructing the client to do a full browser visit to url. Plain
// requests get an ordinary redirect.
func (a *Adapter) Location(w http.ResponseWriter, r *http.Request, url string) {
	if IsInertia(r) {
		w.Header().Set(HeaderLocation, url)
		w.WriteHeader(http.StatusConflict)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// Redirect sends the client to url. The default 302 is upgraded to 303
// for PUT, PATCH, and DELETE so the follow-up request is a GET and the
// browser never re-prompts for submission. Cross-origin targets under an
// Inertia request are converted to a Location response, since the client
// cannot follow external redirects internally.
func (a *Adapter) Redirect(w http.ResponseWriter, r *http.Request, target string, status ...int) {
	if IsInertia(r) && isExternal(r, target) {
		a.logger.DebugContext(r.Context(), "external redirect", slog.String("url", target))
		a.Location(w, r, target)
		return
	}

	code := http.StatusFound
	if len(status) > 0 {
		code = status[0]
	}
	if code == http.StatusFound && mutatesWithBody(r.Method) {
		code = http.StatusSeeOther
	}

	http.Redirect(w, r, target, code)
}

// Back redirects to the referring page, defaulting to the root path when
// the request carries no referer.
func (a *Adapter) Back(w http.ResponseWriter, r *http.Request, status ...int) {
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	a.Redirect(w, r, target, status...)
}

// mutatesWithBody reports whether the method's redirect must be a 303.
func mutatesWithBody(method string) bool {
	switch method {
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// isExternal reports whether target points outside the request's host.
func isExternal(r *http.Request, target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return u.Host != "" && u.Host != r.Host
}

// requestURL reconstructs the path and query the client asked for.
func requestURL(r *http.Request) string {
	u := r.URL.Path
	if r.URL.RawQuery != "" {
		u += "?" + r.URL.RawQuery
	}
	return u
}
