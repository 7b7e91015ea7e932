package middlewares

import (
	"bytes"
	"net/http"

	"github.com/pagefold/inertia/internal"
)

// Inertia returns middleware enforcing the protocol's response rules for
// Inertia requests, so handlers that just call http.Redirect still behave:
//
//   - 302 responses to PUT, PATCH, and DELETE are upgraded to 303, making
//     the client follow with a GET instead of repeating the mutation.
//   - An empty 200 response becomes a 302 back-redirect; an action that
//     wrote nothing still needs to navigate somewhere.
//   - Vary: X-Inertia is always set so caches separate HTML and JSON
//     renditions of the same URL.
//
// Non-Inertia requests pass through untouched.
func Inertia() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !internal.IsInertia(r) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", internal.HeaderInertia)

			buf := &bufferedWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(buf, r)

			// An action that wrote nothing becomes a redirect first, so the
			// 303 upgrade below covers it too.
			if buf.status == http.StatusOK && buf.body.Len() == 0 {
				back := r.Referer()
				if back == "" {
					back = "/"
				}
				status := http.StatusFound
				if redirectMustBeSeeOther(r.Method) {
					status = http.StatusSeeOther
				}
				http.Redirect(w, r, back, status)
				return
			}

			if buf.status == http.StatusFound && redirectMustBeSeeOther(r.Method) {
				buf.status = http.StatusSeeOther
			}

			w.WriteHeader(buf.status)
			_, _ = w.Write(buf.body.Bytes())
		})
	}
}

// redirectMustBeSeeOther reports whether the method's 302 must become a 303.
func redirectMustBeSeeOther(method string) bool {
	switch method {
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// bufferedWriter captures status and body so the middleware can rewrite
// them after the handler returns. Headers pass through to the underlying
// writer; only the status line and body are deferred.
type bufferedWriter struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (w *bufferedWriter) WriteHeader(code int) {
	w.status = code
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}
