package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pagefold/inertia/middlewares"
)

func inertiaRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	r.Header.Set("X-Inertia", "true")
	return r
}

func TestInertia(t *testing.T) {
	t.Parallel()

	t.Run("non-inertia requests pass through", func(t *testing.T) {
		t.Parallel()

		handler := middlewares.Inertia()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("tea"))
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "tea", w.Body.String())
		assert.Empty(t, w.Header().Get("Vary"))
	})

	t.Run("normal responses replay unchanged", func(t *testing.T) {
		t.Parallel()

		handler := middlewares.Inertia()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"component":"Home"}`))
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, inertiaRequest(http.MethodGet, "/"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `{"component":"Home"}`, w.Body.String())
		assert.Contains(t, w.Header().Values("Vary"), "X-Inertia")
	})

	t.Run("302 on PUT becomes 303", func(t *testing.T) {
		t.Parallel()

		for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete} {
			handler := middlewares.Inertia()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/users/1", http.StatusFound)
			}))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, inertiaRequest(method, "/users/1"))

			assert.Equal(t, http.StatusSeeOther, w.Code, method)
			assert.Equal(t, "/users/1", w.Header().Get("Location"), method)
		}
	})

	t.Run("302 on POST stays 302", func(t *testing.T) {
		t.Parallel()

		handler := middlewares.Inertia()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/done", http.StatusFound)
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, inertiaRequest(http.MethodPost, "/subscribe"))

		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("empty 200 on PUT becomes a 303", func(t *testing.T) {
		t.Parallel()

		for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete} {
			handler := middlewares.Inertia()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			w := httptest.NewRecorder()
			r := inertiaRequest(method, "/users/1")
			r.Header.Set("Referer", "/users")
			handler.ServeHTTP(w, r)

			// A silent mutation still must not be replayed by a client
			// following the redirect.
			assert.Equal(t, http.StatusSeeOther, w.Code, method)
			assert.Equal(t, "/users", w.Header().Get("Location"), method)
		}
	})

	t.Run("empty 200 becomes a back redirect", func(t *testing.T) {
		t.Parallel()

		handler := middlewares.Inertia()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		w := httptest.NewRecorder()
		r := inertiaRequest(http.MethodPost, "/subscribe")
		r.Header.Set("Referer", "/pricing")
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/pricing", w.Header().Get("Location"))
	})

	t.Run("empty 200 without referer goes home", func(t *testing.T) {
		t.Parallel()

		handler := middlewares.Inertia()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, inertiaRequest(http.MethodPost, "/subscribe"))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})
}
