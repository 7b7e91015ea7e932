package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagefold/inertia/pkg/cookie"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// carry copies the cookies an earlier response set onto a fresh request,
// simulating the browser's next visit.
func carry(t *testing.T, w *httptest.ResponseRecorder, target string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge >= 0 {
			r.AddCookie(c)
		}
	}
	return r
}

func TestManager_Plain(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		m := cookie.New()
		w := httptest.NewRecorder()
		m.Set(w, "theme", "dark", 3600)

		got, err := m.Get(carry(t, w, "/"), "theme")
		require.NoError(t, err)
		assert.Equal(t, "dark", got)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()

		m := cookie.New()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		_, err := m.Get(r, "absent")
		assert.ErrorIs(t, err, cookie.ErrNotFound)
	})

	t.Run("delete expires the cookie", func(t *testing.T) {
		t.Parallel()

		m := cookie.New()
		w := httptest.NewRecorder()
		m.Delete(w, "theme")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "theme", cookies[0].Name)
		assert.Negative(t, cookies[0].MaxAge)
	})

	t.Run("attribute defaults", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(
			cookie.WithDomain("app.test"),
			cookie.WithPath("/admin"),
			cookie.WithSecure(true),
			cookie.WithSameSite(http.SameSiteStrictMode),
		)
		w := httptest.NewRecorder()
		m.Set(w, "k", "v", 60)

		c := w.Result().Cookies()[0]
		assert.Equal(t, "app.test", c.Domain)
		assert.Equal(t, "/admin", c.Path)
		assert.True(t, c.Secure)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	})
}

func TestManager_Encrypted(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(cookie.WithSecret(testSecret))
		w := httptest.NewRecorder()
		require.NoError(t, m.SetEncrypted(w, "session", "user-1", 3600))

		// The wire value must not leak the plaintext.
		assert.NotContains(t, w.Result().Cookies()[0].Value, "user-1")

		got, err := m.GetEncrypted(carry(t, w, "/"), "session")
		require.NoError(t, err)
		assert.Equal(t, "user-1", got)
	})

	t.Run("no secret", func(t *testing.T) {
		t.Parallel()

		m := cookie.New()
		w := httptest.NewRecorder()

		assert.ErrorIs(t, m.SetEncrypted(w, "session", "v", 0), cookie.ErrNoSecret)

		_, err := m.GetEncrypted(httptest.NewRequest(http.MethodGet, "/", nil), "session")
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("short secret leaves encryption disabled", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(cookie.WithSecret("too-short"))
		w := httptest.NewRecorder()

		assert.ErrorIs(t, m.SetEncrypted(w, "session", "v", 0), cookie.ErrNoSecret)
	})

	t.Run("tampered value fails authentication", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(cookie.WithSecret(testSecret))
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "session", Value: "bm90LXJlYWwtY2lwaGVydGV4dA"})

		_, err := m.GetEncrypted(r, "session")
		assert.ErrorIs(t, err, cookie.ErrDecrypt)
	})

	t.Run("wrong key fails authentication", func(t *testing.T) {
		t.Parallel()

		writer := cookie.New(cookie.WithSecret(testSecret))
		w := httptest.NewRecorder()
		require.NoError(t, writer.SetEncrypted(w, "session", "v", 0))

		reader := cookie.New(cookie.WithSecret("ffffffffffffffffffffffffffffffff"))
		_, err := reader.GetEncrypted(carry(t, w, "/"), "session")
		assert.ErrorIs(t, err, cookie.ErrDecrypt)
	})
}

func TestManager_Flash(t *testing.T) {
	t.Parallel()

	type note struct {
		Text string `json:"text"`
	}

	t.Run("read deletes the cookie", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(cookie.WithSecret(testSecret))
		w := httptest.NewRecorder()
		require.NoError(t, m.SetFlash(w, "msg", note{Text: "saved"}))

		next := httptest.NewRecorder()
		var got note
		require.NoError(t, m.Flash(next, carry(t, w, "/"), "msg", &got))
		assert.Equal(t, "saved", got.Text)

		// The consuming response expires the flash cookie.
		cookies := next.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "flash_msg", cookies[0].Name)
		assert.Negative(t, cookies[0].MaxAge)
	})

	t.Run("peek leaves the cookie in place", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(cookie.WithSecret(testSecret))
		w := httptest.NewRecorder()
		require.NoError(t, m.SetFlash(w, "msg", note{Text: "saved"}))

		var got note
		require.NoError(t, m.PeekFlash(carry(t, w, "/"), "msg", &got))
		assert.Equal(t, "saved", got.Text)
	})

	t.Run("nothing flashed", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(cookie.WithSecret(testSecret))
		w := httptest.NewRecorder()
		var got note

		err := m.Flash(w, httptest.NewRequest(http.MethodGet, "/", nil), "msg", &got)
		assert.ErrorIs(t, err, cookie.ErrNotFound)
	})
}
