package flash

import (
	"errors"
	"net/http"

	"github.com/pagefold/inertia/pkg/cookie"
)

// cookieKey is the flash slot name inside the cookie manager.
const cookieKey = "inertia"

// CookieStore keeps flash data in an encrypted cookie. No server-side
// state: suits multi-instance deployments without shared storage.
type CookieStore struct {
	cookies *cookie.Manager
}

// NewCookieStore creates a cookie-backed store. The manager must carry a
// secret; flash cookies are always encrypted.
func NewCookieStore(cm *cookie.Manager) *CookieStore {
	return &CookieStore{cookies: cm}
}

// Flash stores data in the flash cookie, merging with any undelivered
// data the request still carries. The merge read peeks rather than pulls:
// the new cookie overwrites the old one, so the response never carries a
// delete and a set for the same name.
func (s *CookieStore) Flash(w http.ResponseWriter, r *http.Request, data Data) error {
	var pending Data
	if err := s.cookies.PeekFlash(r, cookieKey, &pending); err != nil && !errors.Is(err, cookie.ErrNotFound) {
		return err
	}
	return s.cookies.SetFlash(w, cookieKey, merge(pending, data))
}

// Pull reads and deletes the flash cookie.
func (s *CookieStore) Pull(w http.ResponseWriter, r *http.Request) (Data, error) {
	var data Data
	if err := s.cookies.Flash(w, r, cookieKey, &data); err != nil {
		if errors.Is(err, cookie.ErrNotFound) {
			return Data{}, ErrEmpty
		}
		return Data{}, err
	}
	if data.IsZero() {
		return Data{}, ErrEmpty
	}
	return data, nil
}
