package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Errors.
var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrNoSecret  = errors.New("cookie: secret required")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrDecrypt   = errors.New("cookie: decryption failed")
)

// Manager reads and writes cookies with shared attribute defaults and
// AES-GCM encryption for values that must be opaque to the client.
type Manager struct {
	secret   []byte
	domain   string
	path     string
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a cookie Manager. A secret of at least 32 bytes is required
// for encrypted and flash cookies; plain cookies work without one.
func New(opts ...Option) *Manager {
	m := &Manager{
		path:     "/",
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithSecret sets the secret used to derive the encryption key.
// Secrets shorter than 32 bytes are rejected and leave encryption disabled.
func WithSecret(secret string) Option {
	return func(m *Manager) {
		if len(secret) >= 32 {
			m.secret = []byte(secret)
		}
	}
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = domain
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) {
		m.path = path
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// Get returns a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set sets a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, m.cookie(name, value, maxAge))
}

// Delete removes a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

// GetEncrypted returns a decrypted cookie value.
// Returns ErrNoSecret without a configured secret and ErrDecrypt when the
// value cannot be authenticated.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	if m.secret == nil {
		return "", ErrNoSecret
	}

	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", ErrDecrypt
	}

	plaintext, err := m.open(data)
	if err != nil {
		return "", ErrDecrypt
	}

	return string(plaintext), nil
}

// SetEncrypted sets an encrypted cookie.
// Returns ErrNoSecret without a configured secret.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.secret == nil {
		return ErrNoSecret
	}

	ciphertext, err := m.seal([]byte(value))
	if err != nil {
		return err
	}

	http.SetCookie(w, m.cookie(name, base64.RawURLEncoding.EncodeToString(ciphertext), maxAge))
	return nil
}

// Flash reads an encrypted one-time value into dest and deletes the
// cookie. Returns ErrNotFound when nothing was flashed.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	name := "flash_" + key
	raw, err := m.GetEncrypted(r, name)
	if err != nil {
		return err
	}

	m.Delete(w, name)

	return json.Unmarshal([]byte(raw), dest)
}

// PeekFlash reads a flashed value into dest without consuming it. Use
// when the value is about to be overwritten anyway, so the response does
// not carry both a deleting and a setting cookie for the same name.
func (m *Manager) PeekFlash(r *http.Request, key string, dest any) error {
	raw, err := m.GetEncrypted(r, "flash_"+key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), dest)
}

// SetFlash stores a one-time value, JSON-encoded and encrypted, to be
// consumed by Flash on a later request.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return m.SetEncrypted(w, "flash_"+key, string(data), 0)
}

// cookie creates a cookie with the manager's defaults.
func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}

// seal encrypts with AES-GCM under a key derived from the secret.
func (m *Manager) seal(plaintext []byte) ([]byte, error) {
	aead, err := m.aead()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// open decrypts an AES-GCM sealed value.
func (m *Manager) open(ciphertext []byte) ([]byte, error) {
	aead, err := m.aead()
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < aead.NonceSize() {
		return nil, ErrDecrypt
	}

	nonce := ciphertext[:aead.NonceSize()]
	return aead.Open(nil, nonce, ciphertext[aead.NonceSize():], nil)
}

func (m *Manager) aead() (cipher.AEAD, error) {
	key := sha256.Sum256(m.secret)

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}
