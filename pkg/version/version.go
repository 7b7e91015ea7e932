package version

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Resolver produces the current asset version string. An empty string
// disables version-mismatch detection.
type Resolver func() string

// Static returns a resolver with a fixed version, typically a build hash
// injected at compile time.
func Static(v string) Resolver {
	return func() string { return v }
}

// Manifest returns a resolver that fingerprints a build manifest file
// (e.g. Vite's manifest.json). The hash is recomputed only when the file's
// modification time changes; concurrent recomputations are deduplicated so
// a deploy under load hashes the file once.
//
// Unreadable manifests resolve to an empty version, which disables
// mismatch detection rather than failing requests.
func Manifest(path string) Resolver {
	m := &manifest{path: path}
	return m.resolve
}

type manifest struct {
	mu      sync.RWMutex
	group   singleflight.Group
	path    string
	hash    string
	modTime time.Time
}

func (m *manifest) resolve() string {
	info, err := os.Stat(m.path)
	if err != nil {
		return ""
	}

	m.mu.RLock()
	hash, modTime := m.hash, m.modTime
	m.mu.RUnlock()

	if hash != "" && info.ModTime().Equal(modTime) {
		return hash
	}

	v, err, _ := m.group.Do(m.path, func() (any, error) {
		data, err := os.ReadFile(m.path)
		if err != nil {
			return "", err
		}
		sum := md5.Sum(data)
		h := hex.EncodeToString(sum[:])

		m.mu.Lock()
		m.hash, m.modTime = h, info.ModTime()
		m.mu.Unlock()

		return h, nil
	})
	if err != nil {
		return ""
	}
	return v.(string)
}
