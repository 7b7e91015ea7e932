package flash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pagefold/inertia/pkg/cookie"
)

const (
	// clientIDCookie names the cookie that ties a browser to its Redis slot.
	clientIDCookie = "inertia_flash_id"

	// defaultTTL bounds how long undelivered flash data survives.
	defaultTTL = 30 * time.Minute
)

// RedisStore keeps flash data server-side in Redis, keyed by a random
// client ID set in a plain cookie. Use when flash payloads are too large
// for cookies or must never reach the client encrypted-at-rest.
type RedisStore struct {
	client  redis.UniversalClient
	cookies *cookie.Manager
	prefix  string
	ttl     time.Duration
}

// RedisOption configures the RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix sets the Redis key prefix. Defaults to "inertia:flash".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL bounds how long undelivered flash data is kept.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewRedisStore creates a Redis-backed store. The cookie manager is used
// only for the client ID cookie and needs no secret.
func NewRedisStore(client redis.UniversalClient, cm *cookie.Manager, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client:  client,
		cookies: cm,
		prefix:  "inertia:flash",
		ttl:     defaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Flash stores data under the client's slot, merging with pending data.
func (s *RedisStore) Flash(w http.ResponseWriter, r *http.Request, data Data) error {
	id := s.clientID(w, r)
	key := s.key(id)
	ctx := r.Context()

	pending, err := s.pull(ctx, key)
	if err != nil && !errors.Is(err, ErrEmpty) {
		return err
	}

	payload, err := json.Marshal(merge(pending, data))
	if err != nil {
		return fmt.Errorf("flash: encode: %w", err)
	}

	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("flash: redis set: %w", err)
	}
	return nil
}

// Pull returns and deletes the client's pending data.
func (s *RedisStore) Pull(w http.ResponseWriter, r *http.Request) (Data, error) {
	id, err := s.cookies.Get(r, clientIDCookie)
	if err != nil {
		// No client ID cookie means nothing was ever flashed.
		return Data{}, ErrEmpty
	}
	return s.pull(r.Context(), s.key(id))
}

func (s *RedisStore) pull(ctx context.Context, key string) (Data, error) {
	raw, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Data{}, ErrEmpty
		}
		return Data{}, fmt.Errorf("flash: redis getdel: %w", err)
	}

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return Data{}, fmt.Errorf("flash: decode: %w", err)
	}
	if data.IsZero() {
		return Data{}, ErrEmpty
	}
	return data, nil
}

// clientID returns the browser's slot ID, minting and setting one when
// absent.
func (s *RedisStore) clientID(w http.ResponseWriter, r *http.Request) string {
	if id, err := s.cookies.Get(r, clientIDCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	s.cookies.Set(w, clientIDCookie, id, int(s.ttl.Seconds()))
	return id
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":" + id
}
