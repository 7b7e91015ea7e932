package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrEmptyURL is returned when Open is called with an empty connection URL.
	ErrEmptyURL = errors.New("redis: connection URL required")
	// ErrInvalidURL is returned when the connection URL cannot be parsed.
	ErrInvalidURL = errors.New("redis: invalid connection URL")
	// ErrConnectFailed is returned when the server cannot be reached after all
	// retry attempts.
	ErrConnectFailed = errors.New("redis: connection failed")
)

// Option configures the connection opened by Open.
type Option func(*config)

type config struct {
	poolSize      int
	retryAttempts int
	retryInterval time.Duration
	dialTimeout   time.Duration
	opTimeout     time.Duration
}

// WithPoolSize sets the connection pool size. Default: 10.
func WithPoolSize(n int) Option {
	return func(c *config) { c.poolSize = n }
}

// WithRetry sets how many connection attempts Open makes and the base
// interval between them. The interval grows linearly with each attempt.
// Default: 3 attempts, 2 second interval.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(c *config) {
		c.retryAttempts = attempts
		c.retryInterval = interval
	}
}

// WithDialTimeout sets the timeout for establishing new connections.
// Default: 5 seconds.
func WithDialTimeout(d time.Duration) Option {
	return func(c *config) { c.dialTimeout = d }
}

// WithTimeout sets the read and write timeout for individual commands.
// Default: 3 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.opTimeout = d }
}

// Open connects to the Redis server at url and verifies the connection with
// a ping before returning. Both redis:// and rediss:// schemes are accepted.
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"))
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrInvalidURL
	}

	cfg := &config{
		poolSize:      10,
		retryAttempts: 3,
		retryInterval: 2 * time.Second,
		dialTimeout:   5 * time.Second,
		opTimeout:     3 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ropts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	ropts.PoolSize = cfg.poolSize
	ropts.DialTimeout = cfg.dialTimeout
	ropts.ReadTimeout = cfg.opTimeout
	ropts.WriteTimeout = cfg.opTimeout

	attempts := max(cfg.retryAttempts, 1)
	for i := 0; i < attempts; i++ {
		client := redis.NewClient(ropts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectFailed, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.retryInterval):
		}
	}
	return nil, ErrConnectFailed
}
