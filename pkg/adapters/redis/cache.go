package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/solliq/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "solliq:"

// Cache implements ports.CurveCache using Redis. Curves are stored as JSON.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the expiration of stored curves. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key namespace (default "solliq:").
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New connects to the Redis server at addr.
func New(addr string, opts ...Option) *Cache {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Client exposes the underlying client, e.g. to share it with a Locker.
func (c *Cache) Client() *backend.Client {
	return c.client
}

// Prefix returns the key namespace.
func (c *Cache) Prefix() string {
	return c.prefix
}

// Ping checks connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get retrieves a curve.
func (c *Cache) Get(ctx context.Context, key string) (domain.Curve, error) {
	data, err := c.client.Get(ctx, c.curveKey(key)).Bytes()
	if errors.Is(err, backend.Nil) {
		return domain.Curve{}, domain.ErrCacheMiss
	}
	if err != nil {
		return domain.Curve{}, fmt.Errorf("redis get %s: %w", key, err)
	}

	var curve domain.Curve
	if err := json.Unmarshal(data, &curve); err != nil {
		return domain.Curve{}, fmt.Errorf("failed to decode cached curve %s: %w", key, err)
	}
	return curve, nil
}

// Put stores a curve.
func (c *Cache) Put(ctx context.Context, key string, curve domain.Curve) error {
	data, err := json.Marshal(curve)
	if err != nil {
		return fmt.Errorf("failed to encode curve %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.curveKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes a curve.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.curveKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close closes the client.
func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) curveKey(key string) string {
	return c.prefix + "curve:" + key
}
