package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/solliq/pkg/domain"
)

type entry struct {
	curve   domain.Curve
	expires time.Time
}

// Cache implements ports.CurveCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]entry
	ttl  time.Duration
	now  func() time.Time
	mu   sync.RWMutex
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL expires entries after ttl. Zero keeps entries forever.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// NewCache creates a new in-memory curve cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		data: make(map[string]entry),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Put stores a copy of the curve.
func (c *Cache) Put(ctx context.Context, key string, curve domain.Curve) error {
	e := entry{curve: copyCurve(curve)}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = e
	return nil
}

// Get retrieves a copy of the curve, so callers can't mutate cached points.
func (c *Cache) Get(ctx context.Context, key string) (domain.Curve, error) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return domain.Curve{}, domain.ErrCacheMiss
	}
	if !e.expires.IsZero() && c.now().After(e.expires) {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()
		return domain.Curve{}, domain.ErrCacheMiss
	}
	return copyCurve(e.curve), nil
}

// Delete removes the entry.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func copyCurve(c domain.Curve) domain.Curve {
	out := domain.Curve{Key: c.Key}
	if c.Points != nil {
		out.Points = append([]domain.Point(nil), c.Points...)
	}
	if c.Warnings != nil {
		out.Warnings = append([]domain.Warning(nil), c.Warnings...)
	}
	return out
}
