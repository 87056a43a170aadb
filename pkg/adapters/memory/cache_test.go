package memory

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/solliq/pkg/domain"
	"github.com/aretw0/solliq/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_Contract(t *testing.T) {
	ports.RunCurveCacheContract(t, NewCache())
}

func TestMemoryCache_TTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewCache(WithTTL(time.Minute))
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "eutectic", domain.Curve{Key: "eutectic"}))

	_, err := cache.Get(ctx, "eutectic")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = cache.Get(ctx, "eutectic")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.Equal(t, 0, cache.Len())
}
