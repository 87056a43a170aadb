package ports

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/solliq/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCurveCacheContract runs a suite of tests to verify that a CurveCache implementation
// adheres to the defined interface contract.
func RunCurveCacheContract(t *testing.T, cache CurveCache) {
	ctx := context.Background()
	key := "contract-test-curve-" + time.Now().Format("20060102150405")

	curve := domain.Curve{
		Key: "phase/forsterite",
		Points: []domain.Point{
			{Pressure: 0, Temperature: 2160.6},
			{Pressure: 14.5, Temperature: 2556.0123},
		},
		Warnings: []domain.Warning{{Code: domain.WarnForsteriteClamped, Message: "held constant"}},
	}

	t.Run("Put and Get", func(t *testing.T) {
		err := cache.Put(ctx, key, curve)
		require.NoError(t, err, "Put should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, curve, got)
	})

	t.Run("Returned curve is a copy", func(t *testing.T) {
		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		got.Points[0].Temperature = -1

		again, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 2160.6, again.Points[0].Temperature)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Overwrite", func(t *testing.T) {
		other := domain.Curve{Key: "eutectic", Points: []domain.Point{{Pressure: 0, Temperature: 1268.25}}}
		require.NoError(t, cache.Put(ctx, key, other))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "eutectic", got.Key)
		assert.Empty(t, got.Warnings)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Delete(ctx, key))

		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Delete should return ErrCacheMiss")

		assert.NoError(t, cache.Delete(ctx, key), "Delete of a missing key should succeed")
	})

	t.Run("Concurrent access", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				k := key + "-concurrent"
				_ = cache.Put(ctx, k, curve)
				_, _ = cache.Get(ctx, k)
			}(i)
		}
		wg.Wait()

		got, err := cache.Get(ctx, key+"-concurrent")
		require.NoError(t, err)
		assert.Equal(t, curve.Key, got.Key)
		_ = cache.Delete(ctx, key+"-concurrent")
	})
}
