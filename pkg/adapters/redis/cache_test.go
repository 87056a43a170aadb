package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/solliq/pkg/adapters/redis"
	"github.com/aretw0/solliq/pkg/domain"
	"github.com/aretw0/solliq/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache_Contract(t *testing.T) {
	// Setup miniredis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	ports.RunCurveCacheContract(t, redis.NewFromClient(client))
}

func TestRedisCache_TTL_Expiration(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cache := redis.New(mr.Addr(), redis.WithTTL(time.Second), redis.WithPrefix("test:"))
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.Ping(ctx))
	require.NoError(t, cache.Put(ctx, "eutectic", domain.Curve{Key: "eutectic"}))
	assert.True(t, mr.Exists("test:curve:eutectic"))

	_, err = cache.Get(ctx, "eutectic")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = cache.Get(ctx, "eutectic")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cache := redis.New(mr.Addr())
	require.NoError(t, mr.Set("solliq:curve:bad", "{not json"))

	_, err = cache.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisLocker(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "phase/forsterite", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:phase/forsterite"))

	// A second holder blocks until its context expires.
	waitCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "phase/forsterite", 10*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:phase/forsterite"))

	unlock, err = locker.Lock(ctx, "phase/forsterite", 10*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}

func TestRedisLocker_StaleUnlock(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	first := redis.NewLocker(client, "test:")
	second := redis.NewLocker(client, "test:")
	ctx := context.Background()

	staleUnlock, err := first.Lock(ctx, "eutectic", time.Second)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	unlock, err := second.Lock(ctx, "eutectic", 10*time.Second)
	require.NoError(t, err)

	// The expired holder must not release the lock now held by the second one.
	require.NoError(t, staleUnlock(ctx))
	assert.True(t, mr.Exists("test:lock:eutectic"))
	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:eutectic"))
}
