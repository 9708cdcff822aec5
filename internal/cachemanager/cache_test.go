package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type renderKey string

func TestInMemoryCacheManager(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[renderKey, string]("test", DefaultExpiration, DefaultCleanupInterval)

	_, ok := c.Get(ctx, "missing")
	require.False(t, ok)

	c.Set(ctx, "a", "rendered a", 0)
	c.Set(ctx, "b", "rendered b", time.Minute)
	require.Equal(t, 2, c.Len())

	v, ok := c.Get(ctx, "a")
	require.True(t, ok)
	require.Equal(t, "rendered a", v)

	c.Delete(ctx, "a")
	_, ok = c.Get(ctx, "a")
	require.False(t, ok)

	c.Flush(ctx)
	require.Zero(t, c.Len())
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[renderKey, int]("test", DefaultExpiration, DefaultCleanupInterval)

	c.Set(ctx, "short", 1, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		_, ok := c.Get(ctx, "short")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestReadThroughCache(t *testing.T) {
	ctx := context.Background()
	calls := 0
	loader := func(_ context.Context, in int) (string, error) {
		calls++
		if in < 0 {
			return "", errors.New("negative")
		}
		return "value", nil
	}
	rt := NewReadThroughCache[renderKey, string, int](
		NewInMemoryCacheManager[renderKey, string]("test", DefaultExpiration, DefaultCleanupInterval),
		loader,
	)

	v, err := rt.Get(ctx, "k", 1, time.Minute)
	require.NoError(t, err)
	require.Equal(t, "value", v)

	v, err = rt.Get(ctx, "k", 1, time.Minute)
	require.NoError(t, err)
	require.Equal(t, "value", v)
	require.Equal(t, 1, calls, "second read is served from cache")

	_, err = rt.Get(ctx, "bad", -1, time.Minute)
	require.Error(t, err)
	_, err = rt.Get(ctx, "bad", -1, time.Minute)
	require.Error(t, err)
	require.Equal(t, 3, calls, "errors are not cached")

	rt.Invalidate(ctx)
	_, err = rt.Get(ctx, "k", 1, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 4, calls)
}
