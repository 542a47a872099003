package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type cacheKey string

type snapshot struct {
	Roots []string
	Total int
}

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[cacheKey, snapshot]("forest", DefaultExpiration, DefaultCleanupInterval)
	want := snapshot{Roots: []string{"a"}, Total: 3}
	cache.Set(context.Background(), "groups.json", want, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "groups.json")
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestInMemoryCacheManager_GetMissing(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("forest", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "missing")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("forest", DefaultExpiration, DefaultCleanupInterval)
	cache.cache.Set("key", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "key")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("forest", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "key", "value", 20*time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(context.Background(), "key")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("forest", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()
	cache.Set(ctx, "key", "value", 50*time.Millisecond)

	got, ok := cache.GetWithRefresh(ctx, "key", time.Hour)
	require.True(t, ok)
	require.Equal(t, "value", got)

	time.Sleep(80 * time.Millisecond)
	_, ok = cache.Get(ctx, "key")
	require.True(t, ok, "refresh should have extended the ttl")

	_, ok = cache.GetWithRefresh(ctx, "missing", time.Hour)
	require.False(t, ok)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("forest", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()
	cache.Set(ctx, "a", 1, 0)
	cache.Set(ctx, "b", 2, 0)
	cache.Set(ctx, "c", 3, 0)
	require.Equal(t, 3, cache.ItemCount())

	require.NoError(t, cache.Delete(ctx, "a", "missing"))
	require.Equal(t, 2, cache.ItemCount())
	require.NoError(t, cache.Delete(ctx))

	require.NoError(t, cache.Flush(ctx))
	require.Equal(t, 0, cache.ItemCount())
}
