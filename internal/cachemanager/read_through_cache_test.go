package cachemanager

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pulsar/internal/mocks"
)

type loadInput struct {
	Path string
}

func loadSnapshot(calls *atomic.Int32) LoadFunc[loadInput, *snapshot] {
	return func(_ context.Context, input loadInput) (*snapshot, error) {
		calls.Add(1)
		return &snapshot{Roots: []string{input.Path}}, nil
	}
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, *snapshot](t)
	var calls atomic.Int32
	cache := NewReadThroughCache[string, *snapshot, loadInput](managerMock, loadSnapshot(&calls), WithCacheDisabled(true))

	got, hit, err := cache.Get(context.Background(), "key", loadInput{Path: "a.json"}, time.Minute)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, []string{"a.json"}, got.Roots)
	require.Equal(t, int32(1), calls.Load())
	managerMock.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestReadThroughCache_Get_Hit(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, *snapshot](t)
	cached := &snapshot{Roots: []string{"cached"}}
	managerMock.EXPECT().Get(mock.Anything, "key").Return(cached, true)

	var calls atomic.Int32
	cache := NewReadThroughCache[string, *snapshot, loadInput](managerMock, loadSnapshot(&calls))

	got, hit, err := cache.Get(context.Background(), "key", loadInput{Path: "a.json"}, time.Minute)
	require.NoError(t, err)
	require.True(t, hit)
	require.Same(t, cached, got)
	require.Equal(t, int32(0), calls.Load())
}

func TestReadThroughCache_Get_MissStoresValue(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, *snapshot](t)
	managerMock.EXPECT().Get(mock.Anything, "key").Return(nil, false)
	managerMock.EXPECT().Set(mock.Anything, "key", &snapshot{Roots: []string{"a.json"}}, time.Minute).Return()

	var calls atomic.Int32
	cache := NewReadThroughCache[string, *snapshot, loadInput](managerMock, loadSnapshot(&calls))

	got, hit, err := cache.Get(context.Background(), "key", loadInput{Path: "a.json"}, time.Minute)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, []string{"a.json"}, got.Roots)
}

func TestReadThroughCache_Get_ErrorNotCached(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, *snapshot](t)
	managerMock.EXPECT().Get(mock.Anything, "key").Return(nil, false)

	boom := errors.New("boom")
	cache := NewReadThroughCache[string, *snapshot, loadInput](managerMock, func(context.Context, loadInput) (*snapshot, error) {
		return nil, boom
	})

	_, _, err := cache.Get(context.Background(), "key", loadInput{}, time.Minute)
	require.ErrorIs(t, err, boom)
	managerMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_Get_RefreshOnHit(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, *snapshot](t)
	cached := &snapshot{Roots: []string{"cached"}}
	managerMock.EXPECT().GetWithRefresh(mock.Anything, "key", time.Minute).Return(cached, true)

	var calls atomic.Int32
	cache := NewReadThroughCache[string, *snapshot, loadInput](managerMock, loadSnapshot(&calls), WithRefreshOnHit())

	got, hit, err := cache.Get(context.Background(), "key", loadInput{}, time.Minute)
	require.NoError(t, err)
	require.True(t, hit)
	require.Same(t, cached, got)
}

func TestReadThroughCache_Invalidate(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, *snapshot](t)
	managerMock.EXPECT().Delete(mock.Anything, "a", "b").Return(nil)

	var calls atomic.Int32
	cache := NewReadThroughCache[string, *snapshot, loadInput](managerMock, loadSnapshot(&calls))

	require.NoError(t, cache.Invalidate(context.Background(), "a", "b"))
}

func TestReadThroughCache_ConcurrentMissesLoadOnce(t *testing.T) {
	store := NewInMemoryCacheManager[string, *snapshot]("forest", DefaultExpiration, DefaultCleanupInterval)
	var calls atomic.Int32
	cache := NewReadThroughCache[string, *snapshot, loadInput](store, func(ctx context.Context, input loadInput) (*snapshot, error) {
		time.Sleep(20 * time.Millisecond)
		return loadSnapshot(&calls)(ctx, input)
	})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := cache.Get(context.Background(), "key", loadInput{Path: "a.json"}, time.Minute)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
}
