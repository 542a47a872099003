package cachemanager

import (
	"context"
	"sync"
	"time"
)

// LoadFunc produces the value for a cache miss.
type LoadFunc[I any, V any] func(ctx context.Context, input I) (V, error)

// ReadThroughCache fills a CacheManager on demand. Misses are serialized,
// so concurrent callers asking for the same key share one load.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache   CacheManager[K, V]
	fn      LoadFunc[I, V]
	enabled bool
	refresh bool

	mu sync.Mutex
}

// ReadThroughOption configures a ReadThroughCache.
type ReadThroughOption func(*readThroughOptions)

type readThroughOptions struct {
	disabled bool
	refresh  bool
}

// WithCacheDisabled makes every Get call the load function directly.
func WithCacheDisabled(disabled bool) ReadThroughOption {
	return func(o *readThroughOptions) { o.disabled = disabled }
}

// WithRefreshOnHit restarts an entry's TTL each time it is read.
func WithRefreshOnHit() ReadThroughOption {
	return func(o *readThroughOptions) { o.refresh = true }
}

// NewReadThroughCache wraps cache with the load function fn.
func NewReadThroughCache[K comparable, V any, I any](
	cache CacheManager[K, V],
	fn LoadFunc[I, V],
	opts ...ReadThroughOption,
) *ReadThroughCache[K, V, I] {
	var o readThroughOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &ReadThroughCache[K, V, I]{
		cache:   cache,
		fn:      fn,
		enabled: !o.disabled,
		refresh: o.refresh,
	}
}

// Get returns the cached value for key, loading and storing it with ttl on
// a miss. hit reports whether the value came from the cache. Failed loads
// are not cached.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (value V, hit bool, err error) {
	if !r.enabled {
		value, err = r.fn(ctx, input)
		return value, false, err
	}

	if value, ok := r.lookup(ctx, key, ttl); ok {
		return value, true, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have filled the entry while we waited.
	if value, ok := r.cache.Get(ctx, key); ok {
		return value, true, nil
	}

	value, err = r.fn(ctx, input)
	if err != nil {
		return value, false, err
	}
	r.cache.Set(ctx, key, value, ttl)
	return value, false, nil
}

// Invalidate drops the given keys so the next Get reloads them.
func (r *ReadThroughCache[K, V, I]) Invalidate(ctx context.Context, keys ...K) error {
	return r.cache.Delete(ctx, keys...)
}

func (r *ReadThroughCache[K, V, I]) lookup(ctx context.Context, key K, ttl time.Duration) (V, bool) {
	if r.refresh {
		return r.cache.GetWithRefresh(ctx, key, ttl)
	}
	return r.cache.Get(ctx, key)
}
