package client

import (
	"context"
	"sync"
	"time"
)

// Options controls the cache policy. The zero value matches the application
// default: entries are reused until they go stale and are never refetched
// just because a caller touched them again.
type Options struct {
	// TTL is how long a cached entry stays fresh. Zero means entries never
	// expire on their own.
	TTL time.Duration
	// RevalidateOnReuse forces a refetch every time a fresh entry is read
	// again. Off by default: cached data is served as-is until stale.
	RevalidateOnReuse bool
}

type cacheEntry struct {
	data      []byte
	fetchedAt time.Time
}

// QueryCache caches fetch results under string query keys. One instance is
// built per client process and passed to every consumer explicitly; callers
// sharing a key share the cached data.
type QueryCache struct {
	opts    Options
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewQueryCache(opts Options) *QueryCache {
	return &QueryCache{
		opts:    opts,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Fetch returns the cached value for key, calling fetch only when the entry
// is missing, stale, or the policy demands revalidation.
func (qc *QueryCache) Fetch(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	qc.mu.Lock()
	e, ok := qc.entries[key]
	qc.mu.Unlock()

	if ok && !qc.opts.RevalidateOnReuse {
		if qc.opts.TTL == 0 || qc.now().Sub(e.fetchedAt) < qc.opts.TTL {
			return e.data, nil
		}
	}

	data, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	qc.mu.Lock()
	qc.entries[key] = cacheEntry{data: data, fetchedAt: qc.now()}
	qc.mu.Unlock()
	return data, nil
}

// Invalidate drops a single entry.
func (qc *QueryCache) Invalidate(key string) {
	qc.mu.Lock()
	delete(qc.entries, key)
	qc.mu.Unlock()
}

// Clear drops every entry.
func (qc *QueryCache) Clear() {
	qc.mu.Lock()
	qc.entries = make(map[string]cacheEntry)
	qc.mu.Unlock()
}
