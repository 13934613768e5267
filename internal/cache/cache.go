package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"trip-suggester/internal/model"
	"trip-suggester/internal/storage"
)

// DefaultRetention is how long cached suggestions stay fresh.
const DefaultRetention = 7 * 24 * time.Hour

// Entry is the persisted form of a cached result.
type Entry struct {
	Suggestions []model.Suggestion `json:"suggestions"`
	Timestamp   int64              `json:"timestamp"` // epoch millis
}

// Cache serves suggestions per source and query within a freshness window.
// Stale entries are evicted lazily on Get, or in bulk by Sweep.
type Cache struct {
	store     storage.Store
	retention time.Duration
	now       func() time.Time
}

// Option customizes a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a cache over store. A non-positive retention means DefaultRetention.
func New(store storage.Store, retention time.Duration, opts ...Option) *Cache {
	if retention <= 0 {
		retention = DefaultRetention
	}
	c := &Cache{store: store, retention: retention, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Key builds the cache key for a source and query.
func Key(src model.Source, query string) string {
	return string(src) + ":" + strings.ToLower(query)
}

// Retention returns the freshness window.
func (c *Cache) Retention() time.Duration { return c.retention }

// Get returns the cached list for key if it is still fresh. Read and decode
// failures are logged and reported as a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]model.Suggestion, bool) {
	e, ok := c.load(ctx, key)
	if !ok {
		return nil, false
	}
	if !c.fresh(e) {
		if err := c.store.Delete(ctx, key); err != nil {
			slog.Warn("cache: evict failed", "key", key, "error", err)
		}
		return nil, false
	}
	return e.Suggestions, true
}

// Put overwrites the entry for key, stamped with the current time.
func (c *Cache) Put(ctx context.Context, key string, items []model.Suggestion) {
	if items == nil {
		items = []model.Suggestion{}
	}
	b, err := json.Marshal(Entry{Suggestions: items, Timestamp: c.now().UnixMilli()})
	if err != nil {
		slog.Error("cache: encode failed", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, b); err != nil {
		slog.Error("cache: write failed", "key", key, "error", err)
	}
}

// Sweep deletes every expired entry and returns how many were removed.
func (c *Cache) Sweep(ctx context.Context) (int, error) {
	keys, err := c.store.Keys(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		e, ok := c.load(ctx, k)
		if ok && c.fresh(e) {
			continue
		}
		if err := c.store.Delete(ctx, k); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (c *Cache) fresh(e Entry) bool {
	age := c.now().UnixMilli() - e.Timestamp
	return age < c.retention.Milliseconds()
}

func (c *Cache) load(ctx context.Context, key string) (Entry, bool) {
	b, ok, err := c.store.Get(ctx, key)
	if err != nil {
		slog.Error("cache: read failed", "key", key, "error", err)
		return Entry{}, false
	}
	if !ok {
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		slog.Error("cache: decode failed", "key", key, "error", err)
		return Entry{}, false
	}
	return e, true
}
