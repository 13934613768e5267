package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trip-suggester/internal/config"
	"trip-suggester/internal/redisclient"
)

// Namespace prefixes every cache key a backend persists.
const Namespace = "suggestions-cache"

// Store persists encoded cache entries and the recent search history.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error

	// PushQuery moves q to the front of the history, keeping at most max entries.
	PushQuery(ctx context.Context, q string, max int) error
	RecentQueries(ctx context.Context) ([]string, error)

	Close() error
}

// Open builds the backend selected by cfg.Cache.Backend.
func Open(cfg config.Config) (Store, error) {
	switch strings.ToLower(cfg.Cache.Backend) {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(cfg.Cache.Path)
	case "redis":
		ttl, err := time.ParseDuration(cfg.Cache.Retention)
		if err != nil {
			return nil, fmt.Errorf("invalid cache.retention: %w", err)
		}
		return NewRedisStore(redisclient.New(cfg.Redis), ttl), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// pushFront returns history with q moved to the front, capped at max.
func pushFront(history []string, q string, max int) []string {
	out := make([]string, 0, len(history)+1)
	out = append(out, q)
	for _, h := range history {
		if h != q {
			out = append(out, h)
		}
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}
