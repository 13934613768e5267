package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-suggester/internal/config"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	mr := miniredis.RunT(t)
	rs := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)
	t.Cleanup(func() { rs.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
		"redis":  rs,
	}
}

func TestStoreEntries(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(ctx, "forum:kebab")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set(ctx, "forum:kebab", []byte(`{"a":1}`)))
			require.NoError(t, s.Set(ctx, "web:kebab", []byte(`{"b":2}`)))
			require.NoError(t, s.Set(ctx, "forum:kebab", []byte(`{"a":3}`)))

			b, ok, err := s.Get(ctx, "forum:kebab")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.JSONEq(t, `{"a":3}`, string(b))

			keys, err := s.Keys(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"forum:kebab", "web:kebab"}, keys)

			require.NoError(t, s.Delete(ctx, "forum:kebab"))
			_, ok, err = s.Get(ctx, "forum:kebab")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Clear(ctx))
			keys, err = s.Keys(ctx)
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestStoreHistory(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, q := range []string{"kebab", "bazaar", "ferry", "kebab"} {
				require.NoError(t, s.PushQuery(ctx, q, 3))
			}
			got, err := s.RecentQueries(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"kebab", "ferry", "bazaar"}, got)

			require.NoError(t, s.PushQuery(ctx, "museum", 3))
			got, err = s.RecentQueries(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"museum", "kebab", "ferry"}, got)
		})
	}
}

func TestRedisStoreAppliesTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)
	defer s.Close()

	require.NoError(t, s.Set(context.Background(), "web:tea", []byte("{}")))
	assert.Equal(t, time.Hour, mr.TTL(entryKey("web:tea")))
	require.NoError(t, s.Ping(context.Background()))

	mr.FastForward(2 * time.Hour)
	_, ok, err := s.Get(context.Background(), "web:tea")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen(t *testing.T) {
	cfg := config.Config{}
	cfg.FillDefaults()
	s, err := Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	cfg.Cache.Backend = "sqlite"
	cfg.Cache.Path = filepath.Join(t.TempDir(), "open.db")
	s, err = Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	s.Close()

	cfg.Cache.Backend = "cassandra"
	_, err = Open(cfg)
	assert.Error(t, err)
}
