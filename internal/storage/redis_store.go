package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares the cache between processes. Every entry also carries a
// redis TTL so abandoned keys disappear even if nobody reads them again.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func entryKey(key string) string {
	return fmt.Sprintf("%s:entry:%s", Namespace, key)
}

func historyKey() string {
	return Namespace + ":history"
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, entryKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, entryKey(key), value, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, entryKey(key)).Err()
}

// Keys scans the entry namespace and returns the unprefixed cache keys.
func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	prefix := entryKey("")
	var keys []string
	iter := s.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	keys, err := s.Keys(ctx)
	if err != nil {
		return err
	}
	full := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		full = append(full, entryKey(k))
	}
	full = append(full, historyKey())
	return s.rdb.Del(ctx, full...).Err()
}

func (s *RedisStore) PushQuery(ctx context.Context, q string, max int) error {
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LRem(ctx, historyKey(), 0, q)
		p.LPush(ctx, historyKey(), q)
		if max > 0 {
			p.LTrim(ctx, historyKey(), 0, int64(max-1))
		}
		return nil
	})
	return err
}

func (s *RedisStore) RecentQueries(ctx context.Context) ([]string, error) {
	return s.rdb.LRange(ctx, historyKey(), 0, -1).Result()
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
