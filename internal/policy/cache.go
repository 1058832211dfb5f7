package policy

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores raw feed payloads. It never holds engine output.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type memoryEntry struct {
	value   string
	expires time.Time
}

// MemoryCache is an in-process Cache. A zero ttl never expires.
type MemoryCache struct {
	entries sync.Map
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := m.entries.Load(key)
	if !ok {
		return "", false
	}
	e := v.(memoryEntry)
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.entries.Delete(key)
		return "", false
	}
	return e.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries.Store(key, e)
	return nil
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(opts *redis.Options) *RedisCache {
	return &RedisCache{client: redis.NewClient(opts)}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
