package cms

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultCacheTTL bounds how long a validated CMS response is reused.
const DefaultCacheTTL = 5 * time.Minute

// Cache stores raw, already-validated response bodies keyed by request URL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// MemoryCache is an in-process TTL cache. Expired entries are dropped lazily on read.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	now   func() time.Time
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: map[string]memoryEntry{}, now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	entry, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.now().After(entry.expires) {
		m.mu.Lock()
		// a Set between the two locks may have refreshed the key
		if e, ok := m.items[key]; ok && m.now().After(e.expires) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	return append([]byte(nil), entry.value...), true
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = memoryEntry{value: append([]byte(nil), value...), expires: m.now().Add(ttl)}
}

// Len reports the number of stored entries, expired or not.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

const redisKeyPrefix = "cms:"

// RedisCache shares cached responses between instances through Redis or Valkey.
// Errors degrade to cache misses.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client, logger *zap.Logger) *RedisCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache{client: client, logger: logger}
}

// ConnectRedis creates a client and verifies the connection with a ping.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cms: redis ping %s: %w", addr, err)
	}
	return client, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.logger.Warn("cms cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, ttl).Err(); err != nil {
		r.logger.Warn("cms cache set failed", zap.String("key", key), zap.Error(err))
	}
}
