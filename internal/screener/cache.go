package screener

import (
	"context"
	"time"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/pkg/cache"
	"github.com/wonny/buffett/backend/pkg/logger"
	"github.com/wonny/buffett/backend/pkg/redis"
)

// MemoryCache backs screening results with the in-process TTL store.
type MemoryCache struct {
	store *cache.Store
}

// NewMemoryCache creates an in-process result cache
func NewMemoryCache(store *cache.Store) *MemoryCache {
	return &MemoryCache{store: store}
}

func (m *MemoryCache) Get(_ context.Context, key string) (*contracts.ScreeningResult, bool) {
	value, ok := m.store.Get(key)
	if !ok {
		return nil, false
	}
	result, ok := value.(*contracts.ScreeningResult)
	return result, ok
}

func (m *MemoryCache) Set(_ context.Context, key string, result *contracts.ScreeningResult, ttl time.Duration) {
	m.store.Set(key, result, ttl)
}

// RedisCache backs screening results with Redis. 프로세스 재시작을 넘어
// 유지되고 여러 인스턴스가 공유한다.
type RedisCache struct {
	cache  *redis.Cache
	logger *logger.Logger
}

// NewRedisCache creates a Redis-backed result cache
func NewRedisCache(client *redis.Client, log *logger.Logger) *RedisCache {
	return &RedisCache{
		cache:  redis.NewCache(client, "screener"),
		logger: log,
	}
}

func (r *RedisCache) Get(ctx context.Context, key string) (*contracts.ScreeningResult, bool) {
	var result contracts.ScreeningResult
	found, err := r.cache.Get(ctx, key, &result)
	if err != nil {
		r.logger.WithError(err).Warn("redis cache read failed")
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &result, true
}

func (r *RedisCache) Set(ctx context.Context, key string, result *contracts.ScreeningResult, ttl time.Duration) {
	if err := r.cache.Set(ctx, key, result, ttl); err != nil {
		r.logger.WithError(err).Warn("redis cache write failed")
	}
}
