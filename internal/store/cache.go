package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache Fetch 结果缓存
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ==================== Redis ====================

// RedisCache 基于 go-redis 的缓存
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache 包装一个 redis 客户端
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// ==================== CachedStore ====================

// CachedStore 读穿透缓存，任何写操作都会让该实体的缓存失效
// 缓存故障不影响读写，只记日志
type CachedStore struct {
	inner  Store
	cache  Cache
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

// NewCachedStore 包装 inner
func NewCachedStore(inner Store, cache Cache, ttl time.Duration, log *zap.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedStore{inner: inner, cache: cache, ttl: ttl, prefix: "equipmall:store:", log: log.Named("cache")}
}

func (s *CachedStore) key(entity Entity) string {
	return s.prefix + string(entity)
}

func (s *CachedStore) Fetch(ctx context.Context, entity Entity) ([]Record, error) {
	key := s.key(entity)
	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var records []Record
		if err := json.Unmarshal(data, &records); err == nil {
			return records, nil
		}
		s.log.Warn("cache entry corrupted", zap.String("key", key))
	}

	records, err := s.inner.Fetch(ctx, entity)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(records); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return records, nil
}

func (s *CachedStore) SyncCreate(ctx context.Context, entity Entity, rec Record) error {
	defer s.invalidate(ctx, entity)
	return s.inner.SyncCreate(ctx, entity, rec)
}

func (s *CachedStore) SyncUpdate(ctx context.Context, entity Entity, rec Record) error {
	defer s.invalidate(ctx, entity)
	return s.inner.SyncUpdate(ctx, entity, rec)
}

func (s *CachedStore) SyncDelete(ctx context.Context, entity Entity, id string) error {
	defer s.invalidate(ctx, entity)
	return s.inner.SyncDelete(ctx, entity, id)
}

func (s *CachedStore) SyncBulk(ctx context.Context, entity Entity, records []Record) error {
	defer s.invalidate(ctx, entity)
	return s.inner.SyncBulk(ctx, entity, records)
}

// invalidate 写失败也失效：远端可能已部分写入
func (s *CachedStore) invalidate(ctx context.Context, entity Entity) {
	if err := s.cache.Delete(ctx, s.key(entity)); err != nil {
		s.log.Warn("cache invalidate failed", zap.String("entity", string(entity)), zap.Error(err))
	}
}
