package store

import (
	"context"
	"sync"
	"time"
)

// MemoryCache 进程内缓存，未配置 redis 时使用
// 使用 sync.Map 保证并发安全
type MemoryCache struct {
	items sync.Map
	now   func() time.Time
}

// cacheItem 内部结构，包含值和过期时间
type cacheItem struct {
	value      []byte
	expiration time.Time
}

// NewMemoryCache 创建进程内缓存
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{now: time.Now}
}

// Get 获取缓存并验证是否过期
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, ok := c.items.Load(key)
	if !ok {
		return nil, false, nil
	}
	item := val.(cacheItem)
	if c.now().After(item.expiration) {
		c.items.Delete(key) // 懒删除
		return nil, false, nil
	}
	return item.value, true, nil
}

// Set 设置缓存
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.items.Store(key, cacheItem{value: value, expiration: c.now().Add(ttl)})
	return nil
}

// Delete 删除缓存
func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.items.Delete(k)
	}
	return nil
}
