package storefront

import (
	"strings"
	"sync"
	"time"
)

// Cache 客户端侧的读缓存。写操作从不原地修补缓存条目，
// 只做前缀失效，下一次读取重新拉取服务端数据。
type Cache struct {
	mu    sync.RWMutex
	items map[string]cacheEntry
	ttl   time.Duration

	now func() time.Time // 测试注入
}

type cacheEntry struct {
	body    []byte
	expires time.Time
}

// NewCache 创建缓存，ttl <= 0 时取 5 分钟
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{
		items: make(map[string]cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get 命中返回缓存的 JSON 体
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expires) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.body, true
}

// Set 写入缓存
func (c *Cache) Set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry{body: body, expires: c.now().Add(c.ttl)}
}

// InvalidatePrefix 失效某一类键（如 "cart"、"products:"）
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
}

// Len 当前条目数
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
