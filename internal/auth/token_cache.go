package auth

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	radix "github.com/mediocregopher/radix/v3"
)

// ErrTokenRevoked token 已在服务端撤销，持有者需要重新登录
var ErrTokenRevoked = errors.New("token revoked")

// 登出后写入的占位值，命中时按已撤销处理
const revokedMarker = "revoked"

// TokenCache 基于一致性哈希的 JWT 解析结果缓存。
// 每个带 token 的请求都要解析一次 claims，缓存命中时省掉签名校验。
type TokenCache struct {
	redis radix.Client
	ring  *ConsistentHashRing
	ttl   time.Duration
}

// NewTokenCache 构建缓存器
func NewTokenCache(redis radix.Client, ring *ConsistentHashRing, ttl time.Duration) *TokenCache {
	if ring == nil {
		ring = NewConsistentHashRing(nil, 0)
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &TokenCache{
		redis: redis,
		ring:  ring,
		ttl:   ttl,
	}
}

func (c *TokenCache) cacheKey(token string) string {
	node := c.ring.GetNode(token)
	sum := sha1.Sum([]byte(token))
	return fmt.Sprintf("auth:jwt:%s:%s", node, hex.EncodeToString(sum[:]))
}

// Get 尝试命中缓存的 claims
func (c *TokenCache) Get(ctx context.Context, token string) (*Claims, bool, error) {
	if c.redis == nil {
		return nil, false, nil
	}
	key := c.cacheKey(token)
	var raw string
	if err := c.redis.Do(radix.Cmd(&raw, "GET", key)); err != nil {
		return nil, false, err
	}
	if raw == "" {
		return nil, false, nil
	}
	if raw == revokedMarker {
		return nil, false, ErrTokenRevoked
	}
	var claims Claims
	if err := json.Unmarshal([]byte(raw), &claims); err != nil {
		// 数据损坏，清理后走正常解析
		_ = c.redis.Do(radix.Cmd(nil, "DEL", key))
		return nil, false, nil
	}
	return &claims, true, nil
}

// Set 缓存解析结果
func (c *TokenCache) Set(ctx context.Context, token string, claims *Claims) error {
	if c.redis == nil || claims == nil {
		return nil
	}
	key := c.cacheKey(token)
	body, _ := json.Marshal(claims)
	if err := c.redis.Do(radix.FlatCmd(nil, "SETEX", key, int64(c.ttl/time.Second), body)); err != nil {
		return err
	}
	return nil
}

// Revoke 撤销 token（登出时调用）：写入撤销标记并保留到 token 过期，
// 期间 Get 返回 ErrTokenRevoked，不会退回签名校验放行。
// ttl 不大于零时按缓存默认 TTL 兜底。没有 redis 时是空操作，
// 登出只能依赖客户端清除本地凭据。
func (c *TokenCache) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if c.redis == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	secs := int64(ttl / time.Second)
	if secs < 1 {
		secs = 1
	}
	return c.redis.Do(radix.FlatCmd(nil, "SETEX", c.cacheKey(token), secs, revokedMarker))
}
