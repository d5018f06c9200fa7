package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrSessionExpired 服务端返回 401，本地凭据已清除，需要重新登录
var ErrSessionExpired = errors.New("session expired, please log in again")

// APIError 服务端业务错误
type APIError struct {
	Status int
	Code   int
	Msg    string
	// Fields 表单校验错误：字段名 -> 提示语
	Fields map[string]string
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for k, v := range e.Fields {
			parts = append(parts, k+": "+v)
		}
		return strings.Join(parts, "; ")
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}

type envelope struct {
	Code   int               `json:"code"`
	Msg    string            `json:"msg"`
	Data   json.RawMessage   `json:"data"`
	Errors map[string]string `json:"errors"`
}

// Client 店面 API 客户端。并发安全，一个进程共享一个实例。
type Client struct {
	base  string
	http  *http.Client
	creds CredentialStore
	cache *Cache
	pipe  *mutationPipeline
	state loadingState

	// 上一次拉取的收藏夹成员集合，Toggle 据此决定加还是删
	wishMu  sync.RWMutex
	wishSet map[int64]bool
}

// Option 客户端可选配置
type Option func(*Client)

// WithHTTPClient 替换底层 http.Client（测试注入）
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithCacheTTL 调整读缓存有效期
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache = NewCache(ttl) }
}

// NewClient 创建客户端。creds 为 nil 时使用内存凭据存储。
func NewClient(baseURL string, creds CredentialStore, opts ...Option) *Client {
	if creds == nil {
		creds = NewMemoryStore()
	}
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		creds:   creds,
		cache:   NewCache(0),
		pipe:    newMutationPipeline(),
		wishSet: make(map[int64]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Loading 当前进行中的变更标记
func (c *Client) Loading() Loading {
	return c.state.snapshot()
}

// do 发请求并解包响应。带 token 的请求遇到 401 时清除本地凭据。
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	creds, err := c.creds.Load()
	if err != nil {
		return err
	}
	if creds.Token != "" {
		req.Header.Set("Authorization", "Bearer "+creds.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && creds.Token != "" {
		// token 失效：丢弃本地凭据并清空缓存，界面回到未登录态
		if err := c.creds.Clear(); err != nil {
			zap.L().Warn("clear credentials failed", zap.Error(err))
		}
		c.cache.InvalidatePrefix("")
		return ErrSessionExpired
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 400 || env.Code != 0 {
		return &APIError{Status: resp.StatusCode, Code: env.Code, Msg: env.Msg, Fields: env.Errors}
	}
	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// getCached 带缓存的 GET：命中直接解码缓存体，未命中拉取后写缓存
func (c *Client) getCached(ctx context.Context, key, path string, out interface{}) error {
	if body, ok := c.cache.Get(key); ok {
		return json.Unmarshal(body, out)
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return err
	}
	c.cache.Set(key, raw)
	return json.Unmarshal(raw, out)
}
