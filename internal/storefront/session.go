// Package storefront 是店面的 Go 客户端：
// 持久化登录凭据、带缓存的 API 访问、以及购物车/收藏夹的串行变更管线。
package storefront

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Credentials 登录凭据。PendingEmail 记录注册后尚未完成邮箱验证的地址，
// 用于引导用户回到验证页。
type Credentials struct {
	Token        string `json:"token"`
	Email        string `json:"email"`
	PendingEmail string `json:"pending_email,omitempty"`
}

// Empty 是否未登录
func (c Credentials) Empty() bool {
	return c.Token == ""
}

// CredentialStore 凭据存取。实现必须可以并发使用。
type CredentialStore interface {
	Load() (Credentials, error)
	Save(Credentials) error
	Clear() error
}

// MemoryStore 进程内凭据存储，测试和一次性脚本用
type MemoryStore struct {
	mu    sync.RWMutex
	creds Credentials
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds, nil
}

func (s *MemoryStore) Save(c Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = c
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	return nil
}

// FileStore 把凭据存成 JSON 文件，重启后保持登录态
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore 创建文件存储，path 为凭据文件路径
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var c Credentials
	body, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(body, &c); err != nil {
		// 文件损坏当作未登录处理
		return Credentials{}, nil
	}
	return c, nil
}

func (s *FileStore) Save(c Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, body, 0o600)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
