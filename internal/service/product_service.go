package service

import (
	"context"
	"encoding/json"
	"fmt"

	radix "github.com/mediocregopher/radix/v3"
	"go.uber.org/zap"

	"github.com/iamzaidakbar/ecommerce-app/internal/catalog"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
)

const (
	redisCatalogVersionKey = "catalog:ver"
	redisCatalogListKey    = "catalog:list:%d:%s:%d:%d:%s" // version, category, lo, hi, sort
	catalogCacheTTLSeconds = 300
)

// ProductService 商品读写 + 筛选排序管线。
// 列表读取走 Redis 旁路缓存，商品每次变更把版本号 +1，旧版本的键等 TTL 自然过期，
// 不需要逐个删除（和前端"失效后重拉"的语义一致）。
type ProductService struct {
	repo  product.Repository
	redis radix.Client
}

// NewProductService 创建商品服务
func NewProductService(repo product.Repository, redis radix.Client) *ProductService {
	return &ProductService{repo: repo, redis: redis}
}

// List 返回应用筛选状态后的在售商品列表
func (s *ProductService) List(ctx context.Context, st catalog.FilterState) ([]*product.Product, error) {
	if cached, ok := s.readListCache(st); ok {
		return cached, nil
	}

	list, err := s.repo.ListActive(ctx)
	if err != nil {
		GetMonitor().RecordDBError()
		return nil, err
	}
	out := st.Apply(list)

	s.writeListCache(st, out)
	return out, nil
}

// ListAll 后台用：全部商品，含下架
func (s *ProductService) ListAll(ctx context.Context) ([]*product.Product, error) {
	return s.repo.ListAll(ctx)
}

// GetByID 查询单个商品
func (s *ProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create 新建商品并失效列表缓存
func (s *ProductService) Create(ctx context.Context, p *product.Product) error {
	if p.Price < 0 {
		return fmt.Errorf("price must be >= 0")
	}
	if p.Stock < 0 {
		return fmt.Errorf("stock must be >= 0")
	}
	if err := s.repo.Create(ctx, p); err != nil {
		GetMonitor().RecordDBError()
		return err
	}
	s.bumpCatalogVersion()
	return nil
}

// Update 更新商品并失效列表缓存
func (s *ProductService) Update(ctx context.Context, p *product.Product) error {
	if err := s.repo.Update(ctx, p); err != nil {
		GetMonitor().RecordDBError()
		return err
	}
	s.bumpCatalogVersion()
	return nil
}

// Delete 删除商品并失效列表缓存
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		GetMonitor().RecordDBError()
		return err
	}
	s.bumpCatalogVersion()
	return nil
}

func (s *ProductService) catalogVersion() int64 {
	if s.redis == nil {
		return 0
	}
	var ver int64
	if err := s.redis.Do(radix.Cmd(&ver, "GET", redisCatalogVersionKey)); err != nil {
		GetMonitor().RecordRedisError()
	}
	return ver
}

func (s *ProductService) bumpCatalogVersion() {
	if s.redis == nil {
		return
	}
	if err := s.redis.Do(radix.Cmd(nil, "INCR", redisCatalogVersionKey)); err != nil {
		GetMonitor().RecordRedisError()
	}
}

func (s *ProductService) listCacheKey(st catalog.FilterState) string {
	return fmt.Sprintf(redisCatalogListKey, s.catalogVersion(), st.Category, st.PriceMin, st.PriceMax, st.SortKey)
}

func (s *ProductService) readListCache(st catalog.FilterState) ([]*product.Product, bool) {
	if s.redis == nil {
		return nil, false
	}
	var raw string
	if err := s.redis.Do(radix.Cmd(&raw, "GET", s.listCacheKey(st))); err != nil {
		GetMonitor().RecordRedisError()
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	var list []*product.Product
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		zap.L().Warn("catalog cache corrupted", zap.Error(err))
		return nil, false
	}
	return list, true
}

func (s *ProductService) writeListCache(st catalog.FilterState, list []*product.Product) {
	if s.redis == nil {
		return
	}
	body, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := s.redis.Do(radix.FlatCmd(nil, "SETEX", s.listCacheKey(st), catalogCacheTTLSeconds, body)); err != nil {
		GetMonitor().RecordRedisError()
	}
}
