package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/cart"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
)

// ErrOutOfStock 库存不足
var ErrOutOfStock = errors.New("insufficient stock")

// CartService 购物车读写。所有变更落库后由调用方重拉列表，
// 服务端不维护任何本地缓存副本。
type CartService struct {
	repo        cart.Repository
	productRepo product.Repository
}

// NewCartService 创建购物车服务
func NewCartService(repo cart.Repository, productRepo product.Repository) *CartService {
	return &CartService{repo: repo, productRepo: productRepo}
}

// ListItems 当前用户的购物车行 + 总价（分）
func (s *CartService) ListItems(ctx context.Context, userID int64) ([]*cart.Item, int64, error) {
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		GetMonitor().RecordDBError()
		return nil, 0, err
	}
	return items, cart.Total(items), nil
}

// Add 加入购物车。已有同款商品时数量累加，而不是再开一行。
func (s *CartService) Add(ctx context.Context, userID, productID, quantity int64) (*cart.Item, error) {
	if quantity < 1 {
		quantity = 1
	}
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, product.ErrNotFound
	}

	existing, err := s.repo.GetItemByProduct(ctx, userID, productID)
	switch {
	case err == nil:
		existing.Quantity += quantity
		if p.Stock > 0 && existing.Quantity > p.Stock {
			return nil, fmt.Errorf("%w: only %d left", ErrOutOfStock, p.Stock)
		}
		if err := s.repo.UpdateItem(ctx, existing); err != nil {
			GetMonitor().RecordDBError()
			return nil, err
		}
		GetMonitor().RecordCartMutation()
		return existing, nil
	case errors.Is(err, cart.ErrItemNotFound):
		if p.Stock > 0 && quantity > p.Stock {
			return nil, fmt.Errorf("%w: only %d left", ErrOutOfStock, p.Stock)
		}
		item := &cart.Item{UserID: userID, ProductID: productID, Quantity: quantity, Product: p}
		if err := s.repo.AddItem(ctx, item); err != nil {
			GetMonitor().RecordDBError()
			return nil, err
		}
		GetMonitor().RecordCartMutation()
		return item, nil
	default:
		GetMonitor().RecordDBError()
		return nil, err
	}
}

// UpdateQuantity 修改数量。小于 1 的请求钳制成 1，行数量永远不会减到 0。
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID, quantity int64) (*cart.Item, error) {
	if quantity < 1 {
		quantity = 1
	}
	item, err := s.repo.GetItemByProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if item.Product != nil && item.Product.Stock > 0 && quantity > item.Product.Stock {
		return nil, fmt.Errorf("%w: only %d left", ErrOutOfStock, item.Product.Stock)
	}
	item.Quantity = quantity
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		GetMonitor().RecordDBError()
		return nil, err
	}
	GetMonitor().RecordCartMutation()
	return item, nil
}

// Remove 删除一行
func (s *CartService) Remove(ctx context.Context, userID, itemID int64) error {
	if err := s.repo.RemoveItem(ctx, userID, itemID); err != nil {
		GetMonitor().RecordDBError()
		return err
	}
	GetMonitor().RecordCartMutation()
	return nil
}

// Clear 清空整车
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		GetMonitor().RecordDBError()
		return err
	}
	GetMonitor().RecordCartMutation()
	return nil
}
