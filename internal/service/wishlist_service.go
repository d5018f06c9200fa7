package service

import (
	"context"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/wishlist"
)

// WishlistService 收藏夹。条目只有商品引用，加/删/查三个动作，
// "切换"由成员判定 + 加或删组合出来。
type WishlistService struct {
	repo        wishlist.Repository
	productRepo product.Repository
}

// NewWishlistService 创建收藏夹服务
func NewWishlistService(repo wishlist.Repository, productRepo product.Repository) *WishlistService {
	return &WishlistService{repo: repo, productRepo: productRepo}
}

// List 当前用户收藏的条目
func (s *WishlistService) List(ctx context.Context, userID int64) ([]*wishlist.Entry, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Add 收藏商品，重复收藏是无操作
func (s *WishlistService) Add(ctx context.Context, userID, productID int64) error {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return err
	}
	exists, err := s.repo.Contains(ctx, userID, productID)
	if err != nil {
		GetMonitor().RecordDBError()
		return err
	}
	if exists {
		return nil
	}
	if err := s.repo.Add(ctx, &wishlist.Entry{UserID: userID, ProductID: productID}); err != nil {
		GetMonitor().RecordDBError()
		return err
	}
	GetMonitor().RecordWishlistToggle()
	return nil
}

// Remove 取消收藏
func (s *WishlistService) Remove(ctx context.Context, userID, productID int64) error {
	if err := s.repo.RemoveByProduct(ctx, userID, productID); err != nil {
		GetMonitor().RecordDBError()
		return err
	}
	GetMonitor().RecordWishlistToggle()
	return nil
}

// Toggle 在收藏/未收藏之间切换，返回切换后的成员状态。
// 两次连续调用回到原点。跨设备并发切换没有服务端仲裁，见设计说明。
func (s *WishlistService) Toggle(ctx context.Context, userID, productID int64) (bool, error) {
	exists, err := s.repo.Contains(ctx, userID, productID)
	if err != nil {
		GetMonitor().RecordDBError()
		return false, err
	}
	if exists {
		if err := s.Remove(ctx, userID, productID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := s.Add(ctx, userID, productID); err != nil {
		return false, err
	}
	return true, nil
}

// Contains 成员判定
func (s *WishlistService) Contains(ctx context.Context, userID, productID int64) (bool, error) {
	return s.repo.Contains(ctx, userID, productID)
}
