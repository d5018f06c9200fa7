package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/wishlist"
)

type wishlistRepo struct {
	db *gorm.DB
}

// NewWishlistRepository 创建收藏夹仓储
func NewWishlistRepository(db *gorm.DB) wishlist.Repository {
	return &wishlistRepo{db: db}
}

func (r *wishlistRepo) ListByUser(ctx context.Context, userID int64) ([]*wishlist.Entry, error) {
	var list []*wishlist.Entry
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *wishlistRepo) Add(ctx context.Context, e *wishlist.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *wishlistRepo) RemoveByProduct(ctx context.Context, userID, productID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&wishlist.Entry{}).Error
}

func (r *wishlistRepo) Contains(ctx context.Context, userID, productID int64) (bool, error) {
	var e wishlist.Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
