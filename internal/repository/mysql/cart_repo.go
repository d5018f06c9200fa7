package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/cart"
)

type cartRepo struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepo{db: db}
}

func (r *cartRepo) ListItems(ctx context.Context, userID int64) ([]*cart.Item, error) {
	var list []*cart.Item
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *cartRepo) GetItem(ctx context.Context, userID, itemID int64) (*cart.Item, error) {
	var it cart.Item
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		First(&it, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrItemNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (r *cartRepo) GetItemByProduct(ctx context.Context, userID, productID int64) (*cart.Item, error) {
	var it cart.Item
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&it).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrItemNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (r *cartRepo) AddItem(ctx context.Context, item *cart.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepo) UpdateItem(ctx context.Context, item *cart.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *cartRepo) RemoveItem(ctx context.Context, userID, itemID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&cart.Item{}, itemID).Error
}

func (r *cartRepo) Clear(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&cart.Item{}).Error
}
