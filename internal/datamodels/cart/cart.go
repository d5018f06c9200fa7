package cart

import (
	"context"
	"errors"
	"time"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
)

// ErrItemNotFound 购物车里没有这一行
var ErrItemNotFound = errors.New("cart item not found")

// Item 购物车行项目。Quantity 恒 >= 1，减到 0 的请求会被钳制。
type Item struct {
	ID        int64            `gorm:"primaryKey" json:"id"`
	UserID    int64            `gorm:"index:idx_cart_user_product,unique;not null" json:"user_id"`
	ProductID int64            `gorm:"index:idx_cart_user_product,unique;not null" json:"product_id"`
	Quantity  int64            `gorm:"not null;default:1" json:"quantity"`
	Product   *product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Subtotal 行小计（分）
func (i *Item) Subtotal() int64 {
	if i.Product == nil {
		return 0
	}
	return i.Product.Price * i.Quantity
}

// Repository 购物车仓储接口，集合按用户隔离
type Repository interface {
	ListItems(ctx context.Context, userID int64) ([]*Item, error)
	GetItem(ctx context.Context, userID, itemID int64) (*Item, error)
	GetItemByProduct(ctx context.Context, userID, productID int64) (*Item, error)
	AddItem(ctx context.Context, item *Item) error
	UpdateItem(ctx context.Context, item *Item) error
	RemoveItem(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

// Total 计算整车总价（分）
func Total(items []*Item) int64 {
	var total int64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}
