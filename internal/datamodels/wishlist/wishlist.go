package wishlist

import (
	"context"
	"time"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
)

// Entry 收藏条目：只记录商品引用，没有数量概念。
// 成员判定就是 (user_id, product_id) 是否存在。
type Entry struct {
	ID        int64            `gorm:"primaryKey" json:"id"`
	UserID    int64            `gorm:"index:idx_wish_user_product,unique;not null" json:"user_id"`
	ProductID int64            `gorm:"index:idx_wish_user_product,unique;not null" json:"product_id"`
	Product   *product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Repository 收藏夹仓储接口
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*Entry, error)
	Add(ctx context.Context, e *Entry) error
	RemoveByProduct(ctx context.Context, userID, productID int64) error
	Contains(ctx context.Context, userID, productID int64) (bool, error)
}
