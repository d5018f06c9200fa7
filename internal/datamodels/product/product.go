package product

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound 商品不存在（含已下架后被删除的情况）
var ErrNotFound = errors.New("product not found")

// 后端分类编码。前端筛选项（clothing/shirts/...）到编码集合的映射见 internal/catalog。
const (
	CategoryMan         = "MAN"
	CategoryWoman       = "WOMAN"
	CategoryKid         = "KID"
	CategoryAccessories = "ACCESSORIES"
	CategoryShoes       = "SHOES"
	CategoryOuterwear   = "OUTERWEAR"
)

// Product 商品模型
type Product struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Description string    `gorm:"size:512" json:"description"`
	Price       int64     `gorm:"not null" json:"price"` // 分
	Category    string    `gorm:"size:32;index" json:"category"`
	ImageURL    string    `gorm:"size:255" json:"image_url"`
	Stock       int64     `gorm:"not null" json:"stock"`
	IsActive    bool      `gorm:"index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Repository 商品仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	ListAll(ctx context.Context) ([]*Product, error)
	ListActive(ctx context.Context) ([]*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
}
