package order

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound 订单不存在
var ErrNotFound = errors.New("order not found")

// 订单状态流转：pending -> processing -> shipped -> delivered
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
)

// Address 收货地址（内嵌到订单表）
type Address struct {
	Street     string `gorm:"size:128" json:"street"`
	City       string `gorm:"size:64" json:"city"`
	State      string `gorm:"size:64" json:"state"`
	PostalCode string `gorm:"size:16" json:"postal_code"`
	Country    string `gorm:"size:64" json:"country"`
}

// Order 订单模型
type Order struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	OrderNo   string    `gorm:"uniqueIndex;size:64;not null" json:"order_no"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Status    string    `gorm:"size:16;index;not null" json:"status"`
	Total     int64     `gorm:"not null" json:"total"` // 分
	Items     []Item    `gorm:"foreignKey:OrderID" json:"items"`
	Shipping  Address   `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item 订单行项目，UnitPrice 固化下单时的单价（分）
type Item struct {
	ID        int64 `gorm:"primaryKey" json:"id"`
	OrderID   int64 `gorm:"index;not null" json:"order_id"`
	ProductID int64 `gorm:"index;not null" json:"product_id"`
	Quantity  int64 `gorm:"not null" json:"quantity"`
	UnitPrice int64 `gorm:"not null" json:"unit_price"`
}

// Repository 订单仓储接口
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)
	ListRecent(ctx context.Context, limit int) ([]*Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}
