// Package fixture 提供一套内存实现的仓储，数据为内置演示数据。
// 与 mysql 包实现同一组 Repository 接口，通过配置 store.source=fixture 切换，
// 用于本地演示和测试，不需要任何外部依赖。
package fixture

import (
	"sync"
	"time"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/cart"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/order"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/user"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/wishlist"
)

// Store 内存数据源，持有所有集合。各仓储共享同一把锁。
type Store struct {
	mu sync.RWMutex

	products  map[int64]*product.Product
	users     map[int64]*user.User
	cartItems map[int64]*cart.Item
	wishes    map[int64]*wishlist.Entry
	orders    map[int64]*order.Order

	nextID int64
}

// NewStore 创建并填充演示数据
func NewStore() *Store {
	s := &Store{
		products:  make(map[int64]*product.Product),
		users:     make(map[int64]*user.User),
		cartItems: make(map[int64]*cart.Item),
		wishes:    make(map[int64]*wishlist.Entry),
		orders:    make(map[int64]*order.Order),
	}
	s.seed()
	return s
}

func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

// 演示账号密码均为 Password123
const (
	seedSalt     = "demo-salt"
	seedPassword = "7995a4c5bf5ad2ae72f27df6cdd562b59252b1d53855dc40ed3bdb31988e9058"
)

func (s *Store) seed() {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	seedProducts := []*product.Product{
		{Name: "Oversized Cotton T-Shirt", Description: "Premium cotton oversized t-shirt with minimalist design", Price: 2999, Category: product.CategoryMan, ImageURL: "/assets/img/products/tshirt.jpg", Stock: 100},
		{Name: "Slim Fit Denim Jeans", Description: "Stretch denim with a clean tapered leg", Price: 5999, Category: product.CategoryMan, ImageURL: "/assets/img/products/jeans.jpg", Stock: 80},
		{Name: "Pleated Midi Skirt", Description: "Flowing pleated skirt in soft crepe", Price: 4999, Category: product.CategoryWoman, ImageURL: "/assets/img/products/skirt.jpg", Stock: 60},
		{Name: "Ribbed Knit Sweater", Description: "Cropped ribbed sweater with mock neck", Price: 3999, Category: product.CategoryWoman, ImageURL: "/assets/img/products/sweater.jpg", Stock: 70},
		{Name: "Kids Denim Jacket", Description: "Washed denim jacket for kids", Price: 3499, Category: product.CategoryKid, ImageURL: "/assets/img/products/kids-jacket.jpg", Stock: 50},
		{Name: "Leather Chelsea Boots", Description: "Polished leather boots with elastic panels", Price: 12999, Category: product.CategoryShoes, ImageURL: "/assets/img/products/boots.jpg", Stock: 40},
		{Name: "Wool Blend Overcoat", Description: "Longline overcoat in a wool blend", Price: 15999, Category: product.CategoryOuterwear, ImageURL: "/assets/img/products/coat.jpg", Stock: 30},
		{Name: "Minimal Leather Belt", Description: "Full grain leather belt with matte buckle", Price: 1999, Category: product.CategoryAccessories, ImageURL: "/assets/img/products/belt.jpg", Stock: 120},
	}
	for i, p := range seedProducts {
		p.ID = s.allocID()
		p.IsActive = true
		p.CreatedAt = base.Add(time.Duration(i) * 24 * time.Hour)
		p.UpdatedAt = p.CreatedAt
		s.products[p.ID] = p
	}

	admin := &user.User{
		ID:              s.allocID(),
		FirstName:       "Zaid",
		LastName:        "Akbar",
		Email:           "admin@example.com",
		Password:        seedPassword,
		Salt:            seedSalt,
		Role:            user.RoleAdmin,
		IsEmailVerified: true,
		CreatedAt:       base,
		UpdatedAt:       base,
	}
	s.users[admin.ID] = admin

	demo := &user.User{
		ID:              s.allocID(),
		FirstName:       "John",
		LastName:        "Doe",
		Email:           "john.doe@example.com",
		Password:        seedPassword,
		Salt:            seedSalt,
		Role:            user.RoleUser,
		IsEmailVerified: true,
		CreatedAt:       base,
		UpdatedAt:       base,
	}
	s.users[demo.ID] = demo

	// 一个已送达的演示订单，给 orders 标签页一点内容
	first := s.products[1]
	o := &order.Order{
		ID:      s.allocID(),
		OrderNo: "ord-demo-0001",
		UserID:  demo.ID,
		Status:  order.StatusDelivered,
		Total:   first.Price * 2,
		Shipping: order.Address{
			Street:     "123 Main St",
			City:       "New York",
			State:      "NY",
			PostalCode: "10001",
			Country:    "USA",
		},
		CreatedAt: base.Add(-5 * 24 * time.Hour),
		UpdatedAt: base,
	}
	o.Items = []order.Item{{
		ID:        s.allocID(),
		OrderID:   o.ID,
		ProductID: first.ID,
		Quantity:  2,
		UnitPrice: first.Price,
	}}
	s.orders[o.ID] = o
}

// Products 商品仓储
func (s *Store) Products() product.Repository { return &productRepo{s: s} }

// Users 用户仓储
func (s *Store) Users() user.Repository { return &userRepo{s: s} }

// Carts 购物车仓储
func (s *Store) Carts() cart.Repository { return &cartRepo{s: s} }

// Wishlists 收藏夹仓储
func (s *Store) Wishlists() wishlist.Repository { return &wishlistRepo{s: s} }

// Orders 订单仓储
func (s *Store) Orders() order.Repository { return &orderRepo{s: s} }
