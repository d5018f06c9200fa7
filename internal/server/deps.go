package server

import (
	radix "github.com/mediocregopher/radix/v3"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iamzaidakbar/ecommerce-app/internal/config"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/cart"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/order"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/user"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/wishlist"
	"github.com/iamzaidakbar/ecommerce-app/internal/infra/mq"
	"github.com/iamzaidakbar/ecommerce-app/internal/infra/redis"
	"github.com/iamzaidakbar/ecommerce-app/internal/repository/fixture"
	"github.com/iamzaidakbar/ecommerce-app/internal/repository/mysql"
)

// Deps 路由层用到的仓储和基础设施句柄。
// store.source=fixture 时仓储走内存实现，Redis/MQ 为 nil，
// 各服务对 nil 句柄做降级（直查、不发消息）。
type Deps struct {
	Users     user.Repository
	Products  product.Repository
	Carts     cart.Repository
	Wishlists wishlist.Repository
	Orders    order.Repository

	Redis radix.Client
	MQ    *amqp.Connection
}

// BuildDeps 按配置组装仓储与基础设施
func BuildDeps(cfg *config.Config) *Deps {
	if cfg.Store.Source == "fixture" {
		store := fixture.NewStore()
		return &Deps{
			Users:     store.Users(),
			Products:  store.Products(),
			Carts:     store.Carts(),
			Wishlists: store.Wishlists(),
			Orders:    store.Orders(),
		}
	}

	db := mysql.Init(&cfg.MySQL)
	return &Deps{
		Users:     mysql.NewUserRepository(db),
		Products:  mysql.NewProductRepository(db),
		Carts:     mysql.NewCartRepository(db),
		Wishlists: mysql.NewWishlistRepository(db),
		Orders:    mysql.NewOrderRepository(db),
		Redis:     redis.Init(&cfg.Redis),
		MQ:        mq.Init(&cfg.RabbitMQ),
	}
}
