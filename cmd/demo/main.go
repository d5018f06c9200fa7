package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/iamzaidakbar/ecommerce-app/internal/catalog"
	"github.com/iamzaidakbar/ecommerce-app/internal/config"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/order"
	"github.com/iamzaidakbar/ecommerce-app/internal/logging"
	"github.com/iamzaidakbar/ecommerce-app/internal/server"
	"github.com/iamzaidakbar/ecommerce-app/internal/storefront"
)

func formatPrice(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100.0)
}

// demo 把整条链路走一遍：起一个 fixture 数据源的店面服务，
// 再用 storefront 客户端登录、逛商品、加购、收藏、下单。
// 不需要 MySQL/Redis/RabbitMQ，直接 go run ./cmd/demo。
func main() {
	logging.Init(true)

	cfg := config.DefaultConfig()
	cfg.Store.Source = "fixture"
	cfg.Server.Port = 8089

	app := iris.New()
	app.Logger().SetLevel("error")
	server.RegisterRoutes(app, cfg)
	go func() {
		if err := app.Listen(cfg.Server.Addr()); err != nil {
			log.Fatalf("demo server exited: %v", err)
		}
	}()
	time.Sleep(300 * time.Millisecond)

	ctx := context.Background()
	credsPath := filepath.Join(os.TempDir(), "storefront-demo", "creds.json")
	client := storefront.NewClient(fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port), storefront.NewFileStore(credsPath))

	u, err := client.Login(ctx, "john.doe@example.com", "Password123")
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}
	fmt.Printf("logged in as %s %s <%s>\n\n", u.FirstName, u.LastName, u.Email)

	st := catalog.NewFilterState()
	st.SortKey = catalog.SortPriceAsc
	products, err := client.Products(ctx, st)
	if err != nil {
		log.Fatalf("list products failed: %v", err)
	}
	fmt.Println("catalog (price ascending):")
	for _, p := range products {
		fmt.Printf("  #%-2d %-28s %-12s %s\n", p.ID, p.Name, p.Category, formatPrice(p.Price))
	}

	if err := client.AddToCart(ctx, products[0].ID, 2); err != nil {
		log.Fatalf("add to cart failed: %v", err)
	}
	if err := client.AddToCart(ctx, products[2].ID, 1); err != nil {
		log.Fatalf("add to cart failed: %v", err)
	}
	cart, err := client.Cart(ctx)
	if err != nil {
		log.Fatalf("load cart failed: %v", err)
	}
	fmt.Printf("\ncart: %d lines, total %s\n", len(cart.Items), formatPrice(cart.Total))

	added, err := client.ToggleWishlist(ctx, products[1].ID)
	if err != nil {
		log.Fatalf("toggle wishlist failed: %v", err)
	}
	fmt.Printf("wishlist toggle on #%d -> in_wishlist=%v\n", products[1].ID, added)

	o, err := client.Checkout(ctx, order.Address{
		Street:     "1 Fashion Ave",
		City:       "Srinagar",
		State:      "JK",
		PostalCode: "190001",
		Country:    "IN",
	})
	if err != nil {
		log.Fatalf("checkout failed: %v", err)
	}
	fmt.Printf("\norder placed: %s status=%s total=%s\n", o.OrderNo, o.Status, formatPrice(o.Total))

	profile, err := client.Profile(ctx)
	if err != nil {
		log.Fatalf("load profile failed: %v", err)
	}
	fmt.Printf("profile tabs for role %q: %v\n", profile.User.Role, profile.Tabs)
}
