package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/iamzaidakbar/ecommerce-app/internal/auth"
	"github.com/iamzaidakbar/ecommerce-app/internal/config"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/user"
	"github.com/iamzaidakbar/ecommerce-app/internal/service"
)

// RegisterAdminRoutes 注册后台管理端路由。
// 管理端单独起一个端口，所有接口要求 admin 角色。
func RegisterAdminRoutes(app *iris.Application, cfg *config.Config) {
	deps := BuildDeps(cfg)

	userSvc := service.NewUserService(deps.Users, deps.Redis, &cfg.JWT, &cfg.Auth)
	productSvc := service.NewProductService(deps.Products, deps.Redis)
	orderSvc := service.NewOrderService(deps.Orders, deps.Carts, deps.Products, deps.MQ)

	ring := auth.NewConsistentHashRing(cfg.Auth.Nodes, cfg.Auth.HashReplicas)
	tokenCache := auth.NewTokenCache(deps.Redis, ring, time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)

	api := app.Party("/api")

	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})

	// 管理端登录复用同一套凭据，但只有 admin 能继续往下走
	api.Post("/login", func(ctx iris.Context) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		token, u, err := userSvc.Login(ctx.Request().Context(), req.Email, req.Password)
		if err != nil {
			ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": err.Error()})
			return
		}
		if u.Role != user.RoleAdmin {
			ctx.StopWithJSON(403, iris.Map{"code": 403, "msg": "admin role required"})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{"token": token, "user": u}})
	})

	adminAPI := api.Party("/", RequireAuth(&cfg.JWT, tokenCache), func(ctx iris.Context) {
		if ctx.Values().GetString("role") != user.RoleAdmin {
			ctx.StopWithJSON(403, iris.Map{"code": 403, "msg": "admin role required"})
			return
		}
		ctx.Next()
	})

	// ---------- 用户管理 ----------

	adminAPI.Get("/users", func(ctx iris.Context) {
		list, err := userSvc.ListAll(ctx.Request().Context())
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// ---------- 商品管理 ----------

	adminAPI.Get("/products", func(ctx iris.Context) {
		list, err := productSvc.ListAll(ctx.Request().Context())
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	adminAPI.Post("/products", func(ctx iris.Context) {
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		p := &product.Product{}
		if err := req.applyTo(p); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := productSvc.Create(ctx.Request().Context(), p); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.StatusCode(201)
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	adminAPI.Put("/products/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), int64(id))
		if err != nil {
			ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "product not found"})
			return
		}
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := req.applyTo(p); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := productSvc.Update(ctx.Request().Context(), p); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	adminAPI.Delete("/products/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		if err := productSvc.Delete(ctx.Request().Context(), int64(id)); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "deleted"})
	})

	// 商品图片上传（multipart），保存后把相对路径写回 image_url
	adminAPI.Post("/products/{id:uint64}/image", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), int64(id))
		if err != nil {
			ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "product not found"})
			return
		}

		file, info, err := ctx.FormFile("image")
		if err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "image file required"})
			return
		}
		defer file.Close()

		if err := os.MkdirAll(cfg.Store.AssetsDir, 0o755); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		name := fmt.Sprintf("product_%d%s", id, filepath.Ext(info.Filename))
		dest := filepath.Join(cfg.Store.AssetsDir, name)
		if _, err := ctx.SaveFormFile(info, dest); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}

		p.ImageURL = "/assets/img/products/" + name
		if err := productSvc.Update(ctx.Request().Context(), p); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{"image_url": p.ImageURL}})
	})

	// ---------- 订单管理 ----------

	adminAPI.Get("/orders", func(ctx iris.Context) {
		limitStr := ctx.URLParamDefault("limit", "20")
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			limit = 20
		}
		list, err := orderSvc.ListRecent(ctx.Request().Context(), limit)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	adminAPI.Put("/orders/{id:uint64}/status", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		var req struct {
			Status string `json:"status"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := orderSvc.UpdateStatus(ctx.Request().Context(), int64(id), req.Status); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "status updated"})
	})

	// ---------- 运行统计 ----------

	adminAPI.Get("/stats", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "data": service.GetMonitor().GetStats()})
	})
}

// ---- 辅助结构 ----

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
}

func (r *productRequest) applyTo(p *product.Product) error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	switch r.Category {
	case product.CategoryMan, product.CategoryWoman, product.CategoryKid,
		product.CategoryAccessories, product.CategoryShoes, product.CategoryOuterwear:
	default:
		return fmt.Errorf("unknown category: %s", r.Category)
	}
	p.Name = r.Name
	p.Description = r.Description
	p.Price = r.Price
	p.Stock = r.Stock
	p.Category = r.Category
	if r.ImageURL != "" {
		p.ImageURL = r.ImageURL
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	return nil
}
