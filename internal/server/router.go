package server

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"

	"github.com/iamzaidakbar/ecommerce-app/internal/auth"
	"github.com/iamzaidakbar/ecommerce-app/internal/catalog"
	"github.com/iamzaidakbar/ecommerce-app/internal/config"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/cart"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/order"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
	"github.com/iamzaidakbar/ecommerce-app/internal/middleware"
	"github.com/iamzaidakbar/ecommerce-app/internal/service"
	"github.com/iamzaidakbar/ecommerce-app/internal/validation"
)

// RegisterRoutes 注册前台店面的 HTTP 路由
func RegisterRoutes(app *iris.Application, cfg *config.Config) {
	deps := BuildDeps(cfg)

	userSvc := service.NewUserService(deps.Users, deps.Redis, &cfg.JWT, &cfg.Auth)
	productSvc := service.NewProductService(deps.Products, deps.Redis)
	cartSvc := service.NewCartService(deps.Carts, deps.Products)
	wishlistSvc := service.NewWishlistService(deps.Wishlists, deps.Products)
	orderSvc := service.NewOrderService(deps.Orders, deps.Carts, deps.Products, deps.MQ)

	ring := auth.NewConsistentHashRing(cfg.Auth.Nodes, cfg.Auth.HashReplicas)
	tokenCache := auth.NewTokenCache(deps.Redis, ring, time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)

	// 静态资源：商品图片等
	app.HandleDir("/assets", iris.Dir("./web/assets"))

	api := app.Party("/api")

	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})

	// ---------- 认证 ----------

	authAPI := api.Party("/auth")
	authAPI.Use(middleware.AuthRateLimit())

	authAPI.Post("/register", func(ctx iris.Context) {
		var form validation.RegisterForm
		if err := ctx.ReadJSON(&form); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if errs := validation.Check(&form); errs != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "errors": errs})
			return
		}
		u, err := userSvc.Register(ctx.Request().Context(), form.FirstName, form.LastName, form.Email, form.Password)
		if err != nil {
			if errors.Is(err, service.ErrEmailTaken) {
				ctx.StopWithJSON(409, iris.Map{"code": 409, "msg": err.Error()})
				return
			}
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.StatusCode(201)
		ctx.JSON(iris.Map{"code": 0, "data": u})
	})

	authAPI.Post("/login", func(ctx iris.Context) {
		var form validation.LoginForm
		if err := ctx.ReadJSON(&form); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if errs := validation.Check(&form); errs != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "errors": errs})
			return
		}
		token, u, err := userSvc.Login(ctx.Request().Context(), form.Email, form.Password)
		if err != nil {
			ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{"token": token, "user": u}})
	})

	otpAPI := authAPI.Party("/")
	otpAPI.Use(middleware.OTPRateLimit())

	otpAPI.Post("/verify-email", func(ctx iris.Context) {
		var form validation.VerifyEmailForm
		if err := ctx.ReadJSON(&form); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if errs := validation.Check(&form); errs != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "errors": errs})
			return
		}
		u, err := userSvc.VerifyEmail(ctx.Request().Context(), form.Email, form.OTP)
		if err != nil {
			if errors.Is(err, service.ErrInvalidOTP) {
				ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
				return
			}
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": u})
	})

	otpAPI.Post("/resend-otp", func(ctx iris.Context) {
		var form validation.ForgotPasswordForm // 同样只有一个 email 字段
		if err := ctx.ReadJSON(&form); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if errs := validation.Check(&form); errs != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "errors": errs})
			return
		}
		if err := userSvc.ResendOTP(ctx.Request().Context(), form.Email); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "otp sent"})
	})

	authAPI.Post("/forgot-password", func(ctx iris.Context) {
		var form validation.ForgotPasswordForm
		if err := ctx.ReadJSON(&form); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if errs := validation.Check(&form); errs != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "errors": errs})
			return
		}
		// 无论邮箱是否存在都返回成功，避免探测
		if err := userSvc.ForgotPassword(ctx.Request().Context(), form.Email, uuid.NewString()); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "reset email sent"})
	})

	authAPI.Post("/reset-password", func(ctx iris.Context) {
		var form validation.ResetPasswordForm
		if err := ctx.ReadJSON(&form); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if errs := validation.Check(&form); errs != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "errors": errs})
			return
		}
		if err := userSvc.ResetPassword(ctx.Request().Context(), form.Token, form.Password); err != nil {
			if errors.Is(err, service.ErrInvalidResetToken) {
				ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
				return
			}
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "password reset"})
	})

	// ---------- 商品（无需登录） ----------

	api.Get("/products", func(ctx iris.Context) {
		st := catalog.NewFilterState()
		if v := ctx.URLParam("category"); v != "" {
			st.Category = v
		}
		if v, err := ctx.URLParamInt64("price_min"); err == nil && v >= 0 {
			st.PriceMin = v
		}
		if v, err := ctx.URLParamInt64("price_max"); err == nil && v >= 0 {
			st.PriceMax = v
		}
		if v := ctx.URLParam("sort"); v != "" {
			st.SortKey = v
		}
		list, err := productSvc.List(ctx.Request().Context(), st)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	api.Get("/products/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), int64(id))
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "product not found"})
				return
			}
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// ---------- 需要登录的接口 ----------

	requireAuth := RequireAuth(&cfg.JWT, tokenCache)
	userAPI := api.Party("/", requireAuth)

	userAPI.Post("/auth/logout", func(ctx iris.Context) {
		token := ctx.Values().GetString("token")
		// 写入撤销标记直到 token 过期，单删缓存会被签名校验兜回来
		var ttl time.Duration
		if claims, err := auth.ParseToken(&cfg.JWT, token); err == nil && claims.ExpiresAt != nil {
			ttl = time.Until(claims.ExpiresAt.Time)
		}
		_ = tokenCache.Revoke(ctx.Request().Context(), token, ttl)
		ctx.JSON(iris.Map{"code": 0, "msg": "logged out"})
	})

	// ---------- 购物车 ----------

	userAPI.Get("/cart", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		items, total, err := cartSvc.ListItems(ctx.Request().Context(), userID)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{"items": items, "total": total}})
	})

	userAPI.Post("/cart", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		var req struct {
			ProductID int64 `json:"product_id"`
			Quantity  int64 `json:"quantity"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		item, err := cartSvc.Add(ctx.Request().Context(), userID, req.ProductID, req.Quantity)
		if err != nil {
			writeCartError(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": item})
	})

	userAPI.Post("/cart/clear", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		if err := cartSvc.Clear(ctx.Request().Context(), userID); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "cart cleared"})
	})

	userAPI.Put("/cart/{productID:uint64}", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		pid, _ := ctx.Params().GetUint64("productID")
		var req struct {
			Quantity int64 `json:"quantity"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		item, err := cartSvc.UpdateQuantity(ctx.Request().Context(), userID, int64(pid), req.Quantity)
		if err != nil {
			writeCartError(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": item})
	})

	userAPI.Delete("/cart/{id:uint64}", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		id, _ := ctx.Params().GetUint64("id")
		if err := cartSvc.Remove(ctx.Request().Context(), userID, int64(id)); err != nil {
			writeCartError(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "removed"})
	})

	// ---------- 收藏夹 ----------

	userAPI.Get("/wishlist", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		entries, err := wishlistSvc.List(ctx.Request().Context(), userID)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": entries})
	})

	// "切换"由客户端按本地成员集合组合加/删，这里只提供加和删
	userAPI.Post("/wishlist", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		var req struct {
			ProductID int64 `json:"product_id"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := wishlistSvc.Add(ctx.Request().Context(), userID, req.ProductID); err != nil {
			if errors.Is(err, product.ErrNotFound) {
				ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "product not found"})
				return
			}
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.StatusCode(201)
		ctx.JSON(iris.Map{"code": 0, "msg": "added"})
	})

	userAPI.Delete("/wishlist/{productID:uint64}", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		pid, _ := ctx.Params().GetUint64("productID")
		if err := wishlistSvc.Remove(ctx.Request().Context(), userID, int64(pid)); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "removed"})
	})

	// ---------- 订单 ----------

	userAPI.Get("/orders", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		list, err := orderSvc.ListByUser(ctx.Request().Context(), userID)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	userAPI.Get("/orders/{id:uint64}", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		id, _ := ctx.Params().GetUint64("id")
		o, err := orderSvc.GetByID(ctx.Request().Context(), userID, int64(id))
		if err != nil {
			switch {
			case errors.Is(err, order.ErrNotFound):
				ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "order not found"})
			case errors.Is(err, service.ErrNotOwner):
				ctx.StopWithJSON(403, iris.Map{"code": 403, "msg": err.Error()})
			default:
				ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			}
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": o})
	})

	userAPI.Post("/orders/checkout", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		var req struct {
			Shipping order.Address `json:"shipping_address"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		o, err := orderSvc.Checkout(ctx.Request().Context(), userID, req.Shipping)
		if err != nil {
			if errors.Is(err, service.ErrEmptyCart) {
				ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
				return
			}
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.StatusCode(201)
		ctx.JSON(iris.Map{"code": 0, "data": o})
	})

	// ---------- 个人中心 ----------

	userAPI.Get("/users/profile", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		u, err := userSvc.GetProfile(ctx.Request().Context(), userID)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{
			"user": u,
			"tabs": userSvc.ProfileTabs(u.Role),
		}})
	})

	userAPI.Put("/users/profile", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		var form validation.ProfileForm
		if err := ctx.ReadJSON(&form); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if errs := validation.Check(&form); errs != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "errors": errs})
			return
		}
		u, err := userSvc.UpdateProfile(ctx.Request().Context(), userID, form.FirstName, form.LastName, form.Email)
		if err != nil {
			if errors.Is(err, service.ErrEmailTaken) {
				ctx.StopWithJSON(409, iris.Map{"code": 409, "msg": err.Error()})
				return
			}
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": u})
	})

	userAPI.Post("/users/change-password", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		var form validation.ChangePasswordForm
		if err := ctx.ReadJSON(&form); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if errs := validation.Check(&form); errs != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "errors": errs})
			return
		}
		if err := userSvc.ChangePassword(ctx.Request().Context(), userID, form.CurrentPassword, form.NewPassword); err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "current password is incorrect"})
				return
			}
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "password changed"})
	})
}

// RequireAuth 解析 Bearer token，claims 先查缓存再走签名校验。
// 解析结果写入 ctx.Values：user_id / email / role / token。
func RequireAuth(jwtCfg *config.JWTConfig, cache *auth.TokenCache) iris.Handler {
	return func(ctx iris.Context) {
		token := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "missing token"})
			return
		}

		claims, hit, err := cache.Get(ctx.Request().Context(), token)
		if errors.Is(err, auth.ErrTokenRevoked) {
			ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "invalid token"})
			return
		}
		if err != nil {
			service.GetMonitor().RecordRedisError()
		}
		if !hit {
			claims, err = auth.ParseToken(jwtCfg, token)
			if err != nil {
				ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "invalid token"})
				return
			}
			if err := cache.Set(ctx.Request().Context(), token, claims); err != nil {
				service.GetMonitor().RecordRedisError()
			}
		}

		ctx.Values().Set("user_id", claims.UserID)
		ctx.Values().Set("email", claims.Email)
		ctx.Values().Set("role", claims.Role)
		ctx.Values().Set("token", token)
		ctx.Next()
	}
}

// writeCartError 购物车接口共用的错误映射
func writeCartError(ctx iris.Context, err error) {
	switch {
	case errors.Is(err, product.ErrNotFound):
		ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "product not found"})
	case errors.Is(err, cart.ErrItemNotFound):
		ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "cart item not found"})
	case errors.Is(err, service.ErrOutOfStock):
		ctx.StopWithJSON(409, iris.Map{"code": 409, "msg": err.Error()})
	default:
		ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
	}
}
