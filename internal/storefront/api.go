package storefront

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iamzaidakbar/ecommerce-app/internal/catalog"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/cart"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/order"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/user"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/wishlist"
	"github.com/iamzaidakbar/ecommerce-app/internal/validation"
)

// ---------- 认证 ----------

// checkForm 提交前先本地过表单校验，不通过的请求不会发出去
func checkForm(form interface{}) error {
	if errs := validation.Check(form); errs != nil {
		return &APIError{Status: http.StatusBadRequest, Code: 400, Fields: errs}
	}
	return nil
}

// Register 注册。成功后把邮箱记为待验证，引导去验证页。
func (c *Client) Register(ctx context.Context, firstName, lastName, email, password string) (*user.User, error) {
	if err := checkForm(&validation.RegisterForm{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	}); err != nil {
		return nil, err
	}
	var u user.User
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
		"password":   password,
	}, &u)
	if err != nil {
		return nil, err
	}
	creds, _ := c.creds.Load()
	creds.PendingEmail = email
	_ = c.creds.Save(creds)
	return &u, nil
}

// Login 登录并持久化凭据
func (c *Client) Login(ctx context.Context, email, password string) (*user.User, error) {
	if err := checkForm(&validation.LoginForm{Email: email, Password: password}); err != nil {
		return nil, err
	}
	var data struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &data)
	if err != nil {
		return nil, err
	}
	if err := c.creds.Save(Credentials{Token: data.Token, Email: email}); err != nil {
		return nil, err
	}
	c.cache.InvalidatePrefix("")
	return &data.User, nil
}

// Logout 登出：通知服务端失效 token 缓存，然后清本地凭据和读缓存
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	if err != nil && err != ErrSessionExpired {
		return err
	}
	if err := c.creds.Clear(); err != nil {
		return err
	}
	c.cache.InvalidatePrefix("")
	return nil
}

// VerifyEmail 提交验证码，成功后清掉待验证标记
func (c *Client) VerifyEmail(ctx context.Context, email, otp string) (*user.User, error) {
	if err := checkForm(&validation.VerifyEmailForm{Email: email, OTP: otp}); err != nil {
		return nil, err
	}
	var u user.User
	err := c.do(ctx, http.MethodPost, "/api/auth/verify-email", map[string]string{
		"email": email,
		"otp":   otp,
	}, &u)
	if err != nil {
		return nil, err
	}
	creds, _ := c.creds.Load()
	creds.PendingEmail = ""
	_ = c.creds.Save(creds)
	return &u, nil
}

// ResendOTP 重发验证码
func (c *Client) ResendOTP(ctx context.Context, email string) error {
	if err := checkForm(&validation.ForgotPasswordForm{Email: email}); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/auth/resend-otp", map[string]string{"email": email}, nil)
}

// ForgotPassword 发起密码找回
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if err := checkForm(&validation.ForgotPasswordForm{Email: email}); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword 按令牌重置密码
func (c *Client) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if err := checkForm(&validation.ResetPasswordForm{
		Token:           token,
		Password:        password,
		ConfirmPassword: confirm,
	}); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/auth/reset-password", map[string]string{
		"token":            token,
		"password":         password,
		"confirm_password": confirm,
	}, nil)
}

// PendingVerificationEmail 注册后尚未验证的邮箱，空串表示没有
func (c *Client) PendingVerificationEmail() string {
	creds, _ := c.creds.Load()
	return creds.PendingEmail
}

// LoggedIn 本地是否持有凭据
func (c *Client) LoggedIn() bool {
	creds, _ := c.creds.Load()
	return !creds.Empty()
}

// ---------- 商品 ----------

func productsKey(st catalog.FilterState) string {
	return fmt.Sprintf("products:%s:%d:%d:%s", st.Category, st.PriceMin, st.PriceMax, st.SortKey)
}

// Products 按筛选状态拉取商品列表，同一状态在缓存期内只打一次后端
func (c *Client) Products(ctx context.Context, st catalog.FilterState) ([]*product.Product, error) {
	path := fmt.Sprintf("/api/products?category=%s&price_min=%d&price_max=%d&sort=%s",
		st.Category, st.PriceMin, st.PriceMax, st.SortKey)
	var list []*product.Product
	if err := c.getCached(ctx, productsKey(st), path, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Product 单个商品详情
func (c *Client) Product(ctx context.Context, id int64) (*product.Product, error) {
	var p product.Product
	if err := c.getCached(ctx, fmt.Sprintf("products:id:%d", id), fmt.Sprintf("/api/products/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ---------- 购物车 ----------

// CartView 购物车行与总价（分）
type CartView struct {
	Items []*cart.Item `json:"items"`
	Total int64        `json:"total"`
}

// Cart 拉取购物车
func (c *Client) Cart(ctx context.Context) (*CartView, error) {
	var view CartView
	if err := c.getCached(ctx, "cart", "/api/cart", &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// AddToCart 加购。完成后只失效缓存，不在本地拼装购物车状态。
func (c *Client) AddToCart(ctx context.Context, productID, quantity int64) error {
	c.state.set(func(l *Loading) { l.AddingItem = true })
	defer c.state.set(func(l *Loading) { l.AddingItem = false })

	return c.pipe.run(mutationKey{kind: "cart", id: productID},
		func() error {
			return c.do(ctx, http.MethodPost, "/api/cart", map[string]int64{
				"product_id": productID,
				"quantity":   quantity,
			}, nil)
		},
		func() { c.cache.InvalidatePrefix("cart") },
	)
}

// UpdateQuantity 改数量，小于 1 按 1 处理
func (c *Client) UpdateQuantity(ctx context.Context, productID, quantity int64) error {
	if quantity < 1 {
		quantity = 1
	}
	c.state.set(func(l *Loading) { l.UpdatingProductID = productID })
	defer c.state.set(func(l *Loading) { l.UpdatingProductID = 0 })

	return c.pipe.run(mutationKey{kind: "cart", id: productID},
		func() error {
			return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/cart/%d", productID),
				map[string]int64{"quantity": quantity}, nil)
		},
		func() { c.cache.InvalidatePrefix("cart") },
	)
}

// RemoveFromCart 删除一行（按购物车行 ID）
func (c *Client) RemoveFromCart(ctx context.Context, itemID int64) error {
	c.state.set(func(l *Loading) { l.RemovingItemID = itemID })
	defer c.state.set(func(l *Loading) { l.RemovingItemID = 0 })

	return c.pipe.run(mutationKey{kind: "cart-item", id: itemID},
		func() error {
			return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/%d", itemID), nil, nil)
		},
		func() { c.cache.InvalidatePrefix("cart") },
	)
}

// ClearCart 清空购物车
func (c *Client) ClearCart(ctx context.Context) error {
	c.state.set(func(l *Loading) { l.ClearingCart = true })
	defer c.state.set(func(l *Loading) { l.ClearingCart = false })

	return c.pipe.run(mutationKey{kind: "cart", id: 0},
		func() error {
			return c.do(ctx, http.MethodPost, "/api/cart/clear", nil, nil)
		},
		func() { c.cache.InvalidatePrefix("cart") },
	)
}

// ---------- 收藏夹 ----------

// Wishlist 拉取收藏夹并刷新本地成员集合
func (c *Client) Wishlist(ctx context.Context) ([]*wishlist.Entry, error) {
	var entries []*wishlist.Entry
	if err := c.getCached(ctx, "wishlist", "/api/wishlist", &entries); err != nil {
		return nil, err
	}
	set := make(map[int64]bool, len(entries))
	for _, e := range entries {
		set[e.ProductID] = true
	}
	c.wishMu.Lock()
	c.wishSet = set
	c.wishMu.Unlock()
	return entries, nil
}

// InWishlist 按上一次拉取的数据判断是否已收藏
func (c *Client) InWishlist(productID int64) bool {
	c.wishMu.RLock()
	defer c.wishMu.RUnlock()
	return c.wishSet[productID]
}

// ToggleWishlist 切换收藏状态：按上一次拉取的成员集合决定是加还是删，
// 返回切换后是否在收藏夹中
func (c *Client) ToggleWishlist(ctx context.Context, productID int64) (bool, error) {
	c.state.set(func(l *Loading) { l.TogglingProductID = productID })
	defer c.state.set(func(l *Loading) { l.TogglingProductID = 0 })

	added := !c.InWishlist(productID)
	err := c.pipe.run(mutationKey{kind: "wishlist", id: productID},
		func() error {
			if added {
				return c.do(ctx, http.MethodPost, "/api/wishlist",
					map[string]int64{"product_id": productID}, nil)
			}
			return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/wishlist/%d", productID), nil, nil)
		},
		func() {
			c.wishMu.Lock()
			if added {
				c.wishSet[productID] = true
			} else {
				delete(c.wishSet, productID)
			}
			c.wishMu.Unlock()
			c.cache.InvalidatePrefix("wishlist")
		},
	)
	if err != nil {
		return c.InWishlist(productID), err
	}
	return added, nil
}

// ---------- 订单 ----------

// Orders 当前用户的订单列表
func (c *Client) Orders(ctx context.Context) ([]*order.Order, error) {
	var list []*order.Order
	if err := c.getCached(ctx, "orders", "/api/orders", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Order 单个订单
func (c *Client) Order(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Checkout 用当前购物车下单，成功后购物车和订单缓存都失效
func (c *Client) Checkout(ctx context.Context, shipping order.Address) (*order.Order, error) {
	var o order.Order
	err := c.do(ctx, http.MethodPost, "/api/orders/checkout",
		map[string]order.Address{"shipping_address": shipping}, &o)
	if err != nil {
		return nil, err
	}
	c.cache.InvalidatePrefix("cart")
	c.cache.InvalidatePrefix("orders")
	return &o, nil
}

// ---------- 个人中心 ----------

// ProfileView 用户资料和按角色可见的标签页
type ProfileView struct {
	User *user.User `json:"user"`
	Tabs []string   `json:"tabs"`
}

// Profile 拉取个人资料
func (c *Client) Profile(ctx context.Context) (*ProfileView, error) {
	var view ProfileView
	if err := c.getCached(ctx, "profile", "/api/users/profile", &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// UpdateProfile 更新资料，成功后资料缓存失效
func (c *Client) UpdateProfile(ctx context.Context, firstName, lastName, email string) (*user.User, error) {
	if err := checkForm(&validation.ProfileForm{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}); err != nil {
		return nil, err
	}
	var u user.User
	err := c.do(ctx, http.MethodPut, "/api/users/profile", map[string]string{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
	}, &u)
	if err != nil {
		return nil, err
	}
	c.cache.InvalidatePrefix("profile")
	return &u, nil
}

// ChangePassword 修改密码
func (c *Client) ChangePassword(ctx context.Context, current, next, confirm string) error {
	if err := checkForm(&validation.ChangePasswordForm{
		CurrentPassword: current,
		NewPassword:     next,
		ConfirmPassword: confirm,
	}); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/users/change-password", map[string]string{
		"current_password": current,
		"new_password":     next,
		"confirm_password": confirm,
	}, nil)
}
