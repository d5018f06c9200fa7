package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamzaidakbar/ecommerce-app/internal/catalog"
)

func writeOK(w http.ResponseWriter, data interface{}) {
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": 0, "data": data})
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": status, "msg": msg})
}

func TestLoginStoresCredentials(t *testing.T) {
	var sawAuth atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, map[string]interface{}{
			"token": "tok-123",
			"user":  map[string]interface{}{"id": 1, "email": "john.doe@example.com"},
		})
	})
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer tok-123" {
			sawAuth.Store(true)
		}
		writeOK(w, map[string]interface{}{"items": []interface{}{}, "total": 0})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewMemoryStore()
	c := NewClient(srv.URL, store)

	u, err := c.Login(context.Background(), "john.doe@example.com", "Password123")
	require.NoError(t, err)
	assert.Equal(t, "john.doe@example.com", u.Email)
	assert.True(t, c.LoggedIn())

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", creds.Token)

	_, err = c.Cart(context.Background())
	require.NoError(t, err)
	assert.True(t, sawAuth.Load())
}

func TestSessionExpiredClearsCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusUnauthorized, "invalid token")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewMemoryStore()
	require.NoError(t, store.Save(Credentials{Token: "stale", Email: "john.doe@example.com"}))
	c := NewClient(srv.URL, store)

	_, err := c.Cart(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, c.LoggedIn())
}

func TestProductsCachedPerFilterState(t *testing.T) {
	var hits atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeOK(w, []map[string]interface{}{{"id": 1, "name": "Coat", "price": 15999}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	st := catalog.NewFilterState()

	list, err := c.Products(context.Background(), st)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Coat", list[0].Name)

	_, err = c.Products(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load())

	// 换筛选状态是另一个缓存键
	st.Category = "shoes"
	_, err = c.Products(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestCartMutationInvalidatesCache(t *testing.T) {
	var cartHits atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			writeOK(w, map[string]interface{}{"id": 1})
			return
		}
		cartHits.Add(1)
		writeOK(w, map[string]interface{}{"items": []interface{}{}, "total": 0})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	ctx := context.Background()

	_, err := c.Cart(ctx)
	require.NoError(t, err)
	_, err = c.Cart(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cartHits.Load())

	require.NoError(t, c.AddToCart(ctx, 1, 2))

	_, err = c.Cart(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cartHits.Load())
}

func TestUpdateQuantityClampsBeforeSend(t *testing.T) {
	var gotQuantity atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/5", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Quantity int64 `json:"quantity"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotQuantity.Store(req.Quantity)
		writeOK(w, map[string]interface{}{"id": 1, "quantity": req.Quantity})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	require.NoError(t, c.UpdateQuantity(context.Background(), 5, -3))
	assert.Equal(t, int64(1), gotQuantity.Load())
}

func TestToggleWishlistComposesAddAndRemove(t *testing.T) {
	var sawAdd, sawRemove atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/api/wishlist", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			sawAdd.Store(true)
		}
		writeOK(w, nil)
	})
	mux.HandleFunc("/api/wishlist/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete && r.URL.Path == "/api/wishlist/7" {
			sawRemove.Store(true)
		}
		writeOK(w, nil)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	ctx := context.Background()

	// 本地集合里没有 7，第一次切换走新增
	added, err := c.ToggleWishlist(ctx, 7)
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, c.InWishlist(7))
	assert.True(t, sawAdd.Load())
	assert.False(t, sawRemove.Load())

	// 第二次切换走删除
	added, err = c.ToggleWishlist(ctx, 7)
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, c.InWishlist(7))
	assert.True(t, sawRemove.Load())
}

func TestLoginInvalidEmailRejectedLocally(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeOK(w, nil)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Login(context.Background(), "not-an-email", "Password123")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid email format", apiErr.Fields["Email"])
	// 校验不过的表单不出网
	assert.Equal(t, int64(0), hits.Load())
	assert.False(t, c.LoggedIn())
}

func TestRegisterInvalidEmailRejectedLocally(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeOK(w, nil)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Register(context.Background(), "John", "Doe", "not-an-email", "Password123")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid email format", apiErr.Fields["Email"])
	assert.Equal(t, int64(0), hits.Load())
	assert.Empty(t, c.PendingVerificationEmail())
}

func TestValidationErrorsSurfaceFields(t *testing.T) {
	// 本地校验能过、服务端仍拒绝时，字段错误同样经 Fields 透出
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code":   400,
			"errors": map[string]string{"Email": "Email already registered"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Register(context.Background(), "John", "Doe", "john.doe@example.com", "Password123")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Email already registered", apiErr.Fields["Email"])
}

func TestLogoutClearsLocalState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, nil)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewMemoryStore()
	require.NoError(t, store.Save(Credentials{Token: "tok", Email: "john.doe@example.com"}))
	c := NewClient(srv.URL, store)

	require.NoError(t, c.Logout(context.Background()))
	assert.False(t, c.LoggedIn())
}
