package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/order"
	"github.com/iamzaidakbar/ecommerce-app/internal/repository/fixture"
)

func newOrderServices(t *testing.T) (*OrderService, *CartService, *fixture.Store) {
	t.Helper()
	store := fixture.NewStore()
	cartSvc := NewCartService(store.Carts(), store.Products())
	orderSvc := NewOrderService(store.Orders(), store.Carts(), store.Products(), nil)
	return orderSvc, cartSvc, store
}

var testShipping = order.Address{
	Street:     "1 Fashion Ave",
	City:       "Srinagar",
	State:      "JK",
	PostalCode: "190001",
	Country:    "IN",
}

func TestCheckoutCreatesPendingAndClearsCart(t *testing.T) {
	orderSvc, cartSvc, _ := newOrderServices(t)
	ctx := context.Background()

	_, err := cartSvc.Add(ctx, testUserID, 1, 2)
	require.NoError(t, err)
	_, err = cartSvc.Add(ctx, testUserID, 3, 1)
	require.NoError(t, err)

	o, err := orderSvc.Checkout(ctx, testUserID, testShipping)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.NotEmpty(t, o.OrderNo)
	assert.Equal(t, int64(2*2999+4999), o.Total)
	require.Len(t, o.Items, 2)

	// 单价固化在订单行
	for _, it := range o.Items {
		assert.NotZero(t, it.UnitPrice)
	}

	items, _, err := cartSvc.ListItems(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckoutEmptyCart(t *testing.T) {
	orderSvc, _, _ := newOrderServices(t)

	_, err := orderSvc.Checkout(context.Background(), testUserID, testShipping)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestProcessOrderDeductsStock(t *testing.T) {
	orderSvc, cartSvc, store := newOrderServices(t)
	ctx := context.Background()

	_, err := cartSvc.Add(ctx, testUserID, 1, 2)
	require.NoError(t, err)
	o, err := orderSvc.Checkout(ctx, testUserID, testShipping)
	require.NoError(t, err)

	require.NoError(t, orderSvc.ProcessOrder(ctx, o.OrderNo))

	p, err := store.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(98), p.Stock)

	got, err := store.Orders().GetByOrderNo(ctx, o.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, order.StatusProcessing, got.Status)

	// 重复投递不再扣库存
	require.NoError(t, orderSvc.ProcessOrder(ctx, o.OrderNo))
	p, err = store.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(98), p.Stock)
}

func TestProcessOrderInsufficientStock(t *testing.T) {
	orderSvc, cartSvc, store := newOrderServices(t)
	ctx := context.Background()

	_, err := cartSvc.Add(ctx, testUserID, 1, 2)
	require.NoError(t, err)
	o, err := orderSvc.Checkout(ctx, testUserID, testShipping)
	require.NoError(t, err)

	// 下单和处理之间库存被别的渠道掏空
	p, err := store.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	p.Stock = 1
	require.NoError(t, store.Products().Update(ctx, p))

	err = orderSvc.ProcessOrder(ctx, o.OrderNo)
	assert.True(t, errors.Is(err, ErrOutOfStock))

	got, err := store.Orders().GetByOrderNo(ctx, o.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, got.Status)

	// 库存没有被部分扣掉
	p, err = store.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Stock)
}

func TestGetByIDChecksOwnership(t *testing.T) {
	orderSvc, _, _ := newOrderServices(t)
	ctx := context.Background()

	// 种子订单属于演示用户
	o, err := orderSvc.GetByID(ctx, testUserID, 11)
	require.NoError(t, err)
	assert.Equal(t, "ord-demo-0001", o.OrderNo)

	_, err = orderSvc.GetByID(ctx, 9, 11)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	orderSvc, _, _ := newOrderServices(t)

	err := orderSvc.UpdateStatus(context.Background(), 11, "teleported")
	assert.Error(t, err)

	require.NoError(t, orderSvc.UpdateStatus(context.Background(), 11, order.StatusShipped))
}
