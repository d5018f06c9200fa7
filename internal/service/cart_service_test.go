package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
	"github.com/iamzaidakbar/ecommerce-app/internal/repository/fixture"
)

const testUserID = int64(10) // 演示用户 john.doe

func newCartService(t *testing.T) (*CartService, *fixture.Store) {
	t.Helper()
	store := fixture.NewStore()
	return NewCartService(store.Carts(), store.Products()), store
}

func TestCartAddAndTotal(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	// T恤 2999 分 x2 + 半身裙 4999 分 x1
	_, err := svc.Add(ctx, testUserID, 1, 2)
	require.NoError(t, err)
	_, err = svc.Add(ctx, testUserID, 3, 1)
	require.NoError(t, err)

	items, total, err := svc.ListItems(ctx, testUserID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(2*2999+4999), total)
}

func TestCartAddSameProductMerges(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, testUserID, 1, 2)
	require.NoError(t, err)
	item, err := svc.Add(ctx, testUserID, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), item.Quantity)

	items, _, err := svc.ListItems(ctx, testUserID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCartUpdateQuantityClampsToOne(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, testUserID, 1, 3)
	require.NoError(t, err)

	item, err := svc.UpdateQuantity(ctx, testUserID, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.Quantity)

	item, err = svc.UpdateQuantity(ctx, testUserID, 1, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.Quantity)
}

func TestCartAddInactiveProduct(t *testing.T) {
	svc, store := newCartService(t)
	ctx := context.Background()

	p, err := store.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	p.IsActive = false
	require.NoError(t, store.Products().Update(ctx, p))

	_, err = svc.Add(ctx, testUserID, 1, 1)
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestCartAddExceedsStock(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	// 大衣库存 30
	_, err := svc.Add(ctx, testUserID, 7, 31)
	assert.True(t, errors.Is(err, ErrOutOfStock))
}

func TestCartRemoveAndClear(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	a, err := svc.Add(ctx, testUserID, 1, 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, testUserID, 2, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, testUserID, a.ID))
	items, _, err := svc.ListItems(ctx, testUserID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, svc.Clear(ctx, testUserID))
	items, total, err := svc.ListItems(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}
