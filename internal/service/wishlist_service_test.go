package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamzaidakbar/ecommerce-app/internal/repository/fixture"
)

func newWishlistService(t *testing.T) *WishlistService {
	t.Helper()
	store := fixture.NewStore()
	return NewWishlistService(store.Wishlists(), store.Products())
}

func TestWishlistToggleRoundTrip(t *testing.T) {
	svc := newWishlistService(t)
	ctx := context.Background()

	added, err := svc.Toggle(ctx, testUserID, 6)
	require.NoError(t, err)
	assert.True(t, added)

	in, err := svc.Contains(ctx, testUserID, 6)
	require.NoError(t, err)
	assert.True(t, in)

	// 再切一次回到原点
	added, err = svc.Toggle(ctx, testUserID, 6)
	require.NoError(t, err)
	assert.False(t, added)

	entries, err := svc.List(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWishlistAddIdempotent(t *testing.T) {
	svc := newWishlistService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, testUserID, 3))
	require.NoError(t, svc.Add(ctx, testUserID, 3))

	entries, err := svc.List(ctx, testUserID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWishlistIsolatedPerUser(t *testing.T) {
	svc := newWishlistService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, testUserID, 3))

	in, err := svc.Contains(ctx, 9, 3)
	require.NoError(t, err)
	assert.False(t, in)
}
