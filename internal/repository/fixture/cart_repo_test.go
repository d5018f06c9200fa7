package fixture

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/cart"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/wishlist"
)

// 并发读路径会补商品引用，带 -race 跑确保没有读写竞争
func TestCartRepoConcurrentReads(t *testing.T) {
	s := NewStore()
	repo := s.Carts()
	ctx := context.Background()

	require.NoError(t, repo.AddItem(ctx, &cart.Item{UserID: 10, ProductID: 1, Quantity: 1}))
	require.NoError(t, repo.AddItem(ctx, &cart.Item{UserID: 10, ProductID: 2, Quantity: 2}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				items, err := repo.ListItems(ctx, 10)
				if err != nil || len(items) != 2 {
					t.Errorf("ListItems: %d items, err=%v", len(items), err)
					return
				}
				if _, err := repo.GetItemByProduct(ctx, 10, 1); err != nil {
					t.Errorf("GetItemByProduct: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestWishlistRepoConcurrentReads(t *testing.T) {
	s := NewStore()
	repo := s.Wishlists()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &wishlist.Entry{UserID: 10, ProductID: 1}))
	require.NoError(t, repo.Add(ctx, &wishlist.Entry{UserID: 10, ProductID: 2}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := repo.ListByUser(ctx, 10); err != nil {
					t.Errorf("ListByUser: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
