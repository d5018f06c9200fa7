package fixture

import (
	"context"
	"sort"
	"time"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/cart"
)

type cartRepo struct {
	s *Store
}

func (r *cartRepo) ListItems(ctx context.Context, userID int64) ([]*cart.Item, error) {
	// attachProduct 会写共享的条目，读路径也要拿写锁
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*cart.Item, 0)
	for _, it := range r.s.cartItems {
		if it.UserID == userID {
			r.attachProduct(it)
			list = append(list, it)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *cartRepo) GetItem(ctx context.Context, userID, itemID int64) (*cart.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.cartItems[itemID]
	if !ok || it.UserID != userID {
		return nil, cart.ErrItemNotFound
	}
	r.attachProduct(it)
	return it, nil
}

func (r *cartRepo) GetItemByProduct(ctx context.Context, userID, productID int64) (*cart.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.cartItems {
		if it.UserID == userID && it.ProductID == productID {
			r.attachProduct(it)
			return it, nil
		}
	}
	return nil, cart.ErrItemNotFound
}

func (r *cartRepo) AddItem(ctx context.Context, item *cart.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = r.s.allocID()
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	r.s.cartItems[item.ID] = item
	r.attachProduct(item)
	return nil
}

func (r *cartRepo) UpdateItem(ctx context.Context, item *cart.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cartItems[item.ID]; !ok {
		return cart.ErrItemNotFound
	}
	item.UpdatedAt = time.Now()
	r.s.cartItems[item.ID] = item
	return nil
}

func (r *cartRepo) RemoveItem(ctx context.Context, userID, itemID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it, ok := r.s.cartItems[itemID]; ok && it.UserID == userID {
		delete(r.s.cartItems, itemID)
	}
	return nil
}

func (r *cartRepo) Clear(ctx context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, it := range r.s.cartItems {
		if it.UserID == userID {
			delete(r.s.cartItems, id)
		}
	}
	return nil
}

// attachProduct 补上商品引用，调用方需持有写锁
func (r *cartRepo) attachProduct(it *cart.Item) {
	if p, ok := r.s.products[it.ProductID]; ok {
		it.Product = p
	}
}
