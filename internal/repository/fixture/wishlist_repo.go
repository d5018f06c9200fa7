package fixture

import (
	"context"
	"sort"
	"time"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/wishlist"
)

type wishlistRepo struct {
	s *Store
}

func (r *wishlistRepo) ListByUser(ctx context.Context, userID int64) ([]*wishlist.Entry, error) {
	// 补商品引用会写共享条目，读路径也拿写锁
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*wishlist.Entry, 0)
	for _, e := range r.s.wishes {
		if e.UserID == userID {
			if p, ok := r.s.products[e.ProductID]; ok {
				e.Product = p
			}
			list = append(list, e)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *wishlistRepo) Add(ctx context.Context, e *wishlist.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.allocID()
	e.CreatedAt = time.Now()
	r.s.wishes[e.ID] = e
	if p, ok := r.s.products[e.ProductID]; ok {
		e.Product = p
	}
	return nil
}

func (r *wishlistRepo) RemoveByProduct(ctx context.Context, userID, productID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, e := range r.s.wishes {
		if e.UserID == userID && e.ProductID == productID {
			delete(r.s.wishes, id)
		}
	}
	return nil
}

func (r *wishlistRepo) Contains(ctx context.Context, userID, productID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.wishes {
		if e.UserID == userID && e.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}
