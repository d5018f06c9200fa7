package fixture

import (
	"context"
	"sort"
	"time"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
)

type productRepo struct {
	s *Store
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (r *productRepo) ListAll(ctx context.Context) ([]*product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*product.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *productRepo) ListActive(ctx context.Context) ([]*product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*product.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if p.IsActive {
			list = append(list, p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *productRepo) Create(ctx context.Context, p *product.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.allocID()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.s.products[p.ID] = p
	return nil
}

func (r *productRepo) Update(ctx context.Context, p *product.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return product.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.s.products[p.ID] = p
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}
