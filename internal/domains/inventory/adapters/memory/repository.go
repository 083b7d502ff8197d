package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/acme/warehouse-api/internal/domains/inventory/domain"
	"github.com/acme/warehouse-api/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[uuid.UUID]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		list = append(list, &clone)
	}
	return list, nil
}

// WithinLock runs fn while holding the repository write lock, handing it the
// live product map. The orders memory unit of work uses this to make its
// check-then-decrement sequence atomic with respect to every other caller.
func (r *Repository) WithinLock(fn func(products map[uuid.UUID]*domain.Product) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.products)
}
