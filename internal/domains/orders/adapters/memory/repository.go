package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/acme/warehouse-api/internal/domains/orders/domain"
	"github.com/acme/warehouse-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order ledger.
type Repository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: map[uuid.UUID]*domain.Order{}}
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, cloneOrder(order))
	}
	return list, nil
}

func (r *Repository) SetStatus(_ context.Context, id uuid.UUID, status domain.Status) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := order.UpdateStatus(status); err != nil {
		return nil, err
	}
	return cloneOrder(order), nil
}

// add stores a committed order. Called by the unit of work while it still
// holds the product lock.
func (r *Repository) add(order *domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = cloneOrder(order)
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = append([]domain.OrderItem(nil), order.Items...)
	return &clone
}
