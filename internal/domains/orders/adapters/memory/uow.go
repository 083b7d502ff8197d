package memory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	inventorymemory "github.com/acme/warehouse-api/internal/domains/inventory/adapters/memory"
	inventorydomain "github.com/acme/warehouse-api/internal/domains/inventory/domain"
	"github.com/acme/warehouse-api/internal/domains/orders/domain"
	"github.com/acme/warehouse-api/internal/domains/orders/ports"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork runs order-creation transactions against the in-memory adapters.
// It serializes on the product repository lock for the whole transaction, so
// two concurrent baskets can never both pass the availability check on the
// same stock.
type UnitOfWork struct {
	products *inventorymemory.Repository
	orders   *Repository
}

func NewUnitOfWork(products *inventorymemory.Repository, orders *Repository) *UnitOfWork {
	return &UnitOfWork{products: products, orders: orders}
}

// Execute stages every write fn performs and applies all of them only when fn
// returns nil. On error the staged state is dropped and nothing is visible to
// other callers.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(tx ports.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return u.products.WithinLock(func(products map[uuid.UUID]*inventorydomain.Product) error {
		tx := &memTx{products: products, reserved: map[uuid.UUID]int64{}}
		if err := fn(tx); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		for id, qty := range tx.reserved {
			products[id].Quantity -= qty
		}
		if tx.order != nil {
			committed := *tx.order
			committed.Items = tx.items
			u.orders.add(&committed)
		}
		return nil
	})
}

// memTx stages writes against the locked product map.
type memTx struct {
	products map[uuid.UUID]*inventorydomain.Product
	reserved map[uuid.UUID]int64
	order    *domain.Order
	items    []domain.OrderItem
}

func (t *memTx) ProductForUpdate(_ context.Context, id uuid.UUID) (*inventorydomain.Product, error) {
	product, ok := t.products[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	clone := *product
	clone.Quantity -= t.reserved[id]
	return &clone, nil
}

func (t *memTx) ReserveStock(_ context.Context, id uuid.UUID, quantity int64) error {
	product, ok := t.products[id]
	if !ok {
		return ports.ErrProductNotFound
	}
	if product.Quantity-t.reserved[id] < quantity {
		return errors.New("stock reservation would drop quantity below zero")
	}
	t.reserved[id] += quantity
	return nil
}

func (t *memTx) InsertOrder(_ context.Context, order *domain.Order) error {
	clone := *order
	t.order = &clone
	return nil
}

func (t *memTx) InsertItem(_ context.Context, item domain.OrderItem) error {
	t.items = append(t.items, item)
	return nil
}
