package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	inventorydomain "github.com/acme/warehouse-api/internal/domains/inventory/domain"
	"github.com/acme/warehouse-api/internal/domains/orders/domain"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
)

// Repository reads the order ledger and applies status updates.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) (*domain.Order, error)
}

// Tx is the transactional view the order-creation workflow writes through.
// Every method call belongs to the same unit of work; nothing becomes durable
// until the enclosing UnitOfWork.Execute returns nil.
type Tx interface {
	// ProductForUpdate loads a product and holds a write lock on it until the
	// unit of work ends. Returns ErrProductNotFound for unknown ids.
	ProductForUpdate(ctx context.Context, id uuid.UUID) (*inventorydomain.Product, error)
	// ReserveStock decrements on-hand stock. The caller must have verified
	// availability on the locked row first; the decrement still refuses to
	// take quantity below zero.
	ReserveStock(ctx context.Context, id uuid.UUID, quantity int64) error
	InsertOrder(ctx context.Context, order *domain.Order) error
	InsertItem(ctx context.Context, item domain.OrderItem) error
}

// UnitOfWork runs fn inside one transaction. A nil return commits every write
// fn performed; any error rolls all of them back and is returned unchanged.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(tx Tx) error) error
}
