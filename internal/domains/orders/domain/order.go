package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status enumerates order progression. Any known status may overwrite any
// other; no transition graph is enforced.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
)

var (
	ErrInvalidStatus   = errors.New("order status is invalid")
	ErrInvalidQuantity = errors.New("basket quantity must be greater than zero")
)

// IsValidStatus reports whether the value is one of the known statuses.
func IsValidStatus(status Status) bool {
	switch status {
	case StatusInProgress, StatusShipped, StatusDelivered:
		return true
	default:
		return false
	}
}

// BasketLine is one requested (product, quantity) pair of an order-creation
// call. Lines are processed in the order they appear; two lines naming the
// same product are checked independently against stock already reduced by the
// earlier line.
type BasketLine struct {
	ProductID uuid.UUID
	Quantity  int64
}

// Validate enforces the positive-quantity invariant on a basket.
func ValidateBasket(lines []BasketLine) error {
	for _, line := range lines {
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// OrderItem is the quantity reserved for one product at order time. It is a
// snapshot, not a live reference to current stock, and is immutable once the
// order is committed.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int64
}

// Order is the ledger aggregate. It exclusively owns its items.
type Order struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Status    Status
	Items     []OrderItem
}

// NewOrder builds a fresh in-progress order with a server-assigned timestamp.
func NewOrder() *Order {
	return &Order{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Status:    StatusInProgress,
	}
}

// AddItem appends a reservation snapshot for the given product.
func (o *Order) AddItem(productID uuid.UUID, quantity int64) (OrderItem, error) {
	if quantity <= 0 {
		return OrderItem{}, ErrInvalidQuantity
	}
	item := OrderItem{
		ID:        uuid.New(),
		OrderID:   o.ID,
		ProductID: productID,
		Quantity:  quantity,
	}
	o.Items = append(o.Items, item)
	return item, nil
}

// UpdateStatus overwrites the status with any known value.
func (o *Order) UpdateStatus(status Status) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

// InsufficientStockError reports a basket line that asked for more stock than
// the product has on hand.
type InsufficientStockError struct {
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough quantity for product %s. Requested: %d, Available: %d",
		e.ProductName, e.Requested, e.Available)
}
