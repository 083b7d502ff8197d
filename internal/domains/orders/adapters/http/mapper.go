package http

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/acme/warehouse-api/internal/domains/orders/domain"
)

// UpdateStatusRequest is the transport shape for status updates.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=in_progress shipped delivered"`
}

// OrderItemResponse is the transport representation of a reservation line.
type OrderItemResponse struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// OrderResponse is the transport representation of an order with its items.
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Status    string              `json:"status"`
	Items     []OrderItemResponse `json:"items"`
}

// ToBasket converts the wire mapping of product id to quantity into ordered
// basket lines. The mapping contract means a product appears at most once per
// basket; lines are sorted by product id so concurrent baskets acquire row
// locks in a consistent order.
func ToBasket(body map[string]int64) ([]domain.BasketLine, error) {
	lines := make([]domain.BasketLine, 0, len(body))
	for rawID, quantity := range body {
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("product id %q is not a valid uuid", rawID)
		}
		lines = append(lines, domain.BasketLine{ProductID: id, Quantity: quantity})
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID.String() < lines[j].ProductID.String()
	})
	return lines, nil
}

// FromDomain converts a domain order to the transport representation.
func FromDomain(order *domain.Order) OrderResponse {
	if order == nil {
		return OrderResponse{}
	}
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return OrderResponse{
		ID:        order.ID,
		CreatedAt: order.CreatedAt,
		Status:    string(order.Status),
		Items:     items,
	}
}

// FromDomainList converts an order slice to the transport representation.
func FromDomainList(orders []*domain.Order) []OrderResponse {
	list := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		list = append(list, FromDomain(order))
	}
	return list
}
