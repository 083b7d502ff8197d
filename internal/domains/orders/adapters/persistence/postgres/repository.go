package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acme/warehouse-api/internal/domains/orders/domain"
	"github.com/acme/warehouse-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository reads the order ledger from PostgreSQL and applies status
// updates.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed ledger. The caller owns the DB
// lifecycle and applies migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to the orders table.
type orderRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	CreatedAt time.Time `gorm:"column:created_at"`
	Status    string    `gorm:"column:status;type:varchar(32)"`
}

func (orderRecord) TableName() string { return "orders" }

// orderItemRecord maps a reservation snapshot to the order_items table. The
// order and product columns are plain indexed uuids, not foreign keys, so a
// hard product delete leaves items dangling the way the API contract allows.
type orderItemRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;index"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;index"`
	Quantity  int64     `gorm:"column:quantity"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// GetByID fetches an order with its items.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	items, err := r.itemsFor(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	return record.toDomain(items[id]), nil
}

// List returns every order with its items.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(records))
	for i := range records {
		ids = append(ids, records[i].ID)
	}
	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain(items[records[i].ID]))
	}
	return orders, nil
}

// SetStatus overwrites the status column and returns the updated order.
func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) itemsFor(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]domain.OrderItem, error) {
	grouped := make(map[uuid.UUID][]domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return grouped, nil
	}
	var records []orderItemRecord
	if err := r.db.WithContext(ctx).Find(&records, "order_id IN ?", orderIDs).Error; err != nil {
		return nil, err
	}
	for _, rec := range records {
		grouped[rec.OrderID] = append(grouped[rec.OrderID], domain.OrderItem{
			ID:        rec.ID,
			OrderID:   rec.OrderID,
			ProductID: rec.ProductID,
			Quantity:  rec.Quantity,
		})
	}
	return grouped, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func (r orderRecord) toDomain(items []domain.OrderItem) *domain.Order {
	return &domain.Order{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Status:    domain.Status(r.Status),
		Items:     items,
	}
}
