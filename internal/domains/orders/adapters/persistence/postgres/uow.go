package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	inventorydomain "github.com/acme/warehouse-api/internal/domains/inventory/domain"
	"github.com/acme/warehouse-api/internal/domains/orders/domain"
	"github.com/acme/warehouse-api/internal/domains/orders/ports"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork runs order-creation transactions in PostgreSQL. Product rows are
// locked with SELECT ... FOR UPDATE at the availability check, so concurrent
// baskets over the same product serialize instead of jointly overselling.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// productRow is the slice of the products table the workflow touches. The
// inventory adapter owns the full mapping; this one only locks and decrements.
type productRow struct {
	ID       uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Name     string    `gorm:"column:name"`
	Quantity int64     `gorm:"column:quantity"`
}

func (productRow) TableName() string { return "products" }

// Execute opens a transaction, runs fn, and commits when fn returns nil. Any
// error from fn or from commit rolls back every write.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(tx ports.Tx) error) error {
	if u == nil || u.db == nil {
		return errors.New("postgres unit of work not configured")
	}
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{tx: tx})
	})
	return describeDriverError(err)
}

type gormTx struct {
	tx *gorm.DB
}

func (t *gormTx) ProductForUpdate(ctx context.Context, id uuid.UUID) (*inventorydomain.Product, error) {
	var row productRow
	err := t.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrProductNotFound
		}
		return nil, err
	}
	return &inventorydomain.Product{ID: row.ID, Name: row.Name, Quantity: row.Quantity}, nil
}

func (t *gormTx) ReserveStock(ctx context.Context, id uuid.UUID, quantity int64) error {
	result := t.tx.WithContext(ctx).
		Model(&productRow{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	// The row is already locked and checked; a miss here means the guard and
	// the lock disagree, which must abort the transaction.
	if result.RowsAffected == 0 {
		return errors.New("stock reservation would drop quantity below zero")
	}
	return nil
}

func (t *gormTx) InsertOrder(ctx context.Context, order *domain.Order) error {
	record := orderRecord{
		ID:        order.ID,
		CreatedAt: order.CreatedAt,
		Status:    string(order.Status),
	}
	return t.tx.WithContext(ctx).Create(&record).Error
}

func (t *gormTx) InsertItem(ctx context.Context, item domain.OrderItem) error {
	record := orderItemRecord{
		ID:        item.ID,
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
	return t.tx.WithContext(ctx).Create(&record).Error
}

// describeDriverError keeps the postgres error code visible when a
// driver-level failure (constraint violation, serialization abort) surfaces.
func describeDriverError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("postgres error %s: %w", pgErr.Code, err)
	}
	return err
}
