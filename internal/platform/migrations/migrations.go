package migrations

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Run applies the warehouse schema. Intended to replace adapter-level
// automigrate so every table is created in one place.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// Product schema mirrors the inventory Postgres adapter.
type productRecord struct {
	ID          uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Name        string    `gorm:"column:name;index"`
	Description string    `gorm:"column:description"`
	Price       float64   `gorm:"column:price"`
	Quantity    int64     `gorm:"column:quantity"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	CreatedAt time.Time `gorm:"column:created_at"`
	Status    string    `gorm:"column:status;type:varchar(32)"`
}

func (orderRecord) TableName() string { return "orders" }

// Order item columns reference orders and products by plain uuid, without
// database-level foreign keys: products may be hard-deleted while items that
// reference them survive.
type orderItemRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;index"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;index"`
	Quantity  int64     `gorm:"column:quantity"`
}

func (orderItemRecord) TableName() string { return "order_items" }
