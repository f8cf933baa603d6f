package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Product carries the current unit price. Sales copy the price at the moment
// of sale, so later changes here never affect recorded revenue.
type Product struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description *string         `db:"description" json:"description,omitempty"`
	Price       decimal.Decimal `db:"price" json:"price"`
	CategoryID  *int64          `db:"category_id" json:"category_id,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
	Category    *Category       `db:"-" json:"category,omitempty"`
}

type ProductWithInventory struct {
	Product
	InventoryQuantity *int64 `db:"inventory_quantity" json:"inventory_quantity"`
	LowStockThreshold *int64 `db:"low_stock_threshold" json:"low_stock_threshold"`
}
