package domain

import "time"

type Inventory struct {
	ID                int64     `db:"id" json:"id"`
	ProductID         int64     `db:"product_id" json:"product_id"`
	Quantity          int64     `db:"quantity" json:"quantity"`
	LowStockThreshold int64     `db:"low_stock_threshold" json:"low_stock_threshold"`
	LastUpdated       time.Time `db:"last_updated" json:"last_updated"`
	Product           *Product  `db:"-" json:"product,omitempty"`
}

// InventoryLogEntry is an append-only audit record of a quantity change.
// Entries are never updated or deleted.
type InventoryLogEntry struct {
	ID               int64     `db:"id" json:"id"`
	ProductID        int64     `db:"product_id" json:"product_id"`
	ChangeInQuantity int64     `db:"change_in_quantity" json:"change_in_quantity"`
	Reason           string    `db:"reason" json:"reason"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

type LowStockProduct struct {
	ProductID         int64  `db:"product_id" json:"product_id"`
	ProductName       string `db:"product_name" json:"product_name"`
	CurrentQuantity   int64  `db:"current_quantity" json:"current_quantity"`
	LowStockThreshold int64  `db:"low_stock_threshold" json:"low_stock_threshold"`
}
