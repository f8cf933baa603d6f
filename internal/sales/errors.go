package sales

import (
	"errors"
	"fmt"
)

// ErrProductNotFound is returned when the sale references an unknown product.
var ErrProductNotFound = errors.New("product not found")

// ErrSaleNotFound is returned when a sale lookup matches no row.
var ErrSaleNotFound = errors.New("sale not found")

// ErrInventoryRowMissing indicates a data-integrity problem: the product
// exists but its inventory row vanished mid-transaction. Unlike the stock
// errors this is a server-side fault.
var ErrInventoryRowMissing = errors.New("inventory row missing for product")

// InsufficientStockError is a client error carrying available vs requested
// quantities so the caller can report them.
type InsufficientStockError struct {
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock: available %d, requested %d", e.Available, e.Requested)
}
