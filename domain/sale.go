package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is immutable once recorded. SalePriceAtTimeOfSale is a snapshot of
// the product price when the sale was made, not the current price.
type Sale struct {
	ID                  int64           `db:"id" json:"id"`
	ProductID           int64           `db:"product_id" json:"product_id"`
	QuantitySold        int64           `db:"quantity_sold" json:"quantity_sold"`
	SalePriceAtTimeSold decimal.Decimal `db:"sale_price_at_time_of_sale" json:"sale_price_at_time_of_sale"`
	SaleDate            time.Time       `db:"sale_date" json:"sale_date"`
	OrderID             *string         `db:"order_id" json:"order_id,omitempty"`
	Product             *Product        `db:"-" json:"product,omitempty"`
}
