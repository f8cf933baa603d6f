package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jahanzaib32/ecom-admin-api/domain"
)

type statusRow struct {
	ID                int64     `db:"id"`
	ProductID         int64     `db:"product_id"`
	Quantity          int64     `db:"quantity"`
	LowStockThreshold int64     `db:"low_stock_threshold"`
	LastUpdated       time.Time `db:"last_updated"`

	PID          int64           `db:"p_id"`
	PName        string          `db:"p_name"`
	PDescription *string         `db:"p_description"`
	PPrice       decimal.Decimal `db:"p_price"`
	PCategoryID  *int64          `db:"p_category_id"`
	PCreatedAt   time.Time       `db:"p_created_at"`
	PUpdatedAt   time.Time       `db:"p_updated_at"`
}

func (r statusRow) toDomain() domain.Inventory {
	return domain.Inventory{
		ID:                r.ID,
		ProductID:         r.ProductID,
		Quantity:          r.Quantity,
		LowStockThreshold: r.LowStockThreshold,
		LastUpdated:       r.LastUpdated,
		Product: &domain.Product{
			ID:          r.PID,
			Name:        r.PName,
			Description: r.PDescription,
			Price:       r.PPrice,
			CategoryID:  r.PCategoryID,
			CreatedAt:   r.PCreatedAt,
			UpdatedAt:   r.PUpdatedAt,
		},
	}
}

const statusSelect = `
	SELECT i.id, i.product_id, i.quantity, i.low_stock_threshold, i.last_updated,
	       p.id AS p_id, p.name AS p_name, p.description AS p_description,
	       p.price AS p_price, p.category_id AS p_category_id,
	       p.created_at AS p_created_at, p.updated_at AS p_updated_at
	FROM inventory i
	JOIN products p ON p.id = i.product_id`

// Get returns the inventory record for a product, hydrated with the product.
func (l *Ledger) Get(ctx context.Context, productID int64) (*domain.Inventory, error) {
	var row statusRow
	err := l.db.GetContext(ctx, &row, statusSelect+` WHERE i.product_id = $1`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load inventory for product %d: %w", productID, err)
	}
	inv := row.toDomain()
	return &inv, nil
}

// Status lists all inventory records with their products, ordered by
// product name.
func (l *Ledger) Status(ctx context.Context, skip, limit int) ([]domain.Inventory, error) {
	if skip < 0 {
		skip = 0
	}
	var rows []statusRow
	err := l.db.SelectContext(ctx, &rows, statusSelect+` ORDER BY p.name LIMIT $1 OFFSET $2`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list inventory status: %w", err)
	}
	out := make([]domain.Inventory, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out, nil
}

// UpdateParams carries an optional-field update: only non-nil fields
// generate assignment clauses.
type UpdateParams struct {
	Quantity          *int64 `json:"quantity,omitempty"`
	LowStockThreshold *int64 `json:"low_stock_threshold,omitempty"`
}

// Update applies the provided fields to a product's inventory row and
// returns the refreshed record.
func (l *Ledger) Update(ctx context.Context, productID int64, params UpdateParams) (*domain.Inventory, error) {
	var (
		clauses []string
		args    []any
	)
	if params.Quantity != nil {
		args = append(args, *params.Quantity)
		clauses = append(clauses, fmt.Sprintf("quantity = $%d", len(args)))
	}
	if params.LowStockThreshold != nil {
		args = append(args, *params.LowStockThreshold)
		clauses = append(clauses, fmt.Sprintf("low_stock_threshold = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return l.Get(ctx, productID)
	}

	args = append(args, time.Now().UTC())
	clauses = append(clauses, fmt.Sprintf("last_updated = $%d", len(args)))
	args = append(args, productID)
	query := fmt.Sprintf("UPDATE inventory SET %s WHERE product_id = $%d", strings.Join(clauses, ", "), len(args))

	res, err := l.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update inventory for product %d: %w", productID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update inventory for product %d: %w", productID, err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	l.logger.Info("inventory updated",
		zap.Int64("product_id", productID),
		zap.Bool("quantity_set", params.Quantity != nil),
		zap.Bool("threshold_set", params.LowStockThreshold != nil),
	)
	return l.Get(ctx, productID)
}

// LowStock lists products at or below their threshold, most critical first.
func (l *Ledger) LowStock(ctx context.Context) ([]domain.LowStockProduct, error) {
	items := []domain.LowStockProduct{}
	err := l.db.SelectContext(ctx, &items, `
		SELECT p.id AS product_id, p.name AS product_name,
		       i.quantity AS current_quantity, i.low_stock_threshold
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.quantity <= i.low_stock_threshold
		ORDER BY (i.quantity - i.low_stock_threshold) ASC`)
	if err != nil {
		return nil, fmt.Errorf("list low stock products: %w", err)
	}
	return items, nil
}
