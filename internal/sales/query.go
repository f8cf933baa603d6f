package sales

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jahanzaib32/ecom-admin-api/domain"
)

type saleRow struct {
	ID           int64           `db:"id"`
	ProductID    int64           `db:"product_id"`
	QuantitySold int64           `db:"quantity_sold"`
	SalePrice    decimal.Decimal `db:"sale_price_at_time_of_sale"`
	SaleDate     time.Time       `db:"sale_date"`
	OrderID      *string         `db:"order_id"`

	PID          int64           `db:"p_id"`
	PName        string          `db:"p_name"`
	PDescription *string         `db:"p_description"`
	PPrice       decimal.Decimal `db:"p_price"`
	PCategoryID  *int64          `db:"p_category_id"`
	PCreatedAt   time.Time       `db:"p_created_at"`
	PUpdatedAt   time.Time       `db:"p_updated_at"`
}

func (r saleRow) toDomain() domain.Sale {
	return domain.Sale{
		ID:                  r.ID,
		ProductID:           r.ProductID,
		QuantitySold:        r.QuantitySold,
		SalePriceAtTimeSold: r.SalePrice,
		SaleDate:            r.SaleDate,
		OrderID:             r.OrderID,
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

const saleSelect = `
	SELECT s.id, s.product_id, s.quantity_sold, s.sale_price_at_time_of_sale, s.sale_date, s.order_id,
	       p.id AS p_id, p.name AS p_name, p.description AS p_description,
	       p.price AS p_price, p.category_id AS p_category_id,
	       p.created_at AS p_created_at, p.updated_at AS p_updated_at
	FROM sales s
	JOIN products p ON p.id = s.product_id`

// GetSale returns a sale hydrated with its product.
func (s *Service) GetSale(ctx context.Context, saleID int64) (*domain.Sale, error) {
	var row saleRow
	err := s.db.GetContext(ctx, &row, saleSelect+` WHERE s.id = $1`, saleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("load sale %d: %w", saleID, err)
	}
	sale := row.toDomain()
	return &sale, nil
}

// ListFilters narrows a sale listing; all filters are conjunctive and each
// one is optional.
type ListFilters struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	ProductID  *int64
	CategoryID *int64
	Skip       int
	Limit      int
}

// List returns sales matching the filters, newest first.
func (s *Service) List(ctx context.Context, f ListFilters) ([]domain.Sale, error) {
	var (
		clauses []string
		args    []any
	)
	if f.DateFrom != nil {
		args = append(args, *f.DateFrom)
		clauses = append(clauses, fmt.Sprintf("s.sale_date >= $%d", len(args)))
	}
	if f.DateTo != nil {
		args = append(args, *f.DateTo)
		clauses = append(clauses, fmt.Sprintf("s.sale_date <= $%d", len(args)))
	}
	if f.ProductID != nil {
		args = append(args, *f.ProductID)
		clauses = append(clauses, fmt.Sprintf("s.product_id = $%d", len(args)))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		clauses = append(clauses, fmt.Sprintf("p.category_id = $%d", len(args)))
	}

	query := saleSelect
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	skip := f.Skip
	if skip < 0 {
		skip = 0
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY s.sale_date DESC LIMIT $%d", len(args))
	args = append(args, skip)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	var rows []saleRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	out := make([]domain.Sale, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out, nil
}
