package sales

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jahanzaib32/ecom-admin-api/domain"
	"github.com/jahanzaib32/ecom-admin-api/internal/inventory"
)

// Service coordinates sale recording and sale lookups.
type Service struct {
	db     *sqlx.DB
	ledger *inventory.Ledger
	logger *zap.Logger
}

// NewService creates a new Service.
func NewService(db *sqlx.DB, ledger *inventory.Ledger, logger *zap.Logger) *Service {
	return &Service{db: db, ledger: ledger, logger: logger}
}

// RecordSale records a sale as one atomic unit: price lookup, stock check,
// sale insert with price snapshot, guarded inventory deduction and audit log
// entry. Any failure rolls the whole transaction back; no partial state is
// ever visible. The returned sale is re-read after commit.
func (s *Service) RecordSale(ctx context.Context, productID, quantitySold int64, orderID *string) (*domain.Sale, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin sale transaction: %w", err)
	}
	defer tx.Rollback()

	var current struct {
		Price    decimal.Decimal `db:"price"`
		Quantity *int64          `db:"quantity"`
	}
	err = tx.GetContext(ctx, &current, `
		SELECT p.price, i.quantity
		FROM products p
		LEFT JOIN inventory i ON i.product_id = p.id
		WHERE p.id = $1`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("load product %d: %w", productID, err)
	}

	var available int64
	if current.Quantity != nil {
		available = *current.Quantity
	}
	if current.Quantity == nil || available < quantitySold {
		return nil, &InsufficientStockError{Available: available, Requested: quantitySold}
	}

	var saleID int64
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO sales (product_id, quantity_sold, sale_price_at_time_of_sale, sale_date, order_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		productID, quantitySold, current.Price, time.Now().UTC(), orderID).Scan(&saleID)
	if err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}

	deducted, err := s.ledger.Deduct(ctx, tx, productID, quantitySold)
	if err != nil {
		return nil, err
	}
	if !deducted {
		// Zero rows affected: either the row is gone (integrity fault) or a
		// concurrent sale won the stock. Re-read inside the transaction to
		// tell them apart.
		remaining, _, qerr := s.ledger.Quantity(ctx, tx, productID)
		if errors.Is(qerr, inventory.ErrNotFound) {
			return nil, ErrInventoryRowMissing
		}
		if qerr != nil {
			return nil, qerr
		}
		return nil, &InsufficientStockError{Available: remaining, Requested: quantitySold}
	}

	reason := fmt.Sprintf("Sale (ID: %d)", saleID)
	if orderID != nil && *orderID != "" {
		reason = fmt.Sprintf("Sale (Order ID: %s)", *orderID)
	}
	if err := s.ledger.AppendLog(ctx, tx, productID, -quantitySold, reason); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit sale: %w", err)
	}

	s.logger.Info("sale recorded",
		zap.Int64("sale_id", saleID),
		zap.Int64("product_id", productID),
		zap.Int64("quantity_sold", quantitySold),
		zap.String("price_at_sale", current.Price.String()),
	)

	return s.GetSale(ctx, saleID)
}
