package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a product has no inventory row.
var ErrNotFound = errors.New("inventory not found")

// Ledger owns the per-product quantity and low-stock threshold state.
// The write primitives take an explicit sqlx.ExtContext so callers can run
// them inside their own transaction; there is no ambient connection state.
type Ledger struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewLedger creates a new Ledger.
func NewLedger(db *sqlx.DB, logger *zap.Logger) *Ledger {
	return &Ledger{db: db, logger: logger}
}

// Quantity reads the current quantity and low-stock threshold for a product
// within q. The read carries no locking beyond what q itself provides.
func (l *Ledger) Quantity(ctx context.Context, q sqlx.ExtContext, productID int64) (quantity, threshold int64, err error) {
	row := q.QueryRowxContext(ctx,
		`SELECT quantity, low_stock_threshold FROM inventory WHERE product_id = $1`, productID)
	if err := row.Scan(&quantity, &threshold); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, ErrNotFound
		}
		return 0, 0, fmt.Errorf("read inventory for product %d: %w", productID, err)
	}
	return quantity, threshold, nil
}

// Adjust applies quantity += delta within q and refreshes last_updated.
// It returns ErrNotFound when no inventory row was affected. Non-negativity
// is the caller's invariant; use Deduct for a guarded decrement.
func (l *Ledger) Adjust(ctx context.Context, q sqlx.ExtContext, productID, delta int64) error {
	res, err := q.ExecContext(ctx,
		`UPDATE inventory SET quantity = quantity + $1, last_updated = $2 WHERE product_id = $3`,
		delta, time.Now().UTC(), productID)
	if err != nil {
		return fmt.Errorf("adjust inventory for product %d: %w", productID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust inventory for product %d: %w", productID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Deduct decrements the quantity only when at least qty units are available,
// as a single statement. The boolean reports whether a row was updated; a
// false result means the row is missing or the stock check lost a race, and
// the caller decides which by re-reading within its transaction.
func (l *Ledger) Deduct(ctx context.Context, q sqlx.ExtContext, productID, qty int64) (bool, error) {
	res, err := q.ExecContext(ctx,
		`UPDATE inventory SET quantity = quantity - $1, last_updated = $2
		 WHERE product_id = $3 AND quantity >= $1`,
		qty, time.Now().UTC(), productID)
	if err != nil {
		return false, fmt.Errorf("deduct inventory for product %d: %w", productID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deduct inventory for product %d: %w", productID, err)
	}
	return affected > 0, nil
}

// AppendLog writes one immutable audit entry for an inventory change.
func (l *Ledger) AppendLog(ctx context.Context, q sqlx.ExtContext, productID, delta int64, reason string) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO inventory_log (product_id, change_in_quantity, reason, created_at)
		 VALUES ($1, $2, $3, $4)`,
		productID, delta, reason, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("append inventory log for product %d: %w", productID, err)
	}
	return nil
}
