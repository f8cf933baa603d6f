package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jahanzaib32/ecom-admin-api/internal/database/databasetest"
)

func newTestLedger(t *testing.T) (*Ledger, *sqlx.DB) {
	db := databasetest.New(t)
	return NewLedger(db, zaptest.NewLogger(t)), db
}

func seedProduct(t *testing.T, db *sqlx.DB, name string, quantity, threshold int64) int64 {
	t.Helper()
	now := time.Now().UTC()
	var id int64
	err := db.QueryRowx(`
		INSERT INTO products (name, price, created_at, updated_at)
		VALUES ($1, $2, $3, $3) RETURNING id`,
		name, decimal.RequireFromString("9.99"), now).Scan(&id)
	require.NoError(t, err)
	_, err = db.Exec(`
		INSERT INTO inventory (product_id, quantity, low_stock_threshold, last_updated)
		VALUES ($1, $2, $3, $4)`, id, quantity, threshold, now)
	require.NoError(t, err)
	return id
}

func TestQuantity(t *testing.T) {
	ledger, db := newTestLedger(t)
	productID := seedProduct(t, db, "Widget", 7, 3)

	quantity, threshold, err := ledger.Quantity(context.Background(), db, productID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), quantity)
	assert.Equal(t, int64(3), threshold)

	_, _, err = ledger.Quantity(context.Background(), db, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdjust(t *testing.T) {
	ledger, db := newTestLedger(t)
	productID := seedProduct(t, db, "Widget", 7, 3)

	require.NoError(t, ledger.Adjust(context.Background(), db, productID, 5))
	quantity, _, err := ledger.Quantity(context.Background(), db, productID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), quantity)

	require.NoError(t, ledger.Adjust(context.Background(), db, productID, -2))
	quantity, _, err = ledger.Quantity(context.Background(), db, productID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), quantity)

	assert.ErrorIs(t, ledger.Adjust(context.Background(), db, 9999, 1), ErrNotFound)
}

func TestDeductGuard(t *testing.T) {
	ledger, db := newTestLedger(t)
	productID := seedProduct(t, db, "Widget", 5, 3)

	deducted, err := ledger.Deduct(context.Background(), db, productID, 3)
	require.NoError(t, err)
	assert.True(t, deducted)

	// Only 2 left; the guard refuses without changing anything.
	deducted, err = ledger.Deduct(context.Background(), db, productID, 3)
	require.NoError(t, err)
	assert.False(t, deducted)

	quantity, _, err := ledger.Quantity(context.Background(), db, productID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), quantity)

	deducted, err = ledger.Deduct(context.Background(), db, 9999, 1)
	require.NoError(t, err)
	assert.False(t, deducted)
}

func TestAppendLog(t *testing.T) {
	ledger, db := newTestLedger(t)
	productID := seedProduct(t, db, "Widget", 5, 3)

	require.NoError(t, ledger.AppendLog(context.Background(), db, productID, -2, "Sale (ID: 1)"))

	var entry struct {
		ChangeInQuantity int64  `db:"change_in_quantity"`
		Reason           string `db:"reason"`
	}
	require.NoError(t, db.Get(&entry,
		`SELECT change_in_quantity, reason FROM inventory_log WHERE product_id = $1`, productID))
	assert.Equal(t, int64(-2), entry.ChangeInQuantity)
	assert.Equal(t, "Sale (ID: 1)", entry.Reason)
}

func TestGetAndStatus(t *testing.T) {
	ledger, db := newTestLedger(t)
	widget := seedProduct(t, db, "Widget", 5, 3)
	seedProduct(t, db, "Gadget", 8, 2)

	item, err := ledger.Get(context.Background(), widget)
	require.NoError(t, err)
	assert.Equal(t, int64(5), item.Quantity)
	require.NotNil(t, item.Product)
	assert.Equal(t, "Widget", item.Product.Name)

	_, err = ledger.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	items, err := ledger.Status(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Ordered by product name.
	assert.Equal(t, "Gadget", items[0].Product.Name)
	assert.Equal(t, "Widget", items[1].Product.Name)

	// A negative skip is treated as zero.
	items, err = ledger.Status(context.Background(), -1, 100)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestUpdatePartialFields(t *testing.T) {
	ledger, db := newTestLedger(t)
	productID := seedProduct(t, db, "Widget", 5, 3)

	newThreshold := int64(8)
	item, err := ledger.Update(context.Background(), productID, UpdateParams{LowStockThreshold: &newThreshold})
	require.NoError(t, err)
	assert.Equal(t, int64(8), item.LowStockThreshold)
	assert.Equal(t, int64(5), item.Quantity, "quantity must be untouched by a threshold-only update")

	newQuantity := int64(20)
	item, err = ledger.Update(context.Background(), productID, UpdateParams{Quantity: &newQuantity})
	require.NoError(t, err)
	assert.Equal(t, int64(20), item.Quantity)
	assert.Equal(t, int64(8), item.LowStockThreshold)

	// Empty update is a no-op read.
	item, err = ledger.Update(context.Background(), productID, UpdateParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(20), item.Quantity)

	_, err = ledger.Update(context.Background(), 9999, UpdateParams{Quantity: &newQuantity})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLowStockOrdering(t *testing.T) {
	ledger, db := newTestLedger(t)
	seedProduct(t, db, "Plenty", 100, 10)
	seedProduct(t, db, "Low", 4, 10)
	seedProduct(t, db, "Critical", 0, 10)

	items, err := ledger.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Critical", items[0].ProductName)
	assert.Equal(t, "Low", items[1].ProductName)
}
