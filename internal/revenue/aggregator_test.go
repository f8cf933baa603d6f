package revenue

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

func newTestAggregator(t *testing.T) (*Aggregator, *sqlx.DB) {
	db := databasetest.New(t)
	return NewAggregator(db, zaptest.NewLogger(t)), db
}

func seedCategory(t *testing.T, db *sqlx.DB, name string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRowx(`INSERT INTO categories (name, created_at) VALUES ($1, $2) RETURNING id`,
		name, time.Now().UTC()).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedProduct(t *testing.T, db *sqlx.DB, name string, price string, categoryID *int64) int64 {
	t.Helper()
	now := time.Now().UTC()
	var id int64
	err := db.QueryRowx(`
		INSERT INTO products (name, price, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4) RETURNING id`,
		name, decimal.RequireFromString(price), categoryID, now).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedSale(t *testing.T, db *sqlx.DB, productID, qty int64, price string, day time.Time) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO sales (product_id, quantity_sold, sale_price_at_time_of_sale, sale_date)
		VALUES ($1, $2, $3, $4)`,
		productID, qty, decimal.RequireFromString(price), day)
	require.NoError(t, err)
}

func TestReportInvalidPeriodType(t *testing.T) {
	agg, _ := newTestAggregator(t)

	_, err := agg.Report(context.Background(), "hourly", nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidPeriodType)
}

func TestReportMonthlyBuckets(t *testing.T) {
	agg, db := newTestAggregator(t)

	catID := seedCategory(t, db, "Electronics")
	productID := seedProduct(t, db, "Widget", "10.00", &catID)
	seedSale(t, db, productID, 1, "10.00", date(2023, time.January, 2))
	seedSale(t, db, productID, 2, "10.00", date(2023, time.January, 20))
	seedSale(t, db, productID, 3, "10.00", date(2023, time.February, 1))

	report, err := agg.Report(context.Background(), "monthly", nil, nil, &catID)
	require.NoError(t, err)
	require.Len(t, report.Data, 2)

	assert.Equal(t, "2023-01", report.Data[0].Period)
	assert.True(t, report.Data[0].TotalRevenue.Equal(decimal.NewFromInt(30)),
		"january revenue: %s", report.Data[0].TotalRevenue)
	assert.Equal(t, "2023-02", report.Data[1].Period)
	assert.True(t, report.Data[1].TotalRevenue.Equal(decimal.NewFromInt(30)),
		"february revenue: %s", report.Data[1].TotalRevenue)
	assert.True(t, report.TotalRevenueOverall.Equal(decimal.NewFromInt(60)),
		"overall revenue: %s", report.TotalRevenueOverall)
}

func TestReportOverallEqualsSumOfBuckets(t *testing.T) {
	agg, db := newTestAggregator(t)

	productID := seedProduct(t, db, "Widget", "3.37", nil)
	seedSale(t, db, productID, 3, "3.37", date(2023, time.May, 1))
	seedSale(t, db, productID, 7, "3.37", date(2023, time.May, 2))
	seedSale(t, db, productID, 2, "3.37", date(2023, time.June, 10))

	for _, periodType := range []string{"daily", "weekly", "monthly", "annual"} {
		report, err := agg.Report(context.Background(), periodType, nil, nil, nil)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, point := range report.Data {
			sum = sum.Add(point.TotalRevenue)
		}
		assert.True(t, report.TotalRevenueOverall.Equal(sum), "%s: overall %s != sum %s",
			periodType, report.TotalRevenueOverall, sum)
		// 12 units at 3.37 across all buckets.
		assert.True(t, sum.Equal(decimal.RequireFromString("40.44")), "%s: sum %s", periodType, sum)
	}
}

func TestReportDateWindowIncludesWholeEndDay(t *testing.T) {
	agg, db := newTestAggregator(t)

	productID := seedProduct(t, db, "Widget", "5.00", nil)
	seedSale(t, db, productID, 1, "5.00", time.Date(2023, time.March, 1, 23, 30, 0, 0, time.UTC))
	seedSale(t, db, productID, 1, "5.00", time.Date(2023, time.March, 2, 0, 30, 0, 0, time.UTC))

	start := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := start
	report, err := agg.Report(context.Background(), "daily", &start, &end, nil)
	require.NoError(t, err)

	require.Len(t, report.Data, 1)
	assert.Equal(t, "2023-03-01", report.Data[0].Period)
	assert.True(t, report.TotalRevenueOverall.Equal(decimal.NewFromInt(5)))
}

func TestReportFiltersByCategory(t *testing.T) {
	agg, db := newTestAggregator(t)

	catID := seedCategory(t, db, "Books")
	inCat := seedProduct(t, db, "Novel", "20.00", &catID)
	outCat := seedProduct(t, db, "Lamp", "50.00", nil)
	seedSale(t, db, inCat, 1, "20.00", date(2023, time.April, 5))
	seedSale(t, db, outCat, 1, "50.00", date(2023, time.April, 5))

	report, err := agg.Report(context.Background(), "annual", nil, nil, &catID)
	require.NoError(t, err)
	require.Len(t, report.Data, 1)
	assert.Equal(t, "2023", report.Data[0].Period)
	assert.True(t, report.TotalRevenueOverall.Equal(decimal.NewFromInt(20)))
}

func TestReportEmpty(t *testing.T) {
	agg, _ := newTestAggregator(t)

	report, err := agg.Report(context.Background(), "daily", nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Data)
	assert.True(t, report.TotalRevenueOverall.IsZero())
}

func TestCompare(t *testing.T) {
	agg, db := newTestAggregator(t)

	catID := seedCategory(t, db, "Electronics")
	productID := seedProduct(t, db, "Widget", "10.00", &catID)
	seedSale(t, db, productID, 3, "10.00", date(2023, time.January, 10))
	seedSale(t, db, productID, 5, "10.00", date(2023, time.February, 10))

	jan1 := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)
	feb28 := time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)

	resp, err := agg.Compare(context.Background(), jan1, jan31, feb1, feb28, &catID, nil)
	require.NoError(t, err)
	require.Len(t, resp.Comparison, 2)

	assert.Equal(t, "Period A", resp.Comparison[0].Period)
	assert.Equal(t, "Electronics", resp.Comparison[0].CategoryName)
	assert.True(t, resp.Comparison[0].TotalRevenue.Equal(decimal.NewFromInt(30)))

	assert.Equal(t, "Period B", resp.Comparison[1].Period)
	assert.Equal(t, "All Categories", resp.Comparison[1].CategoryName)
	assert.True(t, resp.Comparison[1].TotalRevenue.Equal(decimal.NewFromInt(50)))
}

func TestCompareUnknownCategoryAndEmptyWindow(t *testing.T) {
	agg, _ := newTestAggregator(t)

	missing := int64(404)
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC)

	resp, err := agg.Compare(context.Background(), start, end, start, end, &missing, nil)
	require.NoError(t, err)

	assert.Equal(t, "Category ID 404 (Not Found)", resp.Comparison[0].CategoryName)
	assert.True(t, resp.Comparison[0].TotalRevenue.IsZero())
	assert.True(t, resp.Comparison[1].TotalRevenue.IsZero())
}
