package revenue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jahanzaib32/ecom-admin-api/domain"
)

// Aggregator computes revenue reports from recorded sales. It only ever
// reads; recording is the sale coordinator's job.
type Aggregator struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAggregator creates a new Aggregator.
func NewAggregator(db *sqlx.DB, logger *zap.Logger) *Aggregator {
	return &Aggregator{db: db, logger: logger}
}

type saleAmount struct {
	SaleDate     time.Time       `db:"sale_date"`
	QuantitySold int64           `db:"quantity_sold"`
	SalePrice    decimal.Decimal `db:"sale_price_at_time_of_sale"`
}

func (s saleAmount) revenue() decimal.Decimal {
	return s.SalePrice.Mul(decimal.NewFromInt(s.QuantitySold))
}

// matchingSales fetches the (timestamp, quantity, price snapshot) triples for
// every sale inside the window. start/end are dates: the window spans from
// start at midnight through the whole of the end day.
func (a *Aggregator) matchingSales(ctx context.Context, start, end *time.Time, categoryID *int64) ([]saleAmount, error) {
	var (
		clauses []string
		args    []any
	)

	query := `SELECT s.sale_date, s.quantity_sold, s.sale_price_at_time_of_sale FROM sales s`
	if categoryID != nil {
		query += ` JOIN products p ON p.id = s.product_id`
		args = append(args, *categoryID)
		clauses = append(clauses, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if start != nil {
		args = append(args, startOfDay(*start))
		clauses = append(clauses, fmt.Sprintf("s.sale_date >= $%d", len(args)))
	}
	if end != nil {
		args = append(args, endOfDay(*end))
		clauses = append(clauses, fmt.Sprintf("s.sale_date <= $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY s.sale_date ASC"

	var rows []saleAmount
	if err := a.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("fetch matching sales: %w", err)
	}
	return rows, nil
}

// Report groups matching sales into periodType buckets. Only buckets with at
// least one sale appear, in ascending key order, and the overall total is
// the exact sum of the emitted data points.
func (a *Aggregator) Report(ctx context.Context, periodType string, start, end *time.Time, categoryID *int64) (*domain.RevenueReport, error) {
	pt, err := ParsePeriodType(periodType)
	if err != nil {
		return nil, err
	}

	rows, err := a.matchingSales(ctx, start, end, categoryID)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]decimal.Decimal)
	for _, row := range rows {
		key := pt.Key(row.SaleDate)
		buckets[key] = buckets[key].Add(row.revenue())
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	data := make([]domain.RevenueDataPoint, len(keys))
	total := decimal.Zero
	for i, key := range keys {
		data[i] = domain.RevenueDataPoint{Period: key, TotalRevenue: buckets[key]}
		total = total.Add(buckets[key])
	}

	a.logger.Debug("revenue report built",
		zap.String("period_type", periodType),
		zap.Int("buckets", len(data)),
		zap.String("total", total.String()),
	)
	return &domain.RevenueReport{Data: data, TotalRevenueOverall: total}, nil
}

// Compare computes total revenue for two independently filtered windows.
// The windows may overlap, be disjoint, or be identical.
func (a *Aggregator) Compare(ctx context.Context, aStart, aEnd, bStart, bEnd time.Time, categoryIDA, categoryIDB *int64) (*domain.RevenueComparisonResponse, error) {
	entryA, err := a.windowEntry(ctx, "Period A", aStart, aEnd, categoryIDA)
	if err != nil {
		return nil, err
	}
	entryB, err := a.windowEntry(ctx, "Period B", bStart, bEnd, categoryIDB)
	if err != nil {
		return nil, err
	}
	return &domain.RevenueComparisonResponse{
		Comparison: []domain.RevenueComparisonData{entryA, entryB},
	}, nil
}

func (a *Aggregator) windowEntry(ctx context.Context, label string, start, end time.Time, categoryID *int64) (domain.RevenueComparisonData, error) {
	rows, err := a.matchingSales(ctx, &start, &end, categoryID)
	if err != nil {
		return domain.RevenueComparisonData{}, err
	}
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.revenue())
	}

	name, err := a.categoryLabel(ctx, categoryID)
	if err != nil {
		return domain.RevenueComparisonData{}, err
	}
	return domain.RevenueComparisonData{Period: label, CategoryName: name, TotalRevenue: total}, nil
}

func (a *Aggregator) categoryLabel(ctx context.Context, categoryID *int64) (string, error) {
	if categoryID == nil {
		return "All Categories", nil
	}
	var name string
	err := a.db.GetContext(ctx, &name, `SELECT name FROM categories WHERE id = $1`, *categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Sprintf("Category ID %d (Not Found)", *categoryID), nil
	}
	if err != nil {
		return "", fmt.Errorf("load category %d: %w", *categoryID, err)
	}
	return name, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay extends a date to the last instant of that day so the whole end
// day is included in the window.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
