package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jahanzaib32/ecom-admin-api/domain"
)

// ErrProductNotFound is returned when a product lookup matches no row.
var ErrProductNotFound = errors.New("product not found")

// ErrCategoryNotFound is returned when a category lookup matches no row.
var ErrCategoryNotFound = errors.New("category not found")

// ErrCategoryNameTaken is returned when creating a category whose name
// already exists.
var ErrCategoryNameTaken = errors.New("category name already exists")

// Service manages products and categories.
type Service struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewService creates a new Service.
func NewService(db *sqlx.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// CreateProductParams describes a new product and its opening stock.
type CreateProductParams struct {
	Name              string
	Description       *string
	Price             decimal.Decimal
	CategoryID        *int64
	InitialQuantity   int64
	LowStockThreshold *int64
}

// CreateProduct inserts the product and its inventory row in a single
// transaction; a product is never visible without inventory state.
func (s *Service) CreateProduct(ctx context.Context, params CreateProductParams) (*domain.ProductWithInventory, error) {
	if params.CategoryID != nil {
		if _, err := s.GetCategory(ctx, *params.CategoryID); err != nil {
			return nil, err
		}
	}

	threshold := int64(10)
	if params.LowStockThreshold != nil {
		threshold = *params.LowStockThreshold
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin product creation: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var productID int64
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO products (name, description, price, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id`,
		params.Name, params.Description, params.Price, params.CategoryID, now).Scan(&productID)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO inventory (product_id, quantity, low_stock_threshold, last_updated)
		VALUES ($1, $2, $3, $4)`,
		productID, params.InitialQuantity, threshold, now)
	if err != nil {
		return nil, fmt.Errorf("insert inventory for product %d: %w", productID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit product creation: %w", err)
	}

	s.logger.Info("product created",
		zap.Int64("product_id", productID),
		zap.String("name", params.Name),
		zap.Int64("initial_quantity", params.InitialQuantity),
	)
	return s.GetProduct(ctx, productID)
}

type productRow struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description *string         `db:"description"`
	Price       decimal.Decimal `db:"price"`
	CategoryID  *int64          `db:"category_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`

	CatID        *int64     `db:"cat_id"`
	CatName      *string    `db:"cat_name"`
	CatCreatedAt *time.Time `db:"cat_created_at"`

	InventoryQuantity *int64 `db:"inventory_quantity"`
	LowStockThreshold *int64 `db:"low_stock_threshold"`
}

func (r productRow) toDomain() domain.ProductWithInventory {
	p := domain.ProductWithInventory{
		Product: domain.Product{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Price:       r.Price,
			CategoryID:  r.CategoryID,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		},
		InventoryQuantity: r.InventoryQuantity,
		LowStockThreshold: r.LowStockThreshold,
	}
	if r.CatID != nil {
		p.Category = &domain.Category{ID: *r.CatID, Name: *r.CatName, CreatedAt: *r.CatCreatedAt}
	}
	return p
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.category_id, p.created_at, p.updated_at,
	       c.id AS cat_id, c.name AS cat_name, c.created_at AS cat_created_at,
	       i.quantity AS inventory_quantity, i.low_stock_threshold
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN inventory i ON i.product_id = p.id`

// GetProduct returns a product with its category and inventory state.
func (s *Service) GetProduct(ctx context.Context, productID int64) (*domain.ProductWithInventory, error) {
	var row productRow
	err := s.db.GetContext(ctx, &row, productSelect+` WHERE p.id = $1`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("load product %d: %w", productID, err)
	}
	product := row.toDomain()
	return &product, nil
}

// ListProductsParams narrows a product listing.
type ListProductsParams struct {
	Skip       int
	Limit      int
	CategoryID *int64
	NameFilter string
}

// ListProducts returns products ordered by name.
func (s *Service) ListProducts(ctx context.Context, params ListProductsParams) ([]domain.ProductWithInventory, error) {
	var (
		clauses []string
		args    []any
	)
	if params.CategoryID != nil {
		args = append(args, *params.CategoryID)
		clauses = append(clauses, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if params.NameFilter != "" {
		args = append(args, "%"+params.NameFilter+"%")
		clauses = append(clauses, fmt.Sprintf("p.name LIKE $%d", len(args)))
	}

	query := productSelect
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}
	skip := params.Skip
	if skip < 0 {
		skip = 0
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY p.name LIMIT $%d", len(args))
	args = append(args, skip)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	var rows []productRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]domain.ProductWithInventory, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out, nil
}

// UpdateProductParams carries an optional-field update: only non-nil fields
// generate assignment clauses.
type UpdateProductParams struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	CategoryID  *int64
}

// UpdateProduct applies the provided fields and returns the refreshed
// product. Changing the price never touches already-recorded sales; their
// snapshots keep the price in force at sale time.
func (s *Service) UpdateProduct(ctx context.Context, productID int64, params UpdateProductParams) (*domain.ProductWithInventory, error) {
	if params.CategoryID != nil {
		if _, err := s.GetCategory(ctx, *params.CategoryID); err != nil {
			return nil, err
		}
	}

	var (
		clauses []string
		args    []any
	)
	if params.Name != nil {
		args = append(args, *params.Name)
		clauses = append(clauses, fmt.Sprintf("name = $%d", len(args)))
	}
	if params.Description != nil {
		args = append(args, *params.Description)
		clauses = append(clauses, fmt.Sprintf("description = $%d", len(args)))
	}
	if params.Price != nil {
		args = append(args, *params.Price)
		clauses = append(clauses, fmt.Sprintf("price = $%d", len(args)))
	}
	if params.CategoryID != nil {
		args = append(args, *params.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return s.GetProduct(ctx, productID)
	}

	args = append(args, time.Now().UTC())
	clauses = append(clauses, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, productID)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", strings.Join(clauses, ", "), len(args))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", productID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", productID, err)
	}
	if affected == 0 {
		return nil, ErrProductNotFound
	}
	return s.GetProduct(ctx, productID)
}

// CreateCategory inserts a category and returns it.
func (s *Service) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	now := time.Now().UTC()
	var id int64
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO categories (name, created_at) VALUES ($1, $2) RETURNING id`, name, now).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &domain.Category{ID: id, Name: name, CreatedAt: now}, nil
}

// isUniqueViolation recognizes a unique-constraint error from PostgreSQL by
// its SQLSTATE code. The SQLite driver used in tests carries no typed code,
// so its fixed message text is matched as a fallback.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetCategory returns a category by id.
func (s *Service) GetCategory(ctx context.Context, categoryID int64) (*domain.Category, error) {
	var cat domain.Category
	err := s.db.GetContext(ctx, &cat, `SELECT id, name, created_at FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("load category %d: %w", categoryID, err)
	}
	return &cat, nil
}

// ListCategories returns categories ordered by name.
func (s *Service) ListCategories(ctx context.Context, skip, limit int) ([]domain.Category, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	categories := []domain.Category{}
	err := s.db.SelectContext(ctx, &categories,
		`SELECT id, name, created_at FROM categories ORDER BY name LIMIT $1 OFFSET $2`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
