package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required for the admin API.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC(12,2) NOT NULL,
			category_id INTEGER REFERENCES categories(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS inventory (
			id SERIAL PRIMARY KEY,
			product_id INTEGER NOT NULL UNIQUE REFERENCES products(id),
			quantity INTEGER NOT NULL,
			low_stock_threshold INTEGER NOT NULL DEFAULT 10,
			last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS sales (
			id SERIAL PRIMARY KEY,
			product_id INTEGER NOT NULL REFERENCES products(id),
			quantity_sold INTEGER NOT NULL,
			sale_price_at_time_of_sale NUMERIC(12,2) NOT NULL,
			sale_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			order_id TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS inventory_log (
			id SERIAL PRIMARY KEY,
			product_id INTEGER NOT NULL REFERENCES products(id),
			change_in_quantity INTEGER NOT NULL,
			reason TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON sales(sale_date);`,
		`CREATE INDEX IF NOT EXISTS idx_sales_product_id ON sales(product_id);`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_log_product_id ON inventory_log(product_id);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}
