// Package databasetest provides an in-memory SQLite database whose schema
// mirrors the PostgreSQL migrations, for use in package tests. Statements in
// the rest of the codebase use $n placeholders, which SQLite also accepts,
// so the production queries run unchanged against this fixture.
package databasetest

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		price NUMERIC NOT NULL,
		category_id INTEGER REFERENCES categories(id),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE inventory (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL UNIQUE REFERENCES products(id),
		quantity INTEGER NOT NULL,
		low_stock_threshold INTEGER NOT NULL DEFAULT 10,
		last_updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE sales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL REFERENCES products(id),
		quantity_sold INTEGER NOT NULL,
		sale_price_at_time_of_sale NUMERIC NOT NULL,
		sale_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		order_id TEXT
	);`,
	`CREATE TABLE inventory_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL REFERENCES products(id),
		change_in_quantity INTEGER NOT NULL,
		reason TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
}

// New opens a fresh in-memory database with the full schema applied.
// The pool is limited to a single connection: every connection to an
// in-memory SQLite database sees its own empty database otherwise.
func New(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}
	return db
}
