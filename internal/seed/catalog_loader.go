package seed

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// LoadCatalog ingests a CSV of demo catalog rows into the categories,
// products and inventory tables. Expected columns:
// category,name,description,price,quantity,low_stock_threshold.
// Missing files are not an error; the seed is a dev convenience.
func LoadCatalog(db *sqlx.DB, csvPath string) {
	file, err := os.Open(csvPath)
	if err != nil {
		log.Printf("unable to load catalog seed %s: %v", csvPath, err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Printf("unable to read catalog header: %v", err)
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Printf("unable to start catalog seed transaction: %v", err)
		return
	}

	now := time.Now().UTC()
	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("unable to read catalog row: %v", err)
			continue
		}
		if len(record) < 6 {
			continue
		}

		categoryName := strings.TrimSpace(record[0])
		name := strings.TrimSpace(record[1])
		description := strings.TrimSpace(record[2])
		price, err := decimal.NewFromString(strings.TrimSpace(record[3]))
		if err != nil || name == "" || !price.IsPositive() {
			continue
		}
		quantity, _ := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64)
		threshold, err := strconv.ParseInt(strings.TrimSpace(record[5]), 10, 64)
		if err != nil {
			threshold = 10
		}

		var categoryID *int64
		if categoryName != "" {
			if _, err := tx.Exec(`INSERT INTO categories (name, created_at) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`, categoryName, now); err != nil {
				log.Printf("unable to seed category %s: %v", categoryName, err)
				continue
			}
			var id int64
			if err := tx.Get(&id, `SELECT id FROM categories WHERE name = $1`, categoryName); err != nil {
				log.Printf("unable to resolve category %s: %v", categoryName, err)
				continue
			}
			categoryID = &id
		}

		var productID int64
		err = tx.QueryRowx(`
			INSERT INTO products (name, description, price, category_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING id`,
			name, description, price, categoryID, now).Scan(&productID)
		if err != nil {
			log.Printf("unable to seed product %s: %v", name, err)
			continue
		}
		if _, err := tx.Exec(`
			INSERT INTO inventory (product_id, quantity, low_stock_threshold, last_updated)
			VALUES ($1, $2, $3, $4)`,
			productID, quantity, threshold, now); err != nil {
			log.Printf("unable to seed inventory for %s: %v", name, err)
			continue
		}
		rows++
	}

	if err := tx.Commit(); err != nil {
		log.Printf("unable to commit catalog seed: %v", err)
	} else {
		log.Printf("seeded catalog with %d products", rows)
	}
}
