package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jahanzaib32/ecom-admin-api/internal/api"
	"github.com/jahanzaib32/ecom-admin-api/internal/config"
	"github.com/jahanzaib32/ecom-admin-api/internal/database"
	"github.com/jahanzaib32/ecom-admin-api/internal/migrations"
	"github.com/jahanzaib32/ecom-admin-api/internal/seed"
)

func main() {
	_ = godotenv.Load()

	// Monetary fields marshal as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	if cfg.CatalogSeedPath != "" {
		seed.LoadCatalog(db, cfg.CatalogSeedPath)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	handler := api.New(db, logger)

	log.Printf("e-commerce admin API starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
