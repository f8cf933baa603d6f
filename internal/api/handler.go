package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/jahanzaib32/ecom-admin-api/internal/catalog"
	"github.com/jahanzaib32/ecom-admin-api/internal/inventory"
	"github.com/jahanzaib32/ecom-admin-api/internal/revenue"
	"github.com/jahanzaib32/ecom-admin-api/internal/sales"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	catalog   *catalog.Service
	inventory *inventory.Ledger
	sales     *sales.Service
	revenue   *revenue.Aggregator
	logger    *zap.Logger
}

// New constructs a Handler with all services wired to the given database.
func New(db *sqlx.DB, logger *zap.Logger) *Handler {
	ledger := inventory.NewLedger(db, logger)
	return &Handler{
		catalog:   catalog.NewService(db, logger),
		inventory: ledger,
		sales:     sales.NewService(db, ledger, logger),
		revenue:   revenue.NewAggregator(db, logger),
		logger:    logger,
	}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", h.createProduct)
			r.Get("/", h.listProducts)
			r.Post("/categories", h.createCategory)
			r.Get("/categories", h.listCategories)
			r.Get("/{id}", h.getProduct)
			r.Put("/{id}", h.updateProduct)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", h.listInventory)
			r.Get("/low-stock", h.lowStockAlerts)
			r.Get("/{productID}", h.getInventory)
			r.Put("/{productID}", h.updateInventory)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", h.recordSale)
			r.Get("/", h.listSales)
			r.Get("/revenue/analysis", h.revenueAnalysis)
			r.Post("/revenue/comparison", h.revenueComparison)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func queryInt64Ptr(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func queryDatePtr(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// clampSkip keeps list offsets non-negative; PostgreSQL rejects a negative
// OFFSET outright.
func clampSkip(skip int) int {
	if skip < 0 {
		return 0
	}
	return skip
}

// clampLimit mirrors the listing endpoints' page-size cap.
func clampLimit(limit int) int {
	if limit <= 0 {
		return 100
	}
	if limit > 200 {
		return 200
	}
	return limit
}
