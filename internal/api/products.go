package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jahanzaib32/ecom-admin-api/internal/catalog"
)

type productCreateRequest struct {
	Name              string          `json:"name"`
	Description       *string         `json:"description,omitempty"`
	Price             decimal.Decimal `json:"price"`
	CategoryID        *int64          `json:"category_id,omitempty"`
	InitialQuantity   int64           `json:"initial_quantity"`
	LowStockThreshold *int64          `json:"low_stock_threshold,omitempty"`
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !req.Price.IsPositive() {
		respondError(w, http.StatusBadRequest, "price must be greater than zero")
		return
	}
	if req.InitialQuantity < 0 {
		respondError(w, http.StatusBadRequest, "initial_quantity must not be negative")
		return
	}
	if req.LowStockThreshold != nil && *req.LowStockThreshold < 0 {
		respondError(w, http.StatusBadRequest, "low_stock_threshold must not be negative")
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), catalog.CreateProductParams{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		CategoryID:        req.CategoryID,
		InitialQuantity:   req.InitialQuantity,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			respondError(w, http.StatusNotFound, "category not found")
			return
		}
		h.logger.Error("failed to create product", zap.String("name", req.Name), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to create product")
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("failed to load product", zap.Int64("product_id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to load product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryInt64Ptr(r, "category_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "category_id must be an integer")
		return
	}
	products, err := h.catalog.ListProducts(r.Context(), catalog.ListProductsParams{
		Skip:       clampSkip(queryInt(r, "skip", 0)),
		Limit:      clampLimit(queryInt(r, "limit", 100)),
		CategoryID: categoryID,
		NameFilter: strings.TrimSpace(r.URL.Query().Get("name")),
	})
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to list products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

type productUpdateRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CategoryID  *int64           `json:"category_id,omitempty"`
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req productUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name must not be empty")
		return
	}
	if req.Price != nil && !req.Price.IsPositive() {
		respondError(w, http.StatusBadRequest, "price must be greater than zero")
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, catalog.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			respondError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, catalog.ErrCategoryNotFound):
			respondError(w, http.StatusNotFound, "category not found")
		default:
			h.logger.Error("failed to update product", zap.Int64("product_id", id), zap.Error(err))
			respondError(w, http.StatusInternalServerError, "unable to update product")
		}
		return
	}
	respondJSON(w, http.StatusOK, product)
}

type categoryCreateRequest struct {
	Name string `json:"name"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	category, err := h.catalog.CreateCategory(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryNameTaken) {
			respondError(w, http.StatusConflict, "category name already exists")
			return
		}
		h.logger.Error("failed to create category", zap.String("name", req.Name), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to create category")
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context(), clampSkip(queryInt(r, "skip", 0)), clampLimit(queryInt(r, "limit", 100)))
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to list categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}
