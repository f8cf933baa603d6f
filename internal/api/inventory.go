package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jahanzaib32/ecom-admin-api/internal/inventory"
)

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.Status(r.Context(), clampSkip(queryInt(r, "skip", 0)), clampLimit(queryInt(r, "limit", 100)))
	if err != nil {
		h.logger.Error("failed to list inventory", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to list inventory")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) lowStockAlerts(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.LowStock(r.Context())
	if err != nil {
		h.logger.Error("failed to list low stock products", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to list low stock products")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) getInventory(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "productID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	item, err := h.inventory.Get(r.Context(), productID)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			respondError(w, http.StatusNotFound, "inventory not found for product")
			return
		}
		h.logger.Error("failed to load inventory", zap.Int64("product_id", productID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to load inventory")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handler) updateInventory(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "productID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req inventory.UpdateParams
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "quantity must not be negative")
		return
	}
	if req.LowStockThreshold != nil && *req.LowStockThreshold < 0 {
		respondError(w, http.StatusBadRequest, "low_stock_threshold must not be negative")
		return
	}

	item, err := h.inventory.Update(r.Context(), productID, req)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			respondError(w, http.StatusNotFound, "inventory not found for product")
			return
		}
		h.logger.Error("failed to update inventory", zap.Int64("product_id", productID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to update inventory")
		return
	}
	respondJSON(w, http.StatusOK, item)
}
