package api

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jahanzaib32/ecom-admin-api/domain"
	"github.com/jahanzaib32/ecom-admin-api/internal/revenue"
	"github.com/jahanzaib32/ecom-admin-api/internal/sales"
)

type saleCreateRequest struct {
	ProductID    int64   `json:"product_id"`
	QuantitySold int64   `json:"quantity_sold"`
	OrderID      *string `json:"order_id,omitempty"`
}

func (h *Handler) recordSale(w http.ResponseWriter, r *http.Request) {
	var req saleCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}
	if req.QuantitySold <= 0 {
		respondError(w, http.StatusBadRequest, "quantity_sold must be greater than zero")
		return
	}

	sale, err := h.sales.RecordSale(r.Context(), req.ProductID, req.QuantitySold, req.OrderID)
	if err != nil {
		var stockErr *sales.InsufficientStockError
		switch {
		case errors.Is(err, sales.ErrProductNotFound):
			respondError(w, http.StatusBadRequest, "product not found")
		case errors.As(err, &stockErr):
			respondJSON(w, http.StatusBadRequest, map[string]any{
				"error":     stockErr.Error(),
				"available": stockErr.Available,
				"requested": stockErr.Requested,
			})
		default:
			// Covers ErrInventoryRowMissing and unexpected store failures; the
			// transaction has already been rolled back.
			h.logger.Error("failed to record sale",
				zap.Int64("product_id", req.ProductID),
				zap.Int64("quantity_sold", req.QuantitySold),
				zap.Error(err),
			)
			respondError(w, http.StatusInternalServerError, "unable to record sale")
		}
		return
	}
	respondJSON(w, http.StatusCreated, sale)
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	dateFrom, err := queryDatePtr(r, "date_from")
	if err != nil {
		respondError(w, http.StatusBadRequest, "date_from must be in YYYY-MM-DD format")
		return
	}
	dateTo, err := queryDatePtr(r, "date_to")
	if err != nil {
		respondError(w, http.StatusBadRequest, "date_to must be in YYYY-MM-DD format")
		return
	}
	productID, err := queryInt64Ptr(r, "product_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "product_id must be an integer")
		return
	}
	categoryID, err := queryInt64Ptr(r, "category_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "category_id must be an integer")
		return
	}
	if dateTo != nil {
		end := dateTo.AddDate(0, 0, 1).Add(-time.Nanosecond)
		dateTo = &end
	}

	list, err := h.sales.List(r.Context(), sales.ListFilters{
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		ProductID:  productID,
		CategoryID: categoryID,
		Skip:       clampSkip(queryInt(r, "skip", 0)),
		Limit:      clampLimit(queryInt(r, "limit", 100)),
	})
	if err != nil {
		h.logger.Error("failed to list sales", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to list sales")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) revenueAnalysis(w http.ResponseWriter, r *http.Request) {
	startDate, err := queryDatePtr(r, "start_date")
	if err != nil {
		respondError(w, http.StatusBadRequest, "start_date must be in YYYY-MM-DD format")
		return
	}
	endDate, err := queryDatePtr(r, "end_date")
	if err != nil {
		respondError(w, http.StatusBadRequest, "end_date must be in YYYY-MM-DD format")
		return
	}
	categoryID, err := queryInt64Ptr(r, "category_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "category_id must be an integer")
		return
	}

	report, err := h.revenue.Report(r.Context(), r.URL.Query().Get("period_type"), startDate, endDate, categoryID)
	if err != nil {
		if errors.Is(err, revenue.ErrInvalidPeriodType) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to build revenue report", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to generate revenue report")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) revenueComparison(w http.ResponseWriter, r *http.Request) {
	var req domain.RevenueComparisonRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	parse := func(field, raw string) (time.Time, bool) {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, field+" must be in YYYY-MM-DD format")
			return time.Time{}, false
		}
		return t, true
	}
	aStart, ok := parse("period_a_start", req.PeriodAStart)
	if !ok {
		return
	}
	aEnd, ok := parse("period_a_end", req.PeriodAEnd)
	if !ok {
		return
	}
	bStart, ok := parse("period_b_start", req.PeriodBStart)
	if !ok {
		return
	}
	bEnd, ok := parse("period_b_end", req.PeriodBEnd)
	if !ok {
		return
	}

	resp, err := h.revenue.Compare(r.Context(), aStart, aEnd, bStart, bEnd, req.CategoryIDA, req.CategoryIDB)
	if err != nil {
		h.logger.Error("failed to build revenue comparison", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to generate revenue comparison")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
