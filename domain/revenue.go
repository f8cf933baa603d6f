package domain

import "github.com/shopspring/decimal"

// RevenueDataPoint is one time bucket of a revenue report. Period is a
// string key (2023-03-15, 2023-W11, 2023-03 or 2023 depending on the
// granularity); lexicographic order of keys matches chronological order.
type RevenueDataPoint struct {
	Period       string          `json:"period"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type RevenueReport struct {
	Data                []RevenueDataPoint `json:"data"`
	TotalRevenueOverall decimal.Decimal    `json:"total_revenue_overall"`
}

type RevenueComparisonRequest struct {
	PeriodAStart string `json:"period_a_start"`
	PeriodAEnd   string `json:"period_a_end"`
	PeriodBStart string `json:"period_b_start"`
	PeriodBEnd   string `json:"period_b_end"`
	CategoryIDA  *int64 `json:"category_id_a,omitempty"`
	CategoryIDB  *int64 `json:"category_id_b,omitempty"`
}

type RevenueComparisonData struct {
	Period       string          `json:"period"`
	CategoryName string          `json:"category_name"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type RevenueComparisonResponse struct {
	Comparison []RevenueComparisonData `json:"comparison"`
}
