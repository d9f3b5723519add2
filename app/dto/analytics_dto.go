package dto

import (
	"github.com/agromercantil/sales-insight/models"
)

// DateLayout is the format accepted by date query parameters.
const DateLayout = "2006-01-02"

// ExplorationRequest carries the filter parameters of the exploratory
// analysis view. Dates are inclusive bounds on the order date.
type ExplorationRequest struct {
	Category string `query:"category" validate:"required,oneof=Eletrônicos Moda Livros Móveis"`
	From     string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To       string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// RFMRequest selects the segment tiers to include. Empty means all tiers.
type RFMRequest struct {
	Segments []string `query:"segments" validate:"omitempty,dive,oneof=Bronze Prata Ouro"`
}

// TopProductsRequest bounds the product ranking size. Zero falls back to the
// configured default; negative values are rejected by the pipeline.
type TopProductsRequest struct {
	N int `query:"n" validate:"omitempty,lte=100"`
}

// OverviewKPIs are the scalar reductions of the monthly sales table.
// MeanGrowthPct is nil when no growth values exist.
type OverviewKPIs struct {
	TotalRevenue  float64  `json:"total_revenue"`
	TotalProfit   float64  `json:"total_profit"`
	TotalCost     float64  `json:"total_cost"`
	MeanGrowthPct *float64 `json:"mean_growth_pct"`
}

type OverviewResponse struct {
	Rows []models.MonthlySales `json:"rows"`
	KPIs OverviewKPIs          `json:"kpis"`
}

type RFMResponse struct {
	Rows          []models.CustomerRecord `json:"rows"`
	SegmentCounts map[string]int          `json:"segment_counts"`
}

type TopProductsResponse struct {
	Rows []models.ProductSummary `json:"rows"`
}

type TrendsResponse struct {
	Rows          []models.MonthlySales `json:"rows"`
	MeanGrowthPct *float64              `json:"mean_growth_pct"`
}

type InactiveCustomersResponse struct {
	Rows []models.InactiveCustomer `json:"rows"`
}

// RankedGroup is one group of a top-N ranking.
type RankedGroup struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
}

// HistogramData holds equal-width bin edges and counts.
type HistogramData struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// MonthlyPoint is one month of a resampled series.
type MonthlyPoint struct {
	Period string  `json:"period"`
	Total  float64 `json:"total"`
}

// ExplorationResponse is the exploratory analysis of a filtered order-item
// table. Correlation is nil when undefined for the filtered rows.
type ExplorationResponse struct {
	Category                 string         `json:"category"`
	RowCount                 int            `json:"row_count"`
	TotalUnits               float64        `json:"total_units"`
	TopProducts              []RankedGroup  `json:"top_products"`
	PriceHistogram           *HistogramData `json:"price_histogram"`
	PriceQuantityCorrelation *float64       `json:"price_quantity_correlation"`
	MonthlyUnits             []MonthlyPoint `json:"monthly_units"`
}
