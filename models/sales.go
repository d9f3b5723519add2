package models

// PeriodLayout is the time layout used for monthly periods.
const PeriodLayout = "2006-01"

// MonthlySales is one row of the monthly financial table. Profit and
// GrowthPct are pure functions of the stored columns, computed eagerly when
// the table is generated. GrowthPct is nil for the first period, where no
// prior value exists.
type MonthlySales struct {
	Period     string   `json:"period"` // year-month, e.g. 2025-08
	TotalSales float64  `json:"total_sales"`
	Cost       float64  `json:"cost"`
	Profit     float64  `json:"profit"`     // TotalSales - Cost
	GrowthPct  *float64 `json:"growth_pct"` // percent change vs prior period
}
