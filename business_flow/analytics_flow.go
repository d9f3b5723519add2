package businessflow

import (
	"context"
	"sort"
	"time"

	"github.com/agromercantil/sales-insight/app/dto"
	"github.com/agromercantil/sales-insight/dataset"
	"github.com/agromercantil/sales-insight/models"
	"github.com/agromercantil/sales-insight/utils"
)

// AnalyticsOptions are the explicit defaults for the analysis operations,
// replacing the implicit per-call defaults the views used to carry.
type AnalyticsOptions struct {
	TopN          int
	HistogramBins int
	BucketCount   int
}

// DefaultAnalyticsOptions mirrors the demo dashboard: top-5 rankings,
// 12-bin histograms, three customer tiers.
func DefaultAnalyticsOptions() AnalyticsOptions {
	return AnalyticsOptions{TopN: 5, HistogramBins: 12, BucketCount: 3}
}

// AnalyticsFlow assembles the dashboard views: each call regenerates its
// dataset from the configured seed, applies the requested filters and reduces
// the result to the tables and KPIs the presentation layer renders. Every
// call is self-contained; a failing call leaves no state behind.
type AnalyticsFlow interface {
	Overview(ctx context.Context) (*dto.OverviewResponse, error)
	RFM(ctx context.Context, req *dto.RFMRequest) (*dto.RFMResponse, error)
	TopProducts(ctx context.Context, n int) (*dto.TopProductsResponse, error)
	Trends(ctx context.Context) (*dto.TrendsResponse, error)
	InactiveCustomers(ctx context.Context) (*dto.InactiveCustomersResponse, error)
	Exploration(ctx context.Context, req *dto.ExplorationRequest) (*dto.ExplorationResponse, error)
	OrderItemsTable(ctx context.Context) []models.OrderItem
}

type AnalyticsFlowImpl struct {
	gen     *dataset.Generator
	filter  FilterFlow
	agg     AggregationFlow
	seg     SegmentationFlow
	summary SummaryFlow
	opts    AnalyticsOptions
}

func NewAnalyticsFlow(gen *dataset.Generator, filter FilterFlow, agg AggregationFlow, seg SegmentationFlow, summary SummaryFlow, opts AnalyticsOptions) AnalyticsFlow {
	if opts.TopN <= 0 {
		opts.TopN = DefaultAnalyticsOptions().TopN
	}
	if opts.HistogramBins <= 0 {
		opts.HistogramBins = DefaultAnalyticsOptions().HistogramBins
	}
	if opts.BucketCount <= 0 {
		opts.BucketCount = DefaultAnalyticsOptions().BucketCount
	}
	return &AnalyticsFlowImpl{gen: gen, filter: filter, agg: agg, seg: seg, summary: summary, opts: opts}
}

// Overview reduces the monthly sales table to the strategic KPIs: total
// revenue, profit and cost plus the mean growth rate.
func (f *AnalyticsFlowImpl) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	rows := f.gen.MonthlySales()

	var sales, profit, cost, growth []float64
	for _, r := range rows {
		sales = append(sales, r.TotalSales)
		profit = append(profit, r.Profit)
		cost = append(cost, r.Cost)
		if r.GrowthPct != nil {
			growth = append(growth, *r.GrowthPct)
		}
	}

	return &dto.OverviewResponse{
		Rows: rows,
		KPIs: dto.OverviewKPIs{
			TotalRevenue:  f.summary.SummarizeValues(sales).Sum,
			TotalProfit:   f.summary.SummarizeValues(profit).Sum,
			TotalCost:     f.summary.SummarizeValues(cost).Sum,
			MeanGrowthPct: utils.FloatPtrOrNil(f.summary.SummarizeValues(growth).Mean),
		},
	}, nil
}

// RFM produces the segmented customer table, narrowed to the requested tiers.
func (f *AnalyticsFlowImpl) RFM(ctx context.Context, req *dto.RFMRequest) (*dto.RFMResponse, error) {
	records, err := f.seg.SegmentCustomers(f.gen.CustomerRecords(), f.opts.BucketCount)
	if err != nil {
		return nil, err
	}

	rows := f.filter.FilterCustomersBySegment(records, req.Segments)

	counts := make(map[string]int, f.opts.BucketCount)
	for _, rec := range rows {
		counts[rec.Segment]++
	}

	return &dto.RFMResponse{Rows: rows, SegmentCounts: counts}, nil
}

// TopProducts ranks the product summary table by revenue. Zero n falls back
// to the configured default; ties keep their original order.
func (f *AnalyticsFlowImpl) TopProducts(ctx context.Context, n int) (*dto.TopProductsResponse, error) {
	if n < 0 {
		return nil, NewBusinessError("RANGE_ERROR", "Top-n count must not be negative", ErrNegativeTopN)
	}
	if n == 0 {
		n = f.opts.TopN
	}

	rows := f.gen.ProductSummaries()
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Revenue > rows[j].Revenue
	})
	if n < len(rows) {
		rows = rows[:n]
	}
	return &dto.TopProductsResponse{Rows: rows}, nil
}

// Trends serves the monthly sales table with its growth series and mean
// growth rate.
func (f *AnalyticsFlowImpl) Trends(ctx context.Context) (*dto.TrendsResponse, error) {
	rows := f.gen.MonthlySales()

	var growth []float64
	for _, r := range rows {
		if r.GrowthPct != nil {
			growth = append(growth, *r.GrowthPct)
		}
	}
	return &dto.TrendsResponse{
		Rows:          rows,
		MeanGrowthPct: utils.FloatPtrOrNil(f.summary.SummarizeValues(growth).Mean),
	}, nil
}

// InactiveCustomers serves the inactive-customer table sorted by last
// purchase date, oldest first.
func (f *AnalyticsFlowImpl) InactiveCustomers(ctx context.Context) (*dto.InactiveCustomersResponse, error) {
	rows := f.gen.InactiveCustomers()
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].LastPurchase.Before(rows[j].LastPurchase)
	})
	return &dto.InactiveCustomersResponse{Rows: rows}, nil
}

// Exploration runs the exploratory analysis over the order-item table
// narrowed by category and date window: top products by units, unit-price
// histogram, price-quantity correlation and monthly unit totals.
func (f *AnalyticsFlowImpl) Exploration(ctx context.Context, req *dto.ExplorationRequest) (*dto.ExplorationResponse, error) {
	filter := OrderItemFilter{Category: req.Category}
	if req.From != "" {
		from, err := time.Parse(dto.DateLayout, req.From)
		if err != nil {
			return nil, NewBusinessError("VALIDATION_ERROR", "Invalid from date", err)
		}
		filter.From = utils.ToPtr(from.UTC())
	}
	if req.To != "" {
		to, err := time.Parse(dto.DateLayout, req.To)
		if err != nil {
			return nil, NewBusinessError("VALIDATION_ERROR", "Invalid to date", err)
		}
		// Inclusive upper bound covers the whole day
		filter.To = utils.ToPtr(to.UTC().AddDate(0, 0, 1).Add(-time.Nanosecond))
	}

	filtered, err := f.filter.FilterOrderItems(f.gen.OrderItems(), filter)
	if err != nil {
		return nil, err
	}

	top, err := f.agg.TopNBySum(filtered, ColProductName, ColQuantity, f.opts.TopN)
	if err != nil {
		return nil, err
	}

	prices, err := NumericColumn(filtered, ColUnitPrice)
	if err != nil {
		return nil, err
	}
	hist, err := f.agg.Histogram(prices, f.opts.HistogramBins)
	if err != nil {
		return nil, err
	}

	corr, err := f.agg.Correlation(filtered, ColUnitPrice, ColQuantity)
	if err != nil {
		return nil, err
	}

	monthly, err := f.agg.ResampleMonthly(filtered, ColQuantity)
	if err != nil {
		return nil, err
	}

	units, err := f.summary.SummarizeOrderItems(filtered, ColQuantity)
	if err != nil {
		return nil, err
	}

	res := &dto.ExplorationResponse{
		Category:                 req.Category,
		RowCount:                 len(filtered),
		TotalUnits:               units.Sum,
		TopProducts:              make([]dto.RankedGroup, len(top)),
		PriceHistogram:           &dto.HistogramData{Edges: hist.Edges, Counts: hist.Counts},
		PriceQuantityCorrelation: utils.FloatPtrOrNil(corr),
		MonthlyUnits:             make([]dto.MonthlyPoint, len(monthly)),
	}
	for i, g := range top {
		res.TopProducts[i] = dto.RankedGroup{Key: g.Key, Total: g.Total}
	}
	for i, m := range monthly {
		res.MonthlyUnits[i] = dto.MonthlyPoint{Period: m.Period, Total: m.Total}
	}
	return res, nil
}

// OrderItemsTable exposes the raw flattened order table for export.
func (f *AnalyticsFlowImpl) OrderItemsTable(ctx context.Context) []models.OrderItem {
	return f.gen.OrderItems()
}
