package businessflow

import (
	"math"
	"sort"

	"github.com/agromercantil/sales-insight/models"
	"github.com/agromercantil/sales-insight/utils"
)

// Order-item column names accepted by the aggregation operations. They mirror
// the JSON names of the flattened table.
const (
	ColProductName = "product_name"
	ColCategory    = "category"
	ColQuantity    = "quantity"
	ColUnitPrice   = "unit_price"
	ColRevenue     = "revenue"
)

// GroupSum is one group of a grouped sum, keyed by the group-by column value.
type GroupSum struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
}

// Histogram holds equal-width bins over a numeric column's observed range.
// Edges has one more entry than Counts.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// MonthlyTotal is one month of a resampled series.
type MonthlyTotal struct {
	Period string  `json:"period"`
	Total  float64 `json:"total"`
}

// AggregationFlow computes grouped and derived views over the order-item
// table. All operations treat an empty input as a defined case and return
// empty or zero results instead of failing.
type AggregationFlow interface {
	TopNBySum(items []models.OrderItem, groupBy, sumBy string, n int) ([]GroupSum, error)
	Histogram(values []float64, bins int) (*Histogram, error)
	ResampleMonthly(items []models.OrderItem, valueBy string) ([]MonthlyTotal, error)
	Correlation(items []models.OrderItem, colA, colB string) (float64, error)
	GrowthSeries(values []float64) []*float64
}

type AggregationFlowImpl struct{}

func NewAggregationFlow() AggregationFlow {
	return &AggregationFlowImpl{}
}

// TopNBySum groups the items by a categorical column, sums a numeric column
// per group and returns the n largest groups in descending order. Groups with
// equal sums keep their original encounter order.
func (f *AggregationFlowImpl) TopNBySum(items []models.OrderItem, groupBy, sumBy string, n int) ([]GroupSum, error) {
	if n < 0 {
		return nil, NewBusinessError("RANGE_ERROR", "Top-n count must not be negative", ErrNegativeTopN)
	}
	keyOf, err := orderItemKey(groupBy)
	if err != nil {
		return nil, err
	}
	valueOf, err := orderItemValue(sumBy)
	if err != nil {
		return nil, err
	}

	groups := make([]GroupSum, 0)
	index := make(map[string]int)
	for _, item := range items {
		key := keyOf(item)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, GroupSum{Key: key})
		}
		groups[i].Total += valueOf(item)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total > groups[j].Total
	})
	if n < len(groups) {
		groups = groups[:n]
	}
	return groups, nil
}

// Histogram partitions the observed value range into the requested number of
// equal-width bins. An empty input yields an empty histogram; a degenerate
// range (all values equal) yields a single bin holding every value.
func (f *AggregationFlowImpl) Histogram(values []float64, bins int) (*Histogram, error) {
	if bins <= 0 {
		return nil, NewBusinessError("RANGE_ERROR", "Histogram bin count must be positive", ErrInvalidBinCount)
	}
	if len(values) == 0 {
		return &Histogram{}, nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return &Histogram{Edges: []float64{lo, hi}, Counts: []int{len(values)}}, nil
	}

	width := (hi - lo) / float64(bins)
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[bins] = hi

	counts := make([]int, bins)
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1 // the maximum falls into the last bin
		}
		counts[i]++
	}
	return &Histogram{Edges: edges, Counts: counts}, nil
}

// ResampleMonthly sums a numeric column per calendar month of the order date.
// Months between the first and last observed month with no matching rows are
// reported with total 0 so the series stays contiguous; months outside the
// observed span are not invented. An empty input yields an empty series.
func (f *AggregationFlowImpl) ResampleMonthly(items []models.OrderItem, valueBy string) ([]MonthlyTotal, error) {
	valueOf, err := orderItemValue(valueBy)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []MonthlyTotal{}, nil
	}

	totals := make(map[string]float64)
	first, last := utils.StartOfMonth(items[0].OrderDate), utils.StartOfMonth(items[0].OrderDate)
	for _, item := range items {
		month := utils.StartOfMonth(item.OrderDate)
		if month.Before(first) {
			first = month
		}
		if month.After(last) {
			last = month
		}
		totals[month.Format(models.PeriodLayout)] += valueOf(item)
	}

	series := make([]MonthlyTotal, 0, len(totals))
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		period := m.Format(models.PeriodLayout)
		series = append(series, MonthlyTotal{Period: period, Total: totals[period]})
	}
	return series, nil
}

// Correlation computes the Pearson coefficient between two numeric columns.
// It returns NaN when either column has zero variance or the table holds
// fewer than two rows.
func (f *AggregationFlowImpl) Correlation(items []models.OrderItem, colA, colB string) (float64, error) {
	valueA, err := orderItemValue(colA)
	if err != nil {
		return 0, err
	}
	valueB, err := orderItemValue(colB)
	if err != nil {
		return 0, err
	}
	if len(items) < 2 {
		return math.NaN(), nil
	}

	n := float64(len(items))
	var meanA, meanB float64
	for _, item := range items {
		meanA += valueA(item)
		meanB += valueB(item)
	}
	meanA /= n
	meanB /= n

	var cov, varA, varB float64
	for _, item := range items {
		da := valueA(item) - meanA
		db := valueB(item) - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		return math.NaN(), nil
	}
	return cov / math.Sqrt(varA*varB), nil
}

// GrowthSeries computes the percent change between consecutive values. The
// first entry is nil, as is any entry whose predecessor is zero.
func (f *AggregationFlowImpl) GrowthSeries(values []float64) []*float64 {
	series := make([]*float64, len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		growth := utils.Round2((values[i] - values[i-1]) / values[i-1] * 100)
		series[i] = &growth
	}
	return series
}

// NumericColumn projects a numeric order-item column into a value slice, for
// operations that take raw values such as Histogram.
func NumericColumn(items []models.OrderItem, col string) ([]float64, error) {
	valueOf, err := orderItemValue(col)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(items))
	for i, item := range items {
		values[i] = valueOf(item)
	}
	return values, nil
}

func orderItemKey(col string) (func(models.OrderItem) string, error) {
	switch col {
	case ColProductName:
		return func(i models.OrderItem) string { return i.ProductName }, nil
	case ColCategory:
		return func(i models.OrderItem) string { return i.Category }, nil
	default:
		return nil, NewBusinessError("DATA_ERROR", "Unknown group-by column: "+col, ErrColumnNotFound)
	}
}

func orderItemValue(col string) (func(models.OrderItem) float64, error) {
	switch col {
	case ColQuantity:
		return func(i models.OrderItem) float64 { return float64(i.Quantity) }, nil
	case ColUnitPrice:
		return func(i models.OrderItem) float64 { return i.UnitPrice }, nil
	case ColRevenue:
		return func(i models.OrderItem) float64 { return i.Revenue() }, nil
	default:
		return nil, NewBusinessError("DATA_ERROR", "Unknown numeric column: "+col, ErrColumnNotFound)
	}
}
