package businessflow

import (
	"math"
	"time"

	"github.com/agromercantil/sales-insight/models"
)

// NumericSummary holds the scalar reductions of one numeric column. On empty
// input Sum and Count are zero and Mean, Min and Max are NaN.
type NumericSummary struct {
	Sum   float64
	Mean  float64
	Count int
	Min   float64
	Max   float64
}

// SummaryFlow reduces a (possibly filtered) table to scalar KPIs. Empty
// inputs are a defined case and never raise.
type SummaryFlow interface {
	SummarizeValues(values []float64) NumericSummary
	SummarizeOrderItems(items []models.OrderItem, col string) (NumericSummary, error)
	CountDistinct(values []string) int
	DateBounds(dates []time.Time) (min, max time.Time, ok bool)
}

type SummaryFlowImpl struct{}

func NewSummaryFlow() SummaryFlow {
	return &SummaryFlowImpl{}
}

func (f *SummaryFlowImpl) SummarizeValues(values []float64) NumericSummary {
	if len(values) == 0 {
		return NumericSummary{Mean: math.NaN(), Min: math.NaN(), Max: math.NaN()}
	}

	s := NumericSummary{Count: len(values), Min: values[0], Max: values[0]}
	for _, v := range values {
		s.Sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = s.Sum / float64(s.Count)
	return s
}

func (f *SummaryFlowImpl) SummarizeOrderItems(items []models.OrderItem, col string) (NumericSummary, error) {
	values, err := NumericColumn(items, col)
	if err != nil {
		return NumericSummary{}, err
	}
	return f.SummarizeValues(values), nil
}

func (f *SummaryFlowImpl) CountDistinct(values []string) int {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		seen[v] = true
	}
	return len(seen)
}

// DateBounds returns the earliest and latest of the given dates. ok is false
// on empty input.
func (f *SummaryFlowImpl) DateBounds(dates []time.Time) (time.Time, time.Time, bool) {
	if len(dates) == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return min, max, true
}
