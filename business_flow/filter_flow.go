package businessflow

import (
	"time"

	"github.com/agromercantil/sales-insight/models"
)

// OrderItemFilter narrows the order-item table. Zero-valued predicates are
// skipped; a set filter is the conjunction of its non-empty predicates.
type OrderItemFilter struct {
	Category string
	From     *time.Time // inclusive
	To       *time.Time // inclusive
}

// FilterFlow narrows tables without mutating them. Output rows keep the
// input's order and column set; an empty result is valid and propagates
// cleanly into the aggregation flows.
type FilterFlow interface {
	FilterOrderItems(items []models.OrderItem, filter OrderItemFilter) ([]models.OrderItem, error)
	FilterCustomersBySegment(records []models.CustomerRecord, segments []string) []models.CustomerRecord
}

type FilterFlowImpl struct{}

func NewFilterFlow() FilterFlow {
	return &FilterFlowImpl{}
}

// FilterOrderItems applies category exact-match and inclusive date-range
// predicates. An inverted range (start after end) is rejected before any row
// is inspected.
func (f *FilterFlowImpl) FilterOrderItems(items []models.OrderItem, filter OrderItemFilter) ([]models.OrderItem, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, NewBusinessError("RANGE_ERROR", "Date range start is after end", ErrInvertedDateRange)
	}

	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.From != nil && item.OrderDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && item.OrderDate.After(*filter.To) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// FilterCustomersBySegment keeps the records whose segment label is in the
// given set. An empty set keeps every record.
func (f *FilterFlowImpl) FilterCustomersBySegment(records []models.CustomerRecord, segments []string) []models.CustomerRecord {
	if len(segments) == 0 {
		out := make([]models.CustomerRecord, len(records))
		copy(out, records)
		return out
	}

	wanted := make(map[string]bool, len(segments))
	for _, s := range segments {
		wanted[s] = true
	}

	out := make([]models.CustomerRecord, 0, len(records))
	for _, rec := range records {
		if wanted[rec.Segment] {
			out = append(out, rec)
		}
	}
	return out
}
