package businessflow

import (
	"fmt"
	"sort"

	"github.com/agromercantil/sales-insight/models"
)

// SegmentationFlow partitions a numeric column into equal-frequency buckets
// and assigns ordered tier labels.
type SegmentationFlow interface {
	SegmentCustomers(records []models.CustomerRecord, k int) ([]models.CustomerRecord, error)
	BucketIndices(values []float64, k int) ([]int, error)
	Labels(k int) []string
}

type SegmentationFlowImpl struct{}

func NewSegmentationFlow() SegmentationFlow {
	return &SegmentationFlowImpl{}
}

// SegmentCustomers returns a copy of the records with the segment label
// derived from the monetary value column. Labels are monotonic in monetary
// value: the lowest tier gets the first label.
func (f *SegmentationFlowImpl) SegmentCustomers(records []models.CustomerRecord, k int) ([]models.CustomerRecord, error) {
	values := make([]float64, len(records))
	for i, rec := range records {
		values[i] = rec.MonetaryValue
	}
	buckets, err := f.BucketIndices(values, k)
	if err != nil {
		return nil, err
	}

	labels := f.Labels(k)
	out := make([]models.CustomerRecord, len(records))
	for i, rec := range records {
		rec.Segment = labels[buckets[i]]
		out[i] = rec
	}
	return out, nil
}

// BucketIndices assigns each value a bucket in [0, k) by equal-frequency
// partitioning. Ties at bucket boundaries resolve by original position: of
// two equal values, the earlier row lands in the earlier bucket. Fewer than k
// distinct values cannot form k non-degenerate buckets and is an error.
func (f *SegmentationFlowImpl) BucketIndices(values []float64, k int) ([]int, error) {
	if k < 1 {
		return nil, NewBusinessError("RANGE_ERROR", "Bucket count must be at least one", ErrInvalidBucketCount)
	}

	distinct := make(map[float64]bool, len(values))
	for _, v := range values {
		distinct[v] = true
	}
	if len(distinct) < k {
		return nil, NewBusinessError("DATA_ERROR",
			fmt.Sprintf("Cannot form %d buckets from %d distinct values", k, len(distinct)), ErrTooFewDistinctValues)
	}

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	buckets := make([]int, len(values))
	for rank, idx := range order {
		buckets[idx] = rank * k / len(values)
	}
	return buckets, nil
}

// Labels returns k tier labels in ascending order. Three buckets use the
// Bronze/Prata/Ouro naming of the customer table; other counts fall back to
// numbered tiers.
func (f *SegmentationFlowImpl) Labels(k int) []string {
	if k == 3 {
		return models.DefaultSegmentLabels()
	}
	labels := make([]string, k)
	for i := range labels {
		labels[i] = fmt.Sprintf("Faixa %d", i+1)
	}
	return labels
}
