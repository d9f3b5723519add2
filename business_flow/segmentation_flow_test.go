package businessflow

import (
	"testing"

	"github.com/agromercantil/sales-insight/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketIndices(t *testing.T) {
	flow := NewSegmentationFlow()

	t.Run("EqualFrequencyTertiles", func(t *testing.T) {
		values := []float64{9, 1, 5, 3, 7, 2, 8, 4, 6}
		buckets, err := flow.BucketIndices(values, 3)
		require.NoError(t, err)
		require.Len(t, buckets, 9)

		counts := make(map[int]int)
		for i, b := range buckets {
			counts[b]++
			switch {
			case values[i] <= 3:
				assert.Equal(t, 0, b, "value %v", values[i])
			case values[i] <= 6:
				assert.Equal(t, 1, b, "value %v", values[i])
			default:
				assert.Equal(t, 2, b, "value %v", values[i])
			}
		}
		assert.Equal(t, map[int]int{0: 3, 1: 3, 2: 3}, counts)
	})

	t.Run("BucketsAreMonotonicInValue", func(t *testing.T) {
		values := []float64{120.5, 40, 99.9, 12, 300, 55, 71, 8, 210, 64}
		buckets, err := flow.BucketIndices(values, 5)
		require.NoError(t, err)
		for i := range values {
			for j := range values {
				if values[i] < values[j] {
					assert.LessOrEqual(t, buckets[i], buckets[j])
				}
			}
		}
	})

	t.Run("TiesResolveByPosition", func(t *testing.T) {
		values := []float64{5, 5, 1, 9}
		buckets, err := flow.BucketIndices(values, 2)
		require.NoError(t, err)
		assert.Equal(t, 0, buckets[2], "smallest value")
		assert.Equal(t, 1, buckets[3], "largest value")
		assert.Equal(t, 0, buckets[0], "earlier tie takes the lower bucket")
		assert.Equal(t, 1, buckets[1])
	})

	t.Run("TooFewDistinctValues", func(t *testing.T) {
		_, err := flow.BucketIndices([]float64{4, 4, 4, 4}, 3)
		require.Error(t, err)
		assert.True(t, IsTooFewDistinctValues(err))
		assert.False(t, IsRangeError(err))
	})

	t.Run("NonPositiveBucketCount", func(t *testing.T) {
		_, err := flow.BucketIndices([]float64{1, 2, 3}, 0)
		require.Error(t, err)
		assert.True(t, IsRangeError(err))
	})
}

func TestLabels(t *testing.T) {
	flow := NewSegmentationFlow()

	assert.Equal(t, []string{models.SegmentBronze, models.SegmentSilver, models.SegmentGold}, flow.Labels(3))
	assert.Equal(t, []string{"Faixa 1", "Faixa 2"}, flow.Labels(2))
	assert.Len(t, flow.Labels(5), 5)
}

func TestSegmentCustomers(t *testing.T) {
	flow := NewSegmentationFlow()

	records := []models.CustomerRecord{
		{CustomerID: 1, MonetaryValue: 9000},
		{CustomerID: 2, MonetaryValue: 1500},
		{CustomerID: 3, MonetaryValue: 5200},
		{CustomerID: 4, MonetaryValue: 1200},
		{CustomerID: 5, MonetaryValue: 8800},
		{CustomerID: 6, MonetaryValue: 4700},
	}

	out, err := flow.SegmentCustomers(records, 3)
	require.NoError(t, err)
	require.Len(t, out, len(records))

	expected := map[int]string{
		1: models.SegmentGold,
		2: models.SegmentBronze,
		3: models.SegmentSilver,
		4: models.SegmentBronze,
		5: models.SegmentGold,
		6: models.SegmentSilver,
	}
	for _, rec := range out {
		assert.Equal(t, expected[rec.CustomerID], rec.Segment, "customer %d", rec.CustomerID)
	}

	t.Run("InputNotMutated", func(t *testing.T) {
		for _, rec := range records {
			assert.Empty(t, rec.Segment)
		}
	})

	t.Run("TooFewDistinctMonetaryValues", func(t *testing.T) {
		same := []models.CustomerRecord{
			{CustomerID: 1, MonetaryValue: 1000},
			{CustomerID: 2, MonetaryValue: 1000},
		}
		_, err := flow.SegmentCustomers(same, 3)
		require.Error(t, err)
		assert.True(t, IsTooFewDistinctValues(err))
	})
}
