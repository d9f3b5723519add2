package businessflow

import (
	"testing"
	"time"

	"github.com/agromercantil/sales-insight/models"
	"github.com/agromercantil/sales-insight/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2026, 1, n, 0, 0, 0, 0, time.UTC)
}

func sampleItems() []models.OrderItem {
	return []models.OrderItem{
		{OrderID: 1, OrderDate: day(1), ProductName: "Smartphone X", Category: models.CategoryElectronics, Quantity: 2, UnitPrice: 2500},
		{OrderID: 2, OrderDate: day(5), ProductName: "Camisa Social", Category: models.CategoryFashion, Quantity: 1, UnitPrice: 199.90},
		{OrderID: 3, OrderDate: day(10), ProductName: "Fone Bluetooth", Category: models.CategoryElectronics, Quantity: 4, UnitPrice: 150},
		{OrderID: 4, OrderDate: day(20), ProductName: "Smartphone X", Category: models.CategoryElectronics, Quantity: 1, UnitPrice: 2500},
	}
}

func TestFilterOrderItems(t *testing.T) {
	flow := NewFilterFlow()

	t.Run("CategoryExactMatch", func(t *testing.T) {
		out, err := flow.FilterOrderItems(sampleItems(), OrderItemFilter{Category: models.CategoryElectronics})
		require.NoError(t, err)
		require.Len(t, out, 3)
		for _, item := range out {
			assert.Equal(t, models.CategoryElectronics, item.Category)
		}
	})

	t.Run("DateRangeInclusive", func(t *testing.T) {
		out, err := flow.FilterOrderItems(sampleItems(), OrderItemFilter{
			From: utils.ToPtr(day(5)),
			To:   utils.ToPtr(day(10)),
		})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, 2, out[0].OrderID)
		assert.Equal(t, 3, out[1].OrderID)
	})

	t.Run("PreservesOrderAndRows", func(t *testing.T) {
		items := sampleItems()
		out, err := flow.FilterOrderItems(items, OrderItemFilter{})
		require.NoError(t, err)
		assert.Equal(t, items, out)
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		items := sampleItems()
		_, err := flow.FilterOrderItems(items, OrderItemFilter{Category: models.CategoryFashion})
		require.NoError(t, err)
		assert.Equal(t, sampleItems(), items)
	})

	t.Run("Idempotent", func(t *testing.T) {
		filter := OrderItemFilter{Category: models.CategoryElectronics, From: utils.ToPtr(day(1)), To: utils.ToPtr(day(15))}
		once, err := flow.FilterOrderItems(sampleItems(), filter)
		require.NoError(t, err)
		twice, err := flow.FilterOrderItems(once, filter)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	})

	t.Run("EmptyResultIsValid", func(t *testing.T) {
		out, err := flow.FilterOrderItems(sampleItems(), OrderItemFilter{Category: models.CategoryBooks})
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("InvertedRangeRejected", func(t *testing.T) {
		_, err := flow.FilterOrderItems(sampleItems(), OrderItemFilter{
			From: utils.ToPtr(day(10)),
			To:   utils.ToPtr(day(5)),
		})
		require.Error(t, err)
		assert.True(t, IsInvertedDateRange(err))
		assert.True(t, IsRangeError(err))
	})
}

func TestFilterCustomersBySegment(t *testing.T) {
	flow := NewFilterFlow()
	records := []models.CustomerRecord{
		{CustomerID: 1, Segment: models.SegmentGold},
		{CustomerID: 2, Segment: models.SegmentBronze},
		{CustomerID: 3, Segment: models.SegmentGold},
		{CustomerID: 4, Segment: models.SegmentSilver},
	}

	t.Run("Membership", func(t *testing.T) {
		out := flow.FilterCustomersBySegment(records, []string{models.SegmentGold, models.SegmentSilver})
		require.Len(t, out, 3)
		assert.Equal(t, []int{1, 3, 4}, []int{out[0].CustomerID, out[1].CustomerID, out[2].CustomerID})
	})

	t.Run("EmptySetKeepsAll", func(t *testing.T) {
		out := flow.FilterCustomersBySegment(records, nil)
		assert.Equal(t, records, out)
	})

	t.Run("NoMatches", func(t *testing.T) {
		out := flow.FilterCustomersBySegment(records, []string{"Diamante"})
		assert.Empty(t, out)
	})
}
