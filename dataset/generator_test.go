package dataset

import (
	"testing"
	"time"

	"github.com/agromercantil/sales-insight/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func newTestGenerator(seed int64) *Generator {
	params := DefaultParams()
	params.Seed = seed
	return NewAt(params, testNow)
}

func TestGeneratorDeterminism(t *testing.T) {
	t.Run("SameSeedSameTables", func(t *testing.T) {
		g := newTestGenerator(42)
		assert.Equal(t, g.OrderItems(), g.OrderItems())
		assert.Equal(t, g.CustomerRecords(), g.CustomerRecords())
		assert.Equal(t, g.ProductSummaries(), g.ProductSummaries())
		assert.Equal(t, g.MonthlySales(), g.MonthlySales())
		assert.Equal(t, g.InactiveCustomers(), g.InactiveCustomers())
	})

	t.Run("SameSeedAcrossGenerators", func(t *testing.T) {
		assert.Equal(t, newTestGenerator(7).OrderItems(), newTestGenerator(7).OrderItems())
	})

	t.Run("DifferentSeedsDiffer", func(t *testing.T) {
		assert.NotEqual(t, newTestGenerator(1).OrderItems(), newTestGenerator(2).OrderItems())
	})
}

func TestOrderItems(t *testing.T) {
	g := newTestGenerator(42)
	items := g.OrderItems()
	require.NotEmpty(t, items)

	catalog := make(map[int]models.Product)
	for _, p := range g.Catalog() {
		catalog[p.ID] = p
	}

	t.Run("ItemsMirrorCatalog", func(t *testing.T) {
		for _, item := range items {
			product, ok := catalog[item.ProductID]
			require.True(t, ok, "item references unknown product %d", item.ProductID)
			assert.Equal(t, product.Name, item.ProductName)
			assert.Equal(t, product.Category, item.Category)
			assert.Equal(t, product.UnitPrice, item.UnitPrice)
		}
	})

	t.Run("QuantitiesInRange", func(t *testing.T) {
		for _, item := range items {
			assert.GreaterOrEqual(t, item.Quantity, 1)
			assert.Less(t, item.Quantity, 5)
		}
	})

	t.Run("DatesWithinWindow", func(t *testing.T) {
		start := testNow.AddDate(0, 0, -DefaultWindowDays)
		for _, item := range items {
			assert.False(t, item.OrderDate.Before(start))
			assert.False(t, item.OrderDate.After(testNow))
		}
	})

	t.Run("OneToThreeItemsPerOrder", func(t *testing.T) {
		perOrder := make(map[int]int)
		for _, item := range items {
			perOrder[item.OrderID]++
		}
		assert.Len(t, perOrder, DefaultOrderCount)
		for orderID, count := range perOrder {
			assert.GreaterOrEqual(t, count, 1, "order %d", orderID)
			assert.LessOrEqual(t, count, 3, "order %d", orderID)
		}
	})

	t.Run("ItemsOfOneOrderShareDateAndCustomer", func(t *testing.T) {
		dates := make(map[int]time.Time)
		customers := make(map[int]int)
		for _, item := range items {
			if prev, ok := dates[item.OrderID]; ok {
				assert.Equal(t, prev, item.OrderDate)
				assert.Equal(t, customers[item.OrderID], item.CustomerID)
				continue
			}
			dates[item.OrderID] = item.OrderDate
			customers[item.OrderID] = item.CustomerID
		}
		for _, customerID := range customers {
			assert.Contains(t, []int{1, 2, 3}, customerID)
		}
	})
}

func TestCustomerRecords(t *testing.T) {
	records := newTestGenerator(42).CustomerRecords()
	require.Len(t, records, DefaultCustomerCount)

	for _, rec := range records {
		assert.GreaterOrEqual(t, rec.Frequency, 1)
		assert.Less(t, rec.Frequency, 50)
		assert.GreaterOrEqual(t, rec.MonetaryValue, 1000.0)
		assert.Less(t, rec.MonetaryValue, 10000.0)
		assert.Empty(t, rec.Segment, "segment is derived downstream")
		assert.True(t, rec.LastPurchase.Before(testNow))
	}
}

func TestProductSummaries(t *testing.T) {
	rows := newTestGenerator(42).ProductSummaries()
	require.Len(t, rows, DefaultProductCount)

	for _, row := range rows {
		assert.Contains(t, models.RetailCategories(), row.Category)
		assert.GreaterOrEqual(t, row.Price, 50.0)
		assert.Less(t, row.Price, 1000.0)
		assert.GreaterOrEqual(t, row.UnitsSold, 100)
		assert.Less(t, row.UnitsSold, 1000)
		assert.InDelta(t, row.Price*float64(row.UnitsSold), row.Revenue, 0.01)
	}
}

func TestMonthlySales(t *testing.T) {
	rows := newTestGenerator(42).MonthlySales()
	require.Len(t, rows, DefaultMonthCount)

	t.Run("DerivedColumns", func(t *testing.T) {
		assert.Nil(t, rows[0].GrowthPct, "first period has no prior value")
		for i, row := range rows {
			assert.InDelta(t, row.TotalSales-row.Cost, row.Profit, 0.01)
			if i == 0 {
				continue
			}
			require.NotNil(t, rows[i].GrowthPct)
			expected := (rows[i].TotalSales - rows[i-1].TotalSales) / rows[i-1].TotalSales * 100
			assert.InDelta(t, expected, *rows[i].GrowthPct, 0.01)
		}
	})

	t.Run("TrailingPeriods", func(t *testing.T) {
		assert.Equal(t, testNow.Format(models.PeriodLayout), rows[len(rows)-1].Period)
		for i := 1; i < len(rows); i++ {
			prev, err := time.Parse(models.PeriodLayout, rows[i-1].Period)
			require.NoError(t, err)
			assert.Equal(t, prev.AddDate(0, 1, 0).Format(models.PeriodLayout), rows[i].Period)
		}
	})
}

func TestInactiveCustomers(t *testing.T) {
	rows := newTestGenerator(42).InactiveCustomers()
	require.Len(t, rows, DefaultInactiveCount)

	oldest := testNow.AddDate(0, 0, -365)
	newest := testNow.AddDate(0, 0, -180)
	for _, row := range rows {
		assert.False(t, row.LastPurchase.Before(oldest))
		assert.False(t, row.LastPurchase.After(newest))
		assert.GreaterOrEqual(t, row.MonetaryValue, 500.0)
		assert.Less(t, row.MonetaryValue, 5000.0)
	}
}

func TestParamsDefaults(t *testing.T) {
	g := NewAt(Params{Seed: 1}, testNow)
	assert.Len(t, g.CustomerRecords(), DefaultCustomerCount)
	assert.Len(t, g.ProductSummaries(), DefaultProductCount)
	assert.Len(t, g.MonthlySales(), DefaultMonthCount)
}
