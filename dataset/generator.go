// Package dataset fabricates the synthetic sales tables the analytics flows
// operate on. Every table is regenerated in memory on each call; nothing is
// persisted and no identity survives across calls.
package dataset

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/agromercantil/sales-insight/models"
	"github.com/agromercantil/sales-insight/utils"
)

// Params enumerates every knob the generators previously hid behind implicit
// defaults. Zero values are replaced by the defaults below.
type Params struct {
	Seed          int64
	WindowDays    int // trailing window for order dates
	OrderCount    int
	CustomerCount int // RFM table size
	ProductCount  int // product summary table size
	InactiveCount int
	MonthCount    int // monthly sales table size
}

// Default generation sizes, matching the demo dataset shape.
const (
	DefaultSeed          = 42
	DefaultWindowDays    = 540
	DefaultOrderCount    = 50
	DefaultCustomerCount = 100
	DefaultProductCount  = 20
	DefaultInactiveCount = 50
	DefaultMonthCount    = 12
)

// DefaultParams returns the standard demo dataset parameters.
func DefaultParams() Params {
	return Params{
		Seed:          DefaultSeed,
		WindowDays:    DefaultWindowDays,
		OrderCount:    DefaultOrderCount,
		CustomerCount: DefaultCustomerCount,
		ProductCount:  DefaultProductCount,
		InactiveCount: DefaultInactiveCount,
		MonthCount:    DefaultMonthCount,
	}
}

func (p Params) withDefaults() Params {
	if p.WindowDays <= 0 {
		p.WindowDays = DefaultWindowDays
	}
	if p.OrderCount <= 0 {
		p.OrderCount = DefaultOrderCount
	}
	if p.CustomerCount <= 0 {
		p.CustomerCount = DefaultCustomerCount
	}
	if p.ProductCount <= 0 {
		p.ProductCount = DefaultProductCount
	}
	if p.InactiveCount <= 0 {
		p.InactiveCount = DefaultInactiveCount
	}
	if p.MonthCount <= 0 {
		p.MonthCount = DefaultMonthCount
	}
	return p
}

// Generator produces deterministic random tables. Every table method starts a
// fresh rand stream from the configured seed, so the same seed always yields
// the same table and the package-global rand source is never touched.
type Generator struct {
	params Params
	now    time.Time
}

// New creates a generator anchored at the current UTC time.
func New(params Params) *Generator {
	return NewAt(params, utils.UTCNow())
}

// NewAt creates a generator anchored at a fixed reference time. Tests use
// this to make date columns reproducible.
func NewAt(params Params, now time.Time) *Generator {
	return &Generator{params: params.withDefaults(), now: now.UTC()}
}

// stream returns a new isolated rand stream seeded from the generator seed.
func (g *Generator) stream() *rand.Rand {
	return rand.New(rand.NewSource(g.params.Seed))
}

// Catalog returns the fixed five-product order catalog.
func (g *Generator) Catalog() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Smartphone X", Category: models.CategoryElectronics, UnitPrice: 2500.00},
		{ID: 2, Name: "Camisa Social", Category: models.CategoryFashion, UnitPrice: 199.90},
		{ID: 3, Name: "Livro Python Avançado", Category: models.CategoryBooks, UnitPrice: 89.50},
		{ID: 4, Name: "Mesa de Escritório", Category: models.CategoryFurniture, UnitPrice: 799.00},
		{ID: 5, Name: "Fone Bluetooth", Category: models.CategoryElectronics, UnitPrice: 150.00},
	}
}

// OrderItems generates the flattened order-item table: OrderCount orders with
// dates uniform over the trailing window, one to three items each, every item
// carrying a denormalized copy of its product's price, name and category.
func (g *Generator) OrderItems() []models.OrderItem {
	r := g.stream()
	catalog := g.Catalog()
	start := g.now.AddDate(0, 0, -g.params.WindowDays)

	items := make([]models.OrderItem, 0, g.params.OrderCount*2)
	for orderID := 1; orderID <= g.params.OrderCount; orderID++ {
		orderDate := start.AddDate(0, 0, randInt(r, 1, g.params.WindowDays))
		customerID := randInt(r, 1, 4)

		itemCount := randInt(r, 1, 4)
		for i := 0; i < itemCount; i++ {
			product := catalog[r.Intn(len(catalog))]
			items = append(items, models.OrderItem{
				OrderID:     orderID,
				OrderDate:   orderDate,
				CustomerID:  customerID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Category:    product.Category,
				Quantity:    randInt(r, 1, 5),
				UnitPrice:   product.UnitPrice,
			})
		}
	}
	return items
}

// CustomerRecords generates the base RFM table. Segment labels are derived
// columns and are attached by the segmentation flow when the table is served.
func (g *Generator) CustomerRecords() []models.CustomerRecord {
	r := g.stream()
	records := make([]models.CustomerRecord, g.params.CustomerCount)
	for i := range records {
		records[i] = models.CustomerRecord{
			CustomerID:    i + 1,
			LastPurchase:  g.now.AddDate(0, 0, -randInt(r, 1, 365)),
			Frequency:     randInt(r, 1, 50),
			MonetaryValue: utils.Round2(uniform(r, 1000, 10000)),
		}
	}
	return records
}

// ProductSummaries generates the pre-aggregated product table with revenue
// computed eagerly from price and units sold.
func (g *Generator) ProductSummaries() []models.ProductSummary {
	r := g.stream()
	categories := models.RetailCategories()
	rows := make([]models.ProductSummary, g.params.ProductCount)
	for i := range rows {
		price := utils.Round2(uniform(r, 50, 1000))
		units := randInt(r, 100, 1000)
		rows[i] = models.ProductSummary{
			ProductID: i + 1,
			Name:      fmt.Sprintf("Produto %d", i+1),
			Category:  categories[r.Intn(len(categories))],
			Price:     price,
			UnitsSold: units,
			Revenue:   utils.Round2(price * float64(units)),
		}
	}
	return rows
}

// MonthlySales generates the trailing monthly financial table. Profit and
// growth are recomputed from the stored columns on every generation.
func (g *Generator) MonthlySales() []models.MonthlySales {
	r := g.stream()
	first := utils.StartOfMonth(g.now).AddDate(0, -(g.params.MonthCount - 1), 0)

	rows := make([]models.MonthlySales, g.params.MonthCount)
	for i := range rows {
		rows[i] = models.MonthlySales{
			Period:     first.AddDate(0, i, 0).Format(models.PeriodLayout),
			TotalSales: utils.Round2(uniform(r, 80000, 120000)),
			Cost:       utils.Round2(uniform(r, 40000, 60000)),
		}
	}
	for i := range rows {
		rows[i].Profit = utils.Round2(rows[i].TotalSales - rows[i].Cost)
		if i > 0 && rows[i-1].TotalSales != 0 {
			growth := utils.Round2((rows[i].TotalSales - rows[i-1].TotalSales) / rows[i-1].TotalSales * 100)
			rows[i].GrowthPct = &growth
		}
	}
	return rows
}

// InactiveCustomers generates customers whose last purchase lies 180 to 365
// days before the reference time.
func (g *Generator) InactiveCustomers() []models.InactiveCustomer {
	r := g.stream()
	rows := make([]models.InactiveCustomer, g.params.InactiveCount)
	for i := range rows {
		rows[i] = models.InactiveCustomer{
			CustomerID:    i + 1,
			LastPurchase:  g.now.AddDate(0, 0, -randInt(r, 180, 365)),
			MonetaryValue: utils.Round2(uniform(r, 500, 5000)),
		}
	}
	return rows
}

// randInt draws a uniform integer in [lo, hi).
func randInt(r *rand.Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo)
}

// uniform draws a uniform float in [lo, hi).
func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
