package businessflow

import (
	"bytes"
	"testing"

	"github.com/agromercantil/sales-insight/models"
	"github.com/agromercantil/sales-insight/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readSheet(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	xl, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = xl.Close() }()

	rows, err := xl.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestMonthlySalesWorkbook(t *testing.T) {
	flow := NewExportFlow()
	input := []models.MonthlySales{
		{Period: "2026-01", TotalSales: 100000, Cost: 45000, Profit: 55000},
		{Period: "2026-02", TotalSales: 110000, Cost: 50000, Profit: 60000, GrowthPct: utils.ToPtr(10.0)},
	}

	name, data, err := flow.MonthlySalesWorkbook(input)
	require.NoError(t, err)
	assert.Equal(t, "desempenho_financeiro.xlsx", name)

	rows := readSheet(t, data, "Desempenho Financeiro")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"period", "total_sales", "cost", "profit", "growth_pct"}, rows[0])
	assert.Equal(t, "2026-01", rows[1][0])
	assert.Equal(t, "100000.00", rows[1][1])
	// First period carries no growth value
	if len(rows[1]) > 4 {
		assert.Empty(t, rows[1][4])
	}
	assert.Equal(t, "10.00", rows[2][4])
}

func TestCustomerWorkbook(t *testing.T) {
	flow := NewExportFlow()
	input := []models.CustomerRecord{
		{CustomerID: 7, LastPurchase: day(15), Frequency: 12, MonetaryValue: 4321.5, Segment: models.SegmentGold},
	}

	name, data, err := flow.CustomerWorkbook(input)
	require.NoError(t, err)
	assert.Equal(t, "rfm.xlsx", name)

	rows := readSheet(t, data, "RFM")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"7", "15/01/2026", "12", "4321.50", models.SegmentGold}, rows[1])
}

func TestProductSummaryWorkbook(t *testing.T) {
	flow := NewExportFlow()
	input := []models.ProductSummary{
		{ProductID: 1, Name: "Produto 1", Category: models.CategoryFood, Price: 99.9, UnitsSold: 200, Revenue: 19980},
	}

	name, data, err := flow.ProductSummaryWorkbook(input)
	require.NoError(t, err)
	assert.Equal(t, "top_produtos.xlsx", name)

	rows := readSheet(t, data, "Top Produtos")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "Produto 1", models.CategoryFood, "99.90", "200", "19980.00"}, rows[1])
}

func TestInactiveCustomersWorkbook(t *testing.T) {
	flow := NewExportFlow()
	input := []models.InactiveCustomer{
		{CustomerID: 3, LastPurchase: day(2), MonetaryValue: 750},
	}

	name, data, err := flow.InactiveCustomersWorkbook(input)
	require.NoError(t, err)
	assert.Equal(t, "clientes_inativos.xlsx", name)

	rows := readSheet(t, data, "Clientes Inativos")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"3", "02/01/2026", "750.00"}, rows[1])
}

func TestOrderItemsWorkbook(t *testing.T) {
	flow := NewExportFlow()
	input := sampleItems()

	name, data, err := flow.OrderItemsWorkbook(input)
	require.NoError(t, err)
	assert.Equal(t, "pedidos.xlsx", name)

	rows := readSheet(t, data, "Pedidos")
	require.Len(t, rows, len(input)+1)
	assert.Equal(t, []string{"order_id", "order_date", "customer_id", "product_id", "product_name", "category", "quantity", "unit_price"}, rows[0])
	assert.Equal(t, "Smartphone X", rows[1][4])
	assert.Equal(t, "2500.00", rows[1][7])
}

func TestSanitizeSheetName(t *testing.T) {
	assert.Equal(t, "Vendas_2026", sanitizeSheetName("Vendas/2026"))
	assert.Equal(t, "Sheet", sanitizeSheetName("  "))
	assert.Len(t, sanitizeSheetName("um nome de aba muito mais longo do que o limite"), 31)
}
