package businessflow

import (
	"strconv"
	"strings"
	"time"

	"github.com/agromercantil/sales-insight/models"
	"github.com/xuri/excelize/v2"
)

const exportDateLayout = "02/01/2006"

// ExportFlow renders produced tables as xlsx workbooks for the download
// endpoints. It consumes the tables as-is and owns no state of its own.
type ExportFlow interface {
	MonthlySalesWorkbook(rows []models.MonthlySales) (string, []byte, error)
	CustomerWorkbook(rows []models.CustomerRecord) (string, []byte, error)
	ProductSummaryWorkbook(rows []models.ProductSummary) (string, []byte, error)
	InactiveCustomersWorkbook(rows []models.InactiveCustomer) (string, []byte, error)
	OrderItemsWorkbook(rows []models.OrderItem) (string, []byte, error)
}

type ExportFlowImpl struct{}

func NewExportFlow() ExportFlow {
	return &ExportFlowImpl{}
}

func (f *ExportFlowImpl) MonthlySalesWorkbook(rows []models.MonthlySales) (string, []byte, error) {
	header := []string{"period", "total_sales", "cost", "profit", "growth_pct"}
	records := make([][]string, len(rows))
	for i, r := range rows {
		growth := ""
		if r.GrowthPct != nil {
			growth = formatAmount(*r.GrowthPct)
		}
		records[i] = []string{r.Period, formatAmount(r.TotalSales), formatAmount(r.Cost), formatAmount(r.Profit), growth}
	}
	data, err := buildWorkbook("Desempenho Financeiro", header, records)
	return "desempenho_financeiro.xlsx", data, err
}

func (f *ExportFlowImpl) CustomerWorkbook(rows []models.CustomerRecord) (string, []byte, error) {
	header := []string{"customer_id", "last_purchase", "frequency", "monetary_value", "segment"}
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			strconv.Itoa(r.CustomerID),
			r.LastPurchase.Format(exportDateLayout),
			strconv.Itoa(r.Frequency),
			formatAmount(r.MonetaryValue),
			r.Segment,
		}
	}
	data, err := buildWorkbook("RFM", header, records)
	return "rfm.xlsx", data, err
}

func (f *ExportFlowImpl) ProductSummaryWorkbook(rows []models.ProductSummary) (string, []byte, error) {
	header := []string{"product_id", "name", "category", "price", "units_sold", "revenue"}
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			strconv.Itoa(r.ProductID),
			r.Name,
			r.Category,
			formatAmount(r.Price),
			strconv.Itoa(r.UnitsSold),
			formatAmount(r.Revenue),
		}
	}
	data, err := buildWorkbook("Top Produtos", header, records)
	return "top_produtos.xlsx", data, err
}

func (f *ExportFlowImpl) InactiveCustomersWorkbook(rows []models.InactiveCustomer) (string, []byte, error) {
	header := []string{"customer_id", "last_purchase", "monetary_value"}
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			strconv.Itoa(r.CustomerID),
			r.LastPurchase.Format(exportDateLayout),
			formatAmount(r.MonetaryValue),
		}
	}
	data, err := buildWorkbook("Clientes Inativos", header, records)
	return "clientes_inativos.xlsx", data, err
}

func (f *ExportFlowImpl) OrderItemsWorkbook(rows []models.OrderItem) (string, []byte, error) {
	header := []string{"order_id", "order_date", "customer_id", "product_id", "product_name", "category", "quantity", "unit_price"}
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			strconv.Itoa(r.OrderID),
			r.OrderDate.UTC().Format(time.RFC3339),
			strconv.Itoa(r.CustomerID),
			strconv.Itoa(r.ProductID),
			r.ProductName,
			r.Category,
			strconv.Itoa(r.Quantity),
			formatAmount(r.UnitPrice),
		}
	}
	data, err := buildWorkbook("Pedidos", header, records)
	return "pedidos.xlsx", data, err
}

func buildWorkbook(sheet string, header []string, records [][]string) ([]byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	name := sanitizeSheetName(sheet)
	xl.SetSheetName(xl.GetSheetName(0), name)
	_ = xl.SetSheetRow(name, "A1", &header)

	for ri, record := range records {
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		_ = xl.SetSheetRow(name, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}
	return buf.Bytes(), nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func sanitizeSheetName(name string) string {
	// Excel sheet names cannot contain: : \\ / ? * [ ] and must be <= 31 chars
	replacer := strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_")
	safe := replacer.Replace(strings.TrimSpace(name))
	if len(safe) > 31 {
		return safe[:31]
	}
	if safe == "" {
		return "Sheet"
	}
	return safe
}
