package handlers

import (
	"context"
	"log"
	"time"

	"github.com/agromercantil/sales-insight/app/dto"
	businessflow "github.com/agromercantil/sales-insight/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandlerInterface interface {
	ExportOverview(c fiber.Ctx) error
	ExportRFM(c fiber.Ctx) error
	ExportTopProducts(c fiber.Ctx) error
	ExportInactiveCustomers(c fiber.Ctx) error
	ExportOrders(c fiber.Ctx) error
}

type ExportHandler struct {
	flow      businessflow.AnalyticsFlow
	export    businessflow.ExportFlow
	validator *validator.Validate
}

func NewExportHandler(flow businessflow.AnalyticsFlow, export businessflow.ExportFlow, validator *validator.Validate) ExportHandlerInterface {
	return &ExportHandler{flow: flow, export: export, validator: validator}
}

func (h *ExportHandler) ErrorResponse(c fiber.Ctx, status int, message, code string, details any) error {
	return c.Status(status).JSON(dto.APIResponse{Success: false, Message: message, Error: dto.ErrorDetail{Code: code, Details: details}})
}

func (h *ExportHandler) sendWorkbook(c fiber.Ctx, filename string, data []byte) error {
	c.Set("Content-Type", xlsxContentType)
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}

// ExportOverview downloads the monthly sales table as a workbook.
// @Summary Export financial performance
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {string} string "xlsx file"
// @Router /api/v1/analytics/overview/export [get]
func (h *ExportHandler) ExportOverview(c fiber.Ctx) error {
	res, err := h.flow.Overview(h.createRequestContext(c, "/api/v1/analytics/overview/export"))
	if err != nil {
		log.Println("Overview export failed:", err)
		return h.ErrorResponse(c, statusForFlowError(err), "Overview export failed", flowErrorCode(err), nil)
	}
	filename, data, err := h.export.MonthlySalesWorkbook(res.Rows)
	if err != nil {
		log.Println("Overview workbook failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build workbook", "EXPORT_FAILED", nil)
	}
	return h.sendWorkbook(c, filename, data)
}

// ExportRFM downloads the segmented customer table as a workbook.
// @Summary Export RFM segmentation
// @Tags Export
// @Param segments query []string false "Segment tiers to include"
// @Success 200 {string} string "xlsx file"
// @Router /api/v1/analytics/rfm/export [get]
func (h *ExportHandler) ExportRFM(c fiber.Ctx) error {
	var req dto.RFMRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	res, err := h.flow.RFM(h.createRequestContext(c, "/api/v1/analytics/rfm/export"), &req)
	if err != nil {
		log.Println("RFM export failed:", err)
		return h.ErrorResponse(c, statusForFlowError(err), "RFM export failed", flowErrorCode(err), nil)
	}
	filename, data, err := h.export.CustomerWorkbook(res.Rows)
	if err != nil {
		log.Println("RFM workbook failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build workbook", "EXPORT_FAILED", nil)
	}
	return h.sendWorkbook(c, filename, data)
}

// ExportTopProducts downloads the product ranking as a workbook.
// @Summary Export top products
// @Tags Export
// @Param n query int false "Ranking size"
// @Success 200 {string} string "xlsx file"
// @Router /api/v1/analytics/products/top/export [get]
func (h *ExportHandler) ExportTopProducts(c fiber.Ctx) error {
	n, err := parseOptionalInt(c, "n", 0)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	res, err := h.flow.TopProducts(h.createRequestContext(c, "/api/v1/analytics/products/top/export"), n)
	if err != nil {
		log.Println("Top products export failed:", err)
		return h.ErrorResponse(c, statusForFlowError(err), "Top products export failed", flowErrorCode(err), nil)
	}
	filename, data, err := h.export.ProductSummaryWorkbook(res.Rows)
	if err != nil {
		log.Println("Top products workbook failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build workbook", "EXPORT_FAILED", nil)
	}
	return h.sendWorkbook(c, filename, data)
}

// ExportInactiveCustomers downloads the inactive-customer table as a workbook.
// @Summary Export inactive customers
// @Tags Export
// @Success 200 {string} string "xlsx file"
// @Router /api/v1/analytics/customers/inactive/export [get]
func (h *ExportHandler) ExportInactiveCustomers(c fiber.Ctx) error {
	res, err := h.flow.InactiveCustomers(h.createRequestContext(c, "/api/v1/analytics/customers/inactive/export"))
	if err != nil {
		log.Println("Inactive customers export failed:", err)
		return h.ErrorResponse(c, statusForFlowError(err), "Inactive customers export failed", flowErrorCode(err), nil)
	}
	filename, data, err := h.export.InactiveCustomersWorkbook(res.Rows)
	if err != nil {
		log.Println("Inactive customers workbook failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build workbook", "EXPORT_FAILED", nil)
	}
	return h.sendWorkbook(c, filename, data)
}

// ExportOrders downloads the raw flattened order-item table as a workbook.
// @Summary Export order items
// @Tags Export
// @Success 200 {string} string "xlsx file"
// @Router /api/v1/analytics/orders/export [get]
func (h *ExportHandler) ExportOrders(c fiber.Ctx) error {
	items := h.flow.OrderItemsTable(h.createRequestContext(c, "/api/v1/analytics/orders/export"))
	filename, data, err := h.export.OrderItemsWorkbook(items)
	if err != nil {
		log.Println("Orders workbook failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build workbook", "EXPORT_FAILED", nil)
	}
	return h.sendWorkbook(c, filename, data)
}

func (h *ExportHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 60*time.Second)
}
