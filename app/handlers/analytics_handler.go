package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/agromercantil/sales-insight/app/dto"
	businessflow "github.com/agromercantil/sales-insight/business_flow"
	"github.com/agromercantil/sales-insight/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type AnalyticsHandlerInterface interface {
	Overview(c fiber.Ctx) error
	RFM(c fiber.Ctx) error
	TopProducts(c fiber.Ctx) error
	Trends(c fiber.Ctx) error
	InactiveCustomers(c fiber.Ctx) error
	Exploration(c fiber.Ctx) error
}

type AnalyticsHandler struct {
	flow      businessflow.AnalyticsFlow
	validator *validator.Validate
}

func NewAnalyticsHandler(flow businessflow.AnalyticsFlow, validator *validator.Validate) AnalyticsHandlerInterface {
	return &AnalyticsHandler{flow: flow, validator: validator}
}

func (h *AnalyticsHandler) ErrorResponse(c fiber.Ctx, status int, message, code string, details any) error {
	return c.Status(status).JSON(dto.APIResponse{Success: false, Message: message, Error: dto.ErrorDetail{Code: code, Details: details}})
}

func (h *AnalyticsHandler) SuccessResponse(c fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.APIResponse{Success: true, Message: message, Data: data})
}

func (h *AnalyticsHandler) flowError(c fiber.Ctx, operation string, err error) error {
	log.Println(operation+" failed:", err)
	return h.ErrorResponse(c, statusForFlowError(err), operation+" failed", flowErrorCode(err), err.Error())
}

// Overview returns the monthly sales table with its KPI reductions.
// @Summary Strategic overview
// @Description Monthly sales with total revenue, profit, cost and mean growth
// @Tags Analytics
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.OverviewResponse}
// @Router /api/v1/analytics/overview [get]
func (h *AnalyticsHandler) Overview(c fiber.Ctx) error {
	res, err := h.flow.Overview(h.createRequestContext(c, "/api/v1/analytics/overview"))
	if err != nil {
		return h.flowError(c, "Overview", err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Overview retrieved", res)
}

// RFM returns the segmented customer table narrowed to the requested tiers.
// @Summary RFM segmentation
// @Tags Analytics
// @Produce json
// @Param segments query []string false "Segment tiers to include"
// @Success 200 {object} dto.APIResponse{data=dto.RFMResponse}
// @Failure 400 {object} dto.APIResponse "Unknown segment label"
// @Router /api/v1/analytics/rfm [get]
func (h *AnalyticsHandler) RFM(c fiber.Ctx) error {
	var req dto.RFMRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	res, err := h.flow.RFM(h.createRequestContext(c, "/api/v1/analytics/rfm"), &req)
	if err != nil {
		return h.flowError(c, "RFM analysis", err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "RFM segmentation retrieved", res)
}

// TopProducts returns the n highest-revenue products.
// @Summary Top products by revenue
// @Tags Analytics
// @Produce json
// @Param n query int false "Ranking size"
// @Success 200 {object} dto.APIResponse{data=dto.TopProductsResponse}
// @Failure 400 {object} dto.APIResponse "Negative ranking size"
// @Router /api/v1/analytics/products/top [get]
func (h *AnalyticsHandler) TopProducts(c fiber.Ctx) error {
	var req dto.TopProductsRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	res, err := h.flow.TopProducts(h.createRequestContext(c, "/api/v1/analytics/products/top"), req.N)
	if err != nil {
		return h.flowError(c, "Top products", err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Top products retrieved", res)
}

// Trends returns the monthly sales table with the growth series.
// @Summary Sales trends
// @Tags Analytics
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.TrendsResponse}
// @Router /api/v1/analytics/trends [get]
func (h *AnalyticsHandler) Trends(c fiber.Ctx) error {
	res, err := h.flow.Trends(h.createRequestContext(c, "/api/v1/analytics/trends"))
	if err != nil {
		return h.flowError(c, "Trends", err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Trends retrieved", res)
}

// InactiveCustomers returns customers without a recent purchase, oldest first.
// @Summary Inactive customers
// @Tags Analytics
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.InactiveCustomersResponse}
// @Router /api/v1/analytics/customers/inactive [get]
func (h *AnalyticsHandler) InactiveCustomers(c fiber.Ctx) error {
	res, err := h.flow.InactiveCustomers(h.createRequestContext(c, "/api/v1/analytics/customers/inactive"))
	if err != nil {
		return h.flowError(c, "Inactive customers", err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Inactive customers retrieved", res)
}

// Exploration runs the exploratory analysis for a category and date window.
// @Summary Exploratory sales analysis
// @Tags Analytics
// @Produce json
// @Param category query string true "Product category"
// @Param from query string false "Window start (YYYY-MM-DD, inclusive)"
// @Param to query string false "Window end (YYYY-MM-DD, inclusive)"
// @Success 200 {object} dto.APIResponse{data=dto.ExplorationResponse}
// @Failure 400 {object} dto.APIResponse "Invalid filter parameters"
// @Router /api/v1/analytics/exploration [get]
func (h *AnalyticsHandler) Exploration(c fiber.Ctx) error {
	var req dto.ExplorationRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	res, err := h.flow.Exploration(h.createRequestContext(c, "/api/v1/analytics/exploration"), &req)
	if err != nil {
		return h.flowError(c, "Exploration", err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Exploration retrieved", res)
}

func (h *AnalyticsHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	_ = cancel // analysis passes are bounded; the timeout guards the context chain
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	return ctx
}

// parseOptionalInt reads an integer query parameter, falling back when absent.
func parseOptionalInt(c fiber.Ctx, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
