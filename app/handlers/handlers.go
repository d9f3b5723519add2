// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"errors"
	"fmt"

	businessflow "github.com/agromercantil/sales-insight/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "datetime":
		return err.Field() + " must be a date in format " + err.Param()
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}

func validationErrorDetails(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}
	details := make([]string, len(validationErrors))
	for i, fieldErr := range validationErrors {
		details[i] = getValidationErrorMessage(fieldErr)
	}
	return details
}

// statusForFlowError maps pipeline errors onto HTTP statuses: bad parameters
// and data-shape problems are client errors, everything else is a 500.
func statusForFlowError(err error) int {
	if businessflow.IsRangeError(err) ||
		businessflow.IsColumnNotFound(err) ||
		businessflow.IsTooFewDistinctValues(err) {
		return fiber.StatusBadRequest
	}
	var bizErr *businessflow.BusinessError
	if errors.As(err, &bizErr) && bizErr.Code == "VALIDATION_ERROR" {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func flowErrorCode(err error) string {
	var bizErr *businessflow.BusinessError
	if errors.As(err, &bizErr) {
		return bizErr.Code
	}
	return "INTERNAL_ERROR"
}
