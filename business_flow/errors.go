// Package businessflow contains the analytics pipeline logic for the application.
package businessflow

import (
	"errors"
	"fmt"
)

// Pipeline error constants
var (
	// Parameter range errors
	ErrInvertedDateRange  = errors.New("date range start is after end")
	ErrNegativeTopN       = errors.New("top-n count must not be negative")
	ErrInvalidBinCount    = errors.New("histogram bin count must be positive")
	ErrInvalidBucketCount = errors.New("bucket count must be at least one")

	// Table shape errors
	ErrColumnNotFound       = errors.New("referenced column does not exist")
	ErrTooFewDistinctValues = errors.New("not enough distinct values to form the requested buckets")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsInvertedDateRange(err error) bool {
	return errors.Is(err, ErrInvertedDateRange)
}

func IsNegativeTopN(err error) bool {
	return errors.Is(err, ErrNegativeTopN)
}

func IsColumnNotFound(err error) bool {
	return errors.Is(err, ErrColumnNotFound)
}

func IsTooFewDistinctValues(err error) bool {
	return errors.Is(err, ErrTooFewDistinctValues)
}

// IsRangeError reports whether the error stems from an out-of-range request
// parameter rather than from the shape of the data.
func IsRangeError(err error) bool {
	return errors.Is(err, ErrInvertedDateRange) ||
		errors.Is(err, ErrNegativeTopN) ||
		errors.Is(err, ErrInvalidBinCount) ||
		errors.Is(err, ErrInvalidBucketCount)
}
