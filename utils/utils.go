// Package utils provides utility functions for the application.
package utils

import "math"

func ToPtr[T any](v T) *T {
	return &v
}

// Round2 rounds a value to two decimal places, the precision every monetary
// column in the generated tables carries.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FloatPtrOrNil converts a float to a pointer, mapping NaN to nil so the
// value survives JSON encoding.
func FloatPtrOrNil(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
