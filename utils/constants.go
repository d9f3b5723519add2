// Package utils provides utility functions for the application.
package utils

// ContextKey is the type used for request-scoped context values.
type ContextKey string

// Request context keys set by the handlers for every pipeline call.
const (
	RequestIDKey ContextKey = "request_id"
	IPAddressKey ContextKey = "ip_address"
	EndpointKey  ContextKey = "endpoint"
)

// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
const CORSMaxAge = 86400
