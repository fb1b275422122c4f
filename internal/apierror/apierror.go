// Package apierror provides the standardized error response envelope.
// All 4xx/5xx responses go through this package so that clients always see
// {"detail": "..."} and internal details (stack traces, SQL errors) never leak.
package apierror

// APIError is the canonical error body for all error responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries per-field validation failures.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation error", Fields: fields}
}
