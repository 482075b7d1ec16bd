package dto

import "net/http"

// Error codes carried in the response envelope. Domain errors keep their own
// code (see shared.DomainError), the rest are produced by the HTTP layer.
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeUnavailable     = "SERVICE_UNAVAILABLE"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeUnavailable:     http.StatusServiceUnavailable,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
