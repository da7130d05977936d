package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeNoItems is used when a purchase is attempted on an empty cart
	ErrCodeNoItems = "ERR_NO_ITEMS"
	// ErrCodeCheckoutInProgress is used when a checkout is already pending
	ErrCodeCheckoutInProgress = "ERR_CHECKOUT_IN_PROGRESS"
	// ErrCodePersistenceFailure is used when cart state could not be stored.
	// It appears as a response warning, never as a failing status.
	ErrCodePersistenceFailure = "ERR_PERSISTENCE_FAILURE"
)

// Auth error codes
const (
	// ErrCodeUnauthorized is used when a visitor session is required but missing
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeNotFound: http.StatusNotFound,
	ErrCodeConflict: http.StatusConflict,

	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeNoItems:            http.StatusUnprocessableEntity,
	ErrCodeCheckoutInProgress: http.StatusConflict,

	ErrCodeUnauthorized: http.StatusUnauthorized,
}

// GetHTTPStatus returns the HTTP status code for an error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"NO_ITEMS":             ErrCodeNoItems,
	"CHECKOUT_IN_PROGRESS": ErrCodeCheckoutInProgress,
	"PERSISTENCE_FAILURE":  ErrCodePersistenceFailure,
}

// MapDomainErrorCode converts a domain error code to its API error code
func MapDomainErrorCode(domainCode string) string {
	if code, ok := DomainErrorCodeMapping[domainCode]; ok {
		return code
	}
	return ErrCodeInternal
}
