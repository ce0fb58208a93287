package dto

import (
	"net/http"
	"strings"

	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/domain/trade"
	catalogimport "github.com/shopapi/backend/internal/infrastructure/import"
)

// Transport error codes. Domain errors keep their own codes in responses.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	// ErrCodeRouteNotFound is used for unknown routes
	ErrCodeRouteNotFound = "ERR_ROUTE_NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Conflicts are reported as 400, like every other client mistake that is
// not about identity or ownership.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRouteNotFound:   http.StatusNotFound,

	// Validation
	shared.ErrValidation.Code:             http.StatusBadRequest,
	shared.ErrInvalidInput.Code:           http.StatusBadRequest,
	catalogimport.ErrCodeMissingField:     http.StatusBadRequest,
	catalogimport.ErrCodeMalformedPayload: http.StatusBadRequest,
	trade.ErrInvalidQuantity.Code:         http.StatusBadRequest,
	trade.ErrEmptyBasket.Code:             http.StatusBadRequest,
	trade.ErrInvalidTransition.Code:       http.StatusBadRequest,
	catalog.ErrShopClosed.Code:            http.StatusBadRequest,
	identity.ErrInvalidCredentials.Code:   http.StatusBadRequest,
	identity.ErrAccountInactive.Code:      http.StatusBadRequest,

	// Conflicts
	shared.ErrAlreadyExists.Code:         http.StatusBadRequest,
	catalog.ErrDuplicateShop.Code:        http.StatusBadRequest,
	catalog.ErrDuplicateProductInfo.Code: http.StatusBadRequest,
	identity.ErrEmailTaken.Code:          http.StatusBadRequest,
	identity.ErrUsernameTaken.Code:       http.StatusBadRequest,
	trade.ErrBasketExists.Code:           http.StatusBadRequest,

	// Identity and ownership
	shared.ErrAuthFailed.Code:   http.StatusUnauthorized,
	shared.ErrUnauthorized.Code: http.StatusUnauthorized,
	shared.ErrForbidden.Code:    http.StatusForbidden,
	shared.ErrNotFound.Code:     http.StatusNotFound,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Any code ending in _NOT_FOUND is a 404; other unknown codes are 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasSuffix(code, "_NOT_FOUND") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
