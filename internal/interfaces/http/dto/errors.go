package dto

import (
	"errors"
	"net/http"

	"github.com/omnicrm/backend/internal/domain/conversation"
	"github.com/omnicrm/backend/internal/domain/shared"
)

// Error code constants
const (
	ErrCodeInternal           = "ERR_INTERNAL"
	ErrCodeBadRequest         = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON        = "ERR_INVALID_JSON"
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeRequestTooLarge    = "ERR_REQUEST_TOO_LARGE"
	ErrCodeUnsupportedChannel = "ERR_UNSUPPORTED_CHANNEL"
	ErrCodeStoreUnavailable   = "ERR_STORE_UNAVAILABLE"
	ErrCodeDeliveryFailed     = "ERR_DELIVERY_FAILED"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeInvalidJSON:        http.StatusBadRequest,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeRequestTooLarge:    http.StatusRequestEntityTooLarge,
	ErrCodeUnsupportedChannel: http.StatusUnprocessableEntity,
	ErrCodeStoreUnavailable:   http.StatusServiceUnavailable,
	ErrCodeDeliveryFailed:     http.StatusBadGateway,
}

// HTTPStatus returns the HTTP status for an error code, defaulting to
// 500 for unknown codes
func HTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// MapError translates a domain error into an (error code, safe message)
// pair. Upstream/driver detail is dropped here; it is already logged at
// the failure site.
func MapError(err error) (string, string) {
	var deliveryErr *conversation.DeliveryError
	if errors.As(err, &deliveryErr) {
		return ErrCodeDeliveryFailed, "Reply delivery failed"
	}

	var storeErr *shared.StoreError
	if errors.As(err, &storeErr) {
		return ErrCodeStoreUnavailable, "Storage temporarily unavailable"
	}

	if errors.Is(err, shared.ErrUnsupportedChannel) {
		return ErrCodeUnsupportedChannel, shared.ErrUnsupportedChannel.Message
	}
	if errors.Is(err, shared.ErrNotFound) {
		return ErrCodeNotFound, shared.ErrNotFound.Message
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return ErrCodeValidation, domainErr.Message
	}

	return ErrCodeInternal, "Internal server error"
}
