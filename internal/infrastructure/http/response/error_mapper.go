package response

import (
	"errors"
	"net/http"

	domainErrors "github.com/mkravets/storefront-service/internal/domain/errors"
)

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

var errorMappings = map[error]ErrorMapping{
	domainErrors.ErrCartEmpty: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Cart is empty",
	},
	domainErrors.ErrCartNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Cart not found",
	},
	domainErrors.ErrLoginRequired: {
		HTTPStatus: http.StatusUnauthorized,
		Status:     StatusUnauthorized,
		Message:    "Login required",
	},
	domainErrors.ErrUnauthorized: {
		HTTPStatus: http.StatusUnauthorized,
		Status:     StatusUnauthorized,
		Message:    "Unauthorized",
	},
	domainErrors.ErrSessionUnavailable: {
		HTTPStatus: http.StatusServiceUnavailable,
		Status:     StatusServiceUnavailable,
		Message:    "Session could not be resolved",
	},
	domainErrors.ErrCheckoutInProgress: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Checkout already in progress",
	},
	domainErrors.ErrOrderCreationFailed: {
		HTTPStatus: http.StatusBadGateway,
		Status:     StatusError,
		Message:    "Order creation failed",
	},
	domainErrors.ErrPaymentSessionFailed: {
		HTTPStatus: http.StatusBadGateway,
		Status:     StatusError,
		Message:    "Payment session creation failed",
	},
	domainErrors.ErrProductNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Product not found",
	},
	domainErrors.ErrCommerceUnavailable: {
		HTTPStatus: http.StatusServiceUnavailable,
		Status:     StatusServiceUnavailable,
		Message:    "Commerce backend unavailable",
	},
}

func MapDomainError(err error) (int, *ErrorResponse) {
	for domainErr, mapping := range errorMappings {
		if errors.Is(err, domainErr) {
			return mapping.HTTPStatus, Error(mapping.Status, mapping.Message, err.Error())
		}
	}

	return http.StatusInternalServerError, Error(StatusInternalError, "Internal server error", err.Error())
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, errorResponse := MapDomainError(err)
	WriteJSON(w, statusCode, errorResponse)
}
