package errors

import (
	"errors"
)

var (
	ErrCartEmpty    = errors.New("cart is empty")
	ErrCartNotFound = errors.New("cart not found")

	ErrLoginRequired      = errors.New("login required")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrSessionUnavailable = errors.New("session could not be resolved")

	ErrCheckoutInProgress = errors.New("checkout already in progress")

	ErrOrderCreationFailed  = errors.New("order creation failed")
	ErrPaymentSessionFailed = errors.New("payment session creation failed")

	ErrProductNotFound = errors.New("product not found")

	ErrCommerceUnavailable = errors.New("commerce backend unavailable")
)
