package order

import (
	"time"
)

// Checkout attempt outcomes recorded for diagnostics. OutcomePaymentFailed
// marks the partial-failure state: the remote order exists but is unpaid.
const (
	OutcomeRequiresLogin = "requires_login"
	OutcomeEmptyCart     = "empty_cart"
	OutcomeConflict      = "conflict"
	OutcomeOrderFailed   = "order_failed"
	OutcomePaymentFailed = "payment_failed"
	OutcomeRedirected    = "redirected"
)

type CheckoutAttempt struct {
	CartID    string
	UserID    int
	Outcome   string
	OrderID   int
	Detail    string
	CreatedAt time.Time
}
