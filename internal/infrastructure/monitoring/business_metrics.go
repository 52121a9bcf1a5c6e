package monitoring

// CheckoutMetrics tracks one checkout invocation end to end.
type CheckoutMetrics struct {
	cartID string
}

func NewCheckoutMetrics(cartID string) *CheckoutMetrics {
	return &CheckoutMetrics{
		cartID: cartID,
	}
}

func (m *CheckoutMetrics) RecordAttempt() {
	RecordCheckoutAttempt()
}

func (m *CheckoutMetrics) RecordSuccess() {
	RecordCheckoutSuccess()
}

func (m *CheckoutMetrics) RecordFailure(reason string) {
	RecordCheckoutFailure(reason)
}
