package ports

import (
	"context"
	"time"

	"github.com/mkravets/storefront-service/internal/domain/order"
)

// AttemptLog records checkout outcomes for diagnostics, including the
// partial-failure state where a remote order exists unpaid.
type AttemptLog interface {
	Record(ctx context.Context, attempt order.CheckoutAttempt) error
	ListByOutcome(ctx context.Context, outcome string, limit int) ([]order.CheckoutAttempt, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
