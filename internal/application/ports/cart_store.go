package ports

import (
	"context"
	"time"

	"github.com/mkravets/storefront-service/internal/domain/cart"
)

// CartStore is the durable key-value slot holding serialized cart state.
// Get returns a fresh empty cart when no slot exists for the id.
type CartStore interface {
	Get(ctx context.Context, cartID string) (*cart.Cart, error)
	Save(ctx context.Context, c *cart.Cart) error
	Delete(ctx context.Context, cartID string) error

	AcquireCheckoutLock(ctx context.Context, cartID string, expiration time.Duration) (bool, error)
	ReleaseCheckoutLock(ctx context.Context, cartID string) error
}
