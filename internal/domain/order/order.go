package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkravets/storefront-service/internal/domain/cart"
	"github.com/mkravets/storefront-service/internal/domain/errors"
)

type ProductOrder struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// Request is the payload for remote order creation. It is built fresh from
// the cart snapshot at checkout time and never mutated afterwards.
type Request struct {
	FormIdentifier           string         `json:"formIdentifier"`
	PaymentAccountIdentifier string         `json:"paymentAccountIdentifier"`
	Products                 []ProductOrder `json:"products"`
}

// NewRequest derives a request 1:1 from the cart's non-zero lines.
func NewRequest(c *cart.Cart, formIdentifier, paymentAccount string) (*Request, error) {
	if c == nil || c.IsEmpty() {
		return nil, errors.ErrCartEmpty
	}

	lines := c.Lines()
	products := make([]ProductOrder, 0, len(lines))
	for _, line := range lines {
		products = append(products, ProductOrder{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	return &Request{
		FormIdentifier:           formIdentifier,
		PaymentAccountIdentifier: paymentAccount,
		Products:                 products,
	}, nil
}

// Result is the successful outcome of the two-phase sequence. When the
// payment phase fails the order id is still reported alongside the typed
// error so callers can record the unpaid remote order.
type Result struct {
	OrderID    int    `json:"order_id"`
	PaymentURL string `json:"payment_url"`
}

// Order is a remote order as returned by the commerce backend's history
// listing.
type Order struct {
	ID        int             `json:"id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}
