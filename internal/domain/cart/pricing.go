package cart

import (
	"github.com/shopspring/decimal"
)

// TaxRate is the fixed storefront tax rate (10%).
var TaxRate = decimal.New(1, -1)

type PricingSummary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Summarize derives the pricing summary from the cart's current lines.
// Values are exact; rounding to two decimals happens at display time only.
func Summarize(c *Cart) PricingSummary {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	tax := subtotal.Mul(TaxRate)

	return PricingSummary{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
