package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as served by the remote commerce backend.
// Catalog storage itself stays remote; this service only reads.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
}
