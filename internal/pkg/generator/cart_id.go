package generator

import (
	"github.com/google/uuid"
)

type CartIDGenerator struct{}

func NewCartIDGenerator() *CartIDGenerator {
	return &CartIDGenerator{}
}

// NewCartID mints the opaque id stored in the cart cookie and used as the
// durable slot key.
func (g *CartIDGenerator) NewCartID() string {
	return uuid.NewString()
}
