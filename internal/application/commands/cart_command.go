package commands

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mkravets/storefront-service/internal/application/ports"
	"github.com/mkravets/storefront-service/internal/domain/cart"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

type AddItemCommand struct {
	CartID    string
	ProductID int
	Name      string
	Price     decimal.Decimal
	Quantity  int
	ImageURL  string
}

type UpdateQuantityCommand struct {
	CartID    string
	ProductID int
	Quantity  int
}

// PricingView carries the summary rounded to two decimals for display. The
// underlying arithmetic stays exact; rounding happens only here.
type PricingView struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

type CartView struct {
	Items         []cart.LineItem `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	Pricing       PricingView     `json:"pricing"`
}

// CartHandler applies cart mutations against the durable slot. The domain
// transitions themselves are total; only loading and saving the slot can
// fail.
type CartHandler struct {
	carts ports.CartStore
	log   *logger.Logger
}

func NewCartHandler(carts ports.CartStore, log *logger.Logger) *CartHandler {
	return &CartHandler{
		carts: carts,
		log:   log,
	}
}

func (h *CartHandler) Get(ctx context.Context, cartID string) (*CartView, error) {
	c, err := h.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	return viewOf(c), nil
}

func (h *CartHandler) AddItem(ctx context.Context, cmd AddItemCommand) (*CartView, error) {
	return h.mutate(ctx, cmd.CartID, func(c *cart.Cart) {
		c.AddItem(cart.LineItem{
			ProductID: cmd.ProductID,
			Name:      cmd.Name,
			Price:     cmd.Price,
			Quantity:  cmd.Quantity,
			ImageURL:  cmd.ImageURL,
		})
	})
}

func (h *CartHandler) UpdateQuantity(ctx context.Context, cmd UpdateQuantityCommand) (*CartView, error) {
	return h.mutate(ctx, cmd.CartID, func(c *cart.Cart) {
		c.UpdateQuantity(cmd.ProductID, cmd.Quantity)
	})
}

func (h *CartHandler) RemoveItem(ctx context.Context, cartID string, productID int) (*CartView, error) {
	return h.mutate(ctx, cartID, func(c *cart.Cart) {
		c.RemoveItem(productID)
	})
}

func (h *CartHandler) Clear(ctx context.Context, cartID string) error {
	if err := h.carts.Delete(ctx, cartID); err != nil {
		h.log.Error("Failed to clear cart", "error", err, "cart_id", cartID)
		return err
	}

	return nil
}

func (h *CartHandler) mutate(ctx context.Context, cartID string, fn func(*cart.Cart)) (*CartView, error) {
	c, err := h.carts.Get(ctx, cartID)
	if err != nil {
		h.log.Error("Failed to load cart", "error", err, "cart_id", cartID)
		return nil, err
	}

	fn(c)

	if err := h.carts.Save(ctx, c); err != nil {
		h.log.Error("Failed to save cart", "error", err, "cart_id", cartID)
		return nil, err
	}

	return viewOf(c), nil
}

func viewOf(c *cart.Cart) *CartView {
	summary := cart.Summarize(c)

	return &CartView{
		Items:         c.Lines(),
		TotalQuantity: c.TotalQuantity(),
		Pricing: PricingView{
			Subtotal: summary.Subtotal.StringFixed(2),
			Tax:      summary.Tax.StringFixed(2),
			Total:    summary.Total.StringFixed(2),
		},
	}
}
