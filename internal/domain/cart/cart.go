package cart

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type LineItem struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url"`
}

type Cart struct {
	ID        string           `json:"id"`
	Items     map[int]LineItem `json:"items"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func New(id string) *Cart {
	return &Cart{
		ID:        id,
		Items:     make(map[int]LineItem),
		UpdatedAt: time.Now().UTC(),
	}
}

// AddItem merges the incoming line into the cart. An existing line for the
// same product keeps its quantity plus the incoming one; name, price and
// image always take the incoming values. A non-positive incoming quantity
// counts as 1.
func (c *Cart) AddItem(item LineItem) {
	if c.Items == nil {
		c.Items = make(map[int]LineItem)
	}

	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	if existing, ok := c.Items[item.ProductID]; ok {
		item.Quantity += existing.Quantity
	}

	c.Items[item.ProductID] = item
	c.UpdatedAt = time.Now().UTC()
}

// UpdateQuantity sets the line's quantity. A quantity of zero or less removes
// the line entirely; a line item with quantity 0 is never retained. Absent
// product ids are a no-op.
func (c *Cart) UpdateQuantity(productID, quantity int) {
	item, ok := c.Items[productID]
	if !ok {
		return
	}

	if quantity <= 0 {
		delete(c.Items, productID)
	} else {
		item.Quantity = quantity
		c.Items[productID] = item
	}

	c.UpdatedAt = time.Now().UTC()
}

func (c *Cart) RemoveItem(productID int) {
	if _, ok := c.Items[productID]; !ok {
		return
	}

	delete(c.Items, productID)
	c.UpdatedAt = time.Now().UTC()
}

func (c *Cart) Clear() {
	c.Items = make(map[int]LineItem)
	c.UpdatedAt = time.Now().UTC()
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalQuantity is the unit count across all lines, used for the cart badge.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Lines returns the line items ordered by product id for stable rendering
// and order construction.
func (c *Cart) Lines() []LineItem {
	lines := make([]LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, item)
	}

	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID < lines[j].ProductID
	})

	return lines
}
