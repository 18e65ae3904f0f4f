package domain

import (
	catalog "github.com/dwikikusuma/shoping-assistant/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart is an ordered list of lines, at most one per product.
// Quantities are always positive.
type Cart []Item

func (c Cart) index(productID string) int {
	for i, it := range c {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) Find(productID string) (Item, bool) {
	if i := c.index(productID); i >= 0 {
		return c[i], true
	}
	return Item{}, false
}

// Add merges qty into an existing line or appends a new one.
// Non-positive quantities are ignored.
func (c *Cart) Add(p catalog.Product, qty int) {
	if qty <= 0 {
		return
	}
	if i := c.index(p.ID); i >= 0 {
		(*c)[i].Quantity += qty
		return
	}
	*c = append(*c, Item{Product: p, Quantity: qty})
}

// SetQuantity replaces the quantity of an existing line; qty <= 0 removes
// it. It reports false when the product is not in the cart.
func (c *Cart) SetQuantity(productID string, qty int) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	if qty <= 0 {
		c.Remove(productID)
		return true
	}
	(*c)[i].Quantity = qty
	return true
}

// Remove drops the line for productID and reports whether one existed.
func (c *Cart) Remove(productID string) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	*c = append((*c)[:i:i], (*c)[i+1:]...)
	return true
}

// ItemCount sums quantities, not distinct lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, it := range c {
		n += it.Quantity
	}
	return n
}

func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c {
		line := decimal.NewFromFloat(it.Product.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
	}
	return total
}

// FormatPrice renders an amount with two decimals, e.g. "1234.50".
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}
