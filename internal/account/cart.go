package account

import (
	"fmt"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// StockValidator checks requested quantities against live stock
type StockValidator interface {
	ValidateStock(items ...models.LineItem) error
}

// StockDeductor removes paid quantities from live stock
type StockDeductor interface {
	Deduct(items []models.LineItem, strict bool) error
}

// Cart is an insertion-ordered list of line items with at most one entry per
// product. It is not safe for concurrent use; Account serializes access.
type Cart struct {
	entries []models.LineItem

	// strictMerge re-validates the merged quantity when an existing entry
	// grows. Off by default: only the added quantity is checked.
	strictMerge bool
}

// NewCart creates an empty cart
func NewCart(strictMerge bool) *Cart {
	return &Cart{strictMerge: strictMerge}
}

// AddItem adds quantity of product, merging into an existing entry for the
// same product. It returns the resulting entry.
func (c *Cart) AddItem(product *models.Product, quantity int, stock StockValidator) (models.LineItem, error) {
	if quantity <= 0 {
		return models.LineItem{}, fmt.Errorf("%w: %d", models.ErrInvalidQuantity, quantity)
	}

	if err := stock.ValidateStock(models.LineItem{Product: product, Quantity: quantity}); err != nil {
		return models.LineItem{}, err
	}

	for i := range c.entries {
		if c.entries[i].Product.ID != product.ID {
			continue
		}
		merged := models.LineItem{Product: product, Quantity: c.entries[i].Quantity + quantity}
		if c.strictMerge {
			if err := stock.ValidateStock(merged); err != nil {
				return models.LineItem{}, err
			}
		}
		c.entries[i] = merged
		return merged, nil
	}

	entry := models.LineItem{Product: product, Quantity: quantity}
	c.entries = append(c.entries, entry)
	return entry, nil
}

// Total sums price times quantity over all entries
func (c *Cart) Total() decimal.Decimal {
	return models.SumLineItems(c.entries)
}

// Entries returns a copy of the entries in insertion order
func (c *Cart) Entries() []models.LineItem {
	entries := make([]models.LineItem, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// Len returns the number of distinct products in the cart
func (c *Cart) Len() int {
	return len(c.entries)
}

// Quantity returns the total number of units across entries
func (c *Cart) Quantity() int {
	n := 0
	for _, entry := range c.entries {
		n += entry.Quantity
	}
	return n
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.entries = nil
}
