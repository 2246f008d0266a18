package catalog

import (
	"fmt"

	"storefront/internal/models"
)

// ValidateStock is the single stock checkpoint. It is called when an item is
// added to a cart, when an order is created and, in strict mode, when an
// order is paid. Stock is never reserved: each call compares the requested
// quantities with live stock only.
func (c *Catalog) ValidateStock(items ...models.LineItem) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.validateLocked(items)
}

func (c *Catalog) validateLocked(items []models.LineItem) error {
	for _, item := range items {
		p, ok := c.products[item.Product.ID]
		if !ok || p != item.Product {
			return fmt.Errorf("%w: %d", models.ErrProductNotFound, item.Product.ID)
		}
		if p.Stock < item.Quantity {
			return fmt.Errorf("%w: %s requested=%d available=%d",
				models.ErrInsufficientStock, p.Name, item.Quantity, p.Stock)
		}
	}
	return nil
}

// Deduct decrements live stock for every item under one lock. Without strict
// the quantities are not re-validated, so stock changed since the last
// checkpoint can go negative. With strict nothing is deducted unless every
// item still fits.
func (c *Catalog) Deduct(items []models.LineItem, strict bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strict {
		if err := c.validateLocked(items); err != nil {
			return err
		}
	}

	for _, item := range items {
		if _, ok := c.products[item.Product.ID]; !ok {
			return fmt.Errorf("%w: %d", models.ErrProductNotFound, item.Product.ID)
		}
	}
	for _, item := range items {
		c.products[item.Product.ID].Stock -= item.Quantity
	}
	return nil
}
