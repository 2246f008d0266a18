package catalog

import (
	"fmt"
	"sync"

	"storefront/internal/models"
)

// Catalog holds the products of one system instance and their live stock.
// The product set is fixed after construction; only stock changes.
type Catalog struct {
	mu       sync.RWMutex
	products map[int64]*models.Product
	ids      []int64 // seed order, used for browsing
}

// New builds a catalog from seed products
func New(products []models.Product) (*Catalog, error) {
	c := &Catalog{
		products: make(map[int64]*models.Product, len(products)),
		ids:      make([]int64, 0, len(products)),
	}

	for i := range products {
		p := products[i]
		if _, exists := c.products[p.ID]; exists {
			return nil, fmt.Errorf("duplicate product id: %d", p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %d has negative price", p.ID)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("product %d has negative stock", p.ID)
		}
		c.products[p.ID] = &p
		c.ids = append(c.ids, p.ID)
	}

	return c, nil
}

// Find returns the shared product record for id
func (c *Catalog) Find(id int64) (*models.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", models.ErrProductNotFound, id)
	}
	return p, nil
}

// Get returns a copy of the product, stock included
func (c *Catalog) Get(id int64) (models.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %d", models.ErrProductNotFound, id)
	}
	return *p, nil
}

// List returns copies of all products in seed order
func (c *Catalog) List() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]models.Product, 0, len(c.ids))
	for _, id := range c.ids {
		result = append(result, *c.products[id])
	}
	return result
}

// Stock returns the live stock count for id
func (c *Catalog) Stock(id int64) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", models.ErrProductNotFound, id)
	}
	return p.Stock, nil
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.ids)
}
