package service

import (
	"context"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/util"
)

// CatalogService serves product browsing. It needs no session.
type CatalogService struct {
	catalog *catalog.Catalog
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog *catalog.Catalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// ListProducts returns every product in catalog order
func (cs *CatalogService) ListProducts(ctx context.Context) []models.Product {
	_, span := util.StartSpan(ctx, "CatalogService.ListProducts")
	defer span.End()

	return cs.catalog.List()
}

// GetProduct returns one product with its live stock
func (cs *CatalogService) GetProduct(ctx context.Context, productID int64) (models.Product, error) {
	_, span := util.StartSpan(ctx, "CatalogService.GetProduct")
	defer span.End()

	return cs.catalog.Get(productID)
}
