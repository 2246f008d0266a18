package service

import (
	"context"
	"strconv"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// StockMirror receives live stock levels after they change and serves them
// back to readers outside the process
type StockMirror interface {
	SetStock(ctx context.Context, productID int64, available int) error
	SyncStock(ctx context.Context, products []models.Product) error
	GetStock(ctx context.Context, productID int64) (int, error)
}

// StockLevel compares live stock with its mirrored copy
type StockLevel struct {
	ProductID int64 `json:"product_id"`
	Available int   `json:"available"`
	// Mirrored is nil when no mirror is configured or it could not be read.
	Mirrored *int `json:"mirrored,omitempty"`
	InSync   bool `json:"in_sync"`
}

// InventoryService fronts the catalog's stock checkpoint and keeps stock
// observers (metrics gauge, optional Redis mirror) current.
type InventoryService struct {
	catalog *catalog.Catalog
	mirror  StockMirror
	logger  *zap.Logger
}

// NewInventoryService creates a new inventory service. mirror may be nil.
func NewInventoryService(catalog *catalog.Catalog, mirror StockMirror) *InventoryService {
	return &InventoryService{
		catalog: catalog,
		mirror:  mirror,
		logger:  util.GetLogger(),
	}
}

// ValidateStock checks items against live stock
func (is *InventoryService) ValidateStock(items ...models.LineItem) error {
	return is.catalog.ValidateStock(items...)
}

// Deduct removes paid quantities from live stock
func (is *InventoryService) Deduct(items []models.LineItem, strict bool) error {
	return is.catalog.Deduct(items, strict)
}

// PublishStock pushes the current stock of the given items to observers.
// Mirror failures are logged; the catalog stays authoritative.
func (is *InventoryService) PublishStock(ctx context.Context, items []models.LineItem) {
	ctx, span := util.StartSpan(ctx, "InventoryService.PublishStock")
	defer span.End()

	for _, item := range items {
		available, err := is.catalog.Stock(item.Product.ID)
		if err != nil {
			is.logger.Error("Failed to read stock", zap.Int64("product_id", item.Product.ID), zap.Error(err))
			continue
		}

		util.ProductStockLevel.WithLabelValues(strconv.FormatInt(item.Product.ID, 10)).Set(float64(available))
		if available < 0 {
			is.logger.Warn("Stock went negative",
				zap.Int64("product_id", item.Product.ID),
				zap.Int("available", available))
		}

		if is.mirror == nil {
			continue
		}
		if err := is.mirror.SetStock(ctx, item.Product.ID, available); err != nil {
			is.logger.Error("Failed to mirror stock",
				zap.Int64("product_id", item.Product.ID),
				zap.Error(err))
		}
	}
}

// SyncInventory publishes every product's stock, used at startup
func (is *InventoryService) SyncInventory(ctx context.Context) error {
	ctx, span := util.StartSpan(ctx, "InventoryService.SyncInventory")
	defer span.End()

	products := is.catalog.List()
	for _, p := range products {
		util.ProductStockLevel.WithLabelValues(strconv.FormatInt(p.ID, 10)).Set(float64(p.Stock))
	}

	if is.mirror == nil {
		return nil
	}
	if err := is.mirror.SyncStock(ctx, products); err != nil {
		return err
	}

	is.logger.Info("Inventory sync completed", zap.Int("count", len(products)))
	return nil
}

// StockLevel reads live stock of one product and its mirrored value
func (is *InventoryService) StockLevel(ctx context.Context, productID int64) (StockLevel, error) {
	ctx, span := util.StartSpan(ctx, "InventoryService.StockLevel")
	defer span.End()

	available, err := is.catalog.Stock(productID)
	if err != nil {
		return StockLevel{}, err
	}

	level := StockLevel{ProductID: productID, Available: available}
	if is.mirror == nil {
		return level, nil
	}

	mirrored, err := is.mirror.GetStock(ctx, productID)
	if err != nil {
		is.logger.Warn("Failed to read mirrored stock",
			zap.Int64("product_id", productID),
			zap.Error(err))
		return level, nil
	}
	level.Mirrored = &mirrored
	level.InSync = mirrored == available
	return level, nil
}
