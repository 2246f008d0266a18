package service

import (
	"context"

	"storefront/internal/broker"
	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartView is a read of a cart with its total
type CartView struct {
	Items []models.LineItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

// IsEmpty reports whether the cart has no entries
func (v *CartView) IsEmpty() bool {
	return len(v.Items) == 0
}

// CartService handles cart operations of the session's account
type CartService struct {
	sessions       *SessionService
	catalog        *catalog.Catalog
	inventory      *InventoryService
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	sessions *SessionService,
	catalog *catalog.Catalog,
	inventory *InventoryService,
	eventPublisher *broker.EventPublisher,
) *CartService {
	return &CartService{
		sessions:       sessions,
		catalog:        catalog,
		inventory:      inventory,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// AddItem adds quantity of a catalog product to the cart
func (cs *CartService) AddItem(ctx context.Context, sess *Session, productID int64, quantity int) (models.LineItem, error) {
	ctx, span := util.StartSpan(ctx, "CartService.AddItem")
	defer span.End()

	acc, err := cs.sessions.authorize(sess)
	if err != nil {
		return models.LineItem{}, err
	}

	product, err := cs.catalog.Find(productID)
	if err != nil {
		util.CartAddRejectedTotal.WithLabelValues(util.ErrorReason(err)).Inc()
		return models.LineItem{}, err
	}

	entry, err := acc.AddToCart(product, quantity, cs.inventory)
	if err != nil {
		util.CartAddRejectedTotal.WithLabelValues(util.ErrorReason(err)).Inc()
		cs.logger.Info("Cart addition rejected",
			zap.Int64("account_id", acc.ID),
			zap.Int64("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(err))
		return models.LineItem{}, err
	}

	util.CartItemsAddedTotal.Inc()
	cs.logger.Info("Cart updated",
		zap.Int64("account_id", acc.ID),
		zap.Int64("product_id", productID),
		zap.Int("quantity", entry.Quantity))

	event := &models.CartItemAddedEvent{
		BaseEvent: models.NewBaseEvent(models.EventTypeCartItemAdded),
		AccountID: acc.ID,
		ProductID: productID,
		Quantity:  quantity,
		CartTotal: acc.CartQuantity(),
	}
	if err := cs.eventPublisher.PublishCartItemAdded(ctx, event); err != nil {
		cs.logger.Error("Failed to publish CartItemAdded event", zap.Error(err))
	}

	return entry, nil
}

// ViewCart returns the cart entries and total
func (cs *CartService) ViewCart(ctx context.Context, sess *Session) (*CartView, error) {
	_, span := util.StartSpan(ctx, "CartService.ViewCart")
	defer span.End()

	acc, err := cs.sessions.authorize(sess)
	if err != nil {
		return nil, err
	}

	items, total := acc.Cart()
	return &CartView{Items: items, Total: total}, nil
}
