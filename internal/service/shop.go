package service

import (
	"storefront/internal/account"
	"storefront/internal/broker"
	"storefront/internal/catalog"
	"storefront/internal/util"
)

// Options configures a Shop
type Options struct {
	// EventPublisher receives domain events. Nil logs them instead.
	EventPublisher *broker.EventPublisher
	// StockMirror receives stock after payments. Nil disables mirroring.
	StockMirror StockMirror
	// StrictPaymentStock re-validates stock when an order is paid.
	StrictPaymentStock bool
}

// Shop is one system instance: a catalog, its accounts, the session gate and
// the services operating on them.
type Shop struct {
	Catalog   *CatalogService
	Sessions  *SessionService
	Cart      *CartService
	Orders    *OrderService
	Payments  *PaymentService
	Inventory *InventoryService
}

// NewShop wires the services of one system instance
func NewShop(cat *catalog.Catalog, accounts *account.Directory, opts Options) *Shop {
	publisher := opts.EventPublisher
	if publisher == nil {
		publisher = broker.NewEventPublisher(broker.NewLogProducer(util.GetLogger()))
	}

	inventory := NewInventoryService(cat, opts.StockMirror)
	sessions := NewSessionService(accounts, publisher)

	return &Shop{
		Catalog:   NewCatalogService(cat),
		Sessions:  sessions,
		Cart:      NewCartService(sessions, cat, inventory, publisher),
		Orders:    NewOrderService(sessions, inventory, publisher),
		Payments:  NewPaymentService(sessions, inventory, publisher, opts.StrictPaymentStock),
		Inventory: inventory,
	}
}
