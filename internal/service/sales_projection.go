package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"storefront/internal/broker"
	"storefront/internal/models"
	"storefront/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const processedEventTTL = 24 * time.Hour

// EventDeduper remembers processed event ids. MarkEventProcessed reports
// true the first time an id is seen.
type EventDeduper interface {
	MarkEventProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
}

type memoryDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func (d *memoryDeduper) MarkEventProcessed(_ context.Context, eventID string, _ time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[eventID]; ok {
		return false, nil
	}
	d.seen[eventID] = struct{}{}
	return true, nil
}

// ProductSales is the sold quantity and revenue of one product
type ProductSales struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// SalesSummary aggregates the order events seen so far
type SalesSummary struct {
	OrdersCreated int             `json:"orders_created"`
	OrdersPaid    int             `json:"orders_paid"`
	Revenue       decimal.Decimal `json:"revenue"`
	Products      []ProductSales  `json:"products"`
}

// SalesProjection builds a sales summary from OrderCreated and OrderPaid
// events. Redelivered events are applied once.
type SalesProjection struct {
	mu       sync.Mutex
	deduper  EventDeduper
	created  int
	paid     int
	revenue  decimal.Decimal
	products map[int64]*ProductSales
	logger   *zap.Logger
}

// NewSalesProjection creates a projection. deduper may be nil, in which case
// processed ids are kept in memory.
func NewSalesProjection(deduper EventDeduper) *SalesProjection {
	if deduper == nil {
		deduper = &memoryDeduper{seen: make(map[string]struct{})}
	}
	return &SalesProjection{
		deduper:  deduper,
		products: make(map[int64]*ProductSales),
		logger:   util.GetLogger(),
	}
}

// Register attaches the projection to an event handler
func (sp *SalesProjection) Register(handler *broker.EventHandler) {
	handler.OnOrderCreated(sp.HandleOrderCreated)
	handler.OnOrderPaid(sp.HandleOrderPaid)
}

func (sp *SalesProjection) firstDelivery(ctx context.Context, eventID string) (bool, error) {
	fresh, err := sp.deduper.MarkEventProcessed(ctx, eventID, processedEventTTL)
	if err != nil {
		return false, fmt.Errorf("failed to check event processed: %w", err)
	}
	if !fresh {
		sp.logger.Info("Event already processed", zap.String("event_id", eventID))
	}
	return fresh, nil
}

// HandleOrderCreated counts a created order
func (sp *SalesProjection) HandleOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	ctx, span := util.StartSpan(ctx, "SalesProjection.HandleOrderCreated")
	defer span.End()

	fresh, err := sp.firstDelivery(ctx, event.EventID)
	if err != nil || !fresh {
		return err
	}

	sp.mu.Lock()
	sp.created++
	sp.mu.Unlock()
	return nil
}

// HandleOrderPaid adds a paid order to revenue and per-product sales
func (sp *SalesProjection) HandleOrderPaid(ctx context.Context, event *models.OrderPaidEvent) error {
	ctx, span := util.StartSpan(ctx, "SalesProjection.HandleOrderPaid")
	defer span.End()

	fresh, err := sp.firstDelivery(ctx, event.EventID)
	if err != nil || !fresh {
		return err
	}

	sp.mu.Lock()
	defer sp.mu.Unlock()

	sp.paid++
	sp.revenue = sp.revenue.Add(event.Amount)
	for _, item := range event.Items {
		ps, ok := sp.products[item.ProductID]
		if !ok {
			ps = &ProductSales{ProductID: item.ProductID}
			sp.products[item.ProductID] = ps
		}
		ps.Quantity += item.Quantity
		ps.Revenue = ps.Revenue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	util.SalesOrdersObservedTotal.Inc()
	util.SalesRevenueTotal.Add(event.Amount.InexactFloat64())

	sp.logger.Info("Sale recorded",
		zap.Int("order_id", event.OrderID),
		zap.Int64("account_id", event.AccountID),
		zap.String("amount", event.Amount.StringFixed(2)))
	return nil
}

// Summary returns a snapshot of the aggregates, products ordered by id
func (sp *SalesProjection) Summary() SalesSummary {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	products := make([]ProductSales, 0, len(sp.products))
	for _, ps := range sp.products {
		products = append(products, *ps)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ProductID < products[j].ProductID })

	return SalesSummary{
		OrdersCreated: sp.created,
		OrdersPaid:    sp.paid,
		Revenue:       sp.revenue,
		Products:      products,
	}
}
