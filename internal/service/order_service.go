package service

import (
	"context"

	"storefront/internal/broker"
	"storefront/internal/models"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// OrderService handles order creation and history
type OrderService struct {
	sessions       *SessionService
	inventory      *InventoryService
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	sessions *SessionService,
	inventory *InventoryService,
	eventPublisher *broker.EventPublisher,
) *OrderService {
	return &OrderService{
		sessions:       sessions,
		inventory:      inventory,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateOrder snapshots the cart into a pending order. Neither the cart nor
// stock changes until the order is paid.
func (s *OrderService) CreateOrder(ctx context.Context, sess *Session) (models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	acc, err := s.sessions.authorize(sess)
	if err != nil {
		return models.Order{}, err
	}

	order, err := acc.CreateOrder(s.inventory)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues(util.ErrorReason(err)).Inc()
		s.logger.Info("Order creation rejected",
			zap.Int64("account_id", acc.ID),
			zap.Error(err))
		return models.Order{}, err
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("account_id", acc.ID),
		zap.Int("order_id", order.ID),
		zap.String("total", order.Total.StringFixed(2)))

	event := &models.OrderCreatedEvent{
		BaseEvent:   models.NewBaseEvent(models.EventTypeOrderCreated),
		OrderID:     order.ID,
		AccountID:   acc.ID,
		TotalAmount: order.Total,
		Items:       models.NewOrderItemData(order.Items),
	}
	if err := s.eventPublisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
	}

	return order, nil
}

// GetOrder retrieves one order of the session's account
func (s *OrderService) GetOrder(ctx context.Context, sess *Session, orderID int) (models.Order, error) {
	_, span := util.StartSpan(ctx, "OrderService.GetOrder")
	defer span.End()

	acc, err := s.sessions.authorize(sess)
	if err != nil {
		return models.Order{}, err
	}
	return acc.Order(orderID)
}

// ListOrders retrieves the session account's orders, oldest first
func (s *OrderService) ListOrders(ctx context.Context, sess *Session) ([]models.Order, error) {
	_, span := util.StartSpan(ctx, "OrderService.ListOrders")
	defer span.End()

	acc, err := s.sessions.authorize(sess)
	if err != nil {
		return nil, err
	}
	return acc.Orders(), nil
}
