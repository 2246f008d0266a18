package service

import (
	"context"
	"errors"

	"storefront/internal/broker"
	"storefront/internal/models"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// PaymentService pays pending orders
type PaymentService struct {
	sessions       *SessionService
	inventory      *InventoryService
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger

	// strictStock re-validates stock at payment and refuses orders that no
	// longer fit instead of driving stock negative.
	strictStock bool
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	sessions *SessionService,
	inventory *InventoryService,
	eventPublisher *broker.EventPublisher,
	strictStock bool,
) *PaymentService {
	return &PaymentService{
		sessions:       sessions,
		inventory:      inventory,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
		strictStock:    strictStock,
	}
}

// PayOrder pays orderID: stock is deducted, the order becomes paid and the
// cart is cleared. An already paid order is reported with ErrAlreadyPaid and
// left untouched.
func (ps *PaymentService) PayOrder(ctx context.Context, sess *Session, orderID int) (models.Order, error) {
	ctx, span := util.StartSpan(ctx, "PaymentService.PayOrder")
	defer span.End()

	acc, err := ps.sessions.authorize(sess)
	if err != nil {
		return models.Order{}, err
	}

	order, err := acc.PayOrder(orderID, ps.inventory, ps.strictStock)
	if err != nil {
		util.PaymentRejectedTotal.WithLabelValues(util.ErrorReason(err)).Inc()
		if errors.Is(err, models.ErrAlreadyPaid) {
			ps.logger.Info("Order already paid",
				zap.Int64("account_id", acc.ID),
				zap.Int("order_id", orderID))
		} else {
			ps.logger.Warn("Payment rejected",
				zap.Int64("account_id", acc.ID),
				zap.Int("order_id", orderID),
				zap.Error(err))
		}
		return order, err
	}

	util.OrdersPaidTotal.Inc()
	ps.logger.Info("Order paid",
		zap.Int64("account_id", acc.ID),
		zap.Int("order_id", order.ID),
		zap.String("amount", order.Total.StringFixed(2)))

	ps.inventory.PublishStock(ctx, order.Items)

	event := &models.OrderPaidEvent{
		BaseEvent: models.NewBaseEvent(models.EventTypeOrderPaid),
		OrderID:   order.ID,
		AccountID: acc.ID,
		Amount:    order.Total,
		Items:     models.NewOrderItemData(order.Items),
	}
	if err := ps.eventPublisher.PublishOrderPaid(ctx, event); err != nil {
		ps.logger.Error("Failed to publish OrderPaid event", zap.Error(err))
	}

	return order, nil
}
