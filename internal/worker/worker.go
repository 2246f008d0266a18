package worker

import (
	"context"
	"errors"

	"storefront/internal/broker"
	"storefront/internal/service"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// MessageSource delivers broker messages to a handler until ctx is done
type MessageSource interface {
	StartConsuming(ctx context.Context, handler broker.MessageHandler) error
	Close() error
}

// SalesWorker feeds order events from the shop topic into a sales projection
type SalesWorker struct {
	source       MessageSource
	eventHandler *broker.EventHandler
	projection   *service.SalesProjection
	logger       *zap.Logger
}

// NewSalesWorker creates a new sales worker
func NewSalesWorker(source MessageSource, projection *service.SalesProjection) *SalesWorker {
	logger := util.GetLogger()
	eventHandler := broker.NewEventHandler(logger)
	projection.Register(eventHandler)

	return &SalesWorker{
		source:       source,
		eventHandler: eventHandler,
		projection:   projection,
		logger:       logger,
	}
}

// Start consumes until ctx is cancelled. Cancellation is not an error.
func (w *SalesWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting sales worker")
	err := w.source.StartConsuming(ctx, w.eventHandler.HandleMessage)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Stop stops the worker
func (w *SalesWorker) Stop() error {
	w.logger.Info("Stopping sales worker")
	return w.source.Close()
}

// Summary returns the projection's current aggregates
func (w *SalesWorker) Summary() service.SalesSummary {
	return w.projection.Summary()
}
