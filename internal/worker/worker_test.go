package worker

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"storefront/internal/broker"
	"storefront/internal/models"
	"storefront/internal/service"
	"storefront/internal/util"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// chanSource replays queued messages and then blocks until cancelled
type chanSource struct {
	messages chan kafka.Message

	mu     sync.Mutex
	errs   []error
	closed bool
}

func (s *chanSource) StartConsuming(ctx context.Context, handler broker.MessageHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-s.messages:
			err := handler(ctx, msg)
			s.mu.Lock()
			s.errs = append(s.errs, err)
			s.mu.Unlock()
		}
	}
}

func (s *chanSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *chanSource) handled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errs)
}

func encode(t *testing.T, event interface{}) kafka.Message {
	t.Helper()
	b, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Value: b}
}

func TestSalesWorker_ProjectsEvents(t *testing.T) {
	util.SetLogger(zap.NewNop())

	source := &chanSource{messages: make(chan kafka.Message, 4)}
	w := NewSalesWorker(source, service.NewSalesProjection(nil))

	paid := &models.OrderPaidEvent{
		BaseEvent: models.NewBaseEvent(models.EventTypeOrderPaid),
		OrderID:   1,
		AccountID: 1,
		Amount:    decimal.NewFromInt(7997),
		Items: []models.OrderItemData{
			{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(5999)},
			{ProductID: 3, Quantity: 2, UnitPrice: decimal.NewFromInt(999)},
		},
	}
	source.messages <- encode(t, &models.OrderCreatedEvent{
		BaseEvent: models.NewBaseEvent(models.EventTypeOrderCreated),
		OrderID:   1,
	})
	source.messages <- encode(t, paid)
	source.messages <- encode(t, paid)
	source.messages <- encode(t, &models.SessionEndedEvent{
		BaseEvent: models.NewBaseEvent(models.EventTypeSessionEnded),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.Eventually(t, func() bool { return source.handled() == 4 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	require.NoError(t, w.Stop())

	summary := w.Summary()
	assert.Equal(t, 1, summary.OrdersCreated)
	assert.Equal(t, 1, summary.OrdersPaid)
	assert.True(t, decimal.NewFromInt(7997).Equal(summary.Revenue))
	assert.True(t, source.closed)
}

func TestSalesWorker_SurfacesHandlerErrors(t *testing.T) {
	util.SetLogger(zap.NewNop())

	source := &chanSource{messages: make(chan kafka.Message, 1)}
	w := NewSalesWorker(source, service.NewSalesProjection(nil))
	source.messages <- kafka.Message{Value: []byte("not json")}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.Eventually(t, func() bool { return source.handled() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	source.mu.Lock()
	defer source.mu.Unlock()
	assert.Error(t, source.errs[0])
}
