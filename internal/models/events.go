package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeSessionStarted = "SESSION_STARTED"
	EventTypeSessionEnded   = "SESSION_ENDED"
	EventTypeCartItemAdded  = "CART_ITEM_ADDED"
	EventTypeOrderCreated   = "ORDER_CREATED"
	EventTypeOrderPaid      = "ORDER_PAID"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// NewBaseEvent stamps a fresh event id and time
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// SessionStartedEvent published on successful login
type SessionStartedEvent struct {
	BaseEvent
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
}

// SessionEndedEvent published on logout
type SessionEndedEvent struct {
	BaseEvent
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
}

// CartItemAddedEvent published when a cart addition succeeds
type CartItemAddedEvent struct {
	BaseEvent
	AccountID int64 `json:"account_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	CartTotal int   `json:"cart_quantity"`
}

// OrderCreatedEvent published when an order is appended to a ledger
type OrderCreatedEvent struct {
	BaseEvent
	OrderID     int             `json:"order_id"`
	AccountID   int64           `json:"account_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItemData `json:"items"`
}

// OrderPaidEvent published when payment succeeds
type OrderPaidEvent struct {
	BaseEvent
	OrderID   int             `json:"order_id"`
	AccountID int64           `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Items     []OrderItemData `json:"items"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewOrderItemData converts line items into event payload items
func NewOrderItemData(items []LineItem) []OrderItemData {
	data := make([]OrderItemData, 0, len(items))
	for _, item := range items {
		data = append(data, OrderItemData{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
		})
	}
	return data
}
