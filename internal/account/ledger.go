package account

import (
	"fmt"
	"time"

	"storefront/internal/models"
)

// Ledger is the append-only order history of one account
type Ledger struct {
	accountID int64
	orders    []*models.Order
	now       func() time.Time
}

// NewLedger creates an empty ledger for accountID
func NewLedger(accountID int64) *Ledger {
	return &Ledger{accountID: accountID, now: time.Now}
}

// CreateOrder snapshots the cart into a new pending order. Stock is
// re-validated but neither stock nor the cart is changed.
func (l *Ledger) CreateOrder(cart *Cart, stock StockValidator) (models.Order, error) {
	if cart.Len() == 0 {
		return models.Order{}, models.ErrEmptyCart
	}

	items := cart.Entries()
	if err := stock.ValidateStock(items...); err != nil {
		return models.Order{}, err
	}

	order := &models.Order{
		ID:        len(l.orders) + 1,
		AccountID: l.accountID,
		Items:     items,
		Total:     models.SumLineItems(items),
		Status:    models.OrderStatusPendingPayment,
		CreatedAt: l.now(),
	}
	l.orders = append(l.orders, order)

	return order.Clone(), nil
}

// PayOrder deducts the snapshot quantities from stock, marks the order paid
// and clears the whole cart, including entries added after the order was
// created. Paying a paid order changes nothing and returns ErrAlreadyPaid.
func (l *Ledger) PayOrder(orderID int, cart *Cart, stock StockDeductor, strict bool) (models.Order, error) {
	order, err := l.find(orderID)
	if err != nil {
		return models.Order{}, err
	}

	if order.Status == models.OrderStatusPaid {
		return order.Clone(), fmt.Errorf("%w: %d", models.ErrAlreadyPaid, orderID)
	}

	if err := stock.Deduct(order.Items, strict); err != nil {
		return order.Clone(), err
	}

	paidAt := l.now()
	order.Status = models.OrderStatusPaid
	order.PaidAt = &paidAt
	cart.Clear()

	return order.Clone(), nil
}

// Get returns a copy of the order with orderID
func (l *Ledger) Get(orderID int) (models.Order, error) {
	order, err := l.find(orderID)
	if err != nil {
		return models.Order{}, err
	}
	return order.Clone(), nil
}

// List returns copies of all orders, oldest first
func (l *Ledger) List() []models.Order {
	orders := make([]models.Order, 0, len(l.orders))
	for _, order := range l.orders {
		orders = append(orders, order.Clone())
	}
	return orders
}

// Len returns the number of orders
func (l *Ledger) Len() int {
	return len(l.orders)
}

func (l *Ledger) find(orderID int) (*models.Order, error) {
	for _, order := range l.orders {
		if order.ID == orderID {
			return order, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", models.ErrOrderNotFound, orderID)
}
