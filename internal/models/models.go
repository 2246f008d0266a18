package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog
type Product struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Description string          `db:"description" json:"description"`
	Stock       int             `db:"stock" json:"stock"`
}

// LineItem pairs a catalog product with a quantity. Cart entries and order
// snapshots share this shape; the product is referenced, never copied.
type LineItem struct {
	Product  *Product
	Quantity int
}

// Subtotal returns unit price times quantity
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type lineItemJSON struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// MarshalJSON flattens the product reference into the line
func (li LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineItemJSON{
		ProductID: li.Product.ID,
		Name:      li.Product.Name,
		UnitPrice: li.Product.Price,
		Quantity:  li.Quantity,
		Subtotal:  li.Subtotal(),
	})
}

// SumLineItems totals a set of line items
func SumLineItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// OrderStatus is the payment state of an order
type OrderStatus string

// Order statuses
const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusPaid           OrderStatus = "paid"
)

// Order is a snapshot of a cart with its own total and status
type Order struct {
	ID        int             `json:"id"`
	AccountID int64           `json:"account_id"`
	Items     []LineItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
}

// Clone returns a copy that shares no mutable state with o
func (o Order) Clone() Order {
	items := make([]LineItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	if o.PaidAt != nil {
		paidAt := *o.PaidAt
		o.PaidAt = &paidAt
	}
	return o
}

// IsPaid reports whether the order reached its terminal state
func (o Order) IsPaid() bool {
	return o.Status == OrderStatusPaid
}

// AccountInfo is the public view of a seeded account
type AccountInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
