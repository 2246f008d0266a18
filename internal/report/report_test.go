package report

import (
	"bytes"
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var laptop = &models.Product{
	ID:          2,
	Name:        "Laptop",
	Price:       decimal.NewFromInt(8999),
	Description: "16GB RAM",
	Stock:       30,
}

func TestReporter_Products(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "en").Products([]models.Product{*laptop})

	assert.Equal(t, "===== Products =====\n2. Laptop - ¥8999.00 (stock: 30)\n", buf.String())
}

func TestReporter_ProductDetail(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "en").Product(*laptop)

	out := buf.String()
	assert.Contains(t, out, "Product ID: 2\n")
	assert.Contains(t, out, "Price: ¥8999.00\n")
	assert.Contains(t, out, "Stock: 30\n")
}

func TestReporter_Cart(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, "en")

	r.Cart(&service.CartView{})
	assert.Equal(t, "Your cart is empty\n", buf.String())

	buf.Reset()
	items := []models.LineItem{{Product: laptop, Quantity: 2}}
	r.Cart(&service.CartView{Items: items, Total: models.SumLineItems(items)})
	assert.Contains(t, buf.String(), "1. Laptop - ¥8999.00 x 2 = ¥17998.00\n")
	assert.Contains(t, buf.String(), "Total: ¥17998.00\n")
}

func TestReporter_ItemAdded(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, "en")

	r.ItemAdded(models.LineItem{Product: laptop, Quantity: 2}, 2)
	r.ItemAdded(models.LineItem{Product: laptop, Quantity: 4}, 2)
	assert.Equal(t, "Added Laptop x 2 to cart\nUpdated Laptop quantity to 4\n", buf.String())
}

func TestReporter_Orders(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, "en")

	order := models.Order{ID: 1, Total: decimal.NewFromInt(7997), Status: models.OrderStatusPendingPayment}
	r.OrderCreated(order)
	order.Status = models.OrderStatusPaid
	r.OrderPaid(order)
	r.Orders([]models.Order{order})

	assert.Equal(t,
		"Order created, order ID: 1, total: ¥7997.00\n"+
			"Order 1 paid successfully!\n"+
			"Orders: 1\n"+
			"#1 paid ¥7997.00\n",
		buf.String())
}

func TestReporter_Errors(t *testing.T) {
	tests := []struct {
		err  error
		ref  int64
		want string
	}{
		{models.ErrInvalidQuantity, 0, "Quantity must be greater than 0\n"},
		{fmt.Errorf("%w: Laptop requested=31 available=30", models.ErrInsufficientStock), 2,
			"Sorry, insufficient stock: Laptop requested=31 available=30\n"},
		{models.ErrProductNotFound, 9, "Product 9 not found\n"},
		{models.ErrOrderNotFound, 3, "Order 3 not found\n"},
		{fmt.Errorf("%w: 1", models.ErrAlreadyPaid), 1, "Order 1 has already been paid\n"},
		{models.ErrEmptyCart, 0, "Cart is empty, cannot create order\n"},
		{models.ErrAuthenticationFailed, 0, "Incorrect username or password, login failed\n"},
		{models.ErrNotAuthenticated, 0, "Please log in first\n"},
		{assert.AnError, 0, "Unexpected error: " + assert.AnError.Error() + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf, "en").Error(tt.err, tt.ref)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestReporter_Chinese(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, "zh")

	r.Step(1, StepBrowse)
	r.Error(models.ErrNotAuthenticated, 0)
	r.OrderPaid(models.Order{ID: 1})

	assert.Equal(t, "--- 1. 用户浏览商品列表 ---\n请先登录\n订单1支付成功！\n", buf.String())
}

func TestReporter_UnknownLanguageFallsBack(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "not a tag!").Step(2, StepDetail)

	assert.Equal(t, "--- 2. View product details ---\n", buf.String())
}

func TestReporter_LargeTotalsKeepPrecision(t *testing.T) {
	var buf bytes.Buffer
	total := decimal.RequireFromString("12345678901234567.89")

	New(&buf, "en").OrderCreated(models.Order{ID: 2, Total: total})

	assert.Equal(t, "Order created, order ID: 2, total: ¥12345678901234567.89\n", buf.String())
}
