package util

import (
	"errors"

	"storefront/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "login_attempts_total",
		Help: "Total number of login attempts",
	}, []string{"result"})

	CartItemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_added_total",
		Help: "Total number of successful cart additions",
	})

	CartAddRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_add_rejected_total",
		Help: "Total number of rejected cart additions",
	}, []string{"reason"})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of failed order creations",
	}, []string{"reason"})

	OrdersPaidTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_paid_total",
		Help: "Total number of orders successfully paid",
	})

	PaymentRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_rejected_total",
		Help: "Total number of rejected payments",
	}, []string{"reason"})

	ProductStockLevel = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "product_stock_level",
		Help: "Live stock count per product",
	}, []string{"product_id"})

	SalesOrdersObservedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_orders_observed_total",
		Help: "Paid orders observed on the event stream",
	})

	SalesRevenueTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_revenue_total",
		Help: "Revenue of paid orders observed on the event stream",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

// ErrorReason maps a domain error to a low-cardinality metric label
func ErrorReason(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, models.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, models.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, models.ErrOrderNotFound):
		return "order_not_found"
	case errors.Is(err, models.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, models.ErrAlreadyPaid):
		return "already_paid"
	case errors.Is(err, models.ErrNotAuthenticated):
		return "not_authenticated"
	case errors.Is(err, models.ErrAuthenticationFailed):
		return "authentication_failed"
	default:
		return "error"
	}
}
