// Package simulation runs the scripted shopping session against a shop.
package simulation

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/report"
	"storefront/internal/service"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// CartAdd is one scripted cart addition
type CartAdd struct {
	ProductID int64
	Quantity  int
}

// Script describes a shopping session
type Script struct {
	DetailProductID int64
	Username        string
	Password        string
	Adds            []CartAdd
}

// DefaultScript browses, inspects product 1, logs in as user1 and buys one
// product 1 and two product 3.
func DefaultScript() Script {
	return Script{
		DetailProductID: 1,
		Username:        "user1",
		Password:        "password1",
		Adds: []CartAdd{
			{ProductID: 1, Quantity: 1},
			{ProductID: 3, Quantity: 2},
		},
	}
}

// Result records what a run achieved
type Result struct {
	Session *service.Session
	Cart    *service.CartView
	Order   *models.Order
	Errors  []error
}

// Paid reports whether the run ended with a paid order
func (r *Result) Paid() bool {
	return r.Order != nil && r.Order.IsPaid()
}

// Driver executes a script step by step and reports each outcome
type Driver struct {
	shop     *service.Shop
	reporter *report.Reporter
	logger   *zap.Logger
}

// NewDriver creates a new driver
func NewDriver(shop *service.Shop, reporter *report.Reporter) *Driver {
	return &Driver{
		shop:     shop,
		reporter: reporter,
		logger:   util.GetLogger(),
	}
}

func (d *Driver) fail(res *Result, err error, ref int64) {
	res.Errors = append(res.Errors, err)
	d.reporter.Error(err, ref)
}

// Run executes the script. Failed steps are reported and recorded; payment
// is skipped when no order was created.
func (d *Driver) Run(ctx context.Context, script Script) *Result {
	ctx, span := util.StartSpan(ctx, "Driver.Run")
	defer span.End()

	res := &Result{}
	d.reporter.Welcome()

	d.reporter.Step(1, report.StepBrowse)
	d.reporter.Products(d.shop.Catalog.ListProducts(ctx))

	d.reporter.Step(2, report.StepDetail)
	if p, err := d.shop.Catalog.GetProduct(ctx, script.DetailProductID); err != nil {
		d.fail(res, err, script.DetailProductID)
	} else {
		d.reporter.Product(p)
	}

	d.reporter.Step(3, report.StepLogin)
	if resp, err := d.shop.Sessions.Login(ctx, script.Username, script.Password); err != nil {
		d.fail(res, err, 0)
	} else {
		res.Session = resp.Session
		d.reporter.Login(resp)
	}

	d.reporter.Step(4, report.StepAddToCart)
	for _, add := range script.Adds {
		entry, err := d.shop.Cart.AddItem(ctx, res.Session, add.ProductID, add.Quantity)
		if err != nil {
			d.fail(res, err, add.ProductID)
			continue
		}
		d.reporter.ItemAdded(entry, add.Quantity)
	}
	if view, err := d.shop.Cart.ViewCart(ctx, res.Session); err != nil {
		d.fail(res, err, 0)
	} else {
		d.reporter.Cart(view)
	}

	d.reporter.Step(5, report.StepCreateOrder)
	order, err := d.shop.Orders.CreateOrder(ctx, res.Session)
	if err != nil {
		d.fail(res, err, 0)
	} else {
		res.Order = &order
		d.reporter.OrderCreated(order)

		d.reporter.Step(6, report.StepPay)
		paid, err := d.shop.Payments.PayOrder(ctx, res.Session, order.ID)
		if err != nil {
			d.fail(res, err, int64(order.ID))
		} else {
			res.Order = &paid
			d.reporter.OrderPaid(paid)
		}
	}

	if view, err := d.shop.Cart.ViewCart(ctx, res.Session); err == nil {
		res.Cart = view
	}

	d.logger.Info("Simulation finished",
		zap.Bool("paid", res.Paid()),
		zap.Int("errors", len(res.Errors)))
	d.reporter.Farewell()
	return res
}
