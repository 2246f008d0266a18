// Package report renders shop outcomes as console lines.
package report

import (
	"errors"
	"io"

	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Reporter writes localized status lines to w
type Reporter struct {
	w io.Writer
	p *message.Printer
}

// New creates a reporter for a BCP 47 language tag. Unknown tags fall back
// to English.
func New(w io.Writer, lang string) *Reporter {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Reporter{w: w, p: message.NewPrinter(tag)}
}

func (r *Reporter) line(key message.Reference, args ...interface{}) {
	r.p.Fprintf(r.w, key, args...)
	io.WriteString(r.w, "\n")
}

// money renders an amount with two fixed decimals straight from the decimal
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Welcome opens a simulation run
func (r *Reporter) Welcome() {
	r.line(msgWelcome)
}

// Farewell closes a simulation run
func (r *Reporter) Farewell() {
	r.line(msgFarewell)
}

// Step announces a numbered driver step
func (r *Reporter) Step(n int, title message.Reference) {
	r.line(msgStep, n, r.p.Sprintf(title))
}

// Products lists the catalog
func (r *Reporter) Products(products []models.Product) {
	r.line(msgProductsHeader)
	for _, p := range products {
		r.line(msgProductLine, p.ID, p.Name, money(p.Price), p.Stock)
	}
}

// Product shows one product's details
func (r *Reporter) Product(p models.Product) {
	r.line(msgDetailHeader)
	r.line(msgDetailID, p.ID)
	r.line(msgDetailName, p.Name)
	r.line(msgDetailPrice, money(p.Price))
	r.line(msgDetailDesc, p.Description)
	r.line(msgDetailStock, p.Stock)
}

// Login reports a login outcome
func (r *Reporter) Login(resp *service.LoginResponse) {
	username := resp.Session.Account().Username
	if resp.Existing {
		r.line(msgLoginExisting, username)
		return
	}
	r.line(msgLoginOK, username)
}

// Logout reports the end of a session
func (r *Reporter) Logout(info models.AccountInfo) {
	r.line(msgLogout, info.Username)
}

// ItemAdded reports a cart addition. entry is the resulting cart entry; a
// quantity above requested means it merged into an existing line.
func (r *Reporter) ItemAdded(entry models.LineItem, requested int) {
	if entry.Quantity != requested {
		r.line(msgItemMerged, entry.Product.Name, entry.Quantity)
		return
	}
	r.line(msgItemAdded, entry.Product.Name, entry.Quantity)
}

// Cart shows the cart lines and total
func (r *Reporter) Cart(view *service.CartView) {
	if view.IsEmpty() {
		r.line(msgCartEmpty)
		return
	}

	r.line(msgCartHeader)
	for i, item := range view.Items {
		r.line(msgCartLine, i+1, item.Product.Name, money(item.Product.Price), item.Quantity, money(item.Subtotal()))
	}
	r.line(msgCartTotal, money(view.Total))
}

// OrderCreated reports a new pending order
func (r *Reporter) OrderCreated(order models.Order) {
	r.line(msgOrderCreated, order.ID, money(order.Total))
}

// OrderPaid reports a successful payment
func (r *Reporter) OrderPaid(order models.Order) {
	r.line(msgOrderPaid, order.ID)
}

// Orders lists an account's order history
func (r *Reporter) Orders(orders []models.Order) {
	r.line(msgOrders, len(orders))
	for _, o := range orders {
		r.line(msgOrderLine, o.ID, string(o.Status), money(o.Total))
	}
}

// Error reports a failed operation. ref is the product or order id the
// operation targeted, used by not-found and already-paid lines.
func (r *Reporter) Error(err error, ref int64) {
	switch {
	case errors.Is(err, models.ErrInvalidQuantity):
		r.line(msgInvalidQuantity)
	case errors.Is(err, models.ErrInsufficientStock):
		r.line(msgInsufficient, err)
	case errors.Is(err, models.ErrProductNotFound):
		r.line(msgProductNotFound, ref)
	case errors.Is(err, models.ErrOrderNotFound):
		r.line(msgOrderNotFound, ref)
	case errors.Is(err, models.ErrAlreadyPaid):
		r.line(msgAlreadyPaid, ref)
	case errors.Is(err, models.ErrEmptyCart):
		r.line(msgEmptyCart)
	case errors.Is(err, models.ErrAuthenticationFailed):
		r.line(msgAuthFailed)
	case errors.Is(err, models.ErrNotAuthenticated):
		r.line(msgNotAuthenticated)
	default:
		r.line(msgUnexpected, err)
	}
}
