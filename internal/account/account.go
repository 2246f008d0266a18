package account

import (
	"sync"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Account is a seeded user with its own cart and order ledger. All cart and
// ledger access goes through the account lock.
type Account struct {
	ID       int64
	Username string

	passwordHash []byte

	mu     sync.Mutex
	cart   *Cart
	ledger *Ledger
}

func newAccount(id int64, username string, passwordHash []byte, strictMerge bool) *Account {
	return &Account{
		ID:           id,
		Username:     username,
		passwordHash: passwordHash,
		cart:         NewCart(strictMerge),
		ledger:       NewLedger(id),
	}
}

// Info returns the public view of the account
func (a *Account) Info() models.AccountInfo {
	return models.AccountInfo{ID: a.ID, Username: a.Username}
}

// CheckPassword reports whether credential matches exactly
func (a *Account) CheckPassword(credential string) bool {
	return bcrypt.CompareHashAndPassword(a.passwordHash, []byte(credential)) == nil
}

// AddToCart adds quantity of product to the cart
func (a *Account) AddToCart(product *models.Product, quantity int, stock StockValidator) (models.LineItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.cart.AddItem(product, quantity, stock)
}

// Cart returns the cart entries and their total
func (a *Account) Cart() ([]models.LineItem, decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.cart.Entries(), a.cart.Total()
}

// CartQuantity returns the number of units in the cart
func (a *Account) CartQuantity() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.cart.Quantity()
}

// CreateOrder snapshots the cart into a pending order
func (a *Account) CreateOrder(stock StockValidator) (models.Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.ledger.CreateOrder(a.cart, stock)
}

// PayOrder pays a pending order and clears the cart
func (a *Account) PayOrder(orderID int, stock StockDeductor, strict bool) (models.Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.ledger.PayOrder(orderID, a.cart, stock, strict)
}

// Order returns a copy of one order
func (a *Account) Order(orderID int) (models.Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.ledger.Get(orderID)
}

// Orders returns copies of all orders
func (a *Account) Orders() []models.Order {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.ledger.List()
}
