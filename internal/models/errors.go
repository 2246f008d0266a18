package models

import "errors"

// Domain errors. Callers classify them with errors.Is.
var (
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrProductNotFound      = errors.New("product not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrAuthenticationFailed = errors.New("invalid username or password")
	ErrNotAuthenticated     = errors.New("not logged in")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrAlreadyPaid          = errors.New("order already paid")
)
