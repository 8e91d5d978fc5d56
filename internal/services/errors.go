package services

import (
	"errors"
	"fmt"
)

var (
	ErrCartNotFound       = errors.New("cart not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidOrder       = errors.New("invalid order")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoFiles            = errors.New("no files provided")
	ErrEmptyReply         = errors.New("reply message is empty")
)

// StockError names the product that could not satisfy a requested quantity.
type StockError struct {
	ProductID string
	Product   string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested: %d, available: %d)", e.Product, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
