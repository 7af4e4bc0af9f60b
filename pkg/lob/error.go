package lob

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidQuantity = errors.New("invalid order quantity")
	ErrInvalidPrice    = errors.New("invalid order price")
	ErrDuplicateOrder  = errors.New("duplicate order id")
	ErrSymbolMismatch  = errors.New("order symbol does not match book symbol")
)
