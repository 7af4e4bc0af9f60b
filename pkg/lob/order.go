package lob

import "container/list"

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

// Opposite returns the counter side used during matching.
func (s Side) Opposite() Side {
	if s == BUY {
		return SELL
	}
	return BUY
}

type OrderType string

const (
	LIMIT  OrderType = "LIMIT"
	MARKET OrderType = "MARKET"
)

type OrderStatus string

const (
	StatusNew             OrderStatus = "NEW"
	StatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	StatusFilled          OrderStatus = "FILLED"
	StatusCanceled        OrderStatus = "CANCELED"
)

// IsTerminal reports whether the status is final. A terminal order never
// rests in the book and can no longer be canceled or modified.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusFilled || s == StatusCanceled
}

// Order is a single order known to the book. Price and quantity are integers
// in the smallest reportable unit (ticks and shares); any display conversion
// is the caller's concern. Timestamp is a caller-supplied monotonic value
// used only as the time-priority tie-break within a price level.
type Order struct {
	ID        uint64
	Symbol    string
	Side      Side
	Type      OrderType
	Price     int64
	Quantity  int64
	Remaining int64
	Status    OrderStatus
	Timestamp int64

	// resting location, nil when the order is not in the book
	level *priceLevel
	elem  *list.Element
}

// NewOrder builds a NEW order with full remaining quantity.
func NewOrder(id uint64, symbol string, side Side, typ OrderType, price, qty, timestamp int64) *Order {
	return &Order{
		ID:        id,
		Symbol:    symbol,
		Side:      side,
		Type:      typ,
		Price:     price,
		Quantity:  qty,
		Remaining: qty,
		Status:    StatusNew,
		Timestamp: timestamp,
	}
}

// fill decrements the remaining quantity and advances the status.
func (o *Order) fill(qty int64) {
	o.Remaining -= qty
	if o.Remaining == 0 {
		o.Status = StatusFilled
	} else {
		o.Status = StatusPartiallyFilled
	}
}

func (o *Order) resting() bool {
	return o.level != nil
}

// snapshot returns a caller-safe copy without the resting handles.
func (o *Order) snapshot() Order {
	c := *o
	c.level = nil
	c.elem = nil
	return c
}
