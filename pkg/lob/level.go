package lob

import "container/list"

// priceLevel holds all resting orders at one price in strict arrival order.
// Volume is the running sum of remaining quantities; it is kept in sync by
// every mutation that touches an order on this level.
type priceLevel struct {
	price  int64
	orders *list.List
	volume int64

	// neighbours in the side's price-ordered level list
	next *priceLevel
	prev *priceLevel
}

func newPriceLevel(price int64) *priceLevel {
	return &priceLevel{
		price:  price,
		orders: list.New(),
	}
}

// append adds an order to the back of the FIFO queue and records its
// resting handles for O(1) removal.
func (l *priceLevel) append(o *Order) {
	o.elem = l.orders.PushBack(o)
	o.level = l
	l.volume += o.Remaining
}

// remove unlinks an order from the queue. The caller adjusts side state if
// the level becomes empty.
func (l *priceLevel) remove(o *Order) {
	l.orders.Remove(o.elem)
	l.volume -= o.Remaining
	o.elem = nil
	o.level = nil
}

// front returns the oldest resting order, nil when empty.
func (l *priceLevel) front() *Order {
	e := l.orders.Front()
	if e == nil {
		return nil
	}
	return e.Value.(*Order)
}

func (l *priceLevel) empty() bool {
	return l.orders.Len() == 0
}
