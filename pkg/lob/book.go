package lob

import (
	"sort"
	"sync"
)

// OrderBook is a single-symbol continuous limit order book with price-time
// priority matching. All mutating operations are serialized by one exclusive
// lock; reads take the shared lock and observe a consistent instant of the
// book. Matching never blocks on I/O and always terminates, bounded by the
// number of orders it touches.
type OrderBook struct {
	symbol string

	bids *bookSide
	asks *bookSide

	// resting orders only; removed on fill or cancel
	restingByID map[uint64]*Order
	// every order ever accepted, terminal ones included
	ordersByID map[uint64]*Order

	tradeSeq uint64
	// highest caller-supplied timestamp seen, used when a modify refreshes
	// an order's time priority
	clock int64

	hub notifyHub
	mu  sync.RWMutex
}

func NewOrderBook(symbol string) *OrderBook {
	return &OrderBook{
		symbol:      symbol,
		bids:        newBookSide(BUY),
		asks:        newBookSide(SELL),
		restingByID: make(map[uint64]*Order),
		ordersByID:  make(map[uint64]*Order),
	}
}

func (b *OrderBook) Symbol() string {
	return b.symbol
}

// RegisterTradeCallback adds a trade observer. Registration order is
// delivery order.
func (b *OrderBook) RegisterTradeCallback(fn TradeCallback) {
	b.hub.registerTrade(fn)
}

// RegisterTopOfBookCallback adds a top-of-book observer.
func (b *OrderBook) RegisterTopOfBookCallback(fn TopOfBookCallback) {
	b.hub.registerTopOfBook(fn)
}

// Submit matches the order against the opposite side and rests any limit
// remainder. It returns the trades generated, in execution order. A market
// remainder never rests: it is canceled when the opposite side runs out.
// The order must not be mutated by the caller afterwards.
func (b *OrderBook) Submit(o *Order) ([]Trade, error) {
	if o.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if o.Type == LIMIT && o.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if o.Symbol != b.symbol {
		return nil, ErrSymbolMismatch
	}

	b.mu.Lock()
	if _, ok := b.ordersByID[o.ID]; ok {
		b.mu.Unlock()
		return nil, ErrDuplicateOrder
	}

	o.Remaining = o.Quantity
	o.Status = StatusNew
	if o.Timestamp > b.clock {
		b.clock = o.Timestamp
	}
	b.ordersByID[o.ID] = o

	before := b.topLocked()
	trades := b.matchLocked(o)

	if o.Remaining > 0 {
		if o.Type == LIMIT {
			b.sideFor(o.Side).add(o)
			b.restingByID[o.ID] = o
		} else {
			// liquidity exhausted, market remainder is discarded
			o.Status = StatusCanceled
		}
	}

	ev := bookEvent{trades: trades}
	if after := b.topLocked(); after != before {
		ev.top = &after
	}
	b.hub.enqueue(ev)
	b.mu.Unlock()

	b.hub.drain()
	return trades, nil
}

// Cancel removes a resting order. Orders already filled or canceled are no
// longer resting and report ErrOrderNotFound.
func (b *OrderBook) Cancel(orderID uint64) error {
	b.mu.Lock()
	o, ok := b.restingByID[orderID]
	if !ok {
		b.mu.Unlock()
		return ErrOrderNotFound
	}

	before := b.topLocked()
	b.sideFor(o.Side).remove(o)
	delete(b.restingByID, orderID)
	o.Status = StatusCanceled

	var ev bookEvent
	if after := b.topLocked(); after != before {
		ev.top = &after
	}
	b.hub.enqueue(ev)
	b.mu.Unlock()

	b.hub.drain()
	return nil
}

// Modify changes a resting order's price and/or quantity. A price change or
// a quantity increase loses time priority: the order moves to the tail of
// the target level with a refreshed timestamp. A pure quantity decrease at
// the same price keeps the order's queue position. Modify never matches;
// callers wanting an immediate re-match cancel and resubmit.
func (b *OrderBook) Modify(orderID uint64, newPrice, newQuantity int64) error {
	if newQuantity <= 0 {
		return ErrInvalidQuantity
	}
	if newPrice <= 0 {
		return ErrInvalidPrice
	}

	b.mu.Lock()
	o, ok := b.restingByID[orderID]
	if !ok {
		b.mu.Unlock()
		return ErrOrderNotFound
	}

	before := b.topLocked()

	if newPrice == o.Price && newQuantity < o.Remaining {
		// in-place shrink, queue position preserved
		o.level.volume -= o.Remaining - newQuantity
		o.Remaining = newQuantity
		o.Quantity = newQuantity
	} else {
		side := b.sideFor(o.Side)
		side.remove(o)
		o.Price = newPrice
		o.Quantity = newQuantity
		o.Remaining = newQuantity
		o.Timestamp = b.clock
		side.add(o)
	}

	var ev bookEvent
	if after := b.topLocked(); after != before {
		ev.top = &after
	}
	b.hub.enqueue(ev)
	b.mu.Unlock()

	b.hub.drain()
	return nil
}

// GetOrder returns a copy of any order the book has accepted, terminal ones
// included.
func (b *OrderBook) GetOrder(orderID uint64) (Order, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	o, ok := b.ordersByID[orderID]
	if !ok {
		return Order{}, ErrOrderNotFound
	}
	return o.snapshot(), nil
}

// GetAllOrders returns copies of every order ever accepted, sorted by id.
func (b *OrderBook) GetAllOrders() []Order {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Order, 0, len(b.ordersByID))
	for _, o := range b.ordersByID {
		out = append(out, o.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TopOfBook returns the current best bid and ask.
func (b *OrderBook) TopOfBook() TopOfBook {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.topLocked()
}

// Clear drops every resting order and the retained order history.
func (b *OrderBook) Clear() {
	b.mu.Lock()
	before := b.topLocked()

	b.bids = newBookSide(BUY)
	b.asks = newBookSide(SELL)
	b.restingByID = make(map[uint64]*Order)
	b.ordersByID = make(map[uint64]*Order)

	var ev bookEvent
	if after := b.topLocked(); after != before {
		ev.top = &after
	}
	b.hub.enqueue(ev)
	b.mu.Unlock()

	b.hub.drain()
}

// matchLocked runs the continuous matching loop for an incoming order.
// Executions happen at the resting order's price, oldest order first.
func (b *OrderBook) matchLocked(o *Order) []Trade {
	opposite := b.sideFor(o.Side.Opposite())

	var trades []Trade
	for o.Remaining > 0 {
		best := opposite.bestLevel()
		if best == nil || !crosses(o, best.price) {
			break
		}

		maker := best.front()
		qty := min(o.Remaining, maker.Remaining)

		b.tradeSeq++
		trades = append(trades, Trade{
			ID:           b.tradeSeq,
			Symbol:       b.symbol,
			Price:        maker.Price,
			Quantity:     qty,
			MakerOrderID: maker.ID,
			TakerOrderID: o.ID,
			TakerSide:    o.Side,
			Timestamp:    o.Timestamp,
		})

		best.volume -= qty
		maker.fill(qty)
		o.fill(qty)

		if maker.Remaining == 0 {
			opposite.remove(maker)
			delete(b.restingByID, maker.ID)
		}
	}
	return trades
}

// crosses reports whether the incoming order can trade at the opposite
// side's price. A market order crosses any non-empty level.
func crosses(o *Order, oppositePrice int64) bool {
	if o.Type == MARKET {
		return true
	}
	if o.Side == BUY {
		return oppositePrice <= o.Price
	}
	return oppositePrice >= o.Price
}

func (b *OrderBook) sideFor(side Side) *bookSide {
	if side == BUY {
		return b.bids
	}
	return b.asks
}

func (b *OrderBook) topLocked() TopOfBook {
	top := TopOfBook{Symbol: b.symbol}
	if best := b.bids.bestLevel(); best != nil {
		top.BidPrice = best.price
		top.BidQuantity = best.volume
	}
	if best := b.asks.bestLevel(); best != nil {
		top.AskPrice = best.price
		top.AskQuantity = best.volume
	}
	return top
}
