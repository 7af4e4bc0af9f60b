package lob

import (
	"sync"

	"github.com/gammazero/deque"
)

// TradeCallback receives every trade in execution order.
type TradeCallback func(Trade)

// TopOfBookCallback receives a snapshot whenever the best bid or ask
// (price or aggregated quantity) changed.
type TopOfBookCallback func(TopOfBook)

// TopOfBook is the best bid and ask. A side with no liquidity reports zero
// price and zero quantity.
type TopOfBook struct {
	Symbol      string `json:"symbol"`
	BidPrice    int64  `json:"bid_price"`
	BidQuantity int64  `json:"bid_quantity"`
	AskPrice    int64  `json:"ask_price"`
	AskQuantity int64  `json:"ask_quantity"`
}

// bookEvent is everything one mutating operation produced: its trades, in
// execution order, and the top-of-book snapshot when the top changed.
type bookEvent struct {
	trades []Trade
	top    *TopOfBook
}

// notifyHub fans out book events to registered callbacks. Events are
// enqueued while the book lock is held, so queue order is mutation order;
// delivery happens after the lock is released. The first caller that finds
// the hub idle drains the whole queue, which defers events produced by a
// callback re-entering the book instead of deadlocking on it.
type notifyHub struct {
	mu       sync.Mutex
	tradeFns []TradeCallback
	topFns   []TopOfBookCallback
	queue    deque.Deque[bookEvent]
	draining bool
}

func (h *notifyHub) registerTrade(fn TradeCallback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tradeFns = append(h.tradeFns, fn)
}

func (h *notifyHub) registerTopOfBook(fn TopOfBookCallback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.topFns = append(h.topFns, fn)
}

func (h *notifyHub) enqueue(ev bookEvent) {
	if len(ev.trades) == 0 && ev.top == nil {
		return
	}
	h.mu.Lock()
	h.queue.PushBack(ev)
	h.mu.Unlock()
}

func (h *notifyHub) drain() {
	h.mu.Lock()
	if h.draining {
		h.mu.Unlock()
		return
	}
	h.draining = true

	for h.queue.Len() > 0 {
		ev := h.queue.PopFront()
		tradeFns := append([]TradeCallback(nil), h.tradeFns...)
		topFns := append([]TopOfBookCallback(nil), h.topFns...)
		h.mu.Unlock()

		for _, tr := range ev.trades {
			for _, fn := range tradeFns {
				invokeTrade(fn, tr)
			}
		}
		if ev.top != nil {
			for _, fn := range topFns {
				invokeTopOfBook(fn, *ev.top)
			}
		}

		h.mu.Lock()
	}

	h.draining = false
	h.mu.Unlock()
}

// A panicking callback must not poison the book or block delivery to the
// callbacks after it.
func invokeTrade(fn TradeCallback, tr Trade) {
	defer func() { _ = recover() }()
	fn(tr)
}

func invokeTopOfBook(fn TopOfBookCallback, top TopOfBook) {
	defer func() { _ = recover() }()
	fn(top)
}
