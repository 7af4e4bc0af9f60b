package feed

import (
	"context"
	"sync"

	"github.com/gammazero/deque"
	"go.uber.org/zap"
)

// Handler consumes feed messages. Implementations must be safe for calls
// from the feed's dispatch goroutine.
type Handler interface {
	HandleMessage(ctx context.Context, msg *Message) error
}

// Feed buffers incoming order-flow messages and dispatches them, in arrival
// order, to every registered handler on a single goroutine. Producers never
// block on handler work.
type Feed struct {
	mu         sync.Mutex
	cond       *sync.Cond
	queue      deque.Deque[*Message]
	handlers   []Handler
	subscribed map[string]struct{}
	running    bool
	done       chan struct{}
}

func NewFeed() *Feed {
	f := &Feed{
		subscribed: make(map[string]struct{}),
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Subscribe narrows dispatch to the given symbol. With no subscriptions
// every symbol is dispatched.
func (f *Feed) Subscribe(symbol string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribed[symbol] = struct{}{}
}

func (f *Feed) Unsubscribe(symbol string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.subscribed, symbol)
}

func (f *Feed) RegisterHandler(h Handler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers = append(f.handlers, h)
}

// Start launches the dispatch goroutine. Starting a running feed is a
// no-op.
func (f *Feed) Start(ctx context.Context) {
	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		return
	}
	f.running = true
	f.done = make(chan struct{})
	done := f.done
	f.mu.Unlock()

	go f.dispatchLoop(ctx, done)
}

// Stop drains the remaining queue and waits for the dispatch goroutine to
// exit.
func (f *Feed) Stop() {
	f.mu.Lock()
	if !f.running {
		f.mu.Unlock()
		return
	}
	f.running = false
	done := f.done
	f.mu.Unlock()

	f.cond.Broadcast()
	<-done
}

// Publish queues a message for dispatch.
func (f *Feed) Publish(msg *Message) {
	f.mu.Lock()
	f.queue.PushBack(msg)
	f.mu.Unlock()
	f.cond.Signal()
}

func (f *Feed) dispatchLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		f.mu.Lock()
		for f.queue.Len() == 0 && f.running {
			f.cond.Wait()
		}
		if f.queue.Len() == 0 && !f.running {
			f.mu.Unlock()
			return
		}

		msg := f.queue.PopFront()
		if !f.wantsLocked(msg.Symbol) {
			f.mu.Unlock()
			continue
		}
		handlers := append([]Handler(nil), f.handlers...)
		f.mu.Unlock()

		for _, h := range handlers {
			if err := h.HandleMessage(ctx, msg); err != nil {
				zap.S().Warnw("feed handler error",
					"type", msg.Type, "symbol", msg.Symbol, "order_id", msg.OrderID, "err", err)
			}
		}
	}
}

func (f *Feed) wantsLocked(symbol string) bool {
	if len(f.subscribed) == 0 {
		return true
	}
	_, ok := f.subscribed[symbol]
	return ok
}
