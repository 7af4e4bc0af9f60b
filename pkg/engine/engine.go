package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/joripage/lob-engine/pkg/engine/eventstore"
	"github.com/joripage/lob-engine/pkg/engine/model"
	"github.com/joripage/lob-engine/pkg/engine/riskrule"
	"github.com/joripage/lob-engine/pkg/lob"
)

// EventPublisher ships order events to a durable downstream, usually a
// JetStream subject drained by the persistence worker.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev *model.OrderEvent) error
}

// Engine wraps the per-symbol books with pre-trade risk checks and an
// order event audit trail.
type Engine struct {
	books     *lob.BookManager
	events    eventstore.EventStore
	rules     []riskrule.RiskRule
	publisher EventPublisher
}

func NewEngine() *Engine {
	e := &Engine{
		books:  lob.NewBookManager(),
		events: eventstore.NewInMemoryEventStore(),
	}
	e.books.RegisterTradeCallback(e.onTrade)
	return e
}

func (e *Engine) Books() *lob.BookManager { return e.books }

// Use appends a risk rule. Rules run in registration order on every submit.
func (e *Engine) Use(rule riskrule.RiskRule) {
	e.rules = append(e.rules, rule)
}

// SetEventPublisher attaches the downstream event sink. Publish failures
// are logged and dropped so persistence lag never blocks matching.
func (e *Engine) SetEventPublisher(p EventPublisher) {
	e.publisher = p
}

func (e *Engine) Submit(ctx context.Context, o *lob.Order) ([]lob.Trade, error) {
	for _, rule := range e.rules {
		if err := rule.Check(o); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRiskRejected, rule.Name(), err)
		}
	}

	trades, err := e.books.Submit(o)
	if err != nil {
		return nil, err
	}
	e.record(ctx, model.NewOrderEvent(*o, model.ExecTypeNew, time.Now()))
	return trades, nil
}

func (e *Engine) Cancel(ctx context.Context, symbol string, orderID uint64) error {
	if err := e.books.Cancel(symbol, orderID); err != nil {
		return err
	}
	o, err := e.books.GetOrder(symbol, orderID)
	if err != nil {
		return err
	}
	e.record(ctx, model.NewOrderEvent(o, model.ExecTypeCanceled, time.Now()))
	return nil
}

func (e *Engine) Modify(ctx context.Context, symbol string, orderID uint64, newPrice, newQuantity int64) error {
	if err := e.books.Modify(symbol, orderID, newPrice, newQuantity); err != nil {
		return err
	}
	o, err := e.books.GetOrder(symbol, orderID)
	if err != nil {
		return err
	}
	e.record(ctx, model.NewOrderEvent(o, model.ExecTypeReplaced, time.Now()))
	return nil
}

func (e *Engine) GetOrder(symbol string, orderID uint64) (lob.Order, error) {
	return e.books.GetOrder(symbol, orderID)
}

func (e *Engine) EventsByOrderID(orderID uint64) []*model.OrderEvent {
	return e.events.EventsByOrderID(orderID)
}

func (e *Engine) onTrade(tr lob.Trade) {
	e.record(context.Background(), model.NewTradeEvent(tr, time.Now()))
}

func (e *Engine) record(ctx context.Context, ev *model.OrderEvent) {
	e.events.AddEvent(ev)
	if e.publisher == nil {
		return
	}
	if err := e.publisher.PublishOrderEvent(ctx, ev); err != nil {
		zap.S().Warnw("publish order event fail",
			"order_id", ev.OrderID, "exec_type", ev.ExecType, "err", err)
	}
}
