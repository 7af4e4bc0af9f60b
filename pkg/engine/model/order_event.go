package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/joripage/lob-engine/pkg/lob"
)

type ExecType string

const (
	ExecTypeNew      ExecType = "New"
	ExecTypeTrade    ExecType = "Trade"
	ExecTypeCanceled ExecType = "Canceled"
	ExecTypeReplaced ExecType = "Replaced"
)

// OrderEvent is one entry of an order's audit trail: acceptance, execution,
// cancel or replace. Events are append-only.
type OrderEvent struct {
	EventID        string   `gorm:"primaryKey" json:"event_id"`
	OrderID        uint64   `json:"order_id"`
	CounterOrderID uint64   `json:"counter_order_id,omitempty"`
	Symbol         string   `json:"symbol"`
	ExecType       ExecType `json:"exec_type"`
	Side           string   `json:"side"`
	Price          int64    `json:"price"`
	Quantity       int64    `json:"quantity"`
	Remaining      int64    `json:"remaining"`
	Status         string   `json:"status"`
	Timestamp      int64    `json:"timestamp"`

	CreatedAt time.Time `json:"created_at"`
}

// NewOrderEvent snapshots an order after a state transition.
func NewOrderEvent(o lob.Order, execType ExecType, now time.Time) *OrderEvent {
	return &OrderEvent{
		EventID:   uuid.New().String(),
		OrderID:   o.ID,
		Symbol:    o.Symbol,
		ExecType:  execType,
		Side:      string(o.Side),
		Price:     o.Price,
		Quantity:  o.Quantity,
		Remaining: o.Remaining,
		Status:    string(o.Status),
		Timestamp: o.Timestamp,
		CreatedAt: now,
	}
}

// NewTradeEvent records one execution from the taker's perspective.
func NewTradeEvent(tr lob.Trade, now time.Time) *OrderEvent {
	return &OrderEvent{
		EventID:        uuid.New().String(),
		OrderID:        tr.TakerOrderID,
		CounterOrderID: tr.MakerOrderID,
		Symbol:         tr.Symbol,
		ExecType:       ExecTypeTrade,
		Side:           string(tr.TakerSide),
		Price:          tr.Price,
		Quantity:       tr.Quantity,
		Timestamp:      tr.Timestamp,
		CreatedAt:      now,
	}
}
