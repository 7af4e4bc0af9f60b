package feed

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/joripage/lob-engine/pkg/lob"
)

type MessageType string

const (
	MessageOrderAdd    MessageType = "ORDER_ADD"
	MessageOrderModify MessageType = "ORDER_MODIFY"
	MessageOrderCancel MessageType = "ORDER_CANCEL"
)

var errNotOnTick = errors.New("price is not a multiple of the tick size")

// Message is one order-flow instruction from an upstream venue feed.
// Prices travel as decimal strings ("150.25") and are converted to integer
// ticks at this boundary; the book itself never sees fractional prices.
type Message struct {
	Type      MessageType   `json:"type"`
	Symbol    string        `json:"symbol"`
	OrderID   uint64        `json:"order_id"`
	Side      lob.Side      `json:"side,omitempty"`
	OrderType lob.OrderType `json:"order_type,omitempty"`
	Price     string        `json:"price,omitempty"`
	Quantity  int64         `json:"quantity,omitempty"`
	Timestamp int64         `json:"timestamp"`
}

// PriceTicks converts the decimal price to ticks at the given scale
// (scale 2 turns "150.25" into 15025). Market orders carry no price and
// report 0.
func (m *Message) PriceTicks(scale int32) (int64, error) {
	if m.Price == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(m.Price)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", m.Price, err)
	}

	ticks := d.Shift(scale)
	if !ticks.IsInteger() {
		return 0, fmt.Errorf("price %q at scale %d: %w", m.Price, scale, errNotOnTick)
	}
	return ticks.IntPart(), nil
}
