package feed

import (
	"context"
	"fmt"

	"github.com/joripage/lob-engine/pkg/lob"
)

// BookHandler applies feed messages to per-symbol order books.
type BookHandler struct {
	books *lob.BookManager
	scale int32
}

// NewBookHandler builds a handler converting feed prices to ticks at the
// given decimal scale (2 for prices in cents).
func NewBookHandler(books *lob.BookManager, scale int32) *BookHandler {
	return &BookHandler{
		books: books,
		scale: scale,
	}
}

func (h *BookHandler) HandleMessage(ctx context.Context, msg *Message) error {
	switch msg.Type {
	case MessageOrderAdd:
		price, err := msg.PriceTicks(h.scale)
		if err != nil {
			return err
		}
		order := lob.NewOrder(msg.OrderID, msg.Symbol, msg.Side, msg.OrderType, price, msg.Quantity, msg.Timestamp)
		_, err = h.books.Submit(order)
		return err

	case MessageOrderModify:
		price, err := msg.PriceTicks(h.scale)
		if err != nil {
			return err
		}
		return h.books.Modify(msg.Symbol, msg.OrderID, price, msg.Quantity)

	case MessageOrderCancel:
		return h.books.Cancel(msg.Symbol, msg.OrderID)

	default:
		return fmt.Errorf("unknown feed message type %q", msg.Type)
	}
}
