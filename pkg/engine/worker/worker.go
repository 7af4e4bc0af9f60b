package worker

import (
	"context"
	"encoding/json"

	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/joripage/lob-engine/pkg/engine/model"
	"github.com/joripage/lob-engine/pkg/engine/repo"
	"github.com/joripage/lob-engine/pkg/stream"
)

// Worker drains the durable event feeds into Postgres: order events from
// JetStream, trades from Kafka.
type Worker struct {
	orderEvent repo.IOrderEvent
	trade      repo.ITrade
}

func NewWorker(repo repo.IRepo) *Worker {
	return &Worker{
		orderEvent: repo.OrderEvent(),
		trade:      repo.Trade(),
	}
}

func (w *Worker) StartEventConsumer(ctx context.Context, js nats.JetStreamContext, subject, durable string) error {
	cons, err := js.PullSubscribe(subject, durable)
	if err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		msgs, err := cons.Fetch(10, nats.Context(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if err != nats.ErrTimeout {
				zap.S().Warnw("fetch fail", "subject", subject, "err", err)
			}
			continue
		}

		for _, msg := range msgs {
			var ev model.OrderEvent
			if err := json.Unmarshal(msg.Data, &ev); err != nil {
				zap.S().Warnw("unmarshal order event fail", "err", err)
				_ = msg.Ack()
				continue
			}
			if _, err := w.orderEvent.Create(ctx, &ev); err != nil {
				zap.S().Warnw("insert order event fail", "event_id", ev.EventID, "err", err)
				continue
			}
			_ = msg.Ack()
		}
	}
}

// HandleTradeMessage is the Kafka consumer handler for the trade topic.
func (w *Worker) HandleTradeMessage(ctx context.Context, value []byte) error {
	var ev stream.TradeEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return err
	}

	record := &model.TradeRecord{
		ID:           ev.TradeID,
		Symbol:       ev.Symbol,
		Price:        ev.Price,
		Quantity:     ev.Quantity,
		MakerOrderID: ev.MakerOrderID,
		TakerOrderID: ev.TakerOrderID,
		TakerSide:    ev.TakerSide,
		Timestamp:    ev.Timestamp,
	}
	_, err := w.trade.Create(ctx, record)
	return err
}
