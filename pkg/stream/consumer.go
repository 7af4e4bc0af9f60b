package stream

import (
	"context"
	"errors"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type ConsumerConfig struct {
	Brokers []string `yaml:"brokers"`
	GroupID string   `yaml:"group_id"`
	Topic   string   `yaml:"topic"`
}

// Consumer reads a topic inside a consumer group and hands each message
// value to the handler. Offsets commit only after the handler succeeds.
type Consumer struct {
	r *kafka.Reader
}

func NewConsumer(cfg ConsumerConfig) *Consumer {
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     cfg.Brokers,
			GroupID:     cfg.GroupID,
			Topic:       cfg.Topic,
			StartOffset: kafka.FirstOffset,
			MaxWait:     500 * time.Millisecond,
			MinBytes:    1,
			MaxBytes:    10 << 20,
		}),
	}
}

func (c *Consumer) Run(ctx context.Context, handler func(ctx context.Context, value []byte) error) error {
	for {
		m, err := c.r.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			zap.S().Warnw("fetch message fail", "topic", c.r.Config().Topic, "err", err)
			time.Sleep(200 * time.Millisecond)
			continue
		}

		if err := handler(ctx, m.Value); err != nil {
			zap.S().Warnw("handle message fail", "topic", m.Topic, "offset", m.Offset, "err", err)
			continue
		}
		if err := c.r.CommitMessages(ctx, m); err != nil {
			zap.S().Warnw("commit fail", "topic", m.Topic, "offset", m.Offset, "err", err)
		}
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.r == nil {
		return nil
	}
	return c.r.Close()
}
