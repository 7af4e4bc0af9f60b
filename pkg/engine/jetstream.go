package engine

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"

	"github.com/joripage/lob-engine/pkg/engine/model"
)

type JetStreamConfig struct {
	URL     string `yaml:"url"`
	Stream  string `yaml:"stream"`
	Subject string `yaml:"subject"`
}

// JetStreamPublisher ships order events to a JetStream subject. The stream
// is created on connect if it does not exist yet.
type JetStreamPublisher struct {
	nc      *nats.Conn
	js      nats.JetStreamContext
	subject string
}

func NewJetStreamPublisher(cfg JetStreamConfig) (*JetStreamPublisher, error) {
	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	if _, err := js.AddStream(&nats.StreamConfig{
		Name:     cfg.Stream,
		Subjects: []string{cfg.Stream + ".*"},
	}); err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		nc.Close()
		return nil, err
	}

	return &JetStreamPublisher{
		nc:      nc,
		js:      js,
		subject: cfg.Subject,
	}, nil
}

func (p *JetStreamPublisher) PublishOrderEvent(ctx context.Context, ev *model.OrderEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(p.subject, data, nats.Context(ctx))
	return err
}

func (p *JetStreamPublisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	p.nc.Close()
}
