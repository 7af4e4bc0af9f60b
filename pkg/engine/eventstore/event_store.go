package eventstore

import "github.com/joripage/lob-engine/pkg/engine/model"

type EventStore interface {
	AddEvent(ev *model.OrderEvent)
	EventsByOrderID(orderID uint64) []*model.OrderEvent
	DeleteByOrderID(orderID uint64)
}
