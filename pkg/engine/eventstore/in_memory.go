package eventstore

import (
	"sync"

	"github.com/joripage/lob-engine/pkg/engine/model"
)

type InMemoryEventStore struct {
	mu     sync.RWMutex
	events map[uint64][]*model.OrderEvent
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events: make(map[uint64][]*model.OrderEvent),
	}
}

func (s *InMemoryEventStore) AddEvent(ev *model.OrderEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[ev.OrderID] = append(s.events[ev.OrderID], ev)
}

func (s *InMemoryEventStore) EventsByOrderID(orderID uint64) []*model.OrderEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]*model.OrderEvent(nil), s.events[orderID]...)
}

// DeleteByOrderID drops the trail of a finished order.
func (s *InMemoryEventStore) DeleteByOrderID(orderID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.events, orderID)
}
