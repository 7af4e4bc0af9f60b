package feed

import (
	"context"
	"testing"
	"time"

	"github.com/joripage/lob-engine/pkg/lob"
)

func TestPriceTicks(t *testing.T) {
	cases := []struct {
		price string
		scale int32
		want  int64
		ok    bool
	}{
		{"150.25", 2, 15025, true},
		{"150", 2, 15000, true},
		{"0.01", 2, 1, true},
		{"", 2, 0, true},
		{"150.255", 2, 0, false},
		{"abc", 2, 0, false},
	}

	for _, c := range cases {
		m := &Message{Price: c.price}
		got, err := m.PriceTicks(c.scale)
		if c.ok != (err == nil) {
			t.Errorf("PriceTicks(%q, %d): err=%v", c.price, c.scale, err)
			continue
		}
		if got != c.want {
			t.Errorf("PriceTicks(%q, %d) = %d, want %d", c.price, c.scale, got, c.want)
		}
	}
}

func TestFeedDrivesBook(t *testing.T) {
	books := lob.NewBookManager()
	f := NewFeed()
	f.RegisterHandler(NewBookHandler(books, 2))
	f.Start(context.Background())

	f.Publish(&Message{Type: MessageOrderAdd, Symbol: "ABC", OrderID: 1,
		Side: lob.BUY, OrderType: lob.LIMIT, Price: "150.00", Quantity: 100, Timestamp: 1})
	f.Publish(&Message{Type: MessageOrderAdd, Symbol: "ABC", OrderID: 2,
		Side: lob.SELL, OrderType: lob.LIMIT, Price: "150.00", Quantity: 40, Timestamp: 2})
	f.Publish(&Message{Type: MessageOrderCancel, Symbol: "ABC", OrderID: 1})
	f.Stop()

	book := books.Book("ABC")
	o, err := book.GetOrder(1)
	if err != nil {
		t.Fatalf("order 1: %v", err)
	}
	if o.Price != 15000 {
		t.Errorf("expected price converted to ticks, got %d", o.Price)
	}
	if o.Status != lob.StatusCanceled {
		t.Errorf("expected cancel applied after partial fill, got %s", o.Status)
	}
	if o.Remaining != 60 {
		t.Errorf("expected 60 remaining at cancel, got %d", o.Remaining)
	}
}

func TestFeedSubscriptionFilter(t *testing.T) {
	books := lob.NewBookManager()
	f := NewFeed()
	f.RegisterHandler(NewBookHandler(books, 2))
	f.Subscribe("AAA")
	f.Start(context.Background())

	f.Publish(&Message{Type: MessageOrderAdd, Symbol: "AAA", OrderID: 1,
		Side: lob.BUY, OrderType: lob.LIMIT, Price: "10.00", Quantity: 10, Timestamp: 1})
	f.Publish(&Message{Type: MessageOrderAdd, Symbol: "BBB", OrderID: 1,
		Side: lob.BUY, OrderType: lob.LIMIT, Price: "10.00", Quantity: 10, Timestamp: 1})
	f.Stop()

	if _, err := books.Book("AAA").GetOrder(1); err != nil {
		t.Errorf("subscribed symbol dropped: %v", err)
	}
	if _, err := books.Book("BBB").GetOrder(1); err == nil {
		t.Error("unsubscribed symbol was dispatched")
	}
}

func TestFeedStopIsIdempotent(t *testing.T) {
	f := NewFeed()
	f.Start(context.Background())

	done := make(chan struct{})
	go func() {
		f.Stop()
		f.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
