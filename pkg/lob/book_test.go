package lob

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func limit(id uint64, side Side, price, qty, ts int64) *Order {
	return NewOrder(id, "ABC", side, LIMIT, price, qty, ts)
}

func market(id uint64, side Side, qty, ts int64) *Order {
	return NewOrder(id, "ABC", side, MARKET, 0, qty, ts)
}

func TestSimpleMatch(t *testing.T) {
	ob := NewOrderBook("ABC")

	if _, err := ob.Submit(limit(1, SELL, 9900, 10, 1)); err != nil {
		t.Fatalf("submit sell: %v", err)
	}
	trades, err := ob.Submit(limit(2, BUY, 10000, 10, 2))
	if err != nil {
		t.Fatalf("submit buy: %v", err)
	}

	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	tr := trades[0]
	if tr.MakerOrderID != 1 || tr.TakerOrderID != 2 {
		t.Errorf("incorrect order ids in trade: %+v", tr)
	}
	if tr.Price != 9900 || tr.Quantity != 10 {
		t.Errorf("expected 10@9900 at maker price, got %+v", tr)
	}
	if tr.TakerSide != BUY {
		t.Errorf("expected taker side BUY, got %s", tr.TakerSide)
	}
}

func TestNoMatchDueToPrice(t *testing.T) {
	ob := NewOrderBook("ABC")

	ob.Submit(limit(1, SELL, 10000, 10, 1))
	trades, _ := ob.Submit(limit(2, BUY, 9800, 10, 2))
	if len(trades) != 0 {
		t.Fatalf("expected no trade, got %+v", trades)
	}

	top := ob.TopOfBook()
	if top.BidPrice != 9800 || top.AskPrice != 10000 {
		t.Errorf("both orders should rest, top=%+v", top)
	}
}

func TestPartialMatch(t *testing.T) {
	ob := NewOrderBook("ABC")

	ob.Submit(limit(1, SELL, 10000, 5, 1))
	trades, _ := ob.Submit(limit(2, BUY, 10100, 10, 2))

	if len(trades) != 1 || trades[0].Quantity != 5 {
		t.Fatalf("expected single trade of 5, got %+v", trades)
	}

	buy, err := ob.GetOrder(2)
	if err != nil {
		t.Fatalf("get buy order: %v", err)
	}
	if buy.Status != StatusPartiallyFilled || buy.Remaining != 5 {
		t.Errorf("buy should rest partially filled with 5 left, got %+v", buy)
	}
	sell, _ := ob.GetOrder(1)
	if sell.Status != StatusFilled || sell.Remaining != 0 {
		t.Errorf("sell should be filled, got %+v", sell)
	}
}

func TestTimePriorityAtSamePrice(t *testing.T) {
	ob := NewOrderBook("ABC")

	ob.Submit(limit(1, SELL, 10000, 5, 1))
	ob.Submit(limit(2, SELL, 10000, 5, 2))
	trades, _ := ob.Submit(limit(3, BUY, 10000, 10, 3))

	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0].MakerOrderID != 1 || trades[1].MakerOrderID != 2 {
		t.Errorf("expected FIFO maker order 1 then 2, got %+v", trades)
	}
}

func TestMultiLevelMatch(t *testing.T) {
	ob := NewOrderBook("ABC")

	ob.Submit(limit(1, SELL, 10100, 5, 1))
	ob.Submit(limit(2, SELL, 10200, 5, 2))
	ob.Submit(limit(3, SELL, 10300, 5, 3))
	trades, _ := ob.Submit(limit(4, BUY, 10500, 15, 4))

	if len(trades) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(trades))
	}
	if trades[0].Price != 10100 || trades[1].Price != 10200 || trades[2].Price != 10300 {
		t.Errorf("expected matching from best ask upwards, got %+v", trades)
	}
}

func TestMarketOrderRemainderCanceled(t *testing.T) {
	ob := NewOrderBook("ABC")

	ob.Submit(limit(1, SELL, 10000, 5, 1))
	trades, err := ob.Submit(market(2, BUY, 8, 2))
	if err != nil {
		t.Fatalf("submit market: %v", err)
	}

	if len(trades) != 1 || trades[0].Quantity != 5 {
		t.Fatalf("expected 5 filled, got %+v", trades)
	}

	o, _ := ob.GetOrder(2)
	if o.Status != StatusCanceled || o.Remaining != 3 {
		t.Errorf("market remainder must be canceled, never rest: %+v", o)
	}
	if top := ob.TopOfBook(); top.BidPrice != 0 || top.BidQuantity != 0 {
		t.Errorf("market order must not rest, top=%+v", top)
	}
}

func TestMarketOrderEmptyBook(t *testing.T) {
	ob := NewOrderBook("ABC")

	trades, err := ob.Submit(market(1, SELL, 10, 1))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(trades) != 0 {
		t.Fatalf("expected no trade on empty book, got %+v", trades)
	}
	o, _ := ob.GetOrder(1)
	if o.Status != StatusCanceled {
		t.Errorf("expected canceled remainder, got %s", o.Status)
	}
}

func TestNoCrossPersistsAfterSubmit(t *testing.T) {
	ob := NewOrderBook("ABC")

	for i := uint64(1); i <= 20; i++ {
		side := BUY
		price := int64(9900 + i*10)
		if i%2 == 0 {
			side = SELL
			price = int64(10100 - i*10)
		}
		ob.Submit(limit(i, side, price, 10, int64(i)))

		top := ob.TopOfBook()
		if top.BidPrice != 0 && top.AskPrice != 0 && top.BidPrice >= top.AskPrice {
			t.Fatalf("book crossed after order %d: %+v", i, top)
		}
	}
}

func TestSubmitValidation(t *testing.T) {
	ob := NewOrderBook("ABC")

	if _, err := ob.Submit(limit(1, BUY, 10000, 0, 1)); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero quantity: want ErrInvalidQuantity, got %v", err)
	}
	if _, err := ob.Submit(limit(2, BUY, -5, 10, 1)); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("negative price: want ErrInvalidPrice, got %v", err)
	}
	if _, err := ob.Submit(NewOrder(3, "XYZ", BUY, LIMIT, 10000, 10, 1)); !errors.Is(err, ErrSymbolMismatch) {
		t.Errorf("wrong symbol: want ErrSymbolMismatch, got %v", err)
	}

	ob.Submit(limit(4, BUY, 10000, 10, 1))
	if _, err := ob.Submit(limit(4, BUY, 10000, 10, 2)); !errors.Is(err, ErrDuplicateOrder) {
		t.Errorf("reused id: want ErrDuplicateOrder, got %v", err)
	}

	// a failed submit must not leave state behind
	if _, err := ob.GetOrder(1); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("rejected order should not be retained, got %v", err)
	}
}

func TestGetAllOrdersIncludesTerminal(t *testing.T) {
	ob := NewOrderBook("ABC")

	ob.Submit(limit(1, SELL, 10000, 10, 1))
	ob.Submit(limit(2, BUY, 10000, 10, 2)) // fills both
	ob.Submit(limit(3, BUY, 9900, 5, 3))
	ob.Cancel(3)

	all := ob.GetAllOrders()
	if len(all) != 3 {
		t.Fatalf("expected 3 retained orders, got %d", len(all))
	}
	if all[0].ID != 1 || all[1].ID != 2 || all[2].ID != 3 {
		t.Errorf("expected orders sorted by id, got %+v", all)
	}
	if all[0].Status != StatusFilled || all[2].Status != StatusCanceled {
		t.Errorf("terminal statuses must be retained: %+v", all)
	}
}

func TestConservation(t *testing.T) {
	ob := NewOrderBook("ABC")

	var executed int64
	ob.RegisterTradeCallback(func(tr Trade) {
		if tr.Quantity <= 0 {
			t.Errorf("trade with non-positive quantity: %+v", tr)
		}
		executed += tr.Quantity
	})

	var submitted int64
	for i := uint64(1); i <= 1000; i++ {
		side := BUY
		price := int64(9990 + i%21)
		if i%3 == 0 {
			side = SELL
		}
		qty := int64(1 + i%17)
		if _, err := ob.Submit(limit(i, side, price, qty, int64(i))); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		submitted += qty
	}

	var resting, canceled int64
	for _, o := range ob.GetAllOrders() {
		if o.Status == StatusCanceled {
			canceled += o.Remaining
		} else {
			resting += o.Remaining
		}
	}

	// each execution consumes quantity on both sides
	if resting+2*executed+canceled != submitted {
		t.Errorf("conservation violated: resting=%d executed=%d canceled=%d submitted=%d",
			resting, executed, canceled, submitted)
	}
}

func TestHighVolumeOrders(t *testing.T) {
	ob := NewOrderBook("ABC")

	trades := 0
	ob.RegisterTradeCallback(func(Trade) { trades++ })

	num := 10_000
	for i := 0; i < num; i++ {
		side := BUY
		if i%2 == 0 {
			side = SELL
		}
		ob.Submit(limit(uint64(i+1), side, 10000, 10, int64(i)))
	}

	if trades != num/2 {
		t.Errorf("expected %d trades, got %d", num/2, trades)
	}
}

func TestConcurrentOrders(t *testing.T) {
	ob := NewOrderBook("ABC")

	var wg sync.WaitGroup
	n := 1000
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(id uint64) {
			defer wg.Done()
			ob.Submit(limit(id, BUY, 10000, 10, int64(id)))
		}(uint64(i + 1))
		go func(id uint64) {
			defer wg.Done()
			ob.Submit(limit(id, SELL, 10000, 10, int64(id)))
		}(uint64(n + i + 1))
	}
	wg.Wait()

	// every buy matches a sell exactly, nothing can rest on both sides
	top := ob.TopOfBook()
	if top.BidQuantity != 0 || top.AskQuantity != 0 {
		t.Errorf("expected flat book, top=%+v", top)
	}
}

func TestClear(t *testing.T) {
	ob := NewOrderBook("ABC")

	ob.Submit(limit(1, BUY, 10000, 10, 1))
	ob.Submit(limit(2, SELL, 10100, 10, 2))
	ob.Clear()

	if top := ob.TopOfBook(); top != (TopOfBook{Symbol: "ABC"}) {
		t.Errorf("expected empty top after clear, got %+v", top)
	}
	if _, err := ob.GetOrder(1); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected history dropped after clear, got %v", err)
	}
}

func BenchmarkSubmit(b *testing.B) {
	ob := NewOrderBook("ABC")

	for i := 0; i < 10_000; i++ {
		ob.Submit(limit(uint64(i+1), SELL, int64(10000+i%5), 10, int64(i)))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ob.Submit(limit(uint64(20_000+i), BUY, 10001, 10, int64(20_000+i)))
	}
}

func BenchmarkDepth(b *testing.B) {
	ob := NewOrderBook("ABC")
	for i := 0; i < 1000; i++ {
		ob.Submit(limit(uint64(i+1), BUY, int64(5000+i), 10, int64(i)))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ob.Depth(10)
	}
}

func ExampleOrderBook_Submit() {
	ob := NewOrderBook("ABC")

	ob.Submit(NewOrder(1, "ABC", SELL, LIMIT, 15050, 150, 1))
	trades, _ := ob.Submit(NewOrder(2, "ABC", BUY, LIMIT, 15100, 300, 2))

	for _, tr := range trades {
		fmt.Printf("%d@%d\n", tr.Quantity, tr.Price)
	}
	// Output: 150@15050
}
