package lob

import (
	"math"
	"testing"
)

// The walkthrough below follows one book through submits, a cross, a cancel
// and a modify, checking depth and imbalance at each step. Prices in cents,
// quantities in shares.
func TestBookWalkthrough(t *testing.T) {
	ob := NewOrderBook("ABC")

	// two bids
	ob.Submit(limit(1, BUY, 15000, 100, 1))
	ob.Submit(limit(2, BUY, 14950, 200, 2))

	bids, asks := ob.Depth(2)
	if len(bids) != 2 || bids[0] != (PriceLevelView{15000, 100}) || bids[1] != (PriceLevelView{14950, 200}) {
		t.Fatalf("unexpected bids: %+v", bids)
	}
	if len(asks) != 0 {
		t.Fatalf("expected empty asks, got %+v", asks)
	}

	// an ask above the best bid rests without trading
	trades, _ := ob.Submit(limit(3, SELL, 15050, 150, 3))
	if len(trades) != 0 {
		t.Fatalf("expected no trade, got %+v", trades)
	}
	_, asks = ob.Depth(1)
	if len(asks) != 1 || asks[0] != (PriceLevelView{15050, 150}) {
		t.Fatalf("unexpected asks: %+v", asks)
	}

	// a bid through the ask takes it out and rests the remainder
	trades, _ = ob.Submit(limit(4, BUY, 15100, 300, 4))
	if len(trades) != 1 || trades[0].Quantity != 150 || trades[0].Price != 15050 {
		t.Fatalf("expected one trade 150@15050, got %+v", trades)
	}
	o, _ := ob.GetOrder(4)
	if o.Remaining != 150 || o.Status != StatusPartiallyFilled {
		t.Fatalf("expected 150 resting at 15100, got %+v", o)
	}

	// cancel removes the 14950 level
	ob.Cancel(2)
	bids, _ = ob.Depth(3)
	for _, lv := range bids {
		if lv.Price == 14950 {
			t.Fatalf("canceled level still visible: %+v", bids)
		}
	}

	// only bids remain: imbalance saturates at +1
	if ofi := ob.OrderFlowImbalance(1); ofi != 1.0 {
		t.Fatalf("expected imbalance 1.0, got %v", ofi)
	}

	// shrink order 1 in place: level volume follows, no trade
	trades2 := 0
	ob.RegisterTradeCallback(func(Trade) { trades2++ })
	ob.Modify(1, 15000, 40)
	bids, _ = ob.Depth(3)
	for _, lv := range bids {
		if lv.Price == 15000 && lv.Quantity != 40 {
			t.Fatalf("expected level volume 40 at 15000, got %+v", bids)
		}
	}
	if trades2 != 0 {
		t.Fatalf("modify generated trades")
	}
}

func TestDepthPrefixConsistent(t *testing.T) {
	ob := NewOrderBook("ABC")

	for i := int64(0); i < 8; i++ {
		ob.Submit(limit(uint64(i+1), BUY, 10000-i*10, 10+i, i))
		ob.Submit(limit(uint64(i+100), SELL, 10100+i*10, 20+i, i))
	}

	for n := 1; n < 8; n++ {
		bids, asks := ob.Depth(n)
		bidsNext, asksNext := ob.Depth(n + 1)
		for i := range bids {
			if bids[i] != bidsNext[i] {
				t.Fatalf("depth(%d) not a prefix of depth(%d) on bids", n, n+1)
			}
		}
		for i := range asks {
			if asks[i] != asksNext[i] {
				t.Fatalf("depth(%d) not a prefix of depth(%d) on asks", n, n+1)
			}
		}
	}
}

func TestDepthOrdering(t *testing.T) {
	ob := NewOrderBook("ABC")

	// insert out of order on both sides
	for i, p := range []int64{9800, 10000, 9900} {
		ob.Submit(limit(uint64(i+1), BUY, p, 10, int64(i)))
	}
	for i, p := range []int64{10300, 10100, 10200} {
		ob.Submit(limit(uint64(i+10), SELL, p, 10, int64(i)))
	}

	bids, asks := ob.Depth(10)
	for i := 1; i < len(bids); i++ {
		if bids[i].Price >= bids[i-1].Price {
			t.Fatalf("bids not descending: %+v", bids)
		}
	}
	for i := 1; i < len(asks); i++ {
		if asks[i].Price <= asks[i-1].Price {
			t.Fatalf("asks not ascending: %+v", asks)
		}
	}
}

func TestOrderFlowImbalance(t *testing.T) {
	ob := NewOrderBook("ABC")

	if ofi := ob.OrderFlowImbalance(5); ofi != 0 {
		t.Fatalf("empty book must report 0, got %v", ofi)
	}

	ob.Submit(limit(1, BUY, 10000, 300, 1))
	ob.Submit(limit(2, SELL, 10100, 100, 2))

	want := (300.0 - 100.0) / (300.0 + 100.0)
	if ofi := ob.OrderFlowImbalance(1); math.Abs(ofi-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, ofi)
	}

	ob.Submit(limit(3, SELL, 10050, 50, 3))
	// window of 1 now sees the 10050 ask, deeper window sees both
	want = (300.0 - 50.0) / (300.0 + 50.0)
	if ofi := ob.OrderFlowImbalance(1); math.Abs(ofi-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, ofi)
	}

	if ofi := ob.OrderFlowImbalance(5); ofi < -1 || ofi > 1 {
		t.Errorf("imbalance out of bounds: %v", ofi)
	}

	ob.Cancel(1)
	if ofi := ob.OrderFlowImbalance(5); ofi != -1.0 {
		t.Errorf("ask-only book must report -1, got %v", ofi)
	}
}
