package lob

// PriceLevelView is one depth row: a price and the aggregated remaining
// quantity resting at it.
type PriceLevelView struct {
	Price    int64
	Quantity int64
}

// Depth returns up to n levels per side, best-first: bids by descending
// price, asks by ascending price.
func (b *OrderBook) Depth(n int) (bids, asks []PriceLevelView) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bids = depthOf(b.bids, n)
	asks = depthOf(b.asks, n)
	return bids, asks
}

func depthOf(side *bookSide, n int) []PriceLevelView {
	if n <= 0 || side.empty() {
		return nil
	}

	out := make([]PriceLevelView, 0, n)
	side.walk(func(level *priceLevel) bool {
		out = append(out, PriceLevelView{Price: level.price, Quantity: level.volume})
		return len(out) < n
	})
	return out
}

// OrderFlowImbalance compares resting buy and sell volume over the top n
// levels of each side: (Vb - Va) / (Vb + Va), bounded in [-1, 1]. An empty
// window on both sides reports 0. This is a point-in-time signal, not a
// time-averaged one.
func (b *OrderBook) OrderFlowImbalance(n int) float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bidVolume := volumeOf(b.bids, n)
	askVolume := volumeOf(b.asks, n)

	total := bidVolume + askVolume
	if total == 0 {
		return 0
	}
	return float64(bidVolume-askVolume) / float64(total)
}

func volumeOf(side *bookSide, n int) int64 {
	if n <= 0 {
		return 0
	}

	var total int64
	count := 0
	side.walk(func(level *priceLevel) bool {
		total += level.volume
		count++
		return count < n
	})
	return total
}
