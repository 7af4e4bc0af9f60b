package lob

// Trade is one execution between a resting (maker) order and an incoming
// (taker) order. Price is always the maker's price. Trades are immutable
// once emitted.
type Trade struct {
	ID           uint64
	Symbol       string
	Price        int64
	Quantity     int64
	MakerOrderID uint64
	TakerOrderID uint64
	TakerSide    Side
	Timestamp    int64
}

// Value returns price * quantity in tick units.
func (t Trade) Value() int64 {
	return t.Price * t.Quantity
}
