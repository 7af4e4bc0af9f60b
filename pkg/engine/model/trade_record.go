package model

import (
	"time"

	"github.com/joripage/lob-engine/pkg/lob"
)

// TradeRecord is the persisted form of one execution.
type TradeRecord struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	Symbol       string `json:"symbol"`
	Price        int64  `json:"price"`
	Quantity     int64  `json:"quantity"`
	MakerOrderID uint64 `json:"maker_order_id"`
	TakerOrderID uint64 `json:"taker_order_id"`
	TakerSide    string `json:"taker_side"`
	Timestamp    int64  `json:"timestamp"`

	CreatedAt time.Time `json:"created_at"`
}

func (TradeRecord) TableName() string { return "trades" }

func NewTradeRecord(tr lob.Trade) *TradeRecord {
	return &TradeRecord{
		ID:           tr.ID,
		Symbol:       tr.Symbol,
		Price:        tr.Price,
		Quantity:     tr.Quantity,
		MakerOrderID: tr.MakerOrderID,
		TakerOrderID: tr.TakerOrderID,
		TakerSide:    string(tr.TakerSide),
		Timestamp:    tr.Timestamp,
	}
}
