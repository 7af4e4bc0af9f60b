package stream

import (
	"context"

	"go.uber.org/zap"

	"github.com/joripage/lob-engine/pkg/lob"
)

type PublisherConfig struct {
	TradeTopic     string `yaml:"trade_topic"`
	TopOfBookTopic string `yaml:"top_of_book_topic"`
}

// TradeEvent is the wire form of one execution.
type TradeEvent struct {
	TradeID      uint64 `json:"trade_id"`
	Symbol       string `json:"symbol"`
	Price        int64  `json:"price"`
	Quantity     int64  `json:"quantity"`
	MakerOrderID uint64 `json:"maker_order_id"`
	TakerOrderID uint64 `json:"taker_order_id"`
	TakerSide    string `json:"taker_side"`
	Timestamp    int64  `json:"timestamp"`
}

// TopOfBookEvent is the wire form of one best bid/ask snapshot.
type TopOfBookEvent struct {
	Symbol      string `json:"symbol"`
	BidPrice    int64  `json:"bid_price"`
	BidQuantity int64  `json:"bid_quantity"`
	AskPrice    int64  `json:"ask_price"`
	AskQuantity int64  `json:"ask_quantity"`
}

// MarketDataPublisher forwards book events to Kafka. It is registered as a
// book observer; publish failures are logged and dropped, never surfaced
// into the matching path.
type MarketDataPublisher struct {
	producer *Producer
	cfg      PublisherConfig
}

func NewMarketDataPublisher(producer *Producer, cfg PublisherConfig) *MarketDataPublisher {
	return &MarketDataPublisher{
		producer: producer,
		cfg:      cfg,
	}
}

// Attach registers the publisher on every book of the manager.
func (p *MarketDataPublisher) Attach(books *lob.BookManager) {
	books.RegisterTradeCallback(p.OnTrade)
	books.RegisterTopOfBookCallback(p.OnTopOfBook)
}

func (p *MarketDataPublisher) OnTrade(tr lob.Trade) {
	ev := TradeEvent{
		TradeID:      tr.ID,
		Symbol:       tr.Symbol,
		Price:        tr.Price,
		Quantity:     tr.Quantity,
		MakerOrderID: tr.MakerOrderID,
		TakerOrderID: tr.TakerOrderID,
		TakerSide:    string(tr.TakerSide),
		Timestamp:    tr.Timestamp,
	}
	if err := p.producer.PublishJSON(context.Background(), p.cfg.TradeTopic, tr.Symbol, ev); err != nil {
		zap.S().Warnw("publish trade fail", "symbol", tr.Symbol, "trade_id", tr.ID, "err", err)
	}
}

func (p *MarketDataPublisher) OnTopOfBook(top lob.TopOfBook) {
	ev := TopOfBookEvent{
		Symbol:      top.Symbol,
		BidPrice:    top.BidPrice,
		BidQuantity: top.BidQuantity,
		AskPrice:    top.AskPrice,
		AskQuantity: top.AskQuantity,
	}
	if err := p.producer.PublishJSON(context.Background(), p.cfg.TopOfBookTopic, top.Symbol, ev); err != nil {
		zap.S().Warnw("publish top of book fail", "symbol", top.Symbol, "err", err)
	}
}
