package lob

import "sync"

// BookManager owns one OrderBook per symbol. Books are created on first
// use; callbacks registered on the manager are applied to every book,
// existing and future.
type BookManager struct {
	books sync.Map

	mu       sync.Mutex
	tradeFns []TradeCallback
	topFns   []TopOfBookCallback
}

func NewBookManager() *BookManager {
	return &BookManager{}
}

// Book returns the order book for a symbol, creating it if needed.
func (m *BookManager) Book(symbol string) *OrderBook {
	if val, ok := m.books.Load(symbol); ok {
		return val.(*OrderBook)
	}

	book := NewOrderBook(symbol)
	actual, loaded := m.books.LoadOrStore(symbol, book)
	if loaded {
		return actual.(*OrderBook)
	}

	m.mu.Lock()
	for _, fn := range m.tradeFns {
		book.RegisterTradeCallback(fn)
	}
	for _, fn := range m.topFns {
		book.RegisterTopOfBookCallback(fn)
	}
	m.mu.Unlock()

	return book
}

// Submit routes the order to its symbol's book.
func (m *BookManager) Submit(o *Order) ([]Trade, error) {
	return m.Book(o.Symbol).Submit(o)
}

func (m *BookManager) Cancel(symbol string, orderID uint64) error {
	return m.Book(symbol).Cancel(orderID)
}

func (m *BookManager) Modify(symbol string, orderID uint64, newPrice, newQuantity int64) error {
	return m.Book(symbol).Modify(orderID, newPrice, newQuantity)
}

func (m *BookManager) GetOrder(symbol string, orderID uint64) (Order, error) {
	return m.Book(symbol).GetOrder(orderID)
}

func (m *BookManager) RegisterTradeCallback(fn TradeCallback) {
	m.mu.Lock()
	m.tradeFns = append(m.tradeFns, fn)
	m.mu.Unlock()

	m.books.Range(func(_, v any) bool {
		v.(*OrderBook).RegisterTradeCallback(fn)
		return true
	})
}

func (m *BookManager) RegisterTopOfBookCallback(fn TopOfBookCallback) {
	m.mu.Lock()
	m.topFns = append(m.topFns, fn)
	m.mu.Unlock()

	m.books.Range(func(_, v any) bool {
		v.(*OrderBook).RegisterTopOfBookCallback(fn)
		return true
	})
}
