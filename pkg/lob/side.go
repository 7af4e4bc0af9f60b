package lob

// bookSide keeps the price levels of one side: a hash map for O(1) level
// lookup plus a doubly linked list of levels ordered best-first, with a
// direct pointer to the best level. Best-price access is O(1); inserting a
// brand new level is O(levels) worst case but new prices cluster near the
// top of the book in practice.
type bookSide struct {
	levels     map[int64]*priceLevel
	best       *priceLevel
	descending bool // true for bids (higher price is better)
}

func newBookSide(side Side) *bookSide {
	return &bookSide{
		levels:     make(map[int64]*priceLevel),
		descending: side == BUY,
	}
}

// add appends the order to its price level, creating the level when absent.
func (s *bookSide) add(o *Order) {
	level, ok := s.levels[o.Price]
	if !ok {
		level = newPriceLevel(o.Price)
		s.levels[o.Price] = level
		s.insertLevel(level)
	}
	level.append(o)
}

// remove unlinks a resting order and drops its level when it empties.
func (s *bookSide) remove(o *Order) {
	level := o.level
	level.remove(o)
	if level.empty() {
		s.removeLevel(level)
	}
}

func (s *bookSide) bestLevel() *priceLevel {
	return s.best
}

func (s *bookSide) empty() bool {
	return s.best == nil
}

// walk visits levels best-first until fn returns false.
func (s *bookSide) walk(fn func(*priceLevel) bool) {
	for level := s.best; level != nil; level = level.next {
		if !fn(level) {
			return
		}
	}
}

func (s *bookSide) insertLevel(level *priceLevel) {
	if s.best == nil {
		s.best = level
		return
	}

	if s.better(level.price, s.best.price) {
		level.next = s.best
		s.best.prev = level
		s.best = level
		return
	}

	curr := s.best
	for curr.next != nil && !s.better(level.price, curr.next.price) {
		curr = curr.next
	}

	level.next = curr.next
	level.prev = curr
	if curr.next != nil {
		curr.next.prev = level
	}
	curr.next = level
}

func (s *bookSide) removeLevel(level *priceLevel) {
	delete(s.levels, level.price)

	if level.prev != nil {
		level.prev.next = level.next
	}
	if level.next != nil {
		level.next.prev = level.prev
	}
	if s.best == level {
		s.best = level.next
	}
	level.next = nil
	level.prev = nil
}

func (s *bookSide) better(p1, p2 int64) bool {
	if s.descending {
		return p1 > p2
	}
	return p1 < p2
}
