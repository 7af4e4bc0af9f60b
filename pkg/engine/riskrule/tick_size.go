package riskrule

import (
	"fmt"

	"github.com/joripage/lob-engine/pkg/lob"
)

// TickSizeRule rejects limit orders whose price is not a multiple of the
// symbol's tick. Symbols without a configured tick pass through.
type TickSizeRule struct {
	ticks map[string]int64
}

func NewTickSizeRule(ticks map[string]int64) *TickSizeRule {
	return &TickSizeRule{ticks: ticks}
}

func (r *TickSizeRule) Name() string { return "tick_size" }

func (r *TickSizeRule) Check(o *lob.Order) error {
	if o.Type != lob.LIMIT {
		return nil
	}
	tick, ok := r.ticks[o.Symbol]
	if !ok || tick <= 0 {
		return nil
	}
	if o.Price%tick != 0 {
		return fmt.Errorf("price %d not a multiple of tick %d", o.Price, tick)
	}
	return nil
}
