package riskrule

import (
	"fmt"

	"github.com/joripage/lob-engine/pkg/lob"
)

// MaxQuantityRule rejects orders above a per-order quantity cap.
type MaxQuantityRule struct {
	Max int64
}

func NewMaxQuantityRule(max int64) *MaxQuantityRule {
	return &MaxQuantityRule{Max: max}
}

func (r *MaxQuantityRule) Name() string { return "max_quantity" }

func (r *MaxQuantityRule) Check(o *lob.Order) error {
	if r.Max > 0 && o.Quantity > r.Max {
		return fmt.Errorf("quantity %d exceeds limit %d", o.Quantity, r.Max)
	}
	return nil
}
