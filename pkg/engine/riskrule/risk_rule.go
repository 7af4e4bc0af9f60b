package riskrule

import "github.com/joripage/lob-engine/pkg/lob"

// RiskRule is a pre-trade check applied to every inbound order before it
// reaches the book.
type RiskRule interface {
	Name() string
	Check(o *lob.Order) error
}
