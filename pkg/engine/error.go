package engine

import "errors"

var (
	ErrRiskRejected = errors.New("order rejected by risk check")
)
