package models

import "github.com/pkg/errors"

var (
	// ErrInvalidMarketParameters is returned for non-positive spot, volatility or maturity,
	// too few steps or paths, and degenerate move factors.
	ErrInvalidMarketParameters = errors.New("invalid market parameters")

	// ErrArbitrageViolation is returned when the derived up-probability falls outside (0, 1).
	ErrArbitrageViolation = errors.New("risk-neutral probability outside (0, 1)")
)
