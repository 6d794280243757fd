package models

import (
	"math"

	"github.com/pkg/errors"
)

// MarketParameters describes the underlying and the discretisation of one pricing call.
type MarketParameters struct {
	Spot       float64 // S0
	Volatility float64 // Annualised sigma
	Rate       float64 // Continuously compounded risk-free rate
	Dividend   float64 // Continuous dividend yield
	Maturity   float64 // Years
	Steps      int     // Time steps N
}

// Dt returns the length of a single time step.
func (m MarketParameters) Dt() float64 {
	return m.Maturity / float64(m.Steps)
}

// Discount returns e^{-rT}.
func (m MarketParameters) Discount() float64 {
	return math.Exp(-m.Rate * m.Maturity)
}

// ValidateMarket checks the market inputs alone. Volatility is only required to be
// non-negative here; models that diffuse with it check positivity themselves.
func (m MarketParameters) ValidateMarket() error {
	switch {
	case !finite(m.Spot, m.Volatility, m.Rate, m.Dividend, m.Maturity):
		return errors.Wrap(ErrInvalidMarketParameters, "parameters must be finite")
	case m.Spot <= 0:
		return errors.Wrapf(ErrInvalidMarketParameters, "spot must be positive, got %v", m.Spot)
	case m.Volatility < 0:
		return errors.Wrapf(ErrInvalidMarketParameters, "volatility must be non-negative, got %v", m.Volatility)
	case m.Maturity <= 0:
		return errors.Wrapf(ErrInvalidMarketParameters, "maturity must be positive, got %v", m.Maturity)
	}
	return nil
}

// Validate checks the market and its time discretisation.
func (m MarketParameters) Validate() error {
	if err := m.ValidateMarket(); err != nil {
		return err
	}
	if m.Steps < 1 {
		return errors.Wrapf(ErrInvalidMarketParameters, "steps must be at least 1, got %d", m.Steps)
	}
	return nil
}

// ValidateDiffusion validates m and additionally requires a positive volatility, which
// the CRR lattice and the path simulator need.
func (m MarketParameters) ValidateDiffusion() error {
	if err := m.Validate(); err != nil {
		return err
	}
	return m.requireVolatility()
}

func (m MarketParameters) requireVolatility() error {
	if m.Volatility <= 0 {
		return errors.Wrapf(ErrInvalidMarketParameters, "volatility must be positive, got %v", m.Volatility)
	}
	return nil
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
