package models

import (
	"math"

	"github.com/pkg/errors"
)

// RiskNeutralMeasure holds the per-step move factors and probabilities of a binomial tree.
type RiskNeutralMeasure struct {
	Up       float64
	Down     float64
	Dt       float64
	Qh       float64 // Up-move probability
	Ql       float64 // Down-move probability
	Discount float64 // e^{-r dt}
}

// LatticeModel derives a risk-neutral measure for a market.
type LatticeModel interface {
	Measure(m MarketParameters) (RiskNeutralMeasure, error)
	Name() string
}

// CRR is the Cox-Ross-Rubinstein model, U = e^{sigma sqrt(dt)}.
type CRR struct{}

// ConstantScale uses an externally supplied up factor. The dividend yield is ignored
// when deriving the up-probability.
type ConstantScale struct {
	Up float64
}

func (CRR) Name() string { return "crr" }

func (ConstantScale) Name() string { return "constant" }

// Measure implements LatticeModel.
func (CRR) Measure(m MarketParameters) (RiskNeutralMeasure, error) {
	if err := m.ValidateDiffusion(); err != nil {
		return RiskNeutralMeasure{}, err
	}
	dt := m.Dt()
	up := math.Exp(m.Volatility * math.Sqrt(dt))
	return NewMeasure(up, dt, math.Exp((m.Rate-m.Dividend)*dt), m.Rate)
}

// Measure implements LatticeModel.
func (c ConstantScale) Measure(m MarketParameters) (RiskNeutralMeasure, error) {
	if err := m.Validate(); err != nil {
		return RiskNeutralMeasure{}, err
	}
	dt := m.Dt()
	return NewMeasure(c.Up, dt, math.Exp(m.Rate*dt), m.Rate)
}

// NewMeasure builds a measure from an up factor and the one-step growth factor of the
// underlying under the risk-neutral measure.
func NewMeasure(up, dt, growth, rate float64) (RiskNeutralMeasure, error) {
	if math.IsNaN(up) || up <= 1 || math.IsInf(up, 0) {
		return RiskNeutralMeasure{}, errors.Wrapf(ErrInvalidMarketParameters, "up factor must exceed 1, got %v", up)
	}
	down := 1 / up
	if down <= 0 {
		return RiskNeutralMeasure{}, errors.Wrapf(ErrInvalidMarketParameters, "down factor must be positive, got %v", down)
	}

	qh := (growth - down) / (up - down)
	if !(qh > 0 && qh < 1) {
		return RiskNeutralMeasure{}, errors.Wrapf(ErrArbitrageViolation, "up-probability %v (U=%v, D=%v, growth=%v)", qh, up, down, growth)
	}

	return RiskNeutralMeasure{
		Up:       up,
		Down:     down,
		Dt:       dt,
		Qh:       qh,
		Ql:       1 - qh,
		Discount: math.Exp(-rate * dt),
	}, nil
}
