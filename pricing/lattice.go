package pricing

import (
	"github.com/bcdannyboy/dpricer/models"
	"github.com/bcdannyboy/dpricer/payoff"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// PriceLattice prices a terminal payoff on a recombining binomial lattice. European
// contracts take the discounted expectation over the terminal layer; American contracts
// are rolled back with an early-exercise comparison at every node.
func (e *Engine) PriceLattice(model models.LatticeModel, market models.MarketParameters, exercise models.Exercise, p payoff.Terminal) (Result, error) {
	measure, prices, values, err := e.terminalLayer(model, market, p)
	if err != nil {
		return Result{}, err
	}

	var price float64
	switch exercise {
	case models.European:
		probs := models.TerminalProbabilities(market.Steps, measure, nil)
		price = models.DiscountedExpectation(probs, values, market.Discount())
	case models.American:
		price, _ = models.BackwardInduction(prices, values, measure, p.Terminal, 0)
	default:
		return Result{}, errors.Wrapf(payoff.ErrUnsupportedPayoffSpec, "unknown exercise style %d", int(exercise))
	}

	e.logger.Debug("lattice priced",
		zap.String("model", model.Name()),
		zap.String("payoff", p.Name()),
		zap.Stringer("exercise", exercise),
		zap.Int("steps", market.Steps),
		zap.Float64("qh", measure.Qh),
		zap.Float64("price", price),
	)

	return Result{Price: price}, nil
}

// LatticeGreeks rolls the full tree back and reads delta, gamma and theta off its first
// two layers. It needs at least two steps.
func (e *Engine) LatticeGreeks(model models.LatticeModel, market models.MarketParameters, exercise models.Exercise, p payoff.Terminal) (models.Greeks, error) {
	measure, prices, values, err := e.terminalLayer(model, market, p)
	if err != nil {
		return models.Greeks{}, err
	}
	if market.Steps < 2 {
		return models.Greeks{}, errors.Wrapf(models.ErrInvalidMarketParameters, "greeks need at least 2 steps, got %d", market.Steps)
	}

	var ex func(float64) float64
	switch exercise {
	case models.European:
	case models.American:
		ex = p.Terminal
	default:
		return models.Greeks{}, errors.Wrapf(payoff.ErrUnsupportedPayoffSpec, "unknown exercise style %d", int(exercise))
	}

	_, layers := models.BackwardInduction(prices, values, measure, ex, 3)
	return models.GreeksFromLayers(layers, market.Spot, measure)
}

func (e *Engine) terminalLayer(model models.LatticeModel, market models.MarketParameters, p payoff.Terminal) (models.RiskNeutralMeasure, []float64, []float64, error) {
	if model == nil {
		return models.RiskNeutralMeasure{}, nil, nil, errors.Wrap(models.ErrInvalidMarketParameters, "nil lattice model")
	}
	if p == nil {
		return models.RiskNeutralMeasure{}, nil, nil, errors.Wrap(payoff.ErrUnsupportedPayoffSpec, "nil payoff")
	}
	if err := p.Validate(); err != nil {
		return models.RiskNeutralMeasure{}, nil, nil, err
	}

	measure, err := model.Measure(market)
	if err != nil {
		return models.RiskNeutralMeasure{}, nil, nil, errors.Wrapf(err, "%s measure", model.Name())
	}

	prices := models.TerminalPrices(market.Spot, market.Steps, measure, nil)
	values, err := payoff.EvaluateTerminal(p, prices, nil)
	if err != nil {
		return models.RiskNeutralMeasure{}, nil, nil, err
	}
	return measure, prices, values, nil
}
