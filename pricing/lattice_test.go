package pricing

import (
	"math"
	"testing"

	"github.com/bcdannyboy/dpricer/models"
	"github.com/bcdannyboy/dpricer/payoff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceLatticeReferenceContracts(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name     string
		model    models.LatticeModel
		market   models.MarketParameters
		exercise models.Exercise
		payoff   payoff.Terminal
		want     float64
	}{
		{
			name:   "constant scale call",
			model:  models.ConstantScale{Up: 1.5},
			market: models.MarketParameters{Spot: 100, Rate: 0.05, Maturity: 0.25, Steps: 100},
			payoff: payoff.Vanilla{Kind: payoff.Call, Strike: 120},
			want:   95.3076,
		},
		{
			name:   "crr european put",
			model:  models.CRR{},
			market: models.MarketParameters{Spot: 50, Volatility: 0.2, Rate: 0.08, Dividend: 0.04, Maturity: 0.5, Steps: 1000},
			payoff: payoff.Vanilla{Kind: payoff.Put, Strike: 60},
			want:   9.1056,
		},
		{
			name:     "crr american call",
			model:    models.CRR{},
			market:   models.MarketParameters{Spot: 16, Volatility: 0.5, Rate: 0.06, Dividend: 0.05, Maturity: 2, Steps: 1000},
			exercise: models.American,
			payoff:   payoff.Vanilla{Kind: payoff.Call, Strike: 20},
			want:     3.0460,
		},
		{
			name:   "crr binary put",
			model:  models.CRR{},
			market: models.MarketParameters{Spot: 100, Volatility: 0.1, Rate: 0.1, Dividend: 0.05, Maturity: 10, Steps: 1000},
			payoff: payoff.Binary{Kind: payoff.Put, Strike: 100, Payout: 100},
			want:   2.6738,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.PriceLattice(tt.model, tt.market, tt.exercise, tt.payoff)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, res.Price, 0.01)
			assert.Nil(t, res.Interval)
		})
	}
}

func TestAmericanDominatesEuropean(t *testing.T) {
	e := NewEngine()
	market := models.MarketParameters{Spot: 16, Volatility: 0.5, Rate: 0.06, Dividend: 0.05, Maturity: 2, Steps: 500}

	for _, kind := range []payoff.Kind{payoff.Call, payoff.Put} {
		p := payoff.Vanilla{Kind: kind, Strike: 20}
		eu, err := e.PriceLattice(models.CRR{}, market, models.European, p)
		require.NoError(t, err)
		am, err := e.PriceLattice(models.CRR{}, market, models.American, p)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, am.Price, eu.Price-1e-12, kind.String())
	}
}

func TestEuropeanPutCallParity(t *testing.T) {
	e := NewEngine()
	market := models.MarketParameters{Spot: 42, Volatility: 0.3, Rate: 0.04, Dividend: 0.015, Maturity: 1.5, Steps: 400}
	const strike = 45.0

	call, err := e.PriceLattice(models.CRR{}, market, models.European, payoff.Vanilla{Kind: payoff.Call, Strike: strike})
	require.NoError(t, err)
	put, err := e.PriceLattice(models.CRR{}, market, models.European, payoff.Vanilla{Kind: payoff.Put, Strike: strike})
	require.NoError(t, err)

	forward := market.Spot*math.Exp(-market.Dividend*market.Maturity) - strike*market.Discount()
	assert.InDelta(t, forward, call.Price-put.Price, 1e-8)
}

func TestCRRConvergesToBlackScholes(t *testing.T) {
	e := NewEngine()
	market := models.MarketParameters{Spot: 100, Volatility: 0.2, Rate: 0.05, Dividend: 0.02, Maturity: 1}
	p := payoff.Vanilla{Kind: payoff.Call, Strike: 100}

	bs, err := models.BlackScholes(market, 100, true)
	require.NoError(t, err)

	prev := math.Inf(1)
	for _, n := range []int{50, 100, 200, 400, 800} {
		market.Steps = n
		res, err := e.PriceLattice(models.CRR{}, market, models.European, p)
		require.NoError(t, err)

		gap := math.Abs(res.Price - bs.Price)
		assert.Less(t, gap, 2.5/float64(n), "N=%d", n)
		assert.Less(t, gap, prev, "N=%d", n)
		prev = gap
	}
}

func TestEuropeanExpectationMatchesBackwardInduction(t *testing.T) {
	market := models.MarketParameters{Spot: 100, Volatility: 0.25, Rate: 0.03, Maturity: 1, Steps: 300}
	p := payoff.Binary{Kind: payoff.Call, Strike: 95, Payout: 10}

	res, err := NewEngine().PriceLattice(models.CRR{}, market, models.European, p)
	require.NoError(t, err)

	g, err := NewEngine().LatticeGreeks(models.CRR{}, market, models.European, p)
	require.NoError(t, err)

	assert.InDelta(t, res.Price, g.Price, 1e-9)
}

func TestBinaryBounds(t *testing.T) {
	market := models.MarketParameters{Spot: 100, Volatility: 0.1, Rate: 0.1, Dividend: 0.05, Maturity: 10, Steps: 200}

	for _, kind := range []payoff.Kind{payoff.Call, payoff.Put} {
		res, err := NewEngine().PriceLattice(models.CRR{}, market, models.European, payoff.Binary{Kind: kind, Strike: 100, Payout: 100})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Price, 0.0)
		assert.LessOrEqual(t, res.Price, 100*market.Discount())
	}
}

func TestLatticeGreeks(t *testing.T) {
	market := models.MarketParameters{Spot: 100, Volatility: 0.2, Rate: 0.05, Dividend: 0.02, Maturity: 1, Steps: 1000}
	p := payoff.Vanilla{Kind: payoff.Call, Strike: 100}

	g, err := NewEngine().LatticeGreeks(models.CRR{}, market, models.European, p)
	require.NoError(t, err)
	bs, err := models.BlackScholes(market, 100, true)
	require.NoError(t, err)

	assert.InDelta(t, bs.Delta, g.Delta, 1e-3)
	assert.InDelta(t, bs.Gamma, g.Gamma, 1e-3)
	assert.InDelta(t, bs.Theta, g.Theta, 0.05)

	market.Steps = 1
	_, err = NewEngine().LatticeGreeks(models.CRR{}, market, models.European, p)
	assert.ErrorIs(t, err, models.ErrInvalidMarketParameters)
}

func TestPriceLatticeErrors(t *testing.T) {
	e := NewEngine()
	good := models.MarketParameters{Spot: 100, Volatility: 0.2, Rate: 0.05, Maturity: 1, Steps: 10}
	call := payoff.Vanilla{Kind: payoff.Call, Strike: 100}

	flat := good
	flat.Volatility = 0
	_, err := e.PriceLattice(models.CRR{}, flat, models.European, call)
	assert.ErrorIs(t, err, models.ErrInvalidMarketParameters)

	_, err = e.PriceLattice(models.ConstantScale{Up: 1.001}, models.MarketParameters{Spot: 100, Rate: 1, Maturity: 1, Steps: 1}, models.European, call)
	assert.ErrorIs(t, err, models.ErrArbitrageViolation)

	_, err = e.PriceLattice(models.CRR{}, good, models.Exercise(9), call)
	assert.ErrorIs(t, err, payoff.ErrUnsupportedPayoffSpec)

	_, err = e.PriceLattice(models.CRR{}, good, models.European, payoff.Vanilla{Kind: payoff.Call, Strike: -1})
	assert.ErrorIs(t, err, payoff.ErrUnsupportedPayoffSpec)

	_, err = e.PriceLattice(nil, good, models.European, call)
	assert.ErrorIs(t, err, models.ErrInvalidMarketParameters)
}
