package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlackScholes(t *testing.T) {
	m := MarketParameters{Spot: 100, Volatility: 0.2, Rate: 0.05, Maturity: 1}

	call, err := BlackScholes(m, 100, true)
	require.NoError(t, err)
	put, err := BlackScholes(m, 100, false)
	require.NoError(t, err)

	assert.InDelta(t, 10.450583572185565, call.Price, 1e-9)
	assert.InDelta(t, 5.573526022256971, put.Price, 1e-9)
	assert.InDelta(t, 1.0, call.Delta-put.Delta, 1e-12)
	assert.InDelta(t, call.Gamma, put.Gamma, 1e-15)
	assert.InDelta(t, call.Vega, put.Vega, 1e-12)
}

func TestBlackScholesParityWithDividend(t *testing.T) {
	m := MarketParameters{Spot: 52, Volatility: 0.35, Rate: 0.03, Dividend: 0.045, Maturity: 0.75}
	const strike = 48.0

	call, err := BlackScholes(m, strike, true)
	require.NoError(t, err)
	put, err := BlackScholes(m, strike, false)
	require.NoError(t, err)

	forward := m.Spot*math.Exp(-m.Dividend*m.Maturity) - strike*m.Discount()
	assert.InDelta(t, forward, call.Price-put.Price, 1e-10)
}

func TestCashOrNothing(t *testing.T) {
	m := MarketParameters{Spot: 100, Volatility: 0.25, Rate: 0.04, Dividend: 0.01, Maturity: 2}

	call, err := CashOrNothing(m, 95, 10, true)
	require.NoError(t, err)
	put, err := CashOrNothing(m, 95, 10, false)
	require.NoError(t, err)

	assert.InDelta(t, 10*m.Discount(), call+put, 1e-12)
	assert.Greater(t, call, put)
}

func TestClosedFormRejectsDegenerateInputs(t *testing.T) {
	m := MarketParameters{Spot: 100, Volatility: 0, Rate: 0.05, Maturity: 1, Steps: 1}
	_, err := BlackScholes(m, 100, true)
	assert.ErrorIs(t, err, ErrInvalidMarketParameters)

	m.Volatility = 0.2
	_, err = CashOrNothing(m, 0, 1, true)
	assert.ErrorIs(t, err, ErrInvalidMarketParameters)
}

func TestClosedFormIgnoresDiscretisation(t *testing.T) {
	m := MarketParameters{Spot: 100, Volatility: 0.2, Rate: 0.05, Dividend: 0.02, Maturity: 1}
	require.Error(t, m.Validate())
	require.NoError(t, m.ValidateMarket())

	call, err := BlackScholes(m, 100, true)
	require.NoError(t, err)
	assert.InDelta(t, 9.227005508, call.Price, 1e-6)

	binary, err := CashOrNothing(m, 100, 1, false)
	require.NoError(t, err)
	assert.Greater(t, binary, 0.0)

	m.Steps = 250
	withSteps, err := BlackScholes(m, 100, true)
	require.NoError(t, err)
	assert.Equal(t, call, withSteps)
}
