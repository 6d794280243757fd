package models

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// BSMResult is a closed-form Black-Scholes-Merton valuation with continuous dividend yield.
type BSMResult struct {
	Price float64
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}

// BlackScholes prices a European vanilla option in closed form.
func BlackScholes(m MarketParameters, strike float64, isCall bool) (BSMResult, error) {
	d1, d2, err := bsmD(m, strike)
	if err != nil {
		return BSMResult{}, err
	}

	S, K, T, r, q, sigma := m.Spot, strike, m.Maturity, m.Rate, m.Dividend, m.Volatility
	dfR := math.Exp(-r * T)
	dfQ := math.Exp(-q * T)
	pdf := distuv.UnitNormal.Prob(d1)
	sqrtT := math.Sqrt(T)

	res := BSMResult{
		Gamma: dfQ * pdf / (S * sigma * sqrtT),
		Vega:  S * dfQ * pdf * sqrtT,
	}
	decay := -S * dfQ * pdf * sigma / (2 * sqrtT)

	if isCall {
		nd1, nd2 := normCDF(d1), normCDF(d2)
		res.Price = S*dfQ*nd1 - K*dfR*nd2
		res.Delta = dfQ * nd1
		res.Theta = decay - r*K*dfR*nd2 + q*S*dfQ*nd1
		res.Rho = K * T * dfR * nd2
	} else {
		nd1, nd2 := normCDF(-d1), normCDF(-d2)
		res.Price = K*dfR*nd2 - S*dfQ*nd1
		res.Delta = -dfQ * nd1
		res.Theta = decay + r*K*dfR*nd2 - q*S*dfQ*nd1
		res.Rho = -K * T * dfR * nd2
	}

	return res, nil
}

// CashOrNothing prices a European binary paying payout when the terminal price ends
// above (call) or below (put) the strike.
func CashOrNothing(m MarketParameters, strike, payout float64, isCall bool) (float64, error) {
	_, d2, err := bsmD(m, strike)
	if err != nil {
		return 0, err
	}
	if !isCall {
		d2 = -d2
	}
	return payout * m.Discount() * normCDF(d2), nil
}

func bsmD(m MarketParameters, strike float64) (float64, float64, error) {
	if err := m.ValidateMarket(); err != nil {
		return 0, 0, err
	}
	if err := m.requireVolatility(); err != nil {
		return 0, 0, err
	}
	if strike <= 0 {
		return 0, 0, errors.Wrapf(ErrInvalidMarketParameters, "closed form needs a positive strike, got %v", strike)
	}

	volT := m.Volatility * math.Sqrt(m.Maturity)
	d1 := (math.Log(m.Spot/strike) + (m.Rate-m.Dividend+0.5*m.Volatility*m.Volatility)*m.Maturity) / volT
	return d1, d1 - volT, nil
}

func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}
