package models

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// PathSimulator generates risk-neutral lognormal price paths.
type PathSimulator struct{}

// Simulate returns an (N+1) x paths matrix of prices. Row 0 is the spot for every
// path, each column is one path. Log increments have mean (r - q - sigma^2/2) dt and
// standard deviation sigma sqrt(dt); draws are consumed row by row.
func (PathSimulator) Simulate(m MarketParameters, paths int, src NormalSource) (*mat.Dense, error) {
	if err := m.ValidateDiffusion(); err != nil {
		return nil, err
	}
	if paths < 1 {
		return nil, errors.Wrapf(ErrInvalidMarketParameters, "path count must be positive, got %d", paths)
	}

	rows := m.Steps + 1
	dt := m.Dt()
	mu := (m.Rate - m.Dividend - 0.5*m.Volatility*m.Volatility) * dt
	sd := m.Volatility * math.Sqrt(dt)

	data := make([]float64, rows*paths)
	floats.AddConst(math.Log(m.Spot), data[:paths])

	for i := 1; i < rows; i++ {
		prev := data[(i-1)*paths : i*paths]
		cur := data[i*paths : (i+1)*paths]
		for j := range cur {
			cur[j] = mu + sd*src.NormFloat64()
		}
		floats.Add(cur, prev)
	}

	for i := paths; i < len(data); i++ {
		data[i] = math.Exp(data[i])
	}
	for j := 0; j < paths; j++ {
		data[j] = m.Spot
	}

	return mat.NewDense(rows, paths, data), nil
}
