package models

import "github.com/pkg/errors"

// Greeks are sensitivities read off the first layers of a binomial tree.
type Greeks struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"` // Per year
}

// GreeksFromLayers computes delta, gamma and theta from the node values of steps 0, 1
// and 2 as returned by BackwardInduction with capture >= 3.
func GreeksFromLayers(layers [][]float64, spot float64, measure RiskNeutralMeasure) (Greeks, error) {
	if len(layers) < 3 || len(layers[0]) != 1 || len(layers[1]) != 2 || len(layers[2]) != 3 {
		return Greeks{}, errors.Wrap(ErrInvalidMarketParameters, "greeks need at least two lattice steps")
	}

	u, d := measure.Up, measure.Down
	su, sd := spot*u, spot*d
	suu, sud, sdd := spot*u*u, spot, spot*d*d

	fu, fd := layers[1][0], layers[1][1]
	fuu, fud, fdd := layers[2][0], layers[2][1], layers[2][2]

	deltaUp := (fuu - fud) / (suu - sud)
	deltaDown := (fud - fdd) / (sud - sdd)

	return Greeks{
		Price: layers[0][0],
		Delta: (fu - fd) / (su - sd),
		Gamma: (deltaUp - deltaDown) / (0.5 * (suu - sdd)),
		Theta: (fud - layers[0][0]) / (2 * measure.Dt),
	}, nil
}
