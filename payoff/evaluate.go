package payoff

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Evaluate writes the payoff of every path (column) of a price matrix into dst and
// returns it. dst is grown when its capacity is short.
func Evaluate(spec Spec, paths *mat.Dense, dst []float64) ([]float64, error) {
	if spec == nil {
		return nil, errors.Wrap(ErrUnsupportedPayoffSpec, "nil payoff")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	s := Summarize(paths)
	dst = resize(dst, len(s.Terminal))
	for j := range dst {
		dst[j] = spec.pathPayoff(s, j)
	}
	return dst, nil
}

// EvaluateTerminal writes the payoff at every lattice terminal node into dst.
func EvaluateTerminal(spec Terminal, prices []float64, dst []float64) ([]float64, error) {
	if spec == nil {
		return nil, errors.Wrap(ErrUnsupportedPayoffSpec, "nil payoff")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	dst = resize(dst, len(prices))
	for i, p := range prices {
		dst[i] = spec.Terminal(p)
	}
	return dst, nil
}

func resize(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	return s[:n]
}
