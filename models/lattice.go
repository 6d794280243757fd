package models

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Exercise is the exercise style of a lattice contract.
type Exercise int

const (
	European Exercise = iota
	American
)

func (e Exercise) String() string {
	switch e {
	case European:
		return "european"
	case American:
		return "american"
	default:
		return "unknown"
	}
}

// TerminalPrices fills dst with the N+1 terminal asset prices ordered by up-move
// count j = N..0, each S0*U^(2j-N).
func TerminalPrices(spot float64, steps int, measure RiskNeutralMeasure, dst []float64) []float64 {
	dst = resize(dst, steps+1)
	logUp := math.Log(measure.Up)
	for i := range dst {
		j := steps - i
		dst[i] = spot * math.Exp(float64(2*j-steps)*logUp)
	}
	return dst
}

// TerminalProbabilities fills dst with the probability of exactly j up-moves out of N,
// in the same j = N..0 order as TerminalPrices. The binomial mass is evaluated in log
// space so N in the thousands does not overflow.
func TerminalProbabilities(steps int, measure RiskNeutralMeasure, dst []float64) []float64 {
	dst = resize(dst, steps+1)
	b := distuv.Binomial{N: float64(steps), P: measure.Qh}
	for i := range dst {
		dst[i] = b.Prob(float64(steps - i))
	}
	return dst
}

// DiscountedExpectation returns discount * sum(probs[i] * payoffs[i]).
func DiscountedExpectation(probs, payoffs []float64, discount float64) float64 {
	return discount * floats.Dot(probs, payoffs)
}

// CollapseLayer computes the parent layer of (values, prices) into (dst, dstPrices),
// both of length len(values)-1. Node i of the child layer is the up child of parent i.
// The inputs are read only. A nil exercise disables the early-exercise comparison.
func CollapseLayer(dst, dstPrices, values, prices []float64, measure RiskNeutralMeasure, exercise func(float64) float64) {
	for i := range dst {
		v := measure.Discount * (measure.Qh*values[i] + measure.Ql*values[i+1])
		s := prices[i] / measure.Up
		if exercise != nil {
			if ex := exercise(s); ex > v {
				v = ex
			}
		}
		dst[i] = v
		dstPrices[i] = s
	}
}

// BackwardInduction rolls the terminal layer back to the root and returns its value.
// Two working buffers are allocated once and swapped between steps. When capture > 0
// the node values of the first capture time steps are copied out, indexed by step,
// so that layers[1] holds the two nodes after the first move.
func BackwardInduction(prices, values []float64, measure RiskNeutralMeasure, exercise func(float64) float64, capture int) (float64, [][]float64) {
	n := len(values)
	cur, curPrices := make([]float64, n), make([]float64, n)
	next, nextPrices := make([]float64, n), make([]float64, n)
	copy(cur, values)
	copy(curPrices, prices)

	var layers [][]float64
	if capture > 0 {
		layers = make([][]float64, capture)
		if n-1 < capture {
			layers[n-1] = append([]float64(nil), values...)
		}
	}

	for l := n; l > 1; l-- {
		CollapseLayer(next[:l-1], nextPrices[:l-1], cur[:l], curPrices[:l], measure, exercise)
		cur, next = next, cur
		curPrices, nextPrices = nextPrices, curPrices

		if step := l - 2; step < capture {
			layers[step] = append([]float64(nil), cur[:l-1]...)
		}
	}

	return cur[0], layers
}

func resize(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	return s[:n]
}
