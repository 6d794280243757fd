package payoff

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Summary holds per-path statistics of a price matrix whose rows are time layers and
// whose columns are paths.
type Summary struct {
	Terminal []float64
	Min      []float64
	Max      []float64
	Mean     []float64 // Arithmetic average over all N+1 prices
	GeoMean  []float64
	HarmMean []float64
}

// Summarize computes every path statistic in one row-major sweep of the matrix.
func Summarize(paths *mat.Dense) *Summary {
	rows, cols := paths.Dims()
	s := &Summary{
		Terminal: make([]float64, cols),
		Min:      make([]float64, cols),
		Max:      make([]float64, cols),
		Mean:     make([]float64, cols),
		GeoMean:  make([]float64, cols),
		HarmMean: make([]float64, cols),
	}

	first := paths.RawRowView(0)
	copy(s.Min, first)
	copy(s.Max, first)

	for i := 0; i < rows; i++ {
		row := paths.RawRowView(i)
		floats.Add(s.Mean, row)
		for j, p := range row {
			if p < s.Min[j] {
				s.Min[j] = p
			}
			if p > s.Max[j] {
				s.Max[j] = p
			}
			s.GeoMean[j] += math.Log(p)
			s.HarmMean[j] += 1 / p
		}
	}

	copy(s.Terminal, paths.RawRowView(rows-1))

	n := float64(rows)
	floats.Scale(1/n, s.Mean)
	for j := range s.GeoMean {
		s.GeoMean[j] = math.Exp(s.GeoMean[j] / n)
		s.HarmMean[j] = n / s.HarmMean[j]
	}

	return s
}
