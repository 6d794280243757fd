package probability

import (
	"math"

	"github.com/bcdannyboy/dpricer/models"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ConfidenceLevel is the two-sided coverage of reported intervals.
const ConfidenceLevel = 0.95

// Interval is a two-sided confidence interval around a point estimate.
type Interval struct {
	Lower float64
	Upper float64
	Level float64
}

// Contains reports whether x lies inside the closed interval.
func (i Interval) Contains(x float64) bool {
	return x >= i.Lower && x <= i.Upper
}

// Estimate is the sample statistics of a discounted payoff vector.
type Estimate struct {
	N        int
	Mean     float64
	Variance float64 // Unbiased, divisor N-1
	StdErr   float64
	Interval Interval
}

// Accumulator keeps a streaming mean and sum of squared deviations (Welford). Partial
// accumulators from independent workers combine exactly with Merge.
type Accumulator struct {
	n    int
	mean float64
	m2   float64
}

func (a *Accumulator) Add(x float64) {
	a.n++
	d := x - a.mean
	a.mean += d / float64(a.n)
	a.m2 += d * (x - a.mean)
}

// AddAll folds a whole sample in at once: its two-pass mean and variance are
// computed by stat.MeanVariance and merged into a.
func (a *Accumulator) AddAll(xs []float64) {
	if len(xs) < 2 {
		for _, x := range xs {
			a.Add(x)
		}
		return
	}
	mean, variance := stat.MeanVariance(xs, nil)
	a.Merge(Accumulator{n: len(xs), mean: mean, m2: variance * float64(len(xs)-1)})
}

// Merge folds b into a using the pairwise update of Chan, Golub and LeVeque.
func (a *Accumulator) Merge(b Accumulator) {
	if b.n == 0 {
		return
	}
	if a.n == 0 {
		*a = b
		return
	}
	n := a.n + b.n
	d := b.mean - a.mean
	a.mean += d * float64(b.n) / float64(n)
	a.m2 += b.m2 + d*d*float64(a.n)*float64(b.n)/float64(n)
	a.n = n
}

func (a Accumulator) Count() int { return a.n }

// Estimate finalises the accumulator into a point estimate with a Student-t interval.
func (a Accumulator) Estimate() (Estimate, error) {
	if a.n < 2 {
		return Estimate{}, errors.Wrapf(models.ErrInvalidMarketParameters, "need at least 2 samples, got %d", a.n)
	}
	return finish(a.n, a.mean, a.m2/float64(a.n-1)), nil
}

// TQuantile returns the two-sided critical value of Student's t for the given level and
// degrees of freedom.
func TQuantile(level float64, dof int) float64 {
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}
	return t.Quantile(0.5 + level/2)
}

func finish(n int, mean, variance float64) Estimate {
	if variance < 0 {
		variance = 0
	}
	se := math.Sqrt(variance / float64(n))
	half := se * TQuantile(ConfidenceLevel, n-1)
	return Estimate{
		N:        n,
		Mean:     mean,
		Variance: variance,
		StdErr:   se,
		Interval: Interval{Lower: mean - half, Upper: mean + half, Level: ConfidenceLevel},
	}
}
