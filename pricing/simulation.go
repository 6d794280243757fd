package pricing

import (
	"sync"

	"github.com/bcdannyboy/dpricer/models"
	"github.com/bcdannyboy/dpricer/payoff"
	"github.com/bcdannyboy/dpricer/probability"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

type batch struct {
	index int
	paths int
}

// PriceSimulation estimates the price of a path-dependent payoff by Monte Carlo and
// reports a 95% Student-t confidence interval. Paths are split into fixed-size batches;
// batch i draws from src.Stream(i) and workers reduce their batches into partial
// accumulators that are merged in batch order.
func (e *Engine) PriceSimulation(market models.MarketParameters, paths int, p payoff.Spec, src models.RandomSource) (Result, error) {
	if err := market.ValidateDiffusion(); err != nil {
		return Result{}, err
	}
	if paths < 2 {
		return Result{}, errors.Wrapf(models.ErrInvalidMarketParameters, "path count must be at least 2, got %d", paths)
	}
	if p == nil {
		return Result{}, errors.Wrap(payoff.ErrUnsupportedPayoffSpec, "nil payoff")
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if src == nil {
		return Result{}, errors.Wrap(models.ErrInvalidMarketParameters, "nil random source")
	}

	batches := e.split(paths)
	streams := make([]models.NormalSource, len(batches))
	for i := range batches {
		streams[i] = src.Stream(i)
	}

	partials := make([]probability.Accumulator, len(batches))
	errs := make([]error, len(batches))
	discount := market.Discount()

	jobs := make(chan batch, len(batches))
	for _, b := range batches {
		jobs <- b
	}
	close(jobs)

	workers := e.workers
	if workers > len(batches) {
		workers = len(batches)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf []float64
			for b := range jobs {
				partials[b.index], buf, errs[b.index] = e.simulateBatch(market, b.paths, p, streams[b.index], discount, buf)
			}
		}()
	}
	wg.Wait()

	var acc probability.Accumulator
	for i := range partials {
		if errs[i] != nil {
			return Result{}, errors.Wrapf(errs[i], "batch %d", i)
		}
		acc.Merge(partials[i])
	}

	est, err := acc.Estimate()
	if err != nil {
		return Result{}, err
	}

	e.logger.Debug("simulation priced",
		zap.String("payoff", p.Name()),
		zap.Int("steps", market.Steps),
		zap.Int("paths", paths),
		zap.Int("batches", len(batches)),
		zap.Int("workers", workers),
		zap.Float64("price", est.Mean),
		zap.Float64("stderr", est.StdErr),
	)

	interval := est.Interval
	return Result{
		Price:    est.Mean,
		Interval: &interval,
		Variance: est.Variance,
		StdErr:   est.StdErr,
		Paths:    est.N,
	}, nil
}

func (e *Engine) simulateBatch(market models.MarketParameters, n int, p payoff.Spec, src models.NormalSource, discount float64, buf []float64) (probability.Accumulator, []float64, error) {
	var acc probability.Accumulator

	prices, err := e.simulator.Simulate(market, n, src)
	if err != nil {
		return acc, buf, err
	}
	buf, err = payoff.Evaluate(p, prices, buf)
	if err != nil {
		return acc, buf, err
	}

	floats.Scale(discount, buf)
	acc.AddAll(buf)
	return acc, buf, nil
}

// split partitions paths into batches of at most batchSize paths.
func (e *Engine) split(paths int) []batch {
	n := (paths + e.batchSize - 1) / e.batchSize
	out := make([]batch, n)
	for i := range out {
		size := e.batchSize
		if rest := paths - i*e.batchSize; rest < size {
			size = rest
		}
		out[i] = batch{index: i, paths: size}
	}
	return out
}
