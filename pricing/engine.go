// Package pricing orchestrates the lattice and Monte Carlo pipelines.
package pricing

import (
	"runtime"

	"github.com/bcdannyboy/dpricer/models"
	"github.com/bcdannyboy/dpricer/probability"
	"go.uber.org/zap"
)

const (
	defaultBatchSize = 2048
)

// Result is the outcome of one pricing call. Interval is nil for lattice prices, which
// are exact within the model.
type Result struct {
	Price    float64
	Interval *probability.Interval
	Variance float64
	StdErr   float64
	Paths    int
}

// Engine prices contracts. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	logger    *zap.Logger
	workers   int
	batchSize int
	simulator models.PathSimulator
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithWorkers sets the number of simulation workers.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithBatchSize sets how many paths a worker simulates per batch. Batches, not workers,
// own the random streams, so results depend on the batch size but not on the worker count.
func WithBatchSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:    zap.NewNop(),
		workers:   runtime.GOMAXPROCS(0),
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Workers() int { return e.workers }
