// Command dpricer prices a batch of single-asset derivative contracts described in a
// YAML file, on a binomial lattice or by Monte Carlo simulation.
//
// Usage:
//
//	dpricer -config contracts.yaml [-out prices.json] [-env .env]
//
// Environment (optionally from the .env file): DPRICER_SEED, DPRICER_WORKERS,
// DPRICER_OUTPUT, DPRICER_DEBUG.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/bcdannyboy/dpricer/config"
	"github.com/bcdannyboy/dpricer/models"
	"github.com/bcdannyboy/dpricer/payoff"
	"github.com/bcdannyboy/dpricer/pricing"
	"github.com/bcdannyboy/dpricer/report"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	configPath := flag.String("config", "contracts.yaml", "path to yaml contract batch")
	out := flag.String("out", "", "path of the json report")
	envFile := flag.String("env", ".env", "optional env file")
	flag.Parse()

	if err := config.LoadEnv(*envFile); err != nil {
		return err
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *out != "" {
		cfg.Output = *out
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	engine := pricing.NewEngine(pricing.WithLogger(logger), pricing.WithWorkers(cfg.Workers))
	src := models.NewSeededSource(cfg.Seed)

	logger.Info("pricing batch",
		zap.String("config", *configPath),
		zap.Int("contracts", len(cfg.Contracts)),
		zap.Int("workers", engine.Workers()),
		zap.Uint64("seed", cfg.Seed),
	)

	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(int64(len(cfg.Contracts)),
		mpb.PrependDecorators(
			decor.Name("Pricing"),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
		),
	)

	start := time.Now()
	entries := make([]report.Entry, len(cfg.Contracts))

	// Every contract draws from the same seeded streams, so contracts on the same
	// market share their random numbers.
	g := new(errgroup.Group)
	for i, c := range cfg.Contracts {
		i, c := i, c
		g.Go(func() error {
			defer bar.Increment()
			entries[i] = priceContract(engine, c, src, logger)
			return nil
		})
	}
	_ = g.Wait()
	p.Wait()

	logger.Info("batch priced", zap.Duration("elapsed", time.Since(start)))

	if err := report.WriteTable(os.Stdout, entries, "$"); err != nil {
		logger.Error("print table", zap.Error(err))
	}

	if err := report.WriteFile(cfg.Output, entries); err != nil {
		logger.Error("write report", zap.String("path", cfg.Output), zap.Error(err))
		return err
	}
	logger.Info("report written", zap.String("path", cfg.Output), zap.Int("entries", len(entries)))
	return nil
}

func priceContract(engine *pricing.Engine, c config.Contract, src models.RandomSource, logger *zap.Logger) report.Entry {
	if c.Engine == config.Lattice {
		return priceLattice(engine, c, logger)
	}

	res, err := engine.PriceSimulation(c.Market, c.Paths, c.Payoff, src)
	if err != nil {
		logger.Warn("simulation failed", zap.String("contract", c.Name), zap.Error(err))
		return report.Failed(c.Name, string(c.Engine), c.Payoff.Name(), err)
	}

	entry := report.NewEntry(c.Name, string(c.Engine), c.Payoff.Name(), res)
	if ref, ok := closedForm(c); ok {
		entry = entry.WithReference(ref)
	}
	return entry
}

func priceLattice(engine *pricing.Engine, c config.Contract, logger *zap.Logger) report.Entry {
	label := string(c.Engine) + "/" + c.Model.Name() + "/" + c.Exercise.String()

	term, ok := c.Payoff.(payoff.Terminal)
	if !ok {
		return report.Failed(c.Name, label, c.Payoff.Name(), payoff.ErrUnsupportedPayoffSpec)
	}

	res, err := engine.PriceLattice(c.Model, c.Market, c.Exercise, term)
	if err != nil {
		logger.Warn("lattice failed", zap.String("contract", c.Name), zap.Error(err))
		return report.Failed(c.Name, label, c.Payoff.Name(), err)
	}

	entry := report.NewEntry(c.Name, label, c.Payoff.Name(), res)
	if c.Market.Steps >= 2 {
		g, err := engine.LatticeGreeks(c.Model, c.Market, c.Exercise, term)
		if err != nil {
			logger.Warn("lattice greeks failed", zap.String("contract", c.Name), zap.Error(err))
		} else {
			entry = entry.WithGreeks(g)
		}
	}

	// The constant-scale tree ignores volatility, so a closed form would not be comparable.
	if _, crr := c.Model.(models.CRR); crr && c.Exercise == models.European {
		if ref, ok := closedForm(c); ok {
			entry = entry.WithReference(ref)
		}
	}
	return entry
}

// closedForm returns the Black-Scholes-Merton price for terminal payoffs.
func closedForm(c config.Contract) (float64, bool) {
	switch p := c.Payoff.(type) {
	case payoff.Vanilla:
		res, err := models.BlackScholes(c.Market, p.Strike, p.Kind == payoff.Call)
		if err != nil {
			return 0, false
		}
		return res.Price, true
	case payoff.Binary:
		price, err := models.CashOrNothing(c.Market, p.Strike, p.Payout, p.Kind == payoff.Call)
		if err != nil {
			return 0, false
		}
		return price, true
	}
	return 0, false
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
