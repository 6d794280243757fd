package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/bcdannyboy/dpricer/models"
	"github.com/bcdannyboy/dpricer/payoff"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/cpu"
	"gopkg.in/yaml.v3"
)

const (
	defaultSeed   = 42
	defaultPaths  = 10000
	defaultOutput = "prices.json"

	EnvSeed    = "DPRICER_SEED"
	EnvWorkers = "DPRICER_WORKERS"
	EnvOutput  = "DPRICER_OUTPUT"
	EnvDebug   = "DPRICER_DEBUG"
)

// Engine selects the pricing pipeline of a contract.
type Engine string

const (
	Lattice    Engine = "lattice"
	MonteCarlo Engine = "montecarlo"
)

type Config struct {
	Seed      uint64
	Workers   int
	Output    string
	Debug     bool
	Contracts []Contract
}

// Contract is one fully resolved pricing request.
type Contract struct {
	Name     string
	Engine   Engine
	Model    models.LatticeModel
	Exercise models.Exercise
	Market   models.MarketParameters
	Paths    int
	Payoff   payoff.Spec
}

type ConfigTmp struct {
	Seed      *uint64       `yaml:"seed,omitempty"`
	Workers   int           `yaml:"workers,omitempty"`
	Output    string        `yaml:"output,omitempty"`
	Contracts []ContractTmp `yaml:"contracts"`
}

type ContractTmp struct {
	Name     string    `yaml:"name"`
	Engine   string    `yaml:"engine"`
	Model    string    `yaml:"model,omitempty"`
	Up       float64   `yaml:"up,omitempty"`
	Exercise string    `yaml:"exercise,omitempty"`
	Paths    int       `yaml:"paths,omitempty"`
	Market   MarketTmp `yaml:"market"`
	Payoff   PayoffTmp `yaml:"payoff"`
}

type MarketTmp struct {
	Spot       float64 `yaml:"spot"`
	Volatility float64 `yaml:"volatility"`
	Rate       float64 `yaml:"rate"`
	Dividend   float64 `yaml:"dividend"`
	Maturity   float64 `yaml:"maturity"`
	Steps      int     `yaml:"steps"`
}

type PayoffTmp struct {
	Type      string  `yaml:"type"`
	Kind      string  `yaml:"kind"`
	Strike    float64 `yaml:"strike"`
	Payout    float64 `yaml:"payout,omitempty"`
	Direction string  `yaml:"direction,omitempty"`
	Trigger   string  `yaml:"trigger,omitempty"`
	Level     float64 `yaml:"level,omitempty"`
	Low       float64 `yaml:"low,omitempty"`
	High      float64 `yaml:"high,omitempty"`
	Style     string  `yaml:"style,omitempty"`
}

// LoadEnv loads .env style files into the process environment. Missing files are skipped.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(err, "load env file %s", f)
		}
	}
	return nil
}

// Load reads a YAML contract batch and applies environment overrides.
func Load(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(f)
}

// Parse decodes a YAML contract batch and applies environment overrides.
func Parse(data []byte) (Config, error) {
	var tmp ConfigTmp
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return Config{}, errors.Wrap(err, "decode yaml config")
	}

	cfg := Config{
		Seed:    defaultSeed,
		Workers: tmp.Workers,
		Output:  tmp.Output,
	}
	if tmp.Seed != nil {
		cfg.Seed = *tmp.Seed
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Output == "" {
		cfg.Output = defaultOutput
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers()
	}

	for i, c := range tmp.Contracts {
		contract, err := c.resolve()
		if err != nil {
			return Config{}, fmt.Errorf("incorrect contract #%d (%s) in yaml config: %w", i, c.Name, err)
		}
		cfg.Contracts = append(cfg.Contracts, contract)
	}

	return cfg, nil
}

// DefaultWorkers is the logical CPU count.
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "incorrect %s", EnvSeed)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "incorrect %s", EnvWorkers)
		}
		cfg.Workers = workers
	}
	if v := os.Getenv(EnvOutput); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "incorrect %s", EnvDebug)
		}
		cfg.Debug = debug
	}
	return nil
}

func (c ContractTmp) resolve() (Contract, error) {
	spec, err := c.Payoff.Build()
	if err != nil {
		return Contract{}, err
	}

	out := Contract{
		Name: c.Name,
		Market: models.MarketParameters{
			Spot:       c.Market.Spot,
			Volatility: c.Market.Volatility,
			Rate:       c.Market.Rate,
			Dividend:   c.Market.Dividend,
			Maturity:   c.Market.Maturity,
			Steps:      c.Market.Steps,
		},
		Paths:  c.Paths,
		Payoff: spec,
	}
	if out.Name == "" {
		out.Name = spec.Name()
	}
	if err := out.Market.Validate(); err != nil {
		return Contract{}, err
	}

	switch Engine(strings.ToLower(c.Engine)) {
	case Lattice, "":
		out.Engine = Lattice
		if _, ok := spec.(payoff.Terminal); !ok {
			return Contract{}, errors.Wrapf(payoff.ErrUnsupportedPayoffSpec, "%s cannot be priced on a lattice", spec.Name())
		}
		if out.Model, err = parseModel(c.Model, c.Up); err != nil {
			return Contract{}, err
		}
		if out.Exercise, err = parseExercise(c.Exercise); err != nil {
			return Contract{}, err
		}
	case MonteCarlo, "mc", "simulation":
		out.Engine = MonteCarlo
		if out.Paths == 0 {
			out.Paths = defaultPaths
		}
		if out.Paths < 2 {
			return Contract{}, errors.Wrapf(models.ErrInvalidMarketParameters, "paths must be at least 2, got %d", out.Paths)
		}
	default:
		return Contract{}, errors.Errorf("unknown engine %q", c.Engine)
	}

	return out, nil
}

// Build maps the YAML payoff block onto a validated payoff spec.
func (p PayoffTmp) Build() (payoff.Spec, error) {
	kind, err := payoff.ParseKind(p.Kind)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(p.Type)) {
	case "vanilla", "european", "":
		return payoff.NewVanilla(kind, p.Strike)
	case "binary", "cash-or-nothing":
		return payoff.NewBinary(kind, p.Strike, p.Payout)
	case "asian", "arithmetic-asian":
		return payoff.NewArithmeticAsian(kind, p.Strike)
	case "geometric-asian":
		return payoff.NewGeometricAsian(kind, p.Strike)
	case "harmonic-asian":
		return payoff.NewHarmonicAsian(kind, p.Strike)
	case "one-touch", "onetouch":
		return payoff.NewOneTouch(kind, p.Strike)
	case "barrier":
		dir, err := payoff.ParseDirection(p.Direction)
		if err != nil {
			return nil, err
		}
		trig, err := payoff.ParseTrigger(p.Trigger)
		if err != nil {
			return nil, err
		}
		return payoff.NewBarrier(kind, p.Strike, dir, trig, p.Level)
	case "lookback":
		style, err := payoff.ParseLookbackStyle(p.Style)
		if err != nil {
			return nil, err
		}
		return payoff.NewLookback(kind, style, p.Strike)
	case "double-barrier":
		return payoff.NewDoubleBarrier(kind, p.Strike, p.Low, p.High)
	}
	return nil, errors.Wrapf(payoff.ErrUnsupportedPayoffSpec, "unknown payoff type %q", p.Type)
}

func parseModel(name string, up float64) (models.LatticeModel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "crr", "":
		return models.CRR{}, nil
	case "constant", "constant-scale":
		if up <= 1 {
			return nil, errors.Wrapf(models.ErrInvalidMarketParameters, "constant-scale model needs up > 1, got %v", up)
		}
		return models.ConstantScale{Up: up}, nil
	}
	return nil, errors.Errorf("unknown lattice model %q", name)
}

func parseExercise(s string) (models.Exercise, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "european", "":
		return models.European, nil
	case "american":
		return models.American, nil
	}
	return 0, errors.Wrapf(payoff.ErrUnsupportedPayoffSpec, "unknown exercise style %q", s)
}
