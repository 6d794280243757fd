// Package payoff defines the closed set of contract payoffs priced by the lattice and
// Monte Carlo engines, and evaluates them against terminal prices or simulated paths.
package payoff

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedPayoffSpec is returned for a payoff whose parameters are incomplete or
// inconsistent.
var ErrUnsupportedPayoffSpec = errors.New("unsupported payoff spec")

// Kind selects the call or put side of a payoff.
type Kind int

const (
	Call Kind = iota
	Put
)

func (k Kind) String() string {
	switch k {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps "call" or "put" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedPayoffSpec, "unknown option kind %q", s)
}

func (k Kind) validate() error {
	if k != Call && k != Put {
		return errors.Wrapf(ErrUnsupportedPayoffSpec, "unknown option kind %d", int(k))
	}
	return nil
}

// Spec is a payoff that can be evaluated over simulated paths. The set of
// implementations is closed to this package.
type Spec interface {
	Validate() error
	Name() string
	pathPayoff(s *Summary, j int) float64
}

// Terminal is a Spec that depends on the terminal price only and can therefore be
// priced on a lattice.
type Terminal interface {
	Spec
	Terminal(price float64) float64
}

func vanilla(k Kind, strike, s float64) float64 {
	if k == Call {
		return math.Max(0, s-strike)
	}
	return math.Max(0, strike-s)
}

func checkStrike(strike float64) error {
	if math.IsNaN(strike) || math.IsInf(strike, 0) || strike < 0 {
		return errors.Wrapf(ErrUnsupportedPayoffSpec, "strike must be a non-negative number, got %v", strike)
	}
	return nil
}

func checkLevel(name string, level float64) error {
	if math.IsNaN(level) || math.IsInf(level, 0) || level <= 0 {
		return errors.Wrapf(ErrUnsupportedPayoffSpec, "%s must be a positive number, got %v", name, level)
	}
	return nil
}
