package payoff

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// LookbackStyle selects floating or fixed strike lookbacks.
type LookbackStyle int

const (
	Floating LookbackStyle = iota
	Fixed
)

func (l LookbackStyle) String() string {
	if l == Fixed {
		return "fixed"
	}
	return "floating"
}

func ParseLookbackStyle(s string) (LookbackStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "floating", "float":
		return Floating, nil
	case "fixed":
		return Fixed, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedPayoffSpec, "unknown lookback style %q", s)
}

// Lookback pays against the path extreme. Floating: S_T - min (call), max - S_T (put).
// Fixed: max - K (call), K - min (put). Strike is ignored for floating lookbacks.
type Lookback struct {
	Kind   Kind
	Style  LookbackStyle
	Strike float64
}

func NewLookback(kind Kind, style LookbackStyle, strike float64) (Lookback, error) {
	l := Lookback{Kind: kind, Style: style, Strike: strike}
	return l, l.Validate()
}

func (l Lookback) Validate() error {
	if err := l.Kind.validate(); err != nil {
		return err
	}
	switch l.Style {
	case Floating:
		return nil
	case Fixed:
		return checkStrike(l.Strike)
	}
	return errors.Wrapf(ErrUnsupportedPayoffSpec, "unknown lookback style %d", int(l.Style))
}

func (l Lookback) Name() string { return "lookback-" + l.Style.String() + "-" + l.Kind.String() }

func (l Lookback) pathPayoff(s *Summary, j int) float64 {
	switch {
	case l.Style == Floating && l.Kind == Call:
		return math.Max(0, s.Terminal[j]-s.Min[j])
	case l.Style == Floating:
		return math.Max(0, s.Max[j]-s.Terminal[j])
	case l.Kind == Call:
		return math.Max(0, s.Max[j]-l.Strike)
	default:
		return math.Max(0, l.Strike-s.Min[j])
	}
}
