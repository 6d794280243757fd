package payoff

import (
	"math"

	"github.com/pkg/errors"
)

// Vanilla pays max(0, S_T - K) or max(0, K - S_T).
type Vanilla struct {
	Kind   Kind
	Strike float64
}

func NewVanilla(kind Kind, strike float64) (Vanilla, error) {
	v := Vanilla{Kind: kind, Strike: strike}
	return v, v.Validate()
}

func (v Vanilla) Validate() error {
	if err := v.Kind.validate(); err != nil {
		return err
	}
	return checkStrike(v.Strike)
}

func (v Vanilla) Name() string { return "vanilla-" + v.Kind.String() }

func (v Vanilla) Terminal(price float64) float64 { return vanilla(v.Kind, v.Strike, price) }

func (v Vanilla) pathPayoff(s *Summary, j int) float64 { return v.Terminal(s.Terminal[j]) }

// Binary is a cash-or-nothing option paying Payout when the terminal price is strictly
// above (call) or strictly below (put) the strike.
type Binary struct {
	Kind   Kind
	Strike float64
	Payout float64
}

func NewBinary(kind Kind, strike, payout float64) (Binary, error) {
	b := Binary{Kind: kind, Strike: strike, Payout: payout}
	return b, b.Validate()
}

func (b Binary) Validate() error {
	if err := b.Kind.validate(); err != nil {
		return err
	}
	if err := checkStrike(b.Strike); err != nil {
		return err
	}
	if math.IsNaN(b.Payout) || math.IsInf(b.Payout, 0) || b.Payout <= 0 {
		return errors.Wrapf(ErrUnsupportedPayoffSpec, "binary payout must be positive, got %v", b.Payout)
	}
	return nil
}

func (b Binary) Name() string { return "binary-" + b.Kind.String() }

func (b Binary) Terminal(price float64) float64 {
	if (b.Kind == Call && price > b.Strike) || (b.Kind == Put && price < b.Strike) {
		return b.Payout
	}
	return 0
}

func (b Binary) pathPayoff(s *Summary, j int) float64 { return b.Terminal(s.Terminal[j]) }
