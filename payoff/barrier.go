package payoff

import (
	"strings"

	"github.com/pkg/errors"
)

// Direction is the side from which a barrier is approached.
type Direction int

const (
	Up Direction = iota
	Down
)

// Trigger says whether touching the barrier activates or cancels the payoff.
type Trigger int

const (
	KnockIn Trigger = iota
	KnockOut
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

func (t Trigger) String() string {
	if t == KnockOut {
		return "out"
	}
	return "in"
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedPayoffSpec, "unknown barrier direction %q", s)
}

func ParseTrigger(s string) (Trigger, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "knock-in", "knockin":
		return KnockIn, nil
	case "out", "knock-out", "knockout":
		return KnockOut, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedPayoffSpec, "unknown barrier trigger %q", s)
}

// OneTouch pays 1 if the path ever trades above the strike (call) or below it (put).
type OneTouch struct {
	Kind   Kind
	Strike float64
}

func NewOneTouch(kind Kind, strike float64) (OneTouch, error) {
	o := OneTouch{Kind: kind, Strike: strike}
	return o, o.Validate()
}

func (o OneTouch) Validate() error {
	if err := o.Kind.validate(); err != nil {
		return err
	}
	return checkLevel("one-touch level", o.Strike)
}

func (o OneTouch) Name() string { return "one-touch-" + o.Kind.String() }

func (o OneTouch) pathPayoff(s *Summary, j int) float64 {
	if (o.Kind == Call && s.Max[j] > o.Strike) || (o.Kind == Put && s.Min[j] < o.Strike) {
		return 1
	}
	return 0
}

// Barrier is a vanilla payoff switched on or off by a single monitored level.
type Barrier struct {
	Kind      Kind
	Strike    float64
	Direction Direction
	Trigger   Trigger
	Level     float64
}

func NewBarrier(kind Kind, strike float64, dir Direction, trig Trigger, level float64) (Barrier, error) {
	b := Barrier{Kind: kind, Strike: strike, Direction: dir, Trigger: trig, Level: level}
	return b, b.Validate()
}

func (b Barrier) Validate() error {
	if err := b.Kind.validate(); err != nil {
		return err
	}
	if err := checkStrike(b.Strike); err != nil {
		return err
	}
	if b.Direction != Up && b.Direction != Down {
		return errors.Wrapf(ErrUnsupportedPayoffSpec, "unknown barrier direction %d", int(b.Direction))
	}
	if b.Trigger != KnockIn && b.Trigger != KnockOut {
		return errors.Wrapf(ErrUnsupportedPayoffSpec, "unknown barrier trigger %d", int(b.Trigger))
	}
	return checkLevel("barrier level", b.Level)
}

func (b Barrier) Name() string {
	return "barrier-" + b.Direction.String() + "-" + b.Trigger.String() + "-" + b.Kind.String()
}

// alive reports whether the barrier condition holds over the whole path.
func (b Barrier) alive(s *Summary, j int) bool {
	switch {
	case b.Direction == Up && b.Trigger == KnockIn:
		return s.Max[j] > b.Level
	case b.Direction == Up:
		return s.Max[j] < b.Level
	case b.Trigger == KnockIn:
		return s.Min[j] < b.Level
	default:
		return s.Min[j] > b.Level
	}
}

func (b Barrier) pathPayoff(s *Summary, j int) float64 {
	if !b.alive(s, j) {
		return 0
	}
	return vanilla(b.Kind, b.Strike, s.Terminal[j])
}

// DoubleBarrier is a vanilla payoff knocked out when the path reaches either level.
type DoubleBarrier struct {
	Kind   Kind
	Strike float64
	Low    float64
	High   float64
}

func NewDoubleBarrier(kind Kind, strike, low, high float64) (DoubleBarrier, error) {
	d := DoubleBarrier{Kind: kind, Strike: strike, Low: low, High: high}
	return d, d.Validate()
}

func (d DoubleBarrier) Validate() error {
	if err := d.Kind.validate(); err != nil {
		return err
	}
	if err := checkStrike(d.Strike); err != nil {
		return err
	}
	if err := checkLevel("lower barrier", d.Low); err != nil {
		return err
	}
	if err := checkLevel("upper barrier", d.High); err != nil {
		return err
	}
	if d.Low >= d.High {
		return errors.Wrapf(ErrUnsupportedPayoffSpec, "lower barrier %v must be below upper barrier %v", d.Low, d.High)
	}
	return nil
}

func (d DoubleBarrier) Name() string { return "double-barrier-" + d.Kind.String() }

func (d DoubleBarrier) pathPayoff(s *Summary, j int) float64 {
	if s.Max[j] < d.High && s.Min[j] > d.Low {
		return vanilla(d.Kind, d.Strike, s.Terminal[j])
	}
	return 0
}
