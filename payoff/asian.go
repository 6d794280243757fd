package payoff

// ArithmeticAsian pays the vanilla payoff on the arithmetic mean of all N+1 prices.
type ArithmeticAsian struct {
	Kind   Kind
	Strike float64
}

// GeometricAsian pays the vanilla payoff on the geometric mean of all N+1 prices.
type GeometricAsian struct {
	Kind   Kind
	Strike float64
}

// HarmonicAsian pays the vanilla payoff on the harmonic mean of all N+1 prices.
type HarmonicAsian struct {
	Kind   Kind
	Strike float64
}

func NewArithmeticAsian(kind Kind, strike float64) (ArithmeticAsian, error) {
	a := ArithmeticAsian{Kind: kind, Strike: strike}
	return a, a.Validate()
}

func NewGeometricAsian(kind Kind, strike float64) (GeometricAsian, error) {
	g := GeometricAsian{Kind: kind, Strike: strike}
	return g, g.Validate()
}

func NewHarmonicAsian(kind Kind, strike float64) (HarmonicAsian, error) {
	h := HarmonicAsian{Kind: kind, Strike: strike}
	return h, h.Validate()
}

func validateAsian(k Kind, strike float64) error {
	if err := k.validate(); err != nil {
		return err
	}
	return checkStrike(strike)
}

func (a ArithmeticAsian) Validate() error { return validateAsian(a.Kind, a.Strike) }
func (g GeometricAsian) Validate() error  { return validateAsian(g.Kind, g.Strike) }
func (h HarmonicAsian) Validate() error   { return validateAsian(h.Kind, h.Strike) }

func (a ArithmeticAsian) Name() string { return "asian-arithmetic-" + a.Kind.String() }
func (g GeometricAsian) Name() string  { return "asian-geometric-" + g.Kind.String() }
func (h HarmonicAsian) Name() string   { return "asian-harmonic-" + h.Kind.String() }

func (a ArithmeticAsian) pathPayoff(s *Summary, j int) float64 {
	return vanilla(a.Kind, a.Strike, s.Mean[j])
}

func (g GeometricAsian) pathPayoff(s *Summary, j int) float64 {
	return vanilla(g.Kind, g.Strike, s.GeoMean[j])
}

func (h HarmonicAsian) pathPayoff(s *Summary, j int) float64 {
	return vanilla(h.Kind, h.Strike, s.HarmMean[j])
}
