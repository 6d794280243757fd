// Package report renders pricing results for people and machines.
package report

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/bcdannyboy/dpricer/models"
	"github.com/bcdannyboy/dpricer/pricing"
	"github.com/leekchan/accounting"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xhhuango/json"
)

const places = 4

// Entry is one priced contract in the batch report.
type Entry struct {
	Name      string           `json:"name"`
	Engine    string           `json:"engine"`
	Payoff    string           `json:"payoff"`
	Price     decimal.Decimal  `json:"price"`
	Lower     *decimal.Decimal `json:"lower,omitempty"`
	Upper     *decimal.Decimal `json:"upper,omitempty"`
	StdErr    *decimal.Decimal `json:"stderr,omitempty"`
	Paths     int              `json:"paths,omitempty"`
	Reference *decimal.Decimal `json:"reference,omitempty"`
	Greeks    *models.Greeks   `json:"greeks,omitempty"`
	Error     string           `json:"error,omitempty"`
}

func round(x float64) decimal.Decimal {
	return decimal.NewFromFloat(x).Round(places)
}

func roundPtr(x float64) *decimal.Decimal {
	d := round(x)
	return &d
}

// NewEntry converts an engine result into a report entry.
func NewEntry(name, engine, payoffName string, res pricing.Result) Entry {
	e := Entry{
		Name:   name,
		Engine: engine,
		Payoff: payoffName,
		Price:  round(res.Price),
	}
	if res.Interval != nil {
		e.Lower = roundPtr(res.Interval.Lower)
		e.Upper = roundPtr(res.Interval.Upper)
		e.StdErr = roundPtr(res.StdErr)
		e.Paths = res.Paths
	}
	return e
}

// Failed records a contract that could not be priced.
func Failed(name, engine, payoffName string, err error) Entry {
	return Entry{Name: name, Engine: engine, Payoff: payoffName, Error: err.Error()}
}

// WithReference attaches a closed-form reference price.
func (e Entry) WithReference(price float64) Entry {
	e.Reference = roundPtr(price)
	return e
}

// WithGreeks attaches lattice greeks.
func (e Entry) WithGreeks(g models.Greeks) Entry {
	e.Greeks = &g
	return e
}

// WriteJSON encodes the entries as a JSON array.
func WriteJSON(w io.Writer, entries []Entry) error {
	b, err := json.Marshal(entries)
	if err != nil {
		return errors.Wrap(err, "marshal report")
	}
	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "write report")
	}
	return nil
}

// WriteFile writes the JSON report to path, replacing any existing file.
func WriteFile(path string, entries []Entry) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create report %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close report %s", path)
		}
	}()

	return WriteJSON(f, entries)
}

// WriteTable prints a currency formatted summary.
func WriteTable(w io.Writer, entries []Entry, symbol string) error {
	ac := accounting.Accounting{Symbol: symbol, Precision: 2}
	money := func(d *decimal.Decimal) string {
		if d == nil {
			return "-"
		}
		return ac.FormatMoney(d.InexactFloat64())
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tENGINE\tPAYOFF\tPRICE\t95% CI\tREFERENCE")
	for _, e := range entries {
		if e.Error != "" {
			fmt.Fprintf(tw, "%s\t%s\t%s\terror: %s\t\t\n", e.Name, e.Engine, e.Payoff, e.Error)
			continue
		}
		ci := "-"
		if e.Lower != nil && e.Upper != nil {
			ci = fmt.Sprintf("[%s, %s]", money(e.Lower), money(e.Upper))
		}
		price := e.Price
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.Name, e.Engine, e.Payoff, money(&price), ci, money(e.Reference))
	}
	return tw.Flush()
}
