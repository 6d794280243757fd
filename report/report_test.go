package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bcdannyboy/dpricer/models"
	"github.com/bcdannyboy/dpricer/pricing"
	"github.com/bcdannyboy/dpricer/probability"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhhuango/json"
)

func TestNewEntry(t *testing.T) {
	e := NewEntry("atm", "lattice", "vanilla-call", pricing.Result{Price: 10.450583572})
	assert.Equal(t, "10.4506", e.Price.String())
	assert.Nil(t, e.Lower)
	assert.Zero(t, e.Paths)

	mc := NewEntry("mc", "montecarlo", "vanilla-call", pricing.Result{
		Price:    1.23456,
		Interval: &probability.Interval{Lower: 1.1, Upper: 1.36912, Level: 0.95},
		StdErr:   0.068,
		Paths:    5000,
	})
	require.NotNil(t, mc.Lower)
	assert.Equal(t, "1.1", mc.Lower.String())
	assert.Equal(t, "1.3691", mc.Upper.String())
	assert.Equal(t, 5000, mc.Paths)
}

func TestWriteJSON(t *testing.T) {
	entries := []Entry{
		NewEntry("atm", "lattice/crr/european", "vanilla-call", pricing.Result{Price: 9.225}).
			WithReference(9.227).
			WithGreeks(models.Greeks{Price: 9.225, Delta: 0.59}),
		Failed("bad", "lattice", "vanilla-put", errors.New("boom")),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, entries))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "atm", decoded[0]["name"])
	assert.Equal(t, "9.225", decoded[0]["price"])
	assert.Equal(t, "9.227", decoded[0]["reference"])
	assert.NotContains(t, decoded[0], "error")
	greeks, ok := decoded[0]["greeks"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 0.59, greeks["delta"])
	assert.Contains(t, greeks, "theta")
	assert.NotContains(t, greeks, "Delta")
	assert.Equal(t, "boom", decoded[1]["error"])
}

func TestWriteTable(t *testing.T) {
	entries := []Entry{
		NewEntry("atm", "lattice", "vanilla-call", pricing.Result{Price: 1234.5}).WithReference(1234.25),
		Failed("bad", "lattice", "vanilla-put", errors.New("boom")),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, entries, "$"))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "PRICE")
	assert.Contains(t, lines[1], "$1,234.50")
	assert.Contains(t, lines[1], "$1,234.25")
	assert.Contains(t, lines[2], "error: boom")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.json")
	entries := []Entry{NewEntry("atm", "lattice", "vanilla-call", pricing.Result{Price: 1.5})}

	require.NoError(t, WriteFile(path, entries))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "1.5", decoded[0]["price"])

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "prices.json"), entries)
	assert.Error(t, err)
}
