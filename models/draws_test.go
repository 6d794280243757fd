package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func draw(src NormalSource, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = src.NormFloat64()
	}
	return out
}

func TestSeededSourceIsReproducible(t *testing.T) {
	a := NewSeededSource(7)
	b := NewSeededSource(7)

	assert.Equal(t, draw(a.Stream(3), 64), draw(b.Stream(3), 64))
}

func TestSeededSourceStreamsDiffer(t *testing.T) {
	src := NewSeededSource(7)

	assert.NotEqual(t, draw(src.Stream(0), 16), draw(src.Stream(1), 16))
	assert.NotEqual(t, draw(src.Stream(0), 16), draw(NewSeededSource(8).Stream(0), 16))
}
