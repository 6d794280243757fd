package models

import "golang.org/x/exp/rand"

// NormalSource supplies independent standard-normal draws.
type NormalSource interface {
	NormFloat64() float64
}

// RandomSource hands out independent normal streams. Simulation workers each take
// their own stream, so a source never has to be safe for concurrent use per stream.
type RandomSource interface {
	Stream(id int) NormalSource
}

// SeededSource derives reproducible PCG streams from a base seed.
type SeededSource struct {
	seed uint64
}

func NewSeededSource(seed uint64) SeededSource {
	return SeededSource{seed: seed}
}

// Stream returns a generator whose seed is a splitmix64 scramble of the base seed and id.
func (s SeededSource) Stream(id int) NormalSource {
	return rand.New(rand.NewSource(splitmix64(s.seed + uint64(id)*0x9e3779b97f4a7c15)))
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
