package phone

import (
	"math/rand/v2"
)

// RandSource picks region codes. *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// NewSeededRand returns a reproducible source: equal seeds give equal
// country sequences.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRand returns a source seeded from runtime entropy.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// RandFromSeed returns NewSeededRand for a non-zero seed and NewRand otherwise.
func RandFromSeed(seed uint64) *rand.Rand {
	if seed == 0 {
		return NewRand()
	}
	return NewSeededRand(seed)
}
