package problemgen

import "math/rand/v2"

// Rand is the source of randomness used by generators and planners.
// *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a PCG-backed source. Tests pass a fixed seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DefaultRand returns a randomly seeded source.
func DefaultRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// IntBetween returns a uniform int in [lo, hi].
func IntBetween(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](r Rand, items []T) T {
	return items[r.IntN(len(items))]
}
