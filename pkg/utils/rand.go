package utils

import (
	"math/rand/v2"
)

// Rand is the source of randomness used to pick defaults (collections, ids,
// colors). It is satisfied by *rand.Rand from math/rand/v2.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand uses the global math/rand/v2 generator. It is safe for
// concurrent use.
var DefaultRand Rand = globalRand{}

// NewSeededRand returns a deterministic source initialized with the given
// seed. It must not be shared between goroutines.
func NewSeededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// PickOne returns a random element of the given list.
func PickOne[T any](r Rand, list []T) T {
	return list[r.IntN(len(list))]
}
