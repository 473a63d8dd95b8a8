package kittens

import "math/rand/v2"

// Randomizer is the source of randomness for shuffles and random picks.
// *rand.Rand from math/rand/v2 satisfies it.
type Randomizer interface {
	Shuffle(n int, swap func(i, j int))
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

func (globalRand) IntN(n int) int {
	return rand.IntN(n) //nolint: gosec // gameplay randomness
}

// DefaultRandomizer is safe for concurrent use.
var DefaultRandomizer Randomizer = globalRand{}
