package ai

import "math/rand/v2"

// Source is the randomness the selector draws from. Tests substitute
// fixed sequences to make selection deterministic.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// Global draws from the math/rand/v2 top-level generator and is safe for
// concurrent use.
var Global Source = globalSource{}

// NewSeeded returns a reproducible source. It is not safe for concurrent use.
func NewSeeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
