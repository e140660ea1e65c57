// Package rng provides the seedable random source used for tile spawning
// and randomized solvers.
package rng

import (
	"math/rand"
	"time"
)

// Source draws uniform indices and weighted categories.
// Implementations need not be safe for concurrent use: every Game owns its
// own source.
type Source interface {
	// Intn returns a uniform integer in [0, n). Panics if n <= 0.
	Intn(n int) int

	// Choice returns an index into weights, drawn with probability
	// proportional to its weight. Panics if weights is empty.
	Choice(weights []float64) int
}

// Rand is a Source backed by math/rand.
type Rand struct {
	r *rand.Rand
}

// New returns a deterministic source for the given seed.
func New(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// NewRandom returns a source seeded from the current time.
func NewRandom() *Rand {
	return New(time.Now().UnixNano())
}

// Intn implements Source.
func (r *Rand) Intn(n int) int {
	return r.r.Intn(n)
}

// Choice implements Source.
func (r *Rand) Choice(weights []float64) int {
	return choose(weights, r.r.Float64())
}

// choose maps a uniform draw u in [0, 1) onto weights.
func choose(weights []float64, u float64) int {
	if len(weights) == 0 {
		panic("rng: Choice called with no weights")
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}

	x := u * total
	for i, w := range weights {
		if x < w {
			return i
		}
		x -= w
	}
	// Rounding can leave x marginally above the last weight.
	return len(weights) - 1
}
