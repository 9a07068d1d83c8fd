// internal/rng/rng.go
//
// Randomness used by the game: target selection, variant selection and
// suggestion shuffling.
//
// Two implementations:
//   - Default(): process-wide source, safe for concurrent use across sessions.
//   - NewSeeded(seed): deterministic source for tests and replays. Not safe
//     for concurrent use.

package rng

import (
	"math/rand/v2"
)

// Source produces uniform integers and shuffles.
type Source interface {
	// IntRange returns a uniform integer in [lo, hi]. Panics if lo > hi.
	IntRange(lo, hi int) int
	// Shuffle permutes n elements using swap (Fisher–Yates).
	Shuffle(n int, swap func(i, j int))
}

type global struct{}

// Default returns the process-wide source backed by math/rand/v2's
// auto-seeded top-level generator.
func Default() Source { return global{} }

func (global) IntRange(lo, hi int) int {
	if lo > hi {
		panic("rng: IntRange lo > hi")
	}
	return lo + rand.IntN(hi-lo+1)
}

func (global) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Seeded is a deterministic Source.
type Seeded struct {
	r *rand.Rand
}

// NewSeeded returns a deterministic source; equal seeds yield equal sequences.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Seeded) IntRange(lo, hi int) int {
	if lo > hi {
		panic("rng: IntRange lo > hi")
	}
	return lo + s.r.IntN(hi-lo+1)
}

func (s *Seeded) Shuffle(n int, swap func(i, j int)) { s.r.Shuffle(n, swap) }
