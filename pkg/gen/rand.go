package gen

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Rand is the seeded source every generator draws from. It remembers its seed
// so a failing run can be replayed.
//
// A Rand is not safe for concurrent use. Give each trial loop its own instance.
type Rand struct {
	rng  *rand.Rand
	seed uint64
}

// NewRand creates a Rand from a seed.
func NewRand(seed uint64) *Rand {
	return &Rand{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

var (
	defaultOnce sync.Once
	defaultRand *Rand
)

// Default returns the process-wide Rand, seeded from the clock on first use.
// It exists for top-level entry points only; pass an explicit Rand everywhere else.
func Default() *Rand {
	defaultOnce.Do(func() {
		defaultRand = NewRand(uint64(time.Now().UnixNano()))
	})
	return defaultRand
}

// Seed returns the seed this Rand was created with.
func (r *Rand) Seed() uint64 {
	return r.seed
}

// IntN returns a uniform int in [0, n). Panics if n <= 0.
func (r *Rand) IntN(n int) int {
	return r.rng.IntN(n)
}

// Uint64 returns a uniform uint64.
func (r *Rand) Uint64() uint64 {
	return r.rng.Uint64()
}

// Uint64N returns a uniform uint64 in [0, n). Panics if n == 0.
func (r *Rand) Uint64N(n uint64) uint64 {
	return r.rng.Uint64N(n)
}

// Float64 returns a uniform float64 in [0.0, 1.0).
func (r *Rand) Float64() float64 {
	return r.rng.Float64()
}

// Bool returns true or false with equal probability.
func (r *Rand) Bool() bool {
	return r.rng.Uint64()&1 == 1
}

// Fork derives an independent Rand from the next value of this stream.
func (r *Rand) Fork() *Rand {
	return NewRand(r.rng.Uint64())
}
