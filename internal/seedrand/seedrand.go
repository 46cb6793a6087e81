// Package seedrand provides the seeded generator behind every randomized
// choice in generated artifacts.
//
// The stream is PCG-DXSM (math/rand/v2 PCG) seeded with (seed, seed), and
// bounded draws use 64-bit rejection sampling implemented here rather than
// Rand.IntN, so the mapping from seed to choices is fully specified by this
// package and can be reproduced by any other implementation.
package seedrand

import (
	"fmt"
	"math/rand/v2"
)

// Rand is a deterministic, single-goroutine random source.
type Rand struct {
	src   *rand.PCG
	draws int
}

// New returns a generator seeded with seed.
func New(seed int64) *Rand {
	s := uint64(seed)
	return &Rand{src: rand.NewPCG(s, s)}
}

// Uint64 returns the next raw 64-bit value.
func (r *Rand) Uint64() uint64 {
	r.draws++
	return r.src.Uint64()
}

// Intn returns a uniform value in [0, n). It panics if n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("seedrand: invalid bound %d", n))
	}
	bound := uint64(n)
	// Values below threshold would bias the modulo; 2^64 mod bound of them exist.
	threshold := -bound % bound
	for {
		v := r.Uint64()
		if v >= threshold {
			return int(v % bound)
		}
	}
}

// Draws reports how many raw values have been consumed.
func (r *Rand) Draws() int {
	return r.draws
}

// Choice returns one element of items, consuming exactly one bounded draw.
// Duplicate entries weight the pool.
func Choice[T any](r *Rand, items []T) T {
	return items[r.Intn(len(items))]
}
