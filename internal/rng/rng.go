// Package rng provides the injectable random source shared by the palette,
// effect and scene packages.
package rng

import (
	"math"
	"math/rand"
	"time"
)

// Source is the subset of *rand.Rand the animation code draws from.
type Source interface {
	Float64() float64
	Intn(n int) int
	Int63() int64
}

// New returns a seeded source. A zero seed picks one from the clock.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Range draws uniformly from [lo, hi].
func Range(r Source, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Angle draws a phase in [0, 2π).
func Angle(r Source) float64 {
	return r.Float64() * 2 * math.Pi
}

// Pick returns a uniformly chosen element of values.
func Pick[T any](r Source, values []T) T {
	return values[r.Intn(len(values))]
}
