package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Every deck shuffle and bot decision in the process draws from a source
// built here, so a single seed reproduces a whole session.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns an independent stream for a sub-component (a table, a
// simulator worker) so that parallel consumers of one seed never share state.
func Derive(seed int64, stream uint64) *rand.Rand {
	u := uint64(seed) ^ mix(stream+1)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64*(stream+1))))
}

// Seed returns a seed from the wall clock for callers that did not ask for
// a fixed one. Log it so the run can be replayed.
func Seed() int64 {
	return time.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
