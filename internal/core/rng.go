package core

import "math/rand/v2"

// NewRand returns a deterministic PCG-backed generator for seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}
