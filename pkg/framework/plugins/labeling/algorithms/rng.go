package algorithms

import (
	"golang.org/x/exp/rand"
)

// DefaultSeed replaces a zero seed so that every stream is reproducible.
const DefaultSeed uint64 = 1

// NewRand returns a deterministic generator for seed. Generators are not safe
// for concurrent use; derive one per worker with DeriveRand.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// DeriveRand creates an independent stream from base. It consumes one value
// from base, so derivations must happen in a fixed order to stay reproducible.
func DeriveRand(base *rand.Rand, stream uint64) *rand.Rand {
	parent := DefaultSeed
	if base != nil {
		parent = base.Uint64()
	}
	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}

// deriveSeed is the SplitMix64 finalizer applied to parent and stream.
func deriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	if x == 0 {
		return DefaultSeed
	}
	return x
}
