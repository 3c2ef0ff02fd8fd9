package boardrng

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// RNG is a deterministic pseudo-random source scoped to one pipeline
// stage. Its seed is derived from the run's master seed, the stage
// name, and a hash of the active configuration:
//
//	seed_stage = H(masterSeed, stageName, configHash)
//
// where H is SHA-256 truncated to its first 8 bytes. Two runs with the
// same master seed and config therefore drive each stage with bit-
// identical randomness regardless of what other stages consumed.
type RNG struct {
	seed      uint64
	stageName string
	source    *rand.Rand
}

// New derives a stage-specific RNG from masterSeed, stageName, and
// configHash (typically boardconfig.Config.Hash()).
func New(masterSeed uint64, stageName string, configHash []byte) *RNG {
	h := sha256.New()

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], masterSeed)
	h.Write(buf[:])
	h.Write([]byte(stageName))
	h.Write(configHash)

	hash := h.Sum(nil)
	derivedSeed := binary.BigEndian.Uint64(hash[:8])

	return &RNG{
		seed:      derivedSeed,
		stageName: stageName,
		source:    rand.New(rand.NewSource(int64(derivedSeed))),
	}
}

// Uint64 returns a pseudo-random 64-bit unsigned integer.
func (r *RNG) Uint64() uint64 {
	return r.source.Uint64()
}

// Intn returns a pseudo-random integer in [0, n). Panics if n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("boardrng: Intn argument must be positive")
	}
	return r.source.Intn(n)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	return r.source.Float64()
}

// Seed returns the derived seed for this stage, useful for diagnostics.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// StageName returns the stage name this RNG was derived for.
func (r *RNG) StageName() string {
	return r.stageName
}

// IntRange returns a pseudo-random integer in [min, max]. Panics if
// min > max.
func (r *RNG) IntRange(min, max int) int {
	if min > max {
		panic("boardrng: IntRange min must be <= max")
	}
	if min == max {
		return min
	}
	return min + r.source.Intn(max-min+1)
}

// Float64Range returns a pseudo-random float64 in [min, max). Panics if
// min >= max.
func (r *RNG) Float64Range(min, max float64) float64 {
	if min >= max {
		panic("boardrng: Float64Range min must be < max")
	}
	return min + r.source.Float64()*(max-min)
}

// Bool returns a pseudo-random boolean, used by the SA placer to choose
// between a swap move and a nudge move.
func (r *RNG) Bool() bool {
	return r.source.Intn(2) == 1
}
