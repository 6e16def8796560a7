package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float32 returns a random value in [0, 1).
func (r *RNG) Float32() float32 {
	return r.r.Float32()
}

// FillNoise sets roughly density*len(buf) entries of buf to random values in
// [0, 1). Entries that are not picked are left untouched.
func (r *RNG) FillNoise(buf []float32, density float64) {
	if density <= 0 {
		return
	}
	for i := range buf {
		if r.r.Float64() < density {
			buf[i] = r.r.Float32()
		}
	}
}
