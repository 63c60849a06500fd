package domain

import "math/rand/v2"

type autoRNG struct{}

func (autoRNG) Intn(n int) int { return rand.IntN(n) }

type seededRNG struct{ r *rand.Rand }

func (s seededRNG) Intn(n int) int { return s.r.IntN(n) }

// NewRNG returns an auto-seeded RNG for seed 0 and a reproducible one
// otherwise.
func NewRNG(seed uint64) RNG {
	if seed == 0 {
		return autoRNG{}
	}
	return seededRNG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}
