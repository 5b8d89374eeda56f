package blanks

import (
	"math/rand/v2"
	"sync"
)

// Policy chooses which eligible word positions become blanks.
// candidates is in ascending order; n never exceeds len(candidates).
type Policy interface {
	Pick(candidates []int, n int) []int
}

// EvenlySpaced picks the middle candidate of n equal-width buckets.
// It is deterministic.
type EvenlySpaced struct{}

func (EvenlySpaced) Pick(candidates []int, n int) []int {
	if n >= len(candidates) {
		return append([]int(nil), candidates...)
	}
	out := make([]int, n)
	for i := range n {
		out[i] = candidates[(2*i+1)*len(candidates)/(2*n)]
	}
	return out
}

// Random picks uniformly without replacement.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a Random policy seeded for reproducibility.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *Random) Pick(candidates []int, n int) []int {
	r.mu.Lock()
	perm := r.rng.Perm(len(candidates))
	r.mu.Unlock()

	if n > len(perm) {
		n = len(perm)
	}
	out := make([]int, n)
	for i := range n {
		out[i] = candidates[perm[i]]
	}
	return out
}

// PolicyByName resolves a configured policy name ("even" or "random").
func PolicyByName(name string, seed uint64) Policy {
	if name == "random" {
		return NewRandom(seed)
	}
	return EvenlySpaced{}
}
