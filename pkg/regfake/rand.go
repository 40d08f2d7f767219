package regfake

import (
	"math/rand/v2"
	"sync"
)

// Rand is the random source generators draw from.
type Rand interface {
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// LockedRand serializes access to a *rand.Rand, which is not safe for concurrent use.
type LockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedRand wraps r. A nil r gets a PCG source seeded from the runtime.
func NewLockedRand(r *rand.Rand) *LockedRand {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &LockedRand{r: r}
}

// NewSeededRand returns a LockedRand with a fixed seed, for reproducible output.
func NewSeededRand(seed uint64) *LockedRand {
	return NewLockedRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func (l *LockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// pick returns a uniformly random element of items. items must not be empty.
func pick[T any](r Rand, items []T) T {
	return items[r.IntN(len(items))]
}
