package scoring

import (
	"math/rand"
	"sync"
	"time"
)

// RNG is the randomness source the ensemble draws from.  It is an interface
// so tests can substitute a deterministic sequence.
type RNG interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
	// IntN returns a pseudo-random int in [0, n).  n must be > 0.
	IntN(n int) int
}

// lockedRand wraps math/rand with a mutex so a single source can be shared
// across the scoring goroutine and API handlers.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a mutex-guarded RNG seeded with seed.  A zero seed selects
// a time-based seed for non-reproducible production runs.
func NewRand(seed int64) RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
