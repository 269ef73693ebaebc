// README: Mutex-guarded random source shared by request goroutines.
package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Locked wraps *rand.Rand, which is not safe for concurrent use.
type Locked struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a Locked source seeded with seed. Tests use a fixed seed.
func New(seed int64) *Locked {
	return &Locked{r: rand.New(rand.NewSource(seed))}
}

// NewTimeSeeded returns a Locked source seeded from the clock.
func NewTimeSeeded() *Locked {
	return New(time.Now().UnixNano())
}

// Intn returns a value in [0, n). n <= 0 yields 0.
func (l *Locked) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// Float64 returns a value in [0.0, 1.0).
func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}
