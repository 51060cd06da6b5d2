// Package simtest provides deterministic random sources for tests.
package simtest

import "sync"

// Rand replays Floats in order (cycling) and answers IntN with Int clamped to n-1.
type Rand struct {
	mu     sync.Mutex
	Floats []float64
	Int    int
	next   int
}

func (r *Rand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Floats) == 0 {
		return 0
	}
	f := r.Floats[r.next%len(r.Floats)]
	r.next++
	return f
}

func (r *Rand) IntN(n int) int {
	if r.Int >= n {
		return n - 1
	}
	if r.Int < 0 {
		return 0
	}
	return r.Int
}

// Constant always draws f.
func Constant(f float64) *Rand {
	return &Rand{Floats: []float64{f}}
}
