// Package memtest provides an instrumented allocator for tests.
package memtest

import (
	"sync"

	"github.com/go-i2p/cryptokit/memory"
)

// Allocator wraps the heap allocator and records every allocation and
// release. A snapshot of each released region is kept so tests can assert
// that it was wiped before being handed back.
type Allocator struct {
	mu sync.Mutex

	// FailAt makes the Nth allocation (1-based) return nil. Zero disables.
	FailAt int

	allocs   int
	live     int
	released [][]byte
}

var _ memory.Allocator = (*Allocator)(nil)

func (a *Allocator) Allocate(n int) []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.allocs++
	if a.FailAt > 0 && a.allocs == a.FailAt {
		return nil
	}
	b := memory.Heap{}.Allocate(n)
	if b != nil {
		a.live++
	}
	return b
}

func (a *Allocator) Release(b []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.live--
	snap := make([]byte, len(b))
	copy(snap, b)
	a.released = append(a.released, snap)
}

// Allocations returns how many times Allocate has been called.
func (a *Allocator) Allocations() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocs
}

// Live returns the number of regions allocated and not yet released.
func (a *Allocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.live
}

// Released returns the snapshots taken at release time, oldest first.
func (a *Allocator) Released() [][]byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([][]byte, len(a.released))
	copy(out, a.released)
	return out
}

// AllReleasedZero reports whether every released region was wiped.
func (a *Allocator) AllReleasedZero() bool {
	for _, r := range a.Released() {
		if !memory.IsZero(r) {
			return false
		}
	}
	return true
}
