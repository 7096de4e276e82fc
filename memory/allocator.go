// Package memory provides the allocation contract used by secure buffers and
// the allocators that back it.
package memory

import (
	"sync"

	"github.com/awnumar/memguard"
)

// An Allocator hands out byte regions and takes them back. Allocate returns
// nil when the request cannot be satisfied. Release must accept any slice
// previously returned by Allocate on the same allocator. An allocator must
// outlive every object that references it.
type Allocator interface {
	// Allocate returns a zero-filled region of exactly n bytes, or nil.
	Allocate(n int) []byte

	// Release returns a region to the allocator. Callers zero the region
	// before releasing it.
	Release(b []byte)
}

// Heap delegates to the Go runtime. Release is a no-op; the garbage
// collector reclaims the region once the last reference is dropped.
type Heap struct{}

func (Heap) Allocate(n int) []byte {
	if n <= 0 {
		return nil
	}
	return make([]byte, n)
}

func (Heap) Release([]byte) {}

// Default is the allocator used when a caller does not supply one.
var Default Allocator = Heap{}

// Locked allocates regions inside memguard guarded pages. The pages are
// locked into RAM, surrounded by guard pages and wiped when released.
// It is safe for concurrent use.
type Locked struct {
	mu   sync.Mutex
	live map[*byte]*memguard.LockedBuffer
}

// NewLocked returns an empty Locked allocator.
func NewLocked() *Locked {
	return &Locked{live: make(map[*byte]*memguard.LockedBuffer)}
}

func (l *Locked) Allocate(n int) []byte {
	if n <= 0 {
		return nil
	}
	lb := memguard.NewBuffer(n)
	if !lb.IsAlive() {
		return nil
	}
	b := lb.Bytes()

	l.mu.Lock()
	if l.live == nil {
		l.live = make(map[*byte]*memguard.LockedBuffer)
	}
	l.live[&b[0]] = lb
	l.mu.Unlock()
	return b
}

func (l *Locked) Release(b []byte) {
	if len(b) == 0 {
		return
	}
	l.mu.Lock()
	lb, ok := l.live[&b[0]]
	delete(l.live, &b[0])
	l.mu.Unlock()
	if ok {
		lb.Destroy()
	}
}

// Outstanding returns the number of regions that have been allocated and not
// yet released.
func (l *Locked) Outstanding() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live)
}
