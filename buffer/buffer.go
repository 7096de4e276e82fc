// Package buffer implements the secure buffer: a sized byte region bound to
// an allocator that is wiped before it is released.
package buffer

import (
	"crypto/subtle"
	"fmt"

	"github.com/go-i2p/cryptokit/memory"
	"github.com/go-i2p/cryptokit/status"
)

// A Buffer exclusively owns a region obtained from its allocator. A buffer is
// live when it holds a region; the zero value is an empty, non-live buffer
// that is safe to Dispose.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	alloc memory.Allocator
	data  []byte
}

// New allocates a zero-filled buffer of size bytes from alloc. A nil alloc
// selects memory.Default.
func New(alloc memory.Allocator, size int) (*Buffer, error) {
	b := new(Buffer)
	if err := b.Init(alloc, size); err != nil {
		return nil, err
	}
	return b, nil
}

// NewForHex allocates a buffer large enough to hold the hex encoding of
// rawSize bytes.
func NewForHex(alloc memory.Allocator, rawSize int) (*Buffer, error) {
	if rawSize <= 0 {
		return nil, fmt.Errorf("%w: hex buffer for %d bytes", status.ErrInvalidArgument, rawSize)
	}
	return New(alloc, HexLen(rawSize))
}

// NewForBase64 allocates a buffer large enough to hold the padded base64
// encoding of rawSize bytes.
func NewForBase64(alloc memory.Allocator, rawSize int) (*Buffer, error) {
	if rawSize <= 0 {
		return nil, fmt.Errorf("%w: base64 buffer for %d bytes", status.ErrInvalidArgument, rawSize)
	}
	return New(alloc, Base64Len(rawSize))
}

// HexLen is the hex-encoded length of n raw bytes.
func HexLen(n int) int { return 2 * n }

// Base64Len is ceil(4n/3) rounded up to a multiple of four, which equals the
// padded base64 length of n raw bytes.
func Base64Len(n int) int {
	l := (4*n + 2) / 3
	if r := l % 4; r != 0 {
		l += 4 - r
	}
	return l
}

// Init allocates size zero-filled bytes into b. On failure b is left
// unmodified. Initializing a live buffer disposes its previous region first.
func (b *Buffer) Init(alloc memory.Allocator, size int) error {
	if b == nil || size <= 0 {
		return fmt.Errorf("%w: buffer size %d", status.ErrInvalidArgument, size)
	}
	if alloc == nil {
		alloc = memory.Default
	}
	data := alloc.Allocate(size)
	if data == nil {
		return status.ErrOutOfMemory
	}
	if len(data) != size {
		alloc.Release(data)
		return status.ErrOutOfMemory
	}
	memory.Zero(data)

	b.Dispose()
	b.alloc = alloc
	b.data = data
	return nil
}

// Dispose wipes the region and hands it back to the allocator. Disposing an
// empty buffer does nothing.
func (b *Buffer) Dispose() {
	if b == nil || b.data == nil {
		return
	}
	memory.Zero(b.data)
	b.alloc.Release(b.data)
	b.data = nil
	b.alloc = nil
}

// Len returns the size of the region in bytes; zero when not live.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Live reports whether b owns a region.
func (b *Buffer) Live() bool {
	return b != nil && b.data != nil
}

// Bytes returns the region itself, not a copy. The slice is invalid after
// Dispose or Move.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Allocator returns the allocator the region came from.
func (b *Buffer) Allocator() memory.Allocator {
	if b == nil {
		return nil
	}
	return b.alloc
}

// String never reveals the contents.
func (b *Buffer) String() string {
	return fmt.Sprintf("buffer(%d bytes)", b.Len())
}

// GoString never reveals the contents.
func (b *Buffer) GoString() string { return b.String() }

// Copy copies src into dst. Both buffers must be the same size.
func Copy(dst, src *Buffer) error {
	if dst == nil || src == nil {
		return status.ErrInvalidArgument
	}
	if dst.Len() != src.Len() {
		return fmt.Errorf("%w: copy %d bytes into %d", status.ErrSizeMismatch, src.Len(), dst.Len())
	}
	copy(dst.data, src.data)
	return nil
}

// Move transfers ownership of src's region to dst, disposing whatever dst
// held. Afterwards src is empty and disposing it is a no-op.
func Move(dst, src *Buffer) {
	if dst == nil || src == nil || dst == src {
		return
	}
	dst.Dispose()
	dst.alloc, dst.data = src.alloc, src.data
	src.alloc, src.data = nil, nil
}

// ReadRaw copies p into the start of b. It fails with ErrWouldOverwrite when
// p is longer than b.
func (b *Buffer) ReadRaw(p []byte) error {
	if b == nil || p == nil {
		return status.ErrInvalidArgument
	}
	if len(p) > b.Len() {
		return fmt.Errorf("%w: %d bytes into %d", status.ErrWouldOverwrite, len(p), b.Len())
	}
	copy(b.data, p)
	return nil
}

// Equal reports whether a and b hold the same bytes, in constant time for
// equal-length inputs.
func Equal(a, b *Buffer) bool {
	return subtle.ConstantTimeCompare(a.Bytes(), b.Bytes()) == 1
}
