package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/go-i2p/cryptokit/memory/memtest"
	"github.com/go-i2p/cryptokit/status"
)

func sequence(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func mustNew(t *testing.T, alloc *memtest.Allocator, size int) *Buffer {
	t.Helper()
	b, err := New(alloc, size)
	if err != nil {
		t.Fatalf("New(%d): %v", size, err)
	}
	return b
}

func TestNewZeroFills(t *testing.T) {
	alloc := &memtest.Allocator{}
	b := mustNew(t, alloc, 32)
	defer b.Dispose()

	if b.Len() != 32 {
		t.Errorf("Len() = %d, want 32", b.Len())
	}
	if !bytes.Equal(b.Bytes(), make([]byte, 32)) {
		t.Error("new buffer is not zero-filled")
	}
	if !b.Live() {
		t.Error("new buffer should be live")
	}
}

func TestNewRejectsBadSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(nil, size); !errors.Is(err, status.ErrInvalidArgument) {
			t.Errorf("New(%d) error = %v, want ErrInvalidArgument", size, err)
		}
	}
}

func TestNewOutOfMemory(t *testing.T) {
	alloc := &memtest.Allocator{FailAt: 1}
	_, err := New(alloc, 16)
	if !errors.Is(err, status.ErrOutOfMemory) {
		t.Fatalf("New error = %v, want ErrOutOfMemory", err)
	}
	if status.CodeOf(err) != status.OutOfMemory {
		t.Errorf("code = %v", status.CodeOf(err))
	}
}

func TestInitFailureLeavesBufferUnmodified(t *testing.T) {
	alloc := &memtest.Allocator{FailAt: 2}
	b := mustNew(t, alloc, 4)
	defer b.Dispose()
	copy(b.Bytes(), "keep")

	if err := b.Init(alloc, 8); !errors.Is(err, status.ErrOutOfMemory) {
		t.Fatalf("Init error = %v", err)
	}
	if string(b.Bytes()) != "keep" {
		t.Errorf("buffer modified by failed Init: %q", b.Bytes())
	}
}

func TestDisposeZeroesBeforeRelease(t *testing.T) {
	alloc := &memtest.Allocator{}
	b := mustNew(t, alloc, 32)
	copy(b.Bytes(), "this_is_a_secret_key_32_bytes!!!")

	b.Dispose()

	released := alloc.Released()
	if len(released) != 1 {
		t.Fatalf("released %d regions, want 1", len(released))
	}
	if !bytes.Equal(released[0], make([]byte, 32)) {
		t.Errorf("region released without wiping: %x", released[0])
	}
	if b.Live() || b.Len() != 0 {
		t.Error("disposed buffer should be empty")
	}

	// Second dispose is a no-op.
	b.Dispose()
	if len(alloc.Released()) != 1 {
		t.Error("second Dispose released again")
	}
}

func TestCopy(t *testing.T) {
	alloc := &memtest.Allocator{}
	src := mustNew(t, alloc, 16)
	defer src.Dispose()
	copy(src.Bytes(), "YELLOW SUBMARINE")

	testCases := []struct {
		name string
		size int
		err  error
	}{
		{"equal size", 16, nil},
		{"smaller", 15, status.ErrSizeMismatch},
		{"larger", 17, status.ErrSizeMismatch},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dst := mustNew(t, alloc, tc.size)
			defer dst.Dispose()

			err := Copy(dst, src)
			if !errors.Is(err, tc.err) {
				t.Fatalf("Copy error = %v, want %v", err, tc.err)
			}
			if tc.err == nil && !Equal(dst, src) {
				t.Error("copy contents differ")
			}
			if tc.err != nil && !bytes.Equal(dst.Bytes(), make([]byte, tc.size)) {
				t.Error("failed copy modified the destination")
			}
		})
	}

	if err := Copy(nil, src); !errors.Is(err, status.ErrInvalidArgument) {
		t.Errorf("Copy(nil) error = %v", err)
	}
}

func TestMove(t *testing.T) {
	alloc := &memtest.Allocator{}
	old := mustNew(t, alloc, 8)
	copy(old.Bytes(), "movable!")
	data := old.Bytes()

	var dst Buffer
	Move(&dst, old)

	if old.Live() || old.Len() != 0 {
		t.Error("source should be empty after Move")
	}
	if &dst.Bytes()[0] != &data[0] {
		t.Error("destination does not own the source region")
	}

	old.Dispose()
	if len(alloc.Released()) != 0 {
		t.Error("disposing a moved-from buffer released memory")
	}

	dst.Dispose()
	if alloc.Live() != 0 || !alloc.AllReleasedZero() {
		t.Error("moved region not wiped and released")
	}
}

func TestMoveDisposesDestination(t *testing.T) {
	alloc := &memtest.Allocator{}
	dst := mustNew(t, alloc, 4)
	copy(dst.Bytes(), "gone")
	src := mustNew(t, alloc, 4)

	Move(dst, src)
	if alloc.Live() != 1 {
		t.Errorf("live regions = %d, want 1", alloc.Live())
	}
	if !alloc.AllReleasedZero() {
		t.Error("overwritten destination was not wiped")
	}
	dst.Dispose()
}

func TestReadRaw(t *testing.T) {
	b := mustNew(t, &memtest.Allocator{}, 8)
	defer b.Dispose()

	if err := b.ReadRaw([]byte("abc")); err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if !bytes.Equal(b.Bytes(), []byte{'a', 'b', 'c', 0, 0, 0, 0, 0}) {
		t.Errorf("contents = %x", b.Bytes())
	}
	if err := b.ReadRaw(make([]byte, 9)); !errors.Is(err, status.ErrWouldOverwrite) {
		t.Errorf("oversized ReadRaw error = %v, want ErrWouldOverwrite", err)
	}
	if err := b.ReadRaw(nil); !errors.Is(err, status.ErrInvalidArgument) {
		t.Errorf("ReadRaw(nil) error = %v", err)
	}
}

func TestStringRedacts(t *testing.T) {
	b := mustNew(t, &memtest.Allocator{}, 6)
	defer b.Dispose()
	copy(b.Bytes(), "secret")

	for _, s := range []string{b.String(), fmt.Sprintf("%v", b), fmt.Sprintf("%#v", b)} {
		if bytes.Contains([]byte(s), []byte("secret")) {
			t.Errorf("formatted buffer leaks contents: %s", s)
		}
	}
}

func TestBase64Len(t *testing.T) {
	for n := 1; n <= 64; n++ {
		want := 4 * ((n + 2) / 3)
		if got := Base64Len(n); got != want {
			t.Errorf("Base64Len(%d) = %d, want %d", n, got, want)
		}
	}
}
