package cryptokit

import (
	"bytes"
	"testing"
)

func TestConstantTimeCompare(t *testing.T) {
	testCases := []struct {
		name string
		lhs  string
		rhs  string
		n    int
		want int
	}{
		{"equal", "AAAAAAAAAAAAAAAA", "AAAAAAAAAAAAAAAA", 16, 0},
		{"last byte differs", "AAAAAAAAAAAAAAAA", "AAAAAAAAAAAAAAAB", 16, 1},
		{"first byte differs", "BAAAAAAAAAAAAAAA", "AAAAAAAAAAAAAAAA", 16, 1},
		{"difference beyond n", "AAAAB", "AAAAC", 4, 0},
		{"zero length", "A", "B", 0, 0},
		{"n past lhs", "AAA", "AAAA", 4, 1},
		{"n past rhs", "AAAA", "AAA", 4, 1},
		{"negative n", "A", "A", -1, 1},
		{"single high bit", "\x80", "\x00", 1, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ConstantTimeCompare([]byte(tc.lhs), []byte(tc.rhs), tc.n)
			if got != tc.want {
				t.Errorf("ConstantTimeCompare(%q, %q, %d) = %d, want %d", tc.lhs, tc.rhs, tc.n, got, tc.want)
			}
		})
	}
}

func TestConstantTimeCompareEveryBit(t *testing.T) {
	a := make([]byte, 32)
	for i := range a {
		for bit := 0; bit < 8; bit++ {
			b := bytes.Clone(a)
			b[i] ^= 1 << bit
			if ConstantTimeCompare(a, b, len(a)) != 1 {
				t.Fatalf("flip of byte %d bit %d not detected", i, bit)
			}
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal([]byte("key"), []byte("key")) {
		t.Error("Equal of identical slices = false")
	}
	if Equal([]byte("key"), []byte("keys")) {
		t.Error("Equal of different lengths = true")
	}
	if !Equal(nil, []byte{}) {
		t.Error("Equal(nil, empty) = false")
	}
}

var compareSink int

func benchmarkCompare(b *testing.B, diffAt int) {
	lhs := bytes.Repeat([]byte{0xa5}, 4096)
	rhs := bytes.Clone(lhs)
	if diffAt >= 0 {
		rhs[diffAt] ^= 0xff
	}
	b.SetBytes(int64(len(lhs)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		compareSink += ConstantTimeCompare(lhs, rhs, len(lhs))
	}
}

// The three benchmarks should report the same time per operation.
func BenchmarkCompareEqual(b *testing.B)     { benchmarkCompare(b, -1) }
func BenchmarkCompareFirstByte(b *testing.B) { benchmarkCompare(b, 0) }
func BenchmarkCompareLastByte(b *testing.B)  { benchmarkCompare(b, 4095) }
