package memory

import "runtime"

// Zero securely zeroes the provided byte slice to prevent sensitive data
// from remaining in memory. The compiler is prevented from optimizing away
// the stores.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	// Force compiler to not optimize away the zeroing
	runtime.KeepAlive(b)
}

// IsZero reports whether every byte of b is zero. The scan does not exit
// early.
func IsZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
