package cryptokit

// ConstantTimeCompare compares the first n bytes of lhs and rhs without
// branching on their contents. It returns 0 when they are equal and 1
// otherwise. It reports equality only; the result carries no ordering.
//
// If either slice is shorter than n the inputs are reported unequal.
func ConstantTimeCompare(lhs, rhs []byte, n int) int {
	if n < 0 || len(lhs) < n || len(rhs) < n {
		return 1
	}
	var acc byte
	for i := 0; i < n; i++ {
		acc |= lhs[i] ^ rhs[i]
	}
	// Fold every set bit into bit zero.
	acc |= acc >> 4
	acc |= acc >> 2
	acc |= acc >> 1
	return int(acc & 1)
}

// Equal reports whether a and b are identical, in time that depends only on
// their lengths.
func Equal(a, b []byte) bool {
	return len(a) == len(b) && ConstantTimeCompare(a, b, len(a)) == 0
}
