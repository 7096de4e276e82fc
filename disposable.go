package cryptokit

// A Disposable releases the resources it owns, wiping sensitive memory
// first. Dispose never fails, never allocates, and is a no-op on an object
// that was never initialized or was already disposed.
type Disposable interface {
	Dispose()
}

// Dispose releases every non-nil d in order.
func Dispose(ds ...Disposable) {
	for _, d := range ds {
		if d != nil {
			d.Dispose()
		}
	}
}
