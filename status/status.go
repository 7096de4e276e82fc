// Package status defines the error taxonomy shared by every cryptokit
// package. Each error kind maps to a stable integer code; zero is success.
package status

import (
	"errors"
	"fmt"
)

// A Code is a stable integer identifying an error kind. Values never change
// between releases.
type Code int

const (
	OK                    Code = 0
	InvalidArgument       Code = 1
	OutOfMemory           Code = 2
	MissingImplementation Code = 3
	SizeMismatch          Code = 4
	WouldOverwrite        Code = 5
	BackendFailure        Code = 6
	MockNotWired          Code = 7
)

var codeNames = map[Code]string{
	OK:                    "ok",
	InvalidArgument:       "invalid argument",
	OutOfMemory:           "out of memory",
	MissingImplementation: "missing implementation",
	SizeMismatch:          "size mismatch",
	WouldOverwrite:        "would overwrite",
	BackendFailure:        "backend failure",
	MockNotWired:          "mock not wired",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Sentinel errors. Compare with errors.Is; callers may wrap them with
// additional detail.
var (
	ErrInvalidArgument       = errors.New("cryptokit: invalid argument")
	ErrOutOfMemory           = errors.New("cryptokit: out of memory")
	ErrMissingImplementation = errors.New("cryptokit: missing implementation")
	ErrSizeMismatch          = errors.New("cryptokit: buffer size mismatch")
	ErrWouldOverwrite        = errors.New("cryptokit: read would overwrite destination")
	ErrMockNotWired          = errors.New("cryptokit: mock not wired")
)

// Errors of the InvalidArgument kind with a more specific meaning.
var (
	// ErrRegistrySealed is returned when registering after Seal.
	ErrRegistrySealed = fmt.Errorf("%w: registry is sealed", ErrInvalidArgument)

	// ErrAlreadyRegistered is returned when a key is registered twice.
	ErrAlreadyRegistered = fmt.Errorf("%w: algorithm already registered", ErrInvalidArgument)

	// ErrDirection is returned when a block cipher context is used in the
	// direction it was not initialized for.
	ErrDirection = fmt.Errorf("%w: block cipher direction", ErrInvalidArgument)
)

// ErrVerification is returned by signature backends when a signature does not
// verify. It reaches callers wrapped in a BackendError.
var ErrVerification = errors.New("cryptokit: signature verification failed")

// A BackendError carries a failure reported by an algorithm implementation.
// Err is the backend's error, unchanged.
type BackendError struct {
	Family string
	Op     string
	Err    error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("cryptokit: %s %s: %v", e.Family, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Backend wraps a non-nil backend error as a BackendError. Framework errors
// returned by a backend (for example ErrMockNotWired) pass through unchanged
// so their code is preserved. A nil err yields nil.
func Backend(family, op string, err error) error {
	if err == nil {
		return nil
	}
	var be *BackendError
	if errors.As(err, &be) {
		return err
	}
	if frameworkCode(err) != OK {
		return err
	}
	return &BackendError{Family: family, Op: op, Err: err}
}

func frameworkCode(err error) Code {
	switch {
	case errors.Is(err, ErrMockNotWired):
		return MockNotWired
	case errors.Is(err, ErrInvalidArgument):
		return InvalidArgument
	case errors.Is(err, ErrOutOfMemory):
		return OutOfMemory
	case errors.Is(err, ErrMissingImplementation):
		return MissingImplementation
	case errors.Is(err, ErrSizeMismatch):
		return SizeMismatch
	case errors.Is(err, ErrWouldOverwrite):
		return WouldOverwrite
	}
	return OK
}

// CodeOf maps an error to its stable code. Nil maps to OK; errors that carry
// no known kind map to BackendFailure.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var be *BackendError
	if errors.As(err, &be) {
		return BackendFailure
	}
	if c := frameworkCode(err); c != OK {
		return c
	}
	return BackendFailure
}
