package status

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	backendErr := errors.New("tag mismatch")

	testCases := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, OK},
		{"invalid argument", ErrInvalidArgument, InvalidArgument},
		{"wrapped invalid argument", fmt.Errorf("%w: nil key", ErrInvalidArgument), InvalidArgument},
		{"sealed registry", ErrRegistrySealed, InvalidArgument},
		{"direction", ErrDirection, InvalidArgument},
		{"oom", ErrOutOfMemory, OutOfMemory},
		{"missing", ErrMissingImplementation, MissingImplementation},
		{"size mismatch", ErrSizeMismatch, SizeMismatch},
		{"would overwrite", ErrWouldOverwrite, WouldOverwrite},
		{"mock", ErrMockNotWired, MockNotWired},
		{"backend", &BackendError{Family: "hash", Op: "digest", Err: backendErr}, BackendFailure},
		{"unknown", backendErr, BackendFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CodeOf(tc.err); got != tc.want {
				t.Errorf("CodeOf(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestCodesAreStable(t *testing.T) {
	want := map[Code]int{
		OK: 0, InvalidArgument: 1, OutOfMemory: 2, MissingImplementation: 3,
		SizeMismatch: 4, WouldOverwrite: 5, BackendFailure: 6, MockNotWired: 7,
	}
	for c, v := range want {
		if int(c) != v {
			t.Errorf("%v = %d, want %d", c, int(c), v)
		}
	}
	if Code(99).String() != "code(99)" {
		t.Errorf("unexpected name for unknown code: %s", Code(99))
	}
}

func TestBackendPreservesError(t *testing.T) {
	cause := errors.New("decryption tag mismatch")
	err := Backend("mac", "finalize", cause)

	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("Backend() = %T, want *BackendError", err)
	}
	if be.Err != cause {
		t.Error("backend error value was not preserved")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is does not see the backend cause")
	}

	if Backend("mac", "finalize", nil) != nil {
		t.Error("Backend(nil) should be nil")
	}
	if Backend("mac", "digest", ErrMockNotWired) != ErrMockNotWired {
		t.Error("framework errors must pass through unchanged")
	}
	if Backend("mac", "digest", err) != err {
		t.Error("an existing BackendError must not be wrapped twice")
	}
}
