package cryptokit

import "github.com/go-i2p/cryptokit/status"

// Error kinds, re-exported from package status.
var (
	ErrInvalidArgument       = status.ErrInvalidArgument
	ErrOutOfMemory           = status.ErrOutOfMemory
	ErrMissingImplementation = status.ErrMissingImplementation
	ErrSizeMismatch          = status.ErrSizeMismatch
	ErrWouldOverwrite        = status.ErrWouldOverwrite
	ErrMockNotWired          = status.ErrMockNotWired
	ErrRegistrySealed        = status.ErrRegistrySealed
	ErrAlreadyRegistered     = status.ErrAlreadyRegistered
	ErrDirection             = status.ErrDirection
	ErrVerification          = status.ErrVerification
)

// Code returns the stable integer code for err.
func Code(err error) status.Code {
	return status.CodeOf(err)
}
