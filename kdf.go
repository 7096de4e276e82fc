package cryptokit

import (
	"fmt"

	"github.com/go-i2p/cryptokit/buffer"
	"github.com/go-i2p/cryptokit/memory"
	"github.com/go-i2p/cryptokit/status"
)

// A KeyDerivationTemplate is registered by a key derivation implementation.
// KeySize is the suggested output length; callers may derive any nonzero
// length. DefaultRounds is the iteration count (or cost) suites use.
type KeyDerivationTemplate struct {
	Name          string
	KeySize       int
	SaltSize      int
	DefaultRounds uint32
	Backend       KeyDerivationBackend
}

func (t *KeyDerivationTemplate) Family() InterfaceID  { return InterfaceKeyDerivation }
func (t *KeyDerivationTemplate) TemplateName() string { return t.Name }

// KeyDerivationOptions describe one key derivation function selected from a
// registry.
type KeyDerivationOptions struct {
	Algorithm     AlgorithmID
	Name          string
	KeySize       int
	SaltSize      int
	DefaultRounds uint32
	Allocator     memory.Allocator

	// Context is owned by the backend and set by its InitOptions hook.
	Context any

	backend KeyDerivationBackend
}

// Init selects alg from reg. On failure o is left zeroed.
func (o *KeyDerivationOptions) Init(reg *Registry, alloc memory.Allocator, alg AlgorithmID) error {
	if o == nil {
		return ErrInvalidArgument
	}
	*o = KeyDerivationOptions{}
	t, err := lookup[*KeyDerivationTemplate](reg, InterfaceKeyDerivation, alg)
	if err != nil {
		return err
	}
	if t.Backend == nil {
		return fmt.Errorf("%w: key derivation %s has no backend", ErrMissingImplementation, t.Name)
	}
	if alloc == nil {
		alloc = memory.Default
	}
	*o = KeyDerivationOptions{
		Algorithm:     alg,
		Name:          t.Name,
		KeySize:       t.KeySize,
		SaltSize:      t.SaltSize,
		DefaultRounds: t.DefaultRounds,
		Allocator:     alloc,
		backend:       t.Backend,
	}
	if err := t.Backend.InitOptions(o); err != nil {
		*o = KeyDerivationOptions{}
		return status.Backend("key derivation", "init options", err)
	}
	return nil
}

// Dispose releases backend options state and zeroes o.
func (o *KeyDerivationOptions) Dispose() {
	if o == nil {
		return
	}
	if o.backend != nil {
		o.backend.DisposeOptions(o)
	}
	*o = KeyDerivationOptions{}
}

// Initialized reports whether Init succeeded and Dispose has not run.
func (o *KeyDerivationOptions) Initialized() bool {
	return o != nil && o.backend != nil
}

// A KeyDerivationContext derives keys from passwords.
type KeyDerivationContext struct {
	options *KeyDerivationOptions
	state   KeyDerivationState
}

// NewKeyDerivationContext returns a key derivation context using opts.
func NewKeyDerivationContext(opts *KeyDerivationOptions) (*KeyDerivationContext, error) {
	if opts == nil {
		return nil, ErrInvalidArgument
	}
	if opts.backend == nil {
		return nil, fmt.Errorf("%w: key derivation options not initialized", ErrMissingImplementation)
	}
	state, err := opts.backend.NewState(opts)
	if err != nil {
		return nil, status.Backend("key derivation", "init", err)
	}
	return &KeyDerivationContext{options: opts, state: state}, nil
}

// Options returns the options c was initialized from.
func (c *KeyDerivationContext) Options() *KeyDerivationOptions {
	if c == nil {
		return nil
	}
	return c.options
}

// DeriveKey fills out, all of it, from password and salt. out, password,
// salt and rounds must all be nonzero.
func (c *KeyDerivationContext) DeriveKey(out, password, salt *buffer.Buffer, rounds uint32) error {
	if c == nil || c.state == nil {
		return ErrInvalidArgument
	}
	if out.Len() == 0 || password.Len() == 0 || salt.Len() == 0 || rounds == 0 {
		return fmt.Errorf("%w: key derivation needs nonzero output, password, salt and rounds", ErrInvalidArgument)
	}
	return status.Backend("key derivation", "derive",
		c.state.DeriveKey(out.Bytes(), password.Bytes(), salt.Bytes(), rounds))
}

// Dispose wipes the backend state and zeroes c.
func (c *KeyDerivationContext) Dispose() {
	if c == nil {
		return
	}
	if c.state != nil {
		c.state.Dispose()
	}
	*c = KeyDerivationContext{}
}
