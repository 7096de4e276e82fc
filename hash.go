package cryptokit

import (
	"fmt"

	"github.com/go-i2p/cryptokit/buffer"
	"github.com/go-i2p/cryptokit/memory"
	"github.com/go-i2p/cryptokit/status"
)

// A HashTemplate is registered by a hash implementation.
type HashTemplate struct {
	Name     string
	HashSize int
	Backend  HashBackend
}

func (t *HashTemplate) Family() InterfaceID  { return InterfaceHash }
func (t *HashTemplate) TemplateName() string { return t.Name }

// HashOptions describe one hash algorithm selected from a registry. They
// are immutable after Init and may be shared across goroutines; every
// context initialized from them references them, so they must outlive those
// contexts.
type HashOptions struct {
	Algorithm AlgorithmID
	Name      string
	HashSize  int
	Allocator memory.Allocator

	// Context is owned by the backend and set by its InitOptions hook.
	Context any

	backend HashBackend
}

// Init selects alg from reg. On failure o is left zeroed.
func (o *HashOptions) Init(reg *Registry, alloc memory.Allocator, alg AlgorithmID) error {
	if o == nil {
		return ErrInvalidArgument
	}
	*o = HashOptions{}
	t, err := lookup[*HashTemplate](reg, InterfaceHash, alg)
	if err != nil {
		return err
	}
	if t.Backend == nil {
		return fmt.Errorf("%w: hash %s has no backend", ErrMissingImplementation, t.Name)
	}
	if alloc == nil {
		alloc = memory.Default
	}
	*o = HashOptions{
		Algorithm: alg,
		Name:      t.Name,
		HashSize:  t.HashSize,
		Allocator: alloc,
		backend:   t.Backend,
	}
	if err := t.Backend.InitOptions(o); err != nil {
		*o = HashOptions{}
		return status.Backend("hash", "init options", err)
	}
	return nil
}

// Dispose releases backend options state and zeroes o.
func (o *HashOptions) Dispose() {
	if o == nil {
		return
	}
	if o.backend != nil {
		o.backend.DisposeOptions(o)
	}
	*o = HashOptions{}
}

// Initialized reports whether Init succeeded and Dispose has not run.
func (o *HashOptions) Initialized() bool {
	return o != nil && o.backend != nil
}

// A HashContext is one running hash computation. It is not safe for
// concurrent use.
type HashContext struct {
	options *HashOptions
	state   HashState
}

// NewHashContext starts a hash computation using opts.
func NewHashContext(opts *HashOptions) (*HashContext, error) {
	if opts == nil {
		return nil, ErrInvalidArgument
	}
	if opts.backend == nil {
		return nil, fmt.Errorf("%w: hash options not initialized", ErrMissingImplementation)
	}
	state, err := opts.backend.NewState(opts)
	if err != nil {
		return nil, status.Backend("hash", "init", err)
	}
	return &HashContext{options: opts, state: state}, nil
}

// Options returns the options c was initialized from.
func (c *HashContext) Options() *HashOptions {
	if c == nil {
		return nil
	}
	return c.options
}

// Digest absorbs data.
func (c *HashContext) Digest(data []byte) error {
	if c == nil || c.state == nil {
		return ErrInvalidArgument
	}
	return status.Backend("hash", "digest", c.state.Digest(data))
}

// Finalize writes the digest into the first HashSize bytes of out.
func (c *HashContext) Finalize(out *buffer.Buffer) error {
	if c == nil || c.state == nil || !out.Live() {
		return ErrInvalidArgument
	}
	if out.Len() < c.options.HashSize {
		return fmt.Errorf("%w: hash output %d bytes, need %d", ErrSizeMismatch, out.Len(), c.options.HashSize)
	}
	return status.Backend("hash", "finalize", c.state.Finalize(out.Bytes()[:c.options.HashSize]))
}

// Dispose wipes the backend state and zeroes c.
func (c *HashContext) Dispose() {
	if c == nil {
		return
	}
	if c.state != nil {
		c.state.Dispose()
	}
	*c = HashContext{}
}
