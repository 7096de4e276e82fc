package cryptokit

import (
	"fmt"

	"github.com/go-i2p/cryptokit/buffer"
	"github.com/go-i2p/cryptokit/memory"
	"github.com/go-i2p/cryptokit/status"
)

// A MACTemplate is registered by a MAC implementation, long or short.
type MACTemplate struct {
	Name    string
	KeySize int
	MACSize int
	Backend MACBackend
}

func (t *MACTemplate) Family() InterfaceID  { return InterfaceMAC }
func (t *MACTemplate) TemplateName() string { return t.Name }

// MACOptions describe one MAC algorithm selected from a registry.
type MACOptions struct {
	Algorithm AlgorithmID
	Name      string
	KeySize   int
	MACSize   int
	Allocator memory.Allocator

	// Context is owned by the backend and set by its InitOptions hook.
	Context any

	backend MACBackend
}

// Init selects alg from reg. On failure o is left zeroed.
func (o *MACOptions) Init(reg *Registry, alloc memory.Allocator, alg AlgorithmID) error {
	if o == nil {
		return ErrInvalidArgument
	}
	*o = MACOptions{}
	t, err := lookup[*MACTemplate](reg, InterfaceMAC, alg)
	if err != nil {
		return err
	}
	if t.Backend == nil {
		return fmt.Errorf("%w: mac %s has no backend", ErrMissingImplementation, t.Name)
	}
	if alloc == nil {
		alloc = memory.Default
	}
	*o = MACOptions{
		Algorithm: alg,
		Name:      t.Name,
		KeySize:   t.KeySize,
		MACSize:   t.MACSize,
		Allocator: alloc,
		backend:   t.Backend,
	}
	if err := t.Backend.InitOptions(o); err != nil {
		*o = MACOptions{}
		return status.Backend("mac", "init options", err)
	}
	return nil
}

// Dispose releases backend options state and zeroes o.
func (o *MACOptions) Dispose() {
	if o == nil {
		return
	}
	if o.backend != nil {
		o.backend.DisposeOptions(o)
	}
	*o = MACOptions{}
}

// Initialized reports whether Init succeeded and Dispose has not run.
func (o *MACOptions) Initialized() bool {
	return o != nil && o.backend != nil
}

// A MACContext is one running MAC computation.
type MACContext struct {
	options *MACOptions
	state   MACState
}

// NewMACContext keys a MAC computation. key must be exactly KeySize bytes.
func NewMACContext(opts *MACOptions, key *buffer.Buffer) (*MACContext, error) {
	if opts == nil || !key.Live() {
		return nil, ErrInvalidArgument
	}
	if opts.backend == nil {
		return nil, fmt.Errorf("%w: mac options not initialized", ErrMissingImplementation)
	}
	if key.Len() != opts.KeySize {
		return nil, fmt.Errorf("%w: mac key %d bytes, need %d", ErrSizeMismatch, key.Len(), opts.KeySize)
	}
	state, err := opts.backend.NewState(opts, key.Bytes())
	if err != nil {
		return nil, status.Backend("mac", "init", err)
	}
	return &MACContext{options: opts, state: state}, nil
}

// Options returns the options c was initialized from.
func (c *MACContext) Options() *MACOptions {
	if c == nil {
		return nil
	}
	return c.options
}

// Digest absorbs data.
func (c *MACContext) Digest(data []byte) error {
	if c == nil || c.state == nil {
		return ErrInvalidArgument
	}
	return status.Backend("mac", "digest", c.state.Digest(data))
}

// Finalize writes the tag into the first MACSize bytes of out.
func (c *MACContext) Finalize(out *buffer.Buffer) error {
	if c == nil || c.state == nil || !out.Live() {
		return ErrInvalidArgument
	}
	if out.Len() < c.options.MACSize {
		return fmt.Errorf("%w: mac output %d bytes, need %d", ErrSizeMismatch, out.Len(), c.options.MACSize)
	}
	return status.Backend("mac", "finalize", c.state.Finalize(out.Bytes()[:c.options.MACSize]))
}

// Dispose wipes the backend state and zeroes c.
func (c *MACContext) Dispose() {
	if c == nil {
		return
	}
	if c.state != nil {
		c.state.Dispose()
	}
	*c = MACContext{}
}
