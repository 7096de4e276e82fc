package cryptokit

import (
	"fmt"

	"github.com/go-i2p/cryptokit/buffer"
	"github.com/go-i2p/cryptokit/memory"
	"github.com/go-i2p/cryptokit/status"
)

// A BlockCipherTemplate is registered by a block cipher implementation.
type BlockCipherTemplate struct {
	Name      string
	KeySize   int
	BlockSize int
	Backend   BlockCipherBackend
}

func (t *BlockCipherTemplate) Family() InterfaceID  { return InterfaceBlock }
func (t *BlockCipherTemplate) TemplateName() string { return t.Name }

// BlockCipherOptions describe one block cipher selected from a registry.
type BlockCipherOptions struct {
	Algorithm AlgorithmID
	Name      string
	KeySize   int
	BlockSize int
	Allocator memory.Allocator

	// Context is owned by the backend and set by its InitOptions hook.
	Context any

	backend BlockCipherBackend
}

// Init selects alg from reg. On failure o is left zeroed.
func (o *BlockCipherOptions) Init(reg *Registry, alloc memory.Allocator, alg AlgorithmID) error {
	if o == nil {
		return ErrInvalidArgument
	}
	*o = BlockCipherOptions{}
	t, err := lookup[*BlockCipherTemplate](reg, InterfaceBlock, alg)
	if err != nil {
		return err
	}
	if t.Backend == nil {
		return fmt.Errorf("%w: block cipher %s has no backend", ErrMissingImplementation, t.Name)
	}
	if alloc == nil {
		alloc = memory.Default
	}
	*o = BlockCipherOptions{
		Algorithm: alg,
		Name:      t.Name,
		KeySize:   t.KeySize,
		BlockSize: t.BlockSize,
		Allocator: alloc,
		backend:   t.Backend,
	}
	if err := t.Backend.InitOptions(o); err != nil {
		*o = BlockCipherOptions{}
		return status.Backend("block", "init options", err)
	}
	return nil
}

// Dispose releases backend options state and zeroes o.
func (o *BlockCipherOptions) Dispose() {
	if o == nil {
		return
	}
	if o.backend != nil {
		o.backend.DisposeOptions(o)
	}
	*o = BlockCipherOptions{}
}

// Initialized reports whether Init succeeded and Dispose has not run.
func (o *BlockCipherOptions) Initialized() bool {
	return o != nil && o.backend != nil
}

// A BlockCipherContext is a keyed block cipher bound to one direction.
// Chaining is the caller's job: the iv passed for block N is block N-1 of
// the chain (the ciphertext of the previous block), or the message IV for
// the first block.
type BlockCipherContext struct {
	options *BlockCipherOptions
	state   BlockCipherState
	encrypt bool
}

// NewBlockCipherContext keys a block cipher for encryption when encrypt is
// true and decryption otherwise.
func NewBlockCipherContext(opts *BlockCipherOptions, key *buffer.Buffer, encrypt bool) (*BlockCipherContext, error) {
	if opts == nil || !key.Live() {
		return nil, ErrInvalidArgument
	}
	if opts.backend == nil {
		return nil, fmt.Errorf("%w: block cipher options not initialized", ErrMissingImplementation)
	}
	if key.Len() != opts.KeySize {
		return nil, fmt.Errorf("%w: block key %d bytes, need %d", ErrSizeMismatch, key.Len(), opts.KeySize)
	}
	state, err := opts.backend.NewState(opts, key.Bytes(), encrypt)
	if err != nil {
		return nil, status.Backend("block", "init", err)
	}
	return &BlockCipherContext{options: opts, state: state, encrypt: encrypt}, nil
}

// Options returns the options c was initialized from.
func (c *BlockCipherContext) Options() *BlockCipherOptions {
	if c == nil {
		return nil
	}
	return c.options
}

// Encrypting reports the direction c was initialized for.
func (c *BlockCipherContext) Encrypting() bool {
	return c != nil && c.encrypt
}

func (c *BlockCipherContext) checkBlock(iv, in, out []byte) error {
	if c == nil || c.state == nil {
		return ErrInvalidArgument
	}
	bs := c.options.BlockSize
	if len(iv) != bs || len(in) != bs || len(out) != bs {
		return fmt.Errorf("%w: block cipher needs %d byte iv, input and output", ErrSizeMismatch, bs)
	}
	return nil
}

// Encrypt encrypts one block: out = E(in XOR iv).
func (c *BlockCipherContext) Encrypt(iv, in, out []byte) error {
	if err := c.checkBlock(iv, in, out); err != nil {
		return err
	}
	if !c.encrypt {
		return ErrDirection
	}
	return status.Backend("block", "encrypt", c.state.Encrypt(iv, in, out))
}

// Decrypt decrypts one block: out = D(in) XOR iv.
func (c *BlockCipherContext) Decrypt(iv, in, out []byte) error {
	if err := c.checkBlock(iv, in, out); err != nil {
		return err
	}
	if c.encrypt {
		return ErrDirection
	}
	return status.Backend("block", "decrypt", c.state.Decrypt(iv, in, out))
}

// Dispose wipes the key schedule and zeroes c.
func (c *BlockCipherContext) Dispose() {
	if c == nil {
		return
	}
	if c.state != nil {
		c.state.Dispose()
	}
	*c = BlockCipherContext{}
}
