package cryptokit

import (
	"fmt"

	"github.com/go-i2p/cryptokit/buffer"
	"github.com/go-i2p/cryptokit/memory"
	"github.com/go-i2p/cryptokit/status"
)

// A StreamCipherTemplate is registered by a stream cipher implementation.
type StreamCipherTemplate struct {
	Name    string
	KeySize int
	IVSize  int
	Backend StreamCipherBackend
}

func (t *StreamCipherTemplate) Family() InterfaceID  { return InterfaceStream }
func (t *StreamCipherTemplate) TemplateName() string { return t.Name }

// StreamCipherOptions describe one stream cipher selected from a registry.
type StreamCipherOptions struct {
	Algorithm AlgorithmID
	Name      string
	KeySize   int
	IVSize    int
	Allocator memory.Allocator

	// Context is owned by the backend and set by its InitOptions hook.
	Context any

	backend StreamCipherBackend
}

// Init selects alg from reg. On failure o is left zeroed.
func (o *StreamCipherOptions) Init(reg *Registry, alloc memory.Allocator, alg AlgorithmID) error {
	if o == nil {
		return ErrInvalidArgument
	}
	*o = StreamCipherOptions{}
	t, err := lookup[*StreamCipherTemplate](reg, InterfaceStream, alg)
	if err != nil {
		return err
	}
	if t.Backend == nil {
		return fmt.Errorf("%w: stream cipher %s has no backend", ErrMissingImplementation, t.Name)
	}
	if alloc == nil {
		alloc = memory.Default
	}
	*o = StreamCipherOptions{
		Algorithm: alg,
		Name:      t.Name,
		KeySize:   t.KeySize,
		IVSize:    t.IVSize,
		Allocator: alloc,
		backend:   t.Backend,
	}
	if err := t.Backend.InitOptions(o); err != nil {
		*o = StreamCipherOptions{}
		return status.Backend("stream", "init options", err)
	}
	return nil
}

// Dispose releases backend options state and zeroes o.
func (o *StreamCipherOptions) Dispose() {
	if o == nil {
		return
	}
	if o.backend != nil {
		o.backend.DisposeOptions(o)
	}
	*o = StreamCipherOptions{}
}

// Initialized reports whether Init succeeded and Dispose has not run.
func (o *StreamCipherOptions) Initialized() bool {
	return o != nil && o.backend != nil
}

// A StreamCipherContext encrypts or decrypts one message at a time under a
// fixed key. An (iv, key) pair must never be used for two messages.
//
// Offsets passed to Encrypt and Decrypt index the output slice and are
// advanced by the number of bytes processed.
type StreamCipherContext struct {
	options  *StreamCipherOptions
	state    StreamCipherState
	started  bool
	position uint64
}

// NewStreamCipherContext keys a stream cipher. key must be KeySize bytes.
func NewStreamCipherContext(opts *StreamCipherOptions, key *buffer.Buffer) (*StreamCipherContext, error) {
	if opts == nil || !key.Live() {
		return nil, ErrInvalidArgument
	}
	if opts.backend == nil {
		return nil, fmt.Errorf("%w: stream cipher options not initialized", ErrMissingImplementation)
	}
	if key.Len() != opts.KeySize {
		return nil, fmt.Errorf("%w: stream key %d bytes, need %d", ErrSizeMismatch, key.Len(), opts.KeySize)
	}
	state, err := opts.backend.NewState(opts, key.Bytes())
	if err != nil {
		return nil, status.Backend("stream", "init", err)
	}
	return &StreamCipherContext{options: opts, state: state}, nil
}

// Options returns the options c was initialized from.
func (c *StreamCipherContext) Options() *StreamCipherOptions {
	if c == nil {
		return nil
	}
	return c.options
}

// Position returns how many payload bytes the current keystream has
// processed.
func (c *StreamCipherContext) Position() uint64 {
	if c == nil {
		return 0
	}
	return c.position
}

func (c *StreamCipherContext) checkIV(iv []byte) error {
	if c == nil || c.state == nil {
		return ErrInvalidArgument
	}
	if len(iv) != c.options.IVSize {
		return fmt.Errorf("%w: stream iv %d bytes, need %d", ErrSizeMismatch, len(iv), c.options.IVSize)
	}
	return nil
}

// StartEncryption begins a message: it writes iv to the head of out, starts
// a fresh keystream, and sets *offset to IVSize.
func (c *StreamCipherContext) StartEncryption(iv, out []byte, offset *int) error {
	if err := c.checkIV(iv); err != nil {
		return err
	}
	if offset == nil {
		return ErrInvalidArgument
	}
	if len(out) < len(iv) {
		return fmt.Errorf("%w: iv into %d byte output", ErrWouldOverwrite, len(out))
	}
	if err := c.state.Start(iv); err != nil {
		return status.Backend("stream", "start", err)
	}
	copy(out, iv)
	*offset = len(iv)
	c.started = true
	c.position = 0
	return nil
}

// StartDecryption begins decrypting a message produced by StartEncryption:
// it reads the IV from the head of in, starts the keystream, and sets
// *offset to IVSize, the index of the first ciphertext byte in in.
func (c *StreamCipherContext) StartDecryption(in []byte, offset *int) error {
	if c == nil || c.state == nil || offset == nil {
		return ErrInvalidArgument
	}
	if len(in) < c.options.IVSize {
		return fmt.Errorf("%w: message shorter than iv", ErrSizeMismatch)
	}
	iv := in[:c.options.IVSize]
	if err := c.state.Start(iv); err != nil {
		return status.Backend("stream", "start", err)
	}
	*offset = len(iv)
	c.started = true
	c.position = 0
	return nil
}

// ContinueEncryption resumes the keystream for iv at inputOffset payload
// bytes, without emitting the IV again.
func (c *StreamCipherContext) ContinueEncryption(iv []byte, inputOffset uint64) error {
	if err := c.checkIV(iv); err != nil {
		return err
	}
	if err := c.state.Seek(iv, inputOffset); err != nil {
		return status.Backend("stream", "continue", err)
	}
	c.started = true
	c.position = inputOffset
	return nil
}

func (c *StreamCipherContext) checkRange(in, out []byte, offset *int) error {
	if c == nil || c.state == nil || offset == nil || *offset < 0 {
		return ErrInvalidArgument
	}
	if !c.started {
		return fmt.Errorf("%w: stream not started", ErrInvalidArgument)
	}
	if len(out)-*offset < len(in) {
		return fmt.Errorf("%w: %d bytes at offset %d of %d", ErrWouldOverwrite, len(in), *offset, len(out))
	}
	return nil
}

// Encrypt encrypts in into out[*offset:] and advances *offset by len(in).
func (c *StreamCipherContext) Encrypt(in, out []byte, offset *int) error {
	if err := c.checkRange(in, out, offset); err != nil {
		return err
	}
	dst := out[*offset : *offset+len(in)]
	if err := c.state.Encrypt(dst, in); err != nil {
		return status.Backend("stream", "encrypt", err)
	}
	*offset += len(in)
	c.position += uint64(len(in))
	return nil
}

// Decrypt decrypts in into out[*offset:] and advances *offset by len(in).
func (c *StreamCipherContext) Decrypt(in, out []byte, offset *int) error {
	if err := c.checkRange(in, out, offset); err != nil {
		return err
	}
	dst := out[*offset : *offset+len(in)]
	if err := c.state.Decrypt(dst, in); err != nil {
		return status.Backend("stream", "decrypt", err)
	}
	*offset += len(in)
	c.position += uint64(len(in))
	return nil
}

// Dispose wipes the keystream state and zeroes c.
func (c *StreamCipherContext) Dispose() {
	if c == nil {
		return
	}
	if c.state != nil {
		c.state.Dispose()
	}
	*c = StreamCipherContext{}
}
