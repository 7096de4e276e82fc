package cryptokit

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/go-i2p/cryptokit/buffer"
	"github.com/go-i2p/cryptokit/memory"
	"github.com/go-i2p/cryptokit/status"
)

// A PRNGTemplate is registered by a random generator implementation.
type PRNGTemplate struct {
	Name    string
	Backend PRNGBackend
}

func (t *PRNGTemplate) Family() InterfaceID  { return InterfacePRNG }
func (t *PRNGTemplate) TemplateName() string { return t.Name }

// PRNGOptions describe one random generator selected from a registry.
type PRNGOptions struct {
	Algorithm AlgorithmID
	Name      string
	Allocator memory.Allocator

	// Context is owned by the backend and set by its InitOptions hook.
	Context any

	backend PRNGBackend
}

// Init selects alg from reg. On failure o is left zeroed.
func (o *PRNGOptions) Init(reg *Registry, alloc memory.Allocator, alg AlgorithmID) error {
	if o == nil {
		return ErrInvalidArgument
	}
	*o = PRNGOptions{}
	t, err := lookup[*PRNGTemplate](reg, InterfacePRNG, alg)
	if err != nil {
		return err
	}
	if t.Backend == nil {
		return fmt.Errorf("%w: prng %s has no backend", ErrMissingImplementation, t.Name)
	}
	if alloc == nil {
		alloc = memory.Default
	}
	*o = PRNGOptions{
		Algorithm: alg,
		Name:      t.Name,
		Allocator: alloc,
		backend:   t.Backend,
	}
	if err := t.Backend.InitOptions(o); err != nil {
		*o = PRNGOptions{}
		return status.Backend("prng", "init options", err)
	}
	return nil
}

// Dispose releases backend options state and zeroes o.
func (o *PRNGOptions) Dispose() {
	if o == nil {
		return
	}
	if o.backend != nil {
		o.backend.DisposeOptions(o)
	}
	*o = PRNGOptions{}
}

// Initialized reports whether Init succeeded and Dispose has not run.
func (o *PRNGOptions) Initialized() bool {
	return o != nil && o.backend != nil
}

// A PRNGContext reads cryptographically secure random bytes. Reads may
// block inside the backend while the entropy source reseeds.
type PRNGContext struct {
	options *PRNGOptions
	state   PRNGState
}

// NewPRNGContext returns a random generator context using opts.
func NewPRNGContext(opts *PRNGOptions) (*PRNGContext, error) {
	if opts == nil {
		return nil, ErrInvalidArgument
	}
	if opts.backend == nil {
		return nil, fmt.Errorf("%w: prng options not initialized", ErrMissingImplementation)
	}
	state, err := opts.backend.NewState(opts)
	if err != nil {
		return nil, status.Backend("prng", "init", err)
	}
	return &PRNGContext{options: opts, state: state}, nil
}

// Options returns the options c was initialized from.
func (c *PRNGContext) Options() *PRNGOptions {
	if c == nil {
		return nil
	}
	return c.options
}

// ReadRaw fills dst.
func (c *PRNGContext) ReadRaw(dst []byte) error {
	if c == nil || c.state == nil {
		return ErrInvalidArgument
	}
	if len(dst) == 0 {
		return nil
	}
	return status.Backend("prng", "read", c.state.Read(dst))
}

// ReadBuffer fills the first n bytes of buf.
func (c *PRNGContext) ReadBuffer(buf *buffer.Buffer, n int) error {
	if c == nil || c.state == nil || !buf.Live() || n < 0 {
		return ErrInvalidArgument
	}
	if n > buf.Len() {
		return fmt.Errorf("%w: %d random bytes into %d byte buffer", ErrWouldOverwrite, n, buf.Len())
	}
	return c.ReadRaw(buf.Bytes()[:n])
}

// ReadUUID returns 16 random bytes as a UUID. No version or variant bits
// are set. A UUID is an identifier, not key material, so neither the
// returned value nor the generator output behind it is wiped.
func (c *PRNGContext) ReadUUID() (uuid.UUID, error) {
	var id uuid.UUID
	if err := c.ReadRaw(id[:]); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Read implements io.Reader so a context can feed key generation in other
// libraries. It always fills p or fails.
func (c *PRNGContext) Read(p []byte) (int, error) {
	if err := c.ReadRaw(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Dispose wipes the generator state and zeroes c.
func (c *PRNGContext) Dispose() {
	if c == nil {
		return
	}
	if c.state != nil {
		c.state.Dispose()
	}
	*c = PRNGContext{}
}
