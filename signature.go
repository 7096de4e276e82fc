package cryptokit

import (
	"fmt"

	"github.com/go-i2p/cryptokit/buffer"
	"github.com/go-i2p/cryptokit/memory"
	"github.com/go-i2p/cryptokit/status"
)

// A SignatureTemplate is registered by a signature implementation.
type SignatureTemplate struct {
	Name           string
	PrivateKeySize int
	PublicKeySize  int
	SignatureSize  int
	Backend        SignatureBackend
}

func (t *SignatureTemplate) Family() InterfaceID  { return InterfaceSignature }
func (t *SignatureTemplate) TemplateName() string { return t.Name }

// SignatureOptions describe one signature scheme selected from a registry.
type SignatureOptions struct {
	Algorithm      AlgorithmID
	Name           string
	PrivateKeySize int
	PublicKeySize  int
	SignatureSize  int
	Allocator      memory.Allocator

	// Context is owned by the backend and set by its InitOptions hook.
	Context any

	backend SignatureBackend
}

// Init selects alg from reg. On failure o is left zeroed.
func (o *SignatureOptions) Init(reg *Registry, alloc memory.Allocator, alg AlgorithmID) error {
	if o == nil {
		return ErrInvalidArgument
	}
	*o = SignatureOptions{}
	t, err := lookup[*SignatureTemplate](reg, InterfaceSignature, alg)
	if err != nil {
		return err
	}
	if t.Backend == nil {
		return fmt.Errorf("%w: signature %s has no backend", ErrMissingImplementation, t.Name)
	}
	if alloc == nil {
		alloc = memory.Default
	}
	*o = SignatureOptions{
		Algorithm:      alg,
		Name:           t.Name,
		PrivateKeySize: t.PrivateKeySize,
		PublicKeySize:  t.PublicKeySize,
		SignatureSize:  t.SignatureSize,
		Allocator:      alloc,
		backend:        t.Backend,
	}
	if err := t.Backend.InitOptions(o); err != nil {
		*o = SignatureOptions{}
		return status.Backend("signature", "init options", err)
	}
	return nil
}

// Dispose releases backend options state and zeroes o.
func (o *SignatureOptions) Dispose() {
	if o == nil {
		return
	}
	if o.backend != nil {
		o.backend.DisposeOptions(o)
	}
	*o = SignatureOptions{}
}

// Initialized reports whether Init succeeded and Dispose has not run.
func (o *SignatureOptions) Initialized() bool {
	return o != nil && o.backend != nil
}

// A SignatureContext signs and verifies messages.
type SignatureContext struct {
	options *SignatureOptions
	state   SignatureState
}

// NewSignatureContext returns a signature context using opts.
func NewSignatureContext(opts *SignatureOptions) (*SignatureContext, error) {
	if opts == nil {
		return nil, ErrInvalidArgument
	}
	if opts.backend == nil {
		return nil, fmt.Errorf("%w: signature options not initialized", ErrMissingImplementation)
	}
	state, err := opts.backend.NewState(opts)
	if err != nil {
		return nil, status.Backend("signature", "init", err)
	}
	return &SignatureContext{options: opts, state: state}, nil
}

// Options returns the options c was initialized from.
func (c *SignatureContext) Options() *SignatureOptions {
	if c == nil {
		return nil
	}
	return c.options
}

// KeypairCreate fills priv and pub with a fresh keypair.
func (c *SignatureContext) KeypairCreate(priv, pub *buffer.Buffer) error {
	if c == nil || c.state == nil {
		return ErrInvalidArgument
	}
	if err := sized("private key", priv, c.options.PrivateKeySize); err != nil {
		return err
	}
	if err := sized("public key", pub, c.options.PublicKeySize); err != nil {
		return err
	}
	return status.Backend("signature", "keypair", c.state.GenerateKeypair(priv.Bytes(), pub.Bytes()))
}

// Sign writes the signature of msg under priv into sig.
func (c *SignatureContext) Sign(sig, priv *buffer.Buffer, msg []byte) error {
	if c == nil || c.state == nil {
		return ErrInvalidArgument
	}
	if err := sized("signature", sig, c.options.SignatureSize); err != nil {
		return err
	}
	if err := sized("private key", priv, c.options.PrivateKeySize); err != nil {
		return err
	}
	return status.Backend("signature", "sign", c.state.Sign(sig.Bytes(), priv.Bytes(), msg))
}

// Verify checks sig over msg under pub. A signature that does not verify is
// reported as a backend failure wrapping ErrVerification.
func (c *SignatureContext) Verify(sig, pub *buffer.Buffer, msg []byte) error {
	if c == nil || c.state == nil {
		return ErrInvalidArgument
	}
	if err := sized("signature", sig, c.options.SignatureSize); err != nil {
		return err
	}
	if err := sized("public key", pub, c.options.PublicKeySize); err != nil {
		return err
	}
	return status.Backend("signature", "verify", c.state.Verify(sig.Bytes(), pub.Bytes(), msg))
}

// Dispose wipes the backend state and zeroes c.
func (c *SignatureContext) Dispose() {
	if c == nil {
		return
	}
	if c.state != nil {
		c.state.Dispose()
	}
	*c = SignatureContext{}
}
