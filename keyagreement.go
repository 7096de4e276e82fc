package cryptokit

import (
	"fmt"

	"github.com/go-i2p/cryptokit/buffer"
	"github.com/go-i2p/cryptokit/memory"
	"github.com/go-i2p/cryptokit/status"
)

// A KeyAgreementTemplate is registered by a key agreement implementation.
type KeyAgreementTemplate struct {
	Name             string
	PrivateKeySize   int
	PublicKeySize    int
	SharedSecretSize int
	NonceSize        int
	Backend          KeyAgreementBackend
}

func (t *KeyAgreementTemplate) Family() InterfaceID  { return InterfaceKeyAgreement }
func (t *KeyAgreementTemplate) TemplateName() string { return t.Name }

// KeyAgreementOptions describe one key agreement selected from a registry.
type KeyAgreementOptions struct {
	Algorithm        AlgorithmID
	Name             string
	PrivateKeySize   int
	PublicKeySize    int
	SharedSecretSize int
	NonceSize        int
	Allocator        memory.Allocator

	// Context is owned by the backend and set by its InitOptions hook.
	Context any

	backend KeyAgreementBackend
}

// Init selects alg from reg. On failure o is left zeroed.
func (o *KeyAgreementOptions) Init(reg *Registry, alloc memory.Allocator, alg AlgorithmID) error {
	if o == nil {
		return ErrInvalidArgument
	}
	*o = KeyAgreementOptions{}
	t, err := lookup[*KeyAgreementTemplate](reg, InterfaceKeyAgreement, alg)
	if err != nil {
		return err
	}
	if t.Backend == nil {
		return fmt.Errorf("%w: key agreement %s has no backend", ErrMissingImplementation, t.Name)
	}
	if alloc == nil {
		alloc = memory.Default
	}
	*o = KeyAgreementOptions{
		Algorithm:        alg,
		Name:             t.Name,
		PrivateKeySize:   t.PrivateKeySize,
		PublicKeySize:    t.PublicKeySize,
		SharedSecretSize: t.SharedSecretSize,
		NonceSize:        t.NonceSize,
		Allocator:        alloc,
		backend:          t.Backend,
	}
	if err := t.Backend.InitOptions(o); err != nil {
		*o = KeyAgreementOptions{}
		return status.Backend("key agreement", "init options", err)
	}
	return nil
}

// Dispose releases backend options state and zeroes o.
func (o *KeyAgreementOptions) Dispose() {
	if o == nil {
		return
	}
	if o.backend != nil {
		o.backend.DisposeOptions(o)
	}
	*o = KeyAgreementOptions{}
}

// Initialized reports whether Init succeeded and Dispose has not run.
func (o *KeyAgreementOptions) Initialized() bool {
	return o != nil && o.backend != nil
}

// A KeyAgreementContext performs key agreement with one algorithm.
type KeyAgreementContext struct {
	options *KeyAgreementOptions
	state   KeyAgreementState
}

// NewKeyAgreementContext returns a key agreement context using opts.
func NewKeyAgreementContext(opts *KeyAgreementOptions) (*KeyAgreementContext, error) {
	if opts == nil {
		return nil, ErrInvalidArgument
	}
	if opts.backend == nil {
		return nil, fmt.Errorf("%w: key agreement options not initialized", ErrMissingImplementation)
	}
	state, err := opts.backend.NewState(opts)
	if err != nil {
		return nil, status.Backend("key agreement", "init", err)
	}
	return &KeyAgreementContext{options: opts, state: state}, nil
}

// Options returns the options c was initialized from.
func (c *KeyAgreementContext) Options() *KeyAgreementOptions {
	if c == nil {
		return nil
	}
	return c.options
}

func sized(what string, b *buffer.Buffer, n int) error {
	if !b.Live() {
		return fmt.Errorf("%w: %s buffer not allocated", ErrInvalidArgument, what)
	}
	if b.Len() != n {
		return fmt.Errorf("%w: %s %d bytes, need %d", ErrSizeMismatch, what, b.Len(), n)
	}
	return nil
}

func (c *KeyAgreementContext) ready() error {
	if c == nil || c.state == nil {
		return ErrInvalidArgument
	}
	return nil
}

// KeypairCreate fills priv and pub with a fresh keypair.
func (c *KeyAgreementContext) KeypairCreate(priv, pub *buffer.Buffer) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := sized("private key", priv, c.options.PrivateKeySize); err != nil {
		return err
	}
	if err := sized("public key", pub, c.options.PublicKeySize); err != nil {
		return err
	}
	return status.Backend("key agreement", "keypair", c.state.GenerateKeypair(priv.Bytes(), pub.Bytes()))
}

// LongTermSecretCreate derives the static shared secret between our priv
// and the peer's pub.
func (c *KeyAgreementContext) LongTermSecretCreate(priv, pub, shared *buffer.Buffer) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := sized("private key", priv, c.options.PrivateKeySize); err != nil {
		return err
	}
	if err := sized("public key", pub, c.options.PublicKeySize); err != nil {
		return err
	}
	if err := sized("shared secret", shared, c.options.SharedSecretSize); err != nil {
		return err
	}
	return status.Backend("key agreement", "long term secret",
		c.state.LongTermSecret(priv.Bytes(), pub.Bytes(), shared.Bytes()))
}

// ShortTermSecretCreate derives a session secret bound to the client and
// server nonces. Both sides obtain the same secret when they pass the
// nonces in the same order.
func (c *KeyAgreementContext) ShortTermSecretCreate(priv, pub, clientNonce, serverNonce, shared *buffer.Buffer) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := sized("private key", priv, c.options.PrivateKeySize); err != nil {
		return err
	}
	if err := sized("public key", pub, c.options.PublicKeySize); err != nil {
		return err
	}
	if err := sized("client nonce", clientNonce, c.options.NonceSize); err != nil {
		return err
	}
	if err := sized("server nonce", serverNonce, c.options.NonceSize); err != nil {
		return err
	}
	if err := sized("shared secret", shared, c.options.SharedSecretSize); err != nil {
		return err
	}
	return status.Backend("key agreement", "short term secret",
		c.state.ShortTermSecret(priv.Bytes(), pub.Bytes(), clientNonce.Bytes(), serverNonce.Bytes(), shared.Bytes()))
}

// Dispose wipes the backend state and zeroes c.
func (c *KeyAgreementContext) Dispose() {
	if c == nil {
		return
	}
	if c.state != nil {
		c.state.Dispose()
	}
	*c = KeyAgreementContext{}
}
