package cryptokit

import (
	"context"
	"fmt"

	"github.com/go-i2p/cryptokit/buffer"
	"github.com/go-i2p/cryptokit/logging"
	"github.com/go-i2p/cryptokit/memory"
)

// A SuiteTemplate names one algorithm per family. It is registered under
// InterfaceSuite with the suite's selector.
type SuiteTemplate struct {
	Name string

	Hash               AlgorithmID
	MAC                AlgorithmID
	MACShort           AlgorithmID
	Block              AlgorithmID
	Stream             AlgorithmID
	AuthKeyAgreement   AlgorithmID
	CipherKeyAgreement AlgorithmID
	KeyDerivation      AlgorithmID
	Signature          AlgorithmID
	PRNG               AlgorithmID
}

func (t *SuiteTemplate) Family() InterfaceID  { return InterfaceSuite }
func (t *SuiteTemplate) TemplateName() string { return t.Name }

// A Suite holds initialized options for every family. Higher layers mint
// contexts and correctly sized buffers from it.
//
// The options are embedded by value; contexts created from a suite point
// into it, so a Suite must not be copied after Init and must outlive its
// contexts.
type Suite struct {
	ID        AlgorithmID
	Name      string
	Allocator memory.Allocator

	Hash               HashOptions
	MAC                MACOptions
	MACShort           MACOptions
	Block              BlockCipherOptions
	Stream             StreamCipherOptions
	AuthKeyAgreement   KeyAgreementOptions
	CipherKeyAgreement KeyAgreementOptions
	KeyDerivation      KeyDerivationOptions
	Signature          SignatureOptions
	PRNG               PRNGOptions

	log logging.Logger
}

type suiteStep struct {
	name    string
	init    func() error
	dispose func()
}

func (s *Suite) steps(reg *Registry, alloc memory.Allocator, t *SuiteTemplate) []suiteStep {
	return []suiteStep{
		{"hash", func() error { return s.Hash.Init(reg, alloc, t.Hash) }, s.Hash.Dispose},
		{"mac", func() error { return s.MAC.Init(reg, alloc, t.MAC) }, s.MAC.Dispose},
		{"mac short", func() error { return s.MACShort.Init(reg, alloc, t.MACShort) }, s.MACShort.Dispose},
		{"block", func() error { return s.Block.Init(reg, alloc, t.Block) }, s.Block.Dispose},
		{"stream", func() error { return s.Stream.Init(reg, alloc, t.Stream) }, s.Stream.Dispose},
		{"auth key agreement", func() error { return s.AuthKeyAgreement.Init(reg, alloc, t.AuthKeyAgreement) }, s.AuthKeyAgreement.Dispose},
		{"cipher key agreement", func() error { return s.CipherKeyAgreement.Init(reg, alloc, t.CipherKeyAgreement) }, s.CipherKeyAgreement.Dispose},
		{"key derivation", func() error { return s.KeyDerivation.Init(reg, alloc, t.KeyDerivation) }, s.KeyDerivation.Dispose},
		{"signature", func() error { return s.Signature.Init(reg, alloc, t.Signature) }, s.Signature.Dispose},
		{"prng", func() error { return s.PRNG.Init(reg, alloc, t.PRNG) }, s.PRNG.Dispose},
	}
}

// Init selects suite id from reg and initializes every family's options in
// a fixed order. If one family fails, the families already initialized are
// disposed in reverse order, s is left zeroed, and the failure is returned.
func (s *Suite) Init(reg *Registry, alloc memory.Allocator, id AlgorithmID) error {
	if s == nil {
		return ErrInvalidArgument
	}
	*s = Suite{}
	t, err := lookup[*SuiteTemplate](reg, InterfaceSuite, id)
	if err != nil {
		return err
	}
	if alloc == nil {
		alloc = memory.Default
	}
	log := reg.logger().With("suite", t.Name)
	ctx := context.Background()

	steps := s.steps(reg, alloc, t)
	for i, step := range steps {
		if err := step.init(); err != nil {
			log.Warn(ctx, "suite init failed, unwinding", "family", step.name, "error", err)
			for j := i - 1; j >= 0; j-- {
				steps[j].dispose()
			}
			*s = Suite{}
			return fmt.Errorf("suite %s: %s: %w", t.Name, step.name, err)
		}
	}
	s.ID = id
	s.Name = t.Name
	s.Allocator = alloc
	s.log = log
	log.Debug(ctx, "suite initialized", "id", id.String())
	return nil
}

// NewSuite allocates and initializes a suite.
func NewSuite(reg *Registry, alloc memory.Allocator, id AlgorithmID) (*Suite, error) {
	s := new(Suite)
	if err := s.Init(reg, alloc, id); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialized reports whether Init succeeded and Dispose has not run.
func (s *Suite) Initialized() bool {
	return s != nil && s.Allocator != nil
}

// Dispose disposes every family's options in reverse init order and zeroes
// s. Contexts created from s must be disposed first.
func (s *Suite) Dispose() {
	if !s.Initialized() {
		return
	}
	steps := s.steps(nil, nil, &SuiteTemplate{})
	for i := len(steps) - 1; i >= 0; i-- {
		steps[i].dispose()
	}
	*s = Suite{}
}

// NewHash starts a hash computation.
func (s *Suite) NewHash() (*HashContext, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return NewHashContext(&s.Hash)
}

// NewMAC starts a MAC computation under key.
func (s *Suite) NewMAC(key *buffer.Buffer) (*MACContext, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return NewMACContext(&s.MAC, key)
}

// NewMACShort starts a short MAC computation under key.
func (s *Suite) NewMACShort(key *buffer.Buffer) (*MACContext, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return NewMACContext(&s.MACShort, key)
}

// NewBlockCipher keys the suite's block cipher for one direction.
func (s *Suite) NewBlockCipher(key *buffer.Buffer, encrypt bool) (*BlockCipherContext, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return NewBlockCipherContext(&s.Block, key, encrypt)
}

// NewStreamCipher keys the suite's stream cipher.
func (s *Suite) NewStreamCipher(key *buffer.Buffer) (*StreamCipherContext, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return NewStreamCipherContext(&s.Stream, key)
}

// NewAuthKeyAgreement returns a context for the authentication key
// agreement.
func (s *Suite) NewAuthKeyAgreement() (*KeyAgreementContext, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return NewKeyAgreementContext(&s.AuthKeyAgreement)
}

// NewCipherKeyAgreement returns a context for the cipher key agreement.
func (s *Suite) NewCipherKeyAgreement() (*KeyAgreementContext, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return NewKeyAgreementContext(&s.CipherKeyAgreement)
}

// NewKeyDerivation returns a key derivation context.
func (s *Suite) NewKeyDerivation() (*KeyDerivationContext, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return NewKeyDerivationContext(&s.KeyDerivation)
}

// NewSignature returns a signature context.
func (s *Suite) NewSignature() (*SignatureContext, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return NewSignatureContext(&s.Signature)
}

// NewPRNG returns a random generator context.
func (s *Suite) NewPRNG() (*PRNGContext, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return NewPRNGContext(&s.PRNG)
}
