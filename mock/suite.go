package mock

import (
	"github.com/go-i2p/cryptokit"
	"github.com/go-i2p/cryptokit/memory"
)

// Sizes declared by the mock templates.
const (
	HashSize             = 32
	MACKeySize           = 32
	MACSize              = 32
	ShortMACKeySize      = 16
	ShortMACSize         = 8
	BlockKeySize         = 32
	BlockSize            = 16
	StreamKeySize        = 32
	StreamIVSize         = 12
	PrivateKeySize       = 32
	PublicKeySize        = 32
	SharedSecretSize     = 32
	NonceSize            = 16
	DerivedKeySize       = 32
	SaltSize             = 16
	SignaturePrivateSize = 64
	SignaturePublicSize  = 32
	SignatureSize        = 64
)

var (
	hashTemplate = &cryptokit.HashTemplate{
		Name: "mock-hash", HashSize: HashSize, Backend: hashBackend{},
	}
	macTemplate = &cryptokit.MACTemplate{
		Name: "mock-mac", KeySize: MACKeySize, MACSize: MACSize, Backend: macBackend{},
	}
	macShortTemplate = &cryptokit.MACTemplate{
		Name: "mock-mac-short", KeySize: ShortMACKeySize, MACSize: ShortMACSize, Backend: macBackend{},
	}
	blockTemplate = &cryptokit.BlockCipherTemplate{
		Name: "mock-block", KeySize: BlockKeySize, BlockSize: BlockSize, Backend: blockBackend{},
	}
	streamTemplate = &cryptokit.StreamCipherTemplate{
		Name: "mock-stream", KeySize: StreamKeySize, IVSize: StreamIVSize, Backend: streamBackend{},
	}
	keyAgreementTemplate = &cryptokit.KeyAgreementTemplate{
		Name:             "mock-key-agreement",
		PrivateKeySize:   PrivateKeySize,
		PublicKeySize:    PublicKeySize,
		SharedSecretSize: SharedSecretSize,
		NonceSize:        NonceSize,
		Backend:          keyAgreementBackend{},
	}
	keyDerivationTemplate = &cryptokit.KeyDerivationTemplate{
		Name:          "mock-key-derivation",
		KeySize:       DerivedKeySize,
		SaltSize:      SaltSize,
		DefaultRounds: 1,
		Backend:       keyDerivationBackend{},
	}
	signatureTemplate = &cryptokit.SignatureTemplate{
		Name:           "mock-signature",
		PrivateKeySize: SignaturePrivateSize,
		PublicKeySize:  SignaturePublicSize,
		SignatureSize:  SignatureSize,
		Backend:        signatureBackend{},
	}
	prngTemplate = &cryptokit.PRNGTemplate{
		Name: "mock-prng", Backend: prngBackend{},
	}
	suiteTemplate = &cryptokit.SuiteTemplate{
		Name:               "mock",
		Hash:               cryptokit.AlgorithmMock,
		MAC:                cryptokit.AlgorithmMock,
		MACShort:           cryptokit.AlgorithmMockShort,
		Block:              cryptokit.AlgorithmMock,
		Stream:             cryptokit.AlgorithmMock,
		AuthKeyAgreement:   cryptokit.AlgorithmMock,
		CipherKeyAgreement: cryptokit.AlgorithmMock,
		KeyDerivation:      cryptokit.AlgorithmMock,
		Signature:          cryptokit.AlgorithmMock,
		PRNG:               cryptokit.AlgorithmMock,
	}
)

// Register adds the mock implementation of every family and the mock suite
// to reg.
func Register(reg *cryptokit.Registry) error {
	regs := []struct {
		alg cryptokit.AlgorithmID
		t   cryptokit.Template
	}{
		{cryptokit.AlgorithmMock, hashTemplate},
		{cryptokit.AlgorithmMock, macTemplate},
		{cryptokit.AlgorithmMockShort, macShortTemplate},
		{cryptokit.AlgorithmMock, blockTemplate},
		{cryptokit.AlgorithmMock, streamTemplate},
		{cryptokit.AlgorithmMock, keyAgreementTemplate},
		{cryptokit.AlgorithmMock, keyDerivationTemplate},
		{cryptokit.AlgorithmMock, signatureTemplate},
		{cryptokit.AlgorithmMock, prngTemplate},
		{cryptokit.SuiteMock, suiteTemplate},
	}
	for _, r := range regs {
		if err := reg.Register(r.alg, r.t); err != nil {
			return err
		}
	}
	return nil
}

// A Suite is a cryptokit.Suite built from mock templates, with access to
// every family's record.
type Suite struct {
	cryptokit.Suite
}

// NewSuite initializes the mock suite from reg, which must have had
// Register applied.
func NewSuite(reg *cryptokit.Registry, alloc memory.Allocator) (*Suite, error) {
	s := new(Suite)
	if err := s.Init(reg, alloc, cryptokit.SuiteMock); err != nil {
		return nil, err
	}
	return s, nil
}

// HashRecord returns the hash record.
func (s *Suite) HashRecord() *Hash {
	if s == nil {
		return nil
	}
	return HashRecord(&s.Hash)
}

// MACRecord returns the MAC record.
func (s *Suite) MACRecord() *MAC {
	if s == nil {
		return nil
	}
	return MACRecord(&s.MAC)
}

// MACShortRecord returns the short MAC record.
func (s *Suite) MACShortRecord() *MAC {
	if s == nil {
		return nil
	}
	return MACRecord(&s.MACShort)
}

// BlockCipherRecord returns the block cipher record.
func (s *Suite) BlockCipherRecord() *BlockCipher {
	if s == nil {
		return nil
	}
	return BlockCipherRecord(&s.Block)
}

// StreamCipherRecord returns the stream cipher record.
func (s *Suite) StreamCipherRecord() *StreamCipher {
	if s == nil {
		return nil
	}
	return StreamCipherRecord(&s.Stream)
}

// AuthKeyAgreementRecord returns the auth key agreement record.
func (s *Suite) AuthKeyAgreementRecord() *KeyAgreement {
	if s == nil {
		return nil
	}
	return KeyAgreementRecord(&s.AuthKeyAgreement)
}

// CipherKeyAgreementRecord returns the cipher key agreement record.
func (s *Suite) CipherKeyAgreementRecord() *KeyAgreement {
	if s == nil {
		return nil
	}
	return KeyAgreementRecord(&s.CipherKeyAgreement)
}

// KeyDerivationRecord returns the key derivation record.
func (s *Suite) KeyDerivationRecord() *KeyDerivation {
	if s == nil {
		return nil
	}
	return KeyDerivationRecord(&s.KeyDerivation)
}

// SignatureRecord returns the signature record.
func (s *Suite) SignatureRecord() *Signature {
	if s == nil {
		return nil
	}
	return SignatureRecord(&s.Signature)
}

// PRNGRecord returns the random generator record.
func (s *Suite) PRNGRecord() *PRNG {
	if s == nil {
		return nil
	}
	return PRNGRecord(&s.PRNG)
}
