package cryptokit

import "fmt"

// An InterfaceID names a primitive family. Together with an AlgorithmID it
// forms a registry key.
type InterfaceID uint32

// Interface identifiers. The base range 0x43000000 is reserved.
const (
	InterfaceHash          InterfaceID = 0x43000010
	InterfaceStream        InterfaceID = 0x43000020
	InterfaceBlock         InterfaceID = 0x43000030
	InterfaceMAC           InterfaceID = 0x43000040
	InterfaceKeyAgreement  InterfaceID = 0x43000050
	InterfaceSignature     InterfaceID = 0x43000060
	InterfacePRNG          InterfaceID = 0x43000070
	InterfaceSuite         InterfaceID = 0x43000080
	InterfaceKeyDerivation InterfaceID = 0x43000090
)

var interfaceNames = map[InterfaceID]string{
	InterfaceHash:          "hash",
	InterfaceStream:        "stream",
	InterfaceBlock:         "block",
	InterfaceMAC:           "mac",
	InterfaceKeyAgreement:  "key-agreement",
	InterfaceSignature:     "signature",
	InterfacePRNG:          "prng",
	InterfaceSuite:         "suite",
	InterfaceKeyDerivation: "key-derivation",
}

func (i InterfaceID) String() string {
	if s, ok := interfaceNames[i]; ok {
		return s
	}
	return fmt.Sprintf("interface(%#08x)", uint32(i))
}

// An AlgorithmID names one implementation inside a family. Real
// implementations use small positive values; mocks use the high bits.
type AlgorithmID uint32

const (
	// AlgorithmMock selects the mock implementation of any family, and the
	// mock suite.
	AlgorithmMock AlgorithmID = 0x80000000

	// AlgorithmMockShort selects the mock short MAC.
	AlgorithmMockShort AlgorithmID = 0x40000000
)

// IsMock reports whether a selects a mock implementation.
func (a AlgorithmID) IsMock() bool {
	return a&(AlgorithmMock|AlgorithmMockShort) != 0
}

func (a AlgorithmID) String() string {
	return fmt.Sprintf("%#x", uint32(a))
}

// Hash algorithms.
const (
	HashSHA256     AlgorithmID = 0x01
	HashSHA512     AlgorithmID = 0x02
	HashBLAKE2b512 AlgorithmID = 0x03
	HashSHA3512    AlgorithmID = 0x04
)

// MAC algorithms. MACBLAKE2b128 is the short MAC.
const (
	MACHMACSHA256    AlgorithmID = 0x01
	MACHMACSHA512256 AlgorithmID = 0x02
	MACHMACSHA3256   AlgorithmID = 0x03
	MACBLAKE2b128    AlgorithmID = 0x10
)

// Block cipher algorithms.
const (
	BlockAES128 AlgorithmID = 0x01
	BlockAES256 AlgorithmID = 0x02
)

// Stream cipher algorithms.
const (
	StreamAES256CTR AlgorithmID = 0x01
	StreamChaCha20  AlgorithmID = 0x02
)

// Key agreement algorithms.
const (
	KeyAgreementX25519        AlgorithmID = 0x01
	KeyAgreementX25519BLAKE2b AlgorithmID = 0x02
	KeyAgreementX448          AlgorithmID = 0x03
)

// Key derivation algorithms.
const (
	KeyDerivationPBKDF2SHA256 AlgorithmID = 0x01
	KeyDerivationPBKDF2SHA512 AlgorithmID = 0x02
	KeyDerivationArgon2id     AlgorithmID = 0x03
)

// Signature algorithms.
const (
	SignatureEd25519          AlgorithmID = 0x01
	SignatureEd448            AlgorithmID = 0x02
	SignatureMLDSA65          AlgorithmID = 0x03
	SignatureSecp256k1Schnorr AlgorithmID = 0x04
)

// PRNG algorithms.
const (
	PRNGSystem       AlgorithmID = 0x01
	PRNGChaCha20DRBG AlgorithmID = 0x02
)

// Suite selectors.
const (
	Suite1 AlgorithmID = 0x01
	Suite2 AlgorithmID = 0x02
	Suite3 AlgorithmID = 0x03
	Suite4 AlgorithmID = 0x04
	Suite5 AlgorithmID = 0x05

	SuiteMock = AlgorithmMock
)

// UUIDSize is the length of a UUID in bytes.
const UUIDSize = 16
