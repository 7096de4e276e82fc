package backend

import (
	"github.com/go-i2p/cryptokit"
)

// A RegisterFunc registers one algorithm or suite.
type RegisterFunc func(reg *cryptokit.Registry) error

func registerAll(reg *cryptokit.Registry, fns ...RegisterFunc) error {
	for _, fn := range fns {
		if err := fn(reg); err != nil {
			return err
		}
	}
	return nil
}

var (
	suite1 = &cryptokit.SuiteTemplate{
		Name:               "suite-1",
		Hash:               cryptokit.HashSHA256,
		MAC:                cryptokit.MACHMACSHA256,
		MACShort:           cryptokit.MACBLAKE2b128,
		Block:              cryptokit.BlockAES128,
		Stream:             cryptokit.StreamChaCha20,
		AuthKeyAgreement:   cryptokit.KeyAgreementX25519BLAKE2b,
		CipherKeyAgreement: cryptokit.KeyAgreementX25519,
		KeyDerivation:      cryptokit.KeyDerivationPBKDF2SHA256,
		Signature:          cryptokit.SignatureEd25519,
		PRNG:               cryptokit.PRNGSystem,
	}
	suite2 = &cryptokit.SuiteTemplate{
		Name:               "suite-2",
		Hash:               cryptokit.HashSHA512,
		MAC:                cryptokit.MACHMACSHA512256,
		MACShort:           cryptokit.MACBLAKE2b128,
		Block:              cryptokit.BlockAES256,
		Stream:             cryptokit.StreamAES256CTR,
		AuthKeyAgreement:   cryptokit.KeyAgreementX25519BLAKE2b,
		CipherKeyAgreement: cryptokit.KeyAgreementX25519,
		KeyDerivation:      cryptokit.KeyDerivationPBKDF2SHA512,
		Signature:          cryptokit.SignatureEd25519,
		PRNG:               cryptokit.PRNGSystem,
	}
	suite3 = &cryptokit.SuiteTemplate{
		Name:               "suite-3",
		Hash:               cryptokit.HashSHA3512,
		MAC:                cryptokit.MACHMACSHA3256,
		MACShort:           cryptokit.MACBLAKE2b128,
		Block:              cryptokit.BlockAES256,
		Stream:             cryptokit.StreamChaCha20,
		AuthKeyAgreement:   cryptokit.KeyAgreementX25519BLAKE2b,
		CipherKeyAgreement: cryptokit.KeyAgreementX448,
		KeyDerivation:      cryptokit.KeyDerivationArgon2id,
		Signature:          cryptokit.SignatureMLDSA65,
		PRNG:               cryptokit.PRNGChaCha20DRBG,
	}
	suite4 = &cryptokit.SuiteTemplate{
		Name:               "suite-4",
		Hash:               cryptokit.HashBLAKE2b512,
		MAC:                cryptokit.MACHMACSHA256,
		MACShort:           cryptokit.MACBLAKE2b128,
		Block:              cryptokit.BlockAES256,
		Stream:             cryptokit.StreamChaCha20,
		AuthKeyAgreement:   cryptokit.KeyAgreementX25519BLAKE2b,
		CipherKeyAgreement: cryptokit.KeyAgreementX448,
		KeyDerivation:      cryptokit.KeyDerivationPBKDF2SHA256,
		Signature:          cryptokit.SignatureSecp256k1Schnorr,
		PRNG:               cryptokit.PRNGSystem,
	}
	suite5 = &cryptokit.SuiteTemplate{
		Name:               "suite-5",
		Hash:               cryptokit.HashBLAKE2b512,
		MAC:                cryptokit.MACHMACSHA256,
		MACShort:           cryptokit.MACBLAKE2b128,
		Block:              cryptokit.BlockAES256,
		Stream:             cryptokit.StreamChaCha20,
		AuthKeyAgreement:   cryptokit.KeyAgreementX25519BLAKE2b,
		CipherKeyAgreement: cryptokit.KeyAgreementX448,
		KeyDerivation:      cryptokit.KeyDerivationPBKDF2SHA256,
		Signature:          cryptokit.SignatureEd448,
		PRNG:               cryptokit.PRNGSystem,
	}
)

// RegisterSuite1 registers suite 1 and every algorithm it selects.
func RegisterSuite1(reg *cryptokit.Registry) error {
	return registerAll(reg,
		RegisterHashSHA256,
		RegisterMACHMACSHA256,
		RegisterMACBLAKE2b128,
		RegisterBlockAES128,
		RegisterStreamChaCha20,
		RegisterKeyAgreementX25519BLAKE2b,
		RegisterKeyAgreementX25519,
		RegisterKeyDerivationPBKDF2SHA256,
		RegisterSignatureEd25519,
		RegisterPRNGSystem,
		func(reg *cryptokit.Registry) error { return reg.Register(cryptokit.Suite1, suite1) },
	)
}

// RegisterSuite2 registers suite 2 and every algorithm it selects.
func RegisterSuite2(reg *cryptokit.Registry) error {
	return registerAll(reg,
		RegisterHashSHA512,
		RegisterMACHMACSHA512256,
		RegisterMACBLAKE2b128,
		RegisterBlockAES256,
		RegisterStreamAES256CTR,
		RegisterKeyAgreementX25519BLAKE2b,
		RegisterKeyAgreementX25519,
		RegisterKeyDerivationPBKDF2SHA512,
		RegisterSignatureEd25519,
		RegisterPRNGSystem,
		func(reg *cryptokit.Registry) error { return reg.Register(cryptokit.Suite2, suite2) },
	)
}

// RegisterSuite3 registers suite 3 and every algorithm it selects.
func RegisterSuite3(reg *cryptokit.Registry) error {
	return registerAll(reg,
		RegisterHashSHA3512,
		RegisterMACHMACSHA3256,
		RegisterMACBLAKE2b128,
		RegisterBlockAES256,
		RegisterStreamChaCha20,
		RegisterKeyAgreementX25519BLAKE2b,
		RegisterKeyAgreementX448,
		RegisterKeyDerivationArgon2id,
		RegisterSignatureMLDSA65,
		RegisterPRNGChaCha20DRBG,
		func(reg *cryptokit.Registry) error { return reg.Register(cryptokit.Suite3, suite3) },
	)
}

// RegisterSuite4 registers suite 4 and every algorithm it selects.
func RegisterSuite4(reg *cryptokit.Registry) error {
	return registerAll(reg,
		RegisterHashBLAKE2b512,
		RegisterMACHMACSHA256,
		RegisterMACBLAKE2b128,
		RegisterBlockAES256,
		RegisterStreamChaCha20,
		RegisterKeyAgreementX25519BLAKE2b,
		RegisterKeyAgreementX448,
		RegisterKeyDerivationPBKDF2SHA256,
		RegisterSignatureSecp256k1Schnorr,
		RegisterPRNGSystem,
		func(reg *cryptokit.Registry) error { return reg.Register(cryptokit.Suite4, suite4) },
	)
}

// RegisterSuite5 registers suite 5 and every algorithm it selects.
func RegisterSuite5(reg *cryptokit.Registry) error {
	return registerAll(reg,
		RegisterSuite4,
		RegisterSignatureEd448,
		func(reg *cryptokit.Registry) error { return reg.Register(cryptokit.Suite5, suite5) },
	)
}

// Suites maps each suite selector to its registration function.
var Suites = map[cryptokit.AlgorithmID]RegisterFunc{
	cryptokit.Suite1: RegisterSuite1,
	cryptokit.Suite2: RegisterSuite2,
	cryptokit.Suite3: RegisterSuite3,
	cryptokit.Suite4: RegisterSuite4,
	cryptokit.Suite5: RegisterSuite5,
}

// RegisterAll registers every algorithm and suite in this package.
func RegisterAll(reg *cryptokit.Registry) error {
	return registerAll(reg,
		RegisterSuite1,
		RegisterSuite2,
		RegisterSuite3,
		RegisterSuite4,
		RegisterSuite5,
	)
}
