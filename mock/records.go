// Package mock provides mock implementations of every cryptokit family and a
// mock suite. Each options record initialized from a mock template carries a
// per-family record of overridable functions in its Context; every call
// consults the record at call time, so a test may rewire a method after the
// context exists.
//
// Unset Init and Dispose functions succeed. Unset domain functions fail with
// cryptokit.ErrMockNotWired. Records are cleared when their options are
// disposed.
package mock

import "github.com/go-i2p/cryptokit"

// Hash is the mock record for the hash family.
type Hash struct {
	Init     func(opts *cryptokit.HashOptions) error
	Dispose  func()
	Digest   func(data []byte) error
	Finalize func(out []byte) error
}

// MAC is the mock record for the MAC and short MAC families.
type MAC struct {
	Init     func(opts *cryptokit.MACOptions, key []byte) error
	Dispose  func()
	Digest   func(data []byte) error
	Finalize func(out []byte) error
}

// BlockCipher is the mock record for the block cipher family.
type BlockCipher struct {
	Init    func(opts *cryptokit.BlockCipherOptions, key []byte, encrypt bool) error
	Dispose func()
	Encrypt func(iv, in, out []byte) error
	Decrypt func(iv, in, out []byte) error
}

// StreamCipher is the mock record for the stream cipher family.
type StreamCipher struct {
	Init    func(opts *cryptokit.StreamCipherOptions, key []byte) error
	Dispose func()
	Start   func(iv []byte) error
	Seek    func(iv []byte, position uint64) error
	Encrypt func(dst, src []byte) error
	Decrypt func(dst, src []byte) error
}

// KeyAgreement is the mock record for the key agreement family. The auth
// and cipher key agreements of a mock suite have separate records.
type KeyAgreement struct {
	Init            func(opts *cryptokit.KeyAgreementOptions) error
	Dispose         func()
	GenerateKeypair func(priv, pub []byte) error
	LongTermSecret  func(priv, pub, shared []byte) error
	ShortTermSecret func(priv, pub, clientNonce, serverNonce, shared []byte) error
}

// KeyDerivation is the mock record for the key derivation family.
type KeyDerivation struct {
	Init      func(opts *cryptokit.KeyDerivationOptions) error
	Dispose   func()
	DeriveKey func(out, password, salt []byte, rounds uint32) error
}

// Signature is the mock record for the signature family.
type Signature struct {
	Init            func(opts *cryptokit.SignatureOptions) error
	Dispose         func()
	GenerateKeypair func(priv, pub []byte) error
	Sign            func(sig, priv, msg []byte) error
	Verify          func(sig, pub, msg []byte) error
}

// PRNG is the mock record for the random generator family.
type PRNG struct {
	Init    func(opts *cryptokit.PRNGOptions) error
	Dispose func()
	Read    func(dst []byte) error
}

// HashRecord returns the record behind mock hash options, or nil when opts
// were not initialized from a mock template.
func HashRecord(opts *cryptokit.HashOptions) *Hash {
	if opts == nil {
		return nil
	}
	r, _ := opts.Context.(*Hash)
	return r
}

// MACRecord returns the record behind mock MAC options.
func MACRecord(opts *cryptokit.MACOptions) *MAC {
	if opts == nil {
		return nil
	}
	r, _ := opts.Context.(*MAC)
	return r
}

// BlockCipherRecord returns the record behind mock block cipher options.
func BlockCipherRecord(opts *cryptokit.BlockCipherOptions) *BlockCipher {
	if opts == nil {
		return nil
	}
	r, _ := opts.Context.(*BlockCipher)
	return r
}

// StreamCipherRecord returns the record behind mock stream cipher options.
func StreamCipherRecord(opts *cryptokit.StreamCipherOptions) *StreamCipher {
	if opts == nil {
		return nil
	}
	r, _ := opts.Context.(*StreamCipher)
	return r
}

// KeyAgreementRecord returns the record behind mock key agreement options.
func KeyAgreementRecord(opts *cryptokit.KeyAgreementOptions) *KeyAgreement {
	if opts == nil {
		return nil
	}
	r, _ := opts.Context.(*KeyAgreement)
	return r
}

// KeyDerivationRecord returns the record behind mock key derivation
// options.
func KeyDerivationRecord(opts *cryptokit.KeyDerivationOptions) *KeyDerivation {
	if opts == nil {
		return nil
	}
	r, _ := opts.Context.(*KeyDerivation)
	return r
}

// SignatureRecord returns the record behind mock signature options.
func SignatureRecord(opts *cryptokit.SignatureOptions) *Signature {
	if opts == nil {
		return nil
	}
	r, _ := opts.Context.(*Signature)
	return r
}

// PRNGRecord returns the record behind mock random generator options.
func PRNGRecord(opts *cryptokit.PRNGOptions) *PRNG {
	if opts == nil {
		return nil
	}
	r, _ := opts.Context.(*PRNG)
	return r
}
