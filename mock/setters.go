package mock

import (
	"fmt"

	"github.com/go-i2p/cryptokit"
)

// Setters install one function into one family's record. Passing nil
// restores the default behavior. A nil suite gives ErrInvalidArgument and a
// suite whose options were not initialized from mock templates gives
// ErrMissingImplementation.
func set[R any](s *Suite, record func(*Suite) *R, apply func(*R)) error {
	if s == nil {
		return cryptokit.ErrInvalidArgument
	}
	r := record(s)
	if r == nil {
		return fmt.Errorf("%w: no mock record", cryptokit.ErrMissingImplementation)
	}
	apply(r)
	return nil
}

// SetHashInit wires the hash Init function.
func (s *Suite) SetHashInit(fn func(opts *cryptokit.HashOptions) error) error {
	return set(s, (*Suite).HashRecord, func(r *Hash) { r.Init = fn })
}

// SetHashDispose wires the hash Dispose function.
func (s *Suite) SetHashDispose(fn func()) error {
	return set(s, (*Suite).HashRecord, func(r *Hash) { r.Dispose = fn })
}

// SetHashDigest wires the hash Digest function.
func (s *Suite) SetHashDigest(fn func(data []byte) error) error {
	return set(s, (*Suite).HashRecord, func(r *Hash) { r.Digest = fn })
}

// SetHashFinalize wires the hash Finalize function.
func (s *Suite) SetHashFinalize(fn func(out []byte) error) error {
	return set(s, (*Suite).HashRecord, func(r *Hash) { r.Finalize = fn })
}

// SetMACInit wires the MAC Init function.
func (s *Suite) SetMACInit(fn func(opts *cryptokit.MACOptions, key []byte) error) error {
	return set(s, (*Suite).MACRecord, func(r *MAC) { r.Init = fn })
}

// SetMACDispose wires the MAC Dispose function.
func (s *Suite) SetMACDispose(fn func()) error {
	return set(s, (*Suite).MACRecord, func(r *MAC) { r.Dispose = fn })
}

// SetMACDigest wires the MAC Digest function.
func (s *Suite) SetMACDigest(fn func(data []byte) error) error {
	return set(s, (*Suite).MACRecord, func(r *MAC) { r.Digest = fn })
}

// SetMACFinalize wires the MAC Finalize function.
func (s *Suite) SetMACFinalize(fn func(out []byte) error) error {
	return set(s, (*Suite).MACRecord, func(r *MAC) { r.Finalize = fn })
}

// SetMACShortInit wires the short MAC Init function.
func (s *Suite) SetMACShortInit(fn func(opts *cryptokit.MACOptions, key []byte) error) error {
	return set(s, (*Suite).MACShortRecord, func(r *MAC) { r.Init = fn })
}

// SetMACShortDispose wires the short MAC Dispose function.
func (s *Suite) SetMACShortDispose(fn func()) error {
	return set(s, (*Suite).MACShortRecord, func(r *MAC) { r.Dispose = fn })
}

// SetMACShortDigest wires the short MAC Digest function.
func (s *Suite) SetMACShortDigest(fn func(data []byte) error) error {
	return set(s, (*Suite).MACShortRecord, func(r *MAC) { r.Digest = fn })
}

// SetMACShortFinalize wires the short MAC Finalize function.
func (s *Suite) SetMACShortFinalize(fn func(out []byte) error) error {
	return set(s, (*Suite).MACShortRecord, func(r *MAC) { r.Finalize = fn })
}

// SetBlockCipherInit wires the block cipher Init function.
func (s *Suite) SetBlockCipherInit(fn func(opts *cryptokit.BlockCipherOptions, key []byte, encrypt bool) error) error {
	return set(s, (*Suite).BlockCipherRecord, func(r *BlockCipher) { r.Init = fn })
}

// SetBlockCipherDispose wires the block cipher Dispose function.
func (s *Suite) SetBlockCipherDispose(fn func()) error {
	return set(s, (*Suite).BlockCipherRecord, func(r *BlockCipher) { r.Dispose = fn })
}

// SetBlockCipherEncrypt wires the block cipher Encrypt function.
func (s *Suite) SetBlockCipherEncrypt(fn func(iv, in, out []byte) error) error {
	return set(s, (*Suite).BlockCipherRecord, func(r *BlockCipher) { r.Encrypt = fn })
}

// SetBlockCipherDecrypt wires the block cipher Decrypt function.
func (s *Suite) SetBlockCipherDecrypt(fn func(iv, in, out []byte) error) error {
	return set(s, (*Suite).BlockCipherRecord, func(r *BlockCipher) { r.Decrypt = fn })
}

// SetStreamCipherInit wires the stream cipher Init function.
func (s *Suite) SetStreamCipherInit(fn func(opts *cryptokit.StreamCipherOptions, key []byte) error) error {
	return set(s, (*Suite).StreamCipherRecord, func(r *StreamCipher) { r.Init = fn })
}

// SetStreamCipherDispose wires the stream cipher Dispose function.
func (s *Suite) SetStreamCipherDispose(fn func()) error {
	return set(s, (*Suite).StreamCipherRecord, func(r *StreamCipher) { r.Dispose = fn })
}

// SetStreamCipherStart wires the stream cipher Start function.
func (s *Suite) SetStreamCipherStart(fn func(iv []byte) error) error {
	return set(s, (*Suite).StreamCipherRecord, func(r *StreamCipher) { r.Start = fn })
}

// SetStreamCipherSeek wires the stream cipher Seek function.
func (s *Suite) SetStreamCipherSeek(fn func(iv []byte, position uint64) error) error {
	return set(s, (*Suite).StreamCipherRecord, func(r *StreamCipher) { r.Seek = fn })
}

// SetStreamCipherEncrypt wires the stream cipher Encrypt function.
func (s *Suite) SetStreamCipherEncrypt(fn func(dst, src []byte) error) error {
	return set(s, (*Suite).StreamCipherRecord, func(r *StreamCipher) { r.Encrypt = fn })
}

// SetStreamCipherDecrypt wires the stream cipher Decrypt function.
func (s *Suite) SetStreamCipherDecrypt(fn func(dst, src []byte) error) error {
	return set(s, (*Suite).StreamCipherRecord, func(r *StreamCipher) { r.Decrypt = fn })
}

// SetAuthKeyAgreementInit wires the auth key agreement Init function.
func (s *Suite) SetAuthKeyAgreementInit(fn func(opts *cryptokit.KeyAgreementOptions) error) error {
	return set(s, (*Suite).AuthKeyAgreementRecord, func(r *KeyAgreement) { r.Init = fn })
}

// SetAuthKeyAgreementDispose wires the auth key agreement Dispose function.
func (s *Suite) SetAuthKeyAgreementDispose(fn func()) error {
	return set(s, (*Suite).AuthKeyAgreementRecord, func(r *KeyAgreement) { r.Dispose = fn })
}

// SetAuthKeyAgreementGenerateKeypair wires the auth key agreement GenerateKeypair function.
func (s *Suite) SetAuthKeyAgreementGenerateKeypair(fn func(priv, pub []byte) error) error {
	return set(s, (*Suite).AuthKeyAgreementRecord, func(r *KeyAgreement) { r.GenerateKeypair = fn })
}

// SetAuthKeyAgreementLongTermSecret wires the auth key agreement LongTermSecret function.
func (s *Suite) SetAuthKeyAgreementLongTermSecret(fn func(priv, pub, shared []byte) error) error {
	return set(s, (*Suite).AuthKeyAgreementRecord, func(r *KeyAgreement) { r.LongTermSecret = fn })
}

// SetAuthKeyAgreementShortTermSecret wires the auth key agreement ShortTermSecret function.
func (s *Suite) SetAuthKeyAgreementShortTermSecret(fn func(priv, pub, clientNonce, serverNonce, shared []byte) error) error {
	return set(s, (*Suite).AuthKeyAgreementRecord, func(r *KeyAgreement) { r.ShortTermSecret = fn })
}

// SetCipherKeyAgreementInit wires the cipher key agreement Init function.
func (s *Suite) SetCipherKeyAgreementInit(fn func(opts *cryptokit.KeyAgreementOptions) error) error {
	return set(s, (*Suite).CipherKeyAgreementRecord, func(r *KeyAgreement) { r.Init = fn })
}

// SetCipherKeyAgreementDispose wires the cipher key agreement Dispose function.
func (s *Suite) SetCipherKeyAgreementDispose(fn func()) error {
	return set(s, (*Suite).CipherKeyAgreementRecord, func(r *KeyAgreement) { r.Dispose = fn })
}

// SetCipherKeyAgreementGenerateKeypair wires the cipher key agreement GenerateKeypair function.
func (s *Suite) SetCipherKeyAgreementGenerateKeypair(fn func(priv, pub []byte) error) error {
	return set(s, (*Suite).CipherKeyAgreementRecord, func(r *KeyAgreement) { r.GenerateKeypair = fn })
}

// SetCipherKeyAgreementLongTermSecret wires the cipher key agreement LongTermSecret function.
func (s *Suite) SetCipherKeyAgreementLongTermSecret(fn func(priv, pub, shared []byte) error) error {
	return set(s, (*Suite).CipherKeyAgreementRecord, func(r *KeyAgreement) { r.LongTermSecret = fn })
}

// SetCipherKeyAgreementShortTermSecret wires the cipher key agreement ShortTermSecret function.
func (s *Suite) SetCipherKeyAgreementShortTermSecret(fn func(priv, pub, clientNonce, serverNonce, shared []byte) error) error {
	return set(s, (*Suite).CipherKeyAgreementRecord, func(r *KeyAgreement) { r.ShortTermSecret = fn })
}

// SetKeyDerivationInit wires the key derivation Init function.
func (s *Suite) SetKeyDerivationInit(fn func(opts *cryptokit.KeyDerivationOptions) error) error {
	return set(s, (*Suite).KeyDerivationRecord, func(r *KeyDerivation) { r.Init = fn })
}

// SetKeyDerivationDispose wires the key derivation Dispose function.
func (s *Suite) SetKeyDerivationDispose(fn func()) error {
	return set(s, (*Suite).KeyDerivationRecord, func(r *KeyDerivation) { r.Dispose = fn })
}

// SetKeyDerivationDeriveKey wires the key derivation DeriveKey function.
func (s *Suite) SetKeyDerivationDeriveKey(fn func(out, password, salt []byte, rounds uint32) error) error {
	return set(s, (*Suite).KeyDerivationRecord, func(r *KeyDerivation) { r.DeriveKey = fn })
}

// SetSignatureInit wires the signature Init function.
func (s *Suite) SetSignatureInit(fn func(opts *cryptokit.SignatureOptions) error) error {
	return set(s, (*Suite).SignatureRecord, func(r *Signature) { r.Init = fn })
}

// SetSignatureDispose wires the signature Dispose function.
func (s *Suite) SetSignatureDispose(fn func()) error {
	return set(s, (*Suite).SignatureRecord, func(r *Signature) { r.Dispose = fn })
}

// SetSignatureGenerateKeypair wires the signature GenerateKeypair function.
func (s *Suite) SetSignatureGenerateKeypair(fn func(priv, pub []byte) error) error {
	return set(s, (*Suite).SignatureRecord, func(r *Signature) { r.GenerateKeypair = fn })
}

// SetSignatureSign wires the signature Sign function.
func (s *Suite) SetSignatureSign(fn func(sig, priv, msg []byte) error) error {
	return set(s, (*Suite).SignatureRecord, func(r *Signature) { r.Sign = fn })
}

// SetSignatureVerify wires the signature Verify function.
func (s *Suite) SetSignatureVerify(fn func(sig, pub, msg []byte) error) error {
	return set(s, (*Suite).SignatureRecord, func(r *Signature) { r.Verify = fn })
}

// SetPRNGInit wires the random generator Init function.
func (s *Suite) SetPRNGInit(fn func(opts *cryptokit.PRNGOptions) error) error {
	return set(s, (*Suite).PRNGRecord, func(r *PRNG) { r.Init = fn })
}

// SetPRNGDispose wires the random generator Dispose function.
func (s *Suite) SetPRNGDispose(fn func()) error {
	return set(s, (*Suite).PRNGRecord, func(r *PRNG) { r.Dispose = fn })
}

// SetPRNGRead wires the random generator Read function.
func (s *Suite) SetPRNGRead(fn func(dst []byte) error) error {
	return set(s, (*Suite).PRNGRecord, func(r *PRNG) { r.Read = fn })
}
