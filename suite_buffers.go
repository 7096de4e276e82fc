package cryptokit

import "github.com/go-i2p/cryptokit/buffer"

// Buffer helpers allocate a buffer from the suite's allocator sized for one
// role. Sizes always match what the family operations check.

func (s *Suite) newBuffer(n int) (*buffer.Buffer, error) {
	if !s.Initialized() {
		return nil, ErrInvalidArgument
	}
	return buffer.New(s.Allocator, n)
}

func (s *Suite) macOptions(short bool) *MACOptions {
	if short {
		return &s.MACShort
	}
	return &s.MAC
}

// NewMACKeyBuffer returns a buffer for a MAC key, or a short MAC key when
// short is set.
func (s *Suite) NewMACKeyBuffer(short bool) (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.macOptions(short).KeySize)
}

// NewMACTagBuffer returns a buffer for a MAC tag, or a short MAC tag when
// short is set.
func (s *Suite) NewMACTagBuffer(short bool) (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.macOptions(short).MACSize)
}

// NewAuthNonceBuffer returns a buffer for an authentication key agreement
// nonce.
func (s *Suite) NewAuthNonceBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.AuthKeyAgreement.NonceSize)
}

// NewAuthSharedSecretBuffer returns a buffer for an authentication key
// agreement shared secret.
func (s *Suite) NewAuthSharedSecretBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.AuthKeyAgreement.SharedSecretSize)
}

// NewAuthPrivateKeyBuffer returns a buffer for an authentication key
// agreement private key.
func (s *Suite) NewAuthPrivateKeyBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.AuthKeyAgreement.PrivateKeySize)
}

// NewAuthPublicKeyBuffer returns a buffer for an authentication key
// agreement public key.
func (s *Suite) NewAuthPublicKeyBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.AuthKeyAgreement.PublicKeySize)
}

// NewCipherPublicKeyBuffer returns a buffer for a cipher key agreement
// public key.
func (s *Suite) NewCipherPublicKeyBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.CipherKeyAgreement.PublicKeySize)
}

// NewCipherPrivateKeyBuffer returns a buffer for a cipher key agreement
// private key.
func (s *Suite) NewCipherPrivateKeyBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.CipherKeyAgreement.PrivateKeySize)
}

// NewCipherSharedSecretBuffer returns a buffer for a cipher key agreement
// shared secret.
func (s *Suite) NewCipherSharedSecretBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.CipherKeyAgreement.SharedSecretSize)
}

// NewSignatureBuffer returns a buffer for one signature.
func (s *Suite) NewSignatureBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.Signature.SignatureSize)
}

// NewSignaturePrivateKeyBuffer returns a buffer for a signing key.
func (s *Suite) NewSignaturePrivateKeyBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.Signature.PrivateKeySize)
}

// NewSignaturePublicKeyBuffer returns a buffer for a verification key.
func (s *Suite) NewSignaturePublicKeyBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.Signature.PublicKeySize)
}

// NewUUIDBuffer returns a 16 byte buffer.
func (s *Suite) NewUUIDBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(UUIDSize)
}

// NewDigestBuffer returns a buffer for one hash digest.
func (s *Suite) NewDigestBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.Hash.HashSize)
}

// NewBlockKeyBuffer returns a buffer for a block cipher key.
func (s *Suite) NewBlockKeyBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.Block.KeySize)
}

// NewBlockIVBuffer returns a buffer for one block cipher IV.
func (s *Suite) NewBlockIVBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.Block.BlockSize)
}

// NewStreamKeyBuffer returns a buffer for a stream cipher key.
func (s *Suite) NewStreamKeyBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.Stream.KeySize)
}

// NewStreamIVBuffer returns a buffer for a stream cipher IV.
func (s *Suite) NewStreamIVBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.Stream.IVSize)
}

// NewDerivedKeyBuffer returns a buffer of the key derivation function's
// suggested output size.
func (s *Suite) NewDerivedKeyBuffer() (*buffer.Buffer, error) {
	if s == nil {
		return nil, ErrInvalidArgument
	}
	return s.newBuffer(s.KeyDerivation.KeySize)
}
