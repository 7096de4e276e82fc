package cryptokit

// Each family is implemented by a backend registered through a template.
// The backend owns the options hooks and creates one state per context; the
// framework owns argument validation, sizing and zeroization.

// OptionsHooks provides no-op options hooks for backends that keep no
// per-options state. Embed it as OptionsHooks[HashOptions] and so on.
type OptionsHooks[O any] struct{}

// InitOptions does nothing.
func (OptionsHooks[O]) InitOptions(*O) error { return nil }

// DisposeOptions does nothing.
func (OptionsHooks[O]) DisposeOptions(*O) {}

// A HashBackend implements a cryptographic hash function.
type HashBackend interface {
	// InitOptions runs after the template has been copied into opts.
	InitOptions(opts *HashOptions) error

	// DisposeOptions releases whatever InitOptions attached to opts.
	DisposeOptions(opts *HashOptions)

	// NewState starts a fresh hash computation.
	NewState(opts *HashOptions) (HashState, error)
}

// A HashState is one running hash computation.
type HashState interface {
	// Digest absorbs data.
	Digest(data []byte) error

	// Finalize writes exactly HashSize bytes of output to out.
	Finalize(out []byte) error

	// Dispose wipes the state.
	Dispose()
}

// A MACBackend implements a keyed message authentication code. The short
// MAC shares this contract.
type MACBackend interface {
	InitOptions(opts *MACOptions) error
	DisposeOptions(opts *MACOptions)

	// NewState keys a fresh MAC computation. key is KeySize bytes.
	NewState(opts *MACOptions, key []byte) (MACState, error)
}

// A MACState is one running MAC computation.
type MACState interface {
	Digest(data []byte) error

	// Finalize writes exactly MACSize bytes of tag to out.
	Finalize(out []byte) error

	Dispose()
}

// A BlockCipherBackend implements a block cipher applied one block at a
// time in CBC form.
type BlockCipherBackend interface {
	InitOptions(opts *BlockCipherOptions) error
	DisposeOptions(opts *BlockCipherOptions)

	// NewState keys the cipher for one direction.
	NewState(opts *BlockCipherOptions, key []byte, encrypt bool) (BlockCipherState, error)
}

// A BlockCipherState processes single blocks. iv is the previous block of
// the chain; every slice is BlockSize bytes.
type BlockCipherState interface {
	Encrypt(iv, in, out []byte) error
	Decrypt(iv, in, out []byte) error
	Dispose()
}

// A StreamCipherBackend implements a seekable stream cipher.
type StreamCipherBackend interface {
	InitOptions(opts *StreamCipherOptions) error
	DisposeOptions(opts *StreamCipherOptions)
	NewState(opts *StreamCipherOptions, key []byte) (StreamCipherState, error)
}

// A StreamCipherState produces a keystream under one key.
type StreamCipherState interface {
	// Start begins a fresh keystream for iv.
	Start(iv []byte) error

	// Seek resumes the keystream for iv at byte position.
	Seek(iv []byte, position uint64) error

	// Encrypt and Decrypt XOR the next len(src) keystream bytes into dst.
	Encrypt(dst, src []byte) error
	Decrypt(dst, src []byte) error

	Dispose()
}

// A KeyAgreementBackend implements a Diffie-Hellman style key agreement.
type KeyAgreementBackend interface {
	InitOptions(opts *KeyAgreementOptions) error
	DisposeOptions(opts *KeyAgreementOptions)
	NewState(opts *KeyAgreementOptions) (KeyAgreementState, error)
}

// A KeyAgreementState performs key agreement operations. Every slice has
// the size declared in the options.
type KeyAgreementState interface {
	// GenerateKeypair fills priv and pub with a fresh keypair.
	GenerateKeypair(priv, pub []byte) error

	// LongTermSecret derives the static shared secret between priv and the
	// peer's pub.
	LongTermSecret(priv, pub, shared []byte) error

	// ShortTermSecret derives a session secret bound to both nonces.
	ShortTermSecret(priv, pub, clientNonce, serverNonce, shared []byte) error

	Dispose()
}

// A KeyDerivationBackend implements a password based key derivation
// function.
type KeyDerivationBackend interface {
	InitOptions(opts *KeyDerivationOptions) error
	DisposeOptions(opts *KeyDerivationOptions)
	NewState(opts *KeyDerivationOptions) (KeyDerivationState, error)
}

// A KeyDerivationState derives keys.
type KeyDerivationState interface {
	// DeriveKey fills out from password and salt using rounds iterations
	// (or the algorithm's equivalent cost parameter).
	DeriveKey(out, password, salt []byte, rounds uint32) error
	Dispose()
}

// A SignatureBackend implements a digital signature scheme.
type SignatureBackend interface {
	InitOptions(opts *SignatureOptions) error
	DisposeOptions(opts *SignatureOptions)
	NewState(opts *SignatureOptions) (SignatureState, error)
}

// A SignatureState signs and verifies. Every key and signature slice has
// the size declared in the options.
type SignatureState interface {
	GenerateKeypair(priv, pub []byte) error
	Sign(sig, priv, msg []byte) error

	// Verify returns nil only for a valid signature.
	Verify(sig, pub, msg []byte) error

	Dispose()
}

// A PRNGBackend implements a cryptographically secure random generator.
type PRNGBackend interface {
	InitOptions(opts *PRNGOptions) error
	DisposeOptions(opts *PRNGOptions)
	NewState(opts *PRNGOptions) (PRNGState, error)
}

// A PRNGState produces random bytes. Read may block while the entropy
// source reseeds.
type PRNGState interface {
	// Read fills dst entirely.
	Read(dst []byte) error
	Dispose()
}
