// Package backend supplies the concrete algorithm implementations for
// cryptokit. Nothing is reachable until an application registers it:
// call the Register functions for individual algorithms, RegisterSuite1
// through RegisterSuite5 for a whole suite, or RegisterAll.
//
// The implementations delegate to golang.org/x/crypto, the Go standard
// library, github.com/cloudflare/circl and github.com/btcsuite/btcd/btcec.
//
// # Hashes
//
// Every hash is a thin wrapper over a hash.Hash constructor. The running
// state is reset on dispose and digest copies are wiped once written out.
//
// # MACs
//
// The long MACs are HMAC over SHA-256, SHA-512/256 and SHA3-256. The short
// MAC is keyed BLAKE2b with a 16 byte tag.
//
// # Block ciphers
//
// Encrypt computes E(in XOR iv) and Decrypt computes D(in) XOR iv, so
// chaining across blocks is left to the caller.
//
// # Stream ciphers
//
// AES-256-CTR treats the 16 byte IV as the initial big-endian counter
// block. ChaCha20 uses the RFC 8439 layout: 12 byte nonce, 32-bit block
// counter. Both can resume the keystream at any byte position below their
// counter limit. Running ChaCha20 past the end of its 2^38 byte keystream is
// an error.
//
// # Key agreement
//
// X25519 and X448 are used for cipher key agreement; their short term
// secret is HKDF over the raw shared point salted with both nonces.
// X25519-BLAKE2b is the authentication key agreement: the long term secret
// is BLAKE2b-256 of the shared point and the short term secret is BLAKE2b-256
// keyed with the shared point over both nonces.
//
// Peer public keys of small order are rejected.
//
// # Key derivation
//
// PBKDF2 treats rounds as the iteration count. Argon2id treats rounds as
// the time cost, with memory and parallelism fixed per template.
//
// # Signatures
//
// Keys travel as raw bytes in the sizes each template declares:
//   - Ed25519 and Ed448 private keys are seed||public, as their packages
//     encode them.
//   - ML-DSA-65 keys use the FIPS 204 packed encodings; signing is
//     hedged and uses an empty context string.
//   - secp256k1 Schnorr follows BIP-340: 32 byte scalar, 32 byte x-only
//     public key. The message signed is its SHA-256 digest.
//
// A signature that does not verify is reported as cryptokit.ErrVerification.
//
// # Random generators
//
// The system generator reads the operating system CSPRNG. The ChaCha20
// DRBG is seeded from it once per context and erases its key on every
// read: each read draws 32 bytes of keystream for the next key before
// producing output.
package backend
