package backend

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"

	"github.com/go-i2p/cryptokit"
	"github.com/go-i2p/cryptokit/memory"
)

// Argon2id cost parameters.
const (
	argon2Memory  = 64 * 1024
	argon2Threads = 4
)

type deriveFunc func(password, salt []byte, rounds uint32, keyLen int) []byte

type kdfBackend struct {
	cryptokit.OptionsHooks[cryptokit.KeyDerivationOptions]
	derive deriveFunc
}

func (b kdfBackend) NewState(*cryptokit.KeyDerivationOptions) (cryptokit.KeyDerivationState, error) {
	return kdfState{derive: b.derive}, nil
}

type kdfState struct {
	derive deriveFunc
}

func (s kdfState) DeriveKey(out, password, salt []byte, rounds uint32) error {
	key := s.derive(password, salt, rounds, len(out))
	copy(out, key)
	memory.Zero(key)
	return nil
}

func (kdfState) Dispose() {}

func pbkdf2Over(h func() hash.Hash) deriveFunc {
	return func(password, salt []byte, rounds uint32, keyLen int) []byte {
		return pbkdf2.Key(password, salt, int(rounds), keyLen, h)
	}
}

func argon2id(password, salt []byte, rounds uint32, keyLen int) []byte {
	return argon2.IDKey(password, salt, rounds, argon2Memory, argon2Threads, uint32(keyLen))
}

var (
	kdfPBKDF2SHA256 = &cryptokit.KeyDerivationTemplate{
		Name:          "PBKDF2-HMAC-SHA-256",
		KeySize:       32,
		SaltSize:      16,
		DefaultRounds: 600000,
		Backend:       kdfBackend{derive: pbkdf2Over(sha256.New)},
	}
	kdfPBKDF2SHA512 = &cryptokit.KeyDerivationTemplate{
		Name:          "PBKDF2-HMAC-SHA-512",
		KeySize:       64,
		SaltSize:      16,
		DefaultRounds: 210000,
		Backend:       kdfBackend{derive: pbkdf2Over(sha512.New)},
	}
	kdfArgon2id = &cryptokit.KeyDerivationTemplate{
		Name:          "Argon2id",
		KeySize:       32,
		SaltSize:      16,
		DefaultRounds: 3,
		Backend:       kdfBackend{derive: argon2id},
	}
)

// RegisterKeyDerivationPBKDF2SHA256 registers PBKDF2 with HMAC-SHA-256.
func RegisterKeyDerivationPBKDF2SHA256(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.KeyDerivationPBKDF2SHA256, kdfPBKDF2SHA256)
}

// RegisterKeyDerivationPBKDF2SHA512 registers PBKDF2 with HMAC-SHA-512.
func RegisterKeyDerivationPBKDF2SHA512(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.KeyDerivationPBKDF2SHA512, kdfPBKDF2SHA512)
}

// RegisterKeyDerivationArgon2id registers Argon2id.
func RegisterKeyDerivationArgon2id(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.KeyDerivationArgon2id, kdfArgon2id)
}
