package backend

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/go-i2p/cryptokit"
	"github.com/go-i2p/cryptokit/memory"
)

// hashFunc adapts a hash.Hash constructor to cryptokit.HashBackend.
type hashFunc struct {
	cryptokit.OptionsHooks[cryptokit.HashOptions]
	newHash func() (hash.Hash, error)
}

func (f hashFunc) NewState(*cryptokit.HashOptions) (cryptokit.HashState, error) {
	h, err := f.newHash()
	if err != nil {
		return nil, err
	}
	return &hashState{h: h}, nil
}

type hashState struct {
	h hash.Hash
}

func (s *hashState) Digest(data []byte) error {
	s.h.Write(data)
	return nil
}

func (s *hashState) Finalize(out []byte) error {
	sum := s.h.Sum(nil)
	copy(out, sum)
	memory.Zero(sum)
	return nil
}

func (s *hashState) Dispose() {
	if s.h != nil {
		s.h.Reset()
		s.h = nil
	}
}

func plain(f func() hash.Hash) func() (hash.Hash, error) {
	return func() (hash.Hash, error) { return f(), nil }
}

var (
	hashSHA256 = &cryptokit.HashTemplate{
		Name:     "SHA-256",
		HashSize: sha256.Size,
		Backend:  hashFunc{newHash: plain(sha256.New)},
	}
	hashSHA512 = &cryptokit.HashTemplate{
		Name:     "SHA-512",
		HashSize: sha512.Size,
		Backend:  hashFunc{newHash: plain(sha512.New)},
	}
	hashBLAKE2b512 = &cryptokit.HashTemplate{
		Name:     "BLAKE2b-512",
		HashSize: blake2b.Size,
		Backend: hashFunc{newHash: func() (hash.Hash, error) {
			return blake2b.New512(nil)
		}},
	}
	hashSHA3512 = &cryptokit.HashTemplate{
		Name:     "SHA3-512",
		HashSize: 64,
		Backend: hashFunc{newHash: func() (hash.Hash, error) {
			return sha3.New512(), nil
		}},
	}
)

// RegisterHashSHA256 registers SHA-256.
func RegisterHashSHA256(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.HashSHA256, hashSHA256)
}

// RegisterHashSHA512 registers SHA-512.
func RegisterHashSHA512(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.HashSHA512, hashSHA512)
}

// RegisterHashBLAKE2b512 registers unkeyed BLAKE2b-512.
func RegisterHashBLAKE2b512(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.HashBLAKE2b512, hashBLAKE2b512)
}

// RegisterHashSHA3512 registers SHA3-512.
func RegisterHashSHA3512(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.HashSHA3512, hashSHA3512)
}
