package backend

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/go-i2p/cryptokit"
	"github.com/go-i2p/cryptokit/memory"
)

// Short MAC sizes.
const (
	shortMACKeySize = 16
	shortMACSize    = 16
)

// macFunc adapts a keyed hash.Hash constructor to cryptokit.MACBackend.
type macFunc struct {
	cryptokit.OptionsHooks[cryptokit.MACOptions]
	newMAC func(key []byte) (hash.Hash, error)
}

func (f macFunc) NewState(_ *cryptokit.MACOptions, key []byte) (cryptokit.MACState, error) {
	h, err := f.newMAC(key)
	if err != nil {
		return nil, err
	}
	return &macState{h: h}, nil
}

type macState struct {
	h hash.Hash
}

func (s *macState) Digest(data []byte) error {
	s.h.Write(data)
	return nil
}

func (s *macState) Finalize(out []byte) error {
	sum := s.h.Sum(nil)
	copy(out, sum)
	memory.Zero(sum)
	return nil
}

func (s *macState) Dispose() {
	if s.h != nil {
		s.h.Reset()
		s.h = nil
	}
}

func hmacOver(h func() hash.Hash) func(key []byte) (hash.Hash, error) {
	return func(key []byte) (hash.Hash, error) {
		return hmac.New(h, key), nil
	}
}

var (
	macHMACSHA256 = &cryptokit.MACTemplate{
		Name:    "HMAC-SHA-256",
		KeySize: 32,
		MACSize: sha256.Size,
		Backend: macFunc{newMAC: hmacOver(sha256.New)},
	}
	macHMACSHA512256 = &cryptokit.MACTemplate{
		Name:    "HMAC-SHA-512/256",
		KeySize: 32,
		MACSize: sha512.Size256,
		Backend: macFunc{newMAC: hmacOver(sha512.New512_256)},
	}
	macHMACSHA3256 = &cryptokit.MACTemplate{
		Name:    "HMAC-SHA3-256",
		KeySize: 32,
		MACSize: 32,
		Backend: macFunc{newMAC: hmacOver(func() hash.Hash { return sha3.New256() })},
	}
	macBLAKE2b128 = &cryptokit.MACTemplate{
		Name:    "BLAKE2b-128",
		KeySize: shortMACKeySize,
		MACSize: shortMACSize,
		Backend: macFunc{newMAC: func(key []byte) (hash.Hash, error) {
			return blake2b.New(shortMACSize, key)
		}},
	}
)

// RegisterMACHMACSHA256 registers HMAC-SHA-256.
func RegisterMACHMACSHA256(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.MACHMACSHA256, macHMACSHA256)
}

// RegisterMACHMACSHA512256 registers HMAC-SHA-512/256.
func RegisterMACHMACSHA512256(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.MACHMACSHA512256, macHMACSHA512256)
}

// RegisterMACHMACSHA3256 registers HMAC-SHA3-256.
func RegisterMACHMACSHA3256(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.MACHMACSHA3256, macHMACSHA3256)
}

// RegisterMACBLAKE2b128 registers the keyed BLAKE2b short MAC.
func RegisterMACBLAKE2b128(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.MACBLAKE2b128, macBLAKE2b128)
}
