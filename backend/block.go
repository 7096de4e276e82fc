package backend

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"

	"github.com/go-i2p/cryptokit"
	"github.com/go-i2p/cryptokit/memory"
)

type aesCBC struct {
	cryptokit.OptionsHooks[cryptokit.BlockCipherOptions]
}

func (aesCBC) NewState(_ *cryptokit.BlockCipherOptions, key []byte, _ bool) (cryptokit.BlockCipherState, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &cbcStep{block: block, scratch: make([]byte, aes.BlockSize)}, nil
}

type cbcStep struct {
	block   cipher.Block
	scratch []byte
}

func (s *cbcStep) Encrypt(iv, in, out []byte) error {
	subtle.XORBytes(s.scratch, in, iv)
	s.block.Encrypt(out, s.scratch)
	memory.Zero(s.scratch)
	return nil
}

func (s *cbcStep) Decrypt(iv, in, out []byte) error {
	s.block.Decrypt(s.scratch, in)
	subtle.XORBytes(out, s.scratch, iv)
	memory.Zero(s.scratch)
	return nil
}

// Dispose drops the key schedule. crypto/aes offers no way to wipe it.
func (s *cbcStep) Dispose() {
	memory.Zero(s.scratch)
	s.block = nil
}

var (
	blockAES128 = &cryptokit.BlockCipherTemplate{
		Name:      "AES-128-CBC",
		KeySize:   16,
		BlockSize: aes.BlockSize,
		Backend:   aesCBC{},
	}
	blockAES256 = &cryptokit.BlockCipherTemplate{
		Name:      "AES-256-CBC",
		KeySize:   32,
		BlockSize: aes.BlockSize,
		Backend:   aesCBC{},
	}
)

// RegisterBlockAES128 registers AES-128 in CBC form.
func RegisterBlockAES128(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.BlockAES128, blockAES128)
}

// RegisterBlockAES256 registers AES-256 in CBC form.
func RegisterBlockAES256(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.BlockAES256, blockAES256)
}
