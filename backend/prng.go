package backend

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/chacha20"

	"github.com/go-i2p/cryptokit"
	"github.com/go-i2p/cryptokit/memory"
)

type systemRNG struct {
	cryptokit.OptionsHooks[cryptokit.PRNGOptions]
}

func (systemRNG) NewState(*cryptokit.PRNGOptions) (cryptokit.PRNGState, error) {
	return systemState{}, nil
}

type systemState struct{}

func (systemState) Read(dst []byte) error {
	_, err := io.ReadFull(rand.Reader, dst)
	return err
}

func (systemState) Dispose() {}

type chachaDRBG struct {
	cryptokit.OptionsHooks[cryptokit.PRNGOptions]
}

func (chachaDRBG) NewState(*cryptokit.PRNGOptions) (cryptokit.PRNGState, error) {
	s := &drbgState{key: make([]byte, chacha20.KeySize)}
	if _, err := io.ReadFull(rand.Reader, s.key); err != nil {
		return nil, err
	}
	return s, nil
}

type drbgState struct {
	key []byte
}

var drbgNonce = make([]byte, chacha20.NonceSize)

func (s *drbgState) Read(dst []byte) error {
	c, err := chacha20.NewUnauthenticatedCipher(s.key, drbgNonce)
	if err != nil {
		return err
	}
	memory.Zero(s.key)
	c.XORKeyStream(s.key, s.key)
	memory.Zero(dst)
	c.XORKeyStream(dst, dst)
	return nil
}

func (s *drbgState) Dispose() {
	memory.Zero(s.key)
	s.key = nil
}

var (
	prngSystem = &cryptokit.PRNGTemplate{
		Name:    "system",
		Backend: systemRNG{},
	}
	prngChaCha20DRBG = &cryptokit.PRNGTemplate{
		Name:    "ChaCha20-DRBG",
		Backend: chachaDRBG{},
	}
)

// RegisterPRNGSystem registers the operating system generator.
func RegisterPRNGSystem(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.PRNGSystem, prngSystem)
}

// RegisterPRNGChaCha20DRBG registers the ChaCha20 fast key erasure DRBG.
func RegisterPRNGChaCha20DRBG(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.PRNGChaCha20DRBG, prngChaCha20DRBG)
}
