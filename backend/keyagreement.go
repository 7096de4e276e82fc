package backend

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"hash"
	"io"

	"github.com/cloudflare/circl/dh/x448"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"

	"github.com/go-i2p/cryptokit"
	"github.com/go-i2p/cryptokit/memory"
)

const keyAgreementNonceSize = 32

var errLowOrderPoint = errors.New("backend: peer public key has small order")

// dhFunc is a raw Diffie-Hellman primitive.
type dhFunc interface {
	size() int
	publicKey(priv, pub []byte) error
	shared(priv, pub, out []byte) error
}

type x25519 struct{}

func (x25519) size() int { return curve25519.ScalarSize }

func (x25519) publicKey(priv, pub []byte) error {
	p, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return err
	}
	copy(pub, p)
	return nil
}

func (x25519) shared(priv, pub, out []byte) error {
	s, err := curve25519.X25519(priv, pub)
	if err != nil {
		return errLowOrderPoint
	}
	copy(out, s)
	memory.Zero(s)
	return nil
}

type x448dh struct{}

func (x448dh) size() int { return x448.Size }

func (x448dh) publicKey(priv, pub []byte) error {
	var sk, pk x448.Key
	copy(sk[:], priv)
	x448.KeyGen(&pk, &sk)
	copy(pub, pk[:])
	memory.Zero(sk[:])
	return nil
}

func (x448dh) shared(priv, pub, out []byte) error {
	var sk, pk, ss x448.Key
	copy(sk[:], priv)
	copy(pk[:], pub)
	defer memory.Zero(sk[:])
	defer memory.Zero(ss[:])
	if !x448.Shared(&ss, &sk, &pk) {
		return errLowOrderPoint
	}
	copy(out, ss[:])
	return nil
}

// kdfStep turns a raw shared point into a secret. Nonces are nil for the
// long term secret.
type kdfStep func(raw, clientNonce, serverNonce, out []byte) error

func hkdfStep(h func() hash.Hash, info string) kdfStep {
	return func(raw, cn, sn, out []byte) error {
		if cn == nil {
			copy(out, raw)
			return nil
		}
		salt := make([]byte, 0, len(cn)+len(sn))
		salt = append(salt, cn...)
		salt = append(salt, sn...)
		_, err := io.ReadFull(hkdf.New(h, raw, salt, []byte(info)), out)
		return err
	}
}

func blake2bStep(raw, cn, sn, out []byte) error {
	if cn == nil {
		sum := blake2b.Sum256(raw)
		copy(out, sum[:])
		memory.Zero(sum[:])
		return nil
	}
	h, err := blake2b.New256(raw)
	if err != nil {
		return err
	}
	h.Write(cn)
	h.Write(sn)
	sum := h.Sum(nil)
	copy(out, sum)
	memory.Zero(sum)
	return nil
}

type dhBackend struct {
	cryptokit.OptionsHooks[cryptokit.KeyAgreementOptions]
	dh     dhFunc
	derive kdfStep
}

func (b dhBackend) NewState(*cryptokit.KeyAgreementOptions) (cryptokit.KeyAgreementState, error) {
	return &dhState{dh: b.dh, derive: b.derive, raw: make([]byte, b.dh.size())}, nil
}

type dhState struct {
	dh     dhFunc
	derive kdfStep
	raw    []byte
}

func (s *dhState) GenerateKeypair(priv, pub []byte) error {
	if _, err := io.ReadFull(rand.Reader, priv); err != nil {
		return err
	}
	if err := s.dh.publicKey(priv, pub); err != nil {
		memory.Zero(priv)
		return err
	}
	return nil
}

func (s *dhState) agree(priv, pub, cn, sn, shared []byte) error {
	defer memory.Zero(s.raw)
	if err := s.dh.shared(priv, pub, s.raw); err != nil {
		return err
	}
	return s.derive(s.raw, cn, sn, shared)
}

func (s *dhState) LongTermSecret(priv, pub, shared []byte) error {
	return s.agree(priv, pub, nil, nil, shared)
}

func (s *dhState) ShortTermSecret(priv, pub, clientNonce, serverNonce, shared []byte) error {
	return s.agree(priv, pub, clientNonce, serverNonce, shared)
}

func (s *dhState) Dispose() {
	memory.Zero(s.raw)
	s.raw = nil
}

var (
	keyAgreementX25519 = &cryptokit.KeyAgreementTemplate{
		Name:             "X25519",
		PrivateKeySize:   curve25519.ScalarSize,
		PublicKeySize:    curve25519.PointSize,
		SharedSecretSize: curve25519.PointSize,
		NonceSize:        keyAgreementNonceSize,
		Backend:          dhBackend{dh: x25519{}, derive: hkdfStep(sha256.New, "cryptokit x25519")},
	}
	keyAgreementX25519BLAKE2b = &cryptokit.KeyAgreementTemplate{
		Name:             "X25519-BLAKE2b",
		PrivateKeySize:   curve25519.ScalarSize,
		PublicKeySize:    curve25519.PointSize,
		SharedSecretSize: blake2b.Size256,
		NonceSize:        keyAgreementNonceSize,
		Backend:          dhBackend{dh: x25519{}, derive: blake2bStep},
	}
	keyAgreementX448 = &cryptokit.KeyAgreementTemplate{
		Name:             "X448",
		PrivateKeySize:   x448.Size,
		PublicKeySize:    x448.Size,
		SharedSecretSize: x448.Size,
		NonceSize:        keyAgreementNonceSize,
		Backend:          dhBackend{dh: x448dh{}, derive: hkdfStep(sha512.New, "cryptokit x448")},
	}
)

// RegisterKeyAgreementX25519 registers X25519.
func RegisterKeyAgreementX25519(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.KeyAgreementX25519, keyAgreementX25519)
}

// RegisterKeyAgreementX25519BLAKE2b registers X25519 with BLAKE2b secret
// derivation.
func RegisterKeyAgreementX25519BLAKE2b(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.KeyAgreementX25519BLAKE2b, keyAgreementX25519BLAKE2b)
}

// RegisterKeyAgreementX448 registers X448.
func RegisterKeyAgreementX448(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.KeyAgreementX448, keyAgreementX448)
}
