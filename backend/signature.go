package backend

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/cloudflare/circl/sign/ed448"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"

	"github.com/go-i2p/cryptokit"
	"github.com/go-i2p/cryptokit/memory"
)

var errInvalidPrivateKey = errors.New("backend: invalid private key")

// signer is one signature scheme over raw byte keys.
type signer interface {
	generate(priv, pub []byte) error
	sign(sig, priv, msg []byte) error
	verify(sig, pub, msg []byte) bool
}

type signatureBackend struct {
	cryptokit.OptionsHooks[cryptokit.SignatureOptions]
	scheme signer
}

func (b signatureBackend) NewState(*cryptokit.SignatureOptions) (cryptokit.SignatureState, error) {
	return signatureState{scheme: b.scheme}, nil
}

type signatureState struct {
	scheme signer
}

func (s signatureState) GenerateKeypair(priv, pub []byte) error {
	return s.scheme.generate(priv, pub)
}

func (s signatureState) Sign(sig, priv, msg []byte) error {
	return s.scheme.sign(sig, priv, msg)
}

func (s signatureState) Verify(sig, pub, msg []byte) error {
	if !s.scheme.verify(sig, pub, msg) {
		return cryptokit.ErrVerification
	}
	return nil
}

func (signatureState) Dispose() {}

type ed25519Scheme struct{}

func (ed25519Scheme) generate(priv, pub []byte) error {
	pk, sk, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	copy(priv, sk)
	copy(pub, pk)
	memory.Zero(sk)
	return nil
}

func (ed25519Scheme) sign(sig, priv, msg []byte) error {
	copy(sig, ed25519.Sign(ed25519.PrivateKey(priv), msg))
	return nil
}

func (ed25519Scheme) verify(sig, pub, msg []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig)
}

type ed448Scheme struct{}

func (ed448Scheme) generate(priv, pub []byte) error {
	pk, sk, err := ed448.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	copy(priv, sk)
	copy(pub, pk)
	memory.Zero(sk)
	return nil
}

func (ed448Scheme) sign(sig, priv, msg []byte) error {
	copy(sig, ed448.Sign(ed448.PrivateKey(priv), msg, ""))
	return nil
}

func (ed448Scheme) verify(sig, pub, msg []byte) bool {
	return ed448.Verify(ed448.PublicKey(pub), msg, sig, "")
}

type mldsa65Scheme struct{}

func (mldsa65Scheme) generate(priv, pub []byte) error {
	pk, sk, err := mldsa65.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		return err
	}
	skBytes, err := sk.MarshalBinary()
	if err != nil {
		return err
	}
	copy(priv, skBytes)
	copy(pub, pkBytes)
	memory.Zero(skBytes)
	return nil
}

func (mldsa65Scheme) sign(sig, priv, msg []byte) error {
	var sk mldsa65.PrivateKey
	if err := sk.UnmarshalBinary(priv); err != nil {
		return errInvalidPrivateKey
	}
	return mldsa65.SignTo(&sk, msg, nil, true, sig)
}

func (mldsa65Scheme) verify(sig, pub, msg []byte) bool {
	var pk mldsa65.PublicKey
	if err := pk.UnmarshalBinary(pub); err != nil {
		return false
	}
	return mldsa65.Verify(&pk, msg, nil, sig)
}

type schnorrScheme struct{}

func (schnorrScheme) generate(priv, pub []byte) error {
	sk, err := btcec.NewPrivateKey()
	if err != nil {
		return err
	}
	defer sk.Zero()
	scalar := sk.Serialize()
	copy(priv, scalar)
	memory.Zero(scalar)
	copy(pub, schnorr.SerializePubKey(sk.PubKey()))
	return nil
}

func (schnorrScheme) sign(sig, priv, msg []byte) error {
	sk, _ := btcec.PrivKeyFromBytes(priv)
	defer sk.Zero()
	if sk.Key.IsZero() {
		return errInvalidPrivateKey
	}
	digest := sha256.Sum256(msg)
	s, err := schnorr.Sign(sk, digest[:])
	if err != nil {
		return err
	}
	copy(sig, s.Serialize())
	return nil
}

func (schnorrScheme) verify(sig, pub, msg []byte) bool {
	pk, err := schnorr.ParsePubKey(pub)
	if err != nil {
		return false
	}
	s, err := schnorr.ParseSignature(sig)
	if err != nil {
		return false
	}
	digest := sha256.Sum256(msg)
	return s.Verify(digest[:], pk)
}

var (
	signatureEd25519 = &cryptokit.SignatureTemplate{
		Name:           "Ed25519",
		PrivateKeySize: ed25519.PrivateKeySize,
		PublicKeySize:  ed25519.PublicKeySize,
		SignatureSize:  ed25519.SignatureSize,
		Backend:        signatureBackend{scheme: ed25519Scheme{}},
	}
	signatureEd448 = &cryptokit.SignatureTemplate{
		Name:           "Ed448",
		PrivateKeySize: ed448.PrivateKeySize,
		PublicKeySize:  ed448.PublicKeySize,
		SignatureSize:  ed448.SignatureSize,
		Backend:        signatureBackend{scheme: ed448Scheme{}},
	}
	signatureMLDSA65 = &cryptokit.SignatureTemplate{
		Name:           "ML-DSA-65",
		PrivateKeySize: mldsa65.PrivateKeySize,
		PublicKeySize:  mldsa65.PublicKeySize,
		SignatureSize:  mldsa65.SignatureSize,
		Backend:        signatureBackend{scheme: mldsa65Scheme{}},
	}
	signatureSecp256k1Schnorr = &cryptokit.SignatureTemplate{
		Name:           "secp256k1-Schnorr",
		PrivateKeySize: btcec.PrivKeyBytesLen,
		PublicKeySize:  schnorr.PubKeyBytesLen,
		SignatureSize:  schnorr.SignatureSize,
		Backend:        signatureBackend{scheme: schnorrScheme{}},
	}
)

// RegisterSignatureEd25519 registers Ed25519.
func RegisterSignatureEd25519(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.SignatureEd25519, signatureEd25519)
}

// RegisterSignatureEd448 registers Ed448.
func RegisterSignatureEd448(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.SignatureEd448, signatureEd448)
}

// RegisterSignatureMLDSA65 registers ML-DSA-65.
func RegisterSignatureMLDSA65(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.SignatureMLDSA65, signatureMLDSA65)
}

// RegisterSignatureSecp256k1Schnorr registers BIP-340 Schnorr signatures.
func RegisterSignatureSecp256k1Schnorr(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.SignatureSecp256k1Schnorr, signatureSecp256k1Schnorr)
}
