// Package selftest exercises every family of an initialized suite with
// round-trip and consistency checks. It is meant for start-up checks and
// for the command line tool.
package selftest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-i2p/cryptokit"
	"github.com/go-i2p/cryptokit/buffer"
	"github.com/go-i2p/cryptokit/logging"
)

// kdfRounds keeps key derivation checks fast. The check only compares two
// derivations with each other.
const kdfRounds = 2

// A Result is the outcome of one family check.
type Result struct {
	Family   string
	Err      error
	Duration time.Duration
}

// A Report collects the results of one run.
type Report struct {
	Suite   string
	Results []Result
}

// Err joins every failed check, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Family, res.Err))
		}
	}
	return errors.Join(errs...)
}

type check struct {
	family string
	run    func(s *cryptokit.Suite) error
}

var checks = []check{
	{"hash", checkHash},
	{"mac", func(s *cryptokit.Suite) error { return checkMAC(s, false) }},
	{"mac short", func(s *cryptokit.Suite) error { return checkMAC(s, true) }},
	{"block", checkBlock},
	{"stream", checkStream},
	{"auth key agreement", func(s *cryptokit.Suite) error { return checkKeyAgreement(s, true) }},
	{"cipher key agreement", func(s *cryptokit.Suite) error { return checkKeyAgreement(s, false) }},
	{"key derivation", checkKeyDerivation},
	{"signature", checkSignature},
	{"prng", checkPRNG},
}

// Run checks every family of s in order. It stops early only when ctx is
// done; family failures are recorded in the report.
func Run(ctx context.Context, s *cryptokit.Suite, log logging.Logger) (*Report, error) {
	if !s.Initialized() {
		return nil, cryptokit.ErrInvalidArgument
	}
	if log == nil {
		log = logging.Nop()
	}
	report := &Report{Suite: s.Name}
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		start := time.Now()
		err := c.run(s)
		res := Result{Family: c.family, Err: err, Duration: time.Since(start)}
		report.Results = append(report.Results, res)
		if err != nil {
			log.Warn(ctx, "self test failed", "suite", s.Name, "family", c.family, "error", err)
		} else {
			log.Debug(ctx, "self test passed", "suite", s.Name, "family", c.family, "duration", res.Duration)
		}
	}
	return report, nil
}

// fill returns a buffer of n bytes from the suite's generator.
func fill(s *cryptokit.Suite, rng *cryptokit.PRNGContext, n int) (*buffer.Buffer, error) {
	b, err := buffer.New(s.Allocator, n)
	if err != nil {
		return nil, err
	}
	if err := rng.ReadBuffer(b, n); err != nil {
		b.Dispose()
		return nil, err
	}
	return b, nil
}

var errMismatch = errors.New("outputs disagree")

func digest(s *cryptokit.Suite, msg []byte) ([]byte, error) {
	ctx, err := s.NewHash()
	if err != nil {
		return nil, err
	}
	defer ctx.Dispose()
	out, err := s.NewDigestBuffer()
	if err != nil {
		return nil, err
	}
	defer out.Dispose()
	// Two writes must equal one.
	if err := ctx.Digest(msg[:len(msg)/2]); err != nil {
		return nil, err
	}
	if err := ctx.Digest(msg[len(msg)/2:]); err != nil {
		return nil, err
	}
	if err := ctx.Finalize(out); err != nil {
		return nil, err
	}
	return bytes.Clone(out.Bytes()), nil
}

func checkHash(s *cryptokit.Suite) error {
	a, err := digest(s, []byte("cryptokit self test"))
	if err != nil {
		return err
	}
	b, err := digest(s, []byte("cryptokit self test"))
	if err != nil {
		return err
	}
	c, err := digest(s, []byte("cryptokit self tesT"))
	if err != nil {
		return err
	}
	if !cryptokit.Equal(a, b) || cryptokit.Equal(a, c) {
		return errMismatch
	}
	return nil
}

func checkMAC(s *cryptokit.Suite, short bool) error {
	rng, err := s.NewPRNG()
	if err != nil {
		return err
	}
	defer rng.Dispose()
	opts := &s.MAC
	if short {
		opts = &s.MACShort
	}
	key, err := fill(s, rng, opts.KeySize)
	if err != nil {
		return err
	}
	defer key.Dispose()

	tag := func(msg string) ([]byte, error) {
		ctx, err := cryptokit.NewMACContext(opts, key)
		if err != nil {
			return nil, err
		}
		defer ctx.Dispose()
		out, err := s.NewMACTagBuffer(short)
		if err != nil {
			return nil, err
		}
		defer out.Dispose()
		if err := ctx.Digest([]byte(msg)); err != nil {
			return nil, err
		}
		if err := ctx.Finalize(out); err != nil {
			return nil, err
		}
		return bytes.Clone(out.Bytes()), nil
	}
	a, err := tag("message")
	if err != nil {
		return err
	}
	b, err := tag("message")
	if err != nil {
		return err
	}
	c, err := tag("massage")
	if err != nil {
		return err
	}
	if !cryptokit.Equal(a, b) || cryptokit.Equal(a, c) {
		return errMismatch
	}
	return nil
}

func checkBlock(s *cryptokit.Suite) error {
	rng, err := s.NewPRNG()
	if err != nil {
		return err
	}
	defer rng.Dispose()
	key, err := fill(s, rng, s.Block.KeySize)
	if err != nil {
		return err
	}
	defer key.Dispose()
	iv, err := fill(s, rng, s.Block.BlockSize)
	if err != nil {
		return err
	}
	defer iv.Dispose()

	enc, err := s.NewBlockCipher(key, true)
	if err != nil {
		return err
	}
	defer enc.Dispose()
	dec, err := s.NewBlockCipher(key, false)
	if err != nil {
		return err
	}
	defer dec.Dispose()

	bs := s.Block.BlockSize
	plain := make([]byte, 2*bs)
	for i := range plain {
		plain[i] = byte(i)
	}
	ct := make([]byte, len(plain))
	prev := iv.Bytes()
	for i := 0; i < len(plain); i += bs {
		if err := enc.Encrypt(prev, plain[i:i+bs], ct[i:i+bs]); err != nil {
			return err
		}
		prev = ct[i : i+bs]
	}
	got := make([]byte, len(ct))
	prev = iv.Bytes()
	for i := 0; i < len(ct); i += bs {
		if err := dec.Decrypt(prev, ct[i:i+bs], got[i:i+bs]); err != nil {
			return err
		}
		prev = ct[i : i+bs]
	}
	if !cryptokit.Equal(got, plain) || cryptokit.Equal(ct[:bs], ct[bs:]) {
		return errMismatch
	}
	return nil
}

func checkStream(s *cryptokit.Suite) error {
	rng, err := s.NewPRNG()
	if err != nil {
		return err
	}
	defer rng.Dispose()
	key, err := fill(s, rng, s.Stream.KeySize)
	if err != nil {
		return err
	}
	defer key.Dispose()
	iv, err := fill(s, rng, s.Stream.IVSize)
	if err != nil {
		return err
	}
	defer iv.Dispose()

	ctx, err := s.NewStreamCipher(key)
	if err != nil {
		return err
	}
	defer ctx.Dispose()

	msg := bytes.Repeat([]byte("0123456789abcdef"), 9)
	out := make([]byte, s.Stream.IVSize+len(msg))
	var off int
	if err := ctx.StartEncryption(iv.Bytes(), out, &off); err != nil {
		return err
	}
	if err := ctx.Encrypt(msg, out, &off); err != nil {
		return err
	}

	// Resuming part way must reproduce the tail.
	const at = 37
	if err := ctx.ContinueEncryption(iv.Bytes(), at); err != nil {
		return err
	}
	tail := make([]byte, len(msg)-at)
	off = 0
	if err := ctx.Encrypt(msg[at:], tail, &off); err != nil {
		return err
	}
	if !cryptokit.Equal(tail, out[s.Stream.IVSize+at:]) {
		return errMismatch
	}

	var in int
	if err := ctx.StartDecryption(out, &in); err != nil {
		return err
	}
	got := make([]byte, len(msg))
	off = 0
	if err := ctx.Decrypt(out[in:], got, &off); err != nil {
		return err
	}
	if !cryptokit.Equal(got, msg) {
		return errMismatch
	}
	return nil
}

func checkKeyAgreement(s *cryptokit.Suite, auth bool) error {
	var (
		ka   *cryptokit.KeyAgreementContext
		err  error
		opts = &s.CipherKeyAgreement
	)
	if auth {
		opts = &s.AuthKeyAgreement
		ka, err = s.NewAuthKeyAgreement()
	} else {
		ka, err = s.NewCipherKeyAgreement()
	}
	if err != nil {
		return err
	}
	defer ka.Dispose()

	newBuf := func(n int) *buffer.Buffer {
		b, e := buffer.New(s.Allocator, n)
		if e != nil && err == nil {
			err = e
		}
		return b
	}
	aPriv, aPub := newBuf(opts.PrivateKeySize), newBuf(opts.PublicKeySize)
	bPriv, bPub := newBuf(opts.PrivateKeySize), newBuf(opts.PublicKeySize)
	s1, s2 := newBuf(opts.SharedSecretSize), newBuf(opts.SharedSecretSize)
	cn, sn := newBuf(opts.NonceSize), newBuf(opts.NonceSize)
	defer cryptokit.Dispose(aPriv, aPub, bPriv, bPub, s1, s2, cn, sn)
	if err != nil {
		return err
	}

	if err := ka.KeypairCreate(aPriv, aPub); err != nil {
		return err
	}
	if err := ka.KeypairCreate(bPriv, bPub); err != nil {
		return err
	}
	if err := ka.LongTermSecretCreate(aPriv, bPub, s1); err != nil {
		return err
	}
	if err := ka.LongTermSecretCreate(bPriv, aPub, s2); err != nil {
		return err
	}
	if !buffer.Equal(s1, s2) {
		return errMismatch
	}
	cn.Bytes()[0], sn.Bytes()[0] = 1, 2
	if err := ka.ShortTermSecretCreate(aPriv, bPub, cn, sn, s1); err != nil {
		return err
	}
	if err := ka.ShortTermSecretCreate(bPriv, aPub, cn, sn, s2); err != nil {
		return err
	}
	if !buffer.Equal(s1, s2) {
		return errMismatch
	}
	return nil
}

func checkKeyDerivation(s *cryptokit.Suite) error {
	kdf, err := s.NewKeyDerivation()
	if err != nil {
		return err
	}
	defer kdf.Dispose()

	password, err := buffer.New(s.Allocator, 8)
	if err != nil {
		return err
	}
	defer password.Dispose()
	copy(password.Bytes(), "password")
	salt, err := buffer.New(s.Allocator, s.KeyDerivation.SaltSize)
	if err != nil {
		return err
	}
	defer salt.Dispose()
	copy(salt.Bytes(), "cryptokit self test salt")

	a, err := s.NewDerivedKeyBuffer()
	if err != nil {
		return err
	}
	defer a.Dispose()
	b, err := s.NewDerivedKeyBuffer()
	if err != nil {
		return err
	}
	defer b.Dispose()
	if err := kdf.DeriveKey(a, password, salt, kdfRounds); err != nil {
		return err
	}
	if err := kdf.DeriveKey(b, password, salt, kdfRounds); err != nil {
		return err
	}
	if !buffer.Equal(a, b) {
		return errMismatch
	}
	return nil
}

func checkSignature(s *cryptokit.Suite) error {
	sc, err := s.NewSignature()
	if err != nil {
		return err
	}
	defer sc.Dispose()
	priv, err := s.NewSignaturePrivateKeyBuffer()
	if err != nil {
		return err
	}
	defer priv.Dispose()
	pub, err := s.NewSignaturePublicKeyBuffer()
	if err != nil {
		return err
	}
	defer pub.Dispose()
	sig, err := s.NewSignatureBuffer()
	if err != nil {
		return err
	}
	defer sig.Dispose()

	msg := []byte("cryptokit self test")
	if err := sc.KeypairCreate(priv, pub); err != nil {
		return err
	}
	if err := sc.Sign(sig, priv, msg); err != nil {
		return err
	}
	if err := sc.Verify(sig, pub, msg); err != nil {
		return err
	}
	if err := sc.Verify(sig, pub, msg[1:]); err == nil {
		return errors.New("altered message verified")
	}
	return nil
}

func checkPRNG(s *cryptokit.Suite) error {
	rng, err := s.NewPRNG()
	if err != nil {
		return err
	}
	defer rng.Dispose()
	a, err := rng.ReadUUID()
	if err != nil {
		return err
	}
	b, err := rng.ReadUUID()
	if err != nil {
		return err
	}
	if a == b {
		return errors.New("generator repeated itself")
	}
	return nil
}
