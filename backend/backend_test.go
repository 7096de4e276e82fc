package backend

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math"
	"testing"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/pbkdf2"
	. "gopkg.in/check.v1"

	"github.com/go-i2p/cryptokit"
	"github.com/go-i2p/cryptokit/buffer"
	"github.com/go-i2p/cryptokit/status"
)

func Test(t *testing.T) { TestingT(t) }

type BackendSuite struct {
	reg *cryptokit.Registry
}

var _ = Suite(&BackendSuite{})

func (s *BackendSuite) SetUpTest(c *C) {
	s.reg = cryptokit.NewRegistry()
	c.Assert(RegisterAll(s.reg), IsNil)
	s.reg.Seal()
}

func newBuf(c *C, n int) *buffer.Buffer {
	b, err := buffer.New(nil, n)
	c.Assert(err, IsNil)
	return b
}

func bufFrom(c *C, p []byte) *buffer.Buffer {
	b := newBuf(c, len(p))
	copy(b.Bytes(), p)
	return b
}

func fromHex(c *C, s string) []byte {
	b, err := hex.DecodeString(s)
	c.Assert(err, IsNil)
	return b
}

func (s *BackendSuite) TestHashKnownAnswers(c *C) {
	cases := []struct {
		alg  cryptokit.AlgorithmID
		want string
	}{
		{cryptokit.HashSHA256, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{cryptokit.HashSHA512, "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a" +
			"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{cryptokit.HashBLAKE2b512, "ba80a53f981c4d0d6a2797b69f12f6e94c212f14685ac4b74b12bb6fdbffa2d1" +
			"7d87c5392aab792dc252d5de4533cc9518d38aa8dbf1925ab92386edd4009923"},
		{cryptokit.HashSHA3512, "b751850b1a57168a5693cd924b6b096e08f621827444f70d884f5d0240d2712e" +
			"10e116e9192af3c91a7ec57647e3934057340b4cf408d5a56592f8274eec53f0"},
	}
	for _, tc := range cases {
		var opts cryptokit.HashOptions
		c.Assert(opts.Init(s.reg, nil, tc.alg), IsNil)
		ctx, err := cryptokit.NewHashContext(&opts)
		c.Assert(err, IsNil)

		// Split input across two digests.
		c.Assert(ctx.Digest([]byte("a")), IsNil)
		c.Assert(ctx.Digest([]byte("bc")), IsNil)
		out := newBuf(c, opts.HashSize)
		c.Assert(ctx.Finalize(out), IsNil)
		c.Check(hex.EncodeToString(out.Bytes()), Equals, tc.want, Commentf("%s", opts.Name))

		ctx.Dispose()
		opts.Dispose()
	}
}

func (s *BackendSuite) TestHMACMatchesStandardLibrary(c *C) {
	var opts cryptokit.MACOptions
	c.Assert(opts.Init(s.reg, nil, cryptokit.MACHMACSHA256), IsNil)
	defer opts.Dispose()

	key := bytes.Repeat([]byte{0x0b}, opts.KeySize)
	msg := []byte("Hi There")
	ctx, err := cryptokit.NewMACContext(&opts, bufFrom(c, key))
	c.Assert(err, IsNil)
	defer ctx.Dispose()
	c.Assert(ctx.Digest(msg), IsNil)
	tag := newBuf(c, opts.MACSize)
	c.Assert(ctx.Finalize(tag), IsNil)

	ref := hmac.New(sha256.New, key)
	ref.Write(msg)
	c.Check(tag.Bytes(), DeepEquals, ref.Sum(nil))
}

func (s *BackendSuite) TestShortMACKeyed(c *C) {
	var opts cryptokit.MACOptions
	c.Assert(opts.Init(s.reg, nil, cryptokit.MACBLAKE2b128), IsNil)
	defer opts.Dispose()
	c.Check(opts.KeySize, Equals, 16)
	c.Check(opts.MACSize, Equals, 16)

	tag := func(key byte) []byte {
		ctx, err := cryptokit.NewMACContext(&opts, bufFrom(c, bytes.Repeat([]byte{key}, opts.KeySize)))
		c.Assert(err, IsNil)
		defer ctx.Dispose()
		c.Assert(ctx.Digest([]byte("message")), IsNil)
		out := newBuf(c, opts.MACSize)
		c.Assert(ctx.Finalize(out), IsNil)
		return out.Bytes()
	}
	c.Check(tag(1), DeepEquals, tag(1))
	c.Check(bytes.Equal(tag(1), tag(2)), Equals, false)
}

func (s *BackendSuite) TestBlockChainingMatchesCBC(c *C) {
	var opts cryptokit.BlockCipherOptions
	c.Assert(opts.Init(s.reg, nil, cryptokit.BlockAES256), IsNil)
	defer opts.Dispose()

	key := bytes.Repeat([]byte{0x2a}, opts.KeySize)
	iv := bytes.Repeat([]byte{0x11}, opts.BlockSize)
	plain := []byte("three blocks of plaintext that are exactly 48 b")
	plain = append(plain, '!')
	c.Assert(len(plain), Equals, 3*opts.BlockSize)

	enc, err := cryptokit.NewBlockCipherContext(&opts, bufFrom(c, key), true)
	c.Assert(err, IsNil)
	defer enc.Dispose()
	dec, err := cryptokit.NewBlockCipherContext(&opts, bufFrom(c, key), false)
	c.Assert(err, IsNil)
	defer dec.Dispose()

	bs := opts.BlockSize
	ct := make([]byte, len(plain))
	prev := iv
	for i := 0; i < len(plain); i += bs {
		c.Assert(enc.Encrypt(prev, plain[i:i+bs], ct[i:i+bs]), IsNil)
		prev = ct[i : i+bs]
	}

	block, err := aes.NewCipher(key)
	c.Assert(err, IsNil)
	want := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(want, plain)
	c.Check(ct, DeepEquals, want)

	pt := make([]byte, len(ct))
	prev = iv
	for i := 0; i < len(ct); i += bs {
		c.Assert(dec.Decrypt(prev, ct[i:i+bs], pt[i:i+bs]), IsNil)
		prev = ct[i : i+bs]
	}
	c.Check(pt, DeepEquals, plain)

	err = dec.Encrypt(iv, plain[:bs], pt[:bs])
	c.Check(errors.Is(err, cryptokit.ErrDirection), Equals, true)
}

func (s *BackendSuite) TestStreamReferenceAndSeek(c *C) {
	for _, alg := range []cryptokit.AlgorithmID{cryptokit.StreamAES256CTR, cryptokit.StreamChaCha20} {
		var opts cryptokit.StreamCipherOptions
		c.Assert(opts.Init(s.reg, nil, alg), IsNil)

		key := bytes.Repeat([]byte{0x42}, opts.KeySize)
		iv := make([]byte, opts.IVSize)
		for i := range iv {
			iv[i] = byte(0xf0 + i)
		}
		msg := bytes.Repeat([]byte("stream cipher payload "), 12)

		ctx, err := cryptokit.NewStreamCipherContext(&opts, bufFrom(c, key))
		c.Assert(err, IsNil)
		out := make([]byte, opts.IVSize+len(msg))
		var off int
		c.Assert(ctx.StartEncryption(iv, out, &off), IsNil)
		c.Assert(off, Equals, opts.IVSize)
		c.Assert(ctx.Encrypt(msg[:70], out, &off), IsNil)
		c.Assert(ctx.Encrypt(msg[70:], out, &off), IsNil)
		c.Check(off, Equals, len(out))
		c.Check(ctx.Position(), Equals, uint64(len(msg)))

		want := make([]byte, len(msg))
		switch alg {
		case cryptokit.StreamAES256CTR:
			block, err := aes.NewCipher(key)
			c.Assert(err, IsNil)
			cipher.NewCTR(block, iv).XORKeyStream(want, msg)
		case cryptokit.StreamChaCha20:
			ref, err := chacha20.NewUnauthenticatedCipher(key, iv)
			c.Assert(err, IsNil)
			ref.XORKeyStream(want, msg)
		}
		c.Check(out[opts.IVSize:], DeepEquals, want, Commentf("%s", opts.Name))

		// Resume mid-block.
		const at = 77
		c.Assert(ctx.ContinueEncryption(iv, at), IsNil)
		tail := make([]byte, len(msg)-at)
		off = 0
		c.Assert(ctx.Encrypt(msg[at:], tail, &off), IsNil)
		c.Check(tail, DeepEquals, want[at:], Commentf("%s", opts.Name))

		// Decrypt from the message head.
		plain := make([]byte, len(msg))
		var in int
		c.Assert(ctx.StartDecryption(out, &in), IsNil)
		off = 0
		c.Assert(ctx.Decrypt(out[in:], plain, &off), IsNil)
		c.Check(plain, DeepEquals, msg)

		ctx.Dispose()
		opts.Dispose()
	}
}

func (s *BackendSuite) TestChaCha20KeystreamEnd(c *C) {
	var opts cryptokit.StreamCipherOptions
	c.Assert(opts.Init(s.reg, nil, cryptokit.StreamChaCha20), IsNil)
	defer opts.Dispose()
	ctx, err := cryptokit.NewStreamCipherContext(&opts, bufFrom(c, make([]byte, opts.KeySize)))
	c.Assert(err, IsNil)
	defer ctx.Dispose()
	iv := make([]byte, opts.IVSize)

	// The last block is usable; one byte more is not.
	last := uint64(math.MaxUint32) * 64
	c.Assert(ctx.ContinueEncryption(iv, last), IsNil)
	out := make([]byte, 128)
	off := 0
	err = ctx.Encrypt(make([]byte, 128), out, &off)
	c.Check(errors.Is(err, errStreamExhausted), Equals, true)
	c.Check(status.CodeOf(err), Equals, status.BackendFailure)
	c.Check(off, Equals, 0)
	c.Check(ctx.Position(), Equals, last)

	c.Assert(ctx.Encrypt(make([]byte, 64), out, &off), IsNil)
	c.Check(ctx.Position(), Equals, uint64(chachaKeystreamLimit))
	err = ctx.Encrypt(make([]byte, 1), out, &off)
	c.Check(errors.Is(err, errStreamExhausted), Equals, true)

	err = ctx.ContinueEncryption(iv, chachaKeystreamLimit+1)
	c.Check(errors.Is(err, errStreamExhausted), Equals, true)
}

func (s *BackendSuite) TestAddCounterCarries(c *C) {
	ctr := bytes.Repeat([]byte{0xff}, 16)
	addCounter(ctr, 1)
	c.Check(ctr, DeepEquals, make([]byte, 16))

	ctr = make([]byte, 16)
	ctr[15] = 0xff
	addCounter(ctr, 2)
	c.Check(ctr[14:], DeepEquals, []byte{0x01, 0x01})

	ctr = make([]byte, 16)
	addCounter(ctr, 0x0102030405060708)
	c.Check(ctr[8:], DeepEquals, []byte{1, 2, 3, 4, 5, 6, 7, 8})
}

func (s *BackendSuite) keypair(c *C, ka *cryptokit.KeyAgreementContext) (*buffer.Buffer, *buffer.Buffer) {
	o := ka.Options()
	priv, pub := newBuf(c, o.PrivateKeySize), newBuf(c, o.PublicKeySize)
	c.Assert(ka.KeypairCreate(priv, pub), IsNil)
	return priv, pub
}

func (s *BackendSuite) TestKeyAgreementBothSidesAgree(c *C) {
	algs := []cryptokit.AlgorithmID{
		cryptokit.KeyAgreementX25519,
		cryptokit.KeyAgreementX25519BLAKE2b,
		cryptokit.KeyAgreementX448,
	}
	for _, alg := range algs {
		var opts cryptokit.KeyAgreementOptions
		c.Assert(opts.Init(s.reg, nil, alg), IsNil)
		ka, err := cryptokit.NewKeyAgreementContext(&opts)
		c.Assert(err, IsNil)

		aPriv, aPub := s.keypair(c, ka)
		bPriv, bPub := s.keypair(c, ka)

		s1, s2 := newBuf(c, opts.SharedSecretSize), newBuf(c, opts.SharedSecretSize)
		c.Assert(ka.LongTermSecretCreate(aPriv, bPub, s1), IsNil)
		c.Assert(ka.LongTermSecretCreate(bPriv, aPub, s2), IsNil)
		c.Check(buffer.Equal(s1, s2), Equals, true, Commentf("%s long term", opts.Name))

		cn, sn := newBuf(c, opts.NonceSize), newBuf(c, opts.NonceSize)
		copy(cn.Bytes(), bytes.Repeat([]byte{1}, opts.NonceSize))
		copy(sn.Bytes(), bytes.Repeat([]byte{2}, opts.NonceSize))
		t1, t2 := newBuf(c, opts.SharedSecretSize), newBuf(c, opts.SharedSecretSize)
		c.Assert(ka.ShortTermSecretCreate(aPriv, bPub, cn, sn, t1), IsNil)
		c.Assert(ka.ShortTermSecretCreate(bPriv, aPub, cn, sn, t2), IsNil)
		c.Check(buffer.Equal(t1, t2), Equals, true, Commentf("%s short term", opts.Name))
		c.Check(buffer.Equal(s1, t1), Equals, false, Commentf("%s nonces ignored", opts.Name))

		ka.Dispose()
		opts.Dispose()
	}
}

func (s *BackendSuite) TestKeyAgreementRejectsLowOrderPoints(c *C) {
	cases := []struct {
		name string
		alg  cryptokit.AlgorithmID
		pub  []byte
	}{
		{"x25519 identity", cryptokit.KeyAgreementX25519, make([]byte, 32)},
		{"x25519 order 4", cryptokit.KeyAgreementX25519, append([]byte{1}, make([]byte, 31)...)},
		{"x25519-blake2b identity", cryptokit.KeyAgreementX25519BLAKE2b, make([]byte, 32)},
		{"x448 identity", cryptokit.KeyAgreementX448, make([]byte, 56)},
	}
	for _, tc := range cases {
		var opts cryptokit.KeyAgreementOptions
		c.Assert(opts.Init(s.reg, nil, tc.alg), IsNil)
		ka, err := cryptokit.NewKeyAgreementContext(&opts)
		c.Assert(err, IsNil)
		priv, _ := s.keypair(c, ka)
		shared := newBuf(c, opts.SharedSecretSize)

		err = ka.LongTermSecretCreate(priv, bufFrom(c, tc.pub), shared)
		c.Check(errors.Is(err, errLowOrderPoint), Equals, true, Commentf("%s", tc.name))
		c.Check(cryptokit.Code(err), Equals, status.BackendFailure, Commentf("%s", tc.name))

		ka.Dispose()
		opts.Dispose()
	}
}

func (s *BackendSuite) TestKeyDerivation(c *C) {
	var opts cryptokit.KeyDerivationOptions
	c.Assert(opts.Init(s.reg, nil, cryptokit.KeyDerivationPBKDF2SHA256), IsNil)
	defer opts.Dispose()
	kdf, err := cryptokit.NewKeyDerivationContext(&opts)
	c.Assert(err, IsNil)
	defer kdf.Dispose()

	password, salt := []byte("password"), []byte("NaCl-salt-value!")
	out := newBuf(c, opts.KeySize)
	c.Assert(kdf.DeriveKey(out, bufFrom(c, password), bufFrom(c, salt), 1000), IsNil)
	c.Check(out.Bytes(), DeepEquals, pbkdf2.Key(password, salt, 1000, opts.KeySize, sha256.New))

	err = kdf.DeriveKey(out, bufFrom(c, password), bufFrom(c, salt), 0)
	c.Check(cryptokit.Code(err), Equals, status.InvalidArgument)
}

func (s *BackendSuite) TestArgon2idSaltSensitive(c *C) {
	var opts cryptokit.KeyDerivationOptions
	c.Assert(opts.Init(s.reg, nil, cryptokit.KeyDerivationArgon2id), IsNil)
	defer opts.Dispose()
	kdf, err := cryptokit.NewKeyDerivationContext(&opts)
	c.Assert(err, IsNil)
	defer kdf.Dispose()

	password := bufFrom(c, []byte("correct horse"))
	derive := func(salt string) []byte {
		out := newBuf(c, opts.KeySize)
		c.Assert(kdf.DeriveKey(out, password, bufFrom(c, []byte(salt)), 1), IsNil)
		return out.Bytes()
	}
	c.Check(derive("salt-one-16bytes"), DeepEquals, derive("salt-one-16bytes"))
	c.Check(bytes.Equal(derive("salt-one-16bytes"), derive("salt-two-16bytes")), Equals, false)
}

func (s *BackendSuite) TestSignatureRoundTrip(c *C) {
	algs := []cryptokit.AlgorithmID{
		cryptokit.SignatureEd25519,
		cryptokit.SignatureEd448,
		cryptokit.SignatureMLDSA65,
		cryptokit.SignatureSecp256k1Schnorr,
	}
	msg := []byte("attack at dawn")
	for _, alg := range algs {
		var opts cryptokit.SignatureOptions
		c.Assert(opts.Init(s.reg, nil, alg), IsNil)
		sc, err := cryptokit.NewSignatureContext(&opts)
		c.Assert(err, IsNil)

		priv, pub := newBuf(c, opts.PrivateKeySize), newBuf(c, opts.PublicKeySize)
		c.Assert(sc.KeypairCreate(priv, pub), IsNil)
		sig := newBuf(c, opts.SignatureSize)
		c.Assert(sc.Sign(sig, priv, msg), IsNil)
		c.Check(sc.Verify(sig, pub, msg), IsNil, Commentf("%s", opts.Name))

		err = sc.Verify(sig, pub, []byte("attack at dusk"))
		c.Check(errors.Is(err, cryptokit.ErrVerification), Equals, true, Commentf("%s", opts.Name))
		c.Check(cryptokit.Code(err), Equals, status.BackendFailure)

		sig.Bytes()[0] ^= 0x01
		c.Check(sc.Verify(sig, pub, msg), NotNil, Commentf("%s tampered", opts.Name))

		sc.Dispose()
		opts.Dispose()
	}
}

func (s *BackendSuite) TestPRNG(c *C) {
	for _, alg := range []cryptokit.AlgorithmID{cryptokit.PRNGSystem, cryptokit.PRNGChaCha20DRBG} {
		var opts cryptokit.PRNGOptions
		c.Assert(opts.Init(s.reg, nil, alg), IsNil)
		rng, err := cryptokit.NewPRNGContext(&opts)
		c.Assert(err, IsNil)

		a, b := make([]byte, 64), make([]byte, 64)
		c.Assert(rng.ReadRaw(a), IsNil)
		c.Assert(rng.ReadRaw(b), IsNil)
		c.Check(bytes.Equal(a, b), Equals, false, Commentf("%s", opts.Name))
		c.Check(bytes.Equal(a, make([]byte, 64)), Equals, false)

		id, err := rng.ReadUUID()
		c.Assert(err, IsNil)
		c.Check(id[:], HasLen, cryptokit.UUIDSize)

		rng.Dispose()
		opts.Dispose()
	}
}

func (s *BackendSuite) TestEverySuiteInitializes(c *C) {
	for id := range Suites {
		suite, err := cryptokit.NewSuite(s.reg, nil, id)
		c.Assert(err, IsNil, Commentf("suite %s", id))
		c.Check(suite.Initialized(), Equals, true)

		sig, err := suite.NewSignatureBuffer()
		c.Assert(err, IsNil)
		c.Check(sig.Len(), Equals, suite.Signature.SignatureSize)
		sig.Dispose()
		suite.Dispose()
		c.Check(suite.Initialized(), Equals, false)
	}
}

func (s *BackendSuite) TestSuiteRegistrationIsSelective(c *C) {
	reg := cryptokit.NewRegistry()
	c.Assert(RegisterSuite1(reg), IsNil)

	var opts cryptokit.HashOptions
	err := opts.Init(reg, nil, cryptokit.HashSHA512)
	c.Check(errors.Is(err, cryptokit.ErrMissingImplementation), Equals, true)
	c.Check(opts.Initialized(), Equals, false)

	_, err = cryptokit.NewSuite(reg, nil, cryptokit.Suite2)
	c.Check(cryptokit.Code(err), Equals, status.MissingImplementation)

	// Suites share algorithms; registering both is allowed.
	c.Check(RegisterSuite2(reg), IsNil)
	c.Check(RegisterSuite1(reg), IsNil)
}
