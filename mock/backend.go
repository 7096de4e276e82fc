package mock

import (
	"github.com/go-i2p/cryptokit"
)

func notWired() error { return cryptokit.ErrMockNotWired }

func runDispose(fn func()) {
	if fn != nil {
		fn()
	}
}

type hashBackend struct{}

func (hashBackend) InitOptions(opts *cryptokit.HashOptions) error {
	opts.Context = new(Hash)
	return nil
}

func (hashBackend) DisposeOptions(opts *cryptokit.HashOptions) {
	if r := HashRecord(opts); r != nil {
		*r = Hash{}
	}
	opts.Context = nil
}

func (hashBackend) NewState(opts *cryptokit.HashOptions) (cryptokit.HashState, error) {
	r := HashRecord(opts)
	if r == nil {
		return nil, cryptokit.ErrMissingImplementation
	}
	if r.Init != nil {
		if err := r.Init(opts); err != nil {
			return nil, err
		}
	}
	return hashState{r}, nil
}

type hashState struct{ r *Hash }

func (s hashState) Digest(data []byte) error {
	if s.r.Digest == nil {
		return notWired()
	}
	return s.r.Digest(data)
}

func (s hashState) Finalize(out []byte) error {
	if s.r.Finalize == nil {
		return notWired()
	}
	return s.r.Finalize(out)
}

func (s hashState) Dispose() { runDispose(s.r.Dispose) }

type macBackend struct{}

func (macBackend) InitOptions(opts *cryptokit.MACOptions) error {
	opts.Context = new(MAC)
	return nil
}

func (macBackend) DisposeOptions(opts *cryptokit.MACOptions) {
	if r := MACRecord(opts); r != nil {
		*r = MAC{}
	}
	opts.Context = nil
}

func (macBackend) NewState(opts *cryptokit.MACOptions, key []byte) (cryptokit.MACState, error) {
	r := MACRecord(opts)
	if r == nil {
		return nil, cryptokit.ErrMissingImplementation
	}
	if r.Init != nil {
		if err := r.Init(opts, key); err != nil {
			return nil, err
		}
	}
	return macState{r}, nil
}

type macState struct{ r *MAC }

func (s macState) Digest(data []byte) error {
	if s.r.Digest == nil {
		return notWired()
	}
	return s.r.Digest(data)
}

func (s macState) Finalize(out []byte) error {
	if s.r.Finalize == nil {
		return notWired()
	}
	return s.r.Finalize(out)
}

func (s macState) Dispose() { runDispose(s.r.Dispose) }

type blockBackend struct{}

func (blockBackend) InitOptions(opts *cryptokit.BlockCipherOptions) error {
	opts.Context = new(BlockCipher)
	return nil
}

func (blockBackend) DisposeOptions(opts *cryptokit.BlockCipherOptions) {
	if r := BlockCipherRecord(opts); r != nil {
		*r = BlockCipher{}
	}
	opts.Context = nil
}

func (blockBackend) NewState(opts *cryptokit.BlockCipherOptions, key []byte, encrypt bool) (cryptokit.BlockCipherState, error) {
	r := BlockCipherRecord(opts)
	if r == nil {
		return nil, cryptokit.ErrMissingImplementation
	}
	if r.Init != nil {
		if err := r.Init(opts, key, encrypt); err != nil {
			return nil, err
		}
	}
	return blockState{r}, nil
}

type blockState struct{ r *BlockCipher }

func (s blockState) Encrypt(iv, in, out []byte) error {
	if s.r.Encrypt == nil {
		return notWired()
	}
	return s.r.Encrypt(iv, in, out)
}

func (s blockState) Decrypt(iv, in, out []byte) error {
	if s.r.Decrypt == nil {
		return notWired()
	}
	return s.r.Decrypt(iv, in, out)
}

func (s blockState) Dispose() { runDispose(s.r.Dispose) }

type streamBackend struct{}

func (streamBackend) InitOptions(opts *cryptokit.StreamCipherOptions) error {
	opts.Context = new(StreamCipher)
	return nil
}

func (streamBackend) DisposeOptions(opts *cryptokit.StreamCipherOptions) {
	if r := StreamCipherRecord(opts); r != nil {
		*r = StreamCipher{}
	}
	opts.Context = nil
}

func (streamBackend) NewState(opts *cryptokit.StreamCipherOptions, key []byte) (cryptokit.StreamCipherState, error) {
	r := StreamCipherRecord(opts)
	if r == nil {
		return nil, cryptokit.ErrMissingImplementation
	}
	if r.Init != nil {
		if err := r.Init(opts, key); err != nil {
			return nil, err
		}
	}
	return streamState{r}, nil
}

type streamState struct{ r *StreamCipher }

func (s streamState) Start(iv []byte) error {
	if s.r.Start == nil {
		return notWired()
	}
	return s.r.Start(iv)
}

func (s streamState) Seek(iv []byte, position uint64) error {
	if s.r.Seek == nil {
		return notWired()
	}
	return s.r.Seek(iv, position)
}

func (s streamState) Encrypt(dst, src []byte) error {
	if s.r.Encrypt == nil {
		return notWired()
	}
	return s.r.Encrypt(dst, src)
}

func (s streamState) Decrypt(dst, src []byte) error {
	if s.r.Decrypt == nil {
		return notWired()
	}
	return s.r.Decrypt(dst, src)
}

func (s streamState) Dispose() { runDispose(s.r.Dispose) }

type keyAgreementBackend struct{}

func (keyAgreementBackend) InitOptions(opts *cryptokit.KeyAgreementOptions) error {
	opts.Context = new(KeyAgreement)
	return nil
}

func (keyAgreementBackend) DisposeOptions(opts *cryptokit.KeyAgreementOptions) {
	if r := KeyAgreementRecord(opts); r != nil {
		*r = KeyAgreement{}
	}
	opts.Context = nil
}

func (keyAgreementBackend) NewState(opts *cryptokit.KeyAgreementOptions) (cryptokit.KeyAgreementState, error) {
	r := KeyAgreementRecord(opts)
	if r == nil {
		return nil, cryptokit.ErrMissingImplementation
	}
	if r.Init != nil {
		if err := r.Init(opts); err != nil {
			return nil, err
		}
	}
	return keyAgreementState{r}, nil
}

type keyAgreementState struct{ r *KeyAgreement }

func (s keyAgreementState) GenerateKeypair(priv, pub []byte) error {
	if s.r.GenerateKeypair == nil {
		return notWired()
	}
	return s.r.GenerateKeypair(priv, pub)
}

func (s keyAgreementState) LongTermSecret(priv, pub, shared []byte) error {
	if s.r.LongTermSecret == nil {
		return notWired()
	}
	return s.r.LongTermSecret(priv, pub, shared)
}

func (s keyAgreementState) ShortTermSecret(priv, pub, clientNonce, serverNonce, shared []byte) error {
	if s.r.ShortTermSecret == nil {
		return notWired()
	}
	return s.r.ShortTermSecret(priv, pub, clientNonce, serverNonce, shared)
}

func (s keyAgreementState) Dispose() { runDispose(s.r.Dispose) }

type keyDerivationBackend struct{}

func (keyDerivationBackend) InitOptions(opts *cryptokit.KeyDerivationOptions) error {
	opts.Context = new(KeyDerivation)
	return nil
}

func (keyDerivationBackend) DisposeOptions(opts *cryptokit.KeyDerivationOptions) {
	if r := KeyDerivationRecord(opts); r != nil {
		*r = KeyDerivation{}
	}
	opts.Context = nil
}

func (keyDerivationBackend) NewState(opts *cryptokit.KeyDerivationOptions) (cryptokit.KeyDerivationState, error) {
	r := KeyDerivationRecord(opts)
	if r == nil {
		return nil, cryptokit.ErrMissingImplementation
	}
	if r.Init != nil {
		if err := r.Init(opts); err != nil {
			return nil, err
		}
	}
	return keyDerivationState{r}, nil
}

type keyDerivationState struct{ r *KeyDerivation }

func (s keyDerivationState) DeriveKey(out, password, salt []byte, rounds uint32) error {
	if s.r.DeriveKey == nil {
		return notWired()
	}
	return s.r.DeriveKey(out, password, salt, rounds)
}

func (s keyDerivationState) Dispose() { runDispose(s.r.Dispose) }

type signatureBackend struct{}

func (signatureBackend) InitOptions(opts *cryptokit.SignatureOptions) error {
	opts.Context = new(Signature)
	return nil
}

func (signatureBackend) DisposeOptions(opts *cryptokit.SignatureOptions) {
	if r := SignatureRecord(opts); r != nil {
		*r = Signature{}
	}
	opts.Context = nil
}

func (signatureBackend) NewState(opts *cryptokit.SignatureOptions) (cryptokit.SignatureState, error) {
	r := SignatureRecord(opts)
	if r == nil {
		return nil, cryptokit.ErrMissingImplementation
	}
	if r.Init != nil {
		if err := r.Init(opts); err != nil {
			return nil, err
		}
	}
	return signatureState{r}, nil
}

type signatureState struct{ r *Signature }

func (s signatureState) GenerateKeypair(priv, pub []byte) error {
	if s.r.GenerateKeypair == nil {
		return notWired()
	}
	return s.r.GenerateKeypair(priv, pub)
}

func (s signatureState) Sign(sig, priv, msg []byte) error {
	if s.r.Sign == nil {
		return notWired()
	}
	return s.r.Sign(sig, priv, msg)
}

func (s signatureState) Verify(sig, pub, msg []byte) error {
	if s.r.Verify == nil {
		return notWired()
	}
	return s.r.Verify(sig, pub, msg)
}

func (s signatureState) Dispose() { runDispose(s.r.Dispose) }

type prngBackend struct{}

func (prngBackend) InitOptions(opts *cryptokit.PRNGOptions) error {
	opts.Context = new(PRNG)
	return nil
}

func (prngBackend) DisposeOptions(opts *cryptokit.PRNGOptions) {
	if r := PRNGRecord(opts); r != nil {
		*r = PRNG{}
	}
	opts.Context = nil
}

func (prngBackend) NewState(opts *cryptokit.PRNGOptions) (cryptokit.PRNGState, error) {
	r := PRNGRecord(opts)
	if r == nil {
		return nil, cryptokit.ErrMissingImplementation
	}
	if r.Init != nil {
		if err := r.Init(opts); err != nil {
			return nil, err
		}
	}
	return prngState{r}, nil
}

type prngState struct{ r *PRNG }

func (s prngState) Read(dst []byte) error {
	if s.r.Read == nil {
		return notWired()
	}
	return s.r.Read(dst)
}

func (s prngState) Dispose() { runDispose(s.r.Dispose) }
