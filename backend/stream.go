package backend

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"math"

	"golang.org/x/crypto/chacha20"

	"github.com/go-i2p/cryptokit"
	"github.com/go-i2p/cryptokit/memory"
)

var (
	errStreamNotStarted = errors.New("backend: stream cipher not started")
	errStreamExhausted  = errors.New("backend: stream position beyond keystream")
)

// keystream seeks a fresh cipher.Stream to a byte position.
type keystream func(key, iv []byte, position uint64) (cipher.Stream, error)

// streamFunc opens keystreams of at most limit bytes; zero means unbounded.
type streamFunc struct {
	cryptokit.OptionsHooks[cryptokit.StreamCipherOptions]
	open  keystream
	limit uint64
}

func (f streamFunc) NewState(_ *cryptokit.StreamCipherOptions, key []byte) (cryptokit.StreamCipherState, error) {
	k := make([]byte, len(key))
	copy(k, key)
	return &streamState{key: k, open: f.open, limit: f.limit}, nil
}

type streamState struct {
	key      []byte
	open     keystream
	stream   cipher.Stream
	limit    uint64
	position uint64
}

func (s *streamState) Start(iv []byte) error {
	return s.Seek(iv, 0)
}

func (s *streamState) Seek(iv []byte, position uint64) error {
	if s.limit != 0 && position > s.limit {
		return errStreamExhausted
	}
	stream, err := s.open(s.key, iv, position)
	if err != nil {
		return err
	}
	s.stream = stream
	s.position = position
	return nil
}

func (s *streamState) Encrypt(dst, src []byte) error {
	if s.stream == nil {
		return errStreamNotStarted
	}
	if s.limit != 0 && uint64(len(src)) > s.limit-s.position {
		return errStreamExhausted
	}
	s.stream.XORKeyStream(dst, src)
	s.position += uint64(len(src))
	return nil
}

func (s *streamState) Decrypt(dst, src []byte) error {
	return s.Encrypt(dst, src)
}

func (s *streamState) Dispose() {
	memory.Zero(s.key)
	*s = streamState{}
}

// skip discards n keystream bytes.
func skip(stream cipher.Stream, n int) {
	if n == 0 {
		return
	}
	scratch := make([]byte, n)
	stream.XORKeyStream(scratch, scratch)
	memory.Zero(scratch)
}

func openAESCTR(key, iv []byte, position uint64) (cipher.Stream, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	ctr := make([]byte, aes.BlockSize)
	copy(ctr, iv)
	addCounter(ctr, position/aes.BlockSize)
	stream := cipher.NewCTR(block, ctr)
	skip(stream, int(position%aes.BlockSize))
	return stream, nil
}

// addCounter adds n to the big-endian counter block ctr, wrapping at 2^128.
func addCounter(ctr []byte, n uint64) {
	for i := len(ctr) - 1; i >= 0 && n > 0; i-- {
		sum := uint64(ctr[i]) + n&0xff
		ctr[i] = byte(sum)
		n = n>>8 + sum>>8
	}
}

// chachaKeystreamLimit is the keystream length of one ChaCha20 nonce: 2^32
// blocks of 64 bytes.
const chachaKeystreamLimit = (math.MaxUint32 + 1) * 64

func openChaCha20(key, iv []byte, position uint64) (cipher.Stream, error) {
	block := position / 64
	if block > math.MaxUint32 {
		return nil, errStreamExhausted
	}
	c, err := chacha20.NewUnauthenticatedCipher(key, iv)
	if err != nil {
		return nil, err
	}
	c.SetCounter(uint32(block))
	skip(c, int(position%64))
	return c, nil
}

var (
	streamAES256CTR = &cryptokit.StreamCipherTemplate{
		Name:    "AES-256-CTR",
		KeySize: 32,
		IVSize:  aes.BlockSize,
		Backend: streamFunc{open: openAESCTR},
	}
	streamChaCha20 = &cryptokit.StreamCipherTemplate{
		Name:    "ChaCha20",
		KeySize: chacha20.KeySize,
		IVSize:  chacha20.NonceSize,
		Backend: streamFunc{open: openChaCha20, limit: chachaKeystreamLimit},
	}
)

// RegisterStreamAES256CTR registers AES-256 in counter mode.
func RegisterStreamAES256CTR(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.StreamAES256CTR, streamAES256CTR)
}

// RegisterStreamChaCha20 registers ChaCha20.
func RegisterStreamChaCha20(reg *cryptokit.Registry) error {
	return reg.Register(cryptokit.StreamChaCha20, streamChaCha20)
}
