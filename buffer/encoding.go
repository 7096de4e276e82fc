package buffer

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/go-i2p/cryptokit/memory"
	"github.com/go-i2p/cryptokit/status"
)

const upperHex = "0123456789ABCDEF"

// WriteHex writes the uppercase hex encoding of src into the start of dst,
// high nibble first. dst must hold at least twice src's length.
func WriteHex(dst, src *Buffer) error {
	if !dst.Live() || !src.Live() {
		return status.ErrInvalidArgument
	}
	if dst.Len() < HexLen(src.Len()) {
		return fmt.Errorf("%w: hex of %d bytes into %d", status.ErrSizeMismatch, src.Len(), dst.Len())
	}
	for i, v := range src.data {
		dst.data[2*i] = upperHex[v>>4]
		dst.data[2*i+1] = upperHex[v&0x0f]
	}
	return nil
}

// ReadHex decodes src, which must be exactly twice dst's length, into dst.
// Both letter cases are accepted. On any non-hex character dst is left
// unmodified.
func ReadHex(dst, src *Buffer) error {
	if !dst.Live() || !src.Live() {
		return status.ErrInvalidArgument
	}
	if src.Len() != HexLen(dst.Len()) {
		return fmt.Errorf("%w: %d hex digits into %d bytes", status.ErrSizeMismatch, src.Len(), dst.Len())
	}
	scratch, err := New(dst.alloc, dst.Len())
	if err != nil {
		return err
	}
	defer scratch.Dispose()

	if _, err := hex.Decode(scratch.data, src.data); err != nil {
		return fmt.Errorf("%w: %v", status.ErrInvalidArgument, err)
	}
	copy(dst.data, scratch.data)
	return nil
}

// WriteBase64 writes the padded standard base64 encoding of src into the
// start of dst and returns the number of bytes written.
func WriteBase64(dst, src *Buffer) (int, error) {
	if !dst.Live() || !src.Live() {
		return 0, status.ErrInvalidArgument
	}
	n := base64.StdEncoding.EncodedLen(src.Len())
	if dst.Len() < n {
		return 0, fmt.Errorf("%w: base64 of %d bytes into %d", status.ErrSizeMismatch, src.Len(), dst.Len())
	}
	base64.StdEncoding.Encode(dst.data, src.data)
	return n, nil
}

// ReadBase64 decodes the padded standard base64 text held in src into the
// start of dst and returns the decoded length. dst is left unmodified on
// failure.
func ReadBase64(dst, src *Buffer) (int, error) {
	if !dst.Live() || !src.Live() {
		return 0, status.ErrInvalidArgument
	}
	scratch, err := New(dst.alloc, base64.StdEncoding.DecodedLen(src.Len()))
	if err != nil {
		return 0, err
	}
	defer scratch.Dispose()

	n, err := base64.StdEncoding.Decode(scratch.data, src.data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", status.ErrInvalidArgument, err)
	}
	if n > dst.Len() {
		return 0, fmt.Errorf("%w: %d decoded bytes into %d", status.ErrWouldOverwrite, n, dst.Len())
	}
	copy(dst.data, scratch.data[:n])
	return n, nil
}

// PadPKCS7 replaces b's contents with its PKCS#7 padded form for blocksize,
// allocating the new region from alloc. Between 1 and blocksize bytes are
// appended, each holding the pad length; input that is already aligned gets
// a full block. blocksize must be in [1, 255].
func PadPKCS7(b *Buffer, alloc memory.Allocator, blocksize int) error {
	if b == nil || blocksize < 1 || blocksize > 255 {
		return fmt.Errorf("%w: pkcs7 blocksize %d", status.ErrInvalidArgument, blocksize)
	}
	padding := blocksize - b.Len()%blocksize
	if padding == 0 {
		padding = blocksize
	}

	padded, err := New(alloc, b.Len()+padding)
	if err != nil {
		return err
	}
	copy(padded.data, b.data)
	for i := b.Len(); i < padded.Len(); i++ {
		padded.data[i] = byte(padding)
	}
	Move(b, padded)
	return nil
}

// UnpadPKCS7 strips PKCS#7 padding from b, allocating the shorter region
// from alloc. The padding bytes are checked without early exit. A buffer that
// held only padding ends up empty.
func UnpadPKCS7(b *Buffer, alloc memory.Allocator, blocksize int) error {
	if b == nil || blocksize < 1 || blocksize > 255 {
		return fmt.Errorf("%w: pkcs7 blocksize %d", status.ErrInvalidArgument, blocksize)
	}
	n := b.Len()
	if n == 0 || n%blocksize != 0 {
		return fmt.Errorf("%w: pkcs7 input length %d", status.ErrInvalidArgument, n)
	}

	v := int(b.data[n-1])
	bad := 0
	if v == 0 || v > blocksize {
		bad = 1
		v = 1
	}
	var acc byte
	for i := n - v; i < n; i++ {
		acc |= b.data[i] ^ byte(v)
	}
	if bad == 1 || acc != 0 {
		return fmt.Errorf("%w: malformed pkcs7 padding", status.ErrInvalidArgument)
	}

	if n == v {
		b.Dispose()
		return nil
	}
	unpadded, err := New(alloc, n-v)
	if err != nil {
		return err
	}
	copy(unpadded.data, b.data[:n-v])
	Move(b, unpadded)
	return nil
}
