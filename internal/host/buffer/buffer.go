// Package buffer provides the binary-safe value exchanged between the
// host and an embedded script: an immutable byte sequence of known length
// with a fixed UTF-8 text policy.
package buffer

import (
	"bytes"
	"encoding/hex"
	"strconv"

	"github.com/zeebo/blake3"
)

// Buffer is an immutable sequence of bytes. The zero value is an empty
// buffer. Buffers never share backing storage with caller-supplied slices.
type Buffer struct {
	data []byte
}

// New returns a Buffer holding a copy of b.
func New(b []byte) Buffer {
	return Buffer{data: clone(b)}
}

// Len returns the exact number of bytes.
func (b Buffer) Len() int {
	return len(b.data)
}

// Bytes returns a copy of the content. The result is never nil.
func (b Buffer) Bytes() []byte {
	return clone(b.data)
}

// Equal reports whether both buffers hold the same bytes.
func (b Buffer) Equal(other Buffer) bool {
	return bytes.Equal(b.data, other.data)
}

// Digest returns the hex BLAKE3-256 digest of the content.
func (b Buffer) Digest() string {
	sum := blake3.Sum256(b.data)
	return hex.EncodeToString(sum[:])
}

// String implements fmt.Stringer with a short description; use Text to
// decode the content.
func (b Buffer) String() string {
	return "Buffer(" + strconv.Itoa(len(b.data)) + " bytes)"
}

func clone(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
