// Package domain contains the immutable descriptor model reconstructed by the reader.
package domain

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Checksum is a producer-computed content hash identifying a TagHelperDescriptor's
// encoded form. The reader trusts it unconditionally when probing the result cache;
// no structural re-validation happens on a hit.
type Checksum uint64

// String returns the checksum in fixed-width hex, matching the producer's notation.
func (c Checksum) String() string {
	return fmt.Sprintf("%016x", uint64(c))
}

// ChecksumBuilder accumulates descriptor content into a Checksum the same way the
// producer does, so fixtures and tests can mint wire-compatible hashes.
type ChecksumBuilder struct {
	digest *xxhash.Digest
}

// NewChecksumBuilder creates an empty ChecksumBuilder.
func NewChecksumBuilder() *ChecksumBuilder {
	return &ChecksumBuilder{digest: xxhash.New()}
}

// AppendString adds a string field followed by a separator byte so adjacent fields
// cannot collide by concatenation.
func (b *ChecksumBuilder) AppendString(s string) {
	_, _ = b.digest.WriteString(s)
	_, _ = b.digest.Write([]byte{0})
}

// AppendInt32 adds a fixed-width integer field.
func (b *ChecksumBuilder) AppendInt32(v int32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	_, _ = b.digest.Write(buf[:])
}

// AppendBool adds a boolean field.
func (b *ChecksumBuilder) AppendBool(v bool) {
	if v {
		_, _ = b.digest.Write([]byte{1})
		return
	}
	_, _ = b.digest.Write([]byte{0})
}

// Sum finalizes the accumulated content into a Checksum.
func (b *ChecksumBuilder) Sum() Checksum {
	return Checksum(b.digest.Sum64())
}
