// Package wire adapts a MessagePack token stream to the primitive reads the
// descriptor reader needs. Property names are the wire contract and must match the
// producer byte-for-byte.
package wire

import (
	"errors"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/zerr"
)

// Reader provides forward-only token access over an encoded descriptor stream.
// Object boundaries are tracked as map-length frames; once a property name has been
// dispatched, consuming its value is the caller's responsibility.
//
// A Reader is single-threaded and non-reentrant over its own stream. It assumes an
// already-buffered source; no blocking I/O happens inside the primitives.
type Reader struct {
	dec    *msgpack.Decoder
	frames []int // remaining property pairs per open object, innermost last
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: msgpack.NewDecoder(r)}
}

// fail classifies a decode error: premature stream end is a truncation, anything
// else is malformed input.
func (r *Reader) fail(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return zerr.Wrap(err, domain.ErrStreamTruncated.Error())
	}
	return zerr.Wrap(err, domain.ErrMalformedInput.Error())
}

// ReadObject consumes a start/end-object envelope around fn. The stream is realigned
// to the object's end even when fn fails or returns before consuming every property,
// so a failed object never desynchronizes its siblings.
func (r *Reader) ReadObject(fn func(*Reader) error) error {
	n, err := r.dec.DecodeMapLen()
	if err != nil {
		return r.fail(err)
	}
	if n < 0 {
		return zerr.With(zerr.With(domain.ErrUnexpectedToken, "want", "object"), "got", "nil")
	}
	return r.readFrame(n, fn)
}

// ReadNilableObject is ReadObject except a nil token decodes to ok=false without
// invoking fn.
func (r *Reader) ReadNilableObject(fn func(*Reader) error) (bool, error) {
	n, err := r.dec.DecodeMapLen()
	if err != nil {
		return false, r.fail(err)
	}
	if n < 0 {
		return false, nil
	}
	return true, r.readFrame(n, fn)
}

func (r *Reader) readFrame(n int, fn func(*Reader) error) error {
	r.frames = append(r.frames, n)
	fnErr := fn(r)
	if skipErr := r.SkipToEnd(); skipErr != nil && fnErr == nil {
		fnErr = skipErr
	}
	r.frames = r.frames[:len(r.frames)-1]
	return fnErr
}

// NextPropertyName yields the next property name of the current object, or ok=false
// at the object's end.
func (r *Reader) NextPropertyName() (string, bool, error) {
	if len(r.frames) == 0 {
		return "", false, nil
	}
	top := len(r.frames) - 1
	if r.frames[top] == 0 {
		return "", false, nil
	}
	r.frames[top]--
	name, err := r.dec.DecodeString()
	if err != nil {
		return "", false, r.fail(err)
	}
	return name, true, nil
}

// ReadRequiredString reads the next property, which must be named property and carry
// a non-nil string value. A mismatch consumes the offending value so the stream
// stays aligned and reports ErrMissingRequiredProperty.
func (r *Reader) ReadRequiredString(property string) (string, error) {
	name, ok, err := r.NextPropertyName()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.Join(domain.ErrMissingRequiredProperty, zerr.New("object ended before property "+property))
	}
	if name != property {
		if skipErr := r.SkipValue(); skipErr != nil {
			return "", skipErr
		}
		return "", errors.Join(domain.ErrMissingRequiredProperty, zerr.New("expected property "+property+", found "+name))
	}
	value, ok, err := r.TryReadString()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.Join(domain.ErrMissingRequiredProperty, zerr.New("property "+property+" is nil"))
	}
	return value, nil
}

// failType consumes the current value and reports a type mismatch. The value must
// be consumed so the enclosing frame stays aligned and SkipToEnd lands on the
// object boundary rather than one token inside it.
func (r *Reader) failType(want string) error {
	if err := r.dec.Skip(); err != nil {
		return r.fail(err)
	}
	return zerr.With(domain.ErrUnexpectedToken, "want", want)
}

func isIntCode(c byte) bool {
	switch c {
	case msgpcode.Int8, msgpcode.Int16, msgpcode.Int32, msgpcode.Int64,
		msgpcode.Uint8, msgpcode.Uint16, msgpcode.Uint32, msgpcode.Uint64:
		return true
	}
	return msgpcode.IsFixedNum(c)
}

// TryReadString reads a string value, reporting ok=false for nil.
func (r *Reader) TryReadString() (string, bool, error) {
	c, err := r.dec.PeekCode()
	if err != nil {
		return "", false, r.fail(err)
	}
	if c == msgpcode.Nil {
		if err := r.dec.DecodeNil(); err != nil {
			return "", false, r.fail(err)
		}
		return "", false, nil
	}
	if !msgpcode.IsString(c) {
		return "", false, r.failType("string")
	}
	s, err := r.dec.DecodeString()
	if err != nil {
		return "", false, r.fail(err)
	}
	return s, true, nil
}

// ReadString reads a string value, decoding nil to the empty string.
func (r *Reader) ReadString() (string, error) {
	s, _, err := r.TryReadString()
	return s, err
}

// TryReadInt32 reads an int32 value, reporting ok=false for nil.
func (r *Reader) TryReadInt32() (int32, bool, error) {
	c, err := r.dec.PeekCode()
	if err != nil {
		return 0, false, r.fail(err)
	}
	if c == msgpcode.Nil {
		if err := r.dec.DecodeNil(); err != nil {
			return 0, false, r.fail(err)
		}
		return 0, false, nil
	}
	if !isIntCode(c) {
		return 0, false, r.failType("int32")
	}
	v, err := r.dec.DecodeInt32()
	if err != nil {
		return 0, false, r.fail(err)
	}
	return v, true, nil
}

// ReadInt32 reads an int32 value, decoding nil to zero.
func (r *Reader) ReadInt32() (int32, error) {
	v, _, err := r.TryReadInt32()
	return v, err
}

// TryReadUint64 reads a uint64 value, reporting ok=false for nil. The reserved
// checksum property uses this shape.
func (r *Reader) TryReadUint64() (uint64, bool, error) {
	c, err := r.dec.PeekCode()
	if err != nil {
		return 0, false, r.fail(err)
	}
	if c == msgpcode.Nil {
		if err := r.dec.DecodeNil(); err != nil {
			return 0, false, r.fail(err)
		}
		return 0, false, nil
	}
	if !isIntCode(c) {
		return 0, false, r.failType("uint64")
	}
	v, err := r.dec.DecodeUint64()
	if err != nil {
		return 0, false, r.fail(err)
	}
	return v, true, nil
}

// ReadBool reads a boolean value, decoding nil to false.
func (r *Reader) ReadBool() (bool, error) {
	c, err := r.dec.PeekCode()
	if err != nil {
		return false, r.fail(err)
	}
	if c != msgpcode.True && c != msgpcode.False && c != msgpcode.Nil {
		return false, r.failType("bool")
	}
	v, err := r.dec.DecodeBool()
	if err != nil {
		return false, r.fail(err)
	}
	return v, nil
}

// ReadArray invokes fn once per element of an array value. A nil value reports
// ok=false without invoking fn.
func (r *Reader) ReadArray(fn func() error) (bool, error) {
	n, err := r.dec.DecodeArrayLen()
	if err != nil {
		return false, r.fail(err)
	}
	if n < 0 {
		return false, nil
	}
	for i := 0; i < n; i++ {
		if err := fn(); err != nil {
			return true, err
		}
	}
	return true, nil
}

// SkipValue consumes one value token, including entire nested containers.
func (r *Reader) SkipValue() error {
	if err := r.dec.Skip(); err != nil {
		return r.fail(err)
	}
	return nil
}

// SkipToEnd consumes every remaining property pair of the current object, leaving
// the stream positioned at the object's end boundary.
func (r *Reader) SkipToEnd() error {
	if len(r.frames) == 0 {
		return nil
	}
	top := len(r.frames) - 1
	for r.frames[top] > 0 {
		r.frames[top]--
		if err := r.dec.Skip(); err != nil {
			return r.fail(err)
		}
		if err := r.dec.Skip(); err != nil {
			return r.fail(err)
		}
	}
	return nil
}
