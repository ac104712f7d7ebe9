// Package binenc implements the little-endian fixed-width and varint
// encodings used throughout the storage engine's on-disk and wire formats.
//
// Decoders write into a caller-supplied output cell and return the
// advanced read cursor. Round-tripping any representable value of a
// fixed-width type reproduces the original bytes exactly.
package binenc

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrTruncated is returned when a buffer ends before a value can be fully
// decoded.
var ErrTruncated = errors.New("binenc: truncated buffer")

// ErrInvalidLength is returned when a varint length prefix would make the
// decoded string/binary value exceed the bytes remaining in the frame.
var ErrInvalidLength = errors.New("binenc: invalid length prefix")

// EncodeInt16 writes v to buf in little-endian order and returns the number
// of bytes written (always 2).
func EncodeInt16(v int16, buf []byte) int {
	binary.LittleEndian.PutUint16(buf, uint16(v))
	return 2
}

// EncodeUint16 writes v to buf in little-endian order.
func EncodeUint16(v uint16, buf []byte) int {
	binary.LittleEndian.PutUint16(buf, v)
	return 2
}

// EncodeInt32 writes v to buf in little-endian order.
func EncodeInt32(v int32, buf []byte) int {
	binary.LittleEndian.PutUint32(buf, uint32(v))
	return 4
}

// EncodeUint32 writes v to buf in little-endian order.
func EncodeUint32(v uint32, buf []byte) int {
	binary.LittleEndian.PutUint32(buf, v)
	return 4
}

// EncodeInt64 writes v to buf in little-endian order.
func EncodeInt64(v int64, buf []byte) int {
	binary.LittleEndian.PutUint64(buf, uint64(v))
	return 8
}

// EncodeUint64 writes v to buf in little-endian order.
func EncodeUint64(v uint64, buf []byte) int {
	binary.LittleEndian.PutUint64(buf, v)
	return 8
}

// DecodeInt16 reads a little-endian int16 from buf into *out and returns the
// number of bytes consumed.
func DecodeInt16(buf []byte, out *int16) (int, error) {
	if len(buf) < 2 {
		return 0, ErrTruncated
	}
	*out = int16(binary.LittleEndian.Uint16(buf))
	return 2, nil
}

// DecodeUint16 reads a little-endian uint16 from buf into *out.
func DecodeUint16(buf []byte, out *uint16) (int, error) {
	if len(buf) < 2 {
		return 0, ErrTruncated
	}
	*out = binary.LittleEndian.Uint16(buf)
	return 2, nil
}

// DecodeInt32 reads a little-endian int32 from buf into *out.
func DecodeInt32(buf []byte, out *int32) (int, error) {
	if len(buf) < 4 {
		return 0, ErrTruncated
	}
	*out = int32(binary.LittleEndian.Uint32(buf))
	return 4, nil
}

// DecodeUint32 reads a little-endian uint32 from buf into *out.
func DecodeUint32(buf []byte, out *uint32) (int, error) {
	if len(buf) < 4 {
		return 0, ErrTruncated
	}
	*out = binary.LittleEndian.Uint32(buf)
	return 4, nil
}

// DecodeInt64 reads a little-endian int64 from buf into *out.
func DecodeInt64(buf []byte, out *int64) (int, error) {
	if len(buf) < 8 {
		return 0, ErrTruncated
	}
	*out = int64(binary.LittleEndian.Uint64(buf))
	return 8, nil
}

// DecodeUint64 reads a little-endian uint64 from buf into *out.
func DecodeUint64(buf []byte, out *uint64) (int, error) {
	if len(buf) < 8 {
		return 0, ErrTruncated
	}
	*out = binary.LittleEndian.Uint64(buf)
	return 8, nil
}

// EncodeFloat32 writes v as IEEE-754 little-endian bytes.
func EncodeFloat32(v float32, buf []byte) int {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
	return 4
}

// EncodeFloat64 writes v as IEEE-754 little-endian bytes.
func EncodeFloat64(v float64, buf []byte) int {
	binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	return 8
}

// DecodeFloat32 reads an IEEE-754 little-endian float32 from buf.
func DecodeFloat32(buf []byte, out *float32) (int, error) {
	if len(buf) < 4 {
		return 0, ErrTruncated
	}
	*out = math.Float32frombits(binary.LittleEndian.Uint32(buf))
	return 4, nil
}

// DecodeFloat64 reads an IEEE-754 little-endian float64 from buf.
func DecodeFloat64(buf []byte, out *float64) (int, error) {
	if len(buf) < 8 {
		return 0, ErrTruncated
	}
	*out = math.Float64frombits(binary.LittleEndian.Uint64(buf))
	return 8, nil
}

// MaxVarintLen is the maximum number of bytes a base-128 varint-encoded
// uint64 can occupy.
const MaxVarintLen = 10

// EncodeVarint writes v as a base-128 varint into buf and returns the
// number of bytes written. buf must have at least MaxVarintLen bytes.
func EncodeVarint(v uint64, buf []byte) int {
	return binary.PutUvarint(buf, v)
}

// DecodeVarint reads a base-128 varint from buf, returning the decoded
// value and the number of bytes consumed.
func DecodeVarint(buf []byte) (uint64, int, error) {
	v, n := binary.Uvarint(buf)
	if n == 0 {
		return 0, 0, ErrTruncated
	}
	if n < 0 {
		// buffer held an over-long or overflowing varint
		return 0, 0, ErrInvalidLength
	}
	return v, n, nil
}

// EncodeString writes a varint length prefix followed by the raw UTF-8
// bytes of s and returns the total number of bytes written.
func EncodeString(s string, buf []byte) int {
	n := EncodeVarint(uint64(len(s)), buf)
	return n + copy(buf[n:], s)
}

// SerializedStringSize returns the number of bytes EncodeString would write
// for s.
func SerializedStringSize(s string) int {
	return varintSize(uint64(len(s))) + len(s)
}

// DecodeString reads a varint-length-prefixed string from buf, bounded by
// maxRemaining (the number of bytes left in the enclosing frame).
func DecodeString(buf []byte, maxRemaining int) (string, int, error) {
	length, n, err := DecodeVarint(buf)
	if err != nil {
		return "", 0, err
	}
	if int(length) > maxRemaining-n {
		return "", 0, ErrInvalidLength
	}
	if len(buf) < n+int(length) {
		return "", 0, ErrTruncated
	}
	return string(buf[n : n+int(length)]), n + int(length), nil
}

// EncodeBinary writes a varint length prefix followed by the raw bytes of b.
func EncodeBinary(b []byte, buf []byte) int {
	n := EncodeVarint(uint64(len(b)), buf)
	return n + copy(buf[n:], b)
}

// SerializedBinarySize returns the number of bytes EncodeBinary would write
// for b.
func SerializedBinarySize(b []byte) int {
	return varintSize(uint64(len(b))) + len(b)
}

// DecodeBinary reads a varint-length-prefixed byte slice from buf, bounded
// by maxRemaining.
func DecodeBinary(buf []byte, maxRemaining int) ([]byte, int, error) {
	length, n, err := DecodeVarint(buf)
	if err != nil {
		return nil, 0, err
	}
	if int(length) > maxRemaining-n {
		return nil, 0, ErrInvalidLength
	}
	if len(buf) < n+int(length) {
		return nil, 0, ErrTruncated
	}
	out := make([]byte, length)
	copy(out, buf[n:n+int(length)])
	return out, n + int(length), nil
}

func varintSize(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}
