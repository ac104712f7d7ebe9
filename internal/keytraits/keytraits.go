// Package keytraits supplies the per-key-family facts (size, sentinel
// values, three-way comparator, numeric classification) that the unique
// linear index family (internal/uli) is generic over. Eight integer
// families share one mechanism; each family differs only in these four
// static facts, mirroring the original engine's IndexKeyTraits hierarchy
// where every concrete class differed only in getKeySize/getMinKey/
// getMaxKey/compareKeys.
package keytraits

import "nexusdb/internal/binenc"

// NumericKeyType classifies the numeric family a key belongs to.
type NumericKeyType int

const (
	NonNumeric NumericKeyType = iota
	SignedInt
	UnsignedInt
	FloatingPoint
	Other
)

// Traits provides the size, sentinel keys, and comparator for one key
// family. All methods are safe to call on the zero value of each concrete
// implementation.
type Traits interface {
	// KeySize returns the fixed size in bytes of an encoded key.
	KeySize() int
	// MinKey returns the bytes of the minimum representable key.
	MinKey() []byte
	// MaxKey returns the bytes of the maximum representable key.
	MaxKey() []byte
	// Compare performs a three-way comparison of two encoded keys,
	// returning -1, 0, or 1.
	Compare(a, b []byte) int
	// NumericKeyType classifies the family.
	NumericKeyType() NumericKeyType
}

type int8Traits struct{}
type int16Traits struct{}
type int32Traits struct{}
type int64Traits struct{}
type uint8Traits struct{}
type uint16Traits struct{}
type uint32Traits struct{}
type uint64Traits struct{}

// Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64 are the eight
// shared singleton traits instances for the integer key families.
var (
	Int8   Traits = int8Traits{}
	Int16  Traits = int16Traits{}
	Int32  Traits = int32Traits{}
	Int64  Traits = int64Traits{}
	UInt8  Traits = uint8Traits{}
	UInt16 Traits = uint16Traits{}
	UInt32 Traits = uint32Traits{}
	UInt64 Traits = uint64Traits{}
)

func (int8Traits) KeySize() int                  { return 1 }
func (int8Traits) MinKey() []byte                { return []byte{0x80} }
func (int8Traits) MaxKey() []byte                { return []byte{0x7F} }
func (int8Traits) NumericKeyType() NumericKeyType { return SignedInt }
func (int8Traits) Compare(a, b []byte) int {
	x, y := int8(a[0]), int8(b[0])
	return threeWay(x, y)
}

func (uint8Traits) KeySize() int                  { return 1 }
func (uint8Traits) MinKey() []byte                { return []byte{0x00} }
func (uint8Traits) MaxKey() []byte                { return []byte{0xFF} }
func (uint8Traits) NumericKeyType() NumericKeyType { return UnsignedInt }
func (uint8Traits) Compare(a, b []byte) int {
	return threeWay(a[0], b[0])
}

func (int16Traits) KeySize() int                  { return 2 }
func (int16Traits) MinKey() []byte                { return []byte{0x00, 0x80} }
func (int16Traits) MaxKey() []byte                { return []byte{0xFF, 0x7F} }
func (int16Traits) NumericKeyType() NumericKeyType { return SignedInt }
func (int16Traits) Compare(a, b []byte) int {
	var x, y int16
	_, _ = binenc.DecodeInt16(a, &x)
	_, _ = binenc.DecodeInt16(b, &y)
	return threeWay(x, y)
}

func (uint16Traits) KeySize() int                  { return 2 }
func (uint16Traits) MinKey() []byte                { return []byte{0x00, 0x00} }
func (uint16Traits) MaxKey() []byte                { return []byte{0xFF, 0xFF} }
func (uint16Traits) NumericKeyType() NumericKeyType { return UnsignedInt }
func (uint16Traits) Compare(a, b []byte) int {
	var x, y uint16
	_, _ = binenc.DecodeUint16(a, &x)
	_, _ = binenc.DecodeUint16(b, &y)
	return threeWay(x, y)
}

func (int32Traits) KeySize() int                  { return 4 }
func (int32Traits) MinKey() []byte                { return []byte{0x00, 0x00, 0x00, 0x80} }
func (int32Traits) MaxKey() []byte                { return []byte{0xFF, 0xFF, 0xFF, 0x7F} }
func (int32Traits) NumericKeyType() NumericKeyType { return SignedInt }
func (int32Traits) Compare(a, b []byte) int {
	var x, y int32
	_, _ = binenc.DecodeInt32(a, &x)
	_, _ = binenc.DecodeInt32(b, &y)
	return threeWay(x, y)
}

func (uint32Traits) KeySize() int                  { return 4 }
func (uint32Traits) MinKey() []byte                { return []byte{0x00, 0x00, 0x00, 0x00} }
func (uint32Traits) MaxKey() []byte                { return []byte{0xFF, 0xFF, 0xFF, 0xFF} }
func (uint32Traits) NumericKeyType() NumericKeyType { return UnsignedInt }
func (uint32Traits) Compare(a, b []byte) int {
	var x, y uint32
	_, _ = binenc.DecodeUint32(a, &x)
	_, _ = binenc.DecodeUint32(b, &y)
	return threeWay(x, y)
}

func (int64Traits) KeySize() int { return 8 }
func (int64Traits) MinKey() []byte {
	return []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80}
}
func (int64Traits) MaxKey() []byte {
	return []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F}
}
func (int64Traits) NumericKeyType() NumericKeyType { return SignedInt }
func (int64Traits) Compare(a, b []byte) int {
	var x, y int64
	_, _ = binenc.DecodeInt64(a, &x)
	_, _ = binenc.DecodeInt64(b, &y)
	return threeWay(x, y)
}

func (uint64Traits) KeySize() int { return 8 }
func (uint64Traits) MinKey() []byte {
	return []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
}
func (uint64Traits) MaxKey() []byte {
	return []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
}
func (uint64Traits) NumericKeyType() NumericKeyType { return UnsignedInt }
func (uint64Traits) Compare(a, b []byte) int {
	var x, y uint64
	_, _ = binenc.DecodeUint64(a, &x)
	_, _ = binenc.DecodeUint64(b, &y)
	return threeWay(x, y)
}

func threeWay[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64](a, b T) int {
	switch {
	case a == b:
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}
