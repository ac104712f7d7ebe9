package keytraits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignedComparatorOrdersNegativeBelowPositive(t *testing.T) {
	buf := make([]byte, 2)
	lo := append([]byte(nil), buf...)
	hi := append([]byte(nil), buf...)
	lo[0], lo[1] = 0x00, 0x80 // -32768
	hi[0], hi[1] = 0xFF, 0x7F // 32767
	assert.Equal(t, -1, Int16.Compare(lo, hi))
	assert.Equal(t, 1, Int16.Compare(hi, lo))
	assert.Equal(t, 0, Int16.Compare(lo, lo))
}

func TestUnsignedComparatorNeverNegative(t *testing.T) {
	// 0xFFFF as bytes would be -1 if interpreted as signed; unsigned
	// traits must still rank it above 0x0001.
	high := []byte{0xFF, 0xFF}
	low := []byte{0x01, 0x00}
	assert.Equal(t, 1, UInt16.Compare(high, low))
}

func TestMinMaxKeySizes(t *testing.T) {
	cases := []struct {
		name   string
		traits Traits
		size   int
	}{
		{"int8", Int8, 1},
		{"uint8", UInt8, 1},
		{"int16", Int16, 2},
		{"uint16", UInt16, 2},
		{"int32", Int32, 4},
		{"uint32", UInt32, 4},
		{"int64", Int64, 8},
		{"uint64", UInt64, 8},
	}
	for _, c := range cases {
		assert.Len(t, c.traits.MinKey(), c.size, c.name)
		assert.Len(t, c.traits.MaxKey(), c.size, c.name)
		assert.Equal(t, -1, c.traits.Compare(c.traits.MinKey(), c.traits.MaxKey()), c.name)
	}
}

func TestUInt64MaxKeyAllOnes(t *testing.T) {
	// UInt64's max key must be the semantically correct all-0xFF value.
	max := UInt64.MaxKey()
	for i, b := range max {
		assert.Equal(t, byte(0xFF), b, "byte %d", i)
	}
}

func TestNumericKeyTypeClassification(t *testing.T) {
	assert.Equal(t, SignedInt, Int8.NumericKeyType())
	assert.Equal(t, SignedInt, Int64.NumericKeyType())
	assert.Equal(t, UnsignedInt, UInt8.NumericKeyType())
	assert.Equal(t, UnsignedInt, UInt64.NumericKeyType())
}
