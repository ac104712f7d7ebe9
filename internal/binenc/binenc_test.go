package binenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeInt64Exact(t *testing.T) {
	buf := make([]byte, 16)
	n := EncodeInt64(0x123456789abcdef5, buf)
	require.Equal(t, 8, n)
	assert.Equal(t, []byte{0xf5, 0xde, 0xbc, 0x9a, 0x78, 0x56, 0x34, 0x12}, buf[:8])

	var decoded int64
	n2, err := DecodeInt64(buf, &decoded)
	require.NoError(t, err)
	assert.Equal(t, 8, n2)
	assert.Equal(t, int64(0x123456789abcdef5), decoded)
}

func TestEncodeDecodeRoundTripFixedWidth(t *testing.T) {
	buf := make([]byte, 16)

	EncodeInt16(0x1234, buf)
	var i16 int16
	_, err := DecodeInt16(buf, &i16)
	require.NoError(t, err)
	assert.EqualValues(t, 0x1234, i16)

	EncodeUint16(0x1234, buf)
	var u16 uint16
	_, err = DecodeUint16(buf, &u16)
	require.NoError(t, err)
	assert.EqualValues(t, 0x1234, u16)

	EncodeInt32(0x12345678, buf)
	var i32 int32
	_, err = DecodeInt32(buf, &i32)
	require.NoError(t, err)
	assert.EqualValues(t, 0x12345678, i32)

	EncodeUint32(0x12345678, buf)
	var u32 uint32
	_, err = DecodeUint32(buf, &u32)
	require.NoError(t, err)
	assert.EqualValues(t, 0x12345678, u32)
}

func TestFixedWidthRoundTripAllValues(t *testing.T) {
	buf := make([]byte, 8)
	for _, v := range []int16{0, 1, -1, 32767, -32768, 12345} {
		EncodeInt16(v, buf)
		var out int16
		_, err := DecodeInt16(buf, &out)
		require.NoError(t, err)
		assert.Equal(t, v, out)
	}
	for _, v := range []int64{0, 1, -1, 1<<63 - 1, -(1 << 63)} {
		EncodeInt64(v, buf)
		var out int64
		_, err := DecodeInt64(buf, &out)
		require.NoError(t, err)
		assert.Equal(t, v, out)
	}
}

func TestDecodeTruncated(t *testing.T) {
	var out int32
	_, err := DecodeInt32([]byte{1, 2}, &out)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestVarintMonotoneLength(t *testing.T) {
	buf := make([]byte, MaxVarintLen)
	prevLen := 0
	for _, v := range []uint64{0, 1, 127, 128, 16383, 16384, 1 << 40, ^uint64(0)} {
		n := EncodeVarint(v, buf)
		assert.LessOrEqual(t, n, MaxVarintLen)
		assert.GreaterOrEqual(t, n, prevLen)
		decoded, n2, err := DecodeVarint(buf[:n])
		require.NoError(t, err)
		assert.Equal(t, n, n2)
		assert.Equal(t, v, decoded)
		prevLen = n
	}
}

func TestStringRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	n := EncodeString("hello, world", buf)
	assert.Equal(t, SerializedStringSize("hello, world"), n)
	s, n2, err := DecodeString(buf, n)
	require.NoError(t, err)
	assert.Equal(t, n, n2)
	assert.Equal(t, "hello, world", s)
}

func TestStringInvalidLength(t *testing.T) {
	buf := make([]byte, 64)
	n := EncodeString("hello", buf)
	_, _, err := DecodeString(buf, n-1)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestBinaryRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	data := []byte{0, 1, 2, 255, 254}
	n := EncodeBinary(data, buf)
	out, n2, err := DecodeBinary(buf, n)
	require.NoError(t, err)
	assert.Equal(t, n, n2)
	assert.Equal(t, data, out)
}
