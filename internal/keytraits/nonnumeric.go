package keytraits

import (
	"bytes"

	"nexusdb/internal/variant"
)

// StringComparator orders variable-length, unprefixed byte slices by
// UTF-8 codepoint, which for valid UTF-8 coincides with unsigned
// byte-lexicographic order, so this is a plain bytes.Compare.
func StringComparator(a, b []byte) int {
	return bytes.Compare(a, b)
}

// BinaryComparator orders variable-length byte slices lexicographically.
func BinaryComparator(a, b []byte) int {
	return bytes.Compare(a, b)
}

// DateTimeComparator orders two encoded RawDateTime values, as produced by
// EncodeDateTime, using RawDateTime's own date-then-time ordering.
func DateTimeComparator(a, b []byte) int {
	da := decodeDateTimeKey(a)
	db := decodeDateTimeKey(b)
	return da.Compare(db)
}

// DateTimeKeySize is the fixed encoded width of a RawDateTime key: a
// 4-byte year, one byte each for month, day-of-month, the time-part flag,
// hours, minutes and seconds, and 4-byte nanoseconds.
const DateTimeKeySize = 4 + 1 + 1 + 1 + 1 + 1 + 1 + 4

// EncodeDateTimeKey writes a fixed-width, order-preserving encoding of dt
// into buf, which must be at least DateTimeKeySize bytes, and returns the
// number of bytes written.
func EncodeDateTimeKey(dt variant.RawDateTime, buf []byte) int {
	y := uint32(dt.Year) ^ 0x80000000 // bias so negative years sort below positive
	buf[0] = byte(y >> 24)
	buf[1] = byte(y >> 16)
	buf[2] = byte(y >> 8)
	buf[3] = byte(y)
	buf[4] = dt.Month
	buf[5] = dt.DayOfMonth
	if dt.HasTimePart {
		buf[6] = 1
	} else {
		buf[6] = 0
	}
	buf[7] = dt.Hours
	buf[8] = dt.Minutes
	buf[9] = dt.Seconds
	n := dt.Nanos
	buf[10] = byte(n >> 24)
	buf[11] = byte(n >> 16)
	buf[12] = byte(n >> 8)
	buf[13] = byte(n)
	return DateTimeKeySize
}

func decodeDateTimeKey(buf []byte) variant.RawDateTime {
	y := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	n := uint32(buf[10])<<24 | uint32(buf[11])<<16 | uint32(buf[12])<<8 | uint32(buf[13])
	return variant.RawDateTime{
		Year:        int32(y ^ 0x80000000),
		Month:       buf[4],
		DayOfMonth:  buf[5],
		HasTimePart: buf[6] != 0,
		Hours:       buf[7],
		Minutes:     buf[8],
		Seconds:     buf[9],
		Nanos:       n,
	}
}

type dateTimeTraits struct{}

// DateTime is the shared traits instance for the datetime key family.
var DateTime Traits = dateTimeTraits{}

func (dateTimeTraits) KeySize() int { return DateTimeKeySize }
func (dateTimeTraits) MinKey() []byte {
	buf := make([]byte, DateTimeKeySize)
	EncodeDateTimeKey(variant.RawDateTime{Year: -9999, Month: 1, DayOfMonth: 1}, buf)
	return buf
}
func (dateTimeTraits) MaxKey() []byte {
	buf := make([]byte, DateTimeKeySize)
	EncodeDateTimeKey(variant.RawDateTime{
		Year: 9999, Month: 12, DayOfMonth: 31,
		HasTimePart: true, Hours: 23, Minutes: 59, Seconds: 59, Nanos: 999999999,
	}, buf)
	return buf
}
func (dateTimeTraits) NumericKeyType() NumericKeyType { return Other }
func (dateTimeTraits) Compare(a, b []byte) int        { return DateTimeComparator(a, b) }
