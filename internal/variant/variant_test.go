package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullIsNull(t *testing.T) {
	assert.True(t, Null().IsNull())
	assert.False(t, FromInt32(0).IsNull())
}

func TestInt64AcceptsAnyIntegerFamily(t *testing.T) {
	v, ok := FromUint8(200).Int64()
	assert.True(t, ok)
	assert.EqualValues(t, 200, v)

	v, ok = FromInt8(-5).Int64()
	assert.True(t, ok)
	assert.EqualValues(t, -5, v)

	_, ok = FromString("x").Int64()
	assert.False(t, ok)
}

func TestFloat64AcceptsFloatAndDouble(t *testing.T) {
	v, ok := FromFloat32(1.5).Float64()
	assert.True(t, ok)
	assert.InDelta(t, 1.5, v, 0.0001)

	v, ok = FromFloat64(2.5).Float64()
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
}

func TestRawDateTimeEqualityDateOnlyIgnoresTime(t *testing.T) {
	dateOnly := RawDateTime{Year: 2024, Month: 3, DayOfMonth: 15}
	withTime := RawDateTime{Year: 2024, Month: 3, DayOfMonth: 15, HasTimePart: true, Hours: 23, Minutes: 59}
	assert.True(t, dateOnly.Equal(withTime))
	assert.True(t, withTime.Equal(dateOnly))
}

func TestRawDateTimeEqualityBothTimedRequiresMatch(t *testing.T) {
	a := RawDateTime{Year: 2024, Month: 3, DayOfMonth: 15, HasTimePart: true, Hours: 10}
	b := RawDateTime{Year: 2024, Month: 3, DayOfMonth: 15, HasTimePart: true, Hours: 11}
	assert.False(t, a.Equal(b))
}

func TestRawDateTimeCompareOrdersByDateThenTime(t *testing.T) {
	earlier := RawDateTime{Year: 2024, Month: 1, DayOfMonth: 1, HasTimePart: true, Hours: 1}
	later := RawDateTime{Year: 2024, Month: 1, DayOfMonth: 1, HasTimePart: true, Hours: 2}
	assert.Equal(t, -1, earlier.Compare(later))
	assert.Equal(t, 1, later.Compare(earlier))
	assert.Equal(t, 0, earlier.Compare(earlier))
}

func TestPromoteNumericNullPropagates(t *testing.T) {
	assert.Equal(t, TypeNull, PromoteNumeric(TypeNull, TypeInt32))
	assert.Equal(t, TypeNull, PromoteNumeric(TypeInt32, TypeNull))
}

func TestPromoteNumericWidensToLarger(t *testing.T) {
	assert.Equal(t, TypeInt64, PromoteNumeric(TypeInt16, TypeInt64))
	assert.Equal(t, TypeUInt32, PromoteNumeric(TypeUInt8, TypeUInt32))
}

func TestPromoteNumericMixedSignWidensToSigned(t *testing.T) {
	// Same-width signed/unsigned mix needs a wider signed type: UInt32's
	// range overflows Int32, so the result widens to Int64.
	assert.Equal(t, TypeInt64, PromoteNumeric(TypeInt32, TypeUInt32))
	// A narrower unsigned operand already fits the wider signed type.
	assert.Equal(t, TypeInt32, PromoteNumeric(TypeUInt16, TypeInt32))
}

func TestPromoteNumericFloatingTypesDominate(t *testing.T) {
	assert.Equal(t, TypeDouble, PromoteNumeric(TypeFloat, TypeDouble))
	assert.Equal(t, TypeFloat, PromoteNumeric(TypeInt32, TypeFloat))
}

func TestPromoteUnaryNarrowPromotesToInt32(t *testing.T) {
	assert.Equal(t, TypeInt32, PromoteUnary(TypeInt8))
	assert.Equal(t, TypeInt32, PromoteUnary(TypeUInt16))
	assert.Equal(t, TypeInt32, PromoteUnary(TypeUInt32))
}

func TestPromoteUnaryWideKeepsSignedCounterpart(t *testing.T) {
	assert.Equal(t, TypeInt64, PromoteUnary(TypeUInt64))
	assert.Equal(t, TypeInt64, PromoteUnary(TypeInt64))
}

func TestPromoteUnaryPassesThroughNullAndFloat(t *testing.T) {
	assert.Equal(t, TypeNull, PromoteUnary(TypeNull))
	assert.Equal(t, TypeFloat, PromoteUnary(TypeFloat))
	assert.Equal(t, TypeDouble, PromoteUnary(TypeDouble))
}
