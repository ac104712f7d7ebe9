// Package variant implements the tagged-union value type that flows
// through expression evaluation and rowset encoding: a single Variant
// holds exactly one of the SQL value kinds the engine understands, with
// the null kind carrying no payload.
package variant

import "fmt"

// Type identifies which alternative of the tagged union a Variant holds.
type Type int

const (
	TypeNull Type = iota
	TypeBool
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUInt8
	TypeUInt16
	TypeUInt32
	TypeUInt64
	TypeFloat
	TypeDouble
	TypeString
	TypeBinary
	TypeDateTime
	TypeDate
	TypeTime
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "Null"
	case TypeBool:
		return "Bool"
	case TypeInt8:
		return "Int8"
	case TypeInt16:
		return "Int16"
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	case TypeUInt8:
		return "UInt8"
	case TypeUInt16:
		return "UInt16"
	case TypeUInt32:
		return "UInt32"
	case TypeUInt64:
		return "UInt64"
	case TypeFloat:
		return "Float"
	case TypeDouble:
		return "Double"
	case TypeString:
		return "String"
	case TypeBinary:
		return "Binary"
	case TypeDateTime:
		return "DateTime"
	case TypeDate:
		return "Date"
	case TypeTime:
		return "Time"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// RawDateTime is a packed date (with day-of-week precomputed) and an
// optional time-of-day. A raw date with HasTimePart false compares equal
// to any raw datetime sharing its date fields, regardless of the other
// value's time fields.
type RawDateTime struct {
	Year       int32
	Month      uint8 // 0-11 (0 = January)
	DayOfMonth uint8 // 0-30 (0 = the 1st)
	DayOfWeek  uint8 // 0 (Sunday) - 6, derived

	HasTimePart bool
	Hours       uint8
	Minutes     uint8
	Seconds     uint8
	Nanos       uint32
}

// Equal implements the raw-datetime equality rule: date fields must
// always match; time fields are compared only when both values carry a
// time part.
func (d RawDateTime) Equal(o RawDateTime) bool {
	if d.Year != o.Year || d.Month != o.Month || d.DayOfMonth != o.DayOfMonth {
		return false
	}
	if !d.HasTimePart || !o.HasTimePart {
		return true
	}
	return d.Hours == o.Hours && d.Minutes == o.Minutes &&
		d.Seconds == o.Seconds && d.Nanos == o.Nanos
}

// Compare returns a three-way ordering of two raw datetimes: date fields
// first, then time fields when both sides carry one.
func (d RawDateTime) Compare(o RawDateTime) int {
	if c := compareInt32(d.Year, o.Year); c != 0 {
		return c
	}
	if c := compareUint8(d.Month, o.Month); c != 0 {
		return c
	}
	if c := compareUint8(d.DayOfMonth, o.DayOfMonth); c != 0 {
		return c
	}
	if !d.HasTimePart || !o.HasTimePart {
		return 0
	}
	if c := compareUint8(d.Hours, o.Hours); c != 0 {
		return c
	}
	if c := compareUint8(d.Minutes, o.Minutes); c != 0 {
		return c
	}
	if c := compareUint8(d.Seconds, o.Seconds); c != 0 {
		return c
	}
	return compareUint32(d.Nanos, o.Nanos)
}

func compareInt32(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareUint8(a, b uint8) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareUint32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Variant is a tagged union over the value kinds a column, literal, or
// expression result can hold. The zero Variant is a typed null.
type Variant struct {
	typ       Type
	boolVal   bool
	intVal    int64
	uintVal   uint64
	floatVal  float32
	doubleVal float64
	strVal    string
	binVal    []byte
	dtVal     RawDateTime
}

// Null returns the null Variant.
func Null() Variant { return Variant{typ: TypeNull} }

func FromBool(v bool) Variant    { return Variant{typ: TypeBool, boolVal: v} }
func FromInt8(v int8) Variant    { return Variant{typ: TypeInt8, intVal: int64(v)} }
func FromInt16(v int16) Variant  { return Variant{typ: TypeInt16, intVal: int64(v)} }
func FromInt32(v int32) Variant  { return Variant{typ: TypeInt32, intVal: int64(v)} }
func FromInt64(v int64) Variant  { return Variant{typ: TypeInt64, intVal: v} }
func FromUint8(v uint8) Variant  { return Variant{typ: TypeUInt8, uintVal: uint64(v)} }
func FromUint16(v uint16) Variant { return Variant{typ: TypeUInt16, uintVal: uint64(v)} }
func FromUint32(v uint32) Variant { return Variant{typ: TypeUInt32, uintVal: uint64(v)} }
func FromUint64(v uint64) Variant { return Variant{typ: TypeUInt64, uintVal: v} }
func FromFloat32(v float32) Variant { return Variant{typ: TypeFloat, floatVal: v} }
func FromFloat64(v float64) Variant { return Variant{typ: TypeDouble, doubleVal: v} }
func FromString(v string) Variant { return Variant{typ: TypeString, strVal: v} }
func FromBinary(v []byte) Variant { return Variant{typ: TypeBinary, binVal: v} }
func FromDateTime(v RawDateTime) Variant { return Variant{typ: TypeDateTime, dtVal: v} }
func FromDate(v RawDateTime) Variant {
	v.HasTimePart = false
	return Variant{typ: TypeDate, dtVal: v}
}
func FromTime(v RawDateTime) Variant { return Variant{typ: TypeTime, dtVal: v} }

// Type reports which alternative is held.
func (v Variant) Type() Type { return v.typ }

// IsNull reports whether v holds the null alternative.
func (v Variant) IsNull() bool { return v.typ == TypeNull }

// Bool returns the boolean payload. ok is false if v does not hold Bool.
func (v Variant) Bool() (value, ok bool) {
	return v.boolVal, v.typ == TypeBool
}

// Int64 returns the payload of any signed or unsigned integer alternative
// sign-extended (or truncated, for unsigned) into an int64.
func (v Variant) Int64() (int64, bool) {
	switch v.typ {
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return v.intVal, true
	case TypeUInt8, TypeUInt16, TypeUInt32, TypeUInt64:
		return int64(v.uintVal), true
	default:
		return 0, false
	}
}

// Uint64 returns the payload of any integer alternative as a uint64.
func (v Variant) Uint64() (uint64, bool) {
	switch v.typ {
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return uint64(v.intVal), true
	case TypeUInt8, TypeUInt16, TypeUInt32, TypeUInt64:
		return v.uintVal, true
	default:
		return 0, false
	}
}

// Float64 returns the payload of Float or Double as a float64.
func (v Variant) Float64() (float64, bool) {
	switch v.typ {
	case TypeFloat:
		return float64(v.floatVal), true
	case TypeDouble:
		return v.doubleVal, true
	default:
		return 0, false
	}
}

// String returns the payload of String.
func (v Variant) String() (string, bool) {
	return v.strVal, v.typ == TypeString
}

// Binary returns the payload of Binary.
func (v Variant) Binary() ([]byte, bool) {
	return v.binVal, v.typ == TypeBinary
}

// DateTime returns the payload of DateTime, Date, or Time.
func (v Variant) DateTime() (RawDateTime, bool) {
	switch v.typ {
	case TypeDateTime, TypeDate, TypeTime:
		return v.dtVal, true
	default:
		return RawDateTime{}, false
	}
}

func isInteger(t Type) bool {
	switch t {
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64,
		TypeUInt8, TypeUInt16, TypeUInt32, TypeUInt64:
		return true
	default:
		return false
	}
}

func isSignedInt(t Type) bool {
	switch t {
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return true
	default:
		return false
	}
}

func integerWidth(t Type) int {
	switch t {
	case TypeInt8, TypeUInt8:
		return 1
	case TypeInt16, TypeUInt16:
		return 2
	case TypeInt32, TypeUInt32:
		return 4
	case TypeInt64, TypeUInt64:
		return 8
	default:
		return 0
	}
}

func signedTypeForWidth(w int) Type {
	switch w {
	case 1:
		return TypeInt8
	case 2:
		return TypeInt16
	case 4:
		return TypeInt32
	default:
		return TypeInt64
	}
}

func unsignedTypeForWidth(w int) Type {
	switch w {
	case 1:
		return TypeUInt8
	case 2:
		return TypeUInt16
	case 4:
		return TypeUInt32
	default:
		return TypeUInt64
	}
}

// PromoteNumeric implements the binary numeric-operator promotion rule: a
// Null operand forces a Null result; otherwise the result promotes to the
// wider of the two operand types, widening to the signed family when the
// operands' signs differ. Float/Double operands promote to the widest
// floating type present.
func PromoteNumeric(a, b Type) Type {
	if a == TypeNull || b == TypeNull {
		return TypeNull
	}
	if a == TypeDouble || b == TypeDouble {
		return TypeDouble
	}
	if a == TypeFloat || b == TypeFloat {
		return TypeFloat
	}
	if !isInteger(a) || !isInteger(b) {
		return TypeNull
	}
	w := integerWidth(a)
	if bw := integerWidth(b); bw > w {
		w = bw
	}
	if isSignedInt(a) == isSignedInt(b) {
		if isSignedInt(a) {
			return signedTypeForWidth(w)
		}
		return unsignedTypeForWidth(w)
	}
	// Signs differ: widen to the signed side. A same-width signed type
	// cannot hold every value of an unsigned operand at that width (e.g.
	// UInt32's range overflows Int32), so bump one width step further
	// when the unsigned operand is as wide as the result would otherwise
	// be; a narrower unsigned operand already fits the wider signed type.
	unsignedWidth := integerWidth(a)
	if isSignedInt(a) {
		unsignedWidth = integerWidth(b)
	}
	if unsignedWidth >= w && w < 8 {
		w *= 2
	}
	return signedTypeForWidth(w)
}

// PromoteUnary implements the unary +/- promotion rule: integer operands
// narrower than 32 bits promote to Int32, unsigned operands promote to
// their signed counterpart, and Null/Float/Double pass through unchanged.
func PromoteUnary(t Type) Type {
	switch t {
	case TypeNull, TypeFloat, TypeDouble:
		return t
	case TypeInt8, TypeInt16, TypeUInt8, TypeUInt16, TypeInt32, TypeUInt32:
		return TypeInt32
	case TypeInt64, TypeUInt64:
		return TypeInt64
	default:
		return TypeNull
	}
}

// IsNumeric reports whether t is one of the integer or floating families.
func IsNumeric(t Type) bool {
	return isInteger(t) || t == TypeFloat || t == TypeDouble
}

// IsInteger reports whether t is one of the eight integer families.
func IsInteger(t Type) bool { return isInteger(t) }
