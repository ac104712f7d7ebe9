package keytraits

import "nexusdb/internal/variant"

// ForIntegerType returns the shared Traits instance for one of the eight
// integer variant types. ok is false for any other type.
func ForIntegerType(t variant.Type) (traits Traits, ok bool) {
	switch t {
	case variant.TypeInt8:
		return Int8, true
	case variant.TypeInt16:
		return Int16, true
	case variant.TypeInt32:
		return Int32, true
	case variant.TypeInt64:
		return Int64, true
	case variant.TypeUInt8:
		return UInt8, true
	case variant.TypeUInt16:
		return UInt16, true
	case variant.TypeUInt32:
		return UInt32, true
	case variant.TypeUInt64:
		return UInt64, true
	default:
		return nil, false
	}
}
