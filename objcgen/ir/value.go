package ir

// ValueKind identifies a primitive value type of the source language.
type ValueKind int

const (
	ValueBool ValueKind = iota
	ValueChar
	ValueByte
	ValueShort
	ValueInt
	ValueLong
	ValueUByte
	ValueUShort
	ValueUInt
	ValueULong
	ValueFloat
	ValueDouble
	ValuePointer
)

// ValueKinds lists every value kind in declaration order.
var ValueKinds = []ValueKind{
	ValueBool, ValueChar,
	ValueByte, ValueShort, ValueInt, ValueLong,
	ValueUByte, ValueUShort, ValueUInt, ValueULong,
	ValueFloat, ValueDouble,
	ValuePointer,
}

// String returns the string representation of the value kind.
func (k ValueKind) String() string {
	switch k {
	case ValueBool:
		return "Boolean"
	case ValueChar:
		return "Char"
	case ValueByte:
		return "Byte"
	case ValueShort:
		return "Short"
	case ValueInt:
		return "Int"
	case ValueLong:
		return "Long"
	case ValueUByte:
		return "UByte"
	case ValueUShort:
		return "UShort"
	case ValueUInt:
		return "UInt"
	case ValueULong:
		return "ULong"
	case ValueFloat:
		return "Float"
	case ValueDouble:
		return "Double"
	case ValuePointer:
		return "Pointer"
	default:
		return "Unknown"
	}
}

// ParseValueKind is the inverse of ValueKind.String.
func ParseValueKind(s string) (ValueKind, bool) {
	for _, k := range ValueKinds {
		if k.String() == s {
			return k, true
		}
	}
	if s == "Bool" {
		return ValueBool, true
	}
	return 0, false
}

// IsNumber reports whether the kind has a boxed number class.
// Char and Pointer have none.
func (k ValueKind) IsNumber() bool {
	switch k {
	case ValueChar, ValuePointer:
		return false
	}
	return k >= ValueBool && k <= ValueDouble
}
