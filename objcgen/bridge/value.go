// Package bridge decides how source types and functions cross into
// Objective-C: the value type table, the shape of each method, and the
// mapping of reference types with custom mappers.
package bridge

import (
	"github.com/cockroachdb/errors"

	"github.com/broady/objcbridge/objcgen/ir"
	"github.com/broady/objcbridge/objcgen/objc"
)

var valueTypes = map[ir.ValueKind]objc.Type{
	ir.ValueBool:    objc.Bool,
	ir.ValueChar:    &objc.PrimitiveType{Name: "unichar"},
	ir.ValueByte:    &objc.PrimitiveType{Name: "int8_t"},
	ir.ValueShort:   &objc.PrimitiveType{Name: "int16_t"},
	ir.ValueInt:     &objc.PrimitiveType{Name: "int32_t"},
	ir.ValueLong:    &objc.PrimitiveType{Name: "int64_t"},
	ir.ValueUByte:   &objc.PrimitiveType{Name: "uint8_t"},
	ir.ValueUShort:  &objc.PrimitiveType{Name: "uint16_t"},
	ir.ValueUInt:    &objc.PrimitiveType{Name: "uint32_t"},
	ir.ValueULong:   &objc.PrimitiveType{Name: "uint64_t"},
	ir.ValueFloat:   &objc.PrimitiveType{Name: "float"},
	ir.ValueDouble:  &objc.PrimitiveType{Name: "double"},
	ir.ValuePointer: objc.VoidPointer,
}

// ObjCValueType returns the C type of a value kind. The table is total; an
// unknown kind is an invariant violation.
func ObjCValueType(k ir.ValueKind) objc.Type {
	t, ok := valueTypes[k]
	if !ok {
		panic(errors.AssertionFailedf("no value type for kind %d", k))
	}
	return t
}
