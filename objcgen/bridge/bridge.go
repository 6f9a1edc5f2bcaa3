package bridge

import (
	"github.com/cockroachdb/errors"

	"github.com/broady/objcbridge/objcgen/ir"
)

// TypeBridge is the strategy for converting one source type.
type TypeBridge interface {
	isTypeBridge()
}

// ReferenceBridge passes the value as an object reference.
type ReferenceBridge struct{}

// ValueTypeBridge passes the value as a C scalar.
type ValueTypeBridge struct {
	Kind ir.ValueKind

	// Nullable is only set for nullable pointers, which stay C pointers.
	Nullable bool
}

// BlockPointerBridge passes a function value as a block.
type BlockPointerBridge struct {
	Arity       int
	ReturnsVoid bool
}

func (ReferenceBridge) isTypeBridge()    {}
func (ValueTypeBridge) isTypeBridge()    {}
func (BlockPointerBridge) isTypeBridge() {}

// BridgeType returns the bridge for a non-unit type.
func BridgeType(t *ir.TypeRef) TypeBridge {
	if t == nil {
		panic(errors.AssertionFailedf("unit type has no value bridge"))
	}
	switch t.Kind {
	case ir.TypeValue:
		if !t.Nullable {
			return ValueTypeBridge{Kind: t.Value}
		}
		if t.Value == ir.ValuePointer {
			return ValueTypeBridge{Kind: t.Value, Nullable: true}
		}
		return ReferenceBridge{}
	case ir.TypeFunction:
		return BlockPointerBridge{Arity: len(t.Params), ReturnsVoid: isUnit(t.Result)}
	default:
		return ReferenceBridge{}
	}
}

func isUnit(t *ir.TypeRef) bool {
	return t == nil || (t.Is(ir.FqUnit) && !t.Nullable)
}

// MayBeZero reports whether a legitimate value of t can be represented by
// the zero bit pattern, so that zero cannot signal an error.
func MayBeZero(t *ir.TypeRef) bool {
	if t == nil {
		return false
	}
	return t.Nullable || t.Kind == ir.TypeValue || t.Kind == ir.TypeParamRef
}
