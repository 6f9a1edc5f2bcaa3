package bridge

import (
	"github.com/broady/objcbridge/objcgen/ir"
)

// Receiver tells whether a method is sent to the class or an instance.
type Receiver int

const (
	ReceiverStatic Receiver = iota
	ReceiverInstance
)

// ReturnKind identifies how a method result crosses the boundary.
type ReturnKind int

const (
	// ReturnVoid returns nothing.
	ReturnVoid ReturnKind = iota
	// ReturnHashCode returns an NSUInteger hash.
	ReturnHashCode
	// ReturnInstance returns instancetype from an initializer.
	ReturnInstance
	// ReturnValue returns the mapped result.
	ReturnValue
	// ReturnSuspend returns nothing; the result goes to the completion handler.
	ReturnSuspend
	// ReturnSuccess returns BOOL, NO on error.
	ReturnSuccess
	// ReturnZeroForError returns the mapped result made nullable, nil on error.
	ReturnZeroForError
	// ReturnResultOut returns BOOL and stores the result through an
	// out-parameter, for results whose zero value is legitimate.
	ReturnResultOut
)

// String returns the string representation of the return kind.
func (k ReturnKind) String() string {
	switch k {
	case ReturnVoid:
		return "Void"
	case ReturnHashCode:
		return "HashCode"
	case ReturnInstance:
		return "Instance"
	case ReturnValue:
		return "Value"
	case ReturnSuspend:
		return "Suspend"
	case ReturnSuccess:
		return "Success"
	case ReturnZeroForError:
		return "ZeroForError"
	case ReturnResultOut:
		return "ResultOut"
	default:
		return "Unknown"
	}
}

// ReturnBridge is the return shape of a method.
type ReturnBridge struct {
	Kind ReturnKind

	// Bridge is set for ReturnValue, ReturnZeroForError and ReturnResultOut.
	Bridge TypeBridge
}

// ParameterKind identifies a real or synthetic parameter.
type ParameterKind int

const (
	// ParamMapped is a declared parameter or an extension receiver.
	ParamMapped ParameterKind = iota
	// ParamErrorOut is the trailing NSError out-parameter.
	ParamErrorOut
	// ParamResultOut receives the result of a ReturnResultOut method.
	ParamResultOut
	// ParamSuspendCompletion is the completion handler of a suspend function.
	ParamSuspendCompletion
)

// ParameterBridge is one parameter of a method's bridged shape.
type ParameterBridge struct {
	Kind ParameterKind

	// Bridge is set for ParamMapped and ParamResultOut.
	Bridge TypeBridge

	// Receiver marks the mapped extension receiver.
	Receiver bool

	// Index is the declared parameter index for non-receiver mapped
	// parameters and -1 otherwise.
	Index int

	// UnitCompletion is set on completion handlers of unit suspend functions.
	UnitCompletion bool
}

// MethodBridge is the full shape of a bridged method.
type MethodBridge struct {
	Receiver Receiver
	Return   ReturnBridge
	Params   []ParameterBridge
}

// ReturnsError reports whether the method has an error out-parameter.
func (b MethodBridge) ReturnsError() bool {
	for _, p := range b.Params {
		if p.Kind == ParamErrorOut {
			return true
		}
	}
	return false
}

// IsInstance reports whether the method is an instance method.
func (b MethodBridge) IsInstance() bool { return b.Receiver == ReceiverInstance }

// Bridger computes method bridges.
type Bridger struct {
	Mappers *Registry
}

// IsCategoryMember reports whether a top-level extension callable becomes an
// instance member of a category on its receiver's class.
func (b *Bridger) IsCategoryMember(f *ir.Function) bool {
	return f.IsTopLevel() && f.Receiver != nil && b.Mappers.CategoryClass(f.Receiver) != nil
}

// IsHashCode reports whether f is the hash function of the root object.
func IsHashCode(f *ir.Function) bool {
	return f.FuncKind == ir.KindMethod && f.Owner != nil && f.Receiver == nil &&
		f.Name == "hashCode" && len(f.Params) == 0 &&
		f.Returns != nil && f.Returns.IsValue() && f.Returns.Value == ir.ValueInt
}

// BridgeMethod returns the bridged shape of f.
func (b *Bridger) BridgeMethod(f *ir.Function) MethodBridge {
	var mb MethodBridge
	switch {
	case f.IsConstructor():
		mb.Receiver = ReceiverInstance
	case f.IsTopLevel() && !b.IsCategoryMember(f):
		mb.Receiver = ReceiverStatic
		if f.Receiver != nil {
			mb.Params = append(mb.Params, ParameterBridge{
				Kind:     ParamMapped,
				Bridge:   BridgeType(f.Receiver),
				Receiver: true,
				Index:    -1,
			})
		}
	default:
		mb.Receiver = ReceiverInstance
	}

	for i, p := range f.Params {
		mb.Params = append(mb.Params, ParameterBridge{Kind: ParamMapped, Bridge: BridgeType(p.Type), Index: i})
	}

	throws := f.DoesThrow() && !f.Suspend
	switch {
	case f.IsConstructor():
		mb.Return = ReturnBridge{Kind: ReturnInstance}
	case f.Suspend:
		mb.Return = ReturnBridge{Kind: ReturnSuspend}
		mb.Params = append(mb.Params, ParameterBridge{
			Kind:           ParamSuspendCompletion,
			Index:          -1,
			UnitCompletion: isUnit(f.Returns),
		})
	case IsHashCode(f):
		mb.Return = ReturnBridge{Kind: ReturnHashCode}
	case isUnit(f.Returns):
		if throws {
			mb.Return = ReturnBridge{Kind: ReturnSuccess}
		} else {
			mb.Return = ReturnBridge{Kind: ReturnVoid}
		}
	case !throws:
		mb.Return = ReturnBridge{Kind: ReturnValue, Bridge: BridgeType(f.Returns)}
	case MayBeZero(f.Returns):
		rb := BridgeType(f.Returns)
		mb.Return = ReturnBridge{Kind: ReturnResultOut, Bridge: rb}
		mb.Params = append(mb.Params, ParameterBridge{Kind: ParamResultOut, Bridge: rb, Index: -1})
	default:
		mb.Return = ReturnBridge{Kind: ReturnZeroForError, Bridge: BridgeType(f.Returns)}
	}
	if throws {
		mb.Params = append(mb.Params, ParameterBridge{Kind: ParamErrorOut, Index: -1})
	}
	return mb
}
