package namer

import (
	"fmt"

	"github.com/broady/objcbridge/objcgen/ir"
)

// container is the Objective-C class or file holder a member is emitted
// into.
type container struct {
	class *ir.ClassDecl
	file  string
}

func (n *Namer) functionContainer(f *ir.Function) container {
	if f.Owner != nil {
		return container{class: f.Owner}
	}
	if f.Receiver != nil {
		if c := n.bridger.Mappers.CategoryClass(f.Receiver); c != nil {
			return container{class: c}
		}
	}
	return container{file: f.Package + "/" + f.File}
}

func (n *Namer) propertyContainer(p *ir.Property) container {
	return n.functionContainer(p.Getter)
}

// related reports whether members of a and b can meet in one class.
// Protocol members can be adopted by any class.
func related(a, b container) bool {
	if a.class == nil || b.class == nil {
		return a.class == nil && b.class == nil && a.file == b.file
	}
	return a.class == b.class ||
		a.class.IsInterface() || b.class.IsInterface() ||
		a.class.IsSubclassOf(b.class) || b.class.IsSubclassOf(a.class)
}

func (n *Namer) selectorsConflict(a, b *ir.Function) bool {
	if !related(n.functionContainer(a), n.functionContainer(b)) {
		return false
	}
	return !n.canHaveSameSelector(a, b)
}

// canHaveSameSelector reports whether two base methods may share a selector
// because they would merge into one method in a common subclass.
func (n *Namer) canHaveSameSelector(a, b *ir.Function) bool {
	if a.Owner == nil || b.Owner == nil {
		return false
	}
	if a.FuncKind != b.FuncKind || mangledName(a) != mangledName(b) {
		return false
	}
	if a.Receiver.String() != b.Receiver.String() {
		return false
	}
	if a.FuncKind != ir.KindSetter {
		if len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if a.Params[i].Type.String() != b.Params[i].Type.String() {
				return false
			}
		}
	}
	return fmt.Sprint(n.bridger.BridgeMethod(a)) == fmt.Sprint(n.bridger.BridgeMethod(b))
}

func (n *Namer) propertiesConflict(a, b *ir.Property) bool {
	if !related(n.propertyContainer(a), n.propertyContainer(b)) {
		return false
	}
	canShare := a.Owner != nil && b.Owner != nil &&
		a.Name == b.Name && a.Type.String() == b.Type.String()
	return !canShare
}
