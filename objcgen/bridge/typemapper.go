package bridge

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/broady/objcbridge/objcgen/ir"
	"github.com/broady/objcbridge/objcgen/objc"
)

// References resolves the names of translated classes and protocols and
// records that they are used.
type References interface {
	ReferenceClass(c *ir.ClassDecl) string
	ReferenceProtocol(c *ir.ClassDecl) string
}

// Namer supplies names the type mapper cannot derive itself.
type Namer interface {
	// NumberClassName returns the boxed number class of a value kind.
	NumberClassName(k ir.ValueKind) string
}

// Warner receives non-fatal modeling warnings.
type Warner interface {
	Report(msg string)
}

// Scope lists the generic parameters usable in a declaration.
// A nil scope has none.
type Scope struct {
	Generics []string
}

// HasGeneric reports whether name is a generic parameter in scope.
func (s *Scope) HasGeneric(name string) bool {
	if s == nil {
		return false
	}
	for _, g := range s.Generics {
		if g == name {
			return true
		}
	}
	return false
}

// TypeMapper maps source types to Objective-C types.
type TypeMapper struct {
	Mappers *Registry
	Refs    References
	Namer   Namer
	Warner  Warner

	// Generics enables lightweight generics on exported classes.
	Generics bool

	ambiguous map[*ir.ClassDecl]bool
}

// MapType maps t under bridge b.
func (m *TypeMapper) MapType(t *ir.TypeRef, b TypeBridge, scope *Scope) objc.Type {
	switch b := b.(type) {
	case ValueTypeBridge:
		if b.Kind == ir.ValuePointer && (b.Nullable || t.Nullable) {
			return objc.NullableVoidPointer
		}
		return ObjCValueType(b.Kind)
	case ReferenceBridge, BlockPointerBridge:
		return m.MapReferenceType(t, scope)
	default:
		panic(errors.AssertionFailedf("unknown type bridge %T", b))
	}
}

// MapReferenceType maps t as an object reference. Nullability is resolved
// independently of the mapping of the non-null type.
func (m *TypeMapper) MapReferenceType(t *ir.TypeRef, scope *Scope) objc.ReferenceType {
	nonNull := m.MapNonNull(t, scope)
	if t.Nullable {
		return objc.Nullable(nonNull)
	}
	return nonNull
}

// MapNonNull maps t as a reference ignoring its nullability.
func (m *TypeMapper) MapNonNull(t *ir.TypeRef, scope *Scope) objc.NonNullReferenceType {
	switch t.Kind {
	case ir.TypeParamRef:
		if m.Generics && scope.HasGeneric(t.Param) {
			return &objc.GenericTypeUsage{Name: t.Param}
		}
		return objc.ID
	case ir.TypeValue:
		if !t.Value.IsNumber() {
			return objc.ID
		}
		return &objc.ClassType{Name: m.Namer.NumberClassName(t.Value)}
	case ir.TypeFunction:
		return m.mapFunction(t, scope)
	case ir.TypeClass:
		return m.mapClass(t, scope)
	default:
		panic(errors.AssertionFailedf("unknown type kind %v", t.Kind))
	}
}

func (m *TypeMapper) mapFunction(t *ir.TypeRef, scope *Scope) *objc.BlockPointerType {
	b := &objc.BlockPointerType{Return: objc.Void}
	for _, p := range t.Params {
		b.Params = append(b.Params, m.MapReferenceType(p, scope))
	}
	if !isUnit(t.Result) {
		b.Return = m.MapReferenceType(t.Result, scope)
	}
	return b
}

func (m *TypeMapper) mapClass(t *ir.TypeRef, scope *Scope) objc.NonNullReferenceType {
	c := t.Class
	if c == nil {
		panic(errors.AssertionFailedf("unresolved class reference %s", t.ClassName))
	}

	if matches := m.Mappers.Matches(t); len(matches) > 0 {
		if len(matches) > 1 {
			m.reportAmbiguity(c, matches)
		}
		return matches[0].Mapper.Map(matches[0].Type, m, scope)
	}

	if c.FqName() == ir.FqAny || c.Hidden || c.Inline {
		return objc.ID
	}

	if f := foreignAncestor(c); f != nil {
		if f.IsInterface() {
			return &objc.ProtocolType{Name: f.Foreign}
		}
		return &objc.ClassType{Name: f.Foreign}
	}

	if !c.Exposed {
		if c.IsInterface() {
			return objc.ID
		}
		for _, s := range ir.TypeWithSupertypes(t)[1:] {
			if s.Class.Exposed && !s.Class.IsInterface() && !s.Class.Hidden {
				return m.mapClass(s, scope)
			}
		}
		return objc.ID
	}

	if c.IsInterface() {
		return &objc.ProtocolType{Name: m.Refs.ReferenceProtocol(c)}
	}

	name := m.Refs.ReferenceClass(c)
	var args []objc.NonNullReferenceType
	if m.Generics && len(c.TypeParameters) > 0 {
		for i := range c.TypeParameters {
			if i < len(t.Args) && t.Args[i] != nil {
				args = append(args, m.MapNonNull(t.Args[i], scope))
			} else {
				args = append(args, objc.ID)
			}
		}
	}
	return &objc.ClassType{Name: name, TypeArgs: args}
}

func (m *TypeMapper) reportAmbiguity(c *ir.ClassDecl, matches []Match) {
	if m.ambiguous == nil {
		m.ambiguous = make(map[*ir.ClassDecl]bool)
	}
	if m.ambiguous[c] {
		return
	}
	m.ambiguous[c] = true
	names := make([]string, len(matches))
	for i, mt := range matches {
		names[i] = mt.Class().FqName()
	}
	if m.Warner != nil {
		m.Warner.Report("Exposed type '" + c.FqName() + "' is '" + strings.Join(names, "' and '") +
			"' at the same time. This most likely wouldn't work as expected.")
	}
}

// foreignAncestor returns the nearest class in c's superclass chain that is
// defined by the native object system, or nil.
func foreignAncestor(c *ir.ClassDecl) *ir.ClassDecl {
	seen := make(map[*ir.ClassDecl]bool)
	for cur := c; cur != nil && !seen[cur]; cur = cur.SuperClassDecl() {
		seen[cur] = true
		if cur.IsForeign() {
			return cur
		}
	}
	return nil
}
