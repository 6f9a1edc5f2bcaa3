package ir

import "strings"

// TypeKind identifies the shape of a type reference.
type TypeKind int

const (
	TypeClass TypeKind = iota
	TypeValue
	TypeParamRef
	TypeFunction
)

// String returns the string representation of the type kind.
func (k TypeKind) String() string {
	switch k {
	case TypeClass:
		return "Class"
	case TypeValue:
		return "Value"
	case TypeParamRef:
		return "TypeParam"
	case TypeFunction:
		return "Function"
	default:
		return "Unknown"
	}
}

// TypeRef is a use of a type in a signature.
type TypeRef struct {
	Kind TypeKind

	// Class is the referenced class for TypeClass.
	Class *ClassDecl

	// ClassName is the fully-qualified name of Class before linking.
	ClassName string

	// Args are the type arguments; a nil element is a star projection.
	Args []*TypeRef

	// Value is the value kind for TypeValue.
	Value ValueKind

	// Param is the type parameter name for TypeParamRef.
	Param string

	// Params and Result describe a function type; a nil Result is unit.
	Params []*TypeRef
	Result *TypeRef

	Nullable bool
}

// ClassOf returns a non-null reference to c with the given arguments.
func ClassOf(c *ClassDecl, args ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: TypeClass, Class: c, Args: args}
}

// Named returns an unresolved reference to a class by qualified name.
func Named(fqName string, args ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: TypeClass, ClassName: fqName, Args: args}
}

// Value returns a non-null reference to a value kind.
func Value(k ValueKind) *TypeRef {
	return &TypeRef{Kind: TypeValue, Value: k}
}

// TypeParam returns a reference to a type parameter.
func TypeParam(name string) *TypeRef {
	return &TypeRef{Kind: TypeParamRef, Param: name}
}

// Func returns a function type. A nil result is unit.
func Func(result *TypeRef, params ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: TypeFunction, Params: params, Result: result}
}

// OrNull returns a nullable copy of t.
func (t *TypeRef) OrNull() *TypeRef {
	c := *t
	c.Nullable = true
	return &c
}

// NonNull returns a non-null copy of t.
func (t *TypeRef) NonNull() *TypeRef {
	if !t.Nullable {
		return t
	}
	c := *t
	c.Nullable = false
	return &c
}

// IsValue reports whether t is a non-null value kind.
func (t *TypeRef) IsValue() bool {
	return t.Kind == TypeValue && !t.Nullable
}

// Is reports whether t references the class with the given qualified name.
func (t *TypeRef) Is(fqName string) bool {
	if t == nil || t.Kind != TypeClass {
		return false
	}
	if t.Class != nil {
		return t.Class.FqName() == fqName
	}
	return t.ClassName == fqName
}

// String renders t in source-like notation for diagnostics.
func (t *TypeRef) String() string {
	if t == nil {
		return "Unit"
	}
	var b strings.Builder
	switch t.Kind {
	case TypeClass:
		if t.Class != nil {
			b.WriteString(t.Class.FqName())
		} else {
			b.WriteString(t.ClassName)
		}
		if len(t.Args) > 0 {
			b.WriteByte('<')
			for i, a := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				if a == nil {
					b.WriteByte('*')
				} else {
					b.WriteString(a.String())
				}
			}
			b.WriteByte('>')
		}
	case TypeValue:
		b.WriteString(t.Value.String())
	case TypeParamRef:
		b.WriteString(t.Param)
	case TypeFunction:
		b.WriteByte('(')
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteString(") -> ")
		b.WriteString(t.Result.String())
		if t.Nullable {
			return "(" + b.String() + ")?"
		}
	}
	if t.Nullable {
		b.WriteByte('?')
	}
	return b.String()
}

// Substitute replaces type parameters in t using subst.
func Substitute(t *TypeRef, subst map[string]*TypeRef) *TypeRef {
	if t == nil || len(subst) == 0 {
		return t
	}
	switch t.Kind {
	case TypeParamRef:
		r, ok := subst[t.Param]
		if !ok || r == nil {
			return t
		}
		if t.Nullable {
			return r.OrNull()
		}
		return r
	case TypeClass:
		if len(t.Args) == 0 {
			return t
		}
		c := *t
		c.Args = make([]*TypeRef, len(t.Args))
		for i, a := range t.Args {
			c.Args[i] = Substitute(a, subst)
		}
		return &c
	case TypeFunction:
		c := *t
		c.Params = make([]*TypeRef, len(t.Params))
		for i, p := range t.Params {
			c.Params[i] = Substitute(p, subst)
		}
		c.Result = Substitute(t.Result, subst)
		return &c
	default:
		return t
	}
}

// DirectSupertypes returns the superclass and super-interfaces of the class
// referenced by t, with t's type arguments substituted.
func DirectSupertypes(t *TypeRef) []*TypeRef {
	if t == nil || t.Kind != TypeClass || t.Class == nil {
		return nil
	}
	c := t.Class
	subst := make(map[string]*TypeRef, len(c.TypeParameters))
	for i, tp := range c.TypeParameters {
		if i < len(t.Args) {
			subst[tp.Name] = t.Args[i]
		}
	}
	var out []*TypeRef
	if c.SuperClass != nil {
		out = append(out, Substitute(c.SuperClass, subst))
	}
	for _, s := range c.SuperInterfaces {
		out = append(out, Substitute(s, subst))
	}
	return out
}

// TypeWithSupertypes returns t (non-null) followed by all its transitive
// supertypes in breadth-first discovery order, each class at most once.
func TypeWithSupertypes(t *TypeRef) []*TypeRef {
	if t == nil || t.Kind != TypeClass || t.Class == nil {
		return nil
	}
	out := []*TypeRef{t.NonNull()}
	seen := map[*ClassDecl]bool{t.Class: true}
	for i := 0; i < len(out); i++ {
		for _, s := range DirectSupertypes(out[i]) {
			if s.Class == nil || seen[s.Class] {
				continue
			}
			seen[s.Class] = true
			out = append(out, s.NonNull())
		}
	}
	return out
}
