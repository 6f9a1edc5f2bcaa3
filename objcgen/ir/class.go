package ir

import "strings"

// Modality describes whether a class can be subclassed.
type Modality int

const (
	ModalityFinal Modality = iota
	ModalityOpen
	ModalityAbstract
)

// String returns the string representation of the modality.
func (m Modality) String() string {
	switch m {
	case ModalityFinal:
		return "final"
	case ModalityOpen:
		return "open"
	case ModalityAbstract:
		return "abstract"
	default:
		return "unknown"
	}
}

// TypeParameter is a generic parameter declared by a class.
type TypeParameter struct {
	Name string
}

// ClassDecl represents a class, interface, object, companion or enum class.
type ClassDecl struct {
	// Package is the dotted package name, e.g. "com.example".
	Package string

	// Name is the simple name.
	Name string

	// Outer is the enclosing class for nested declarations.
	Outer *ClassDecl

	// ClassKind is one of KindClass, KindInterface, KindObject,
	// KindCompanion or KindEnumClass.
	ClassKind DeclKind

	Modality Modality

	TypeParameters []TypeParameter

	// SuperClass is nil when the class extends the root object type.
	SuperClass *TypeRef

	SuperInterfaces []*TypeRef

	Constructors []*Function

	// Members holds functions and properties in declaration order, including
	// inherited members the analysis stage materialized for this class.
	Members []Member

	EnumEntries []*EnumEntry

	Nested []*ClassDecl

	// Exposed is the upstream "shouldBeExposed" decision.
	Exposed bool

	// Hidden marks a type that must never be named in the header.
	Hidden bool

	// Inline marks a value (boxed wrapper) class.
	Inline bool

	// Foreign is the native class or protocol name for declarations that
	// belong to the native object system itself.
	Foreign string

	Names NameOverride

	// Module is the name of the module of origin.
	Module string

	// File is the source file name the class is declared in.
	File string

	Deprecated *Deprecation

	Documentation Documentation

	Source Source
}

// Kind returns the class kind.
func (c *ClassDecl) Kind() DeclKind { return c.ClassKind }

// QualifiedName returns the fully-qualified name.
func (c *ClassDecl) QualifiedName() string { return c.FqName() }

// ShouldBeExposed returns the upstream exposure flag.
func (c *ClassDecl) ShouldBeExposed() bool { return c.Exposed }

// Doc returns the class documentation.
func (c *ClassDecl) Doc() Documentation { return c.Documentation }

// Src returns the class source location.
func (c *ClassDecl) Src() Source { return c.Source }

func (*ClassDecl) sealed() {}

// FqName returns the dotted fully-qualified name including outer classes.
func (c *ClassDecl) FqName() string {
	names := []string{c.Name}
	for o := c.Outer; o != nil; o = o.Outer {
		names = append(names, o.Name)
	}
	var b strings.Builder
	if c.Package != "" {
		b.WriteString(c.Package)
		b.WriteByte('.')
	}
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteString(names[i])
		if i > 0 {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// IsInterface reports whether the declaration is an interface.
func (c *ClassDecl) IsInterface() bool { return c.ClassKind == KindInterface }

// IsObject reports whether the declaration is a singleton object or companion.
func (c *ClassDecl) IsObject() bool {
	return c.ClassKind == KindObject || c.ClassKind == KindCompanion
}

// IsEnum reports whether the declaration is an enum class.
func (c *ClassDecl) IsEnum() bool { return c.ClassKind == KindEnumClass }

// IsFinal reports whether the class cannot be subclassed by native code.
func (c *ClassDecl) IsFinal() bool {
	if c.IsObject() || c.IsEnum() {
		return true
	}
	return c.Modality == ModalityFinal && !c.IsInterface()
}

// IsForeign reports whether the class belongs to the native object system.
func (c *ClassDecl) IsForeign() bool { return c.Foreign != "" }

// Companion returns the companion object, if any.
func (c *ClassDecl) Companion() *ClassDecl {
	for _, n := range c.Nested {
		if n.ClassKind == KindCompanion {
			return n
		}
	}
	return nil
}

// DefaultType returns the type of the class parameterized by its own
// type parameters.
func (c *ClassDecl) DefaultType() *TypeRef {
	args := make([]*TypeRef, len(c.TypeParameters))
	for i, tp := range c.TypeParameters {
		args[i] = TypeParam(tp.Name)
	}
	return ClassOf(c, args...)
}

// SuperClassDecl returns the declaration of the superclass or nil.
func (c *ClassDecl) SuperClassDecl() *ClassDecl {
	if c.SuperClass == nil {
		return nil
	}
	return c.SuperClass.Class
}

// SuperInterfaceDecls returns the declarations of the direct super-interfaces.
func (c *ClassDecl) SuperInterfaceDecls() []*ClassDecl {
	var out []*ClassDecl
	for _, t := range c.SuperInterfaces {
		if t.Class != nil {
			out = append(out, t.Class)
		}
	}
	return out
}

// IsSubclassOf reports whether other is a strict supertype of c.
func (c *ClassDecl) IsSubclassOf(other *ClassDecl) bool {
	if c == other {
		return false
	}
	seen := map[*ClassDecl]bool{c: true}
	stack := []*ClassDecl{c}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		supers := cur.SuperInterfaceDecls()
		if s := cur.SuperClassDecl(); s != nil {
			supers = append(supers, s)
		}
		for _, s := range supers {
			if s == other {
				return true
			}
			if !seen[s] {
				seen[s] = true
				stack = append(stack, s)
			}
		}
	}
	return false
}

// Functions returns the function members in declaration order.
func (c *ClassDecl) Functions() []*Function {
	var out []*Function
	for _, m := range c.Members {
		if f, ok := m.(*Function); ok {
			out = append(out, f)
		}
	}
	return out
}

// Properties returns the property members in declaration order.
func (c *ClassDecl) Properties() []*Property {
	var out []*Property
	for _, m := range c.Members {
		if p, ok := m.(*Property); ok {
			out = append(out, p)
		}
	}
	return out
}

// EnumEntry is a constant of an enum class.
type EnumEntry struct {
	Name          string
	Owner         *ClassDecl
	Documentation Documentation
	Source        Source
}

// Kind returns KindEnumEntry.
func (e *EnumEntry) Kind() DeclKind { return KindEnumEntry }

// QualifiedName returns the owner-qualified entry name.
func (e *EnumEntry) QualifiedName() string {
	if e.Owner == nil {
		return e.Name
	}
	return e.Owner.FqName() + "." + e.Name
}

// ShouldBeExposed follows the owning enum.
func (e *EnumEntry) ShouldBeExposed() bool { return e.Owner != nil && e.Owner.Exposed }

// Doc returns the entry documentation.
func (e *EnumEntry) Doc() Documentation { return e.Documentation }

// Src returns the entry source location.
func (e *EnumEntry) Src() Source { return e.Source }

func (*EnumEntry) sealed() {}
