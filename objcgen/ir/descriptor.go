// Package ir defines the declaration graph consumed by the header generator.
// The graph is produced by an upstream analysis stage (or one of the input
// providers) and is treated as fully resolved and immutable during a pass.
package ir

// DeclKind identifies the category of a declaration.
type DeclKind int

const (
	KindClass DeclKind = iota
	KindInterface
	KindObject
	KindCompanion
	KindEnumClass
	KindConstructor
	KindMethod
	KindGetter
	KindSetter
	KindProperty
	KindEnumEntry
)

// String returns the string representation of the declaration kind.
func (k DeclKind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindInterface:
		return "Interface"
	case KindObject:
		return "Object"
	case KindCompanion:
		return "Companion"
	case KindEnumClass:
		return "EnumClass"
	case KindConstructor:
		return "Constructor"
	case KindMethod:
		return "Method"
	case KindGetter:
		return "Getter"
	case KindSetter:
		return "Setter"
	case KindProperty:
		return "Property"
	case KindEnumEntry:
		return "EnumEntry"
	default:
		return "Unknown"
	}
}

// Decl is the base interface for every node of the declaration graph.
type Decl interface {
	// Kind returns the declaration kind for type switching.
	Kind() DeclKind

	// QualifiedName returns a human-readable identity used in diagnostics.
	QualifiedName() string

	// ShouldBeExposed reports the exposure decision made upstream.
	ShouldBeExposed() bool

	// Doc returns associated documentation comments.
	Doc() Documentation

	// Src returns the original source location.
	Src() Source

	// Ensure only types in this package can implement Decl.
	sealed()
}

// Member is a callable member of a class or a file: *Function or *Property.
type Member interface {
	Decl
	member()
}
