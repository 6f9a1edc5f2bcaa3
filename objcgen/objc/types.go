// Package objc models Objective-C interface declarations and renders them
// as header text. Every stub renders to a deterministic, non-empty sequence
// of lines; the same rendering is used for output and for comparing
// generated signatures.
package objc

import "strings"

// Type is an Objective-C type in a declaration.
//
// Render places attrsAndName (attributes such as _Nullable followed by a
// declarator name, or empty) where C declarator syntax requires it, e.g.
// "NSString * _Nullable name" or "void (^ _Nullable)(int32_t)".
type Type interface {
	Render(attrsAndName string) string
	isType()
}

// ReferenceType is a type of an object reference, nullable or not.
type ReferenceType interface {
	Type
	isReference()
}

// NonNullReferenceType is a reference type that can be wrapped in
// NullableReferenceType.
type NonNullReferenceType interface {
	ReferenceType
	isNonNull()
}

func withAttrsAndName(s, attrsAndName string) string {
	if attrsAndName == "" {
		return s
	}
	return s + " " + strings.TrimLeft(attrsAndName, " ")
}

// Nullability attributes.
const (
	NullableAttribute       = "_Nullable"
	NullableResultAttribute = "_Nullable_result"
)

// ClassType is a pointer to an instance of a class, e.g. "NSArray<id> *".
type ClassType struct {
	Name     string
	TypeArgs []NonNullReferenceType
}

func (t *ClassType) Render(attrsAndName string) string {
	var b strings.Builder
	b.WriteString(t.Name)
	if len(t.TypeArgs) > 0 {
		b.WriteByte('<')
		for i, a := range t.TypeArgs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.Render(""))
		}
		b.WriteByte('>')
	}
	b.WriteString(" *")
	b.WriteString(attrsAndName)
	return b.String()
}

// ProtocolType is an object conforming to a protocol, e.g. "id<Shape>".
type ProtocolType struct {
	Name string
}

func (t *ProtocolType) Render(attrsAndName string) string {
	return withAttrsAndName("id<"+t.Name+">", attrsAndName)
}

// IDType is the untyped object reference.
type IDType struct{}

func (IDType) Render(attrsAndName string) string { return withAttrsAndName("id", attrsAndName) }

// InstanceType is the related result type of constructors and factories.
type InstanceType struct{}

func (InstanceType) Render(attrsAndName string) string {
	return withAttrsAndName("instancetype", attrsAndName)
}

// GenericTypeUsage is a reference to a generic parameter of the enclosing
// interface.
type GenericTypeUsage struct {
	Name string
}

func (t *GenericTypeUsage) Render(attrsAndName string) string {
	return withAttrsAndName(t.Name, attrsAndName)
}

// RawType is a reference type spelled verbatim, e.g. a user mapping.
type RawType struct {
	Text string
}

func (t *RawType) Render(attrsAndName string) string {
	return withAttrsAndName(t.Text, attrsAndName)
}

// BlockPointerType is a block taking and returning references.
type BlockPointerType struct {
	Params []ReferenceType

	// Return is VoidType or a ReferenceType.
	Return Type
}

func (t *BlockPointerType) Render(attrsAndName string) string {
	var b strings.Builder
	b.WriteString("(^")
	b.WriteString(attrsAndName)
	b.WriteString(")(")
	if len(t.Params) == 0 {
		b.WriteString("void")
	}
	for i, p := range t.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Render(""))
	}
	b.WriteByte(')')
	return t.Return.Render(b.String())
}

// NullableReferenceType wraps a non-null reference as nullable.
type NullableReferenceType struct {
	NonNull NonNullReferenceType

	// IsNullableResult selects _Nullable_result, used for completion
	// handler results.
	IsNullableResult bool
}

func (t *NullableReferenceType) Render(attrsAndName string) string {
	attr := NullableAttribute
	if t.IsNullableResult {
		attr = NullableResultAttribute
	}
	return t.NonNull.Render(withAttrsAndName(" "+attr, attrsAndName))
}

// PrimitiveType is a C scalar type such as "int32_t" or "BOOL".
type PrimitiveType struct {
	Name string
}

func (t *PrimitiveType) Render(attrsAndName string) string {
	return withAttrsAndName(t.Name, attrsAndName)
}

// PointerType is a C pointer, e.g. the "NSError * _Nullable * _Nullable"
// error out-parameter.
type PointerType struct {
	Pointee  Type
	Nullable bool
}

func (t *PointerType) Render(attrsAndName string) string {
	star := "*"
	if t.Nullable {
		star = "* " + NullableAttribute
	}
	return t.Pointee.Render(withAttrsAndName(star, attrsAndName))
}

// VoidType is the C void type.
type VoidType struct{}

func (VoidType) Render(attrsAndName string) string { return withAttrsAndName("void", attrsAndName) }

// Nullable wraps t in NullableReferenceType.
func Nullable(t NonNullReferenceType) *NullableReferenceType {
	return &NullableReferenceType{NonNull: t}
}

// Well-known types.
var (
	Void                Type = VoidType{}
	ID                       = IDType{}
	Instance                 = InstanceType{}
	Bool                     = &PrimitiveType{Name: "BOOL"}
	UInteger                 = &PrimitiveType{Name: "NSUInteger"}
	VoidPointer              = &PointerType{Pointee: Void}
	NullableVoidPointer      = &PointerType{Pointee: Void, Nullable: true}
)

func (*ClassType) isType()             {}
func (*ProtocolType) isType()          {}
func (IDType) isType()                 {}
func (InstanceType) isType()           {}
func (*GenericTypeUsage) isType()      {}
func (*RawType) isType()               {}
func (*BlockPointerType) isType()      {}
func (*NullableReferenceType) isType() {}
func (*PrimitiveType) isType()         {}
func (*PointerType) isType()           {}
func (VoidType) isType()               {}

func (*ClassType) isReference()             {}
func (*ProtocolType) isReference()          {}
func (IDType) isReference()                 {}
func (InstanceType) isReference()           {}
func (*GenericTypeUsage) isReference()      {}
func (*RawType) isReference()               {}
func (*BlockPointerType) isReference()      {}
func (*NullableReferenceType) isReference() {}

func (*ClassType) isNonNull()        {}
func (*ProtocolType) isNonNull()     {}
func (IDType) isNonNull()            {}
func (InstanceType) isNonNull()      {}
func (*GenericTypeUsage) isNonNull() {}
func (*RawType) isNonNull()          {}
func (*BlockPointerType) isNonNull() {}
