package export

import (
	"github.com/broady/objcbridge/objcgen/ir"
	"github.com/broady/objcbridge/objcgen/objc"
)

// nsNumberVariant is one NSNumber initializer and factory family, e.g.
// initWithChar: and numberWithChar:.
type nsNumberVariant struct {
	selector string
	ctype    string
}

// nsNumberVariants lists every NSNumber variant in Foundation order.
var nsNumberVariants = []nsNumberVariant{
	{"Char", "char"},
	{"UnsignedChar", "unsigned char"},
	{"Short", "short"},
	{"UnsignedShort", "unsigned short"},
	{"Int", "int"},
	{"UnsignedInt", "unsigned int"},
	{"Long", "long"},
	{"UnsignedLong", "unsigned long"},
	{"LongLong", "long long"},
	{"UnsignedLongLong", "unsigned long long"},
	{"Float", "float"},
	{"Double", "double"},
	{"Bool", "BOOL"},
	{"Integer", "NSInteger"},
	{"UnsignedInteger", "NSUInteger"},
}

// numberBoxes maps each boxed value kind to its NSNumber variant, in the
// order the box classes are emitted.
var numberBoxes = []struct {
	kind    ir.ValueKind
	variant nsNumberVariant
}{
	{ir.ValueByte, nsNumberVariant{"Char", "char"}},
	{ir.ValueUByte, nsNumberVariant{"UnsignedChar", "unsigned char"}},
	{ir.ValueShort, nsNumberVariant{"Short", "short"}},
	{ir.ValueUShort, nsNumberVariant{"UnsignedShort", "unsigned short"}},
	{ir.ValueInt, nsNumberVariant{"Int", "int"}},
	{ir.ValueUInt, nsNumberVariant{"UnsignedInt", "unsigned int"}},
	{ir.ValueLong, nsNumberVariant{"LongLong", "long long"}},
	{ir.ValueULong, nsNumberVariant{"UnsignedLongLong", "unsigned long long"}},
	{ir.ValueFloat, nsNumberVariant{"Float", "float"}},
	{ir.ValueDouble, nsNumberVariant{"Double", "double"}},
	{ir.ValueBool, nsNumberVariant{"Bool", "BOOL"}},
}

func (v nsNumberVariant) methods(attrs ...string) []objc.Stub {
	param := []objc.Parameter{{Name: "value", Type: &objc.PrimitiveType{Name: v.ctype}}}
	return []objc.Stub{
		&objc.Method{
			IsInstance: true,
			ReturnType: objc.Instance,
			Selectors:  []string{"initWith" + v.selector + ":"},
			Parameters: param,
			Attributes: attrs,
		},
		&objc.Method{
			ReturnType: objc.Instance,
			Selectors:  []string{"numberWith" + v.selector + ":"},
			Parameters: param,
			Attributes: attrs,
		},
	}
}

// seed emits the declarations every header starts with: the root class,
// its NSCopying category, the mutable collection classes, the NSError
// category and the boxed number classes.
func (t *Translator) seed() {
	ctx := t.ctx
	n := ctx.namer

	base := n.Base()
	ctx.emit(&objc.Interface{
		Name:       base.ObjCName,
		SuperClass: "NSObject",
		Attributes: base.Attributes(),
		Members: []objc.Stub{
			&objc.Method{IsInstance: true, ReturnType: objc.Instance, Selectors: []string{"init"}, Attributes: []string{"unavailable"}},
			&objc.Method{ReturnType: objc.Instance, Selectors: []string{"new"}, Attributes: []string{"unavailable"}},
			&objc.Method{ReturnType: objc.Void, Selectors: []string{"initialize"}, Attributes: []string{"objc_requires_super"}},
		},
	})
	ctx.emit(&objc.Interface{
		Name:           base.ObjCName,
		Category:       n.CopyingCategory(),
		SuperProtocols: []string{"NSCopying"},
	})

	ctx.emit(t.collectionClass(n.MutableSet(), "NSMutableSet", "ObjectType"))
	ctx.emit(t.collectionClass(n.MutableDictionary(), "NSMutableDictionary", "KeyType", "ObjectType"))

	ctx.emit(&objc.Interface{
		Name:     "NSError",
		Category: n.ExceptionCategory(),
		Members: []objc.Stub{
			&objc.Property{
				Name:               "sourceException",
				Type:               objc.Nullable(objc.ID),
				PropertyAttributes: []string{"readonly"},
			},
		},
	})

	number := n.Number()
	var unavailable []objc.Stub
	for _, v := range nsNumberVariants {
		unavailable = append(unavailable, v.methods("unavailable")...)
	}
	ctx.emit(&objc.Interface{
		Name:       number.ObjCName,
		SuperClass: "NSNumber",
		Attributes: number.Attributes(),
		Members:    unavailable,
	})
	for _, b := range numberBoxes {
		name := n.NumberBox(b.kind)
		ctx.emit(&objc.Interface{
			Name:       name.ObjCName,
			SuperClass: number.ObjCName,
			Attributes: append([]string{objc.SubclassingRestrictedAttribute}, name.Attributes()...),
			Members:    b.variant.methods(),
		})
	}
}

// collectionClass declares a subclass of a Foundation collection, generic
// over params when generics are enabled.
func (t *Translator) collectionClass(name objc.Name, super string, params ...string) *objc.Interface {
	i := &objc.Interface{
		Name:       name.ObjCName,
		SuperClass: super,
		Attributes: name.Attributes(),
	}
	if t.ctx.Options.Generics {
		i.Generics = params
		for _, p := range params {
			i.SuperClassGenerics = append(i.SuperClassGenerics, &objc.GenericTypeUsage{Name: p})
		}
	}
	return i
}
