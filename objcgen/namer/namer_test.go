package namer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/objcbridge/objcgen/bridge"
	"github.com/broady/objcbridge/objcgen/ir"
	"github.com/broady/objcbridge/objcgen/objc"
)

func newNamer(t *testing.T) *Namer {
	t.Helper()
	reg, err := bridge.NewRegistry("Shared")
	require.NoError(t, err)
	return New("Shared", []string{"shared"}, &bridge.Bridger{Mappers: reg})
}

func link(t *testing.T, classes []*ir.ClassDecl, members ...ir.Member) *ir.Universe {
	t.Helper()
	u := ir.NewUniverse(&ir.Module{Name: "shared", Files: []*ir.File{{
		Name: "Utils.kt", Package: "com.example", Classes: classes, Members: members,
	}}})
	require.Empty(t, u.Validate())
	return u
}

func TestClassOrProtocolName(t *testing.T) {
	inner := &ir.ClassDecl{Name: "Inner", ClassKind: ir.KindClass, Exposed: true}
	innerProto := &ir.ClassDecl{Name: "Listener", ClassKind: ir.KindInterface, Exposed: true}
	outer := &ir.ClassDecl{Name: "Outer", ClassKind: ir.KindClass, Exposed: true, Nested: []*ir.ClassDecl{inner, innerProto}}
	shape := &ir.ClassDecl{Name: "Shape", ClassKind: ir.KindInterface, Exposed: true}
	renamed := &ir.ClassDecl{Name: "Internal", ClassKind: ir.KindClass, Exposed: true,
		Names: ir.NameOverride{ObjCName: "Public", SwiftName: "PublicThing"}}
	exact := &ir.ClassDecl{Name: "Raw", ClassKind: ir.KindClass, Exposed: true,
		Names: ir.NameOverride{ObjCName: "XYRaw", Exact: true}}
	u := link(t, []*ir.ClassDecl{outer, shape, renamed, exact})
	n := newNamer(t)

	tests := []struct {
		name string
		c    *ir.ClassDecl
		want objc.Name
	}{
		{"top-level", outer, objc.Name{ObjCName: "SharedOuter", SwiftName: "Outer"}},
		{"nested", inner, objc.Name{ObjCName: "SharedOuterInner", SwiftName: "Outer.Inner"}},
		{"nested protocol", innerProto, objc.Name{ObjCName: "SharedOuterListener", SwiftName: "OuterListener"}},
		{"protocol", shape, objc.Name{ObjCName: "SharedShape", SwiftName: "Shape"}},
		{"override", renamed, objc.Name{ObjCName: "SharedPublic", BinaryName: "SharedInternal", SwiftName: "PublicThing"}},
		{"exact", exact, objc.Name{ObjCName: "XYRaw", BinaryName: "SharedRaw"}},
		{"std class", u.MustLookup(ir.FqThrowable), objc.Name{ObjCName: "SharedStdThrowable", SwiftName: "StdThrowable"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.ClassOrProtocolName(tt.c))
			// Memoized.
			assert.Equal(t, tt.want, n.ClassOrProtocolName(tt.c))
		})
	}
}

func TestClassOrProtocolName_Clash(t *testing.T) {
	a := &ir.ClassDecl{Name: "Foo", ClassKind: ir.KindClass, Exposed: true, Package: "a"}
	b := &ir.ClassDecl{Name: "Foo", ClassKind: ir.KindClass, Exposed: true, Package: "b"}
	p := &ir.ClassDecl{Name: "Foo", ClassKind: ir.KindInterface, Exposed: true, Package: "c"}
	link(t, []*ir.ClassDecl{a, b, p})
	n := newNamer(t)

	assert.Equal(t, "SharedFoo", n.ClassOrProtocolName(a).ObjCName)
	assert.Equal(t, "SharedFoo_", n.ClassOrProtocolName(b).ObjCName)
	assert.Equal(t, "Foo_", n.ClassOrProtocolName(b).SwiftName)
	// Protocols have their own Objective-C namespace but share Swift names.
	assert.Equal(t, "SharedFoo", n.ClassOrProtocolName(p).ObjCName)
	assert.Equal(t, "Foo__", n.ClassOrProtocolName(p).SwiftName)
}

func TestFileClassName(t *testing.T) {
	n := newNamer(t)
	assert.Equal(t, objc.Name{ObjCName: "SharedUtilsKt", SwiftName: "UtilsKt"}, n.FileClassName("a", "Utils.kt"))
	assert.Equal(t, objc.Name{ObjCName: "SharedUtilsKt_", SwiftName: "UtilsKt_"}, n.FileClassName("b", "src/utils.kt"))
	assert.Equal(t, "SharedUtilsKt", n.FileClassName("a", "Utils.kt").ObjCName)
}

func TestSelectorsAndSwiftNames(t *testing.T) {
	exc := []*ir.TypeRef{ir.Named(ir.FqException)}
	str := ir.Named(ir.FqString)
	user := &ir.ClassDecl{Name: "User", ClassKind: ir.KindClass, Exposed: true, Modality: ir.ModalityOpen,
		Constructors: []*ir.Function{
			{Exposed: true},
			{Exposed: true, Params: []*ir.Param{{Name: "name", Type: str}, {Name: "age", Type: ir.Value(ir.ValueInt)}}},
		},
		Members: []ir.Member{
			&ir.Function{Name: "greet", Exposed: true},
			&ir.Function{Name: "rename", Exposed: true, Params: []*ir.Param{{Name: "to", Type: str}, {Name: "reason", Type: str}}},
			&ir.Function{Name: "save", Exposed: true, Throws: exc},
			&ir.Function{Name: "saveTo", Exposed: true, Throws: exc, Params: []*ir.Param{{Name: "path", Type: str}}},
			&ir.Function{Name: "count", Exposed: true, Throws: exc, Returns: ir.Value(ir.ValueInt)},
			&ir.Function{Name: "fetch", Exposed: true, Suspend: true, Returns: str},
			&ir.Function{Name: "fetchById", Exposed: true, Suspend: true, Returns: str, Params: []*ir.Param{{Name: "id", Type: ir.Value(ir.ValueLong)}}},
			&ir.Function{Name: "copy", Exposed: true, Returns: ir.Named("com.example.User")},
			&ir.Function{Name: "newer", Exposed: true, Returns: ir.Value(ir.ValueBool)},
			&ir.Function{Name: "initials", Exposed: true, Returns: str},
			&ir.Function{Name: "toString", Exposed: true, Returns: str, Overridden: nil},
			&ir.Property{Name: "nick", Type: str, Exposed: true, Setter: &ir.Function{Exposed: true}},
		},
	}
	shout := &ir.Function{Name: "shout", Exposed: true, Receiver: str, Returns: str}
	describe := &ir.Function{Name: "describe", Exposed: true, Receiver: ir.Named("com.example.User"), Returns: str}
	u := link(t, []*ir.ClassDecl{user}, shout, describe)
	anyToString := u.MustLookup(ir.FqAny).Functions()[2]
	require.Equal(t, "toString", anyToString.Name)
	fns := user.Functions()
	fns[10].Overridden = []*ir.Function{anyToString}
	n := newNamer(t)

	tests := []struct {
		f        *ir.Function
		selector string
		swift    string
	}{
		{user.Constructors[0], "init", "init()"},
		{user.Constructors[1], "initWithName:age:", "init(name:age:)"},
		{fns[0], "greet", "greet()"},
		{fns[1], "renameTo:reason:", "rename(to:reason:)"},
		{fns[2], "saveAndReturnError:", "save()"},
		{fns[3], "saveToPath:error:", "saveTo(path:)"},
		{fns[4], "countAndReturnResult:error:", "count(result:)"},
		{fns[5], "fetchWithCompletionHandler:", "fetch(completionHandler:)"},
		{fns[6], "fetchByIdId:completionHandler:", "fetchById(id:completionHandler:)"},
		{fns[7], "doCopy", "doCopy()"},
		{fns[8], "newer", "newer()"},
		{fns[9], "initials", "initials()"},
		{fns[10], "description", "description()"},
		{user.Properties()[0].Getter, "nick", "nick()"},
		{user.Properties()[0].Setter, "setNick:", "setNick(_:)"},
		{shout, "shout:", "shout(_:)"},
		{describe, "describe", "describe()"},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			assert.Equal(t, tt.selector, n.Selector(tt.f))
			assert.Equal(t, tt.swift, n.SwiftName(tt.f))
		})
	}
}

func TestSelector_ClashInHierarchy(t *testing.T) {
	base := &ir.ClassDecl{Name: "Base", ClassKind: ir.KindClass, Exposed: true, Modality: ir.ModalityOpen,
		Members: []ir.Member{&ir.Function{Name: "foo", Exposed: true, Params: []*ir.Param{{Name: "x", Type: ir.Value(ir.ValueInt)}}}}}
	sub := &ir.ClassDecl{Name: "Sub", ClassKind: ir.KindClass, Exposed: true, SuperClass: ir.Named("com.example.Base"),
		Members: []ir.Member{&ir.Function{Name: "foo", Exposed: true, Params: []*ir.Param{{Name: "x", Type: ir.Named(ir.FqString)}}}}}
	other := &ir.ClassDecl{Name: "Other", ClassKind: ir.KindClass, Exposed: true,
		Members: []ir.Member{&ir.Function{Name: "foo", Exposed: true, Params: []*ir.Param{{Name: "x", Type: ir.Named(ir.FqString)}}}}}
	same := &ir.ClassDecl{Name: "Same", ClassKind: ir.KindClass, Exposed: true, SuperClass: ir.Named("com.example.Base"),
		Members: []ir.Member{&ir.Function{Name: "foo", Exposed: true, Params: []*ir.Param{{Name: "x", Type: ir.Value(ir.ValueInt)}}}}}
	link(t, []*ir.ClassDecl{base, sub, other, same})
	n := newNamer(t)

	assert.Equal(t, "fooX:", n.Selector(base.Functions()[0]))
	assert.Equal(t, "fooX_:", n.Selector(sub.Functions()[0]))
	assert.Equal(t, "foo(x:)", n.SwiftName(base.Functions()[0]))
	assert.Equal(t, "foo_(x:)", n.SwiftName(sub.Functions()[0]))
	assert.Equal(t, "fooX:", n.Selector(other.Functions()[0]), "unrelated classes do not clash")
	assert.Equal(t, "fooX:", n.Selector(same.Functions()[0]), "identical signatures merge")
}

func TestSwiftName_Override(t *testing.T) {
	verbose := []*ir.Param{{Name: "verbose", Type: ir.Value(ir.ValueBool)}}
	c := &ir.ClassDecl{Name: "Shape", ClassKind: ir.KindClass, Exposed: true, Members: []ir.Member{
		&ir.Function{Name: "describe", Exposed: true, Params: verbose, Names: ir.NameOverride{SwiftName: "describe(verbose:)"}},
		&ir.Function{Name: "render", Exposed: true, Params: verbose, Names: ir.NameOverride{SwiftName: "draw"}},
	}}
	link(t, []*ir.ClassDecl{c})
	n := newNamer(t)

	fns := c.Functions()
	assert.Equal(t, "describe(verbose:)", n.SwiftName(fns[0]), "full names are used as written")
	assert.Equal(t, "describeVerbose:", n.Selector(fns[0]))
	assert.Equal(t, "draw(verbose:)", n.SwiftName(fns[1]), "base names get the argument list")
}

func TestSelector_Reserved(t *testing.T) {
	c := &ir.ClassDecl{Name: "Thing", ClassKind: ir.KindClass, Exposed: true, Members: []ir.Member{
		&ir.Function{Name: "retain", Exposed: true},
		&ir.Function{Name: "hash", Exposed: true},
		&ir.Property{Name: "class", Type: ir.Named(ir.FqString), Exposed: true},
	}}
	link(t, []*ir.ClassDecl{c})
	n := newNamer(t)
	assert.Equal(t, "retain_", n.Selector(c.Functions()[0]))
	assert.Equal(t, "hash_", n.Selector(c.Functions()[1]))
	assert.Equal(t, "class_", n.PropertyName(c.Properties()[0]))
}

func TestPropertyAndEntryNames(t *testing.T) {
	color := &ir.ClassDecl{Name: "Color", ClassKind: ir.KindEnumClass, Exposed: true,
		EnumEntries: []*ir.EnumEntry{{Name: "RED"}, {Name: "DARK_GREEN"}, {Name: "ENTRIES"}, {Name: "Red"}},
		Members: []ir.Member{
			&ir.Property{Name: "copyright", Type: ir.Named(ir.FqString), Exposed: true},
			&ir.Property{Name: "newValue", Type: ir.Named(ir.FqString), Exposed: true},
		}}
	link(t, []*ir.ClassDecl{color})
	n := newNamer(t)

	assert.Equal(t, "red", n.EnumEntryName(color.EnumEntries[0]))
	assert.Equal(t, "darkGreen", n.EnumEntryName(color.EnumEntries[1]))
	assert.Equal(t, "entries_", n.EnumEntryName(color.EnumEntries[2]))
	assert.Equal(t, "red_", n.EnumEntryName(color.EnumEntries[3]))
	assert.Equal(t, "copyright", n.PropertyName(color.Properties()[0]))
	assert.Equal(t, "doNewValue", n.PropertyName(color.Properties()[1]))
}

func TestPredefinedNames(t *testing.T) {
	n := newNamer(t)
	assert.Equal(t, "SharedBase", n.Base().ObjCName)
	assert.Equal(t, "SharedInt", n.NumberClassName(ir.ValueInt))
	assert.Equal(t, "SharedBoolean", n.NumberBox(ir.ValueBool).ObjCName)
	assert.Equal(t, "SharedMutableDictionary", n.MutableDictionary().ObjCName)
}

func TestClassOrProtocolName_SeededNamesReserved(t *testing.T) {
	base := &ir.ClassDecl{Name: "Base", ClassKind: ir.KindClass, Exposed: true}
	number := &ir.ClassDecl{Name: "Number", ClassKind: ir.KindInterface, Exposed: true}
	boxed := &ir.ClassDecl{Name: "Int", ClassKind: ir.KindClass, Exposed: true}
	link(t, []*ir.ClassDecl{base, number, boxed})
	n := newNamer(t)

	assert.Equal(t, "SharedBase_", n.ClassOrProtocolName(base).ObjCName)
	assert.Equal(t, "Base", n.ClassOrProtocolName(base).SwiftName)
	assert.Equal(t, "SharedNumber_", n.ClassOrProtocolName(number).ObjCName)
	assert.Equal(t, "SharedInt_", n.ClassOrProtocolName(boxed).ObjCName)
	assert.Equal(t, "SharedBase", n.Base().ObjCName)
}
