// Package namer assigns Objective-C and Swift names to declarations.
//
// Names are memoized for the lifetime of a Namer and unique within their
// namespace: classes and protocols have separate Objective-C namespaces and
// share one Swift namespace. Selectors and property names only need to be
// unique among related containers, and are mangled with "_" on clashes.
package namer

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/broady/objcbridge/objcgen/bridge"
	"github.com/broady/objcbridge/objcgen/ir"
	"github.com/broady/objcbridge/objcgen/objc"
)

// Well-known member names.
const (
	ObjectInstanceName = "shared"
	CompanionName      = "companion"
	EntriesName        = "entries"
)

type predefined struct{ objc, swift string }

// Names of the predefined selectors for root-object overrides.
var predefinedSelectors = map[string]predefined{
	"equals":   {"isEqual:", "isEqual(_:)"},
	"hashCode": {"hash", "hash()"},
	"toString": {"description", "description()"},
}

// Selectors of the root object that exported methods must never shadow.
var reservedSelectors = map[string]bool{
	"retain":      true,
	"release":     true,
	"autorelease": true,
	"class":       true,
	"superclass":  true,
	"hash":        true,
}

// Namer assigns names for one generation pass.
type Namer struct {
	prefix   string
	exported map[string]bool
	bridger  *bridge.Bridger

	classNames    *mapping[*ir.ClassDecl]
	protocolNames *mapping[*ir.ClassDecl]
	swiftNames    *mapping[*ir.ClassDecl]
	fileNames     *mapping[string]
	fileSwift     *mapping[string]
	selectors     *mapping[*ir.Function]
	swiftMethods  *mapping[*ir.Function]
	properties    *mapping[*ir.Property]
	entries       *mapping[*ir.EnumEntry]

	names map[*ir.ClassDecl]objc.Name
}

// New returns a Namer. Classes of the exported modules get the plain
// prefix; classes of other modules also get a module prefix.
func New(prefix string, exported []string, b *bridge.Bridger) *Namer {
	n := &Namer{
		prefix:   prefix,
		exported: make(map[string]bool),
		bridger:  b,
		names:    make(map[*ir.ClassDecl]objc.Name),
	}
	for _, m := range exported {
		n.exported[m] = true
	}
	always := func(a, b *ir.ClassDecl) bool { return true }
	fixed := make(map[string]bool)
	for _, name := range fixedClassNames() {
		fixed[prefix+name] = true
		fixed["Std"+name] = true
	}
	isFixed := func(name string) bool { return fixed[name] }
	n.classNames = newMapping(always, appendUnderscore)
	n.classNames.reserved = isFixed
	n.protocolNames = newMapping(always, appendUnderscore)
	n.protocolNames.reserved = isFixed
	n.swiftNames = newMapping(always, appendUnderscore)
	n.swiftNames.reserved = isFixed
	n.fileNames = newMapping(func(a, b string) bool { return true }, appendUnderscore)
	n.fileSwift = newMapping(func(a, b string) bool { return true }, appendUnderscore)
	n.selectors = newMapping(n.selectorsConflict, mangleSelector)
	n.selectors.reserved = func(name string) bool { return reservedSelectors[name] }
	n.swiftMethods = newMapping(n.selectorsConflict, mangleSwiftName)
	n.properties = newMapping(n.propertiesConflict, appendUnderscore)
	n.properties.reserved = func(name string) bool { return reservedSelectors[name] }
	n.entries = newMapping(func(a, b *ir.EnumEntry) bool { return a.Owner == b.Owner }, appendUnderscore)
	return n
}

// Prefix returns the top-level name prefix.
func (n *Namer) Prefix() string { return n.prefix }

// fixedClassNames lists the unprefixed names of the seeded classes.
func fixedClassNames() []string {
	names := []string{"Base", "MutableSet", "MutableDictionary", "Number"}
	for _, k := range ir.ValueKinds {
		names = append(names, k.String())
	}
	return names
}

func (n *Namer) fixedName(name, swift string) objc.Name {
	return objc.Name{ObjCName: n.prefix + name, SwiftName: swift}
}

// Base returns the name of the root class of all exported classes.
func (n *Namer) Base() objc.Name { return n.fixedName("Base", "StdBase") }

// MutableSet returns the name of the mutable set class.
func (n *Namer) MutableSet() objc.Name { return n.fixedName("MutableSet", "StdMutableSet") }

// MutableDictionary returns the name of the mutable dictionary class.
func (n *Namer) MutableDictionary() objc.Name {
	return n.fixedName("MutableDictionary", "StdMutableDictionary")
}

// Number returns the name of the root boxed number class.
func (n *Namer) Number() objc.Name { return n.fixedName("Number", "StdNumber") }

// NumberBox returns the name of the boxed number class of k.
func (n *Namer) NumberBox(k ir.ValueKind) objc.Name {
	return n.fixedName(k.String(), "Std"+k.String())
}

// NumberClassName implements bridge.Namer.
func (n *Namer) NumberClassName(k ir.ValueKind) string { return n.NumberBox(k).ObjCName }

// ExceptionCategory returns the category name of the NSError extension.
func (n *Namer) ExceptionCategory() string { return n.prefix + "Exception" }

// CopyingCategory returns the category name adopting NSCopying.
func (n *Namer) CopyingCategory() string { return n.prefix + "BaseCopying" }

func (n *Namer) modulePrefix(c *ir.ClassDecl) string {
	if n.exported[c.Module] {
		return ""
	}
	return Capitalize(identifier(c.Module))
}

// ClassOrProtocolName returns the names of a class or protocol.
func (n *Namer) ClassOrProtocolName(c *ir.ClassDecl) objc.Name {
	if name, ok := n.names[c]; ok {
		return name
	}

	swift := n.swiftNames.getOrPut(c, func() string { return n.swiftBase(c) })

	canonical := func() string {
		if c.Outer != nil {
			return n.ClassOrProtocolName(c.Outer).ObjCName + identifier(c.Name)
		}
		return n.prefix + n.modulePrefix(c) + identifier(c.Name)
	}
	names := n.classNames
	if c.IsInterface() {
		names = n.protocolNames
	}

	var name objc.Name
	if o := c.Names.ObjCName; o != "" {
		if !c.Names.Exact && c.Outer == nil {
			o = n.prefix + o
		}
		name.ObjCName = names.getOrPut(c, func() string { return o })
		if binary := canonical(); binary != name.ObjCName && !names.nameTaken(binary) {
			name.BinaryName = binary
		}
	} else {
		name.ObjCName = names.getOrPut(c, canonical)
	}
	if swift != name.ObjCName {
		name.SwiftName = swift
	}
	n.names[c] = name
	return name
}

func (n *Namer) swiftBase(c *ir.ClassDecl) string {
	if c.Names.SwiftName != "" {
		return c.Names.SwiftName
	}
	simple := identifier(c.Name)
	if c.Names.ObjCName != "" {
		simple = c.Names.ObjCName
	}
	if c.Outer == nil {
		return n.modulePrefix(c) + simple
	}
	outer := n.ClassOrProtocolName(c.Outer)
	outerSwift := outer.SwiftName
	if outerSwift == "" {
		outerSwift = outer.ObjCName
	}
	// Swift cannot nest types in protocols or protocols in types.
	if c.IsInterface() || c.Outer.IsInterface() {
		return outerSwift + simple
	}
	return outerSwift + "." + simple
}

// FileClassName returns the names of the holder class of a file's
// top-level callables.
func (n *Namer) FileClassName(pkg, file string) objc.Name {
	key := pkg + "/" + file
	base := fileBaseName(file) + "Kt"
	objcName := n.fileNames.getOrPut(key, func() string { return n.prefix + base })
	swiftName := n.fileSwift.getOrPut(key, func() string { return base })
	name := objc.Name{ObjCName: objcName}
	if swiftName != objcName {
		name.SwiftName = swiftName
	}
	return name
}

// Selector returns the selector of a base method.
func (n *Namer) Selector(f *ir.Function) string {
	if p, ok := n.predefinedFor(f); ok {
		return n.selectors.put(f, p.objc)
	}
	return n.selectors.getOrPut(f, func() string { return n.selectorBase(f) })
}

// SwiftName returns the Swift name of a base method, e.g. "find(id:)".
func (n *Namer) SwiftName(f *ir.Function) string {
	if p, ok := n.predefinedFor(f); ok {
		return n.swiftMethods.put(f, p.swift)
	}
	return n.swiftMethods.getOrPut(f, func() string { return n.swiftBaseName(f) })
}

// predefinedFor returns the fixed names of overrides of the root object's
// equals, hashCode and toString.
func (n *Namer) predefinedFor(f *ir.Function) (predefined, bool) {
	if f.FuncKind != ir.KindMethod || f.Receiver != nil {
		return predefined{}, false
	}
	p, ok := predefinedSelectors[f.Name]
	if !ok || !overridesRoot(f, make(map[*ir.Function]bool)) {
		return predefined{}, false
	}
	return p, true
}

func overridesRoot(f *ir.Function, seen map[*ir.Function]bool) bool {
	if seen[f] {
		return false
	}
	seen[f] = true
	if f.Owner != nil && f.Owner.FqName() == ir.FqAny {
		return true
	}
	for _, o := range f.Overridden {
		if overridesRoot(o, seen) {
			return true
		}
	}
	return false
}

// mangledName returns the method name part of a selector.
func mangledName(f *ir.Function) string {
	var candidate string
	switch f.FuncKind {
	case ir.KindConstructor:
		return "init"
	case ir.KindGetter:
		candidate = propertyBaseName(f.Property)
	case ir.KindSetter:
		candidate = "set" + Capitalize(propertyBaseName(f.Property))
	default:
		candidate = f.Name
		if f.Names.ObjCName != "" {
			candidate = f.Names.ObjCName
		}
	}
	return mangleIfSpecialFamily(identifier(candidate))
}

// ParameterLabel returns the selector label of a mapped parameter.
func ParameterLabel(f *ir.Function, p bridge.ParameterBridge, count int) string {
	switch p.Kind {
	case bridge.ParamMapped:
		switch {
		case p.Receiver:
			return ""
		case f.FuncKind == ir.KindSetter:
			if count == 1 {
				return ""
			}
			return "value"
		default:
			return identifier(f.Params[p.Index].Name)
		}
	case bridge.ParamErrorOut:
		return "error"
	case bridge.ParamResultOut:
		return "result"
	case bridge.ParamSuspendCompletion:
		return "completionHandler"
	default:
		panic(errors.AssertionFailedf("unknown parameter kind %d", p.Kind))
	}
}

func (n *Namer) selectorBase(f *ir.Function) string {
	mb := n.bridger.BridgeMethod(f)
	s := mangledName(f)
	for i, p := range mb.Params {
		label := ParameterLabel(f, p, len(mb.Params))
		if i == 0 {
			switch {
			case p.Kind == bridge.ParamErrorOut, p.Kind == bridge.ParamResultOut:
				s += "AndReturn"
			case p.Kind == bridge.ParamSuspendCompletion, f.IsConstructor():
				s += "With"
			}
			s += Capitalize(label)
		} else {
			s += label
		}
		s += ":"
	}
	return s
}

func (n *Namer) swiftBaseName(f *ir.Function) string {
	mb := n.bridger.BridgeMethod(f)
	base := mangledName(f)
	if f.FuncKind == ir.KindMethod && f.Names.SwiftName != "" {
		// A full name with an argument list is used as written.
		if strings.Contains(f.Names.SwiftName, "(") {
			return f.Names.SwiftName
		}
		base = f.Names.SwiftName
	}
	s := base + "("
	for _, p := range mb.Params {
		var label string
		switch {
		case p.Kind == bridge.ParamErrorOut:
			continue
		case p.Kind == bridge.ParamMapped && (p.Receiver || f.FuncKind == ir.KindSetter):
			label = "_"
		default:
			label = ParameterLabel(f, p, len(mb.Params))
		}
		s += label + ":"
	}
	return s + ")"
}

// PropertyName returns the name of a base property.
func (n *Namer) PropertyName(p *ir.Property) string {
	return n.properties.getOrPut(p, func() string {
		return mangleIfSpecialFamily(identifier(propertyBaseName(p)))
	})
}

func propertyBaseName(p *ir.Property) string {
	if p.Names.ObjCName != "" {
		return p.Names.ObjCName
	}
	return p.Name
}

// EnumEntryName returns the class property name of an enum entry.
func (n *Namer) EnumEntryName(e *ir.EnumEntry) string {
	return n.entries.getOrPut(e, func() string {
		name := mangleIfSpecialFamily(lowerCamel(e.Name))
		if name == EntriesName || reservedSelectors[name] {
			name += "_"
		}
		return name
	})
}

// ObjectSelector returns the selector of the class method returning an
// object's single instance.
func (n *Namer) ObjectSelector(c *ir.ClassDecl) string {
	name := c.Name
	if name != "" {
		name = strings.ToLower(name[:1]) + name[1:]
	}
	name = mangleIfSpecialFamily(identifier(name))
	if reservedSelectors[name] || name == ObjectInstanceName {
		name += "_"
	}
	return name
}
