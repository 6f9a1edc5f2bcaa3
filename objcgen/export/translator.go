package export

import (
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/objcbridge/objcgen/bridge"
	"github.com/broady/objcbridge/objcgen/ir"
	"github.com/broady/objcbridge/objcgen/namer"
	"github.com/broady/objcbridge/objcgen/objc"
)

// Translator builds the stubs of declarations and appends them to the pass
// context.
type Translator struct {
	ctx *Context
}

// classScope returns the generic scope of the members of c.
func (t *Translator) classScope(c *ir.ClassDecl) *bridge.Scope {
	if c == nil || c.IsInterface() || !t.ctx.Options.Generics || len(c.TypeParameters) == 0 {
		return nil
	}
	return &bridge.Scope{Generics: typeParameterNames(c)}
}

func typeParameterNames(c *ir.ClassDecl) []string {
	names := make([]string, len(c.TypeParameters))
	for i, tp := range c.TypeParameters {
		names[i] = tp.Name
	}
	return names
}

// TranslateClass emits the interface or protocol of c unless it was already
// translated. Superclasses and super-protocols are translated first so that
// their stubs precede c's.
func (t *Translator) TranslateClass(c *ir.ClassDecl) {
	ctx := t.ctx
	if ctx.generated[c] || c.IsForeign() {
		return
	}
	ctx.generated[c] = true
	if c.IsInterface() {
		t.translateProtocol(c)
		return
	}

	name := ctx.namer.ClassOrProtocolName(c)
	superName, superArgs, superDecl := t.superClass(c)
	protocols := t.superProtocols(c)

	prev := ctx.current
	ctx.current = c
	defer func() { ctx.current = prev }()

	scope := t.classScope(c)
	var members []objc.Stub

	present := make(map[string]bool)
	for _, ctor := range c.Constructors {
		if !ctor.Exposed {
			continue
		}
		sel := ctx.namer.Selector(ctor)
		present[sel] = true
		t.exportThrown(ctor)
		members = append(members, t.BuildMethod(ctor, ctor, scope, false))
		if sel == "init" {
			members = append(members, &objc.Method{
				ReturnType: objc.Instance,
				Selectors:  []string{"new"},
				Attributes: []string{objc.SwiftUnavailableAttribute("use object initializers instead")},
			})
		}
	}

	if c.IsObject() || c.IsEnum() {
		members = append(members,
			&objc.Method{
				ReturnType: objc.Instance,
				Selectors:  []string{"alloc"},
				Attributes: []string{"unavailable"},
			},
			&objc.Method{
				ReturnType: objc.Instance,
				Selectors:  []string{"allocWithZone:"},
				Parameters: []objc.Parameter{{Name: "zone", Type: &objc.RawType{Text: "struct _NSZone *"}}},
				Attributes: []string{"unavailable"},
			},
		)
	}

	if superDecl != nil {
		for _, ctor := range superDecl.Constructors {
			if !ctor.Exposed {
				continue
			}
			sel := ctx.namer.Selector(ctor)
			if present[sel] {
				continue
			}
			members = append(members, t.BuildMethod(ctor, ctor, scope, true))
			if sel == "init" {
				members = append(members, &objc.Method{
					ReturnType: objc.Instance,
					Selectors:  []string{"new"},
					Attributes: []string{"unavailable"},
				})
			}
		}
	}

	var self objc.ReferenceType
	if c.IsObject() || c.IsEnum() {
		self = ctx.mapper.MapReferenceType(c.DefaultType(), scope)
	}
	if c.IsObject() {
		members = append(members,
			&objc.Method{
				ReturnType: objc.Instance,
				Selectors:  []string{ctx.namer.ObjectSelector(c)},
				Attributes: []string{objc.SwiftNameAttribute("init()")},
			},
			&objc.Property{
				Name:               namer.ObjectInstanceName,
				Type:               self,
				PropertyAttributes: []string{"class", "readonly"},
			},
		)
	}
	if comp := c.Companion(); comp != nil && comp.Exposed {
		members = append(members, &objc.Property{
			Name:               namer.CompanionName,
			Type:               ctx.mapper.MapReferenceType(comp.DefaultType(), scope),
			PropertyAttributes: []string{"class", "readonly"},
		})
	}
	if c.IsEnum() {
		for _, e := range c.EnumEntries {
			members = append(members, &objc.Property{
				Comment:            t.docComment(e.Documentation),
				Name:               ctx.namer.EnumEntryName(e),
				Type:               self,
				PropertyAttributes: []string{"class", "readonly"},
			})
		}
		entry, ok := self.(objc.NonNullReferenceType)
		if !ok {
			panic(errors.AssertionFailedf("enum %s mapped to nullable type", c.FqName()))
		}
		members = append(members, &objc.Property{
			Name:               namer.EntriesName,
			Type:               &objc.ClassType{Name: "NSArray", TypeArgs: []objc.NonNullReferenceType{entry}},
			PropertyAttributes: []string{"class", "readonly"},
		})
	}

	members = append(members, t.classMembers(c)...)

	var attrs []string
	if c.IsFinal() {
		attrs = append(attrs, objc.SubclassingRestrictedAttribute)
	}
	attrs = append(attrs, name.Attributes()...)
	if a := deprecationAttribute(c.Deprecated); a != "" {
		attrs = append(attrs, a)
	}

	iface := &objc.Interface{
		Comment:            t.docComment(c.Documentation),
		Name:               name.ObjCName,
		SuperClass:         superName,
		SuperClassGenerics: superArgs,
		SuperProtocols:     protocols,
		Attributes:         attrs,
		Members:            members,
	}
	if scope != nil {
		iface.Generics = scope.Generics
	}
	ctx.emit(iface)
	ctx.log.Debug("translated class", zap.String("class", c.FqName()), zap.String("objc", name.ObjCName))
}

// superClass returns the name and type arguments of the nearest exposed
// superclass of c, translating it first. Classes without one extend the
// root Base class; the returned declaration is then nil.
func (t *Translator) superClass(c *ir.ClassDecl) (string, []objc.NonNullReferenceType, *ir.ClassDecl) {
	ctx := t.ctx
	scope := t.classScope(c)
	st := c.SuperClass
	seen := make(map[*ir.ClassDecl]bool)
	for st != nil && st.Class != nil && !seen[st.Class] {
		sc := st.Class
		seen[sc] = true
		if sc.IsForeign() {
			return sc.Foreign, nil, nil
		}
		if sc.Exposed && !sc.Hidden && sc.FqName() != ir.FqAny && !ctx.bridger.Mappers.IsSpecialMapped(sc) {
			t.TranslateClass(sc)
			name := ctx.ReferenceClass(sc)
			var args []objc.NonNullReferenceType
			if ctx.Options.Generics {
				for i := range sc.TypeParameters {
					if i < len(st.Args) && st.Args[i] != nil {
						args = append(args, ctx.mapper.MapNonNull(st.Args[i], scope))
					} else {
						args = append(args, objc.ID)
					}
				}
			}
			return name, args, sc
		}
		supers := ir.DirectSupertypes(st)
		if sc.SuperClass == nil || len(supers) == 0 {
			break
		}
		st = supers[0]
	}
	return ctx.namer.Base().ObjCName, nil, nil
}

// superProtocols returns the protocols adopted by c, translating them first.
// Non-exposed interfaces are skipped in favor of their own supertypes.
func (t *Translator) superProtocols(c *ir.ClassDecl) []string {
	ctx := t.ctx
	var names []string
	seen := make(map[*ir.ClassDecl]bool)
	var visit func(ifaces []*ir.ClassDecl)
	visit = func(ifaces []*ir.ClassDecl) {
		for _, i := range ifaces {
			if seen[i] {
				continue
			}
			seen[i] = true
			switch {
			case i.IsForeign():
				names = append(names, i.Foreign)
			case i.Hidden, ctx.bridger.Mappers.IsSpecialMapped(i):
			case i.Exposed:
				t.TranslateClass(i)
				names = append(names, ctx.ReferenceProtocol(i))
			default:
				visit(i.SuperInterfaceDecls())
			}
		}
	}
	visit(c.SuperInterfaceDecls())
	return names
}

// translateProtocol emits the protocol of interface c. Protocols inherit
// from their super-protocols, so only base members are declared.
func (t *Translator) translateProtocol(c *ir.ClassDecl) {
	ctx := t.ctx
	name := ctx.namer.ClassOrProtocolName(c)
	protocols := t.superProtocols(c)

	prev := ctx.current
	ctx.current = c
	defer func() { ctx.current = prev }()

	var members []objc.Stub
	for _, f := range c.Functions() {
		if !isClassMember(f) || !isBaseMethod(f) {
			continue
		}
		t.exportThrown(f)
		members = append(members, t.BuildMethod(f, f, nil, false))
	}
	for _, p := range c.Properties() {
		if !p.Exposed || p.Receiver != nil {
			continue
		}
		if isBaseProperty(p) {
			members = append(members, t.BuildProperty(p, p, nil))
		}
		if s := standaloneSetter(p); s != nil {
			members = append(members, t.BuildMethod(s, s, nil, false))
		}
	}

	attrs := name.Attributes()
	if a := deprecationAttribute(c.Deprecated); a != "" {
		attrs = append(attrs, a)
	}
	ctx.emit(&objc.Protocol{
		Comment:        t.docComment(c.Documentation),
		Name:           name.ObjCName,
		SuperProtocols: protocols,
		Attributes:     attrs,
		Members:        members,
	})
	ctx.log.Debug("translated protocol", zap.String("class", c.FqName()), zap.String("objc", name.ObjCName))
}

// classMembers returns the member stubs of class c: methods first, then
// properties, each minus the stubs its overridden members already declare.
func (t *Translator) classMembers(c *ir.ClassDecl) []objc.Stub {
	var out []objc.Stub
	for _, f := range c.Functions() {
		if !isClassMember(f) {
			continue
		}
		if !f.Inherited {
			t.exportThrown(f)
		}
		out = append(out, t.declaredOrInheritedMethods(f)...)
	}
	for _, p := range c.Properties() {
		if !p.Exposed || p.Receiver != nil {
			continue
		}
		out = append(out, t.declaredOrInheritedProperties(p)...)
		if s := standaloneSetter(p); s != nil {
			out = append(out, t.declaredOrInheritedMethods(s)...)
		}
	}
	return out
}

// isClassMember reports whether f is declared as an Objective-C method of
// its class. Member extensions are not exported.
func isClassMember(f *ir.Function) bool {
	return f.Exposed && f.Receiver == nil && f.FuncKind == ir.KindMethod
}

// standaloneSetter returns the setter of p when it must be declared as a
// method: p overrides a read-only property, so its setter has no base.
func standaloneSetter(p *ir.Property) *ir.Function {
	s := p.Setter
	if s == nil || !s.Exposed || !isBaseMethod(s) || isBaseProperty(p) {
		return nil
	}
	return s
}

// TranslateExtensions emits the category of c holding top-level extension
// members whose receiver is c.
func (t *Translator) TranslateExtensions(c *ir.ClassDecl, members []ir.Member) {
	ctx := t.ctx
	var name string
	if c.IsForeign() {
		name = c.Foreign
	} else {
		t.TranslateClass(c)
		name = ctx.ReferenceClass(c)
	}

	prev := ctx.current
	ctx.current = nil
	defer func() { ctx.current = prev }()

	ctx.emit(&objc.Interface{
		Name:     name,
		Category: "Extensions",
		Members:  t.topLevelMembers(members),
	})
}

// TranslateFile emits the holder class of a file's top-level callables.
func (t *Translator) TranslateFile(pkg, file string, members []ir.Member) {
	ctx := t.ctx
	name := ctx.namer.FileClassName(pkg, file)

	prev := ctx.current
	ctx.current = nil
	defer func() { ctx.current = prev }()

	attrs := append([]string{objc.SubclassingRestrictedAttribute}, name.Attributes()...)
	ctx.emit(&objc.Interface{
		Name:       name.ObjCName,
		SuperClass: ctx.namer.Base().ObjCName,
		Attributes: attrs,
		Members:    t.topLevelMembers(members),
	})
	ctx.log.Debug("translated file", zap.String("file", pkg+"/"+file), zap.String("objc", name.ObjCName))
}

func (t *Translator) topLevelMembers(members []ir.Member) []objc.Stub {
	var out []objc.Stub
	for _, m := range members {
		switch m := m.(type) {
		case *ir.Function:
			t.exportThrown(m)
			out = append(out, t.BuildMethod(m, m, nil, false))
		case *ir.Property:
			if t.isObjCProperty(m) {
				out = append(out, t.BuildProperty(m, m, nil))
				continue
			}
			out = append(out, t.BuildMethod(m.Getter, m.Getter, nil, false))
			if m.Setter != nil && m.Setter.Exposed {
				out = append(out, t.BuildMethod(m.Setter, m.Setter, nil, false))
			}
		default:
			panic(errors.AssertionFailedf("unknown member type %T", m))
		}
	}
	return out
}

// isObjCProperty reports whether p can be declared as a property: it has no
// receiver or belongs to a category.
func (t *Translator) isObjCProperty(p *ir.Property) bool {
	return p.Receiver == nil || t.ctx.bridger.IsCategoryMember(p.Getter)
}

func deprecationAttribute(d *ir.Deprecation) string {
	if d == nil {
		return ""
	}
	if d.Level == ir.DeprecationWarning {
		return objc.DeprecatedAttribute(d.Message)
	}
	return objc.UnavailableAttribute(d.Message)
}

// docComment returns the documentation comment when comments are enabled.
func (t *Translator) docComment(doc ir.Documentation) *objc.Comment {
	lines := t.docLines(doc)
	if len(lines) == 0 {
		return nil
	}
	return &objc.Comment{Lines: lines}
}

func (t *Translator) docLines(doc ir.Documentation) []string {
	if !t.ctx.Options.EmitComments {
		return nil
	}
	text := strings.TrimSpace(doc.Body)
	if text == "" {
		text = strings.TrimSpace(doc.Summary)
	}
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		// A "*/" inside the text would end the comment early.
		lines[i] = strings.ReplaceAll(strings.TrimRight(l, " \t"), "*/", "*\\/")
	}
	return lines
}
