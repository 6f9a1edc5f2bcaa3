package ir

// Well-known classes of the standard module.
const (
	StdModule = "std"

	FqAny                   = "std.Any"
	FqUnit                  = "std.Unit"
	FqString                = "std.String"
	FqThrowable             = "std.Throwable"
	FqException             = "std.Exception"
	FqCancellationException = "std.CancellationException"
	FqEnum                  = "std.Enum"
	FqIterable              = "std.collections.Iterable"
	FqCollection            = "std.collections.Collection"
	FqList                  = "std.collections.List"
	FqMutableList           = "std.collections.MutableList"
	FqSet                   = "std.collections.Set"
	FqMutableSet            = "std.collections.MutableSet"
	FqMap                   = "std.collections.Map"
	FqMutableMap            = "std.collections.MutableMap"
)

// File groups the top-level declarations of one source file.
type File struct {
	// Name is the file name, e.g. "Utils.kt" or "utils.go".
	Name string

	// Package is the dotted package name of the file.
	Package string

	Classes []*ClassDecl

	// Members holds top-level functions and properties.
	Members []Member
}

// Module is a unit of compilation whose declarations are translated.
type Module struct {
	Name  string
	Files []*File

	ids       map[string]Member
	overrides []overrideRef
}

// Universe is a linked set of modules plus the standard module.
// Classes of the standard module are only translated when referenced.
type Universe struct {
	// Modules are the modules whose exposed declarations are translated.
	Modules []*Module

	// Std is the standard module, always present.
	Std *Module

	classes  map[string]*ClassDecl
	order    []*ClassDecl
	problems []*ValidationError
}

// NewUniverse links the given modules with the standard module.
// Linking resolves class names, owner back-references and property
// accessors. Problems found while linking are reported by Validate.
func NewUniverse(modules ...*Module) *Universe {
	u := &Universe{
		Modules: modules,
		Std:     Stdlib(),
		classes: make(map[string]*ClassDecl),
	}
	all := append([]*Module{u.Std}, modules...)
	for _, m := range all {
		for _, f := range m.Files {
			for _, c := range f.Classes {
				u.index(m, f, c, nil)
			}
		}
	}
	for _, m := range all {
		for _, f := range m.Files {
			for _, mem := range f.Members {
				u.linkMember(mem, nil, f)
			}
		}
	}
	for _, c := range u.order {
		u.linkClass(c)
	}
	u.linkOverrides()
	u.forEachProperty(func(p *Property) { p.linkAccessorOverrides() })
	return u
}

// linkOverrides resolves override references recorded by DecodeModule.
// A member's default id is its qualified name; overloads sharing a
// qualified name must be referenced by explicit id.
func (u *Universe) linkOverrides() {
	ids := make(map[string]Member)
	ambiguous := make(map[string]bool)
	add := func(m Member) {
		id := m.QualifiedName()
		if _, ok := ids[id]; ok {
			ambiguous[id] = true
		}
		ids[id] = m
	}
	all := append([]*Module{u.Std}, u.Modules...)
	for _, m := range all {
		for _, f := range m.Files {
			for _, mem := range f.Members {
				add(mem)
			}
		}
	}
	for _, c := range u.order {
		for _, mem := range c.Members {
			add(mem)
		}
	}
	for _, m := range all {
		for id, mem := range m.ids {
			ids[id] = mem
			delete(ambiguous, id)
		}
	}
	for _, m := range all {
		for _, ref := range m.overrides {
			for _, id := range ref.targets {
				target, ok := ids[id]
				switch {
				case !ok:
					u.problems = append(u.problems, &ValidationError{
						Code:    "missing_override_target",
						Message: ref.member.QualifiedName() + " overrides unknown member " + id,
					})
					continue
				case ambiguous[id]:
					u.problems = append(u.problems, &ValidationError{
						Code:    "ambiguous_override_target",
						Message: ref.member.QualifiedName() + " overrides ambiguous member " + id + "; use an explicit id",
					})
					continue
				}
				switch m := ref.member.(type) {
				case *Function:
					if t, ok := target.(*Function); ok {
						m.Overridden = append(m.Overridden, t)
						continue
					}
				case *Property:
					if t, ok := target.(*Property); ok {
						m.Overridden = append(m.Overridden, t)
						continue
					}
				}
				u.problems = append(u.problems, &ValidationError{
					Code:    "override_kind_mismatch",
					Message: ref.member.QualifiedName() + " cannot override " + id,
				})
			}
		}
	}
}

// Lookup returns the class with the given fully-qualified name, or nil.
func (u *Universe) Lookup(fqName string) *ClassDecl {
	return u.classes[fqName]
}

// MustLookup is like Lookup but panics when the class is missing.
// It is intended for well-known standard classes.
func (u *Universe) MustLookup(fqName string) *ClassDecl {
	c := u.classes[fqName]
	if c == nil {
		panic("ir: unknown class " + fqName)
	}
	return c
}

// Classes returns all linked classes in discovery order.
func (u *Universe) Classes() []*ClassDecl {
	return u.order
}

func (u *Universe) index(m *Module, f *File, c *ClassDecl, outer *ClassDecl) {
	c.Outer = outer
	if c.Module == "" {
		c.Module = m.Name
	}
	if c.File == "" {
		c.File = f.Name
	}
	if c.Package == "" {
		c.Package = f.Package
	}
	fq := c.FqName()
	if _, dup := u.classes[fq]; dup {
		u.problems = append(u.problems, &ValidationError{
			Code:    "duplicate_class",
			Message: "duplicate class name: " + fq,
		})
	} else {
		u.classes[fq] = c
	}
	u.order = append(u.order, c)
	for _, n := range c.Nested {
		u.index(m, f, n, c)
	}
}

func (u *Universe) linkClass(c *ClassDecl) {
	if c.IsEnum() && c.SuperClass == nil && c.FqName() != FqEnum {
		if enum := u.classes[FqEnum]; enum != nil {
			c.SuperClass = ClassOf(enum, ClassOf(c))
		}
	}
	u.resolve(c.SuperClass, c.FqName())
	for _, s := range c.SuperInterfaces {
		u.resolve(s, c.FqName())
	}
	for _, ctor := range c.Constructors {
		ctor.FuncKind = KindConstructor
		ctor.Owner = c
		if ctor.Name == "" {
			ctor.Name = "<init>"
		}
		u.linkFunction(ctor)
	}
	for _, mem := range c.Members {
		u.linkMember(mem, c, nil)
	}
	for _, e := range c.EnumEntries {
		e.Owner = c
	}
}

func (u *Universe) linkMember(mem Member, owner *ClassDecl, f *File) {
	switch m := mem.(type) {
	case *Function:
		m.Owner = owner
		if f != nil {
			m.Package, m.File = f.Package, f.Name
		}
		if m.FuncKind != KindConstructor {
			m.FuncKind = KindMethod
		}
		u.linkFunction(m)
	case *Property:
		m.Owner = owner
		if f != nil {
			m.Package, m.File = f.Package, f.Name
		}
		m.ensureAccessors()
		u.resolve(m.Type, m.QualifiedName())
		u.resolve(m.Receiver, m.QualifiedName())
		if m.Type == nil {
			u.problems = append(u.problems, &ValidationError{
				Code:    "missing_property_type",
				Message: "property " + m.QualifiedName() + " has no type",
			})
		}
	}
}

func (u *Universe) linkFunction(fn *Function) {
	ctx := fn.QualifiedName()
	u.resolve(fn.Receiver, ctx)
	u.resolve(fn.Returns, ctx)
	for _, p := range fn.Params {
		u.resolve(p.Type, ctx)
	}
	for _, t := range fn.Throws {
		u.resolve(t, ctx)
	}
}

func (u *Universe) resolve(t *TypeRef, context string) {
	if t == nil {
		return
	}
	switch t.Kind {
	case TypeClass:
		if t.Class == nil {
			t.Class = u.classes[t.ClassName]
			if t.Class == nil {
				u.problems = append(u.problems, &ValidationError{
					Code:    "missing_type_reference",
					Message: context + " references unknown type: " + t.ClassName,
				})
			}
		}
		for _, a := range t.Args {
			u.resolve(a, context)
		}
	case TypeFunction:
		for _, p := range t.Params {
			u.resolve(p, context)
		}
		u.resolve(t.Result, context)
	}
}

func (u *Universe) forEachProperty(fn func(*Property)) {
	visit := func(members []Member) {
		for _, m := range members {
			if p, ok := m.(*Property); ok {
				fn(p)
			}
		}
	}
	for _, m := range append([]*Module{u.Std}, u.Modules...) {
		for _, f := range m.Files {
			visit(f.Members)
		}
	}
	for _, c := range u.order {
		visit(c.Members)
	}
}

// Stdlib returns a fresh copy of the standard module.
func Stdlib() *Module {
	param := func(n string) []TypeParameter { return []TypeParameter{{Name: n}} }
	iface := func(name string, tps []TypeParameter, supers ...*TypeRef) *ClassDecl {
		return &ClassDecl{
			Name:            name,
			ClassKind:       KindInterface,
			Modality:        ModalityAbstract,
			TypeParameters:  tps,
			SuperInterfaces: supers,
		}
	}

	boolean := Value(ValueBool)
	anyDecl := &ClassDecl{
		Name:      "Any",
		ClassKind: KindClass,
		Modality:  ModalityOpen,
		Members: []Member{
			&Function{Name: "equals", Params: []*Param{{Name: "other", Type: Named(FqAny).OrNull()}}, Returns: boolean},
			&Function{Name: "hashCode", Returns: Value(ValueInt)},
			&Function{Name: "toString", Returns: Named(FqString)},
		},
	}
	throwableCtors := func() []*Function {
		return []*Function{
			{Exposed: true},
			{Exposed: true, Params: []*Param{{Name: "message", Type: Named(FqString).OrNull()}}},
		}
	}
	throwable := &ClassDecl{
		Name:         "Throwable",
		ClassKind:    KindClass,
		Modality:     ModalityOpen,
		Exposed:      true,
		Constructors: throwableCtors(),
		Members: []Member{
			&Property{Name: "message", Type: Named(FqString).OrNull(), Exposed: true},
			&Property{Name: "cause", Type: Named(FqThrowable).OrNull(), Exposed: true},
		},
	}
	exception := &ClassDecl{
		Name:         "Exception",
		ClassKind:    KindClass,
		Modality:     ModalityOpen,
		Exposed:      true,
		SuperClass:   Named(FqThrowable),
		Constructors: throwableCtors(),
	}
	cancellation := &ClassDecl{
		Name:         "CancellationException",
		ClassKind:    KindClass,
		Modality:     ModalityOpen,
		Exposed:      true,
		SuperClass:   Named(FqException),
		Constructors: throwableCtors(),
	}
	enum := &ClassDecl{
		Name:           "Enum",
		ClassKind:      KindClass,
		Modality:       ModalityAbstract,
		Exposed:        true,
		TypeParameters: param("E"),
		Constructors: []*Function{{Exposed: true, Params: []*Param{
			{Name: "name", Type: Named(FqString)},
			{Name: "ordinal", Type: Value(ValueInt)},
		}}},
		Members: []Member{
			&Property{Name: "name", Type: Named(FqString), Exposed: true},
			&Property{Name: "ordinal", Type: Value(ValueInt), Exposed: true},
		},
	}
	unit := &ClassDecl{Name: "Unit", ClassKind: KindObject, Exposed: true}
	str := &ClassDecl{Name: "String", ClassKind: KindClass, Modality: ModalityFinal}

	return &Module{
		Name: StdModule,
		Files: []*File{
			{
				Name:    "Core.std",
				Package: "std",
				Classes: []*ClassDecl{anyDecl, unit, str, throwable, exception, cancellation, enum},
			},
			{
				Name:    "Collections.std",
				Package: "std.collections",
				Classes: []*ClassDecl{
					iface("Iterable", param("T")),
					iface("Collection", param("E"), Named(FqIterable, TypeParam("E"))),
					iface("List", param("E"), Named(FqCollection, TypeParam("E"))),
					iface("MutableList", param("E"), Named(FqList, TypeParam("E"))),
					iface("Set", param("E"), Named(FqCollection, TypeParam("E"))),
					iface("MutableSet", param("E"), Named(FqSet, TypeParam("E"))),
					iface("Map", []TypeParameter{{Name: "K"}, {Name: "V"}}),
					iface("MutableMap", []TypeParameter{{Name: "K"}, {Name: "V"}}, Named(FqMap, TypeParam("K"), TypeParam("V"))),
				},
			},
		},
	}
}
