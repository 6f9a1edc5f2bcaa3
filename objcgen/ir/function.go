package ir

// Param is a value parameter of a function.
type Param struct {
	Name string
	Type *TypeRef
}

// Function represents a method, constructor or property accessor.
type Function struct {
	Name string

	// FuncKind is one of KindMethod, KindConstructor, KindGetter, KindSetter.
	FuncKind DeclKind

	// Owner is the declaring class; nil for top-level functions.
	Owner *ClassDecl

	// Package and File locate top-level functions.
	Package string
	File    string

	// Receiver is the extension receiver type, if any.
	Receiver *TypeRef

	Params []*Param

	// Returns is nil for functions returning the unit type.
	Returns *TypeRef

	Suspend bool

	// Throws lists the exception classes declared as crossing the boundary.
	Throws []*TypeRef

	// Overridden lists the declarations this function directly overrides.
	Overridden []*Function

	// Inherited marks a member materialized from a supertype rather than
	// declared in the owner.
	Inherited bool

	Exposed bool

	Names NameOverride

	// Property is set for getters and setters.
	Property *Property

	Deprecated *Deprecation

	Documentation Documentation

	Source Source
}

// Kind returns the function kind.
func (f *Function) Kind() DeclKind { return f.FuncKind }

// QualifiedName returns the owner-qualified function name.
func (f *Function) QualifiedName() string {
	name := f.Name
	switch f.FuncKind {
	case KindConstructor:
		name = "<init>"
	case KindGetter:
		if f.Property != nil {
			name = "<get-" + f.Property.Name + ">"
		}
	case KindSetter:
		if f.Property != nil {
			name = "<set-" + f.Property.Name + ">"
		}
	}
	switch {
	case f.Owner != nil:
		return f.Owner.FqName() + "." + name
	case f.Package != "":
		return f.Package + "." + name
	default:
		return name
	}
}

// ShouldBeExposed returns the upstream exposure flag.
func (f *Function) ShouldBeExposed() bool { return f.Exposed }

// Doc returns the function documentation.
func (f *Function) Doc() Documentation { return f.Documentation }

// Src returns the function source location.
func (f *Function) Src() Source { return f.Source }

func (*Function) sealed() {}
func (*Function) member() {}

// IsConstructor reports whether f is a constructor.
func (f *Function) IsConstructor() bool { return f.FuncKind == KindConstructor }

// IsAccessor reports whether f is a property getter or setter.
func (f *Function) IsAccessor() bool {
	return f.FuncKind == KindGetter || f.FuncKind == KindSetter
}

// IsTopLevel reports whether f is declared outside any class.
func (f *Function) IsTopLevel() bool { return f.Owner == nil }

// ReturnsUnit reports whether f returns the unit type.
func (f *Function) ReturnsUnit() bool { return f.Returns == nil }

// DoesThrow reports whether f declares exceptions crossing the boundary.
func (f *Function) DoesThrow() bool { return len(f.Throws) > 0 }

// Property represents a property with its accessors.
type Property struct {
	Name string

	// Owner is the declaring class; nil for top-level properties.
	Owner *ClassDecl

	Package string
	File    string

	Receiver *TypeRef

	Type *TypeRef

	Getter *Function

	// Setter is nil for read-only properties.
	Setter *Function

	Overridden []*Property

	Inherited bool

	Exposed bool

	Names NameOverride

	Deprecated *Deprecation

	Documentation Documentation

	Source Source
}

// Kind returns KindProperty.
func (p *Property) Kind() DeclKind { return KindProperty }

// QualifiedName returns the owner-qualified property name.
func (p *Property) QualifiedName() string {
	switch {
	case p.Owner != nil:
		return p.Owner.FqName() + "." + p.Name
	case p.Package != "":
		return p.Package + "." + p.Name
	default:
		return p.Name
	}
}

// ShouldBeExposed returns the upstream exposure flag.
func (p *Property) ShouldBeExposed() bool { return p.Exposed }

// Doc returns the property documentation.
func (p *Property) Doc() Documentation { return p.Documentation }

// Src returns the property source location.
func (p *Property) Src() Source { return p.Source }

func (*Property) sealed() {}
func (*Property) member() {}

// IsTopLevel reports whether p is declared outside any class.
func (p *Property) IsTopLevel() bool { return p.Owner == nil }

// ensureAccessors materializes a missing getter and binds both accessors to
// the property's owner, receiver and type.
func (p *Property) ensureAccessors() {
	if p.Getter == nil {
		p.Getter = &Function{
			Name:      p.Name,
			FuncKind:  KindGetter,
			Exposed:   p.Exposed,
			Inherited: p.Inherited,
		}
	}
	for _, acc := range []*Function{p.Getter, p.Setter} {
		if acc == nil {
			continue
		}
		acc.Property = p
		if acc != p.Getter {
			acc.FuncKind = KindSetter
		} else {
			acc.FuncKind = KindGetter
		}
		acc.Owner = p.Owner
		acc.Package = p.Package
		acc.File = p.File
		acc.Receiver = p.Receiver
		acc.Inherited = acc.Inherited || p.Inherited
		if acc.Name == "" {
			acc.Name = p.Name
		}
	}
	p.Getter.Returns = p.Type
	p.Getter.Params = nil
	if p.Setter != nil {
		p.Setter.Returns = nil
		p.Setter.Params = []*Param{{Name: "value", Type: p.Type}}
	}
}

// linkAccessorOverrides derives accessor overrides from property overrides.
func (p *Property) linkAccessorOverrides() {
	if len(p.Getter.Overridden) == 0 {
		for _, o := range p.Overridden {
			if o.Getter != nil {
				p.Getter.Overridden = append(p.Getter.Overridden, o.Getter)
			}
		}
	}
	if p.Setter != nil && len(p.Setter.Overridden) == 0 {
		for _, o := range p.Overridden {
			if o.Setter != nil {
				p.Setter.Overridden = append(p.Setter.Overridden, o.Setter)
			}
		}
	}
}
