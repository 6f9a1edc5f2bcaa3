package objc

// Stub is a declaration emitted into the header.
type Stub interface {
	// StubName returns the name of the declared entity: the class, protocol
	// or property name, or the first selector part of a method.
	StubName() string
	stub()
}

// Comment is a documentation comment attached to a stub.
type Comment struct {
	Lines []string
}

// Parameter is a method parameter.
type Parameter struct {
	Name string
	Type Type
}

// Method declares an instance or class method.
type Method struct {
	Comment *Comment

	IsInstance bool
	ReturnType Type

	// Selectors holds one part per parameter ("initWithX:", "y:"), or a
	// single part without a colon for methods without parameters.
	Selectors  []string
	Parameters []Parameter

	// Attributes are rendered as __attribute__((...)) after the declaration.
	Attributes []string
}

// StubName returns the first selector part.
func (m *Method) StubName() string {
	if len(m.Selectors) == 0 {
		return ""
	}
	return m.Selectors[0]
}

// Selector returns the full selector, e.g. "initWithX:y:".
func (m *Method) Selector() string {
	var s string
	for _, part := range m.Selectors {
		s += part
	}
	return s
}

// Property declares a property.
type Property struct {
	Comment *Comment

	Name string
	Type Type

	// PropertyAttributes go inside @property (...), e.g. "class", "readonly"
	// or "getter=isEmpty".
	PropertyAttributes []string

	// DeclarationAttributes are rendered as __attribute__((...)).
	DeclarationAttributes []string
}

// StubName returns the property name.
func (p *Property) StubName() string { return p.Name }

// Interface declares a class or, when Category is set, a category of an
// existing class.
type Interface struct {
	Comment *Comment

	Name     string
	Generics []string

	// Category names the category; SuperClass must be empty for categories.
	Category string

	SuperClass         string
	SuperClassGenerics []NonNullReferenceType
	SuperProtocols     []string

	// Attributes are rendered on separate lines before @interface.
	Attributes []string

	Members []Stub
}

// StubName returns the class name.
func (i *Interface) StubName() string { return i.Name }

// IsCategory reports whether the interface extends an existing class.
func (i *Interface) IsCategory() bool { return i.Category != "" }

// Protocol declares a protocol.
type Protocol struct {
	Comment *Comment

	Name           string
	SuperProtocols []string
	Attributes     []string
	Members        []Stub
}

// StubName returns the protocol name.
func (p *Protocol) StubName() string { return p.Name }

func (*Method) stub()    {}
func (*Property) stub()  {}
func (*Interface) stub() {}
func (*Protocol) stub()  {}
