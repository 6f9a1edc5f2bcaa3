package ir

// Documentation holds documentation comments extracted from source.
type Documentation struct {
	// Summary is the first sentence or paragraph.
	Summary string

	// Body is the complete documentation text, including the summary.
	Body string
}

// IsZero returns true if the documentation is empty.
func (d Documentation) IsZero() bool {
	return d.Summary == "" && d.Body == ""
}

// Source represents source code location information.
type Source struct {
	File   string
	Line   int
	Column int
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Column == 0
}

// DeprecationLevel mirrors the severity of a deprecation marker.
type DeprecationLevel int

const (
	DeprecationWarning DeprecationLevel = iota
	DeprecationError
	DeprecationHidden
)

// Deprecation is non-nil on declarations marked deprecated.
type Deprecation struct {
	Message string
	Level   DeprecationLevel
}

// Warning represents a non-fatal modeling issue encountered during generation.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// Source is the location that triggered the warning, if applicable.
	Source *Source

	// Decl is the qualified name of the declaration that triggered the
	// warning, if any.
	Decl string
}

// NameOverride carries explicit interop names attached to a declaration.
type NameOverride struct {
	// ObjCName replaces the generated Objective-C name.
	ObjCName string

	// SwiftName replaces the generated Swift name.
	SwiftName string

	// Exact suppresses prefixing of ObjCName for classes.
	Exact bool
}

// IsZero returns true if no override is present.
func (n NameOverride) IsZero() bool {
	return n.ObjCName == "" && n.SwiftName == "" && !n.Exact
}
