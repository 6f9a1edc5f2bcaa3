package ir

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Format identifies the serialization of a declaration graph file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatForPath picks a format from a file extension.
func FormatForPath(path string) (Format, bool) {
	switch {
	case strings.HasSuffix(path, ".json"):
		return FormatJSON, true
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return FormatYAML, true
	default:
		return 0, false
	}
}

// The graph file schema. Types are written in the notation accepted by
// ParseType. Members override other members by id; the default id of a
// member is its qualified name, and overloads set an explicit id.

type moduleDoc struct {
	Name  string    `json:"name" yaml:"name"`
	Files []fileDoc `json:"files" yaml:"files"`
}

type fileDoc struct {
	Name    string      `json:"name" yaml:"name"`
	Package string      `json:"package" yaml:"package"`
	Classes []classDoc  `json:"classes,omitempty" yaml:"classes,omitempty"`
	Members []memberDoc `json:"members,omitempty" yaml:"members,omitempty"`
}

type classDoc struct {
	Name            string          `json:"name" yaml:"name"`
	Kind            string          `json:"kind,omitempty" yaml:"kind,omitempty"`
	Modality        string          `json:"modality,omitempty" yaml:"modality,omitempty"`
	TypeParameters  []string        `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty"`
	SuperClass      string          `json:"superClass,omitempty" yaml:"superClass,omitempty"`
	SuperInterfaces []string        `json:"superInterfaces,omitempty" yaml:"superInterfaces,omitempty"`
	Exposed         *bool           `json:"exposed,omitempty" yaml:"exposed,omitempty"`
	Hidden          bool            `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Inline          bool            `json:"inline,omitempty" yaml:"inline,omitempty"`
	Foreign         string          `json:"foreign,omitempty" yaml:"foreign,omitempty"`
	ObjCName        string          `json:"objcName,omitempty" yaml:"objcName,omitempty"`
	SwiftName       string          `json:"swiftName,omitempty" yaml:"swiftName,omitempty"`
	ExactName       bool            `json:"exactName,omitempty" yaml:"exactName,omitempty"`
	Deprecated      *deprecationDoc `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Doc             string          `json:"doc,omitempty" yaml:"doc,omitempty"`
	Line            int             `json:"line,omitempty" yaml:"line,omitempty"`
	Constructors    []memberDoc     `json:"constructors,omitempty" yaml:"constructors,omitempty"`
	Members         []memberDoc     `json:"members,omitempty" yaml:"members,omitempty"`
	Entries         []string        `json:"entries,omitempty" yaml:"entries,omitempty"`
	Nested          []classDoc      `json:"nested,omitempty" yaml:"nested,omitempty"`
}

type memberDoc struct {
	// Kind is "function" or "property"; it defaults to "property" when
	// Type is set and "function" otherwise.
	Kind          string          `json:"kind,omitempty" yaml:"kind,omitempty"`
	ID            string          `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string          `json:"name,omitempty" yaml:"name,omitempty"`
	Receiver      string          `json:"receiver,omitempty" yaml:"receiver,omitempty"`
	Params        []paramDoc      `json:"params,omitempty" yaml:"params,omitempty"`
	Returns       string          `json:"returns,omitempty" yaml:"returns,omitempty"`
	Suspend       bool            `json:"suspend,omitempty" yaml:"suspend,omitempty"`
	Throws        []string        `json:"throws,omitempty" yaml:"throws,omitempty"`
	Type          string          `json:"type,omitempty" yaml:"type,omitempty"`
	Mutable       bool            `json:"mutable,omitempty" yaml:"mutable,omitempty"`
	SetterExposed *bool           `json:"setterExposed,omitempty" yaml:"setterExposed,omitempty"`
	Overrides     []string        `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	Inherited     bool            `json:"inherited,omitempty" yaml:"inherited,omitempty"`
	Exposed       *bool           `json:"exposed,omitempty" yaml:"exposed,omitempty"`
	ObjCName      string          `json:"objcName,omitempty" yaml:"objcName,omitempty"`
	SwiftName     string          `json:"swiftName,omitempty" yaml:"swiftName,omitempty"`
	Deprecated    *deprecationDoc `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Doc           string          `json:"doc,omitempty" yaml:"doc,omitempty"`
	Line          int             `json:"line,omitempty" yaml:"line,omitempty"`
}

type paramDoc struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

type deprecationDoc struct {
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Level   string `json:"level,omitempty" yaml:"level,omitempty"`
}

// overrideRef records override targets by id until the graph is linked.
type overrideRef struct {
	member  Member
	targets []string
}

// DecodeModule decodes a declaration graph file into an unlinked module.
// Override references are resolved by NewUniverse.
func DecodeModule(data []byte, format Format) (*Module, error) {
	var doc moduleDoc
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, errors.Newf("unsupported graph format %v", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s graph", format)
	}
	if doc.Name == "" {
		return nil, errors.Newf("decode %s graph: module name is required", format)
	}
	d := &decoder{module: &Module{Name: doc.Name, ids: make(map[string]Member)}}
	for _, fd := range doc.Files {
		f := &File{Name: fd.Name, Package: fd.Package}
		for _, cd := range fd.Classes {
			f.Classes = append(f.Classes, d.class(cd, fd.Name))
		}
		for _, md := range fd.Members {
			f.Members = append(f.Members, d.member(md, fd.Name))
		}
		d.module.Files = append(d.module.Files, f)
	}
	if len(d.errs) > 0 {
		return nil, errors.Newf("decode %s graph: %s", format, strings.Join(d.errs, "; "))
	}
	return d.module, nil
}

type decoder struct {
	module *Module
	errs   []string
}

func (d *decoder) fail(format string, args ...any) {
	d.errs = append(d.errs, fmt.Sprintf(format, args...))
}

func (d *decoder) typ(s, context string) *TypeRef {
	if s == "" {
		return nil
	}
	t, err := ParseType(s)
	if err != nil {
		d.fail("%s: %v", context, err)
		return nil
	}
	return t
}

// returnType treats an empty string and Unit as the unit type.
func (d *decoder) returnType(s, context string) *TypeRef {
	if s == "" || s == "Unit" || s == FqUnit {
		return nil
	}
	return d.typ(s, context)
}

func exposed(b *bool) bool { return b == nil || *b }

func (d *decoder) deprecation(dd *deprecationDoc, context string) *Deprecation {
	if dd == nil {
		return nil
	}
	dep := &Deprecation{Message: dd.Message}
	switch dd.Level {
	case "", "warning":
		dep.Level = DeprecationWarning
	case "error":
		dep.Level = DeprecationError
	case "hidden":
		dep.Level = DeprecationHidden
	default:
		d.fail("%s: unknown deprecation level %q", context, dd.Level)
	}
	return dep
}

func documentation(s string) Documentation {
	s = strings.TrimSpace(s)
	if s == "" {
		return Documentation{}
	}
	summary := s
	if i := strings.Index(s, "\n\n"); i >= 0 {
		summary = s[:i]
	}
	return Documentation{Summary: summary, Body: s}
}

func (d *decoder) class(cd classDoc, file string) *ClassDecl {
	c := &ClassDecl{
		Name:          cd.Name,
		Exposed:       exposed(cd.Exposed),
		Hidden:        cd.Hidden,
		Inline:        cd.Inline,
		Foreign:       cd.Foreign,
		Names:         NameOverride{ObjCName: cd.ObjCName, SwiftName: cd.SwiftName, Exact: cd.ExactName},
		Documentation: documentation(cd.Doc),
		Source:        Source{File: file, Line: cd.Line},
	}
	ctx := "class " + cd.Name
	switch cd.Kind {
	case "", "class":
		c.ClassKind = KindClass
	case "interface":
		c.ClassKind = KindInterface
	case "object":
		c.ClassKind = KindObject
	case "companion":
		c.ClassKind = KindCompanion
	case "enum":
		c.ClassKind = KindEnumClass
	default:
		d.fail("%s: unknown kind %q", ctx, cd.Kind)
	}
	switch cd.Modality {
	case "", "final":
		c.Modality = ModalityFinal
		if c.ClassKind == KindInterface {
			c.Modality = ModalityAbstract
		}
	case "open":
		c.Modality = ModalityOpen
	case "abstract":
		c.Modality = ModalityAbstract
	default:
		d.fail("%s: unknown modality %q", ctx, cd.Modality)
	}
	for _, tp := range cd.TypeParameters {
		c.TypeParameters = append(c.TypeParameters, TypeParameter{Name: tp})
	}
	c.SuperClass = d.typ(cd.SuperClass, ctx)
	for _, s := range cd.SuperInterfaces {
		if t := d.typ(s, ctx); t != nil {
			c.SuperInterfaces = append(c.SuperInterfaces, t)
		}
	}
	c.Deprecated = d.deprecation(cd.Deprecated, ctx)
	for _, md := range cd.Constructors {
		fn := d.function(md, file)
		fn.FuncKind = KindConstructor
		c.Constructors = append(c.Constructors, fn)
	}
	for _, md := range cd.Members {
		c.Members = append(c.Members, d.member(md, file))
	}
	for _, e := range cd.Entries {
		c.EnumEntries = append(c.EnumEntries, &EnumEntry{Name: e, Source: c.Source})
	}
	for _, nd := range cd.Nested {
		c.Nested = append(c.Nested, d.class(nd, file))
	}
	return c
}

func (d *decoder) member(md memberDoc, file string) Member {
	kind := md.Kind
	if kind == "" {
		kind = "function"
		if md.Type != "" {
			kind = "property"
		}
	}
	var m Member
	switch kind {
	case "function":
		m = d.function(md, file)
	case "property":
		m = d.property(md, file)
	default:
		d.fail("member %s: unknown kind %q", md.Name, md.Kind)
		m = d.function(md, file)
	}
	if md.ID != "" {
		if _, dup := d.module.ids[md.ID]; dup {
			d.fail("member %s: duplicate id %q", md.Name, md.ID)
		}
		d.module.ids[md.ID] = m
	}
	if len(md.Overrides) > 0 {
		d.module.overrides = append(d.module.overrides, overrideRef{member: m, targets: md.Overrides})
	}
	return m
}

func (d *decoder) function(md memberDoc, file string) *Function {
	ctx := "function " + md.Name
	fn := &Function{
		Name:          md.Name,
		Receiver:      d.typ(md.Receiver, ctx),
		Returns:       d.returnType(md.Returns, ctx),
		Suspend:       md.Suspend,
		Inherited:     md.Inherited,
		Exposed:       exposed(md.Exposed),
		Names:         NameOverride{ObjCName: md.ObjCName, SwiftName: md.SwiftName},
		Deprecated:    d.deprecation(md.Deprecated, ctx),
		Documentation: documentation(md.Doc),
		Source:        Source{File: file, Line: md.Line},
	}
	for _, pd := range md.Params {
		t := d.typ(pd.Type, ctx)
		if t == nil {
			d.fail("%s: parameter %s has no type", ctx, pd.Name)
		}
		fn.Params = append(fn.Params, &Param{Name: pd.Name, Type: t})
	}
	for _, s := range md.Throws {
		if t := d.typ(s, ctx); t != nil {
			fn.Throws = append(fn.Throws, t)
		}
	}
	return fn
}

func (d *decoder) property(md memberDoc, file string) *Property {
	ctx := "property " + md.Name
	p := &Property{
		Name:          md.Name,
		Receiver:      d.typ(md.Receiver, ctx),
		Type:          d.typ(md.Type, ctx),
		Inherited:     md.Inherited,
		Exposed:       exposed(md.Exposed),
		Names:         NameOverride{ObjCName: md.ObjCName, SwiftName: md.SwiftName},
		Deprecated:    d.deprecation(md.Deprecated, ctx),
		Documentation: documentation(md.Doc),
		Source:        Source{File: file, Line: md.Line},
	}
	if md.Mutable {
		setterExposed := p.Exposed
		if md.SetterExposed != nil {
			setterExposed = *md.SetterExposed
		}
		p.Setter = &Function{Exposed: setterExposed, Inherited: md.Inherited}
	}
	return p
}
