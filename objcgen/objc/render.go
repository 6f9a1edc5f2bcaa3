package objc

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Render returns the header lines of a stub.
func Render(s Stub) []string {
	r := &renderer{comments: true}
	r.stub(s)
	return r.lines
}

// Signature returns the single-line form of a stub without comments. Two
// stubs are structurally equal when their signatures are equal.
func Signature(s Stub) string {
	r := &renderer{}
	r.stub(s)
	return strings.Join(r.lines, "\n")
}

type renderer struct {
	comments bool
	lines    []string
}

func (r *renderer) add(line string) {
	r.lines = append(r.lines, line)
}

func (r *renderer) stub(s Stub) {
	switch s := s.(type) {
	case *Method:
		r.comment(s.Comment)
		r.add(RenderMethod(s))
	case *Property:
		r.comment(s.Comment)
		r.add(RenderProperty(s))
	case *Interface:
		r.iface(s)
	case *Protocol:
		r.protocol(s)
	default:
		panic(errors.AssertionFailedf("unknown stub type %T", s))
	}
}

func (r *renderer) comment(c *Comment) {
	if !r.comments || c == nil || len(c.Lines) == 0 {
		return
	}
	r.add("/**")
	for _, l := range c.Lines {
		if l == "" {
			r.add(" *")
		} else {
			r.add(" * " + l)
		}
	}
	r.add(" */")
}

func (r *renderer) attributeLines(attrs []string) {
	for _, a := range attrs {
		r.add("__attribute__((" + a + "))")
	}
}

func (r *renderer) members(members []Stub) {
	for _, m := range members {
		r.stub(m)
	}
}

func (r *renderer) iface(i *Interface) {
	r.comment(i.Comment)
	r.attributeLines(i.Attributes)

	var b strings.Builder
	b.WriteString("@interface ")
	b.WriteString(i.Name)
	if len(i.Generics) > 0 {
		b.WriteByte('<')
		b.WriteString(strings.Join(i.Generics, ", "))
		b.WriteByte('>')
	}
	if i.IsCategory() {
		b.WriteString(" (")
		b.WriteString(i.Category)
		b.WriteByte(')')
	} else if i.SuperClass != "" {
		b.WriteString(" : ")
		b.WriteString(i.SuperClass)
		if len(i.SuperClassGenerics) > 0 {
			b.WriteByte('<')
			for n, g := range i.SuperClassGenerics {
				if n > 0 {
					b.WriteString(", ")
				}
				b.WriteString(g.Render(""))
			}
			b.WriteByte('>')
		}
	}
	if len(i.SuperProtocols) > 0 {
		b.WriteString(" <")
		b.WriteString(strings.Join(i.SuperProtocols, ", "))
		b.WriteByte('>')
	}
	r.add(b.String())
	r.members(i.Members)
	r.add("@end")
}

func (r *renderer) protocol(p *Protocol) {
	r.comment(p.Comment)
	r.attributeLines(p.Attributes)

	line := "@protocol " + p.Name
	if len(p.SuperProtocols) > 0 {
		line += " <" + strings.Join(p.SuperProtocols, ", ") + ">"
	}
	r.add(line)
	r.add("@required")
	r.members(p.Members)
	r.add("@end")
}

// RenderMethod renders a method declaration on one line.
func RenderMethod(m *Method) string {
	var b strings.Builder
	if m.IsInstance {
		b.WriteString("- (")
	} else {
		b.WriteString("+ (")
	}
	b.WriteString(m.ReturnType.Render(""))
	b.WriteByte(')')

	switch {
	case len(m.Parameters) == 0 && len(m.Selectors) == 1:
		b.WriteString(m.Selectors[0])
	case len(m.Parameters) == len(m.Selectors):
		for i, p := range m.Parameters {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(m.Selectors[i])
			b.WriteByte('(')
			b.WriteString(p.Type.Render(""))
			b.WriteByte(')')
			b.WriteString(p.Name)
		}
	default:
		panic(errors.AssertionFailedf("method %q has %d selector parts for %d parameters",
			m.Selector(), len(m.Selectors), len(m.Parameters)))
	}
	writeAttributes(&b, m.Attributes)
	b.WriteByte(';')
	return b.String()
}

// RenderProperty renders a property declaration on one line.
func RenderProperty(p *Property) string {
	var b strings.Builder
	b.WriteString("@property ")
	if len(p.PropertyAttributes) > 0 {
		b.WriteByte('(')
		b.WriteString(strings.Join(p.PropertyAttributes, ", "))
		b.WriteString(") ")
	}
	b.WriteString(p.Type.Render(p.Name))
	writeAttributes(&b, p.DeclarationAttributes)
	b.WriteByte(';')
	return b.String()
}

func writeAttributes(b *strings.Builder, attrs []string) {
	for _, a := range attrs {
		b.WriteString(" __attribute__((")
		b.WriteString(a)
		b.WriteString("))")
	}
}
