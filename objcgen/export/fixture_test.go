package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/broady/objcbridge/objcgen/bridge"
	"github.com/broady/objcbridge/objcgen/ir"
	"github.com/broady/objcbridge/objcgen/objc"
)

// decode links a YAML module document into a validated universe.
func decode(t *testing.T, doc string) *ir.Universe {
	t.Helper()
	m, err := ir.DecodeModule([]byte(doc), ir.FormatYAML)
	require.NoError(t, err)
	u := ir.NewUniverse(m)
	require.Empty(t, u.Validate())
	return u
}

// generate runs a pass with the default options adjusted by opts.
func generate(t *testing.T, doc string, opts ...func(*Options)) *Header {
	t.Helper()
	o := DefaultOptions()
	for _, f := range opts {
		f(&o)
	}
	h, err := NewHeaderGenerator(o).Generate(decode(t, doc))
	require.NoError(t, err)
	return h
}

// stubText renders the first stub named name.
func stubText(t *testing.T, h *Header, name string) string {
	t.Helper()
	s := h.Stub(name)
	require.NotNil(t, s, "no stub named %s", name)
	return strings.Join(objc.Render(s), "\n")
}

// classInterface returns the non-category interface named name.
func classInterface(t *testing.T, h *Header, name string) *objc.Interface {
	t.Helper()
	for _, s := range h.Stubs {
		if i, ok := s.(*objc.Interface); ok && i.Name == name && !i.IsCategory() {
			return i
		}
	}
	require.Failf(t, "missing interface", "no interface named %s", name)
	return nil
}

// memberSignatures returns the one-line signatures of an interface's members.
func memberSignatures(t *testing.T, h *Header, name string) []string {
	t.Helper()
	var out []string
	for _, m := range classInterface(t, h, name).Members {
		out = append(out, objc.Signature(m))
	}
	return out
}

// stubIndex returns the position of the first class or protocol stub named
// name, or -1.
func stubIndex(h *Header, name string) int {
	for i, s := range h.Stubs {
		switch s := s.(type) {
		case *objc.Interface:
			if s.Name == name && !s.IsCategory() {
				return i
			}
		case *objc.Protocol:
			if s.Name == name {
				return i
			}
		}
	}
	return -1
}

// countDeclarations counts class and protocol stubs named name.
func countDeclarations(h *Header, name string) int {
	n := 0
	for _, s := range h.Stubs {
		switch s := s.(type) {
		case *objc.Interface:
			if s.Name == name && !s.IsCategory() {
				n++
			}
		case *objc.Protocol:
			if s.Name == name {
				n++
			}
		}
	}
	return n
}

// newTranslator returns a translator over u with a fresh pass context.
func newTranslator(t *testing.T, u *ir.Universe, opts Options) (*Translator, *Diagnostics) {
	t.Helper()
	reg, err := bridge.NewRegistry(opts.Prefix, opts.Mappings...)
	require.NoError(t, err)
	diags := NewDiagnostics(nil)
	return &Translator{ctx: newContext(u, opts, reg, diags, Logger())}, diags
}
