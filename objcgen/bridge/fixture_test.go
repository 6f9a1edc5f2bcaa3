package bridge

import (
	"sort"

	"github.com/broady/objcbridge/objcgen/ir"
)

// fakeEnv records references and warnings for tests.
type fakeEnv struct {
	classes   map[string]bool
	protocols map[string]bool
	warnings  []string
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{classes: map[string]bool{}, protocols: map[string]bool{}}
}

func (e *fakeEnv) ReferenceClass(c *ir.ClassDecl) string {
	e.classes[c.Name] = true
	return "Test" + c.Name
}

func (e *fakeEnv) ReferenceProtocol(c *ir.ClassDecl) string {
	e.protocols[c.Name] = true
	return "Test" + c.Name
}

func (e *fakeEnv) NumberClassName(k ir.ValueKind) string { return "Test" + k.String() }

func (e *fakeEnv) Report(msg string) { e.warnings = append(e.warnings, msg) }

func (e *fakeEnv) referencedClasses() []string {
	var out []string
	for c := range e.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func newMapper(u *ir.Universe, env *fakeEnv, user ...Mapping) *TypeMapper {
	reg, err := NewRegistry("Test", user...)
	if err != nil {
		panic(err)
	}
	return &TypeMapper{Mappers: reg, Refs: env, Namer: env, Warner: env, Generics: true}
}

// universe links classes into package p of module m.
func universe(classes ...*ir.ClassDecl) *ir.Universe {
	return ir.NewUniverse(&ir.Module{Name: "m", Files: []*ir.File{{Name: "f.kt", Package: "p", Classes: classes}}})
}

// typeIn parses s and resolves it against u.
func typeIn(u *ir.Universe, s string) *ir.TypeRef {
	t := ir.MustParseType(s)
	resolve(u, t)
	return t
}

func resolve(u *ir.Universe, t *ir.TypeRef) {
	if t == nil {
		return
	}
	if t.Kind == ir.TypeClass && t.Class == nil {
		t.Class = u.MustLookup(t.ClassName)
	}
	for _, a := range t.Args {
		resolve(u, a)
	}
	for _, p := range t.Params {
		resolve(u, p)
	}
	resolve(u, t.Result)
}
