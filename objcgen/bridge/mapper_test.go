package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/objcbridge/objcgen/ir"
)

func TestRegistry_MostSpecificMatchWins(t *testing.T) {
	u := universe(&ir.ClassDecl{Name: "Tags", ClassKind: ir.KindClass, Exposed: true,
		SuperInterfaces: []*ir.TypeRef{ir.Named(ir.FqMutableList, ir.Named(ir.FqString))}})
	reg, err := NewRegistry("Test")
	require.NoError(t, err)

	matches := reg.Matches(typeIn(u, "p.Tags"))
	require.Len(t, matches, 1)
	assert.Equal(t, ir.FqMutableList, matches[0].Class().FqName())
	assert.Equal(t, "std.collections.MutableList<std.String>", matches[0].Type.String())
}

func ambiguousUniverse() *ir.Universe {
	return universe(&ir.ClassDecl{Name: "Both", ClassKind: ir.KindClass, Exposed: true,
		SuperInterfaces: []*ir.TypeRef{
			ir.Named(ir.FqSet, ir.Named(ir.FqString)),
			ir.Named(ir.FqList, ir.Named(ir.FqString)),
		}})
}

func TestMapReferenceType_AmbiguousMapping(t *testing.T) {
	for run := 0; run < 3; run++ {
		u := ambiguousUniverse()
		env := newFakeEnv()
		m := newMapper(u, env)

		got := m.MapReferenceType(typeIn(u, "p.Both"), nil).Render("")
		m.MapReferenceType(typeIn(u, "p.Both?"), nil)

		assert.Equal(t, "NSArray<NSString *> *", got, "lexically first class wins")
		require.Len(t, env.warnings, 1)
		assert.Contains(t, env.warnings[0], "p.Both")
		assert.Contains(t, env.warnings[0], ir.FqList)
		assert.Contains(t, env.warnings[0], ir.FqSet)
	}
}

func TestNewRegistry_Errors(t *testing.T) {
	tests := []struct {
		name string
		m    []Mapping
	}{
		{"missing target", []Mapping{{Class: "p.A"}}},
		{"bad kind", []Mapping{{Class: "p.A", Target: "X", Kind: "struct"}}},
		{"duplicate", []Mapping{{Class: "p.A", Target: "X"}, {Class: "p.A", Target: "Y"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry("Test", tt.m...)
			assert.Error(t, err)
		})
	}
}

func TestRegistry_CategoryClass(t *testing.T) {
	u := universe(testClasses()...)
	reg, err := NewRegistry("Test")
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"p.User", "User"},
		{"p.User?", "User"},
		{"p.NSView", "NSView"},
		{"p.Shape", ""},
		{"p.Names", ""},
		{"std.String", ""},
		{"std.Any", ""},
		{"p.Meters", ""},
		{"p.Secret", ""},
		{"Int", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := reg.CategoryClass(typeIn(u, tt.in))
			if tt.want == "" {
				assert.Nil(t, c)
			} else {
				require.NotNil(t, c)
				assert.Equal(t, tt.want, c.Name)
			}
		})
	}
}
