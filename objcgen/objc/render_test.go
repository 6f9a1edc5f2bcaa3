package objc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32T() Type { return &PrimitiveType{Name: "int32_t"} }

func TestRenderMethod(t *testing.T) {
	tests := []struct {
		name string
		m    *Method
		want string
	}{
		{
			name: "no params",
			m:    &Method{IsInstance: true, ReturnType: Void, Selectors: []string{"run"}},
			want: "- (void)run;",
		},
		{
			name: "class method with params",
			m: &Method{
				ReturnType: int32T(),
				Selectors:  []string{"sumA:", "b:"},
				Parameters: []Parameter{{Name: "a", Type: int32T()}, {Name: "b", Type: int32T()}},
				Attributes: []string{SwiftNameAttribute("sum(a:b:)")},
			},
			want: `+ (int32_t)sumA:(int32_t)a b:(int32_t)b __attribute__((swift_name("sum(a:b:)")));`,
		},
		{
			name: "designated initializer",
			m: &Method{
				IsInstance: true,
				ReturnType: Instance,
				Selectors:  []string{"initWithName:"},
				Parameters: []Parameter{{Name: "name", Type: &ClassType{Name: "NSString"}}},
				Attributes: []string{DesignatedInitializerAttribute},
			},
			want: "- (instancetype)initWithName:(NSString *)name __attribute__((objc_designated_initializer));",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderMethod(tt.m))
		})
	}
}

func TestRenderMethod_SelectorMismatchPanics(t *testing.T) {
	m := &Method{ReturnType: Void, Selectors: []string{"a:", "b:"}, Parameters: []Parameter{{Name: "a", Type: ID}}}
	assert.Panics(t, func() { RenderMethod(m) })
}

func TestRenderProperty(t *testing.T) {
	p := &Property{
		Name:                  "first",
		Type:                  Nullable(&GenericTypeUsage{Name: "A"}),
		PropertyAttributes:    []string{"readonly"},
		DeclarationAttributes: []string{SwiftNameAttribute("first")},
	}
	assert.Equal(t, `@property (readonly) A _Nullable first __attribute__((swift_name("first")));`, RenderProperty(p))

	plain := &Property{Name: "count", Type: int32T()}
	assert.Equal(t, "@property int32_t count;", RenderProperty(plain))
}

func TestRender_Interface(t *testing.T) {
	i := &Interface{
		Comment:    &Comment{Lines: []string{"A pair.", "", "Immutable."}},
		Name:       "SharedPair",
		Generics:   []string{"A", "B"},
		SuperClass: "SharedBase",
		Attributes: []string{SubclassingRestrictedAttribute, SwiftNameAttribute("Pair")},
		Members: []Stub{
			&Property{Name: "second", Type: &GenericTypeUsage{Name: "B"}, PropertyAttributes: []string{"readonly"}},
		},
	}
	want := []string{
		"/**",
		" * A pair.",
		" *",
		" * Immutable.",
		" */",
		"__attribute__((objc_subclassing_restricted))",
		`__attribute__((swift_name("Pair")))`,
		"@interface SharedPair<A, B> : SharedBase",
		"@property (readonly) B second;",
		"@end",
	}
	assert.Equal(t, want, Render(i))
}

func TestRender_CategoryAndProtocol(t *testing.T) {
	cat := &Interface{Name: "SharedBase", Category: "SharedBaseCopying", SuperProtocols: []string{"NSCopying"}}
	assert.Equal(t, []string{"@interface SharedBase (SharedBaseCopying) <NSCopying>", "@end"}, Render(cat))

	sub := &Interface{
		Name:               "SharedIntBox",
		SuperClass:         "SharedBox",
		SuperClassGenerics: []NonNullReferenceType{&ClassType{Name: "SharedInt"}},
		SuperProtocols:     []string{"SharedShape"},
	}
	assert.Equal(t, "@interface SharedIntBox : SharedBox<SharedInt *> <SharedShape>", Render(sub)[0])

	p := &Protocol{
		Name:           "SharedShape",
		SuperProtocols: []string{"SharedNamed"},
		Members: []Stub{
			&Method{IsInstance: true, ReturnType: &PrimitiveType{Name: "double"}, Selectors: []string{"area"}},
		},
	}
	assert.Equal(t, []string{
		"@protocol SharedShape <SharedNamed>",
		"@required",
		"- (double)area;",
		"@end",
	}, Render(p))
}

func TestSignature_IgnoresComments(t *testing.T) {
	a := &Method{IsInstance: true, ReturnType: Void, Selectors: []string{"run"}, Comment: &Comment{Lines: []string{"Runs."}}}
	b := &Method{IsInstance: true, ReturnType: Void, Selectors: []string{"run"}}
	require.Len(t, Render(a), 4)
	assert.Equal(t, Signature(a), Signature(b))
	assert.Equal(t, "runWith:", (&Method{Selectors: []string{"runWith:"}}).Selector())
}
