package ir

import "testing"

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want string
		kind TypeKind
	}{
		{"Int", "Int", TypeValue},
		{"Bool", "Boolean", TypeValue},
		{"Long?", "Long?", TypeValue},
		{"T", "T", TypeParamRef},
		{"T?", "T?", TypeParamRef},
		{"std.String", "std.String", TypeClass},
		{"Unit", "std.Unit", TypeClass},
		{"std.collections.Map<K, *>", "std.collections.Map<K, *>", TypeClass},
		{"std.collections.List<com.example.User?>?", "std.collections.List<com.example.User?>?", TypeClass},
		{"(Int, std.String) -> Unit", "(Int, std.String) -> Unit", TypeFunction},
		{"() -> Int?", "() -> Int?", TypeFunction},
		{"((Int) -> Unit)?", "((Int) -> Unit)?", TypeFunction},
		{"(T)", "T", TypeParamRef},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if err != nil {
				t.Fatalf("ParseType(%q) error = %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseType(%q) = %q, want %q", tt.in, got.String(), tt.want)
			}
			if got.Kind != tt.kind {
				t.Errorf("ParseType(%q).Kind = %v, want %v", tt.in, got.Kind, tt.kind)
			}
		})
	}
}

func TestParseType_FunctionUnitResult(t *testing.T) {
	got := MustParseType("(Int) -> Unit")
	if got.Result != nil {
		t.Errorf("Result = %v, want nil (unit)", got.Result)
	}
	if len(got.Params) != 1 || got.Params[0].Value != ValueInt {
		t.Errorf("Params = %v, want [Int]", got.Params)
	}
}

func TestParseType_StarProjection(t *testing.T) {
	got := MustParseType("std.collections.List<*>")
	if len(got.Args) != 1 || got.Args[0] != nil {
		t.Errorf("Args = %v, want a single nil star projection", got.Args)
	}
}

func TestParseType_Errors(t *testing.T) {
	for _, in := range []string{"", "std.List<", "(Int, Long)", "Int Long", "std.Map<K,>"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseType(in); err == nil {
				t.Errorf("ParseType(%q) should fail", in)
			}
		})
	}
}
