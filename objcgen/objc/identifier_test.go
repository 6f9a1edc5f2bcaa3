package objc

import "testing"

func TestEscapeReservedWord(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"id", "id_"},
		{"self", "self_"},
		{"int", "int_"},
		{"YES", "YES_"},
		{"value", "value"},
		{"count", "count"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := EscapeReservedWord(tt.input)
			if got != tt.want {
				t.Errorf("EscapeReservedWord(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "_"},
		{"name", "name"},
		{"1st", "_1st"},
		{"my-field", "my_field"},
		{"größe", "gr__e"},
		{"self", "self_"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeIdentifier(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeIdentifier(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
