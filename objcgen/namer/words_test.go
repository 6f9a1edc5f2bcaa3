package namer

import "testing"

func TestMangleIfSpecialFamily(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"copy", "doCopy"},
		{"copyItems", "doCopyItems"},
		{"copyright", "copyright"},
		{"init", "doInit"},
		{"initialize", "initialize"},
		{"newInstance", "doNewInstance"},
		{"news", "news"},
		{"alloc", "doAlloc"},
		{"mutableCopy", "doMutableCopy"},
		{"_new", "do_new"},
		{"get", "get"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := mangleIfSpecialFamily(tt.in); got != tt.want {
				t.Errorf("mangleIfSpecialFamily(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMangleSelector(t *testing.T) {
	tests := []struct{ in, want string }{
		{"foo", "foo_"},
		{"fooX:", "fooX_:"},
		{"fooX:y:", "fooX:y_:"},
	}
	for _, tt := range tests {
		if got := mangleSelector(tt.in); got != tt.want {
			t.Errorf("mangleSelector(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := mangleSwiftName("foo(x:)"); got != "foo_(x:)" {
		t.Errorf("mangleSwiftName = %q", got)
	}
}

func TestLowerCamel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"RED", "red"},
		{"DARK_GREEN", "darkGreen"},
		{"Value", "value"},
		{"_X", "x"},
		{"__", "_"},
	}
	for _, tt := range tests {
		if got := lowerCamel(tt.in); got != tt.want {
			t.Errorf("lowerCamel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
