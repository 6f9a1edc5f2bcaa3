package objc

import (
	"strings"
	"unicode"
)

// C and Objective-C keywords and predefined identifiers that cannot be used
// as parameter names.
var reservedWords = map[string]bool{
	// C
	"auto":     true,
	"break":    true,
	"case":     true,
	"char":     true,
	"const":    true,
	"continue": true,
	"default":  true,
	"do":       true,
	"double":   true,
	"else":     true,
	"enum":     true,
	"extern":   true,
	"float":    true,
	"for":      true,
	"goto":     true,
	"if":       true,
	"inline":   true,
	"int":      true,
	"long":     true,
	"register": true,
	"restrict": true,
	"return":   true,
	"short":    true,
	"signed":   true,
	"sizeof":   true,
	"static":   true,
	"struct":   true,
	"switch":   true,
	"typedef":  true,
	"union":    true,
	"unsigned": true,
	"void":     true,
	"volatile": true,
	"while":    true,
	"_Bool":    true,
	"_Complex": true,

	// Objective-C
	"id":           true,
	"self":         true,
	"super":        true,
	"nil":          true,
	"Nil":          true,
	"YES":          true,
	"NO":           true,
	"NULL":         true,
	"BOOL":         true,
	"SEL":          true,
	"IMP":          true,
	"Class":        true,
	"Protocol":     true,
	"instancetype": true,
	"in":           true,
	"out":          true,
	"inout":        true,
	"oneway":       true,
	"bycopy":       true,
	"byref":        true,
	"atomic":       true,
	"nonatomic":    true,
	"nonnull":      true,
	"nullable":     true,
	"readonly":     true,
	"readwrite":    true,
	"getter":       true,
	"setter":       true,
	"assign":       true,
	"retain":       true,
	"strong":       true,
	"weak":         true,
	"copy":         true,
	"errno":        true,
}

// IsReserved reports whether name cannot be used as an identifier.
func IsReserved(name string) bool {
	return reservedWords[name]
}

// EscapeReservedWord escapes a reserved word by appending an underscore.
func EscapeReservedWord(name string) string {
	if reservedWords[name] {
		return name + "_"
	}
	return name
}

// SanitizeIdentifier makes an identifier valid in C.
func SanitizeIdentifier(name string) string {
	if name == "" {
		return "_"
	}

	var result strings.Builder

	// Handle leading digit
	if unicode.IsDigit(rune(name[0])) {
		result.WriteRune('_')
	}

	for _, r := range name {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}

	return EscapeReservedWord(result.String())
}
