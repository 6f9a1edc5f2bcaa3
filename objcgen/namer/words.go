package namer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/broady/objcbridge/objcgen/objc"
)

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// methodFamilies are Objective-C method families that change memory
// management semantics under ARC.
var methodFamilies = []string{"alloc", "copy", "mutableCopy", "new", "init"}

// mangleIfSpecialFamily prefixes names that would fall into an ARC method
// family, e.g. "copyItems" becomes "doCopyItems".
func mangleIfSpecialFamily(name string) string {
	trimmed := strings.TrimLeft(name, "_")
	for _, family := range methodFamilies {
		if startsWithWord(trimmed, family) {
			return "do" + Capitalize(name)
		}
	}
	return name
}

// startsWithWord reports whether s starts with word followed by a word
// boundary: the end of s or a non-lowercase character.
func startsWithWord(s, word string) bool {
	if !strings.HasPrefix(s, word) {
		return false
	}
	if len(s) == len(word) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[len(word):])
	return !unicode.IsLower(r)
}

// lowerCamel converts an enum constant such as "DARK_GREEN" to "darkGreen".
func lowerCamel(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		lower := strings.ToLower(p)
		if i == 0 || b.Len() == 0 {
			b.WriteString(lower)
		} else {
			b.WriteString(Capitalize(lower))
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

// identifier turns an arbitrary name into a C identifier, keeping
// reserved words intact since names here are always prefixed or nested.
func identifier(name string) string {
	if objc.IsReserved(name) {
		return name
	}
	return objc.SanitizeIdentifier(name)
}

// fileBaseName returns the capitalized file name without directory and
// extension, e.g. "src/string_utils.kt" becomes "String_utils".
func fileBaseName(file string) string {
	if i := strings.LastIndexAny(file, "/\\"); i >= 0 {
		file = file[i+1:]
	}
	if i := strings.IndexByte(file, '.'); i > 0 {
		file = file[:i]
	}
	return Capitalize(identifier(file))
}
