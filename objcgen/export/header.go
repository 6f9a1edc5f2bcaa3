package export

import (
	"strings"

	"github.com/broady/objcbridge/objcgen/ir"
	"github.com/broady/objcbridge/objcgen/objc"
)

// foundationImports are imported by every header.
var foundationImports = []string{
	"Foundation/NSArray.h",
	"Foundation/NSDictionary.h",
	"Foundation/NSError.h",
	"Foundation/NSObject.h",
	"Foundation/NSSet.h",
	"Foundation/NSString.h",
	"Foundation/NSValue.h",
}

func headerImports(extra []string) []string {
	out := append([]string(nil), foundationImports...)
	seen := make(map[string]bool, len(out))
	for _, i := range out {
		seen[i] = true
	}
	for _, i := range extra {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out
}

// Header is the result of a generation pass.
type Header struct {
	// Imports are header paths, rendered as #import <path>.
	Imports []string

	ClassForward    []string
	ProtocolForward []string

	Stubs []objc.Stub

	Warnings []ir.Warning
}

// Lines renders the header.
func (h *Header) Lines() []string {
	var lines []string
	for _, i := range h.Imports {
		lines = append(lines, "#import <"+i+">")
	}
	lines = append(lines, "")
	if len(h.ClassForward) > 0 {
		lines = append(lines, "@class "+strings.Join(h.ClassForward, ", ")+";", "")
	}
	if len(h.ProtocolForward) > 0 {
		lines = append(lines, "@protocol "+strings.Join(h.ProtocolForward, ", ")+";", "")
	}
	lines = append(lines,
		"NS_ASSUME_NONNULL_BEGIN",
		"#pragma clang diagnostic push",
		`#pragma clang diagnostic ignored "-Wunknown-warning-option"`,
		`#pragma clang diagnostic ignored "-Wincompatible-property-type"`,
		`#pragma clang diagnostic ignored "-Wnullability"`,
		"",
		`#pragma push_macro("_Nullable_result")`,
		"#if !__has_feature(nullability_nullable_result)",
		"#undef _Nullable_result",
		"#define _Nullable_result _Nullable",
		"#endif",
		"",
	)
	for _, s := range h.Stubs {
		lines = append(lines, objc.Render(s)...)
		lines = append(lines, "")
	}
	lines = append(lines,
		`#pragma pop_macro("_Nullable_result")`,
		"#pragma clang diagnostic pop",
		"NS_ASSUME_NONNULL_END",
	)
	return lines
}

// String renders the header as text ending in a newline.
func (h *Header) String() string {
	return strings.Join(h.Lines(), "\n") + "\n"
}

// Stub returns the first emitted class, protocol or category stub named
// name, or nil.
func (h *Header) Stub(name string) objc.Stub {
	for _, s := range h.Stubs {
		if s.StubName() == name {
			return s
		}
	}
	return nil
}
