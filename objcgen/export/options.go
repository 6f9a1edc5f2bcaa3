package export

import (
	"github.com/cockroachdb/errors"

	"github.com/broady/objcbridge/objcgen/bridge"
	"github.com/broady/objcbridge/objcgen/ir"
	"github.com/broady/objcbridge/objcgen/objc"
)

// Options configures a generation pass.
type Options struct {
	// Prefix is prepended to every top-level Objective-C name.
	Prefix string

	// Modules names the modules whose exposed declarations are translated.
	// Empty means every module of the universe except the standard one.
	Modules []string

	// Generics enables lightweight generics on exported classes.
	Generics bool

	// EmitComments copies documentation into the header.
	EmitComments bool

	// Imports are additional headers imported after Foundation.
	Imports []string

	// Mappings are user-defined custom type mappings.
	Mappings []bridge.Mapping
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{Prefix: "Shared", Generics: true}
}

func (o Options) validate(u *ir.Universe) error {
	if o.Prefix != objc.SanitizeIdentifier(o.Prefix) {
		return errors.Newf("prefix %q is not a valid identifier", o.Prefix)
	}
	known := make(map[string]bool)
	for _, m := range u.Modules {
		known[m.Name] = true
	}
	for _, m := range o.Modules {
		if !known[m] {
			return errors.Newf("module %q is not part of the universe", m)
		}
	}
	for _, m := range o.Mappings {
		if u.Lookup(m.Class) == nil {
			return errors.Newf("type mapping for unknown class %s", m.Class)
		}
	}
	return nil
}

// exportedModules returns the names of the translated modules.
func (o Options) exportedModules(u *ir.Universe) []string {
	if len(o.Modules) > 0 {
		return o.Modules
	}
	names := make([]string, 0, len(u.Modules))
	for _, m := range u.Modules {
		names = append(names, m.Name)
	}
	return names
}

// translatedModules returns the modules whose declarations are translated,
// in universe order.
func (o Options) translatedModules(u *ir.Universe) []*ir.Module {
	want := make(map[string]bool)
	for _, name := range o.exportedModules(u) {
		want[name] = true
	}
	var out []*ir.Module
	for _, m := range u.Modules {
		if want[m.Name] {
			out = append(out, m)
		}
	}
	return out
}
