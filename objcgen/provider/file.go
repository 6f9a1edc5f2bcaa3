// Package provider implements input providers for the declaration graph.
// Providers produce ir.Modules, either by decoding graph files written by an
// upstream compiler or by analyzing Go packages, and Link combines them into
// a validated universe that generators translate.
package provider

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/broady/objcbridge/objcgen/ir"
)

// LoadFile decodes a declaration graph file. The format is chosen from the
// file extension: .json, .yaml or .yml.
func LoadFile(path string) (*ir.Module, error) {
	format, ok := ir.FormatForPath(path)
	if !ok {
		return nil, errors.WithHint(
			errors.Newf("unrecognized graph file %q", path),
			"graph files must end in .json, .yaml or .yml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading graph file")
	}
	m, err := ir.DecodeModule(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return m, nil
}

// LoadFiles decodes every graph file in order.
func LoadFiles(paths ...string) ([]*ir.Module, error) {
	modules := make([]*ir.Module, 0, len(paths))
	for _, path := range paths {
		m, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, nil
}

// Link links the modules with the standard module and validates the
// result. All validation problems are reported in a single error.
func Link(modules ...*ir.Module) (*ir.Universe, error) {
	if len(modules) == 0 {
		return nil, errors.New("no modules to link")
	}
	seen := make(map[string]bool)
	for _, m := range modules {
		if m.Name == ir.StdModule || seen[m.Name] {
			return nil, errors.Newf("duplicate module name %q", m.Name)
		}
		seen[m.Name] = true
	}

	u := ir.NewUniverse(modules...)
	if problems := u.Validate(); len(problems) > 0 {
		msgs := make([]string, len(problems))
		for i, p := range problems {
			msgs[i] = p.Error()
		}
		return nil, errors.Newf("invalid declaration graph:\n  %s", strings.Join(msgs, "\n  "))
	}
	return u, nil
}
