// Package objcgen generates Objective-C headers describing the public API
// of a declaration graph.
//
// The graph is read from JSON or YAML files, or extracted from Go packages.
// Generation produces a single <Framework>.h header.
//
// Example:
//
//	u, _ := objcgen.LoadUniverse(ctx, cfg)
//	objcgen.FromUniverse(u).
//	    WithPrefix("App").
//	    ToDir("./build/headers")
package objcgen

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/objcbridge/objcgen/export"
	"github.com/broady/objcbridge/objcgen/ir"
	"github.com/broady/objcbridge/objcgen/provider"
	"github.com/broady/objcbridge/objcgen/sink"
)

// Result is the outcome of a generation.
type Result struct {
	// Header is the generated header model.
	Header *export.Header

	// Path is the sink-relative path of the written header.
	Path string

	// Warnings are the modeling warnings of loading and generation.
	Warnings []ir.Warning
}

// Generator provides a fluent API for header generation.
// Create with FromUniverse and configure with method chaining.
type Generator struct {
	universe *ir.Universe
	warnings []ir.Warning
	cfg      Config
	reporter export.Reporter
	sink     sink.OutputSink
}

// FromUniverse creates a Generator for a linked universe.
func FromUniverse(u *ir.Universe) *Generator {
	return &Generator{universe: u, cfg: DefaultConfig()}
}

// WithConfig replaces the generation settings. Source settings of cfg are
// ignored since the universe is already loaded.
func (g *Generator) WithConfig(cfg Config) *Generator {
	g.cfg = cfg
	return g
}

// WithFramework sets the framework name, which names the header.
func (g *Generator) WithFramework(name string) *Generator {
	g.cfg.Framework = name
	return g
}

// WithPrefix sets the prefix of top-level Objective-C names.
func (g *Generator) WithPrefix(prefix string) *Generator {
	g.cfg.Prefix = prefix
	return g
}

// WithoutGenerics disables lightweight generics.
func (g *Generator) WithoutGenerics() *Generator {
	generics := false
	g.cfg.Generics = &generics
	return g
}

// WithComments copies documentation into the header.
func (g *Generator) WithComments() *Generator {
	g.cfg.Comments = true
	return g
}

// Modules restricts translation to the named modules.
func (g *Generator) Modules(names ...string) *Generator {
	g.cfg.Modules = append(g.cfg.Modules, names...)
	return g
}

// Import adds headers imported after Foundation.
func (g *Generator) Import(headers ...string) *Generator {
	g.cfg.Imports = append(g.cfg.Imports, headers...)
	return g
}

// TypeMapping maps references to a source class to an Objective-C class.
func (g *Generator) TypeMapping(class, target string) *Generator {
	g.cfg.Mappings = append(g.cfg.Mappings, Mapping{Class: class, Target: target})
	return g
}

// ProtocolMapping maps references to a source class to an Objective-C
// protocol.
func (g *Generator) ProtocolMapping(class, protocol string) *Generator {
	g.cfg.Mappings = append(g.cfg.Mappings, Mapping{Class: class, Target: protocol, Kind: "protocol"})
	return g
}

// WithReporter routes modeling warnings to r instead of Result.Warnings.
func (g *Generator) WithReporter(r export.Reporter) *Generator {
	g.reporter = r
	return g
}

// WithSink writes the header to s.
func (g *Generator) WithSink(s sink.OutputSink) *Generator {
	g.sink = s
	return g
}

// ToDir generates the header into dir.
// This is a terminal operation that writes to disk.
func (g *Generator) ToDir(dir string) (*Result, error) {
	g.cfg.OutDir = dir
	g.sink = sink.NewFilesystemSink(dir)
	return g.Generate(context.Background())
}

// Generate runs the generation. Without a sink, the header is rendered into
// a MemorySink and only returned.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	if g.universe == nil {
		return nil, errors.New("no universe to generate from")
	}
	cfg := g.cfg.withDefaults()
	if err := validateGeneration(cfg); err != nil {
		return nil, err
	}
	out := g.sink
	if out == nil {
		out = sink.NewMemorySink()
	}
	res, err := generate(ctx, g.universe, cfg, g.reporter, out)
	if err != nil {
		return nil, err
	}
	res.Warnings = append(append([]ir.Warning(nil), g.warnings...), res.Warnings...)
	return res, nil
}

// Generate loads the universe described by cfg and writes the header into
// cfg.OutDir.
func Generate(ctx context.Context, cfg *Config) (*Result, error) {
	c := cfg.withDefaults()
	if c.OutDir == "" {
		return nil, errors.WithHint(errors.New("out_dir is required"), "set out_dir in the config or pass --out")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	u, warnings, err := LoadUniverse(ctx, &c)
	if err != nil {
		return nil, err
	}
	g := &Generator{universe: u, warnings: warnings, cfg: c, sink: sink.NewFilesystemSink(c.OutDir)}
	return g.Generate(ctx)
}

// LoadUniverse builds and validates the universe described by the source
// settings of cfg. Warnings are those of source extraction.
func LoadUniverse(ctx context.Context, cfg *Config) (*ir.Universe, []ir.Warning, error) {
	c := cfg.withDefaults()
	log := export.Logger()

	var modules []*ir.Module
	var warnings []ir.Warning
	switch c.Source {
	case SourceGraph:
		if len(c.Graphs) == 0 {
			return nil, nil, errors.WithHint(errors.New("no graph files configured"), "list graph files in graphs")
		}
		ms, err := provider.LoadFiles(c.Graphs...)
		if err != nil {
			return nil, nil, err
		}
		modules = ms
	case SourceGo:
		p := &provider.GoSource{}
		m, ws, err := p.Load(ctx, provider.GoSourceOptions{Packages: c.Packages, Dir: c.Dir})
		if err != nil {
			return nil, nil, errors.Wrap(err, "analyzing Go packages")
		}
		for _, w := range ws {
			log.Warn(w.Message, zap.String("code", w.Code), zap.String("decl", w.Decl))
		}
		modules, warnings = []*ir.Module{m}, ws
	default:
		return nil, nil, errors.Newf("unknown source %q (expected %q or %q)", c.Source, SourceGraph, SourceGo)
	}

	u, err := provider.Link(modules...)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("loaded universe", zap.Int("modules", len(modules)), zap.Int("classes", len(u.Classes())))
	return u, warnings, nil
}

// validateGeneration checks the settings used by generation alone.
func validateGeneration(cfg Config) error {
	c := cfg
	// Source settings do not apply to a preloaded universe.
	c.Source, c.Graphs, c.Packages = "", nil, nil
	return c.Validate()
}

func generate(ctx context.Context, u *ir.Universe, cfg Config, reporter export.Reporter, out sink.OutputSink) (*Result, error) {
	gen := export.NewHeaderGenerator(cfg.exportOptions())
	gen.Reporter = reporter
	h, err := gen.Generate(u)
	if err != nil {
		return nil, err
	}

	path := cfg.HeaderName()
	if err := out.WriteFile(ctx, path, []byte(h.String())); err != nil {
		return nil, errors.Wrapf(err, "writing %s", path)
	}
	export.Logger().Info("generated header",
		zap.String("path", path),
		zap.Int("stubs", len(h.Stubs)),
		zap.Int("warnings", len(h.Warnings)))
	return &Result{Header: h, Path: path, Warnings: h.Warnings}, nil
}
