// Package export translates a declaration graph into an Objective-C header.
//
// A pass seeds the foundational declarations, translates every exposed
// class of the exported modules depth-first, emits extension categories and
// file holder classes, then drains a worklist of classes discovered through
// references. References to classes that are not yet emitted are
// forward-declared.
package export

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/objcbridge/objcgen/bridge"
	"github.com/broady/objcbridge/objcgen/ir"
)

// HeaderGenerator runs generation passes.
type HeaderGenerator struct {
	Options Options

	// Reporter receives modeling warnings. Nil uses a Diagnostics whose
	// warnings are returned in Header.Warnings.
	Reporter Reporter
}

// NewHeaderGenerator returns a generator with the given options.
func NewHeaderGenerator(opts Options) *HeaderGenerator {
	return &HeaderGenerator{Options: opts}
}

// Generate translates u. Invariant violations found during the pass are
// returned as errors and no header is produced.
func (g *HeaderGenerator) Generate(u *ir.Universe) (h *Header, err error) {
	if err := g.Options.validate(u); err != nil {
		return nil, errors.Wrap(err, "invalid options")
	}
	reg, err := bridge.NewRegistry(g.Options.Prefix, g.Options.Mappings...)
	if err != nil {
		return nil, errors.Wrap(err, "invalid type mappings")
	}
	reporter := g.Reporter
	diags, _ := reporter.(*Diagnostics)
	if reporter == nil {
		diags = NewDiagnostics(Logger())
		reporter = diags
	}

	log := Logger()
	ctx := newContext(u, g.Options, reg, reporter, log)
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			h, err = nil, errors.Wrap(e, "generating header")
		}
	}()

	t := &Translator{ctx: ctx}
	t.seed()

	modules := g.Options.translatedModules(u)
	categories, holders := t.partition(modules)

	for _, m := range modules {
		for _, f := range m.Files {
			for _, c := range f.Classes {
				t.translateTree(c)
			}
		}
	}
	for _, cat := range categories {
		t.TranslateExtensions(cat.class, cat.members)
	}
	for _, hl := range holders {
		t.TranslateFile(hl.pkg, hl.file, hl.members)
	}

	drained := 0
	for len(ctx.worklist) > 0 {
		c := ctx.worklist[0]
		ctx.worklist = ctx.worklist[1:]
		if !ctx.generated[c] {
			t.TranslateClass(c)
			drained++
		}
	}
	log.Debug("worklist drained",
		zap.Int("classes", drained),
		zap.Int("forwardClasses", len(ctx.classForward.items)),
		zap.Int("forwardProtocols", len(ctx.protocolForward.items)))

	h = &Header{
		Imports:         headerImports(g.Options.Imports),
		ClassForward:    ctx.classForward.list(),
		ProtocolForward: ctx.protocolForward.list(),
		Stubs:           ctx.stubs,
	}
	if diags != nil {
		h.Warnings = append(h.Warnings, diags.Warnings...)
	}
	return h, nil
}

// translateTree translates c and its nested classes when exposed. Custom
// mapped classes never get their own interface.
func (t *Translator) translateTree(c *ir.ClassDecl) {
	if !c.Exposed || c.Hidden || t.ctx.bridger.Mappers.IsSpecialMapped(c) {
		return
	}
	t.TranslateClass(c)
	for _, n := range c.Nested {
		t.translateTree(n)
	}
}

type categoryMembers struct {
	class   *ir.ClassDecl
	members []ir.Member
}

type fileMembers struct {
	pkg, file string
	members   []ir.Member
}

// partition splits the exposed top-level members of modules into extension
// categories, keyed by receiver class, and file holders. Both keep first
// appearance order.
func (t *Translator) partition(modules []*ir.Module) ([]*categoryMembers, []*fileMembers) {
	var categories []*categoryMembers
	byClass := make(map[*ir.ClassDecl]*categoryMembers)
	var holders []*fileMembers
	for _, m := range modules {
		for _, f := range m.Files {
			var holder *fileMembers
			for _, mem := range f.Members {
				if !mem.ShouldBeExposed() {
					continue
				}
				var receiver *ir.TypeRef
				switch mem := mem.(type) {
				case *ir.Function:
					receiver = mem.Receiver
				case *ir.Property:
					receiver = mem.Receiver
				}
				if c := t.ctx.bridger.Mappers.CategoryClass(receiver); c != nil {
					cat := byClass[c]
					if cat == nil {
						cat = &categoryMembers{class: c}
						byClass[c] = cat
						categories = append(categories, cat)
					}
					cat.members = append(cat.members, mem)
					continue
				}
				if holder == nil {
					holder = &fileMembers{pkg: f.Package, file: f.Name}
					holders = append(holders, holder)
				}
				holder.members = append(holder.members, mem)
			}
		}
	}
	return categories, holders
}
