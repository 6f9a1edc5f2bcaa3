package export

import (
	"go.uber.org/zap"

	"github.com/broady/objcbridge/objcgen/bridge"
	"github.com/broady/objcbridge/objcgen/ir"
	"github.com/broady/objcbridge/objcgen/namer"
	"github.com/broady/objcbridge/objcgen/objc"
)

// orderedSet is a set of names that remembers insertion order.
type orderedSet struct {
	items []string
	index map[string]bool
}

// add inserts v and reports whether it was new.
func (s *orderedSet) add(v string) bool {
	if s.index == nil {
		s.index = make(map[string]bool)
	}
	if s.index[v] {
		return false
	}
	s.index[v] = true
	s.items = append(s.items, v)
	return true
}

func (s *orderedSet) list() []string {
	return append([]string(nil), s.items...)
}

// Context holds the state of one generation pass. It is created fresh for
// every call to HeaderGenerator.Generate and never shared.
type Context struct {
	Universe *ir.Universe
	Options  Options

	namer    *namer.Namer
	bridger  *bridge.Bridger
	mapper   *bridge.TypeMapper
	reporter Reporter
	log      *zap.Logger

	stubs           []objc.Stub
	classForward    orderedSet
	protocolForward orderedSet

	// generated holds classes whose translation has started.
	generated map[*ir.ClassDecl]bool
	// emitted holds class and protocol names whose stub is in stubs.
	emittedClasses   map[string]bool
	emittedProtocols map[string]bool

	worklist []*ir.ClassDecl
	queued   map[*ir.ClassDecl]bool

	// current is the class or protocol being translated.
	current *ir.ClassDecl

	bridges       map[*ir.Function]bridge.MethodBridge
	methodStubs   map[*ir.Function][]objc.Stub
	propertyStubs map[*ir.Property][]objc.Stub
}

func newContext(u *ir.Universe, opts Options, reg *bridge.Registry, r Reporter, log *zap.Logger) *Context {
	c := &Context{
		Universe:         u,
		Options:          opts,
		bridger:          &bridge.Bridger{Mappers: reg},
		reporter:         r,
		log:              log,
		generated:        make(map[*ir.ClassDecl]bool),
		emittedClasses:   make(map[string]bool),
		emittedProtocols: make(map[string]bool),
		queued:           make(map[*ir.ClassDecl]bool),
		bridges:          make(map[*ir.Function]bridge.MethodBridge),
		methodStubs:      make(map[*ir.Function][]objc.Stub),
		propertyStubs:    make(map[*ir.Property][]objc.Stub),
	}
	c.namer = namer.New(opts.Prefix, opts.exportedModules(u), c.bridger)
	c.mapper = &bridge.TypeMapper{
		Mappers:  reg,
		Refs:     c,
		Namer:    c.namer,
		Warner:   c,
		Generics: opts.Generics,
	}
	return c
}

// ReferenceClass implements bridge.References. The class is queued for
// translation and forward-declared unless it is already emitted or is
// being translated.
func (c *Context) ReferenceClass(d *ir.ClassDecl) string {
	name := c.namer.ClassOrProtocolName(d).ObjCName
	c.require(d)
	if d != c.current && !c.emittedClasses[name] && c.classForward.add(name) {
		c.log.Debug("forward-declared class", zap.String("class", name))
	}
	return name
}

// ReferenceProtocol implements bridge.References.
func (c *Context) ReferenceProtocol(d *ir.ClassDecl) string {
	name := c.namer.ClassOrProtocolName(d).ObjCName
	c.require(d)
	if d != c.current && !c.emittedProtocols[name] && c.protocolForward.add(name) {
		c.log.Debug("forward-declared protocol", zap.String("protocol", name))
	}
	return name
}

// Report implements bridge.Warner.
func (c *Context) Report(msg string) { c.reporter.Report(msg) }

// require queues d for translation unless it is translated or queued.
func (c *Context) require(d *ir.ClassDecl) {
	if c.generated[d] || c.queued[d] || d.IsForeign() {
		return
	}
	c.queued[d] = true
	c.worklist = append(c.worklist, d)
}

// bridgeMethod returns the memoized bridge of f.
func (c *Context) bridgeMethod(f *ir.Function) bridge.MethodBridge {
	if mb, ok := c.bridges[f]; ok {
		return mb
	}
	mb := c.bridger.BridgeMethod(f)
	c.bridges[f] = mb
	return mb
}

// emit appends a top-level stub and records emitted classes and protocols.
func (c *Context) emit(s objc.Stub) {
	c.stubs = append(c.stubs, s)
	switch s := s.(type) {
	case *objc.Interface:
		if !s.IsCategory() {
			c.emittedClasses[s.Name] = true
		}
	case *objc.Protocol:
		c.emittedProtocols[s.Name] = true
	}
}
