package export

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/broady/objcbridge/objcgen/bridge"
	"github.com/broady/objcbridge/objcgen/ir"
	"github.com/broady/objcbridge/objcgen/namer"
	"github.com/broady/objcbridge/objcgen/objc"
)

var nsError = &objc.ClassType{Name: "NSError"}

// BuildMethod builds the stub of method as an implementation of base: the
// shape, selector and Swift name come from base, the types from method.
func (t *Translator) BuildMethod(method, base *ir.Function, scope *bridge.Scope, unavailable bool) *objc.Method {
	ctx := t.ctx
	if !base.Exposed {
		panic(errors.AssertionFailedf("method %s is not exposed", base.QualifiedName()))
	}
	mb := ctx.bridgeMethod(base)
	parts := splitSelector(ctx.namer.Selector(base))
	params := t.parameters(mb, method, scope)
	if len(params) != len(parts) && !(len(params) == 0 && len(parts) == 1) {
		panic(errors.AssertionFailedf("method %s: %d selector parts for %d parameters",
			base.QualifiedName(), len(parts), len(params)))
	}

	m := &objc.Method{
		IsInstance: mb.IsInstance(),
		ReturnType: t.returnType(mb, method, scope),
		Selectors:  parts,
		Parameters: params,
	}
	if swift := ctx.namer.SwiftName(base); swift != impliedSwiftName(parts) {
		m.Attributes = append(m.Attributes, objc.SwiftNameAttribute(swift))
	}
	if method.IsConstructor() {
		m.Attributes = append(m.Attributes, objc.DesignatedInitializerAttribute)
	}
	if unavailable {
		m.Attributes = append(m.Attributes, "unavailable")
	} else if a := deprecationAttribute(method.Deprecated); a != "" {
		m.Attributes = append(m.Attributes, a)
	}
	m.Comment = t.methodComment(method, mb)
	return m
}

// splitSelector splits "initWithX:y:" into "initWithX:" and "y:".
func splitSelector(selector string) []string {
	if !strings.HasSuffix(selector, ":") {
		return []string{selector}
	}
	parts := strings.Split(strings.TrimSuffix(selector, ":"), ":")
	for i := range parts {
		parts[i] += ":"
	}
	return parts
}

// impliedSwiftName returns the name Swift derives from a selector without a
// swift_name attribute: "renameTo:reason:" imports as "renameTo(_:reason:)".
func impliedSwiftName(parts []string) string {
	if len(parts) == 1 && !strings.HasSuffix(parts[0], ":") {
		return parts[0] + "()"
	}
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(parts[0], ":"))
	b.WriteString("(_:")
	for _, p := range parts[1:] {
		b.WriteString(p)
	}
	b.WriteByte(')')
	return b.String()
}

func (t *Translator) parameters(mb bridge.MethodBridge, method *ir.Function, scope *bridge.Scope) []objc.Parameter {
	ctx := t.ctx
	used := make(map[string]bool)
	out := make([]objc.Parameter, 0, len(mb.Params))
	for _, p := range mb.Params {
		var name string
		var typ objc.Type
		switch p.Kind {
		case bridge.ParamMapped:
			var pt *ir.TypeRef
			switch {
			case p.Receiver:
				name, pt = "receiver", method.Receiver
			case p.Index < len(method.Params):
				name, pt = method.Params[p.Index].Name, method.Params[p.Index].Type
				if method.FuncKind == ir.KindSetter {
					name = "value"
				}
			}
			if pt == nil {
				panic(errors.AssertionFailedf("method %s has no parameter for bridge index %d",
					method.QualifiedName(), p.Index))
			}
			typ = ctx.mapper.MapType(pt, p.Bridge, scope)
		case bridge.ParamErrorOut:
			name = "error"
			typ = &objc.PointerType{Pointee: objc.Nullable(nsError), Nullable: true}
		case bridge.ParamResultOut:
			name = "result"
			typ = t.resultOutType(method, p.Bridge, scope)
		case bridge.ParamSuspendCompletion:
			name = "completionHandler"
			typ = t.completionType(method, p, scope)
		default:
			panic(errors.AssertionFailedf("unknown parameter kind %d", p.Kind))
		}
		name = uniqueName(name, used)
		used[name] = true
		out = append(out, objc.Parameter{Name: name, Type: typ})
	}
	return out
}

func uniqueName(name string, used map[string]bool) string {
	name = objc.SanitizeIdentifier(name)
	for used[name] || objc.IsReserved(name) {
		name += "_"
	}
	return name
}

func (t *Translator) resultOutType(method *ir.Function, b bridge.TypeBridge, scope *bridge.Scope) objc.Type {
	if method.Returns == nil {
		panic(errors.AssertionFailedf("method %s stores a unit result", method.QualifiedName()))
	}
	if _, ok := b.(bridge.ValueTypeBridge); ok {
		return &objc.PointerType{Pointee: t.ctx.mapper.MapType(method.Returns, b, scope)}
	}
	return &objc.PointerType{Pointee: objc.Nullable(t.ctx.mapper.MapNonNull(method.Returns, scope))}
}

func (t *Translator) completionType(method *ir.Function, p bridge.ParameterBridge, scope *bridge.Scope) objc.Type {
	var params []objc.ReferenceType
	if !p.UnitCompletion {
		switch r := t.ctx.mapper.MapReferenceType(method.Returns, scope).(type) {
		case *objc.NullableReferenceType:
			params = append(params, &objc.NullableReferenceType{NonNull: r.NonNull, IsNullableResult: true})
		case objc.NonNullReferenceType:
			params = append(params, objc.Nullable(r))
		}
	}
	params = append(params, objc.Nullable(nsError))
	return &objc.BlockPointerType{Params: params, Return: objc.Void}
}

func (t *Translator) returnType(mb bridge.MethodBridge, method *ir.Function, scope *bridge.Scope) objc.Type {
	rb := mb.Return
	switch rb.Kind {
	case bridge.ReturnVoid, bridge.ReturnSuspend:
		return objc.Void
	case bridge.ReturnHashCode:
		return objc.UInteger
	case bridge.ReturnInstance:
		if mb.ReturnsError() {
			return objc.Nullable(objc.Instance)
		}
		return objc.Instance
	case bridge.ReturnValue:
		return t.ctx.mapper.MapType(method.Returns, rb.Bridge, scope)
	case bridge.ReturnSuccess, bridge.ReturnResultOut:
		return objc.Bool
	case bridge.ReturnZeroForError:
		nonNull, ok := t.ctx.mapper.MapType(method.Returns, rb.Bridge, scope).(objc.NonNullReferenceType)
		if !ok {
			panic(errors.AssertionFailedf("method %s: result that may be zero is bridged as nil-on-error",
				method.QualifiedName()))
		}
		return objc.Nullable(nonNull)
	default:
		panic(errors.AssertionFailedf("unknown return kind %v", rb.Kind))
	}
}

// BuildProperty builds the stub of property as an implementation of base.
func (t *Translator) BuildProperty(property, base *ir.Property, scope *bridge.Scope) *objc.Property {
	ctx := t.ctx
	if !base.Exposed || base.Getter == nil {
		panic(errors.AssertionFailedf("property %s is not exposed", base.QualifiedName()))
	}
	if !t.isObjCProperty(base) {
		panic(errors.AssertionFailedf("property %s cannot be declared as a property", base.QualifiedName()))
	}
	getter := ctx.bridgeMethod(base.Getter)
	name := ctx.namer.PropertyName(base)

	p := &objc.Property{
		Comment: t.docComment(property.Documentation),
		Name:    name,
		Type:    t.returnType(getter, property.Getter, scope),
	}
	if !getter.IsInstance() {
		p.PropertyAttributes = append(p.PropertyAttributes, "class")
	}
	if s := property.Setter; s != nil && s.Exposed {
		if sel := t.setterSelector(s); sel != "set"+namer.Capitalize(name)+":" {
			p.PropertyAttributes = append(p.PropertyAttributes, "setter="+sel)
		}
	} else {
		p.PropertyAttributes = append(p.PropertyAttributes, "readonly")
	}
	if sel := ctx.namer.Selector(base.Getter); sel != name {
		p.PropertyAttributes = append(p.PropertyAttributes, "getter="+sel)
	}
	if swift := base.Names.SwiftName; swift != "" && swift != name {
		p.DeclarationAttributes = append(p.DeclarationAttributes, objc.SwiftNameAttribute(swift))
	}
	if a := deprecationAttribute(property.Deprecated); a != "" {
		p.DeclarationAttributes = append(p.DeclarationAttributes, a)
	}
	return p
}

// setterSelector returns the single selector shared by the bases of s.
func (t *Translator) setterSelector(s *ir.Function) string {
	var sel string
	for _, b := range baseMethods(s) {
		next := t.ctx.namer.Selector(b)
		if sel != "" && next != sel {
			panic(errors.AssertionFailedf("setter %s has bases with selectors %s and %s",
				s.QualifiedName(), sel, next))
		}
		sel = next
	}
	return sel
}

// methodSignatures returns the stubs f produces as a declared or inherited
// member, one per distinct base selector. The result is memoized; the
// entry is reserved before bases are visited.
func (t *Translator) methodSignatures(f *ir.Function) []objc.Stub {
	ctx := t.ctx
	if s, ok := ctx.methodStubs[f]; ok {
		return s
	}
	ctx.methodStubs[f] = nil

	isInterface := f.Owner != nil && f.Owner.IsInterface()
	scope := t.classScope(f.Owner)
	seen := make(map[string]bool)
	var out []objc.Stub
	for _, base := range baseMethods(f) {
		sel := ctx.namer.Selector(base)
		if seen[sel] {
			continue
		}
		seen[sel] = true
		method := f
		if isInterface {
			method = base
		}
		out = append(out, t.BuildMethod(method, base, scope, false))
	}
	ctx.methodStubs[f] = out
	return out
}

// propertySignatures is methodSignatures for properties.
func (t *Translator) propertySignatures(p *ir.Property) []objc.Stub {
	ctx := t.ctx
	if s, ok := ctx.propertyStubs[p]; ok {
		return s
	}
	ctx.propertyStubs[p] = nil

	isInterface := p.Owner != nil && p.Owner.IsInterface()
	scope := t.classScope(p.Owner)
	seen := make(map[string]bool)
	var out []objc.Stub
	for _, base := range baseProperties(p) {
		name := ctx.namer.PropertyName(base)
		if seen[name] {
			continue
		}
		seen[name] = true
		property := p
		if isInterface {
			property = base
		}
		out = append(out, t.BuildProperty(property, base, scope))
	}
	ctx.propertyStubs[p] = out
	return out
}

// declaredOrInheritedMethods returns the stubs of f that its overridden
// members do not already declare with the same signature.
func (t *Translator) declaredOrInheritedMethods(f *ir.Function) []objc.Stub {
	own := t.methodSignatures(f)
	var inherited []objc.Stub
	for _, o := range exposedFunctions(f.Overridden) {
		inherited = append(inherited, t.methodSignatures(o)...)
	}
	return subtractSignatures(own, inherited)
}

func (t *Translator) declaredOrInheritedProperties(p *ir.Property) []objc.Stub {
	own := t.propertySignatures(p)
	var inherited []objc.Stub
	for _, o := range p.Overridden {
		if o.Exposed {
			inherited = append(inherited, t.propertySignatures(o)...)
		}
	}
	return subtractSignatures(own, inherited)
}

func subtractSignatures(own, inherited []objc.Stub) []objc.Stub {
	if len(inherited) == 0 {
		return own
	}
	have := make(map[string]bool, len(inherited))
	for _, s := range inherited {
		have[objc.Signature(s)] = true
	}
	var out []objc.Stub
	for _, s := range own {
		if !have[objc.Signature(s)] {
			out = append(out, s)
		}
	}
	return out
}

func exposedFunctions(fs []*ir.Function) []*ir.Function {
	var out []*ir.Function
	for _, f := range fs {
		if f.Exposed {
			out = append(out, f)
		}
	}
	return out
}

// isBaseMethod reports whether f overrides no exposed method.
func isBaseMethod(f *ir.Function) bool {
	return len(exposedFunctions(f.Overridden)) == 0
}

// baseMethods returns the base methods f transitively overrides, or f
// itself when it is a base method.
func baseMethods(f *ir.Function) []*ir.Function {
	var out []*ir.Function
	seen := make(map[*ir.Function]bool)
	var walk func(*ir.Function)
	walk = func(f *ir.Function) {
		if seen[f] {
			return
		}
		seen[f] = true
		supers := exposedFunctions(f.Overridden)
		if len(supers) == 0 {
			out = append(out, f)
			return
		}
		for _, s := range supers {
			walk(s)
		}
	}
	walk(f)
	return out
}

func isBaseProperty(p *ir.Property) bool {
	for _, o := range p.Overridden {
		if o.Exposed {
			return false
		}
	}
	return true
}

func baseProperties(p *ir.Property) []*ir.Property {
	var out []*ir.Property
	seen := make(map[*ir.Property]bool)
	var walk func(*ir.Property)
	walk = func(p *ir.Property) {
		if seen[p] {
			return
		}
		seen[p] = true
		if isBaseProperty(p) {
			out = append(out, p)
			return
		}
		for _, o := range p.Overridden {
			if o.Exposed {
				walk(o)
			}
		}
	}
	walk(p)
	return out
}

// methodComment returns the documentation of method plus a note on how
// thrown exceptions cross the boundary.
func (t *Translator) methodComment(method *ir.Function, mb bridge.MethodBridge) *objc.Comment {
	lines := t.docLines(method.Documentation)
	if method.Suspend || mb.ReturnsError() {
		var note []string
		thrown, _ := t.effectiveThrows(method)
		switch {
		case containsClass(thrown, ir.FqThrowable):
			note = []string{"@note This method converts all exceptions to errors."}
		case len(thrown) > 0:
			names := make([]string, len(thrown))
			for i, c := range thrown {
				names[i] = relativeName(c)
			}
			note = []string{
				"@note This method converts instances of " + strings.Join(names, ", ") + " to errors.",
				"Other uncaught exceptions are fatal.",
			}
		default:
			note = []string{"@warning All uncaught exceptions are fatal."}
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, note...)
	}
	if len(lines) == 0 {
		return nil
	}
	return &objc.Comment{Lines: lines}
}

// effectiveThrows returns the throwable classes declared by the root of
// method's override chain, and the declared types that are not throwable.
// Suspend functions without a declaration throw cancellation.
func (t *Translator) effectiveThrows(method *ir.Function) ([]*ir.ClassDecl, []*ir.TypeRef) {
	root := overrideRoot(method)
	if len(root.Throws) == 0 {
		if root.Suspend {
			if c := t.ctx.Universe.Lookup(ir.FqCancellationException); c != nil {
				return []*ir.ClassDecl{c}, nil
			}
		}
		return nil, nil
	}
	throwable := t.ctx.Universe.Lookup(ir.FqThrowable)
	var ok []*ir.ClassDecl
	var bad []*ir.TypeRef
	for _, tr := range root.Throws {
		c := tr.Class
		if c != nil && (c == throwable || c.IsSubclassOf(throwable)) {
			ok = append(ok, c)
		} else {
			bad = append(bad, tr)
		}
	}
	return ok, bad
}

// overrideRoot follows the first overridden declaration to the root.
func overrideRoot(f *ir.Function) *ir.Function {
	seen := map[*ir.Function]bool{f: true}
	for len(f.Overridden) > 0 && !seen[f.Overridden[0]] {
		f = f.Overridden[0]
		seen[f] = true
	}
	return f
}

// exportThrown requires the classes f may throw and reports inconsistent
// declarations.
func (t *Translator) exportThrown(f *ir.Function) {
	if !f.DoesThrow() && !f.Suspend {
		return
	}
	root := overrideRoot(f)
	if root != f && f.DoesThrow() && !root.DoesThrow() {
		reportMember(t.ctx.reporter, CodeThrows, f,
			"Member overrides a function that does not throw; its thrown exception types are ignored")
	}
	thrown, bad := t.effectiveThrows(f)
	if root == f {
		for _, tr := range bad {
			reportMember(t.ctx.reporter, CodeNotThrowable, f,
				"Thrown type "+tr.String()+" is not throwable and is ignored")
		}
	}
	for _, c := range thrown {
		if c.Exposed {
			t.ctx.require(c)
		}
	}
}

func containsClass(cs []*ir.ClassDecl, fqName string) bool {
	for _, c := range cs {
		if c.FqName() == fqName {
			return true
		}
	}
	return false
}

// relativeName returns the class name without its package.
func relativeName(c *ir.ClassDecl) string {
	if c.Package == "" {
		return c.FqName()
	}
	return strings.TrimPrefix(c.FqName(), c.Package+".")
}
