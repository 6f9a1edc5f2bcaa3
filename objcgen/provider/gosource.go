package provider

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"

	"github.com/broady/objcbridge/internal/directive"
	"github.com/broady/objcbridge/objcgen/ir"
)

// Warning codes reported by GoSource.
const (
	CodeUnsupportedType      = "unsupported_type"
	CodeUnsupportedSignature = "unsupported_signature"
)

// GoSource builds a declaration graph by analyzing Go packages.
//
// Exported structs become final classes and exported interfaces become
// interfaces. A struct embedding another struct of the analyzed packages
// extends it, and adopts every analyzed interface its pointer type
// implements. Named basic types with exported constants become enums.
// NewT functions returning T or *T are constructors of T. A leading
// context.Context parameter makes a function suspend, and a trailing
// error result makes it throw.
type GoSource struct{}

// GoSourceOptions configures source-based extraction.
type GoSourceOptions struct {
	// Packages are the Go package patterns to analyze.
	Packages []string

	// Dir is the directory patterns are resolved in. Empty means the
	// current directory.
	Dir string

	// Module names the resulting module. Empty uses the name of the first
	// package.
	Module string
}

// Load analyzes the packages and returns a module holding their exported
// declarations. Declarations whose types cannot be represented are skipped
// and reported as warnings.
func (p *GoSource) Load(ctx context.Context, opts GoSourceOptions) (*ir.Module, []ir.Warning, error) {
	if len(opts.Packages) == 0 {
		return nil, nil, errors.New("no packages specified")
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     opts.Dir,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}
	pkgs, err := packages.Load(cfg, opts.Packages...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "loading packages")
	}
	if len(pkgs) == 0 {
		return nil, nil, errors.Newf("no packages found matching %v", opts.Packages)
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, nil, errors.Newf("package %s has errors: %v", pkg.PkgPath, pkg.Errors[0])
		}
	}
	sort.SliceStable(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })

	name := opts.Module
	if name == "" {
		name = pkgs[0].Name
	}
	b := &moduleBuilder{
		module:     &ir.Module{Name: name},
		classes:    make(map[*types.TypeName]*ir.ClassDecl),
		enums:      make(map[*types.TypeName][]*types.Const),
		directives: make(map[types.Object]directive.Set),
		docs:       make(map[types.Object]*ast.CommentGroup),
		files:      make(map[string]*ir.File),
		methods:    make(map[*types.Func]*ir.Function),
		supers:     make(map[*ir.ClassDecl]*ir.ClassDecl),
	}
	if err := b.build(pkgs); err != nil {
		return nil, nil, err
	}
	return b.module, b.warnings, nil
}

// moduleBuilder accumulates the declarations of the analyzed packages.
type moduleBuilder struct {
	module   *ir.Module
	warnings []ir.Warning

	fset *token.FileSet

	classes    map[*types.TypeName]*ir.ClassDecl
	order      []*types.TypeName
	enums      map[*types.TypeName][]*types.Const
	directives map[types.Object]directive.Set
	docs       map[types.Object]*ast.CommentGroup
	files      map[string]*ir.File
	methods    map[*types.Func]*ir.Function
	supers     map[*ir.ClassDecl]*ir.ClassDecl
}

func (b *moduleBuilder) build(pkgs []*packages.Package) error {
	b.fset = pkgs[0].Fset
	for _, pkg := range pkgs {
		if err := b.index(pkg); err != nil {
			return err
		}
	}
	for _, pkg := range pkgs {
		b.declareClasses(pkg)
	}
	for _, tn := range b.order {
		if c := b.classes[tn]; c.IsInterface() {
			b.fillInterface(c, tn.Type().(*types.Named))
		}
	}
	for _, tn := range b.order {
		named := tn.Type().(*types.Named)
		switch c := b.classes[tn]; {
		case c.IsEnum():
			b.fillEnum(c, tn)
		case !c.IsInterface():
			b.fillStruct(c, named)
		}
	}
	for _, tn := range b.order {
		if c := b.classes[tn]; b.supers[c] != nil {
			b.linkOverrides(c)
		}
	}
	for _, tn := range b.order {
		if c := b.classes[tn]; c.ClassKind == ir.KindClass {
			b.adoptInterfaces(c, tn.Type().(*types.Named))
		}
	}
	for _, pkg := range pkgs {
		b.topLevel(pkg)
	}
	return nil
}

// index records doc comments and directives by declared object, and
// creates a file for every source file in order.
func (b *moduleBuilder) index(pkg *packages.Package) error {
	for _, f := range pkg.Syntax {
		filename := pkg.Fset.File(f.Pos()).Name()
		if _, ok := b.files[filename]; !ok {
			file := &ir.File{Name: filepath.Base(filename), Package: dottedPackage(pkg.PkgPath)}
			b.files[filename] = file
			b.module.Files = append(b.module.Files, file)
		}

		ix, err := directive.ScanFile(pkg.Fset, f)
		if err != nil {
			return err
		}
		record := func(n ast.Node, doc *ast.CommentGroup, names ...*ast.Ident) {
			for _, id := range names {
				obj := pkg.TypesInfo.Defs[id]
				if obj == nil {
					continue
				}
				if doc != nil {
					b.docs[obj] = doc
				}
				if s := ix.For(n); !s.IsZero() {
					b.directives[obj] = s
				}
			}
		}
		ast.Inspect(f, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.GenDecl:
				for _, spec := range n.Specs {
					switch spec := spec.(type) {
					case *ast.TypeSpec:
						record(spec, specDoc(n, spec.Doc), spec.Name)
					case *ast.ValueSpec:
						record(spec, specDoc(n, spec.Doc), spec.Names...)
					}
				}
			case *ast.FuncDecl:
				record(n, n.Doc, n.Name)
			case *ast.Field:
				record(n, n.Doc, n.Names...)
			}
			return true
		})
	}
	return nil
}

// specDoc returns the doc of a spec, falling back to the doc of its
// declaration group when the group has a single spec.
func specDoc(decl *ast.GenDecl, doc *ast.CommentGroup) *ast.CommentGroup {
	if doc == nil && len(decl.Specs) == 1 {
		return decl.Doc
	}
	return doc
}

// scopeObjects returns the exported package-level objects in source order.
func scopeObjects(pkg *packages.Package) []types.Object {
	scope := pkg.Types.Scope()
	var out []types.Object
	for _, name := range scope.Names() {
		if obj := scope.Lookup(name); obj.Exported() {
			out = append(out, obj)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pos() < out[j].Pos() })
	return out
}

// declareClasses creates the class shells of a package so that type
// references can be resolved before members are converted.
func (b *moduleBuilder) declareClasses(pkg *packages.Package) {
	objs := scopeObjects(pkg)
	for _, obj := range objs {
		c, ok := obj.(*types.Const)
		if !ok || b.directives[c].Exclude {
			continue
		}
		named, ok := c.Type().(*types.Named)
		if !ok || named.Obj().Pkg() != pkg.Types {
			continue
		}
		if _, basic := named.Underlying().(*types.Basic); basic {
			b.enums[named.Obj()] = append(b.enums[named.Obj()], c)
		}
	}

	for _, obj := range objs {
		tn, ok := obj.(*types.TypeName)
		if !ok || tn.IsAlias() || b.directives[tn].Exclude {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}
		var kind ir.DeclKind
		modality := ir.ModalityFinal
		switch u := named.Underlying().(type) {
		case *types.Struct:
			kind = ir.KindClass
		case *types.Interface:
			if !u.IsMethodSet() {
				// Constraint interfaces have no runtime representation.
				continue
			}
			kind, modality = ir.KindInterface, ir.ModalityAbstract
		case *types.Basic:
			if len(b.enums[tn]) == 0 {
				continue
			}
			kind = ir.KindEnumClass
		default:
			continue
		}

		dirs := b.directives[tn]
		c := &ir.ClassDecl{
			Package:       dottedPackage(pkg.PkgPath),
			Name:          tn.Name(),
			ClassKind:     kind,
			Modality:      modality,
			Exposed:       true,
			Hidden:        dirs.Hidden,
			Names:         names(dirs),
			Documentation: b.documentation(tn),
			Deprecated:    b.deprecation(tn),
			Source:        b.source(tn.Pos()),
		}
		if tps := named.TypeParams(); tps != nil && kind != ir.KindEnumClass {
			for i := 0; i < tps.Len(); i++ {
				c.TypeParameters = append(c.TypeParameters, ir.TypeParameter{Name: tps.At(i).Obj().Name()})
			}
		}
		b.classes[tn] = c
		b.order = append(b.order, tn)
		f := b.file(tn.Pos())
		f.Classes = append(f.Classes, c)
	}
}

func (b *moduleBuilder) fillInterface(c *ir.ClassDecl, named *types.Named) {
	iface := named.Underlying().(*types.Interface)
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		if ref := b.classRef(iface.EmbeddedType(i)); ref != nil && ref.Class.IsInterface() {
			c.SuperInterfaces = append(c.SuperInterfaces, ref.Type)
		}
	}
	for i := 0; i < iface.NumExplicitMethods(); i++ {
		m := iface.ExplicitMethod(i)
		if !m.Exported() || b.directives[m].Exclude {
			continue
		}
		if f := b.function(m, c.FqName()+"."+m.Name()); f != nil {
			c.Members = append(c.Members, f)
			b.methods[m] = f
		}
	}
}

func (b *moduleBuilder) fillEnum(c *ir.ClassDecl, tn *types.TypeName) {
	for _, k := range b.enums[tn] {
		name := k.Name()
		if trimmed := strings.TrimPrefix(name, tn.Name()); trimmed != name && trimmed != "" {
			name = trimmed
		}
		c.EnumEntries = append(c.EnumEntries, &ir.EnumEntry{
			Name:          name,
			Documentation: b.documentation(k),
			Source:        b.source(k.Pos()),
		})
	}
}

func (b *moduleBuilder) fillStruct(c *ir.ClassDecl, named *types.Named) {
	st := named.Underlying().(*types.Struct)
	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)
		if field.Embedded() {
			ref := b.classRef(field.Type())
			switch {
			case ref == nil:
			case ref.Class.IsInterface():
				c.SuperInterfaces = append(c.SuperInterfaces, ref.Type)
			case ref.Class.ClassKind == ir.KindClass && c.SuperClass == nil:
				c.SuperClass = ref.Type
				b.supers[c] = ref.Class
				ref.Class.Modality = ir.ModalityOpen
			}
			continue
		}
		if !field.Exported() || b.directives[field].Exclude {
			continue
		}
		qualified := c.FqName() + "." + field.Name()
		t, err := b.typeRef(field.Type())
		if err != nil {
			b.warn(CodeUnsupportedType, qualified, field.Pos(), err)
			continue
		}
		dirs := b.directives[field]
		c.Members = append(c.Members, &ir.Property{
			Name:          memberName(field.Name()),
			Type:          t,
			Setter:        &ir.Function{Exposed: !dirs.Hidden},
			Exposed:       !dirs.Hidden,
			Names:         names(dirs),
			Documentation: b.documentation(field),
			Deprecated:    b.deprecation(field),
			Source:        b.source(field.Pos()),
		})
	}

	for i := 0; i < named.NumMethods(); i++ {
		m := named.Method(i)
		if !m.Exported() || b.directives[m].Exclude {
			continue
		}
		if f := b.function(m, c.FqName()+"."+m.Name()); f != nil {
			c.Members = append(c.Members, f)
			b.methods[m] = f
		}
	}
}

// linkOverrides marks the methods of c overriding same-named methods of
// its superclass chain.
func (b *moduleBuilder) linkOverrides(c *ir.ClassDecl) {
	seen := make(map[*ir.ClassDecl]bool)
	for s := b.supers[c]; s != nil && !seen[s]; s = b.supers[s] {
		seen[s] = true
		for _, f := range c.Functions() {
			if len(f.Overridden) > 0 {
				continue
			}
			for _, sf := range s.Functions() {
				if sf.Name == f.Name && len(sf.Params) == len(f.Params) {
					f.Overridden = append(f.Overridden, sf)
				}
			}
		}
	}
}

// adoptInterfaces adds the analyzed interfaces that c implements and links
// its methods to the interface methods they implement. Interfaces already
// adopted by the superclass are not repeated.
func (b *moduleBuilder) adoptInterfaces(c *ir.ClassDecl, named *types.Named) {
	ptr := types.NewPointer(named)
	var superPtr types.Type
	if super := b.superNamed(named); super != nil {
		superPtr = types.NewPointer(super)
	}
	for _, itn := range b.order {
		ic := b.classes[itn]
		inamed := itn.Type().(*types.Named)
		if !ic.IsInterface() || inamed.TypeParams().Len() > 0 || named.TypeParams().Len() > 0 {
			continue
		}
		iface := inamed.Underlying().(*types.Interface)
		if iface.NumMethods() == 0 || !types.Implements(ptr, iface) {
			continue
		}
		if !hasSuperInterface(c, ic) && (superPtr == nil || !types.Implements(superPtr, iface)) {
			c.SuperInterfaces = append(c.SuperInterfaces, ir.Named(ic.FqName()))
		}
		for i := 0; i < iface.NumMethods(); i++ {
			base := b.methods[iface.Method(i)]
			if base == nil {
				continue
			}
			for _, f := range c.Functions() {
				if f.Name == base.Name && !containsFunction(f.Overridden, base) {
					f.Overridden = append(f.Overridden, base)
				}
			}
		}
	}
}

// superNamed returns the struct embedded as superclass of named, or nil.
func (b *moduleBuilder) superNamed(named *types.Named) *types.Named {
	st := named.Underlying().(*types.Struct)
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		if ref := b.classRef(f.Type()); ref != nil && ref.Class.ClassKind == ir.KindClass {
			return ref.named
		}
	}
	return nil
}

func hasSuperInterface(c, iface *ir.ClassDecl) bool {
	for _, s := range c.SuperInterfaces {
		if s.Is(iface.FqName()) {
			return true
		}
	}
	return false
}

func containsFunction(fs []*ir.Function, f *ir.Function) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}

// topLevel converts package-level functions, variables and constants, and
// methods of named types that are not classes.
func (b *moduleBuilder) topLevel(pkg *packages.Package) {
	for _, obj := range scopeObjects(pkg) {
		if b.directives[obj].Exclude {
			continue
		}
		qualified := dottedPackage(pkg.PkgPath) + "." + obj.Name()
		switch obj := obj.(type) {
		case *types.Func:
			f := b.function(obj, qualified)
			if f == nil {
				continue
			}
			if c := b.constructed(obj); c != nil {
				f.Name = ""
				c.Constructors = append(c.Constructors, f)
				continue
			}
			b.addMember(obj.Pos(), f)
		case *types.Var:
			b.topLevelProperty(obj, qualified, true)
		case *types.Const:
			if named, ok := obj.Type().(*types.Named); ok && b.classes[named.Obj()] != nil {
				continue
			}
			b.topLevelProperty(obj, qualified, false)
		case *types.TypeName:
			b.extensions(obj)
		}
	}
}

// constructed returns the class fn constructs: fn is named New<T> and
// returns T or *T, optionally with an error.
func (b *moduleBuilder) constructed(fn *types.Func) *ir.ClassDecl {
	sig := fn.Type().(*types.Signature)
	if !strings.HasPrefix(fn.Name(), "New") || sig.Results().Len() == 0 {
		return nil
	}
	t := sig.Results().At(0).Type()
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return nil
	}
	c := b.classes[named.Obj()]
	if c == nil || c.ClassKind != ir.KindClass || len(c.TypeParameters) > 0 || fn.Name() != "New"+named.Obj().Name() {
		return nil
	}
	return c
}

func (b *moduleBuilder) topLevelProperty(obj types.Object, qualified string, mutable bool) {
	t, err := b.typeRef(obj.Type())
	if err != nil {
		b.warn(CodeUnsupportedType, qualified, obj.Pos(), err)
		return
	}
	dirs := b.directives[obj]
	p := &ir.Property{
		Name:          memberName(obj.Name()),
		Type:          t,
		Exposed:       !dirs.Hidden,
		Names:         names(dirs),
		Documentation: b.documentation(obj),
		Deprecated:    b.deprecation(obj),
		Source:        b.source(obj.Pos()),
	}
	if mutable {
		p.Setter = &ir.Function{Exposed: p.Exposed}
	}
	b.addMember(obj.Pos(), p)
}

// extensions converts the methods of a named type that is not a class into
// extension functions on its underlying type.
func (b *moduleBuilder) extensions(tn *types.TypeName) {
	named, ok := tn.Type().(*types.Named)
	if !ok || b.classes[tn] != nil || named.TypeParams().Len() > 0 {
		return
	}
	for i := 0; i < named.NumMethods(); i++ {
		m := named.Method(i)
		if !m.Exported() || b.directives[m].Exclude {
			continue
		}
		qualified := dottedPackage(tn.Pkg().Path()) + "." + tn.Name() + "." + m.Name()
		receiver, err := b.typeRef(named.Underlying())
		if err != nil {
			b.warn(CodeUnsupportedType, qualified, m.Pos(), err)
			continue
		}
		if f := b.function(m, qualified); f != nil {
			f.Receiver = receiver
			b.addMember(m.Pos(), f)
		}
	}
}

func (b *moduleBuilder) addMember(pos token.Pos, m ir.Member) {
	f := b.file(pos)
	f.Members = append(f.Members, m)
}

// function converts a function or method signature. It returns nil after
// reporting a warning when the signature cannot be represented.
func (b *moduleBuilder) function(fn *types.Func, qualified string) *ir.Function {
	sig := fn.Type().(*types.Signature)
	if sig.TypeParams().Len() > 0 {
		b.warn(CodeUnsupportedSignature, qualified, fn.Pos(), errors.New("generic functions are not supported"))
		return nil
	}
	dirs := b.directives[fn]
	f := &ir.Function{
		Name:          memberName(fn.Name()),
		Exposed:       !dirs.Hidden,
		Names:         names(dirs),
		Documentation: b.documentation(fn),
		Deprecated:    b.deprecation(fn),
		Source:        b.source(fn.Pos()),
	}

	params := sig.Params()
	start := 0
	if params.Len() > 0 && isContext(params.At(0).Type()) {
		f.Suspend = true
		start = 1
	}
	for i := start; i < params.Len(); i++ {
		v := params.At(i)
		t, err := b.typeRef(v.Type())
		if err != nil {
			b.warn(CodeUnsupportedType, qualified, fn.Pos(), errors.Wrapf(err, "parameter %d", i))
			return nil
		}
		name := v.Name()
		if name == "" || name == "_" {
			name = "p" + strconv.Itoa(i)
		}
		f.Params = append(f.Params, &ir.Param{Name: name, Type: t})
	}

	results := sig.Results()
	n := results.Len()
	if n > 0 && isError(results.At(n-1).Type()) {
		f.Throws = []*ir.TypeRef{ir.Named(ir.FqException)}
		n--
	}
	switch n {
	case 0:
	case 1:
		t, err := b.typeRef(results.At(0).Type())
		if err != nil {
			b.warn(CodeUnsupportedType, qualified, fn.Pos(), errors.Wrap(err, "result"))
			return nil
		}
		f.Returns = t
	default:
		b.warn(CodeUnsupportedSignature, qualified, fn.Pos(), errors.New("multiple results are not supported"))
		return nil
	}
	return f
}

type classRef struct {
	Class *ir.ClassDecl
	Type  *ir.TypeRef
	named *types.Named
}

// classRef returns the class a type names, looking through one pointer.
func (b *moduleBuilder) classRef(t types.Type) *classRef {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return nil
	}
	c := b.classes[named.Obj()]
	if c == nil {
		return nil
	}
	ref, err := b.typeRef(named)
	if err != nil {
		return nil
	}
	return &classRef{Class: c, Type: ref, named: named}
}

// typeRef maps a Go type to a type reference.
func (b *moduleBuilder) typeRef(t types.Type) (*ir.TypeRef, error) {
	switch t := t.(type) {
	case *types.Alias:
		return b.typeRef(types.Unalias(t))
	case *types.Basic:
		return basicRef(t)
	case *types.Pointer:
		elem, err := b.typeRef(t.Elem())
		if err != nil {
			return nil, err
		}
		return elem.OrNull(), nil
	case *types.Slice:
		elem, err := b.typeRef(t.Elem())
		if err != nil {
			return nil, err
		}
		return ir.Named(ir.FqList, elem), nil
	case *types.Array:
		elem, err := b.typeRef(t.Elem())
		if err != nil {
			return nil, err
		}
		return ir.Named(ir.FqList, elem), nil
	case *types.Map:
		key, err := b.typeRef(t.Key())
		if err != nil {
			return nil, err
		}
		if st, ok := t.Elem().Underlying().(*types.Struct); ok && st.NumFields() == 0 {
			return ir.Named(ir.FqSet, key), nil
		}
		value, err := b.typeRef(t.Elem())
		if err != nil {
			return nil, err
		}
		return ir.Named(ir.FqMap, key, value), nil
	case *types.Named:
		if isError(t) {
			return ir.Named(ir.FqThrowable), nil
		}
		if c := b.classes[t.Obj()]; c != nil {
			var args []*ir.TypeRef
			if targs := t.TypeArgs(); targs != nil {
				for i := 0; i < targs.Len(); i++ {
					a, err := b.typeRef(targs.At(i))
					if err != nil {
						return nil, err
					}
					args = append(args, a)
				}
			}
			return ir.Named(c.FqName(), args...), nil
		}
		if b.directives[t.Obj()].Exclude {
			return nil, errors.Newf("type %s is excluded", t.Obj().Name())
		}
		switch t.Underlying().(type) {
		case *types.Struct, *types.Interface:
			return nil, errors.Newf("type %s is not part of the analyzed packages", t)
		}
		return b.typeRef(t.Underlying())
	case *types.Interface:
		if t.Empty() {
			return ir.Named(ir.FqAny).OrNull(), nil
		}
		return nil, errors.Newf("unsupported type %s", t)
	case *types.TypeParam:
		return ir.TypeParam(t.Obj().Name()), nil
	case *types.Signature:
		var params []*ir.TypeRef
		for i := 0; i < t.Params().Len(); i++ {
			p, err := b.typeRef(t.Params().At(i).Type())
			if err != nil {
				return nil, err
			}
			params = append(params, p)
		}
		var result *ir.TypeRef
		switch t.Results().Len() {
		case 0:
		case 1:
			r, err := b.typeRef(t.Results().At(0).Type())
			if err != nil {
				return nil, err
			}
			result = r
		default:
			return nil, errors.Newf("unsupported function type %s", t)
		}
		return ir.Func(result, params...), nil
	default:
		return nil, errors.Newf("unsupported type %s", t)
	}
}

func basicRef(t *types.Basic) (*ir.TypeRef, error) {
	switch t.Kind() {
	case types.Bool, types.UntypedBool:
		return ir.Value(ir.ValueBool), nil
	case types.Int8:
		return ir.Value(ir.ValueByte), nil
	case types.Int16:
		return ir.Value(ir.ValueShort), nil
	case types.Int32, types.UntypedRune:
		return ir.Value(ir.ValueInt), nil
	case types.Int, types.Int64, types.UntypedInt:
		return ir.Value(ir.ValueLong), nil
	case types.Uint8:
		return ir.Value(ir.ValueUByte), nil
	case types.Uint16:
		return ir.Value(ir.ValueUShort), nil
	case types.Uint32:
		return ir.Value(ir.ValueUInt), nil
	case types.Uint, types.Uint64, types.Uintptr:
		return ir.Value(ir.ValueULong), nil
	case types.Float32:
		return ir.Value(ir.ValueFloat), nil
	case types.Float64, types.UntypedFloat:
		return ir.Value(ir.ValueDouble), nil
	case types.String, types.UntypedString:
		return ir.Named(ir.FqString), nil
	case types.UnsafePointer:
		return ir.Value(ir.ValuePointer), nil
	default:
		return nil, errors.Newf("unsupported basic type %s", t)
	}
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

func isContext(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	return ok && named.Obj().Pkg() != nil && named.Obj().Pkg().Path() == "context" && named.Obj().Name() == "Context"
}

// memberName lowers the leading capitals of an exported Go name:
// Area becomes area, ID becomes id and URLPath becomes urlPath.
func memberName(name string) string {
	runes := []rune(name)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n > 1 && n < len(runes) {
		n--
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// dottedPackage turns an import path into a dotted package name.
func dottedPackage(path string) string {
	return strings.ReplaceAll(path, "/", ".")
}

func names(s directive.Set) ir.NameOverride {
	return ir.NameOverride{ObjCName: s.ObjCName, SwiftName: s.SwiftName, Exact: s.Exact}
}

func (b *moduleBuilder) file(pos token.Pos) *ir.File {
	return b.files[b.fset.Position(pos).Filename]
}

func (b *moduleBuilder) source(pos token.Pos) ir.Source {
	p := b.fset.Position(pos)
	return ir.Source{File: filepath.Base(p.Filename), Line: p.Line, Column: p.Column}
}

// documentation returns the doc comment of obj without directive lines.
func (b *moduleBuilder) documentation(obj types.Object) ir.Documentation {
	cg := b.docs[obj]
	if cg == nil {
		return ir.Documentation{}
	}
	text := strings.TrimSpace(cg.Text())
	if text == "" {
		return ir.Documentation{}
	}
	summary := text
	if i := strings.Index(text, "\n\n"); i >= 0 {
		summary = text[:i]
	}
	return ir.Documentation{Summary: summary, Body: text}
}

// deprecation reads a "Deprecated:" paragraph from the doc comment of obj.
func (b *moduleBuilder) deprecation(obj types.Object) *ir.Deprecation {
	body := b.documentation(obj).Body
	for _, para := range strings.Split(body, "\n\n") {
		if msg, ok := strings.CutPrefix(para, "Deprecated:"); ok {
			return &ir.Deprecation{
				Message: strings.Join(strings.Fields(msg), " "),
				Level:   ir.DeprecationWarning,
			}
		}
	}
	return nil
}

func (b *moduleBuilder) warn(code, decl string, pos token.Pos, err error) {
	src := b.source(pos)
	b.warnings = append(b.warnings, ir.Warning{
		Code:    code,
		Message: err.Error(),
		Decl:    decl,
		Source:  &src,
	})
}
