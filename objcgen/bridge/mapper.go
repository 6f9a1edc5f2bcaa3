package bridge

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/broady/objcbridge/objcgen/ir"
	"github.com/broady/objcbridge/objcgen/objc"
)

// CustomMapper maps references to one source class to a fixed
// Objective-C type.
type CustomMapper interface {
	// MappedClass returns the qualified name of the handled class.
	MappedClass() string

	// Map maps t, a non-null reference to the handled class whose type
	// arguments are already substituted.
	Map(t *ir.TypeRef, m *TypeMapper, scope *Scope) objc.NonNullReferenceType
}

// TargetKind is the kind of Objective-C type a user mapping targets.
type TargetKind string

const (
	TargetClass    TargetKind = "class"
	TargetProtocol TargetKind = "protocol"
	TargetRaw      TargetKind = "raw"
)

// Mapping is a user-configured custom mapping.
type Mapping struct {
	// Class is the qualified name of the source class.
	Class string

	// Target is the Objective-C class, protocol or raw type text.
	Target string

	Kind TargetKind
}

type collectionMapper struct {
	class  string
	target string
}

func (c collectionMapper) MappedClass() string { return c.class }

func (c collectionMapper) Map(t *ir.TypeRef, m *TypeMapper, scope *Scope) objc.NonNullReferenceType {
	var args []objc.NonNullReferenceType
	for _, a := range t.Args {
		if a == nil {
			args = append(args, objc.ID)
			continue
		}
		args = append(args, m.MapNonNull(a, scope))
	}
	return &objc.ClassType{Name: c.target, TypeArgs: args}
}

type userMapper struct {
	Mapping
}

func (u userMapper) MappedClass() string { return u.Class }

func (u userMapper) Map(*ir.TypeRef, *TypeMapper, *Scope) objc.NonNullReferenceType {
	switch u.Kind {
	case TargetProtocol:
		return &objc.ProtocolType{Name: u.Target}
	case TargetRaw:
		return &objc.RawType{Text: u.Target}
	default:
		return &objc.ClassType{Name: u.Target}
	}
}

// Registry holds the custom mappers of a pass.
type Registry struct {
	mappers map[string]CustomMapper
}

// NewRegistry returns a registry with the built-in mappers of the standard
// classes, then the user mappings. A user mapping may replace a built-in
// one but not another user mapping.
func NewRegistry(prefix string, user ...Mapping) (*Registry, error) {
	r := &Registry{mappers: make(map[string]CustomMapper)}
	for _, m := range []CustomMapper{
		userMapper{Mapping{Class: ir.FqString, Target: "NSString", Kind: TargetClass}},
		collectionMapper{class: ir.FqList, target: "NSArray"},
		collectionMapper{class: ir.FqMutableList, target: "NSMutableArray"},
		collectionMapper{class: ir.FqSet, target: "NSSet"},
		collectionMapper{class: ir.FqMutableSet, target: prefix + "MutableSet"},
		collectionMapper{class: ir.FqMap, target: "NSDictionary"},
		collectionMapper{class: ir.FqMutableMap, target: prefix + "MutableDictionary"},
	} {
		r.mappers[m.MappedClass()] = m
	}
	seen := make(map[string]bool)
	for _, m := range user {
		if m.Class == "" || m.Target == "" {
			return nil, errors.Newf("type mapping %+v: class and target are required", m)
		}
		switch m.Kind {
		case "", TargetClass, TargetProtocol, TargetRaw:
		default:
			return nil, errors.Newf("type mapping for %s: unknown kind %q", m.Class, m.Kind)
		}
		if seen[m.Class] {
			return nil, errors.Newf("duplicate type mapping for %s", m.Class)
		}
		seen[m.Class] = true
		r.mappers[m.Class] = userMapper{m}
	}
	return r, nil
}

// Register adds or replaces a mapper.
func (r *Registry) Register(m CustomMapper) {
	r.mappers[m.MappedClass()] = m
}

// Lookup returns the mapper for a class, or nil.
func (r *Registry) Lookup(c *ir.ClassDecl) CustomMapper {
	if c == nil {
		return nil
	}
	return r.mappers[c.FqName()]
}

// Match is a custom mapper applicable to a type through one of its
// supertypes.
type Match struct {
	Type   *ir.TypeRef
	Mapper CustomMapper
}

// Class returns the matched class.
func (m Match) Class() *ir.ClassDecl { return m.Type.Class }

// Matches returns the most specific mappers applicable to t or any of its
// supertypes. A match is dropped when another match's class is a strict
// subclass of it. More than one result is an ambiguity; results are sorted
// by qualified class name.
func (r *Registry) Matches(t *ir.TypeRef) []Match {
	var all []Match
	for _, s := range ir.TypeWithSupertypes(t) {
		if m := r.Lookup(s.Class); m != nil {
			all = append(all, Match{Type: s, Mapper: m})
		}
	}
	var specific []Match
	for _, m := range all {
		dominated := false
		for _, other := range all {
			if other.Class() != m.Class() && other.Class().IsSubclassOf(m.Class()) {
				dominated = true
				break
			}
		}
		if !dominated {
			specific = append(specific, m)
		}
	}
	sort.SliceStable(specific, func(i, j int) bool {
		return specific[i].Class().FqName() < specific[j].Class().FqName()
	})
	return specific
}

// IsSpecialMapped reports whether references to c are custom mapped.
func (r *Registry) IsSpecialMapped(c *ir.ClassDecl) bool {
	return len(r.Matches(c.DefaultType())) > 0
}

// CategoryClass returns the class whose category hosts extensions on t, or
// nil when such extensions become static functions of the file holder.
func (r *Registry) CategoryClass(t *ir.TypeRef) *ir.ClassDecl {
	if t == nil || t.Kind != ir.TypeClass || t.Class == nil {
		return nil
	}
	c := t.Class
	switch {
	case c.IsInterface(), c.Inline, c.Hidden, c.FqName() == ir.FqAny:
		return nil
	case c.IsForeign():
		return c
	case !c.Exposed, r.IsSpecialMapped(c):
		return nil
	}
	return c
}
