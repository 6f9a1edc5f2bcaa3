// Package directive parses objc directives from Go doc comments.
//
// Directives are line comments in the form:
//
//	//objc:name <Name> [exact]
//	//objc:swift <Name>
//	//objc:hidden
//	//objc:exclude
//
// The name directive overrides the Objective-C name of a type or member;
// with exact, the name is used without the framework prefix. The swift
// directive overrides the Swift name. A hidden type is never named in the
// header and a hidden member is not exported. An excluded declaration is
// not part of the declaration graph at all.
//
// A directive must be part of the doc comment of a type, function, method,
// field, constant or variable declaration.
package directive

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/cockroachdb/errors"
)

// Prefix starts every directive comment.
const Prefix = "//objc:"

// Kind represents the type of directive.
type Kind string

const (
	KindName    Kind = "name"
	KindSwift   Kind = "swift"
	KindHidden  Kind = "hidden"
	KindExclude Kind = "exclude"
)

// Directive represents a parsed objc directive.
type Directive struct {
	Kind Kind
	Args []string
	Pos  token.Position
}

// Set is the combined effect of the directives attached to one
// declaration.
type Set struct {
	ObjCName  string
	Exact     bool
	SwiftName string
	Hidden    bool
	Exclude   bool

	Directives []Directive
}

// IsZero reports whether no directive applies.
func (s Set) IsZero() bool { return len(s.Directives) == 0 }

// FromComments parses the directives of a doc comment. A nil group yields
// an empty Set.
func FromComments(fset *token.FileSet, cg *ast.CommentGroup) (Set, error) {
	var s Set
	if cg == nil {
		return s, nil
	}
	for _, c := range cg.List {
		if !strings.HasPrefix(c.Text, Prefix) {
			continue
		}
		d, err := parse(fset, c)
		if err != nil {
			return Set{}, err
		}
		if err := s.apply(d); err != nil {
			return Set{}, err
		}
	}
	return s, nil
}

func parse(fset *token.FileSet, c *ast.Comment) (Directive, error) {
	pos := fset.Position(c.Pos())
	fields := strings.Fields(strings.TrimPrefix(c.Text, Prefix))
	if len(fields) == 0 {
		return Directive{}, errors.Newf("%s: empty directive", pos)
	}
	d := Directive{Kind: Kind(fields[0]), Args: fields[1:], Pos: pos}
	switch d.Kind {
	case KindName:
		if len(d.Args) == 0 || len(d.Args) > 2 || (len(d.Args) == 2 && d.Args[1] != "exact") {
			return Directive{}, errors.Newf("%s: usage: %sname <Name> [exact]", pos, Prefix)
		}
	case KindSwift:
		if len(d.Args) != 1 {
			return Directive{}, errors.Newf("%s: usage: %sswift <Name>", pos, Prefix)
		}
	case KindHidden, KindExclude:
		if len(d.Args) != 0 {
			return Directive{}, errors.Newf("%s: %s%s takes no arguments", pos, Prefix, d.Kind)
		}
	default:
		return Directive{}, errors.Newf("%s: unknown directive %s%s", pos, Prefix, fields[0])
	}
	return d, nil
}

func (s *Set) apply(d Directive) error {
	for _, prev := range s.Directives {
		if prev.Kind == d.Kind {
			return errors.Newf("%s: duplicate %s%s directive", d.Pos, Prefix, d.Kind)
		}
	}
	s.Directives = append(s.Directives, d)
	switch d.Kind {
	case KindName:
		s.ObjCName = d.Args[0]
		s.Exact = len(d.Args) == 2
	case KindSwift:
		s.SwiftName = d.Args[0]
	case KindHidden:
		s.Hidden = true
	case KindExclude:
		s.Exclude = true
	}
	return nil
}

// Index holds the directives of the declarations of one file, keyed by the
// declaring node: *ast.TypeSpec, *ast.ValueSpec, *ast.FuncDecl or
// *ast.Field.
type Index struct {
	sets map[ast.Node]Set
}

// For returns the directives of n.
func (ix *Index) For(n ast.Node) Set {
	if ix == nil {
		return Set{}
	}
	return ix.sets[n]
}

// Len returns the number of declarations carrying directives.
func (ix *Index) Len() int { return len(ix.sets) }

// ScanFile indexes the directives of f. It fails on malformed directives
// and on directives that are not attached to a declaration.
func ScanFile(fset *token.FileSet, f *ast.File) (*Index, error) {
	ix := &Index{sets: make(map[ast.Node]Set)}
	attached := make(map[*ast.CommentGroup]bool)

	add := func(n ast.Node, groups ...*ast.CommentGroup) error {
		var merged Set
		for _, cg := range groups {
			if cg == nil || attached[cg] {
				continue
			}
			attached[cg] = true
			s, err := FromComments(fset, cg)
			if err != nil {
				return err
			}
			for _, d := range s.Directives {
				if err := merged.apply(d); err != nil {
					return err
				}
			}
		}
		if !merged.IsZero() {
			ix.sets[n] = merged
		}
		return nil
	}

	var err error
	ast.Inspect(f, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *ast.GenDecl:
			// A declaration group's doc applies to its only spec.
			var shared *ast.CommentGroup
			if len(n.Specs) == 1 {
				shared = n.Doc
			}
			for _, spec := range n.Specs {
				switch spec := spec.(type) {
				case *ast.TypeSpec:
					err = add(spec, shared, spec.Doc)
				case *ast.ValueSpec:
					err = add(spec, shared, spec.Doc)
				}
				if err != nil {
					return false
				}
			}
		case *ast.FuncDecl:
			err = add(n, n.Doc)
		case *ast.Field:
			err = add(n, n.Doc)
		}
		return err == nil
	})
	if err != nil {
		return nil, err
	}

	for _, cg := range f.Comments {
		if attached[cg] {
			continue
		}
		for _, c := range cg.List {
			if strings.HasPrefix(c.Text, Prefix) {
				return nil, errors.Newf("%s: %s directive must be part of a declaration's doc comment",
					fset.Position(c.Pos()), strings.Fields(c.Text)[0])
			}
		}
	}
	return ix, nil
}
