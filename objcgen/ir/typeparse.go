package ir

import (
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// ParseType parses a type in source-like notation:
//
//	Int                          value kind
//	Int?                         nullable value kind (boxed in reference position)
//	T                            type parameter (no dot, not a value kind)
//	std.String?                  class reference
//	std.collections.Map<K, *>    generic class reference with a star projection
//	(Int, std.String) -> Unit    function type
//	((Int) -> Unit)?             nullable function type
//
// Class names are left unresolved until the graph is linked.
func ParseType(s string) (*TypeRef, error) {
	p := &typeParser{src: s}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, errors.Newf("parse type %q: unexpected %q at offset %d", s, p.src[p.pos:], p.pos)
	}
	return t, nil
}

// MustParseType is like ParseType but panics on error.
func MustParseType(s string) *TypeRef {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) peek(tok string) bool {
	p.skipSpace()
	return strings.HasPrefix(p.src[p.pos:], tok)
}

func (p *typeParser) expect(tok string) error {
	if !p.peek(tok) {
		return errors.Newf("parse type %q: expected %q at offset %d", p.src, tok, p.pos)
	}
	p.pos += len(tok)
	return nil
}

func (p *typeParser) parseType() (*TypeRef, error) {
	var t *TypeRef
	var err error
	if p.peek("(") {
		t, err = p.parseParenthesized()
	} else {
		t, err = p.parseNamed()
	}
	if err != nil {
		return nil, err
	}
	if p.peek("?") {
		p.pos++
		t = t.OrNull()
	}
	return t, nil
}

func (p *typeParser) parseParenthesized() (*TypeRef, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var items []*TypeRef
	if !p.peek(")") {
		for {
			item, err := p.parseType()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if !p.peek(",") {
				break
			}
			p.pos++
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if p.peek("->") {
		p.pos += 2
		var result *TypeRef
		if p.peekWord("Unit") {
			p.pos += len("Unit")
		} else {
			r, err := p.parseType()
			if err != nil {
				return nil, err
			}
			result = r
		}
		return Func(result, items...), nil
	}
	if len(items) != 1 {
		return nil, errors.Newf("parse type %q: parenthesized group must hold exactly one type", p.src)
	}
	return items[0], nil
}

func (p *typeParser) peekWord(w string) bool {
	if !p.peek(w) {
		return false
	}
	end := p.pos + len(w)
	return end == len(p.src) || !isNameRune(rune(p.src[end]))
}

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '$'
}

func (p *typeParser) parseNamed() (*TypeRef, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isNameRune(rune(p.src[p.pos])) {
		p.pos++
	}
	name := p.src[start:p.pos]
	if name == "" {
		return nil, errors.Newf("parse type %q: expected a name at offset %d", p.src, start)
	}
	var args []*TypeRef
	if p.peek("<") {
		p.pos++
		for {
			if p.peek("*") {
				p.pos++
				args = append(args, nil)
			} else {
				a, err := p.parseType()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
			}
			if !p.peek(",") {
				break
			}
			p.pos++
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
	}
	if k, ok := ParseValueKind(name); ok && len(args) == 0 {
		return Value(k), nil
	}
	if name == "Unit" || name == FqUnit {
		return Named(FqUnit), nil
	}
	if !strings.Contains(name, ".") && len(args) == 0 {
		return TypeParam(name), nil
	}
	return Named(name, args...), nil
}
