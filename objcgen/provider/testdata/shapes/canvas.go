package shapes

import "context"

// Canvas holds shapes to draw.
type Canvas struct {
	Shapes []Shape
	Fill   map[string]Color
	Tags   map[string]struct{}
	Parent *Canvas
	Meta   any
	OnDraw func(Shape) bool
	Grid   [4]int32
}

// Render draws every shape.
func (c *Canvas) Render(ctx context.Context) error { return ctx.Err() }

// Count returns the number of shapes.
func (c *Canvas) Count(_ context.Context) (int, error) { return len(c.Shapes), nil }

// Pair holds two values.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Number is a constraint and has no runtime representation.
type Number interface {
	~int | ~float64
}

// Sum adds the values.
func Sum[T Number](xs ...T) T {
	var s T
	for _, x := range xs {
		s += x
	}
	return s
}

// Split returns two values and cannot be represented.
func Split(s string) (string, string) { return s, s }

// Join concatenates the parts.
func Join(sep string, parts ...string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}

// Internal is not part of the graph.
//
//objc:exclude
type Internal struct{}

// Wrap refers to an excluded type.
func Wrap(i Internal) {}

// Version is the fixture version.
var Version = "1.0"

// MaxSides bounds polygons.
const MaxSides = 12

// Meters is a length.
type Meters float64

// Feet converts the length.
func (m Meters) Feet() float64 { return float64(m) * 3.28084 }

// Legacy is kept for compatibility.
//
// Deprecated: use Circle instead.
type Legacy struct{}

// Secret is never named in the header.
//
//objc:hidden
type Secret struct{}
