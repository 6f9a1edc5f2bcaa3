// Package shapes is a fixture for source-based extraction.
package shapes

import (
	"errors"
	"math"
)

// Shape is a closed figure.
type Shape interface {
	// Area returns the enclosed area.
	Area() float64
	Name() string
}

// Base holds what every shape shares.
type Base struct {
	// ID identifies the shape.
	ID    string
	label string
}

func (b *Base) Name() string { return b.ID + b.label }

// Circle is a round shape.
//
//objc:name Round
type Circle struct {
	Base
	Radius float64
}

// NewCircle returns a circle with the given radius.
func NewCircle(radius float64) *Circle { return &Circle{Radius: radius} }

func (c *Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

func (c *Circle) Name() string { return "circle" }

// Scale returns a scaled copy of the circle.
func (c *Circle) Scale(factor float64) (*Circle, error) {
	if factor <= 0 {
		return nil, errors.New("factor must be positive")
	}
	return &Circle{Base: c.Base, Radius: c.Radius * factor}, nil
}

//objc:swift describe(verbose:)
func (c *Circle) Describe(verbose bool) string { return c.Name() }

//objc:hidden
func (c *Circle) Debug() string { return "" }

// Color is a fill color.
type Color int

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
)
