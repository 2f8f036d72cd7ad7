package model

import "math"

// Point is a position in PDF user space.
type Point struct {
	X, Y float64
}

// BBox is an axis-aligned rectangle in PDF user space: origin at the
// bottom-left corner, Y increasing upward. Width and height are always
// non-negative when constructed through NewBBox or NewBBoxFromPoints.
type BBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewBBox builds a box from its bottom-left corner and extent.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromPoints builds the box spanned by two opposite corners,
// in either order.
func NewBBoxFromPoints(a, b Point) BBox {
	return BBox{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// Edge accessors. Top is the larger Y edge in PDF coordinates.

func (b BBox) Left() float64   { return b.X }
func (b BBox) Right() float64  { return b.X + b.Width }
func (b BBox) Bottom() float64 { return b.Y }
func (b BBox) Top() float64    { return b.Y + b.Height }

// Center returns the midpoint of the box.
func (b BBox) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Contains reports whether p lies inside the box, edges included.
func (b BBox) Contains(p Point) bool {
	if p.X < b.X || p.X > b.X+b.Width {
		return false
	}
	return p.Y >= b.Y && p.Y <= b.Y+b.Height
}

// Union returns the smallest box covering both b and other.
func (b BBox) Union(other BBox) BBox {
	x0 := math.Min(b.X, other.X)
	y0 := math.Min(b.Y, other.Y)
	x1 := math.Max(b.Right(), other.Right())
	y1 := math.Max(b.Top(), other.Top())
	return BBox{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
