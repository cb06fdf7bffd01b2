package geom

import "math"

// Vec2 is a 2D point or extent in surface units.
type Vec2 struct {
	X float64
	Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add adds two vectors.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub subtracts o from v.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Mul multiplies component-wise.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{X: v.X * o.X, Y: v.Y * o.Y} }

// Div divides component-wise.
func (v Vec2) Div(o Vec2) Vec2 { return Vec2{X: v.X / o.X, Y: v.Y / o.Y} }

// Floor rounds both components down.
func (v Vec2) Floor() Vec2 { return Vec2{X: math.Floor(v.X), Y: math.Floor(v.Y)} }

// Area returns X*Y, treating v as an extent.
func (v Vec2) Area() float64 { return v.X * v.Y }

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	Min  Vec2
	Size Vec2
}

// Max returns the bottom-right corner.
func (r Rect) Max() Vec2 { return r.Min.Add(r.Size) }

// Contains reports whether p lies in the half-open rectangle [Min, Max).
func (r Rect) Contains(p Vec2) bool {
	max := r.Max()
	return p.X >= r.Min.X && p.X < max.X && p.Y >= r.Min.Y && p.Y < max.Y
}

// Overlaps reports whether the interiors of r and o intersect.
func (r Rect) Overlaps(o Rect) bool {
	rm, om := r.Max(), o.Max()
	return r.Min.X < om.X && o.Min.X < rm.X && r.Min.Y < om.Y && o.Min.Y < rm.Y
}

// Span returns the length of the overlap of [a0, a1) and [b0, b1), or zero.
func Span(a0, a1, b0, b1 float64) float64 {
	lo := math.Max(a0, b0)
	hi := math.Min(a1, b1)
	if hi <= lo {
		return 0
	}
	return hi - lo
}
