// Package geometry provides the small geometric types shared by the preview
// surface and the placement engine.
package geometry

import (
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Point2D is a point in floating-point pixel space.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point2D{X: x, Y: y}.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Floor truncates the point toward negative infinity onto the pixel grid.
func (p Point2D) Floor() image.Point {
	return image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}

// Rect is an axis-aligned rectangle with floating-point coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectAround builds the rectangle of the given size centered on c.
func RectAround(c Point2D, width, height float64) Rect {
	return Rect{X: c.X - width/2, Y: c.Y - height/2, Width: width, Height: height}
}

// FromImageRect converts an integer image rectangle.
func FromImageRect(r image.Rectangle) Rect {
	return Rect{X: float64(r.Min.X), Y: float64(r.Min.Y), Width: float64(r.Dx()), Height: float64(r.Dy())}
}

// Contains reports whether p lies inside r. Edges are inclusive.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// AffineTransform represents a 2x3 affine transformation matrix.
// [a b tx]
// [c d ty]
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// Identity returns the identity transform.
func Identity() AffineTransform {
	return AffineTransform{A: 1, D: 1}
}

// Translation returns a translation transform.
func Translation(tx, ty float64) AffineTransform {
	return AffineTransform{A: 1, D: 1, TX: tx, TY: ty}
}

// Scale returns a scaling transform.
func Scale(sx, sy float64) AffineTransform {
	return AffineTransform{A: sx, D: sy}
}

// Apply maps p through the transform.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// Compose returns t * other, i.e. other is applied first.
func (t AffineTransform) Compose(other AffineTransform) AffineTransform {
	var out mat.Dense
	out.Mul(t.dense(), other.dense())
	return fromDense(&out)
}

// Inverse returns the inverse transform. ok is false for singular or
// ill-conditioned transforms.
func (t AffineTransform) Inverse() (inv AffineTransform, ok bool) {
	var m mat.Dense
	if err := m.Inverse(t.dense()); err != nil {
		return AffineTransform{}, false
	}
	return fromDense(&m), true
}

func (t AffineTransform) dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		t.A, t.B, t.TX,
		t.C, t.D, t.TY,
		0, 0, 1,
	})
}

func fromDense(m *mat.Dense) AffineTransform {
	return AffineTransform{
		A: m.At(0, 0), B: m.At(0, 1), TX: m.At(0, 2),
		C: m.At(1, 0), D: m.At(1, 1), TY: m.At(1, 2),
	}
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FitTransform returns the transform that maps a content area of size src into
// a viewport of size dst, preserving aspect ratio and centering the result.
// The returned scale factor is the one applied on both axes.
func FitTransform(src, dst Size) (AffineTransform, float64) {
	if src.Width <= 0 || src.Height <= 0 || dst.Width <= 0 || dst.Height <= 0 {
		return Identity(), 1
	}
	s := math.Min(dst.Width/src.Width, dst.Height/src.Height)
	ox := (dst.Width - src.Width*s) / 2
	oy := (dst.Height - src.Height*s) / 2
	return Translation(ox, oy).Compose(Scale(s, s)), s
}
