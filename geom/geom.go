// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geom provides the geometry types shared by the paint subsystem:
// app units for document-space layout coordinates, float32 page-space
// rectangles for tiles, and 4x4 transforms for stacking contexts.
//
// Screen-space (device pixel) rectangles use the standard library's
// image.Rectangle and are not duplicated here.
package geom

import "math"

// AppUnitsPerPx is the number of app units in one CSS pixel.
//
// Layout positions arrive in app units so that sub-pixel positions
// survive integer arithmetic. 60 divides evenly by 2, 3, 4, 5, 6, 10
// and 12, which keeps common zoom factors exact.
const AppUnitsPerPx = 60

// Au is a fixed-point "app unit" length: 1/60 of a CSS pixel.
type Au int32

// FromPx converts a whole pixel count to app units.
func FromPx(px int) Au {
	return Au(px * AppUnitsPerPx)
}

// FromPxF32 converts a fractional pixel length to app units, rounding
// to the nearest unit.
func FromPxF32(px float32) Au {
	return Au(math.Round(float64(px) * AppUnitsPerPx))
}

// ToNearestPx rounds to the nearest whole pixel.
func (a Au) ToNearestPx() int {
	return int(math.Round(float64(a) / AppUnitsPerPx))
}

// ToPxF32 converts to fractional pixels.
func (a Au) ToPxF32() float32 {
	return float32(a) / AppUnitsPerPx
}

// AuPoint is a document-space position in app units.
type AuPoint struct {
	X, Y Au
}

// Add returns the component-wise sum of two points.
func (p AuPoint) Add(q AuPoint) AuPoint {
	return AuPoint{X: p.X + q.X, Y: p.Y + q.Y}
}

// AuSize is a document-space size in app units.
type AuSize struct {
	Width, Height Au
}

// AuRect is a document-space rectangle in app units.
type AuRect struct {
	Origin AuPoint
	Size   AuSize
}

// Translate returns the rectangle shifted by the given offset.
func (r AuRect) Translate(by AuPoint) AuRect {
	return AuRect{Origin: r.Origin.Add(by), Size: r.Size}
}

// Point32 is a page-space position in fractional CSS pixels.
type Point32 struct {
	X, Y float32
}

// Add returns the component-wise sum of two points.
func (p Point32) Add(q Point32) Point32 {
	return Point32{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size32 is a page-space size in fractional CSS pixels.
type Size32 struct {
	Width, Height float32
}

// Rect32 is a page-space rectangle in fractional CSS pixels. Tile page
// rects and display item bounds use this representation.
type Rect32 struct {
	Origin Point32
	Size   Size32
}

// NewRect32 builds a rectangle from origin and size components.
func NewRect32(x, y, w, h float32) Rect32 {
	return Rect32{Origin: Point32{X: x, Y: y}, Size: Size32{Width: w, Height: h}}
}

// MaxX returns the right edge.
func (r Rect32) MaxX() float32 { return r.Origin.X + r.Size.Width }

// MaxY returns the bottom edge.
func (r Rect32) MaxY() float32 { return r.Origin.Y + r.Size.Height }

// IsEmpty reports whether the rectangle has no area.
func (r Rect32) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Translate returns the rectangle shifted by the given offset.
func (r Rect32) Translate(by Point32) Rect32 {
	return Rect32{Origin: r.Origin.Add(by), Size: r.Size}
}

// Intersects reports whether two rectangles overlap. Touching edges do
// not count as overlap.
func (r Rect32) Intersects(s Rect32) bool {
	if r.IsEmpty() || s.IsEmpty() {
		return false
	}
	return r.Origin.X < s.MaxX() && s.Origin.X < r.MaxX() &&
		r.Origin.Y < s.MaxY() && s.Origin.Y < r.MaxY()
}

// ToRect32 converts an app-unit rectangle to fractional pixels.
func (r AuRect) ToRect32() Rect32 {
	return Rect32{
		Origin: Point32{X: r.Origin.X.ToPxF32(), Y: r.Origin.Y.ToPxF32()},
		Size:   Size32{Width: r.Size.Width.ToPxF32(), Height: r.Size.Height.ToPxF32()},
	}
}
