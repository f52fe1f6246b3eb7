// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

// Matrix4 is a 4x4 transformation matrix in row-major storage using
// the column-vector convention: a point transforms as p' = M * p, so
// the translation lives in the fourth column (M14, M24, M34) and the
// rightmost factor of a product applies to points first.
//
// Stacking contexts carry a transform and a perspective matrix; both
// compose by right-multiplication as the layer tree is walked.
type Matrix4 struct {
	M11, M12, M13, M14 float32
	M21, M22, M23, M24 float32
	M31, M32, M33, M34 float32
	M41, M42, M43, M44 float32
}

// Identity returns the identity matrix.
func Identity() Matrix4 {
	return Matrix4{
		M11: 1,
		M22: 1,
		M33: 1,
		M44: 1,
	}
}

// Mul returns the matrix product m * n.
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	return Matrix4{
		M11: m.M11*n.M11 + m.M12*n.M21 + m.M13*n.M31 + m.M14*n.M41,
		M12: m.M11*n.M12 + m.M12*n.M22 + m.M13*n.M32 + m.M14*n.M42,
		M13: m.M11*n.M13 + m.M12*n.M23 + m.M13*n.M33 + m.M14*n.M43,
		M14: m.M11*n.M14 + m.M12*n.M24 + m.M13*n.M34 + m.M14*n.M44,

		M21: m.M21*n.M11 + m.M22*n.M21 + m.M23*n.M31 + m.M24*n.M41,
		M22: m.M21*n.M12 + m.M22*n.M22 + m.M23*n.M32 + m.M24*n.M42,
		M23: m.M21*n.M13 + m.M22*n.M23 + m.M23*n.M33 + m.M24*n.M43,
		M24: m.M21*n.M14 + m.M22*n.M24 + m.M23*n.M34 + m.M24*n.M44,

		M31: m.M31*n.M11 + m.M32*n.M21 + m.M33*n.M31 + m.M34*n.M41,
		M32: m.M31*n.M12 + m.M32*n.M22 + m.M33*n.M32 + m.M34*n.M42,
		M33: m.M31*n.M13 + m.M32*n.M23 + m.M33*n.M33 + m.M34*n.M43,
		M34: m.M31*n.M14 + m.M32*n.M24 + m.M33*n.M34 + m.M34*n.M44,

		M41: m.M41*n.M11 + m.M42*n.M21 + m.M43*n.M31 + m.M44*n.M41,
		M42: m.M41*n.M12 + m.M42*n.M22 + m.M43*n.M32 + m.M44*n.M42,
		M43: m.M41*n.M13 + m.M42*n.M23 + m.M43*n.M33 + m.M44*n.M43,
		M44: m.M41*n.M14 + m.M42*n.M24 + m.M43*n.M34 + m.M44*n.M44,
	}
}

// NewScale returns a scaling matrix.
func NewScale(sx, sy, sz float32) Matrix4 {
	return Matrix4{
		M11: sx,
		M22: sy,
		M33: sz,
		M44: 1,
	}
}

// NewTranslation returns a translation matrix.
func NewTranslation(tx, ty, tz float32) Matrix4 {
	m := Identity()
	m.M14 = tx
	m.M24 = ty
	m.M34 = tz
	return m
}

// Scale returns m with a scale composed on the right: the scale
// applies to points before m does.
func (m Matrix4) Scale(sx, sy, sz float32) Matrix4 {
	return m.Mul(NewScale(sx, sy, sz))
}

// Translate returns m with a translation composed on the right: the
// translation applies to points before m does.
func (m Matrix4) Translate(tx, ty, tz float32) Matrix4 {
	return m.Mul(NewTranslation(tx, ty, tz))
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Matrix4) IsIdentity() bool {
	return m == Identity()
}

// TransformPoint32 applies the matrix to a 2D point on the z=0 plane,
// ignoring the perspective divide. The CPU rasterization path only
// supports the affine subset of transforms.
func (m Matrix4) TransformPoint32(p Point32) Point32 {
	return Point32{
		X: m.M11*p.X + m.M12*p.Y + m.M14,
		Y: m.M21*p.X + m.M22*p.Y + m.M24,
	}
}

// TransformRect32 returns the axis-aligned bounding box of the four
// transformed corners of r.
func (m Matrix4) TransformRect32(r Rect32) Rect32 {
	p0 := m.TransformPoint32(r.Origin)
	p1 := m.TransformPoint32(Point32{X: r.MaxX(), Y: r.Origin.Y})
	p2 := m.TransformPoint32(Point32{X: r.Origin.X, Y: r.MaxY()})
	p3 := m.TransformPoint32(Point32{X: r.MaxX(), Y: r.MaxY()})

	minX := min(p0.X, p1.X, p2.X, p3.X)
	minY := min(p0.Y, p1.Y, p2.Y, p3.Y)
	maxX := max(p0.X, p1.X, p2.X, p3.X)
	maxY := max(p0.Y, p1.Y, p2.Y, p3.Y)

	return NewRect32(minX, minY, maxX-minX, maxY-minY)
}
