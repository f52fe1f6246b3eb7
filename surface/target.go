// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/paint/geom"
)

// DrawTarget is the transient 2D surface one tile is rasterized into.
// A worker creates one per tile (CPU) or borrows one bound to the
// platform framebuffer (GPU), draws the display list through it, then
// either snapshots the pixels or steals the backing.
//
// Draw targets are not safe for concurrent use.
type DrawTarget interface {
	// Size returns the target dimensions in device pixels.
	Size() image.Point

	// Format returns the pixel format. Paint targets are always
	// 32-bpp BGRA.
	Format() gputypes.TextureFormat

	// SetTransform replaces the current drawing transform. Page-space
	// coordinates passed to drawing calls are mapped through it.
	SetTransform(m geom.Matrix4)

	// Clear fills the whole target with c, replacing existing pixels.
	Clear(c gputypes.Color)

	// FillRect fills the page-space rectangle r with c under the
	// current transform, blending source-over.
	FillRect(r geom.Rect32, c gputypes.Color)

	// Flush completes all pending drawing.
	Flush()

	// Snapshot returns a copy of the rasterized pixels in BGRA order,
	// or nil when the target has no CPU-readable storage.
	Snapshot() []byte
}

// GPUDrawTarget is a draw target bound to a platform framebuffer whose
// backing can be detached and shipped to the compositor.
type GPUDrawTarget interface {
	DrawTarget

	// MakeCurrent binds the target's framebuffer for drawing.
	MakeCurrent()

	// StealBacking detaches and returns the target's texture. The
	// target must not be drawn to afterwards.
	StealBacking() any
}

// CPUDrawTarget rasterizes into an in-memory BGRA pixmap. It supports
// the affine subset of transforms, which is all the tile path needs:
// a scale followed by a translation.
type CPUDrawTarget struct {
	size      image.Point
	pix       []byte
	transform geom.Matrix4
}

// NewCPUDrawTarget creates a zeroed CPU draw target.
func NewCPUDrawTarget(size image.Point) *CPUDrawTarget {
	return &CPUDrawTarget{
		size:      size,
		pix:       make([]byte, size.X*size.Y*4),
		transform: geom.Identity(),
	}
}

// Size returns the target dimensions in device pixels.
func (t *CPUDrawTarget) Size() image.Point { return t.size }

// Format returns the pixel format (BGRA8).
func (t *CPUDrawTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// SetTransform replaces the current drawing transform.
func (t *CPUDrawTarget) SetTransform(m geom.Matrix4) {
	t.transform = m
}

// Clear fills the whole target with c, replacing existing pixels.
func (t *CPUDrawTarget) Clear(c gputypes.Color) {
	b, g, r, a := colorToBGRA(c)
	for i := 0; i < len(t.pix); i += 4 {
		t.pix[i+0] = b
		t.pix[i+1] = g
		t.pix[i+2] = r
		t.pix[i+3] = a
	}
}

// FillRect fills the page-space rectangle r with c under the current
// transform, blending source-over.
func (t *CPUDrawTarget) FillRect(r geom.Rect32, c gputypes.Color) {
	dev := t.transform.TransformRect32(r)

	x0 := clampInt(int(floorf(dev.Origin.X)), 0, t.size.X)
	y0 := clampInt(int(floorf(dev.Origin.Y)), 0, t.size.Y)
	x1 := clampInt(int(ceilf(dev.MaxX())), 0, t.size.X)
	y1 := clampInt(int(ceilf(dev.MaxY())), 0, t.size.Y)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	sb, sg, sr, sa := colorToBGRA(c)
	if sa == 0xff {
		for y := y0; y < y1; y++ {
			row := t.pix[y*t.size.X*4:]
			for x := x0; x < x1; x++ {
				i := x * 4
				row[i+0] = sb
				row[i+1] = sg
				row[i+2] = sr
				row[i+3] = 0xff
			}
		}
		return
	}

	// Source-over with straight alpha.
	for y := y0; y < y1; y++ {
		row := t.pix[y*t.size.X*4:]
		for x := x0; x < x1; x++ {
			i := x * 4
			row[i+0] = blendChannel(sb, row[i+0], sa)
			row[i+1] = blendChannel(sg, row[i+1], sa)
			row[i+2] = blendChannel(sr, row[i+2], sa)
			row[i+3] = blendAlpha(sa, row[i+3])
		}
	}
}

// Flush is a no-op for CPU targets.
func (t *CPUDrawTarget) Flush() {}

// Snapshot returns a copy of the rasterized pixels in BGRA order.
func (t *CPUDrawTarget) Snapshot() []byte {
	out := make([]byte, len(t.pix))
	copy(out, t.pix)
	return out
}

// Pix exposes the target's pixel storage without copying.
func (t *CPUDrawTarget) Pix() []byte { return t.pix }

// Stride returns the byte width of one pixel row.
func (t *CPUDrawTarget) Stride() int { return t.size.X * 4 }

var _ DrawTarget = (*CPUDrawTarget)(nil)

// colorToBGRA converts a normalized color to 8-bit BGRA components.
func colorToBGRA(c gputypes.Color) (b, g, r, a uint8) {
	return clamp255(c.B), clamp255(c.G), clamp255(c.R), clamp255(c.A)
}

func clamp255(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	default:
		return uint8(v*255 + 0.5)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// blendChannel computes src-over for one 8-bit color channel with the
// given straight source alpha.
func blendChannel(src, dst, alpha uint8) uint8 {
	s := uint32(src)
	d := uint32(dst)
	a := uint32(alpha)
	return uint8((s*a + d*(255-a) + 127) / 255)
}

// blendAlpha computes the src-over result alpha.
func blendAlpha(src, dst uint8) uint8 {
	s := uint32(src)
	d := uint32(dst)
	return uint8(s + (d*(255-s)+127)/255)
}

func floorf(v float32) float32 {
	i := float32(int(v))
	if v < 0 && i != v {
		return i - 1
	}
	return i
}

func ceilf(v float32) float32 {
	i := float32(int(v))
	if v > 0 && i != v {
		return i + 1
	}
	return i
}
