// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"sync/atomic"
)

// nextSurfaceID hands out process-unique surface ids for debugging and
// leak reports.
var nextSurfaceID atomic.Uint64

// textureUpdater matches textures that accept full-image pixel updates.
// GPU texture handles from the platform typically satisfy it.
type textureUpdater interface {
	UpdateData(data []byte) error
}

// textureDestroyer matches textures that release their GPU resources.
type textureDestroyer interface {
	Destroy()
}

// NativeSurface is a platform pixel buffer that can leave the paint
// subsystem: workers fill one per tile, the compositor holds it while
// the tile is on screen, and it comes back through the buffer pool.
//
// Freeing a surface requires the graphics context family that created
// it. A surface expected to die in transit (for example on a complete
// shutdown, where the compositor leaks everything) must be marked
// "won't leak" first so the loss is not reported.
type NativeSurface struct {
	id     uint64
	size   image.Point
	stride int

	// data is the CPU pixel storage in BGRA order. Nil for surfaces
	// wrapped around a stolen GPU backing.
	data []byte

	// texture is the GPU backing, if any. Accessed only through the
	// textureUpdater/textureDestroyer views.
	texture any

	wontLeak  bool
	destroyed bool

	// md is the metadata family the surface was created under; its
	// live-surface tally tracks leaks.
	md *Metadata
}

// NewNativeSurface allocates an empty surface of the given size through
// ctx. The stride is the byte width of one row.
func NewNativeSurface(ctx *GraphicsContext, size image.Point, stride int) *NativeSurface {
	s := &NativeSurface{
		id:     nextSurfaceID.Add(1),
		size:   size,
		stride: stride,
		data:   make([]byte, stride*size.Y),
		md:     ctx.md,
	}
	ctx.md.live.Add(1)
	ctx.md.leakable.Add(1)
	return s
}

// NewNativeSurfaceFromBacking wraps a GPU backing stolen from a draw
// target. The texture must satisfy the platform's updater/destroyer
// shapes for upload and destruction to work.
func NewNativeSurfaceFromBacking(ctx *GraphicsContext, texture any, size image.Point) *NativeSurface {
	s := &NativeSurface{
		id:      nextSurfaceID.Add(1),
		size:    size,
		stride:  size.X * 4,
		texture: texture,
		md:      ctx.md,
	}
	ctx.md.live.Add(1)
	ctx.md.leakable.Add(1)
	return s
}

// ID returns the process-unique surface id.
func (s *NativeSurface) ID() uint64 { return s.id }

// Size returns the surface dimensions in device pixels.
func (s *NativeSurface) Size() image.Point { return s.size }

// Stride returns the byte width of one pixel row.
func (s *NativeSurface) Stride() int { return s.stride }

// ByteSize returns the total pixel storage size. The buffer pool
// accounts its budget with this.
func (s *NativeSurface) ByteSize() int {
	return s.stride * s.size.Y
}

// MarkWontLeak suppresses the leak report for this surface. Called
// before a surface leaves the paint subsystem, since it may die in
// transit to the compositor.
func (s *NativeSurface) MarkWontLeak() {
	if !s.wontLeak {
		s.wontLeak = true
		s.md.leakable.Add(-1)
	}
}

// MarkWillLeak re-enables the leak report for the surface, undoing
// MarkWontLeak.
func (s *NativeSurface) MarkWillLeak() {
	if s.wontLeak {
		s.wontLeak = false
		s.md.leakable.Add(1)
	}
}

// Upload replaces the surface contents with data, which must be
// exactly stride*height bytes of BGRA pixels. When the surface has a
// GPU backing the texture is updated too.
func (s *NativeSurface) Upload(ctx *GraphicsContext, data []byte) {
	if ctx.md != s.md {
		panic("surface: upload with foreign graphics context")
	}
	if s.destroyed {
		panic("surface: upload to destroyed native surface")
	}
	if len(data) != s.ByteSize() {
		panic("surface: upload size mismatch")
	}
	if s.data == nil {
		s.data = make([]byte, s.ByteSize())
	}
	copy(s.data, data)

	if up, ok := s.texture.(textureUpdater); ok {
		if err := up.UpdateData(data); err != nil {
			slogger().Warn("native surface texture update failed",
				"surface", s.id, "err", err)
		}
	}
	slogger().Debug("uploaded to native surface", "surface", s.id)
}

// Data exposes the CPU pixel storage. Nil for GPU-only surfaces. The
// compositor reads this directly for software composition.
func (s *NativeSurface) Data() []byte { return s.data }

// Destroy releases the surface through the context that created it.
// Destroy is idempotent; a second call is reported and ignored.
func (s *NativeSurface) Destroy(ctx *GraphicsContext) {
	if ctx.md != s.md {
		panic("surface: destroy with foreign graphics context")
	}
	if s.destroyed {
		slogger().Warn("native surface destroyed twice", "surface", s.id)
		return
	}
	s.destroyed = true
	s.data = nil
	if d, ok := s.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	s.texture = nil
	s.md.live.Add(-1)
	if !s.wontLeak {
		s.md.leakable.Add(-1)
	}
}
