// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package buffer defines the raster tile buffers exchanged between the
// paint subsystem and the compositor, and the pool that recycles them.
package buffer

import (
	"image"

	"github.com/gogpu/paint/geom"
	"github.com/gogpu/paint/surface"
)

// Request describes one tile to paint: where it sits in the document,
// where it lands on screen, and how fresh its content must be.
type Request struct {
	// PageRect is the tile's region in document space, in fractional
	// CSS pixels.
	PageRect geom.Rect32

	// ScreenRect is the tile's region in device pixels. Its width and
	// height are the dimensions of the buffer to fill.
	ScreenRect image.Rectangle

	// ContentAge is a monotonic counter the compositor uses to discard
	// out-of-date tiles.
	ContentAge uint32
}

// LayerBuffer is one painted tile: a filled native surface plus the
// placement data the compositor needs. Exactly one owner holds a
// buffer at any time as it cycles painter -> compositor -> pool.
type LayerBuffer struct {
	// NativeSurface holds the pixels.
	NativeSurface *surface.NativeSurface

	// Rect is the covered region in document space.
	Rect geom.Rect32

	// ScreenPos is the covered region in device pixels.
	ScreenPos image.Rectangle

	// Resolution is the scale the tile was painted at.
	Resolution float32

	// Stride is the byte width of one pixel row: width * 4 for
	// 32-bpp BGRA, never padded.
	Stride int

	// PaintedWithCPU is false when the surface is a GPU backing.
	PaintedWithCPU bool

	// ContentAge is copied from the request that produced the buffer.
	ContentAge uint32
}

// Size returns the buffer dimensions in device pixels.
func (b *LayerBuffer) Size() image.Point {
	return b.ScreenPos.Size()
}

// ByteSize returns the pixel storage size the pool accounts for.
func (b *LayerBuffer) ByteSize() int {
	return b.NativeSurface.ByteSize()
}

// Set is an ordered batch of painted buffers for one layer. Buffer i
// corresponds to tile i of the paint request.
type Set struct {
	Buffers []*LayerBuffer
}
