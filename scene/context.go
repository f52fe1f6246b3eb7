// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/paint/canvas"
	"github.com/gogpu/paint/compositor"
	"github.com/gogpu/paint/geom"
	"github.com/gogpu/paint/surface"
	"github.com/gogpu/paint/text"
)

// PaintContext carries everything display items need while one tile is
// rasterized: the draw target, the worker's font context, the tile's
// page and screen placement, and the canvas sinks registered with the
// coordinator.
//
// TileBounds and Transform are walk state maintained by
// DrawIntoContext as nested contexts push and pop their coordinate
// spaces.
type PaintContext struct {
	// Target receives the pixels.
	Target surface.DrawTarget

	// Fonts is the owning worker's font context.
	Fonts *text.FontContext

	// PageRect is the tile's document-space region.
	PageRect geom.Rect32

	// ScreenRect is the tile's device-pixel region.
	ScreenRect image.Rectangle

	// Kind is the compositor's transparency hint for the layer.
	Kind compositor.LayerKind

	// CanvasSinks maps canvas-backed layers to their producers.
	CanvasSinks map[compositor.LayerID]canvas.Sink

	// TileBounds is the current tile rectangle in the coordinate
	// space of the stacking context being drawn.
	TileBounds geom.Rect32

	// Transform is the current accumulated drawing transform.
	Transform geom.Matrix4
}

// Clear resets the target to fully transparent before drawing starts.
func (pc *PaintContext) Clear() {
	pc.Target.Clear(gputypes.Color{})
}

// DrawSolidColor fills a page-space rectangle with a color under the
// current transform. Debug tile tinting uses this directly.
func (pc *PaintContext) DrawSolidColor(r geom.Rect32, c gputypes.Color) {
	pc.Target.FillRect(r, c)
}

// CanvasPixels fetches the current frame from the canvas producer
// registered for the given layer. Returns nil when no producer is
// registered.
func (pc *PaintContext) CanvasPixels(id compositor.LayerID) []byte {
	sink, ok := pc.CanvasSinks[id]
	if !ok {
		return nil
	}
	reply := make(chan []byte)
	sink <- canvas.SendPixels{Reply: reply}
	return <-reply
}
