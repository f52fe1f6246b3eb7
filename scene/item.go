// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/paint/geom"
)

// DisplayItem is one drawable entry of a display list. Bounds are in
// the owning stacking context's page space; Draw renders through the
// paint context's current transform.
type DisplayItem interface {
	// Bounds returns the item's page-space bounding rectangle, used
	// for per-tile culling.
	Bounds() geom.Rect32

	// Draw rasterizes the item into the paint context.
	Draw(pc *PaintContext)
}

// SolidColorItem fills a rectangle with a single color.
type SolidColorItem struct {
	Rect  geom.Rect32
	Color gputypes.Color
}

// Bounds returns the filled rectangle.
func (it *SolidColorItem) Bounds() geom.Rect32 { return it.Rect }

// Draw fills the rectangle through the current transform.
func (it *SolidColorItem) Draw(pc *PaintContext) {
	pc.Target.FillRect(it.Rect, it.Color)
}

// ChildContextItem embeds a nested stacking context in a display
// list.
type ChildContextItem struct {
	Context *StackingContext
}

// Bounds returns the child's bounds offset by its overflow, covering
// everything the subtree may paint.
func (it *ChildContextItem) Bounds() geom.Rect32 {
	b := it.Context.Bounds.ToRect32()
	o := it.Context.Overflow.ToRect32()
	return o.Translate(b.Origin)
}

// Draw recurses into the child context: its origin translates the
// current transform, its own transform composes on top, and the tile
// bounds shift into the child's coordinate space. The parent's
// transform state is restored afterwards.
func (it *ChildContextItem) Draw(pc *PaintContext) {
	child := it.Context

	parentBounds := pc.TileBounds
	parentTransform := pc.Transform

	origin := child.Bounds.Origin
	ox := origin.X.ToPxF32()
	oy := origin.Y.ToPxF32()

	m := parentTransform.Translate(ox, oy, 0).Mul(child.Transform)
	tile := parentBounds.Translate(geom.Point32{X: -ox, Y: -oy})

	child.DrawIntoContext(pc, tile, m)

	pc.TileBounds = parentBounds
	pc.Transform = parentTransform
	pc.Target.SetTransform(parentTransform)
}
