// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scene holds the immutable scene description the paint
// subsystem rasterizes: a tree of stacking contexts carrying display
// items, transforms, and optional compositor layers.
//
// A scene is built by the layout stage, published to the paint
// coordinator under an epoch, and from then on shared read-only
// between the coordinator and every worker. Nothing in this package
// mutates a published scene.
package scene

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/paint/compositor"
	"github.com/gogpu/paint/geom"
)

// PaintLayer marks a stacking context as a compositor layer.
type PaintLayer struct {
	// ID identifies the layer. Stable across reflows.
	ID compositor.LayerID

	// BackgroundColor shows through where nothing has been painted.
	BackgroundColor gputypes.Color

	// ScrollPolicy describes how the layer reacts to scrolling.
	ScrollPolicy compositor.ScrollPolicy
}

// NewPaintLayer creates a PaintLayer.
func NewPaintLayer(id compositor.LayerID, bg gputypes.Color, policy compositor.ScrollPolicy) *PaintLayer {
	return &PaintLayer{ID: id, BackgroundColor: bg, ScrollPolicy: policy}
}

// StackingContext is one node of the scene: a subtree with its own
// transform and perspective, bounds and overflow rectangles, an
// optional compositor layer, and an ordered display list whose items
// may include nested stacking contexts.
type StackingContext struct {
	// Bounds is the context's border box, relative to its parent.
	Bounds geom.AuRect

	// Overflow is the region the context's content may paint into,
	// relative to the context's own origin.
	Overflow geom.AuRect

	// Transform applies to the context and everything below it.
	Transform geom.Matrix4

	// Perspective applies to the context's 3D children.
	Perspective geom.Matrix4

	// Establishes3DContext is set when descendants share this
	// context's 3D rendering context.
	Establishes3DContext bool

	// Layer is non-nil when the context is its own compositor layer.
	Layer *PaintLayer

	// Items is the display list in document order. Child stacking
	// contexts appear as ChildContextItem entries.
	Items []DisplayItem
}

// ChildContexts returns the nested stacking contexts in document
// order.
func (sc *StackingContext) ChildContexts() []*StackingContext {
	var kids []*StackingContext
	for _, item := range sc.Items {
		if child, ok := item.(*ChildContextItem); ok {
			kids = append(kids, child.Context)
		}
	}
	return kids
}

// FindStackingContextWithLayerID returns the first context in
// pre-order whose paint layer has the given id, or nil if the scene
// has no such layer. A stale request for a layer dropped by a reflow
// resolves to nil and its tiles are skipped.
func FindStackingContextWithLayerID(root *StackingContext, id compositor.LayerID) *StackingContext {
	if root == nil {
		return nil
	}
	if root.Layer != nil && root.Layer.ID == id {
		return root
	}
	for _, child := range root.ChildContexts() {
		if found := FindStackingContextWithLayerID(child, id); found != nil {
			return found
		}
	}
	return nil
}

// DrawIntoContext rasterizes the context's display list into pc,
// restricted to tileBounds (page space) under the transform m. Items
// outside the tile are culled; nested contexts recurse with their
// bounds origin and transform composed onto m.
func (sc *StackingContext) DrawIntoContext(pc *PaintContext, tileBounds geom.Rect32, m geom.Matrix4) {
	pc.TileBounds = tileBounds
	pc.Transform = m
	pc.Target.SetTransform(m)

	for _, item := range sc.Items {
		if !item.Bounds().Intersects(tileBounds) {
			continue
		}
		item.Draw(pc)
	}
}
