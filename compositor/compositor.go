// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compositor defines the types the paint subsystem shares with
// the compositor and the capability set the paint coordinator invokes
// on it.
//
// The compositor itself lives outside this module. The Compositor
// interface is fixed at coordinator construction; there is no dynamic
// registration or discovery.
package compositor

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/paint/buffer"
	"github.com/gogpu/paint/geom"
	"github.com/gogpu/paint/pipeline"
	"github.com/gogpu/paint/surface"
)

// Epoch tags a scene version. Layout bumps it on every new scene; paint
// requests carrying any other epoch are stale and silently dropped.
type Epoch uint32

// Next returns the epoch after e.
func (e Epoch) Next() Epoch { return e + 1 }

// FrameTreeID associates a batch of painted buffers with a compositor
// frame. The coordinator passes it through unchanged.
type FrameTreeID uint32

// LayerID identifies a compositor layer. IDs are unique within a
// pipeline and stable across reflows.
type LayerID struct {
	// Fragment is the id of the fragment that established the layer.
	Fragment uint32

	// Companion disambiguates multiple layers created by one fragment.
	Companion uint32
}

// String implements fmt.Stringer.
func (id LayerID) String() string {
	return fmt.Sprintf("Layer(%d,%d)", id.Fragment, id.Companion)
}

// ScrollPolicy describes how a layer reacts to scrolling.
type ScrollPolicy uint8

const (
	// Scrollable layers move with the document.
	Scrollable ScrollPolicy = iota

	// FixedPosition layers stay put while the document scrolls.
	FixedPosition
)

// LayerKind is a transparency hint the compositor attaches to paint
// requests so the rasterizer can skip alpha handling for opaque layers.
type LayerKind uint8

const (
	// NoTransparency marks a fully opaque layer.
	NoTransparency LayerKind = iota

	// HasTransparency marks a layer with translucent content.
	HasTransparency
)

// LayerProperties is the flattened, compositor-facing description of
// one layer: its device rect, composed transforms, and paint hints.
// The coordinator emits one entry per stacking context that carries a
// paint layer, in pre-order of the scene.
type LayerProperties struct {
	// ID identifies the layer.
	ID LayerID

	// ParentID is the enclosing layer, if any.
	ParentID *LayerID

	// Rect is the layer's position and size in device pixels, relative
	// to its parent layer.
	Rect geom.Rect32

	// BackgroundColor shows through where nothing has been painted.
	BackgroundColor gputypes.Color

	// ScrollPolicy describes how the layer reacts to scrolling.
	ScrollPolicy ScrollPolicy

	// Transform is the accumulated transform for this layer's subtree.
	Transform geom.Matrix4

	// Perspective is the accumulated perspective transform.
	Perspective geom.Matrix4

	// Establishes3DContext is set when descendants share this layer's
	// 3D rendering context.
	Establishes3DContext bool
}

// Compositor is the capability set the paint coordinator needs from the
// compositor. The concrete compositor is bound once when the paint task
// is created.
type Compositor interface {
	// GraphicsMetadata returns the platform graphics metadata used to
	// construct native graphics contexts. A nil return disables
	// painting entirely.
	GraphicsMetadata() *surface.Metadata

	// AssignPaintedBuffers delivers a batch of painted buffers. The
	// compositor owns the buffers until it sends them back through the
	// coordinator's unused-buffer message.
	AssignPaintedBuffers(id pipeline.ID, epoch Epoch, replies []Reply, frame FrameTreeID)

	// InitializeLayersForPipeline publishes the flattened layer tree
	// for the given scene version.
	InitializeLayersForPipeline(id pipeline.ID, properties []LayerProperties, epoch Epoch)

	// NotifyPaintTaskExiting prompts the compositor to return every
	// buffer it still holds for this pipeline.
	NotifyPaintTaskExiting(id pipeline.ID)
}

// Reply pairs a layer with the buffers painted for it in one batch.
type Reply struct {
	Layer   LayerID
	Buffers *buffer.Set
}
