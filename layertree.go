package paint

import (
	"github.com/gogpu/paint/compositor"
	"github.com/gogpu/paint/geom"
	"github.com/gogpu/paint/scene"
)

// initializeLayers flattens the scene into layer descriptors and
// publishes them to the compositor under the current epoch.
func (c *Coordinator) initializeLayers() {
	if c.root == nil {
		return
	}
	properties := buildLayerProperties(c.root)
	c.compositor.InitializeLayersForPipeline(c.id, properties, c.currentEpoch())
}

// buildLayerProperties walks the scene in pre-order and emits one
// LayerProperties per stacking context that carries a paint layer.
func buildLayerProperties(root *scene.StackingContext) []compositor.LayerProperties {
	var properties []compositor.LayerProperties
	buildLayers(&properties, root, geom.AuPoint{}, geom.Identity(), geom.Identity(), nil)
	return properties
}

// buildLayers recurses over one stacking context. The carried state is
// the page position accumulated since the nearest enclosing layer, the
// transforms composed since that layer, and the enclosing layer's id.
func buildLayers(properties *[]compositor.LayerProperties,
	sc *scene.StackingContext,
	pagePosition geom.AuPoint,
	transform, perspective geom.Matrix4,
	parent *compositor.LayerID,
) {
	transform = transform.Mul(sc.Transform)
	perspective = perspective.Mul(sc.Perspective)

	nextParent := parent
	if sc.Layer != nil {
		// Layers start at the top left of their overflow rect as far
		// as the compositor is concerned.
		overflowRelative := pagePosition.Add(sc.Bounds.Origin).Add(sc.Overflow.Origin)
		rect := geom.NewRect32(
			float32(overflowRelative.X.ToNearestPx()),
			float32(overflowRelative.Y.ToNearestPx()),
			float32(sc.Overflow.Size.Width.ToNearestPx()),
			float32(sc.Overflow.Size.Height.ToNearestPx()),
		)

		*properties = append(*properties, compositor.LayerProperties{
			ID:                   sc.Layer.ID,
			ParentID:             parent,
			Rect:                 rect,
			BackgroundColor:      sc.Layer.BackgroundColor,
			ScrollPolicy:         sc.Layer.ScrollPolicy,
			Transform:            transform,
			Perspective:          perspective,
			Establishes3DContext: sc.Establishes3DContext,
		})

		// The compositor re-applies position and transforms for a new
		// layer, so the recursion below starts from scratch.
		id := sc.Layer.ID
		nextParent = &id
		pagePosition = geom.AuPoint{}
		transform = geom.Identity()
		perspective = geom.Identity()
	} else {
		pagePosition = pagePosition.Add(sc.Bounds.Origin)
	}

	for _, kid := range sc.ChildContexts() {
		buildLayers(properties, kid, pagePosition, transform, perspective, nextParent)
	}
}
