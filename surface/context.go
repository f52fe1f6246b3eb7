// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// ErrNoFramebuffers is returned when GPU painting is requested but the
// graphics metadata carries no framebuffer source.
var ErrNoFramebuffers = errors.New("surface: metadata has no framebuffer source")

// Metadata is the platform graphics description the compositor hands to
// the paint subsystem. One Metadata value is shared by the coordinator
// and all of its workers; each constructs its own GraphicsContext from
// it.
//
// A nil Provider means no GPU device is available; painting then runs
// entirely on the CPU with RAM-backed native surfaces.
type Metadata struct {
	// Provider supplies the shared GPU device and queue.
	Provider gpucontext.DeviceProvider

	// Framebuffers supplies GPU draw targets bound to the platform's
	// current framebuffer. Required for GPU painting, unused otherwise.
	Framebuffers FramebufferSource

	// live counts surfaces created through any context built from this
	// metadata and not yet destroyed. Surfaces move between threads of
	// one pipeline, so the tally is shared rather than per-context.
	live atomic.Int64

	// leakable counts live surfaces not marked "won't leak". Only
	// these are reported when a context closes.
	leakable atomic.Int64
}

// FramebufferSource creates draw targets bound to the platform
// framebuffer. Implemented by the embedding compositor.
type FramebufferSource interface {
	// NewDrawTarget returns a GPU draw target of the given size.
	NewDrawTarget(size image.Point) (GPUDrawTarget, error)
}

// pollableDevice matches devices that can be polled to drain in-flight
// GPU work. Concrete device handles from the platform typically satisfy
// it.
type pollableDevice interface {
	Poll(wait bool)
}

// GraphicsContext is a per-thread handle onto the platform graphics
// stack. The coordinator and every worker hold their own context built
// from the same Metadata.
//
// A GraphicsContext is not safe for concurrent use.
type GraphicsContext struct {
	md *Metadata
}

// NewGraphicsContext constructs a context from the shared metadata.
// The metadata must not be nil: callers that received no metadata from
// the compositor must not attempt to paint at all.
func NewGraphicsContext(md *Metadata) *GraphicsContext {
	if md == nil {
		panic("surface: need graphics metadata to construct a context")
	}
	return &GraphicsContext{md: md}
}

// GPU reports whether a GPU device is available through this context.
func (c *GraphicsContext) GPU() bool {
	return c.md.Provider != nil
}

// Device returns the shared GPU device, or nil for CPU-only contexts.
func (c *GraphicsContext) Device() gpucontext.Device {
	if c.md.Provider == nil {
		return nil
	}
	return c.md.Provider.Device()
}

// Queue returns the shared GPU queue, or nil for CPU-only contexts.
func (c *GraphicsContext) Queue() gpucontext.Queue {
	if c.md.Provider == nil {
		return nil
	}
	return c.md.Provider.Queue()
}

// SurfaceFormat returns the pixel format surfaces are created with.
// Paint buffers are always 32-bpp BGRA.
func (c *GraphicsContext) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// NewGPUDrawTarget returns a draw target bound to the platform
// framebuffer. Only valid when GPU painting is configured.
func (c *GraphicsContext) NewGPUDrawTarget(size image.Point) (GPUDrawTarget, error) {
	if c.md.Framebuffers == nil {
		return nil, ErrNoFramebuffers
	}
	return c.md.Framebuffers.NewDrawTarget(size)
}

// LiveSurfaces returns the number of surfaces created from this
// metadata family and not yet destroyed.
func (c *GraphicsContext) LiveSurfaces() int {
	return int(c.md.live.Load())
}

// Close releases the context. The last context of a pipeline should be
// closed only after its surfaces are destroyed. Surfaces still alive
// and not marked "won't leak" are counted in a warning; the surfaces
// themselves are left untouched. When a device is present it is polled so
// in-flight work referencing our surfaces finishes before the memory
// goes away.
func (c *GraphicsContext) Close() {
	if n := c.md.leakable.Load(); n != 0 {
		slogger().Warn("graphics context closed with leaking surfaces", "count", n)
	}
	if d, ok := c.Device().(pollableDevice); ok {
		d.Poll(true)
	}
}
