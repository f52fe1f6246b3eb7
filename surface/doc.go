// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the platform graphics abstractions the paint
// subsystem draws with: graphics metadata shared by the compositor and
// the painter, per-thread graphics contexts, native pixel surfaces that
// can travel to the compositor and back, and transient draw targets for
// rasterizing one tile.
//
// # Ownership
//
// Native surfaces are created and freed through a GraphicsContext, and
// only the context family that created a surface can free it. The paint
// coordinator enforces the resulting lifetime rule by draining every
// loaned buffer before releasing its context.
//
// # CPU and GPU painting
//
// A CPU draw target rasterizes into an in-memory BGRA pixmap whose
// bytes are uploaded into a reusable native surface afterwards. A GPU
// draw target is bound to a framebuffer supplied by the platform
// through the graphics metadata; its backing is stolen and wrapped as a
// native surface once the tile is finished.
package surface
