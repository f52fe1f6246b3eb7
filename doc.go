// Package paint implements the paint subsystem of a rendering
// pipeline: it consumes an immutable scene published by layout and
// produces raster tiles for the compositor.
//
// The center of the package is the paint coordinator, a long-lived
// message-driven task created with Create. It owns the current scene
// and its epoch, a pool of reusable pixel buffers, and a fixed set of
// worker rasterizers. The compositor requests tiles in batches; the
// coordinator fans the tiles out to workers round-robin, collects the
// painted buffers in request order, and ships them back under the
// current epoch. Buffers loaned to the compositor are counted so the
// task can drain them all before a pipeline-only shutdown.
//
// Workers rasterize one tile at a time, either into an in-memory BGRA
// pixmap (CPU painting) or into a platform framebuffer (GPU painting,
// which forces a single worker). The scene is shared read-only; all
// mutable state lives in the coordinator.
//
// The package produces no log output by default. Call SetLogger to
// route diagnostics somewhere:
//
//	paint.SetLogger(slog.Default())
package paint
