package paint

import (
	"fmt"
	"image"
	"math/rand/v2"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/paint/buffer"
	"github.com/gogpu/paint/canvas"
	"github.com/gogpu/paint/compositor"
	"github.com/gogpu/paint/geom"
	"github.com/gogpu/paint/profile"
	"github.com/gogpu/paint/scene"
	"github.com/gogpu/paint/surface"
	"github.com/gogpu/paint/text"
)

// msgToWorker is a message to one worker rasterizer.
type msgToWorker interface {
	workerMsg()
}

// exitWorkerMsg stops the worker's loop.
type exitWorkerMsg struct{}

func (exitWorkerMsg) workerMsg() {}

// paintTileMsg asks the worker to rasterize one tile.
type paintTileMsg struct {
	threadID int
	tile     buffer.Request
	buf      *buffer.LayerBuffer // reusable buffer, nil in GPU mode
	context  *scene.StackingContext
	scale    float32
	kind     compositor.LayerKind
	sinks    map[compositor.LayerID]canvas.Sink
}

func (paintTileMsg) workerMsg() {}

// workerProxy is the coordinator-side handle to one worker: send a
// tile, later receive the painted buffer. Both channels are FIFO, so
// the k-th tile sent is the k-th buffer received.
type workerProxy struct {
	toWorker   chan msgToWorker
	fromWorker chan *buffer.LayerBuffer
}

// spawnWorkers starts the rasterizer goroutines and returns their
// proxies. Each worker constructs its own graphics context from the
// shared metadata and its own font context from the shared cache.
// Worker goroutines are counted on wg so shutdown can join them.
func spawnWorkers(md *surface.Metadata, fonts *text.FontCache, tp profile.TimeProfilerChan, opts Options, wg *sync.WaitGroup) []*workerProxy {
	count := opts.workerCount()
	proxies := make([]*workerProxy, 0, count)
	for range count {
		p := &workerProxy{
			toWorker:   make(chan msgToWorker),
			fromWorker: make(chan *buffer.LayerBuffer),
		}

		w := &worker{
			toWorker:     p.toWorker,
			fromWorker:   p.fromWorker,
			fonts:        text.NewFontContext(fonts),
			timeProfiler: tp,
			opts:         opts,
		}
		if md != nil {
			w.gctx = surface.NewGraphicsContext(md)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			w.main()
		}()

		proxies = append(proxies, p)
	}
	return proxies
}

// paintTile queues one tile on the worker.
func (p *workerProxy) paintTile(m paintTileMsg) {
	p.toWorker <- m
}

// getPaintedTileBuffer blocks until the worker's next reply. A worker
// that died mid-tile closes its reply channel; that is unrecoverable
// and takes the whole paint task down with it.
func (p *workerProxy) getPaintedTileBuffer() *buffer.LayerBuffer {
	buf, ok := <-p.fromWorker
	if !ok {
		panic("paint: worker died while painting a tile")
	}
	return buf
}

// exit stops the worker.
func (p *workerProxy) exit() {
	p.toWorker <- exitWorkerMsg{}
}

// worker rasterizes tiles one at a time on its own goroutine.
type worker struct {
	toWorker     <-chan msgToWorker
	fromWorker   chan<- *buffer.LayerBuffer
	gctx         *surface.GraphicsContext
	fonts        *text.FontContext
	timeProfiler profile.TimeProfilerChan
	opts         Options
}

// main is the worker loop: paint tiles until told to exit. A panic
// while painting closes the reply channel, which the coordinator
// treats as fatal for the pipeline.
func (w *worker) main() {
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("paint worker panicked", "panic", r)
			close(w.fromWorker)
		}
	}()

	for {
		switch m := (<-w.toWorker).(type) {
		case exitWorkerMsg:
			if w.gctx != nil {
				w.gctx.Close()
			}
			return
		case paintTileMsg:
			target := w.rasterizeTile(m)
			w.fromWorker <- w.buildLayerBuffer(m, target)
		}
	}
}

// graphics returns the worker's graphics context, which must exist for
// any painting to happen.
func (w *worker) graphics() *surface.GraphicsContext {
	if w.gctx == nil {
		panic("paint: need a graphics context to do painting")
	}
	return w.gctx
}

// rasterizeTile draws one tile's display list into a fresh draw
// target and returns the target.
func (w *worker) rasterizeTile(m paintTileMsg) surface.DrawTarget {
	size := m.tile.ScreenRect.Size()

	var target surface.DrawTarget
	if w.opts.GPUPainting {
		gt, err := w.graphics().NewGPUDrawTarget(size)
		if err != nil {
			panic(fmt.Sprintf("paint: GPU painting without framebuffers: %v", err))
		}
		gt.MakeCurrent()
		target = gt
	} else {
		target = surface.NewCPUDrawTarget(size)
	}

	pc := &scene.PaintContext{
		Target:      target,
		Fonts:       w.fonts,
		PageRect:    m.tile.PageRect,
		ScreenRect:  m.tile.ScreenRect,
		Kind:        m.kind,
		CanvasSinks: m.sinks,
	}

	// The layer's origin is its overflow rect's origin, so shift the
	// tile into the stacking context's coordinate space.
	tileBounds := m.tile.PageRect.Translate(geom.Point32{
		X: m.context.Overflow.Origin.X.ToPxF32(),
		Y: m.context.Overflow.Origin.Y.ToPxF32(),
	})

	// Scale, then translate so the tile's corner lands on the draw
	// target's origin.
	matrix := geom.Identity().
		Scale(m.scale, m.scale, 1).
		Translate(-tileBounds.Origin.X, -tileBounds.Origin.Y, 0)

	pc.Clear()

	profile.Profile(profile.CategoryPaintingPerTile, w.timeProfiler, func() {
		m.context.DrawIntoContext(pc, tileBounds, matrix)
		target.Flush()
	})

	if w.opts.ShowDebugParallelPaint {
		w.tintTile(pc, size, threadTintColors[m.threadID%len(threadTintColors)])
	}
	if w.opts.PaintFlashing {
		w.tintTile(pc, size, threadTintColors[rand.IntN(len(threadTintColors))])
	}

	return target
}

// tintTile overlays a translucent color over the whole tile.
func (w *worker) tintTile(pc *scene.PaintContext, size image.Point, c gputypes.Color) {
	pc.Target.SetTransform(geom.Identity())
	pc.DrawSolidColor(geom.NewRect32(0, 0, float32(size.X), float32(size.Y)), c)
}

// buildLayerBuffer turns the rasterized draw target into the tile's
// layer buffer. CPU painting uploads the pixels into the reusable
// buffer; GPU painting steals the target's backing and wraps it.
func (w *worker) buildLayerBuffer(m paintTileMsg, target surface.DrawTarget) *buffer.LayerBuffer {
	if !w.opts.GPUPainting {
		buf := m.buf
		buf.NativeSurface.Upload(w.graphics(), target.Snapshot())
		Logger().Debug("worker uploaded to native surface",
			"surface", buf.NativeSurface.ID())
		return buf
	}

	gt := target.(surface.GPUDrawTarget)
	gt.MakeCurrent()

	size := m.tile.ScreenRect.Size()
	ns := surface.NewNativeSurfaceFromBacking(w.graphics(), gt.StealBacking(), size)
	ns.MarkWontLeak()

	return &buffer.LayerBuffer{
		NativeSurface:  ns,
		Rect:           m.tile.PageRect,
		ScreenPos:      m.tile.ScreenRect,
		Resolution:     m.scale,
		Stride:         size.X * 4,
		PaintedWithCPU: false,
		ContentAge:     m.tile.ContentAge,
	}
}
