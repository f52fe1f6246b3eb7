package paint

import (
	"fmt"
	"sync"

	"github.com/gogpu/paint/buffer"
	"github.com/gogpu/paint/canvas"
	"github.com/gogpu/paint/compositor"
	"github.com/gogpu/paint/pipeline"
	"github.com/gogpu/paint/profile"
	"github.com/gogpu/paint/scene"
	"github.com/gogpu/paint/surface"
	"github.com/gogpu/paint/text"
)

// Config wires a paint task into its pipeline.
type Config struct {
	// ID is the owning pipeline.
	ID pipeline.ID

	// URL is the page the pipeline renders; used to tag memory
	// reports.
	URL string

	// Compositor receives painted buffers and layer trees. Required.
	Compositor compositor.Compositor

	// Supervisor is told when the painter is ready and when it fails.
	// Optional.
	Supervisor pipeline.Supervisor

	// Fonts is the shared font cache workers draw from. Required.
	Fonts *text.FontCache

	// TimeProfiler receives paint timing samples. Optional.
	TimeProfiler profile.TimeProfilerChan

	// MemProfiler receives the task's memory reporter registration.
	// Optional.
	MemProfiler profile.MemProfilerChan

	// Shutdown is closed after the task has fully torn down. Optional.
	Shutdown chan<- struct{}
}

// Coordinator is the paint task: a message loop owning the current
// scene, the buffer pool, and the worker rasterizers. All fields are
// confined to the coordinator goroutine.
type Coordinator struct {
	id  pipeline.ID
	url string

	port       <-chan Msg
	compositor compositor.Compositor
	supervisor pipeline.Supervisor

	timeProfiler profile.TimeProfilerChan
	memProfiler  profile.MemProfilerChan
	reporterName string

	// graphics is the coordinator's own context onto the platform
	// graphics stack; nil when the compositor provided no metadata,
	// which disables painting.
	graphics *surface.GraphicsContext

	// root is the scene published by the last PaintInit.
	root *scene.StackingContext

	// paintPermission gates all traffic to the compositor.
	paintPermission bool

	epoch    compositor.Epoch
	hasEpoch bool

	pool    *buffer.Pool
	workers []*workerProxy

	// usedBufferCount is the number of buffers currently loaned to the
	// compositor. The task cannot exit pipeline-only until it reaches
	// zero.
	usedBufferCount int

	canvasMap map[compositor.LayerID]canvas.Sink

	opts Options
}

// Create spawns a paint task and returns the send handle onto its
// queue. The task runs until it receives an ExitMsg; if it panics, the
// supervisor is sent a failure for the pipeline.
func Create(cfg Config, options ...Option) Chan {
	opts := defaultOptions()
	for _, o := range options {
		o(&opts)
	}

	ch := Chan{ch: make(chan Msg, mailboxSize)}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				Logger().Warn("paint task panicked", "pipeline", cfg.ID, "panic", r)
				if cfg.Supervisor != nil {
					cfg.Supervisor.PaintFailure(pipeline.Failure{Pipeline: cfg.ID, URL: cfg.URL})
				}
			}
		}()

		md := cfg.Compositor.GraphicsMetadata()
		var gctx *surface.GraphicsContext
		if md != nil {
			gctx = surface.NewGraphicsContext(md)
		}

		var workerWG sync.WaitGroup
		workers := spawnWorkers(md, cfg.Fonts, cfg.TimeProfiler, opts, &workerWG)

		// Register as a memory reporter through our own queue.
		reporterName := fmt.Sprintf("paint-reporter-%s", cfg.ID)
		cfg.MemProfiler.Send(profile.RegisterReporter{Name: reporterName, Reporter: ch})

		c := &Coordinator{
			id:           cfg.ID,
			url:          cfg.URL,
			port:         ch.ch,
			compositor:   cfg.Compositor,
			supervisor:   cfg.Supervisor,
			timeProfiler: cfg.TimeProfiler,
			memProfiler:  cfg.MemProfiler,
			reporterName: reporterName,
			graphics:     gctx,
			pool:         buffer.NewPool(opts.PoolBudget),
			workers:      workers,
			canvasMap:    make(map[compositor.LayerID]canvas.Sink),
			opts:         opts,
		}

		c.start()

		// Destroy pooled buffers while the graphics context is still
		// alive, then release the context, then stop the workers.
		if gctx != nil {
			c.pool.Clear(gctx)
			gctx.Close()
		}
		for _, w := range workers {
			w.exit()
		}
		workerWG.Wait()

		Logger().Debug("paint task: shutdown send", "pipeline", cfg.ID)
		if cfg.Shutdown != nil {
			close(cfg.Shutdown)
		}
	}()

	return ch
}

// start runs the message loop until an exit condition is met.
func (c *Coordinator) start() {
	Logger().Debug("paint task: beginning painting loop", "pipeline", c.id)

	var exitAck chan<- struct{}
	waitingForBuffers := false

	for {
		switch m := (<-c.port).(type) {
		case PaintInitMsg:
			c.epoch = m.Epoch
			c.hasEpoch = true
			c.root = m.Root

			if !c.paintPermission {
				Logger().Debug("paint task: paint ready msg", "pipeline", c.id)
				if c.supervisor != nil {
					c.supervisor.PainterReady(c.id)
				}
				continue
			}
			if waitingForBuffers {
				continue
			}

			c.initializeLayers()

		case CanvasLayerMsg:
			Logger().Debug("paint task: canvas sink registered", "layer", m.Layer)
			c.canvasMap[m.Layer] = m.Sink

		case PaintMsg:
			if !c.paintPermission {
				Logger().Debug("paint task: paint ready msg", "pipeline", c.id)
				if c.supervisor != nil {
					c.supervisor.PainterReady(c.id)
				}
				continue
			}
			if waitingForBuffers {
				continue
			}

			var replies []compositor.Reply
			for _, req := range m.Requests {
				if c.hasEpoch && req.Epoch == c.epoch {
					c.paint(&replies, req)
				} else {
					Logger().Debug("painter epoch mismatch",
						"request", req.Epoch, "current", c.epoch)
				}
			}

			for _, reply := range replies {
				c.usedBufferCount += len(reply.Buffers.Buffers)
			}

			Logger().Debug("paint task: returning surfaces",
				"replies", len(replies), "in_use", c.usedBufferCount)
			c.compositor.AssignPaintedBuffers(c.id, c.currentEpoch(), replies, m.Frame)

		case UnusedBufferMsg:
			Logger().Debug("paint task: received unused buffers",
				"pipeline", c.id, "count", len(m.Buffers))
			c.usedBufferCount -= len(m.Buffers)

			// Insert in reverse so the first buffer shipped is the
			// last pooled, keeping reuse LIFO.
			for i := len(m.Buffers) - 1; i >= 0; i-- {
				c.pool.Insert(c.graphicsContext(), m.Buffers[i])
			}

			if waitingForBuffers && c.usedBufferCount == 0 {
				Logger().Debug("paint task: received all loaned buffers, exiting")
				if exitAck != nil {
					exitAck <- struct{}{}
				}
				return
			}

		case PaintPermissionGrantedMsg:
			c.paintPermission = true
			if c.root != nil {
				c.initializeLayers()
			}

		case PaintPermissionRevokedMsg:
			c.paintPermission = false

		case CollectReportsMsg:
			reports := []profile.Report{{
				Path: []string{"pages", fmt.Sprintf("url(%s)", c.url), "paint-task", "buffer-map"},
				Size: uint64(c.pool.Mem()),
			}}
			m.Reports <- reports

		case ExitMsg:
			c.memProfiler.Send(profile.UnregisterReporter{Name: c.reporterName})

			// Ask the compositor to return the buffers it holds for
			// this pipeline. Sent from inside the message loop so the
			// reply cannot race an in-flight paint batch.
			c.compositor.NotifyPaintTaskExiting(c.id)

			wait := m.Type == pipeline.ExitPipelineOnly && c.usedBufferCount != 0
			if !wait {
				Logger().Debug("paint task: exiting without waiting for compositor buffers")
				if m.Ack != nil {
					m.Ack <- struct{}{}
				}
				return
			}

			// Pipeline-only exit with loans outstanding: recover every
			// surface before going away, since only our graphics
			// context can free them. A complete exit skips this; the
			// compositor lets everything leak.
			Logger().Debug("paint task: waiting for compositor buffers",
				"pipeline", c.id, "in_use", c.usedBufferCount)
			waitingForBuffers = true
			exitAck = m.Ack
		}
	}
}

// currentEpoch returns the scene epoch, which must have been set by a
// PaintInit before anything is shipped to the compositor.
func (c *Coordinator) currentEpoch() compositor.Epoch {
	if !c.hasEpoch {
		panic("paint: no scene epoch")
	}
	return c.epoch
}

// graphicsContext returns the coordinator's graphics context, which
// must exist for any painting to happen.
func (c *Coordinator) graphicsContext() *surface.GraphicsContext {
	if c.graphics == nil {
		panic("paint: need a graphics context to do painting")
	}
	return c.graphics
}

// paint rasterizes one request's tiles and appends the reply. Tiles go
// to workers round-robin; replies are collected with the same worker
// mapping, so buffer i always corresponds to tile i.
func (c *Coordinator) paint(replies *[]compositor.Reply, req PaintRequest) {
	profile.Profile(profile.CategoryPainting, c.timeProfiler, func() {
		if c.root == nil {
			return
		}
		sc := scene.FindStackingContextWithLayerID(c.root, req.Layer)
		if sc == nil {
			return
		}

		tiles := req.BufferRequests
		n := len(c.workers)

		// Grab a buffer for every tile before dispatch starts, so all
		// pool access stays on the coordinator goroutine.
		prepared := make([]*buffer.LayerBuffer, len(tiles))
		for i := range tiles {
			prepared[i] = c.findOrCreateLayerBufferForTile(tiles[i], req.Scale)
		}

		// Dispatch from a helper goroutine while the coordinator
		// collects, so a worker blocked handing back its reply never
		// wedges the rest of the batch.
		go func() {
			for i, tile := range tiles {
				w := i % n
				c.workers[w].paintTile(paintTileMsg{
					threadID: w,
					tile:     tile,
					buf:      prepared[i],
					context:  sc,
					scale:    req.Scale,
					kind:     req.Kind,
					sinks:    c.canvasMap,
				})
			}
		}()

		buffers := make([]*buffer.LayerBuffer, 0, len(tiles))
		for i := range tiles {
			buffers = append(buffers, c.workers[i%n].getPaintedTileBuffer())
		}

		*replies = append(*replies, compositor.Reply{
			Layer:   req.Layer,
			Buffers: &buffer.Set{Buffers: buffers},
		})
	})
}

// findOrCreateLayerBufferForTile fetches a pooled buffer matching the
// tile's screen size, or allocates a fresh native surface when the
// pool misses. GPU painting bypasses the pool entirely: the worker
// wraps the framebuffer backing instead.
func (c *Coordinator) findOrCreateLayerBufferForTile(tile buffer.Request, scale float32) *buffer.LayerBuffer {
	if c.opts.GPUPainting {
		return nil
	}

	size := tile.ScreenRect.Size()
	if buf := c.pool.Find(size); buf != nil {
		buf.Rect = tile.PageRect
		buf.ScreenPos = tile.ScreenRect
		buf.Resolution = scale
		buf.NativeSurface.MarkWontLeak()
		buf.PaintedWithCPU = true
		buf.ContentAge = tile.ContentAge
		return buf
	}

	// Mark the fresh surface as not leaking in case it dies in
	// transit to the compositor.
	ns := surface.NewNativeSurface(c.graphicsContext(), size, size.X*4)
	ns.MarkWontLeak()

	return &buffer.LayerBuffer{
		NativeSurface:  ns,
		Rect:           tile.PageRect,
		ScreenPos:      tile.ScreenRect,
		Resolution:     scale,
		Stride:         size.X * 4,
		PaintedWithCPU: true,
		ContentAge:     tile.ContentAge,
	}
}
