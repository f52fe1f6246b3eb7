package paint

import (
	"runtime"

	"github.com/gogpu/paint/buffer"
)

// Options configures a paint task.
type Options struct {
	// GPUPainting makes workers rasterize into the platform
	// framebuffer instead of CPU pixmaps. The worker count is forced
	// to 1 and the buffer pool is bypassed.
	GPUPainting bool

	// PaintThreads is the CPU-mode worker count. At least 1.
	PaintThreads int

	// PoolBudget is the buffer pool's byte budget.
	PoolBudget int

	// ShowDebugParallelPaint tints every tile by the index of the
	// worker that painted it.
	ShowDebugParallelPaint bool

	// PaintFlashing tints every tile with a random color on every
	// paint, making repaints visible.
	PaintFlashing bool
}

// Option configures Options during Create.
type Option func(*Options)

// defaultOptions returns the defaults: CPU painting with one worker
// per logical CPU and a 10 MB pool budget.
func defaultOptions() Options {
	return Options{
		PaintThreads: runtime.GOMAXPROCS(0),
		PoolBudget:   buffer.DefaultPoolBudget,
	}
}

// WithGPUPainting enables GPU painting.
func WithGPUPainting() Option {
	return func(o *Options) { o.GPUPainting = true }
}

// WithPaintThreads sets the CPU-mode worker count.
func WithPaintThreads(n int) Option {
	return func(o *Options) { o.PaintThreads = n }
}

// WithPoolBudget sets the buffer pool's byte budget.
func WithPoolBudget(bytes int) Option {
	return func(o *Options) { o.PoolBudget = bytes }
}

// WithDebugParallelPaint tints tiles by painting worker.
func WithDebugParallelPaint() Option {
	return func(o *Options) { o.ShowDebugParallelPaint = true }
}

// WithPaintFlashing tints tiles randomly on every paint.
func WithPaintFlashing() Option {
	return func(o *Options) { o.PaintFlashing = true }
}

// workerCount returns the number of rasterizer workers the options
// call for. GPU painting shares one framebuffer-bound context, so it
// runs exactly one worker.
func (o Options) workerCount() int {
	if o.GPUPainting {
		return 1
	}
	if o.PaintThreads < 1 {
		return 1
	}
	return o.PaintThreads
}
