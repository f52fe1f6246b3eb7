package paint

import (
	"bytes"
	"image"
	"testing"

	"github.com/gogpu/paint/surface"
)

// =============================================================================
// Tile Mapping Tests
// =============================================================================

func TestPaint_DeterministicTileMapping(t *testing.T) {
	// An empty layer plus per-worker tinting makes the painting worker
	// visible in the pixels: with two workers, buffers 0 and 2 come
	// from worker 0, buffers 1 and 3 from worker 1.
	root := testScene()
	root.Items = nil

	f := startTask(t, WithPaintThreads(2), WithDebugParallelPaint())
	f.initPainted(t, 1, root)

	f.ch.Send(PaintMsg{Requests: []PaintRequest{paintRequest(1, 1, quadTiles(0))}})
	batch := recvTimeout(t, f.compositor.assigned, "painted buffers")

	bufs := batch.replies[0].Buffers.Buffers
	if len(bufs) != 4 {
		t.Fatalf("buffers = %d, want 4", len(bufs))
	}

	data := make([][]byte, 4)
	for i, buf := range bufs {
		data[i] = buf.NativeSurface.Data()
	}

	if !bytes.Equal(data[0], data[2]) {
		t.Error("buffers 0 and 2 differ; both should come from worker 0")
	}
	if !bytes.Equal(data[1], data[3]) {
		t.Error("buffers 1 and 3 differ; both should come from worker 1")
	}
	if bytes.Equal(data[0], data[1]) {
		t.Error("buffers 0 and 1 match; different workers should tint differently")
	}

	f.exitComplete(t)
}

func TestPaint_SingleWorkerHandlesWholeBatch(t *testing.T) {
	f := startTask(t, WithPaintThreads(1))
	f.initPainted(t, 1, testScene())

	f.ch.Send(PaintMsg{Requests: []PaintRequest{paintRequest(1, 1, quadTiles(0))}})
	batch := recvTimeout(t, f.compositor.assigned, "painted buffers")

	if got := len(batch.replies[0].Buffers.Buffers); got != 4 {
		t.Errorf("buffers = %d, want 4", got)
	}

	f.exitComplete(t)
}

// =============================================================================
// GPU Mode Tests
// =============================================================================

// fakeBacking stands in for a GPU texture stolen from a framebuffer.
type fakeBacking struct {
	destroyed bool
}

func (b *fakeBacking) Destroy() { b.destroyed = true }

// fakeGPUTarget wraps a CPU target with the framebuffer-specific
// operations.
type fakeGPUTarget struct {
	*surface.CPUDrawTarget
}

func (f *fakeGPUTarget) MakeCurrent() {}

func (f *fakeGPUTarget) StealBacking() any { return &fakeBacking{} }

// fakeFramebuffers hands out fake framebuffer-bound targets.
type fakeFramebuffers struct{}

func (fakeFramebuffers) NewDrawTarget(size image.Point) (surface.GPUDrawTarget, error) {
	return &fakeGPUTarget{CPUDrawTarget: surface.NewCPUDrawTarget(size)}, nil
}

func TestPaint_GPUMode(t *testing.T) {
	f := &taskFixture{
		compositor: newTestCompositor(),
		supervisor: newTestSupervisor(),
		shutdown:   make(chan struct{}),
	}
	f.compositor.md = &surface.Metadata{Framebuffers: fakeFramebuffers{}}
	f.ch = Create(Config{
		ID:         testPipelineID(),
		URL:        "https://example.com/",
		Compositor: f.compositor,
		Supervisor: f.supervisor,
		Shutdown:   f.shutdown,
		Fonts:      newTestFonts(),
	}, WithGPUPainting(), WithPaintThreads(8))

	f.initPainted(t, 1, testScene())

	f.ch.Send(PaintMsg{Requests: []PaintRequest{paintRequest(1, 1, quadTiles(0))}})
	batch := recvTimeout(t, f.compositor.assigned, "painted buffers")

	bufs := batch.replies[0].Buffers.Buffers
	if len(bufs) != 4 {
		t.Fatalf("buffers = %d, want 4", len(bufs))
	}
	for i, buf := range bufs {
		if buf.PaintedWithCPU {
			t.Errorf("buffer %d painted with CPU in GPU mode", i)
		}
		if buf.NativeSurface.Data() != nil {
			t.Errorf("buffer %d has CPU data; GPU buffers wrap the backing", i)
		}
		if buf.Stride != 400 {
			t.Errorf("buffer %d stride = %d, want 400", i, buf.Stride)
		}
	}

	f.exitComplete(t)
}

// =============================================================================
// Option Tests
// =============================================================================

func TestOptions_WorkerCount(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"cpu", Options{PaintThreads: 4}, 4},
		{"gpu forces one", Options{GPUPainting: true, PaintThreads: 4}, 1},
		{"minimum one", Options{PaintThreads: 0}, 1},
		{"negative", Options{PaintThreads: -3}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.workerCount(); got != tt.want {
				t.Errorf("workerCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOptions_Defaults(t *testing.T) {
	o := defaultOptions()
	if o.GPUPainting {
		t.Error("GPU painting should default off")
	}
	if o.PaintThreads < 1 {
		t.Errorf("PaintThreads = %d, want >= 1", o.PaintThreads)
	}
	if o.PoolBudget != 10_000_000 {
		t.Errorf("PoolBudget = %d, want 10MB", o.PoolBudget)
	}
}

func TestOptions_Setters(t *testing.T) {
	o := defaultOptions()
	for _, opt := range []Option{
		WithGPUPainting(),
		WithPaintThreads(3),
		WithPoolBudget(1234),
		WithDebugParallelPaint(),
		WithPaintFlashing(),
	} {
		opt(&o)
	}
	if !o.GPUPainting || o.PaintThreads != 3 || o.PoolBudget != 1234 ||
		!o.ShowDebugParallelPaint || !o.PaintFlashing {
		t.Errorf("options not applied: %+v", o)
	}
}
