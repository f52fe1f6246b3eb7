package paint

import (
	"github.com/gogpu/paint/buffer"
	"github.com/gogpu/paint/canvas"
	"github.com/gogpu/paint/compositor"
	"github.com/gogpu/paint/pipeline"
	"github.com/gogpu/paint/profile"
	"github.com/gogpu/paint/scene"
)

// mailboxSize is the coordinator queue depth. Senders only block when
// the coordinator falls this far behind, which in practice means the
// pipeline is wedged anyway.
const mailboxSize = 64

// Msg is a message to the paint coordinator.
type Msg interface {
	paintMsg()
}

// PaintInitMsg publishes a new scene under a new epoch.
type PaintInitMsg struct {
	Epoch compositor.Epoch
	Root  *scene.StackingContext
}

func (PaintInitMsg) paintMsg() {}

// CanvasLayerMsg registers a canvas producer's sink for a layer.
type CanvasLayerMsg struct {
	Layer compositor.LayerID
	Sink  canvas.Sink
}

func (CanvasLayerMsg) paintMsg() {}

// PaintRequest asks for one layer's tiles at one scale under one
// epoch.
type PaintRequest struct {
	BufferRequests []buffer.Request
	Scale          float32
	Layer          compositor.LayerID
	Epoch          compositor.Epoch
	Kind           compositor.LayerKind
}

// PaintMsg carries a batch of paint requests for one compositor frame.
type PaintMsg struct {
	Requests []PaintRequest
	Frame    compositor.FrameTreeID
}

func (PaintMsg) paintMsg() {}

// UnusedBufferMsg returns buffers the compositor no longer displays.
type UnusedBufferMsg struct {
	Buffers []*buffer.LayerBuffer
}

func (UnusedBufferMsg) paintMsg() {}

// PaintPermissionGrantedMsg allows the task to talk to the compositor.
type PaintPermissionGrantedMsg struct{}

func (PaintPermissionGrantedMsg) paintMsg() {}

// PaintPermissionRevokedMsg withdraws paint permission.
type PaintPermissionRevokedMsg struct{}

func (PaintPermissionRevokedMsg) paintMsg() {}

// CollectReportsMsg asks the task to measure its memory use.
type CollectReportsMsg struct {
	Reports profile.ReportsChan
}

func (CollectReportsMsg) paintMsg() {}

// ExitMsg shuts the task down. Ack, if non-nil, is signalled when the
// message loop ends, before the pool is cleared and the workers are
// stopped; Config.Shutdown is closed once that teardown is complete.
// With ExitPipelineOnly and buffers still loaned out, the task first
// drains every loan.
type ExitMsg struct {
	Ack  chan<- struct{}
	Type pipeline.ExitType
}

func (ExitMsg) paintMsg() {}

// Chan is the send handle onto a paint coordinator's queue. Messages
// are delivered in order. The zero value is not usable; Create returns
// a connected Chan.
type Chan struct {
	ch chan Msg
}

// Send delivers a message to the coordinator, blocking if its mailbox
// is full.
func (c Chan) Send(m Msg) {
	c.ch <- m
}

// SendOpt delivers a message unless the coordinator's mailbox is full,
// reporting whether the message was accepted. Used on shutdown paths
// that race with the task going away.
func (c Chan) SendOpt(m Msg) bool {
	select {
	case c.ch <- m:
		return true
	default:
		return false
	}
}

// CollectReports implements profile.Reporter by injecting a
// collection request into the coordinator's own queue.
func (c Chan) CollectReports(reports profile.ReportsChan) bool {
	return c.SendOpt(CollectReportsMsg{Reports: reports})
}

var _ profile.Reporter = Chan{}
