// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package buffer

import (
	"image"

	"github.com/gogpu/paint/surface"
)

// DefaultPoolBudget is the pool byte budget used when none is
// configured: 10 MB of pixel storage.
const DefaultPoolBudget = 10_000_000

// Pool caches returned layer buffers by exact screen-space size so a
// repaint of the same tiling reuses native surfaces instead of
// allocating new ones. Native surface allocation is the expensive part
// of producing a tile; a size-exact hit avoids it entirely.
//
// The pool holds at most budget bytes of pixels. Inserting past the
// budget evicts the oldest buffer of the least-recently-touched size
// class first (an insert or find of a size touches its class); Find
// hands buffers out LIFO within a size class, which favors cache-warm
// surfaces.
//
// The pool is owned by the paint coordinator and needs no locking.
type Pool struct {
	// stacks maps a buffer size to its free list. The slice is used as
	// a stack: insert appends, find pops from the end.
	stacks map[image.Point][]*LayerBuffer

	// touched records, per size class, the counter value at the last
	// insert or find. Eviction targets the smallest value.
	touched map[image.Point]uint64

	counter uint64
	bytes   int
	budget  int
}

// NewPool creates a pool with the given byte budget. A budget of zero
// or less means the pool stores nothing and every insert destroys its
// buffer immediately.
func NewPool(budget int) *Pool {
	return &Pool{
		stacks:  make(map[image.Point][]*LayerBuffer),
		touched: make(map[image.Point]uint64),
		budget:  budget,
	}
}

// Find removes and returns the most recently inserted buffer of
// exactly the given size, or nil when no buffer of that size is
// pooled.
func (p *Pool) Find(size image.Point) *LayerBuffer {
	stack := p.stacks[size]
	if len(stack) == 0 {
		return nil
	}

	buf := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	if len(stack) == 0 {
		delete(p.stacks, size)
		delete(p.touched, size)
	} else {
		p.stacks[size] = stack
		p.counter++
		p.touched[size] = p.counter
	}

	p.bytes -= buf.ByteSize()
	return buf
}

// Insert adds a buffer to the pool, evicting older buffers if the
// byte budget would be exceeded. Evicted surfaces are destroyed with
// ctx, which must belong to the graphics context family that created
// them.
func (p *Pool) Insert(ctx *surface.GraphicsContext, buf *LayerBuffer) {
	size := buf.Size()
	p.counter++
	p.stacks[size] = append(p.stacks[size], buf)
	p.touched[size] = p.counter
	p.bytes += buf.ByteSize()

	for p.bytes > p.budget {
		p.evictOne(ctx)
	}
}

// evictOne destroys the oldest buffer of the least-recently-touched
// size class.
func (p *Pool) evictOne(ctx *surface.GraphicsContext) {
	var (
		oldest    image.Point
		oldestSeq uint64
		found     bool
	)
	for size, seq := range p.touched {
		if !found || seq < oldestSeq {
			oldest = size
			oldestSeq = seq
			found = true
		}
	}
	if !found {
		return
	}

	stack := p.stacks[oldest]
	buf := stack[0]
	stack[0] = nil
	stack = stack[1:]
	if len(stack) == 0 {
		delete(p.stacks, oldest)
		delete(p.touched, oldest)
	} else {
		p.stacks[oldest] = stack
	}

	p.bytes -= buf.ByteSize()
	slogger().Debug("evicting pooled buffer",
		"size", oldest, "bytes", buf.ByteSize(), "pool_bytes", p.bytes)
	buf.NativeSurface.Destroy(ctx)
}

// Clear destroys every pooled buffer. The pool remains usable.
func (p *Pool) Clear(ctx *surface.GraphicsContext) {
	for _, stack := range p.stacks {
		for _, buf := range stack {
			buf.NativeSurface.Destroy(ctx)
		}
	}
	p.stacks = make(map[image.Point][]*LayerBuffer)
	p.touched = make(map[image.Point]uint64)
	p.bytes = 0
}

// Mem returns the total bytes of pixel storage currently pooled.
func (p *Pool) Mem() int { return p.bytes }

// Len returns the number of pooled buffers across all size classes.
func (p *Pool) Len() int {
	n := 0
	for _, stack := range p.stacks {
		n += len(stack)
	}
	return n
}
