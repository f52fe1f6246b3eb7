// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pipeline holds the identifiers and supervisor-facing types
// shared by every task belonging to one rendering pipeline.
package pipeline

import "fmt"

// ID identifies a rendering pipeline within its constellation.
type ID struct {
	// Namespace is the id of the script thread that created the
	// pipeline.
	Namespace uint32

	// Index is the pipeline's index within its namespace.
	Index uint32
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return fmt.Sprintf("(%d,%d)", id.Namespace, id.Index)
}

// ExitType selects how much of the system is shutting down when a task
// receives an exit request.
type ExitType uint8

const (
	// ExitComplete tears down the whole constellation. Buffers still
	// held by the compositor are allowed to leak because the
	// compositor is going away too.
	ExitComplete ExitType = iota

	// ExitPipelineOnly tears down a single pipeline. Every native
	// surface must be recovered first, since only the originating
	// graphics context can free them.
	ExitPipelineOnly
)

// Failure describes a crashed pipeline task to the supervisor.
type Failure struct {
	Pipeline ID
	URL      string
}

// Supervisor is the constellation-side interface paint tasks report to.
type Supervisor interface {
	// PainterReady signals that a scene has arrived but the task does
	// not yet have permission to paint.
	PainterReady(id ID)

	// PaintFailure reports a paint task that died on a panic.
	PaintFailure(f Failure)
}
