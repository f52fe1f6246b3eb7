// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package canvas defines the message channel between the paint
// subsystem and canvas producers. A canvas-backed layer registers a
// sink with the paint coordinator; display-list drawing sends requests
// through it to fetch the producer's latest pixels.
package canvas

// Msg is a request to a canvas producer.
type Msg interface {
	canvasMsg()
}

// SendPixels asks the producer for its current frame. The producer
// replies with tightly packed BGRA pixels on Reply.
type SendPixels struct {
	Reply chan<- []byte
}

func (SendPixels) canvasMsg() {}

// Close tells the producer its consumer is going away.
type Close struct{}

func (Close) canvasMsg() {}

// Sink carries messages to one canvas producer.
type Sink chan<- Msg
