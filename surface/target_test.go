// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/paint/geom"
)

// pixelAt returns the BGRA bytes of one pixel.
func pixelAt(t *CPUDrawTarget, x, y int) [4]byte {
	i := (y*t.Size().X + x) * 4
	pix := t.Pix()
	return [4]byte{pix[i], pix[i+1], pix[i+2], pix[i+3]}
}

func TestCPUDrawTarget_StartsTransparent(t *testing.T) {
	dt := NewCPUDrawTarget(image.Pt(4, 4))
	if got := pixelAt(dt, 0, 0); got != [4]byte{} {
		t.Errorf("fresh target pixel = %v, want zero", got)
	}
}

func TestCPUDrawTarget_Clear(t *testing.T) {
	dt := NewCPUDrawTarget(image.Pt(2, 2))
	dt.Clear(gputypes.Color{R: 1, G: 0, B: 0, A: 1})

	want := [4]byte{0, 0, 255, 255} // BGRA
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := pixelAt(dt, x, y); got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCPUDrawTarget_FillRectOpaque(t *testing.T) {
	dt := NewCPUDrawTarget(image.Pt(4, 4))
	dt.FillRect(geom.NewRect32(1, 1, 2, 2), gputypes.Color{B: 1, A: 1})

	if got := pixelAt(dt, 1, 1); got != [4]byte{255, 0, 0, 255} {
		t.Errorf("inside pixel = %v, want opaque blue", got)
	}
	if got := pixelAt(dt, 0, 0); got != [4]byte{} {
		t.Errorf("outside pixel = %v, want untouched", got)
	}
	if got := pixelAt(dt, 3, 3); got != [4]byte{} {
		t.Errorf("outside pixel = %v, want untouched", got)
	}
}

func TestCPUDrawTarget_FillRectBlends(t *testing.T) {
	dt := NewCPUDrawTarget(image.Pt(1, 1))
	dt.Clear(gputypes.Color{R: 1, A: 1})

	// 50%-alpha green over opaque red.
	dt.FillRect(geom.NewRect32(0, 0, 1, 1), gputypes.Color{G: 1, A: 0.5})

	got := pixelAt(dt, 0, 0)
	if got[3] != 255 {
		t.Errorf("alpha = %d, want opaque result", got[3])
	}
	// Red halves, green appears at half strength.
	if got[2] < 120 || got[2] > 135 {
		t.Errorf("red channel = %d, want about 127", got[2])
	}
	if got[1] < 120 || got[1] > 135 {
		t.Errorf("green channel = %d, want about 127", got[1])
	}
}

func TestCPUDrawTarget_FillRectTransformed(t *testing.T) {
	dt := NewCPUDrawTarget(image.Pt(4, 4))
	// Tile transform: scale 1, shifted so page (10,10) lands at (0,0).
	dt.SetTransform(geom.Identity().Translate(-10, -10, 0))
	dt.FillRect(geom.NewRect32(10, 10, 2, 2), gputypes.Color{R: 1, A: 1})

	if got := pixelAt(dt, 0, 0); got != [4]byte{0, 0, 255, 255} {
		t.Errorf("pixel (0,0) = %v, want red", got)
	}
	if got := pixelAt(dt, 2, 2); got != [4]byte{} {
		t.Errorf("pixel (2,2) = %v, want untouched", got)
	}
}

func TestCPUDrawTarget_FillRectClamped(t *testing.T) {
	dt := NewCPUDrawTarget(image.Pt(2, 2))
	// Far larger than the target; must not panic or write out of range.
	dt.FillRect(geom.NewRect32(-100, -100, 1000, 1000), gputypes.Color{G: 1, A: 1})

	if got := pixelAt(dt, 1, 1); got != [4]byte{0, 255, 0, 255} {
		t.Errorf("pixel = %v, want green", got)
	}
}

func TestCPUDrawTarget_Snapshot(t *testing.T) {
	dt := NewCPUDrawTarget(image.Pt(2, 1))
	dt.Clear(gputypes.Color{B: 1, A: 1})

	snap := dt.Snapshot()
	if len(snap) != 2*1*4 {
		t.Fatalf("snapshot length = %d, want 8", len(snap))
	}

	// The snapshot is a copy: later drawing must not affect it.
	dt.Clear(gputypes.Color{R: 1, A: 1})
	if snap[0] != 255 {
		t.Errorf("snapshot mutated by later drawing")
	}
}

func TestCPUDrawTarget_Stride(t *testing.T) {
	dt := NewCPUDrawTarget(image.Pt(100, 50))
	if dt.Stride() != 400 {
		t.Errorf("Stride() = %d, want 400", dt.Stride())
	}
	if dt.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format() = %v, want BGRA8", dt.Format())
	}
}
