// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package profile

import "testing"

func TestProfile_NilChanRunsFunc(t *testing.T) {
	ran := false
	Profile(CategoryPainting, nil, func() { ran = true })
	if !ran {
		t.Error("Profile with nil profiler did not run the function")
	}
}

func TestProfile_DeliversSample(t *testing.T) {
	samples := make(chan Sample, 1)
	Profile(CategoryPaintingPerTile, samples, func() {})

	select {
	case s := <-samples:
		if s.Category != CategoryPaintingPerTile {
			t.Errorf("Category = %v, want PaintingPerTile", s.Category)
		}
		if s.Duration < 0 {
			t.Errorf("Duration = %v, want >= 0", s.Duration)
		}
	default:
		t.Fatal("no sample delivered")
	}
}

func TestCategory_String(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryPainting, "Painting"},
		{CategoryPaintingPerTile, "PaintingPerTile"},
		{Category(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.cat.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestMemProfilerChan_NilSendIsNoop(t *testing.T) {
	var c MemProfilerChan
	// Must not block or panic.
	c.Send(RegisterReporter{Name: "x"})
}

func TestMemProfilerChan_Send(t *testing.T) {
	ch := make(chan MemMsg, 1)
	MemProfilerChan(ch).Send(UnregisterReporter{Name: "paint-reporter-1"})

	select {
	case m := <-ch:
		u, ok := m.(UnregisterReporter)
		if !ok || u.Name != "paint-reporter-1" {
			t.Errorf("received %v", m)
		}
	default:
		t.Fatal("message not delivered")
	}
}
