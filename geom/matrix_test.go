// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import "testing"

func TestMatrix4_Identity(t *testing.T) {
	m := Identity()
	if !m.IsIdentity() {
		t.Error("Identity() should be identity")
	}

	p := Point32{X: 3, Y: -7}
	if got := m.TransformPoint32(p); got != p {
		t.Errorf("identity transform moved point: %v", got)
	}
}

func TestMatrix4_MulIdentity(t *testing.T) {
	m := NewScale(2, 3, 1).Translate(5, 6, 0)
	if got := m.Mul(Identity()); got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * m = %v, want %v", got, m)
	}
}

func TestMatrix4_ScaleThenTranslate(t *testing.T) {
	// Identity.Scale(2).Translate(-10, -20) applies the translation to
	// points first: p' = 2 * (p - (10, 20)).
	m := Identity().Scale(2, 2, 1).Translate(-10, -20, 0)

	got := m.TransformPoint32(Point32{X: 10, Y: 20})
	if got != (Point32{X: 0, Y: 0}) {
		t.Errorf("tile origin maps to %v, want (0,0)", got)
	}

	got = m.TransformPoint32(Point32{X: 60, Y: 70})
	if got != (Point32{X: 100, Y: 100}) {
		t.Errorf("point maps to %v, want (100,100)", got)
	}
}

func TestMatrix4_TransformRect32(t *testing.T) {
	m := Identity().Scale(2, 2, 1)
	got := m.TransformRect32(NewRect32(1, 2, 3, 4))
	want := NewRect32(2, 4, 6, 8)
	if got != want {
		t.Errorf("TransformRect32 = %v, want %v", got, want)
	}
}

func TestMatrix4_CompositionOrder(t *testing.T) {
	// (T * S) p == T(S(p)) under the column-vector convention.
	s := NewScale(3, 3, 1)
	tr := NewTranslation(1, 1, 0)

	p := Point32{X: 2, Y: 2}
	got := tr.Mul(s).TransformPoint32(p)
	want := Point32{X: 7, Y: 7}
	if got != want {
		t.Errorf("(T*S)p = %v, want %v", got, want)
	}

	got = s.Mul(tr).TransformPoint32(p)
	want = Point32{X: 9, Y: 9}
	if got != want {
		t.Errorf("(S*T)p = %v, want %v", got, want)
	}
}
