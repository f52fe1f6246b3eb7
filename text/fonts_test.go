// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"testing"

	"github.com/go-text/typesetting/language"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

func TestFontCache_AddAndGet(t *testing.T) {
	c := NewFontCache()
	c.AddFontData("Go Regular", goregular.TTF)

	data, ok := c.Data("Go Regular")
	if !ok {
		t.Fatal("registered font not found")
	}
	if len(data) != len(goregular.TTF) {
		t.Errorf("data length = %d, want %d", len(data), len(goregular.TTF))
	}

	if _, ok := c.Data("Nope"); ok {
		t.Error("unknown family should not be found")
	}

	names := c.Names()
	if len(names) != 1 || names[0] != "Go Regular" {
		t.Errorf("Names() = %v", names)
	}
}

func TestFontContext_ParsesAndCaches(t *testing.T) {
	c := NewFontCache()
	c.AddFontData("Go Regular", goregular.TTF)
	fc := NewFontContext(c)

	f1, err := fc.Font("Go Regular")
	if err != nil {
		t.Fatalf("Font() error: %v", err)
	}
	if f1 == nil {
		t.Fatal("Font() returned nil font")
	}

	// Second lookup hits the cache and returns the identical font.
	f2, err := fc.Font("Go Regular")
	if err != nil {
		t.Fatalf("Font() second lookup error: %v", err)
	}
	if f1 != f2 {
		t.Error("parsed font was not cached")
	}
}

func TestFontContext_UnknownFamily(t *testing.T) {
	fc := NewFontContext(NewFontCache())
	if _, err := fc.Font("Missing"); err == nil {
		t.Error("expected error for unknown family")
	}
}

func TestFontContext_BadData(t *testing.T) {
	c := NewFontCache()
	c.AddFontData("Broken", []byte("definitely not a font"))
	fc := NewFontContext(c)

	if _, err := fc.Font("Broken"); err == nil {
		t.Error("expected parse error for invalid font data")
	}
}

func TestFontContext_FaceAt(t *testing.T) {
	c := NewFontCache()
	c.AddFontData("Go Regular", goregular.TTF)
	fc := NewFontContext(c)

	face, err := fc.FaceAt("Go Regular", 16)
	if err != nil {
		t.Fatalf("FaceAt() error: %v", err)
	}
	if face.Size != fixed.Int26_6(16*64) {
		t.Errorf("Size = %v, want %v", face.Size, fixed.Int26_6(16*64))
	}
	if face.Font == nil {
		t.Error("FaceAt() returned nil font")
	}
}

func TestScriptOf(t *testing.T) {
	if got := ScriptOf('A'); got != language.Latin {
		t.Errorf("ScriptOf('A') = %v, want Latin", got)
	}
}

func TestFixedToFloat(t *testing.T) {
	if got := FixedToFloat(fixed.Int26_6(96)); got != 1.5 {
		t.Errorf("FixedToFloat(96) = %v, want 1.5", got)
	}
}
