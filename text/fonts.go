// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package text provides the font plumbing paint workers draw text
// with: a shared FontCache holding raw font data and a per-worker
// FontContext that parses and caches faces from it.
//
// Text shaping itself happens in the display-list producer; workers
// only need parsed fonts and sized faces to execute the resulting
// glyph runs.
package text

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"golang.org/x/image/math/fixed"
)

// FontCache is the pipeline-wide store of raw font data, keyed by
// family name. One cache is shared by every paint worker.
//
// FontCache is safe for concurrent use.
type FontCache struct {
	mu      sync.RWMutex
	sources map[string][]byte
}

// NewFontCache creates an empty font cache.
func NewFontCache() *FontCache {
	return &FontCache{sources: make(map[string][]byte)}
}

// AddFontData registers raw TTF/OTF bytes under a family name,
// replacing any previous data for that name.
func (c *FontCache) AddFontData(name string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[name] = data
}

// Data returns the raw bytes registered under name.
func (c *FontCache) Data(name string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.sources[name]
	return data, ok
}

// Names returns the registered family names in unspecified order.
func (c *FontCache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	return names
}

// Face pairs a parsed font with a pixel size. The size uses 26.6
// fixed point, matching glyph positioning elsewhere in the stack.
type Face struct {
	Font *font.Font
	Size fixed.Int26_6
}

// FontContext parses fonts out of a FontCache and memoizes the parsed
// form. Each paint worker owns one context, so no locking is needed
// around the parse cache; the parsed *font.Font values themselves are
// read-only and safe to share.
type FontContext struct {
	cache *FontCache
	fonts map[string]*font.Font
}

// NewFontContext creates a context drawing from the given cache.
func NewFontContext(cache *FontCache) *FontContext {
	return &FontContext{
		cache: cache,
		fonts: make(map[string]*font.Font),
	}
}

// Font returns the parsed font for a family name, parsing and caching
// it on first use.
func (fc *FontContext) Font(name string) (*font.Font, error) {
	if f, ok := fc.fonts[name]; ok {
		return f, nil
	}

	data, ok := fc.cache.Data(name)
	if !ok {
		return nil, fmt.Errorf("text: unknown font family %q", name)
	}

	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parsing font %q: %w", name, err)
	}

	fc.fonts[name] = face.Font
	return face.Font, nil
}

// FaceAt returns a sized face for a family name.
func (fc *FontContext) FaceAt(name string, sizePx float64) (Face, error) {
	f, err := fc.Font(name)
	if err != nil {
		return Face{}, err
	}
	return Face{Font: f, Size: floatToFixed(sizePx)}, nil
}

// ScriptOf returns the Unicode script of a rune, used to pick fallback
// fonts for glyph runs.
func ScriptOf(r rune) language.Script {
	return language.LookupScript(r)
}

// floatToFixed converts a pixel size to 26.6 fixed point.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// FixedToFloat converts a 26.6 fixed-point value to float64 pixels.
func FixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
