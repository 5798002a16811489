// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glyph provides font loading, glyph metrics and glyph rendering
// for odometer digits.
package glyph

import (
	"errors"
	"fmt"
	"image"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrMissingGlyph is returned when a face has no glyph for a rune.
var ErrMissingGlyph = errors.New("missing glyph")

// Basic is the name used to select the fixed 7x13 bitmap font.
const Basic = "basic"

// Font is a font at a fixed size. A Font is safe for concurrent use, but
// the faces it returns are not.
type Font struct {
	name string

	sfnt *opentype.Font
	opts opentype.FaceOptions

	basic *basicfont.Face
}

// Default returns the Go Mono Bold font at the given size in points and
// resolution in dots per inch.
func Default(size, dpi float64) (*Font, error) {
	return Parse("gomonobold", gomonobold.TTF, size, dpi)
}

// Load returns the TrueType or OpenType font held in the file at path at the
// given size in points and resolution in dots per inch. If path is [Basic],
// the [basicfont.Face7x13] font is returned and size and dpi are ignored.
func Load(path string, size, dpi float64) (*Font, error) {
	if path == Basic {
		return BasicFont(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: %w", err)
	}
	return Parse(path, b, size, dpi)
}

// Parse returns the TrueType or OpenType font encoded in data at the given
// size in points and resolution in dots per inch.
func Parse(name string, data []byte, size, dpi float64) (*Font, error) {
	if size <= 0 || dpi <= 0 {
		return nil, fmt.Errorf("font: invalid size: %vpt at %vdpi", size, dpi)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: %s: %w", name, err)
	}
	return &Font{
		name: name,
		sfnt: f,
		opts: opentype.FaceOptions{
			Size:    size,
			DPI:     dpi,
			Hinting: font.HintingFull,
		},
	}, nil
}

// BasicFont returns the [basicfont.Face7x13] font.
func BasicFont() *Font {
	return &Font{name: Basic, basic: basicfont.Face7x13}
}

// Name returns the name the font was loaded with.
func (f *Font) Name() string {
	return f.name
}

// Face returns a new face for the font. The returned face must not be
// shared between goroutines.
func (f *Font) Face() (*Face, error) {
	if f.basic != nil {
		return &Face{face: f.basic}, nil
	}
	face, err := opentype.NewFace(f.sfnt, &f.opts)
	if err != nil {
		return nil, fmt.Errorf("font: %s: %w", f.name, err)
	}
	return &Face{face: face}, nil
}

// Face is a font face. Face values must not be shared between goroutines.
type Face struct {
	face font.Face
}

// Bounds returns the ink bounds of the glyph for r relative to a dot at
// the origin of the baseline, left and top edges rounded down and right
// and bottom edges rounded up.
func (f *Face) Bounds(r rune) (image.Rectangle, error) {
	b, _, ok := f.face.GlyphBounds(r)
	if !ok {
		return image.Rectangle{}, fmt.Errorf("%w: %q", ErrMissingGlyph, r)
	}
	return image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil()), nil
}

// Metrics returns the ascent and descent of the face in pixels.
func (f *Face) Metrics() (ascent, descent int) {
	m := f.face.Metrics()
	return m.Ascent.Ceil(), m.Descent.Ceil()
}

// Draw draws the glyph for r into dst using src with the baseline origin
// at dot.
func (f *Face) Draw(dst draw.Image, r rune, dot fixed.Point26_6, src image.Image) error {
	dr, mask, maskp, _, ok := f.face.Glyph(dot, r)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingGlyph, r)
	}
	draw.DrawMask(dst, dr, src, dr.Min, mask, maskp, draw.Over)
	return nil
}

// Close releases resources held by the face.
func (f *Face) Close() error {
	return f.face.Close()
}
