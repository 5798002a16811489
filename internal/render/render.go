// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws odometer frames.
package render

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"

	"github.com/kortschak/odometer/internal/glyph"
	"github.com/kortschak/odometer/internal/layout"
)

// Face is a glyph drawing capability.
type Face interface {
	// Draw draws the glyph for r into dst using src
	// with the baseline origin at dot.
	Draw(dst draw.Image, r rune, dot fixed.Point26_6, src image.Image) error
	Close() error
}

// FontFaces returns a function that returns new faces from f.
func FontFaces(f *glyph.Font) func() (Face, error) {
	return func() (Face, error) {
		face, err := f.Face()
		if err != nil {
			return nil, err
		}
		return face, nil
	}
}

// Style holds the colors used to render a frame.
type Style struct {
	Foreground color.Color
	Background color.Color
	Border     color.Color
}

// DefaultStyle is white digits on black with grey cell borders.
var DefaultStyle = Style{
	Foreground: color.White,
	Background: color.Black,
	Border:     color.Gray{Y: 0x80},
}

// Frame is a rendered odometer frame.
type Frame struct {
	// Value is the counter value shown.
	Value float64

	// Image is the color image of the frame.
	Image *image.RGBA
	// Mask is the frame's alpha mask. It is opaque
	// within digit cells and transparent elsewhere.
	Mask *image.Alpha
}

// Renderer renders frames for a layout.
type Renderer struct {
	layout *layout.Layout
	faces  func() (Face, error)
	mode   Mode

	fg, bg, border *image.Uniform

	log *slog.Logger
}

// NewRenderer returns a Renderer that draws digits with faces obtained
// from the faces function and positioned according to l. The layout must
// have been computed from the same font. If log is nil, no logging is
// performed.
func NewRenderer(l *layout.Layout, faces func() (Face, error), mode Mode, style Style, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Renderer{
		layout: l,
		faces:  faces,
		mode:   mode,
		fg:     image.NewUniform(style.Foreground),
		bg:     image.NewUniform(style.Background),
		border: image.NewUniform(style.Border),
		log:    log,
	}
}

// Frame renders a single frame showing value.
func (r *Renderer) Frame(value float64) (*Frame, error) {
	face, err := r.faces()
	if err != nil {
		return nil, err
	}
	defer face.Close()
	return r.frame(face, value)
}

func (r *Renderer) frame(face Face, value float64) (*Frame, error) {
	l := r.layout
	b := l.Bounds()
	f := &Frame{
		Value: value,
		Image: image.NewRGBA(b),
		Mask:  image.NewAlpha(b),
	}
	draw.Draw(f.Image, b, r.bg, image.Point{}, draw.Src)

	for c, col := range Plan(value, l.Digits(), l.Cell.Height, r.mode) {
		box := l.Boxes[c]
		// Glyphs are clipped to their cell.
		cell := f.Image.SubImage(box).(*image.RGBA)

		offset := fixed.Int26_6(math.Round(col.Offset * 64))
		err := r.drawDigit(cell, face, col.Digit, l.Origins[c], -offset)
		if err != nil {
			return nil, err
		}
		if offset != 0 {
			err = r.drawDigit(cell, face, col.Next(), l.Origins[c], fixed.I(l.Cell.Height)-offset)
			if err != nil {
				return nil, err
			}
		}

		outline(f.Image, box, r.border)
		draw.Draw(f.Mask, box, image.Opaque, image.Point{}, draw.Src)
	}
	return f, nil
}

// drawDigit draws digit horizontally centred in the cell at origin and
// displaced vertically by dy.
func (r *Renderer) drawDigit(dst draw.Image, face Face, digit int, origin image.Point, dy fixed.Int26_6) error {
	cell := r.layout.Cell
	g := cell.Glyphs[digit]
	dot := fixed.Point26_6{
		X: fixed.I(origin.X + (cell.Width-g.Dx())/2 - g.Min.X),
		Y: fixed.I(origin.Y+cell.Ascent) + dy,
	}
	return face.Draw(dst, rune('0'+digit), dot, r.fg)
}

// outline draws a single pixel outline just inside rect.
func outline(dst draw.Image, rect image.Rectangle, src image.Image) {
	if rect.Empty() {
		return
	}
	edges := [...]image.Rectangle{
		{Min: rect.Min, Max: image.Point{X: rect.Max.X, Y: rect.Min.Y + 1}},
		{Min: image.Point{X: rect.Min.X, Y: rect.Max.Y - 1}, Max: rect.Max},
		{Min: rect.Min, Max: image.Point{X: rect.Min.X + 1, Y: rect.Max.Y}},
		{Min: image.Point{X: rect.Max.X - 1, Y: rect.Min.Y}, Max: rect.Max},
	}
	for _, e := range edges {
		draw.Draw(dst, e, src, image.Point{}, draw.Src)
	}
}

// Frames renders a frame for each of values using the given number of
// concurrent workers and calls fn with the index of the value and its
// frame. fn is called concurrently and in no particular order; callers
// must place frames by index. Rendering stops at the first error returned
// by fn or by a face, or when ctx is cancelled.
func (r *Renderer) Frames(ctx context.Context, values []float64, workers int, fn func(int, *Frame) error) error {
	workers = max(1, min(workers, len(values)))
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			face, err := r.faces()
			if err != nil {
				return err
			}
			defer face.Close()
			for i := w; i < len(values); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				f, err := r.frame(face, values[i])
				if err != nil {
					return err
				}
				r.log.LogAttrs(ctx, slog.LevelDebug, "rendered frame", slog.Int("index", i), slog.Float64("value", values[i]))
				err = fn(i, f)
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
