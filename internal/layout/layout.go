// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout computes the pixel geometry of an odometer digit strip.
package layout

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
)

// BorderRatio is the size of the border around each digit cell relative
// to the cell's dimensions.
const BorderRatio = 0.05

// Metrics is the font capability needed to lay out digits.
type Metrics interface {
	// Bounds returns the ink bounds of the glyph for r
	// relative to the baseline origin.
	Bounds(r rune) (image.Rectangle, error)
	// Metrics returns the ascent and descent of the font.
	Metrics() (ascent, descent int)
}

// Cell is the geometry shared by all digit cells.
type Cell struct {
	// Width is the widest digit glyph.
	Width int
	// Height is the sum of the font's ascent and descent.
	Height int
	// Ascent is the distance from the top of the cell
	// to the baseline.
	Ascent int

	// Glyphs holds the ink bounds of each digit glyph
	// relative to its baseline origin.
	Glyphs [10]image.Rectangle
}

// CellSize returns the digit cell geometry for the font described by m.
func CellSize(m Metrics) (Cell, error) {
	var c Cell
	for d := range c.Glyphs {
		b, err := m.Bounds(rune('0' + d))
		if err != nil {
			return Cell{}, err
		}
		c.Glyphs[d] = b
		c.Width = max(c.Width, b.Dx())
	}
	ascent, descent := m.Metrics()
	c.Height = ascent + descent
	c.Ascent = ascent
	if c.Width <= 0 || c.Height <= 0 {
		return Cell{}, fmt.Errorf("invalid digit cell size: %dx%d", c.Width, c.Height)
	}
	return c, nil
}

// Layout is the geometry of a digit strip. Origins and Boxes are indexed
// by screen column from left to right, so the most significant digit is
// at index zero. A Layout must not be mutated after construction.
type Layout struct {
	Cell Cell

	XBorder, YBorder int

	// Origins holds the top-left corner of each
	// digit cell.
	Origins []image.Point
	// Boxes holds the bounding box of each digit
	// cell.
	Boxes []image.Rectangle

	// Size is the size of the canvas.
	Size image.Point
}

// ErrNoDigits is returned when a layout is requested for fewer than one
// digit.
var ErrNoDigits = errors.New("no digits")

// New returns the layout for a strip of the given number of digits using
// the font described by m.
func New(digits int, m Metrics) (*Layout, error) {
	if digits <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoDigits, digits)
	}
	cell, err := CellSize(m)
	if err != nil {
		return nil, err
	}
	return FromCell(digits, cell), nil
}

// FromCell returns the layout for a strip of the given number of digits with
// the provided cell geometry. digits must be positive.
func FromCell(digits int, cell Cell) *Layout {
	l := &Layout{
		Cell:    cell,
		XBorder: int(float64(cell.Width) * BorderRatio),
		YBorder: int(float64(cell.Height) * BorderRatio),
		Origins: make([]image.Point, digits),
		Boxes:   make([]image.Rectangle, digits),
	}
	for i := range digits {
		p := image.Point{X: l.XBorder + i*(cell.Width+l.XBorder), Y: l.YBorder}
		l.Origins[i] = p
		l.Boxes[i] = image.Rectangle{Min: p, Max: p.Add(image.Point{X: cell.Width, Y: cell.Height})}
	}
	l.Size = image.Point{
		X: digits*(cell.Width+l.XBorder) + l.XBorder,
		Y: cell.Height + 2*l.YBorder,
	}
	return l
}

// Digits returns the number of digits in the strip.
func (l *Layout) Digits() int {
	return len(l.Origins)
}

// Bounds returns the canvas rectangle.
func (l *Layout) Bounds() image.Rectangle {
	return image.Rectangle{Max: l.Size}
}

func (l *Layout) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("digits", l.Digits()),
		slog.Int("cell_width", l.Cell.Width),
		slog.Int("cell_height", l.Cell.Height),
		slog.Int("xborder", l.XBorder),
		slog.Int("yborder", l.YBorder),
		slog.Int("width", l.Size.X),
		slog.Int("height", l.Size.Y),
	)
}
