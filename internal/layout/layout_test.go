// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kortschak/odometer/internal/glyph"
)

// metrics is a fixed width font description.
type metrics struct {
	widths          map[rune]int
	ascent, descent int
	missing         rune
}

func (m metrics) Bounds(r rune) (image.Rectangle, error) {
	if r == m.missing {
		return image.Rectangle{}, glyph.ErrMissingGlyph
	}
	w, ok := m.widths[r]
	if !ok {
		w = 40
	}
	return image.Rect(1, -m.ascent+3, 1+w, 0), nil
}

func (m metrics) Metrics() (ascent, descent int) {
	return m.ascent, m.descent
}

func TestCellSize(t *testing.T) {
	m := metrics{widths: map[rune]int{'0': 48, '4': 50, '1': 22}, ascent: 64, descent: 16}
	got, err := CellSize(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Width != 50 {
		t.Errorf("unexpected width: got:%d want:50", got.Width)
	}
	if got.Height != 80 {
		t.Errorf("unexpected height: got:%d want:80", got.Height)
	}
	if got.Ascent != 64 {
		t.Errorf("unexpected ascent: got:%d want:64", got.Ascent)
	}
	if got.Glyphs[1].Dx() != 22 {
		t.Errorf("unexpected glyph width for '1': got:%d want:22", got.Glyphs[1].Dx())
	}
}

func TestCellSizeMissingGlyph(t *testing.T) {
	m := metrics{ascent: 64, descent: 16, missing: '7'}
	_, err := CellSize(m)
	if !errors.Is(err, glyph.ErrMissingGlyph) {
		t.Errorf("unexpected error: got:%v want:%v", err, glyph.ErrMissingGlyph)
	}
}

func TestCanvasSize(t *testing.T) {
	m := metrics{widths: map[rune]int{'0': 50}, ascent: 64, descent: 16}
	l, err := New(8, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.XBorder != 2 {
		t.Errorf("unexpected x border: got:%d want:2", l.XBorder)
	}
	if l.YBorder != 4 {
		t.Errorf("unexpected y border: got:%d want:4", l.YBorder)
	}
	want := image.Point{X: 8*52 + 2, Y: 80 + 2*4}
	if l.Size != want {
		t.Errorf("unexpected canvas size: got:%v want:%v", l.Size, want)
	}
	if l.Size.X != 418 {
		t.Errorf("unexpected canvas width: got:%d want:418", l.Size.X)
	}
	if l.Bounds() != image.Rect(0, 0, 418, 88) {
		t.Errorf("unexpected bounds: %v", l.Bounds())
	}
}

func TestLayoutColumns(t *testing.T) {
	m := metrics{widths: map[rune]int{'0': 50}, ascent: 64, descent: 16}
	l, err := New(3, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantOrigins := []image.Point{{X: 2, Y: 4}, {X: 54, Y: 4}, {X: 106, Y: 4}}
	if !cmp.Equal(wantOrigins, l.Origins) {
		t.Errorf("unexpected origins:\n--- want:\n+++ got:\n%s", cmp.Diff(wantOrigins, l.Origins))
	}
	wantBoxes := []image.Rectangle{
		image.Rect(2, 4, 52, 84),
		image.Rect(54, 4, 104, 84),
		image.Rect(106, 4, 156, 84),
	}
	if !cmp.Equal(wantBoxes, l.Boxes) {
		t.Errorf("unexpected boxes:\n--- want:\n+++ got:\n%s", cmp.Diff(wantBoxes, l.Boxes))
	}
	for i, b := range l.Boxes {
		if !b.In(l.Bounds()) {
			t.Errorf("box %d not within canvas: %v not in %v", i, b, l.Bounds())
		}
		if i != 0 && b.Overlaps(l.Boxes[i-1]) {
			t.Errorf("box %d overlaps box %d", i, i-1)
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	fnt, err := glyph.Default(70, 72)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var layouts [2]*Layout
	for i := range layouts {
		f, err := fnt.Face()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		layouts[i], err = New(8, f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f.Close()
	}
	if !cmp.Equal(layouts[0], layouts[1]) {
		t.Errorf("layouts differ:\n--- first:\n+++ second:\n%s", cmp.Diff(layouts[0], layouts[1]))
	}
}

func TestNoDigits(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := New(n, metrics{ascent: 10, descent: 2})
		if !errors.Is(err, ErrNoDigits) {
			t.Errorf("unexpected error for %d digits: got:%v want:%v", n, err, ErrNoDigits)
		}
	}
}
