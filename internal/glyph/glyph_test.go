// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glyph

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/math/fixed"
)

func TestBasicFace(t *testing.T) {
	f, err := BasicFont().Face()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	ascent, descent := f.Metrics()
	if ascent != 11 || descent != 2 {
		t.Errorf("unexpected metrics: got:(%d,%d) want:(11,2)", ascent, descent)
	}
	for _, r := range "0123456789" {
		got, err := f.Bounds(r)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", r, err)
			continue
		}
		want := image.Rect(0, -11, 6, 2)
		if got != want {
			t.Errorf("unexpected bounds for %q: got:%v want:%v", r, got, want)
		}
	}
}

func TestDefaultFace(t *testing.T) {
	fnt, err := Default(70, 72)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fnt.Name() != "gomonobold" {
		t.Errorf("unexpected name: %s", fnt.Name())
	}
	f, err := fnt.Face()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	ascent, descent := f.Metrics()
	if ascent <= 0 || descent <= 0 {
		t.Errorf("unexpected metrics: (%d,%d)", ascent, descent)
	}
	for _, r := range "0123456789" {
		b, err := f.Bounds(r)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", r, err)
			continue
		}
		if b.Empty() {
			t.Errorf("empty bounds for %q", r)
		}
		if -b.Min.Y > ascent {
			t.Errorf("glyph %q rises above ascent: %d > %d", r, -b.Min.Y, ascent)
		}
	}
}

func TestDraw(t *testing.T) {
	for _, name := range []string{Basic, "gomonobold"} {
		t.Run(name, func(t *testing.T) {
			var fnt *Font
			if name == Basic {
				fnt = BasicFont()
			} else {
				var err error
				fnt, err = Default(24, 72)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			f, err := fnt.Face()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer f.Close()

			ascent, descent := f.Metrics()
			dst := image.NewRGBA(image.Rect(0, 0, 40, ascent+descent))
			err = f.Draw(dst, '8', fixed.P(2, ascent), image.NewUniform(color.White))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var ink int
			for i := 3; i < len(dst.Pix); i += 4 {
				if dst.Pix[i] != 0 {
					ink++
				}
			}
			if ink == 0 {
				t.Error("no ink drawn")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "font.ttf")
	err := os.WriteFile(path, gomonobold.TTF, 0o644)
	if err != nil {
		t.Fatalf("unexpected error writing font: %v", err)
	}
	fnt, err := Load(path, 12, 72)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fnt.Name() != path {
		t.Errorf("unexpected name: got:%s want:%s", fnt.Name(), path)
	}

	fnt, err = Load(Basic, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fnt.Name() != Basic {
		t.Errorf("unexpected name: got:%s want:%s", fnt.Name(), Basic)
	}

	_, err = Load(filepath.Join(dir, "missing.ttf"), 12, 72)
	if err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.ttf")
	err = os.WriteFile(bad, []byte("not a font"), 0o644)
	if err != nil {
		t.Fatalf("unexpected error writing font: %v", err)
	}
	_, err = Load(bad, 12, 72)
	if err == nil {
		t.Error("expected error for invalid font data")
	}

	_, err = Load(path, 0, 72)
	if err == nil {
		t.Error("expected error for zero size")
	}
}
