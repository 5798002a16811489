// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package animation

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Levels is the default number of tones between the background and
// foreground colors in a palette. It is odd so that the mid tone used
// for cell borders is exactly represented.
const Levels = 33

// Palette returns a palette holding a fully transparent color at index
// zero followed by levels colors blended from bg to fg. levels must be in
// [2, 255].
func Palette(fg, bg colorful.Color, levels int) (color.Palette, error) {
	if levels < 2 || 255 < levels {
		return nil, fmt.Errorf("invalid palette levels: %d", levels)
	}
	pal := make(color.Palette, 0, levels+1)
	pal = append(pal, color.RGBA{})
	for i := range levels {
		c := bg.BlendRgb(fg, float64(i)/float64(levels-1)).Clamped()
		r, g, b := c.RGB255()
		pal = append(pal, color.RGBA{R: r, G: g, B: b, A: 0xff})
	}
	return pal, nil
}

// Paletted returns img quantised to pal. Pixels where mask is fully
// transparent are set to index zero, which must hold the transparent
// color; all other pixels are set to the nearest opaque color in pal.
func Paletted(img *image.RGBA, mask *image.Alpha, pal color.Palette) *image.Paletted {
	b := img.Bounds()
	dst := image.NewPaletted(b, pal)
	opaque := pal[1:]
	// Rendered frames use few distinct colors.
	index := make(map[color.RGBA]uint8)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.AlphaAt(x, y).A == 0 {
				continue
			}
			c := img.RGBAAt(x, y)
			idx, ok := index[c]
			if !ok {
				idx = uint8(opaque.Index(c) + 1)
				index[c] = idx
			}
			dst.SetColorIndex(x, y, idx)
		}
	}
	return dst
}
