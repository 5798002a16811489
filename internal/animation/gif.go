// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package animation

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"
	"os"
	"time"
)

// Delay returns the per-frame delay in hundredths of a second for an
// animation of the given number of frames lasting total. The delay is
// the frame duration rounded to the nearest millisecond and then to the
// nearest hundredth of a second, and is at least one.
func Delay(total time.Duration, frames int) int {
	if frames <= 0 {
		return 1
	}
	ms := math.Round(float64(total) / float64(time.Millisecond) / float64(frames))
	return max(1, int(math.Round(ms/10)))
}

// Assembler collects paletted frames for a looping GIF animation.
type Assembler struct {
	pal    color.Palette
	frames []*image.Paletted
}

// NewAssembler returns an Assembler for n frames using the provided
// palette. Index zero of the palette must be the transparent color.
func NewAssembler(n int, pal color.Palette) *Assembler {
	return &Assembler{pal: pal, frames: make([]*image.Paletted, n)}
}

// Set quantises img with mask and places the result at index i of the
// animation, returning the quantised frame. Set may be called concurrently
// with distinct indexes.
func (a *Assembler) Set(i int, img *image.RGBA, mask *image.Alpha) *image.Paletted {
	p := Paletted(img, mask, a.pal)
	a.frames[i] = p
	return p
}

// Len returns the number of frames in the animation.
func (a *Assembler) Len() int {
	return len(a.frames)
}

// GIF returns the frames as a looping GIF animation lasting total.
func (a *Assembler) GIF(total time.Duration) (*gif.GIF, error) {
	if len(a.frames) == 0 {
		return nil, errors.New("no frames")
	}
	var b image.Rectangle
	for i, f := range a.frames {
		if f == nil {
			return nil, fmt.Errorf("missing frame %d", i)
		}
		if i == 0 {
			b = f.Bounds()
		} else if b != f.Bounds() {
			return nil, fmt.Errorf("mismatched bounds at %d: %v != %v", i, f.Bounds(), b)
		}
	}
	delay := Delay(total, len(a.frames))
	g := &gif.GIF{
		Image:    a.frames,
		Delay:    make([]int, len(a.frames)),
		Disposal: make([]byte, len(a.frames)),
		Config: image.Config{
			ColorModel: a.pal,
			Width:      b.Dx(),
			Height:     b.Dy(),
		},
		BackgroundIndex: 0,
	}
	for i := range g.Delay {
		g.Delay[i] = delay
		g.Disposal[i] = gif.DisposalBackground
	}
	return g, nil
}

// Encode writes the animation lasting total to w.
func (a *Assembler) Encode(w io.Writer, total time.Duration) error {
	g, err := a.GIF(total)
	if err != nil {
		return err
	}
	return gif.EncodeAll(w, g)
}

// WriteFile writes the animation lasting total to the named file. The file
// is only written if the complete animation is successfully encoded.
func (a *Assembler) WriteFile(path string, total time.Duration) error {
	var buf bytes.Buffer
	err := a.Encode(&buf, total)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// DecodeGIF returns the GIF animation decoded from the provided io.Reader.
// GIF delay, disposal and global background index values are checked for
// validity.
func DecodeGIF(r io.Reader) (*gif.GIF, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	if len(g.Image) != len(g.Delay) && g.Delay != nil {
		return nil, fmt.Errorf("mismatched image count and delay count: %d != %d", len(g.Image), len(g.Delay))
	}
	if len(g.Image) != len(g.Disposal) && g.Disposal != nil {
		return nil, fmt.Errorf("mismatched image count and disposal count: %d != %d", len(g.Image), len(g.Disposal))
	}
	pal, ok := g.Config.ColorModel.(color.Palette)
	if idx := int(g.BackgroundIndex); ok && idx >= len(pal) {
		return nil, fmt.Errorf("global background colour index not in palette: %d", idx)
	}
	return g, nil
}
