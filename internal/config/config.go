// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides odometer run configuration loading, validation
// and resolution.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
)

// Config is a possibly partial run configuration. Unset fields are nil or
// empty.
type Config struct {
	// Rate is the frame rate in frames per second.
	Rate *int `json:"rate,omitempty" toml:"rate"`
	// Digits is the number of digits displayed.
	Digits *int     `json:"digits,omitempty" toml:"digits"`
	Start  *float64 `json:"start,omitempty" toml:"start"`
	Finish *float64 `json:"finish,omitempty" toml:"finish"`
	// Time is the simulated duration in seconds.
	Time *float64 `json:"time,omitempty" toml:"time"`
	// File is the output file path.
	File string `json:"file,omitempty" toml:"file"`
	Mode string `json:"mode,omitempty" toml:"mode"`

	// Font is the path to a TrueType or OpenType
	// font, or "basic" for the 7x13 bitmap font.
	Font string   `json:"font,omitempty" toml:"font"`
	Size *float64 `json:"size,omitempty" toml:"size"`
	DPI  *float64 `json:"dpi,omitempty" toml:"dpi"`

	// Foreground and Background are web colors
	// in #rrggbb form.
	Foreground string `json:"fg,omitempty" toml:"fg"`
	Background string `json:"bg,omitempty" toml:"bg"`

	// Workers is the number of concurrent frame
	// renderers.
	Workers *int `json:"workers,omitempty" toml:"workers"`
	// Debug is the directory to write individual
	// frames to. Frames are not written if Debug
	// is empty.
	Debug string `json:"debug,omitempty" toml:"debug"`
}

// Schema is the schema for a valid configuration.
const Schema = `
{
	rate?:    int & >0
	digits?:  int & >0 & <=32
	start?:   number & >=0
	finish?:  number & >0
	time?:    number & >0
	file?:    !=""
	mode?:    "DIGITAL" | "ANALOG" | "ANALOG_ALL"
	font?:    !=""
	size?:    number & >0
	dpi?:     number & >0
	fg?:      _#web_color
	bg?:      _#web_color
	workers?: int & >0
	debug?:   string
}

_#web_color: =~"^#[0-9a-fA-F]{6}$"
`

// Load returns the configuration held in the TOML file at path. Unknown
// keys and values that do not conform to [Schema] are errors.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(b)
}

// Unmarshal returns the configuration encoded as TOML in b.
func Unmarshal(b []byte) (*Config, error) {
	var c Config
	md, err := toml.Decode(string(b), &c)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown configuration keys: %s", strings.Join(keys, ", "))
	}
	_, err = Validate(Schema, &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Merge returns a copy of c with fields set in o replacing those in c.
func (c *Config) Merge(o *Config) *Config {
	m := *c
	if o == nil {
		return &m
	}
	mergePtr(&m.Rate, o.Rate)
	mergePtr(&m.Digits, o.Digits)
	mergePtr(&m.Start, o.Start)
	mergePtr(&m.Finish, o.Finish)
	mergePtr(&m.Time, o.Time)
	mergeString(&m.File, o.File)
	mergeString(&m.Mode, o.Mode)
	mergeString(&m.Font, o.Font)
	mergePtr(&m.Size, o.Size)
	mergePtr(&m.DPI, o.DPI)
	mergeString(&m.Foreground, o.Foreground)
	mergeString(&m.Background, o.Background)
	mergePtr(&m.Workers, o.Workers)
	mergeString(&m.Debug, o.Debug)
	return &m
}

func mergePtr[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// Defaults for unset configuration fields.
const (
	DefaultRate  = 97
	DefaultStart = 0
	DefaultTime  = 15 * time.Second
	DefaultMode  = "ANALOG"
	DefaultSize  = 70
	DefaultDPI   = 72
	DefaultFG    = "#ffffff"
	DefaultBG    = "#000000"
)

// Run is a complete run configuration.
type Run struct {
	Rate          int
	Digits        int
	Start, Finish float64
	Time          time.Duration
	File          string
	Mode          string

	// Font is empty for the default font.
	Font      string
	Size, DPI float64

	Foreground, Background colorful.Color

	Workers int
	Debug   string
}

// ErrNoFinish is returned by Resolve when the finish value is not set.
var ErrNoFinish = errors.New("finish value not set")

// Resolve validates c and returns the complete run configuration with
// defaults applied to unset fields.
func (c *Config) Resolve() (*Run, error) {
	_, err := Validate(Schema, c)
	if err != nil {
		return nil, err
	}
	if c.Finish == nil {
		return nil, ErrNoFinish
	}
	r := &Run{
		Rate:    valueOr(c.Rate, DefaultRate),
		Start:   valueOr(c.Start, DefaultStart),
		Finish:  *c.Finish,
		Time:    DefaultTime,
		File:    c.File,
		Mode:    c.Mode,
		Font:    c.Font,
		Size:    valueOr(c.Size, DefaultSize),
		DPI:     valueOr(c.DPI, DefaultDPI),
		Workers: valueOr(c.Workers, runtime.GOMAXPROCS(0)),
		Debug:   c.Debug,
	}
	if c.Time != nil {
		r.Time = time.Duration(*c.Time * float64(time.Second))
	}
	finish := strconv.FormatFloat(math.Floor(r.Finish), 'f', -1, 64)
	r.Digits = valueOr(c.Digits, len(finish))
	if r.File == "" {
		r.File = strconv.FormatFloat(r.Finish, 'f', -1, 64) + ".gif"
	}
	if r.Mode == "" {
		r.Mode = DefaultMode
	}
	r.Foreground, err = colorful.Hex(stringOr(c.Foreground, DefaultFG))
	if err != nil {
		return nil, fmt.Errorf("foreground: %w", err)
	}
	r.Background, err = colorful.Hex(stringOr(c.Background, DefaultBG))
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	return r, nil
}

// Frames returns the number of frames requested by the run; one more than
// the number of frames in the simulated duration at the run's rate.
func (r *Run) Frames() int {
	return int(r.Time.Seconds()*float64(r.Rate)) + 1
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
