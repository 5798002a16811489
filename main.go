// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The odometer command renders an animated GIF of a mechanical counter
// rolling from a start value to a finish value.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/kortschak/odometer/internal/animation"
	"github.com/kortschak/odometer/internal/config"
	"github.com/kortschak/odometer/internal/glyph"
	"github.com/kortschak/odometer/internal/layout"
	"github.com/kortschak/odometer/internal/render"
	"github.com/kortschak/odometer/internal/sequence"
	"github.com/kortschak/odometer/internal/slogext"
	"github.com/kortschak/odometer/internal/version"
	"github.com/kortschak/odometer/internal/xdg"
)

// Exit status codes.
const (
	success       = 0
	internalError = 1 << (iota - 1)
	invocationError
)

func main() { os.Exit(Main()) }

func Main() int {
	var (
		rate, digits, workers          int
		start, finish, secs, size, dpi float64
		file, mode, fontPath           string
		fg, bg, debugDir               string
	)
	flag.IntVar(&rate, "rate", config.DefaultRate, "frame rate in frames per second")
	flag.IntVar(&rate, "r", config.DefaultRate, "shorthand for -rate")
	flag.IntVar(&digits, "digits", 0, "number of digits (default number of integer digits of finish)")
	flag.IntVar(&digits, "d", 0, "shorthand for -digits")
	flag.Float64Var(&start, "start", config.DefaultStart, "start value")
	flag.Float64Var(&start, "s", config.DefaultStart, "shorthand for -start")
	flag.Float64Var(&finish, "finish", 0, "finish value (required)")
	flag.Float64Var(&finish, "f", 0, "shorthand for -finish")
	flag.Float64Var(&secs, "time", config.DefaultTime.Seconds(), "simulated duration in seconds")
	flag.Float64Var(&secs, "t", config.DefaultTime.Seconds(), "shorthand for -time")
	flag.StringVar(&file, "file", "", "output file (default <finish>.gif)")
	flag.StringVar(&mode, "mode", config.DefaultMode, "render mode ("+strings.Join(render.Modes, ", ")+")")
	flag.StringVar(&mode, "m", config.DefaultMode, "shorthand for -mode")
	flag.StringVar(&fontPath, "font", "", `TrueType or OpenType font file or "basic" (default Go Mono Bold)`)
	flag.Float64Var(&size, "size", config.DefaultSize, "font size in points")
	flag.Float64Var(&dpi, "dpi", config.DefaultDPI, "font resolution in dots per inch")
	flag.StringVar(&fg, "fg", config.DefaultFG, "foreground color")
	flag.StringVar(&bg, "bg", config.DefaultBG, "background color")
	flag.IntVar(&workers, "workers", 0, "number of concurrent frame renderers (default GOMAXPROCS)")
	flag.StringVar(&debugDir, "debug", "", "directory to write individual frames to")
	cfgPath := flag.String("config", "", "configuration file (default $XDG_CONFIG_HOME/odometer/config.toml)")
	logging := flag.String("log", "info", "logging level (debug, info, warn or error)")
	lines := flag.Bool("lines", false, "display source line details in logs")
	v := flag.Bool("version", false, "print version and exit")
	flag.Parse()
	if *v {
		err := version.Print(os.Stdout)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return internalError
		}
		return success
	}
	if flag.NArg() != 0 {
		flag.Usage()
		return invocationError
	}

	var level slog.LevelVar
	err := level.UnmarshalText([]byte(*logging))
	if err != nil {
		flag.Usage()
		return invocationError
	}
	addSource := slogext.NewAtomicBool(*lines)
	log := slog.New(slogext.GoID{Handler: slogext.NewJSONHandler(os.Stderr, &slogext.HandlerOptions{
		Level:     &level,
		AddSource: addSource,
	})})
	mlog := log.With(slog.String("component", "odometer.main"))

	// Only explicitly set flags override the configuration file.
	var flags config.Config
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "r", "rate":
			flags.Rate = &rate
		case "d", "digits":
			flags.Digits = &digits
		case "s", "start":
			flags.Start = &start
		case "f", "finish":
			flags.Finish = &finish
		case "t", "time":
			flags.Time = &secs
		case "file":
			flags.File = file
		case "m", "mode":
			flags.Mode = mode
		case "font":
			flags.Font = fontPath
		case "size":
			flags.Size = &size
		case "dpi":
			flags.DPI = &dpi
		case "fg":
			flags.Foreground = fg
		case "bg":
			flags.Background = bg
		case "workers":
			flags.Workers = &workers
		case "debug":
			flags.Debug = debugDir
		}
	})
	cfg, path, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return invocationError
	}
	if path != "" {
		mlog.Info("loaded configuration", slog.String("path", path))
	}
	run, err := cfg.Merge(&flags).Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return invocationError
	}
	m, err := render.ParseMode(run.Mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return invocationError
	}
	values, err := sequence.Values(run.Start, run.Finish, run.Frames())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: start=%v finish=%v frames=%d\n", err, run.Start, run.Finish, run.Frames())
		return invocationError
	}
	mlog.Info("value sequence",
		slog.Int64("step", sequence.Step(run.Start, run.Finish, run.Frames())),
		slog.Int("requested", run.Frames()),
		slog.Int("frames", len(values)),
		slog.Any("mode", slogext.Stringer{Stringer: m}),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	err = generate(ctx, run, m, values, log)
	if err != nil {
		mlog.Error("failed to generate animation", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
		return internalError
	}
	fmt.Printf("generated %s with %d frames\n", run.File, len(values))
	return success
}

// loadConfig returns the configuration held at path, or in the user's
// configuration directory if path is empty. If path is empty and no
// configuration file exists, an empty configuration is returned. The
// path of the file that was read is returned.
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		var err error
		path, err = xdg.Config(filepath.Join("odometer", "config.toml"), false)
		if errors.Is(err, syscall.ENOENT) {
			return &config.Config{}, "", nil
		}
		if err != nil {
			return nil, "", err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, path, nil
}

// generate renders values as an animation described by run and writes it
// to run.File.
func generate(ctx context.Context, run *config.Run, mode render.Mode, values []float64, log *slog.Logger) error {
	mlog := log.With(slog.String("component", "odometer.main"))

	var (
		f   *glyph.Font
		err error
	)
	if run.Font == "" {
		f, err = glyph.Default(run.Size, run.DPI)
	} else {
		f, err = glyph.Load(run.Font, run.Size, run.DPI)
	}
	if err != nil {
		return err
	}
	face, err := f.Face()
	if err != nil {
		return err
	}
	l, err := layout.New(run.Digits, face)
	face.Close()
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	mlog.Info("layout", slog.String("font", f.Name()), slog.Any("layout", l))

	pal, err := animation.Palette(run.Foreground, run.Background, animation.Levels)
	if err != nil {
		return err
	}
	style := render.Style{
		Foreground: pal[len(pal)-1],
		Background: pal[1],
		Border:     pal[1+animation.Levels/2],
	}

	var debug *animation.DebugDir
	if run.Debug != "" {
		debug, err = animation.OpenDebugDir(run.Debug)
		if err != nil {
			return err
		}
		defer debug.Close()
		mlog.Info("writing debug frames", slog.String("path", debug.Path()))
	}

	asm := animation.NewAssembler(len(values), pal)
	r := render.NewRenderer(l, render.FontFaces(f), mode, style, log.With(slog.String("component", "odometer.render")))
	err = r.Frames(ctx, values, run.Workers, func(i int, frame *render.Frame) error {
		p := asm.Set(i, frame.Image, frame.Mask)
		if debug == nil {
			return nil
		}
		return debug.Write(frame.Value, p)
	})
	if err != nil {
		return err
	}

	err = asm.WriteFile(run.File, run.Time)
	if err != nil {
		return err
	}
	mlog.Info("wrote animation",
		slog.String("path", run.File),
		slog.Int("frames", asm.Len()),
		slog.Int("delay", animation.Delay(run.Time, asm.Len())),
	)
	return nil
}
