// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var validateTests = []struct {
	name      string
	config    *Config
	wantPaths [][]string
	wantErr   bool
}{
	{
		name:   "empty",
		config: &Config{},
	},
	{
		name: "complete",
		config: &Config{
			Rate:       ptr(10),
			Digits:     ptr(8),
			Start:      ptr(0.0),
			Finish:     ptr(1000000.0),
			Time:       ptr(2.5),
			File:       "out.gif",
			Mode:       "ANALOG_ALL",
			Font:       "basic",
			Size:       ptr(48.0),
			DPI:        ptr(96.0),
			Foreground: "#ffcc00",
			Background: "#000000",
			Workers:    ptr(4),
			Debug:      "debug",
		},
	},
	{
		name:      "invalid_mode",
		config:    &Config{Mode: "DIGITALISH"},
		wantPaths: [][]string{{"mode"}},
		wantErr:   true,
	},
	{
		name:      "negative_rate",
		config:    &Config{Rate: ptr(-1)},
		wantPaths: [][]string{{"rate"}},
		wantErr:   true,
	},
	{
		name:      "zero_digits",
		config:    &Config{Digits: ptr(0)},
		wantPaths: [][]string{{"digits"}},
		wantErr:   true,
	},
	{
		name:      "bad_colors",
		config:    &Config{Foreground: "white", Background: "#12345"},
		wantPaths: [][]string{{"bg"}, {"fg"}},
		wantErr:   true,
	},
	{
		name:      "negative_start_and_time",
		config:    &Config{Start: ptr(-5.0), Time: ptr(0.0)},
		wantPaths: [][]string{{"start"}, {"time"}},
		wantErr:   true,
	},
}

func TestValidate(t *testing.T) {
	for _, test := range validateTests {
		t.Run(test.name, func(t *testing.T) {
			paths, err := Validate(Schema, test.config)
			if (err != nil) != test.wantErr {
				t.Errorf("unexpected error: got:%v want error:%t", err, test.wantErr)
			}
			if !cmp.Equal(test.wantPaths, paths) {
				t.Errorf("unexpected paths:\n--- want:\n+++ got:\n%s", cmp.Diff(test.wantPaths, paths))
			}
		})
	}
}

func TestUnique(t *testing.T) {
	got := unique([][]string{{"b"}, {"a", "c"}, {"a"}, {"b"}, {"a", "c"}})
	want := [][]string{{"a"}, {"a", "c"}, {"b"}}
	if !cmp.Equal(want, got) {
		t.Errorf("unexpected result:\n--- want:\n+++ got:\n%s", cmp.Diff(want, got))
	}
}

func ptr[T any](v T) *T {
	return &v
}
