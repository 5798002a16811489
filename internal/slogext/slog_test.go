// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slogext

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type mode int

func (m mode) String() string { return [...]string{"DIGITAL", "ANALOG"}[m] }

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	addSource := NewAtomicBool(false)
	log := slog.New(GoID{NewJSONHandler(&buf, &HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})}).With("component", "test")

	log.Debug("hidden")
	log.Info("frame", "mode", Stringer{mode(1)}, "nil", Stringer{})
	addSource.Store(true)
	log.WithGroup("layout").Warn("sourced", "digits", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected number of log lines: got:%d want:2\n%s", len(lines), &buf)
	}

	var first map[string]any
	err := json.Unmarshal([]byte(lines[0]), &first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := first["goid"].(float64); !ok {
		t.Errorf("missing goid in %s", lines[0])
	}
	delete(first, "goid")
	want := map[string]any{
		"level":     "INFO",
		"msg":       "frame",
		"component": "test",
		"mode":      "ANALOG",
		"nil":       "<nil>",
	}
	if !cmp.Equal(want, first) {
		t.Errorf("unexpected log line:\n--- want:\n+++ got:\n%s", cmp.Diff(want, first))
	}

	var second map[string]any
	err = json.Unmarshal([]byte(lines[1]), &second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := second[slog.SourceKey]; !ok {
		t.Errorf("missing source in %s", lines[1])
	}
	layout, ok := second["layout"].(map[string]any)
	if !ok {
		t.Fatalf("missing layout group in %s", lines[1])
	}
	if layout["digits"] != 7.0 {
		t.Errorf("unexpected digits: got:%v want:7", layout["digits"])
	}
	if _, ok := layout["goid"]; !ok {
		t.Errorf("missing goid in layout group: %s", lines[1])
	}
}
