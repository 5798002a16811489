// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package animation

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockName is the name of the lock file held in a debug directory while
// it is in use.
const lockName = ".lock"

// DebugDir is a directory holding individual frames of an animation. Each
// frame is stored as a GIF named for its counter value.
type DebugDir struct {
	path string
	lock *flock.Flock
}

// OpenDebugDir creates the directory at path if it does not exist and
// removes any files it holds. The directory is locked against use by
// other processes until the DebugDir is closed.
func OpenDebugDir(path string) (*DebugDir, error) {
	err := os.MkdirAll(path, 0o755)
	if err != nil {
		return nil, fmt.Errorf("debug dir: %w", err)
	}
	lock := flock.New(filepath.Join(path, lockName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("debug dir: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("debug dir: %s is in use", path)
	}
	d := &DebugDir{path: path, lock: lock}
	err = d.clean()
	if err != nil {
		return nil, errors.Join(err, d.Close())
	}
	return d, nil
}

func (d *DebugDir) clean() error {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return fmt.Errorf("debug dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || e.Name() == lockName {
			continue
		}
		err = os.Remove(filepath.Join(d.path, e.Name()))
		if err != nil {
			return fmt.Errorf("debug dir: %w", err)
		}
	}
	return nil
}

// Path returns the path of the directory.
func (d *DebugDir) Path() string {
	return d.path
}

// Name returns the file name used for the frame showing value.
func Name(value float64) string {
	return fmt.Sprintf("%.2f.gif", value)
}

// Write writes img as the frame showing value. Write is safe for concurrent
// use with distinct values.
func (d *DebugDir) Write(value float64, img *image.Paletted) error {
	var buf bytes.Buffer
	err := gif.Encode(&buf, img, nil)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.path, Name(value)), buf.Bytes(), 0o644)
}

// Close releases the directory lock.
func (d *DebugDir) Close() error {
	err := d.lock.Unlock()
	return errors.Join(err, os.Remove(d.lock.Path()))
}
