// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"
	"math"
)

// Mode is the digit rolling policy.
type Mode int

const (
	// Digital never rolls digits.
	Digital Mode = iota
	// Analog rolls all digits except the most significant.
	Analog
	// AnalogAll rolls all digits.
	AnalogAll
)

// ErrInvalidMode is returned for unknown mode names.
var ErrInvalidMode = errors.New("invalid mode")

// Modes is the list of valid mode names.
var Modes = []string{"DIGITAL", "ANALOG", "ANALOG_ALL"}

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "DIGITAL":
		return Digital, nil
	case "ANALOG":
		return Analog, nil
	case "ANALOG_ALL":
		return AnalogAll, nil
	default:
		return 0, fmt.Errorf("%w: %q: must be one of %v", ErrInvalidMode, s, Modes)
	}
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(Modes) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return Modes[m]
}

// rolls returns whether the screen column col rolls in mode m.
func (m Mode) rolls(col int) bool {
	switch m {
	case Analog:
		return col != 0
	case AnalogAll:
		return true
	default:
		return false
	}
}

// Column is the rendering plan for a single digit column.
type Column struct {
	// Digit is the digit shown in the column.
	Digit int
	// Fraction is the progress of the column towards
	// its next digit, in [0, 1).
	Fraction float64
	// Offset is the upward roll of the column in pixels.
	// When Offset is non-zero the next digit is drawn
	// below the current digit.
	Offset float64
}

// Next returns the digit following c.Digit on the wheel.
func (c Column) Next() int {
	return (c.Digit + 1) % 10
}

// Plan returns the digit, roll fraction and roll offset for each screen
// column of a strip of the given number of digits showing value. Columns
// are ordered from left to right, so the least significant digit is last.
// The roll offset is the fraction scaled by height when the column rolls
// in the given mode and zero otherwise. value must be non-negative and
// less than 2^53.
func Plan(value float64, digits, height int, mode Mode) []Column {
	ip, fp := math.Modf(value)
	n := uint64(ip)
	cols := make([]Column, digits)
	for c := range cols {
		// Significance of the column; 0 is the units digit.
		k := digits - 1 - c

		digit, rem := 0, n
		if k < len(pow10) {
			p := pow10[k]
			digit = int(n / p % 10)
			rem = n % p
		}
		frac := (float64(rem) + fp) / math.Pow10(k)
		if frac >= 1 {
			frac = math.Nextafter(1, 0)
		}

		cols[c] = Column{Digit: digit, Fraction: frac}
		if mode.rolls(c) {
			cols[c].Offset = frac * float64(height)
		}
	}
	return cols
}

var pow10 = func() []uint64 {
	p := make([]uint64, 20)
	p[0] = 1
	for i := 1; i < len(p); i++ {
		p[i] = p[i-1] * 10
	}
	return p
}()
