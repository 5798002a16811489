// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sequence provides the counter values shown by an odometer
// animation.
//
// Values are stepped by a prime increment so that the rendered digit
// columns do not advance with an obvious period.
package sequence

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange is returned when a value sequence cannot be constructed
// from the requested start, finish and frame count.
var ErrInvalidRange = errors.New("invalid range")

// MaxValue is the largest counter value that can be represented with
// integer precision.
const MaxValue = 1 << 53

// IsPrime returns whether n is prime.
func IsPrime(n int64) bool {
	if n <= 1 {
		return false
	}
	for i := int64(2); i <= n/i; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// NearestPrime returns the prime closest to n. If n is prime, n is
// returned. When two primes are equally distant from n, the smaller is
// returned. For n less than 2 the result is 2, the only prime reachable
// from below.
func NearestPrime(n int64) int64 {
	if n < 2 {
		return 2
	}
	if IsPrime(n) {
		return n
	}
	lower := n - 1
	upper := n + 1
	for {
		if IsPrime(lower) {
			return lower
		}
		if IsPrime(upper) {
			return upper
		}
		lower--
		upper++
	}
}

// Step returns the prime increment used to move from start to finish in
// approximately count steps.
func Step(start, finish float64, count int) int64 {
	return NearestPrime(int64(math.Floor((finish - start) / float64(count))))
}

// Values returns the counter values to render in order to animate from
// start to finish over approximately count frames. The first element is
// start and the last is finish. Intermediate values are start+i*step for
// the prime step returned by [Step], so the returned slice may be shorter
// or longer than count.
func Values(start, finish float64, count int) ([]float64, error) {
	err := checkRange(start, finish, count)
	if err != nil {
		return nil, err
	}
	step := float64(Step(start, finish, count))

	n := int(math.Ceil((finish - start) / step))
	values := make([]float64, 0, n+1)
	for i := 0; ; i++ {
		v := start + float64(i)*step
		if v >= finish {
			break
		}
		values = append(values, v)
	}
	if values[len(values)-1] != finish {
		values = append(values, finish)
	}
	return values, nil
}

func checkRange(start, finish float64, count int) error {
	switch {
	case count <= 0:
		return fmt.Errorf("%w: non-positive frame count: %d", ErrInvalidRange, count)
	case math.IsNaN(start) || math.IsInf(start, 0):
		return fmt.Errorf("%w: start not finite: %v", ErrInvalidRange, start)
	case math.IsNaN(finish) || math.IsInf(finish, 0):
		return fmt.Errorf("%w: finish not finite: %v", ErrInvalidRange, finish)
	case start < 0:
		return fmt.Errorf("%w: negative start: %v", ErrInvalidRange, start)
	case finish > MaxValue:
		return fmt.Errorf("%w: finish too large: %v", ErrInvalidRange, finish)
	case start >= finish:
		return fmt.Errorf("%w: start not before finish: %v >= %v", ErrInvalidRange, start, finish)
	}
	return nil
}
