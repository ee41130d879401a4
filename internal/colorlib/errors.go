// Package colorlib implements the pairwise transforms between adjacent color
// spaces. Every function is pure: it takes equal-length float64 vectors and
// returns freshly allocated vectors of the same length.
//
// Invalid elements are represented as NaN and propagate through every
// transform without affecting their neighbours.
package colorlib

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch is returned when input vectors differ in length.
	ErrLengthMismatch = errors.New("input vectors differ in length")

	// ErrEmptyParameter is returned when a recyclable parameter has no elements.
	ErrEmptyParameter = errors.New("parameter vector is empty")

	// ErrInvalidWhitepoint is returned for non-positive or non-finite whitepoints.
	ErrInvalidWhitepoint = errors.New("invalid whitepoint")
)

// checkLengths verifies that all vectors have the length of the first one.
func checkLengths(fn string, vs ...[]float64) error {
	if len(vs) == 0 {
		return nil
	}
	n := len(vs[0])
	for i, v := range vs[1:] {
		if len(v) != n {
			return fmt.Errorf("%s: argument %d has %d elements, want %d: %w",
				fn, i+2, len(v), n, ErrLengthMismatch)
		}
	}
	return nil
}
