package colorlib

import (
	"fmt"
	"math"
)

// Recycle expands a scalar-or-vector parameter to length n.
// A single element is repeated; a vector of length n is copied.
// Any other length is an error.
func Recycle(p []float64, n int) ([]float64, error) {
	switch len(p) {
	case 0:
		return nil, ErrEmptyParameter
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = p[0]
		}
		return out, nil
	case n:
		return append([]float64(nil), p...), nil
	default:
		return nil, fmt.Errorf("parameter has %d elements, want 1 or %d: %w", len(p), n, ErrLengthMismatch)
	}
}

// WrapHue moves h into [0, 360) by repeated addition or subtraction of 360.
// NaN is returned unchanged and infinities become NaN.
func WrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return math.NaN()
	}
	for h >= 360 {
		h -= 360
	}
	for h < 0 {
		h += 360
	}
	// -1e-14 + 360 rounds to 360.
	if h >= 360 {
		h = 0
	}
	return h
}

// WrapHues applies WrapHue to every element of h in a new slice.
func WrapHues(h []float64) []float64 {
	out := make([]float64, len(h))
	for i, v := range h {
		out[i] = WrapHue(v)
	}
	return out
}

// Clone returns a copy of v, or nil for a nil slice.
func Clone(v []float64) []float64 {
	if v == nil {
		return nil
	}
	return append([]float64(nil), v...)
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }

func deg(rad float64) float64 { return rad * 180 / math.Pi }
