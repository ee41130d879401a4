package colorlib

import (
	"fmt"
	"math"
)

// Whitepoint holds the reference tristimulus values used by the CIE transforms.
type Whitepoint struct {
	X, Y, Z float64
}

// D65 tristimulus values.
const (
	D65X = 95.047
	D65Y = 100.000
	D65Z = 108.883
)

// D65 returns the CIE standard illuminant D65 whitepoint.
func D65() Whitepoint {
	return Whitepoint{X: D65X, Y: D65Y, Z: D65Z}
}

// Validate reports whether all components are positive and finite.
func (wp Whitepoint) Validate() error {
	for _, c := range []struct {
		name string
		v    float64
	}{{"X", wp.X}, {"Y", wp.Y}, {"Z", wp.Z}} {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) || c.v <= 0 {
			return fmt.Errorf("whitepoint %s=%v: %w", c.name, c.v, ErrInvalidWhitepoint)
		}
	}
	return nil
}

// uv returns the whitepoint chromaticity in the u'v' plane.
func (wp Whitepoint) uv() (u, v float64) {
	return xyzToUV(wp.X, wp.Y, wp.Z)
}
