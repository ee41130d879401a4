package colorlib

import "math"

// xyzToUV returns the u'v' chromaticity of a single XYZ triple.
// A zero sum maps to x = y = 0 instead of dividing by zero.
func xyzToUV(x, y, z float64) (u, v float64) {
	var cx, cy float64
	if t := x + y + z; t != 0 {
		cx, cy = x/t, y/t
	}
	d := 6*cy - cx + 1.5
	return 2 * cx / d, 4.5 * cy / d
}

// luvEpsilon keeps the chromaticity reconstruction finite near L = 0.
const luvEpsilon = 10 * 2.220446049250313e-16

// XYZToLUV converts CIEXYZ to CIELUV relative to wp.
func XYZToLUV(x, y, z []float64, wp Whitepoint) (l, u, v []float64, err error) {
	if err = checkLengths("XYZToLUV", x, y, z); err != nil {
		return
	}
	un, vn := wp.uv()
	n := len(x)
	l, u, v = make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		L := lightness(y[i] / wp.Y)
		cu, cv := xyzToUV(x[i], y[i], z[i])
		l[i] = L
		u[i] = 13 * L * (cu - un)
		v[i] = 13 * L * (cv - vn)
	}
	return
}

// LUVToXYZ converts CIELUV to CIEXYZ relative to wp.
// The origin (L <= 0 with zero chroma) maps to black.
func LUVToXYZ(l, u, v []float64, wp Whitepoint) (x, y, z []float64, err error) {
	if err = checkLengths("LUVToXYZ", l, u, v); err != nil {
		return
	}
	un, vn := wp.uv()
	n := len(l)
	x, y, z = make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		L, U, V := l[i], u[i], v[i]
		if L <= 0 && U == 0 && V == 0 {
			continue
		}
		var yy float64
		if L > 8 {
			yy = wp.Y * math.Pow((L+16)/116, 3)
		} else {
			yy = wp.Y * L / Kappa
		}
		L = math.Max(luvEpsilon, L)
		cu := U/(13*L) + un
		cv := V/(13*L) + vn
		xx := 9 * yy * cu / (4 * cv)
		x[i] = xx
		y[i] = yy
		z[i] = -xx/3 - 5*yy + 3*yy/cv
	}
	return
}
