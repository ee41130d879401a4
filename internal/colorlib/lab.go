package colorlib

import "math"

// CIE constants in their exact rational form.
const (
	Kappa   = 24389.0 / 27.0
	Epsilon = 216.0 / 24389.0
)

// labF is the forward compression used for the a* and b* axes.
func labF(t float64) float64 {
	if t > Epsilon {
		return math.Cbrt(t)
	}
	return (Kappa/116)*t + 16.0/116
}

// lightness maps relative luminance Y/YN onto L*. It is shared by LAB and LUV.
func lightness(yr float64) float64 {
	if yr > Epsilon {
		return 116*math.Cbrt(yr) - 16
	}
	return Kappa * yr
}

// XYZToLAB converts CIEXYZ to CIELAB relative to wp.
func XYZToLAB(x, y, z []float64, wp Whitepoint) (l, a, b []float64, err error) {
	if err = checkLengths("XYZToLAB", x, y, z); err != nil {
		return
	}
	n := len(x)
	l, a, b = make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		xr, yr, zr := x[i]/wp.X, y[i]/wp.Y, z[i]/wp.Z
		fx, fy, fz := labF(xr), labF(yr), labF(zr)
		l[i] = lightness(yr)
		a[i] = 500 * (fx - fy)
		b[i] = 200 * (fy - fz)
	}
	return
}

// LABToXYZ converts CIELAB to CIEXYZ relative to wp.
func LABToXYZ(l, a, b []float64, wp Whitepoint) (x, y, z []float64, err error) {
	if err = checkLengths("LABToXYZ", l, a, b); err != nil {
		return
	}
	n := len(l)
	x, y, z = make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		L := l[i]
		var yy float64
		switch {
		case math.IsNaN(L):
			yy = math.NaN()
		case L <= 0:
			yy = 0
		case L <= 8:
			yy = L * wp.Y / Kappa
		case L <= 100:
			yy = wp.Y * math.Pow((L+16)/116, 3)
		default:
			yy = wp.Y
		}

		var fy float64
		if yy <= Epsilon*wp.Y {
			fy = (Kappa/116)*yy/wp.Y + 16.0/116
		} else {
			fy = math.Cbrt(yy / wp.Y)
		}

		x[i] = labFInv(fy+a[i]/500) * wp.X
		y[i] = yy
		z[i] = labFInv(fy-b[i]/200) * wp.Z
	}
	return
}

// labFInv inverts labF for the a* and b* axes.
func labFInv(f float64) float64 {
	f3 := f * f * f
	if f3 <= Epsilon {
		return (f - 16.0/116) / (Kappa / 116)
	}
	return f3
}
