package colorlib

import "math"

// toPolar returns chroma and wrapped hue in degrees for Cartesian (a, b) pairs.
func toPolar(a, b []float64) (c, h []float64) {
	c, h = make([]float64, len(a)), make([]float64, len(a))
	for i := range a {
		c[i] = math.Sqrt(a[i]*a[i] + b[i]*b[i])
		h[i] = WrapHue(deg(math.Atan2(b[i], a[i])))
	}
	return
}

// fromPolar is the inverse of toPolar.
func fromPolar(c, h []float64) (a, b []float64) {
	a, b = make([]float64, len(c)), make([]float64, len(c))
	for i := range c {
		s, co := math.Sincos(rad(h[i]))
		a[i] = c[i] * co
		b[i] = c[i] * s
	}
	return
}

// LABToPolarLAB converts CIELAB to polar form, returned as (L, C, H).
func LABToPolarLAB(l, a, b []float64) (pl, c, h []float64, err error) {
	if err = checkLengths("LABToPolarLAB", l, a, b); err != nil {
		return
	}
	c, h = toPolar(a, b)
	return Clone(l), c, h, nil
}

// PolarLABToLAB converts polar (L, C, H) back to CIELAB.
func PolarLABToLAB(l, c, h []float64) (ll, a, b []float64, err error) {
	if err = checkLengths("PolarLABToLAB", l, c, h); err != nil {
		return
	}
	a, b = fromPolar(c, h)
	return Clone(l), a, b, nil
}

// LUVToPolarLUV converts CIELUV to HCL, returned as (H, C, L).
func LUVToPolarLUV(l, u, v []float64) (h, c, pl []float64, err error) {
	if err = checkLengths("LUVToPolarLUV", l, u, v); err != nil {
		return
	}
	c, h = toPolar(u, v)
	return h, c, Clone(l), nil
}

// PolarLUVToLUV converts HCL (H, C, L) back to CIELUV, returned as (L, U, V).
func PolarLUVToLUV(h, c, l []float64) (ll, u, v []float64, err error) {
	if err = checkLengths("PolarLUVToLUV", h, c, l); err != nil {
		return
	}
	u, v = fromPolar(c, h)
	return Clone(l), u, v, nil
}
