package colorlib

import "math"

// SRGBToHSV converts sRGB to HSV with hue in degrees.
// Achromatic colors get hue and saturation 0.
func SRGBToHSV(r, g, b []float64) (h, s, v []float64, err error) {
	if err = checkLengths("SRGBToHSV", r, g, b); err != nil {
		return
	}
	n := len(r)
	h, s, v = make([]float64, n), make([]float64, n), make([]float64, n)
	for k := 0; k < n; k++ {
		h[k], s[k], v[k] = srgbToHSV(r[k], g[k], b[k])
	}
	return
}

func srgbToHSV(r, g, b float64) (h, s, v float64) {
	lo := math.Min(r, math.Min(g, b))
	hi := math.Max(r, math.Max(g, b))
	if hi == lo {
		return 0, 0, hi
	}
	var f, i float64
	switch {
	case r == lo:
		f, i = g-b, 3
	case g == lo:
		f, i = b-r, 5
	default:
		f, i = r-g, 1
	}
	return WrapHue(60 * (i - f/(hi-lo))), (hi - lo) / hi, hi
}

// HSVToSRGB converts HSV to sRGB. A NaN hue yields the grey (v, v, v).
func HSVToSRGB(h, s, v []float64) (r, g, b []float64, err error) {
	if err = checkLengths("HSVToSRGB", h, s, v); err != nil {
		return
	}
	n := len(h)
	r, g, b = make([]float64, n), make([]float64, n), make([]float64, n)
	for k := 0; k < n; k++ {
		r[k], g[k], b[k] = hsvToSRGB(h[k], s[k], v[k])
	}
	return
}

func hsvToSRGB(h, s, v float64) (r, g, b float64) {
	if math.IsNaN(h) {
		return v, v, v
	}
	h = WrapHue(h) / 60
	i := math.Floor(h)
	f := h - i
	if int(i)%2 == 0 {
		f = 1 - f
	}
	m := v * (1 - s)
	n := v * (1 - s*f)
	switch int(i) {
	case 0, 6:
		return v, n, m
	case 1:
		return n, v, m
	case 2:
		return m, v, n
	case 3:
		return m, n, v
	case 4:
		return n, m, v
	case 5:
		return v, m, n
	}
	return math.NaN(), math.NaN(), math.NaN()
}
