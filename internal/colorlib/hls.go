package colorlib

import "math"

// SRGBToHLS converts sRGB to HLS with hue in degrees.
func SRGBToHLS(r, g, b []float64) (h, l, s []float64, err error) {
	if err = checkLengths("SRGBToHLS", r, g, b); err != nil {
		return
	}
	n := len(r)
	h, l, s = make([]float64, n), make([]float64, n), make([]float64, n)
	for k := 0; k < n; k++ {
		h[k], l[k], s[k] = srgbToHLS(r[k], g[k], b[k])
	}
	return
}

func srgbToHLS(r, g, b float64) (h, l, s float64) {
	lo := math.Min(r, math.Min(g, b))
	hi := math.Max(r, math.Max(g, b))
	l = (hi + lo) / 2
	if hi == lo {
		return 0, l, 0
	}
	d := hi - lo
	if l < 0.5 {
		s = d / (hi + lo)
	} else {
		s = d / (2 - hi - lo)
	}
	switch hi {
	case r:
		h = (g - b) / d
	case g:
		h = 2 + (b-r)/d
	default:
		h = 4 + (r-g)/d
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	if h > 360 {
		h -= 360
	}
	return h, l, s
}

// HLSToSRGB converts HLS to sRGB. Zero saturation yields the grey (l, l, l).
func HLSToSRGB(h, l, s []float64) (r, g, b []float64, err error) {
	if err = checkLengths("HLSToSRGB", h, l, s); err != nil {
		return
	}
	n := len(h)
	r, g, b = make([]float64, n), make([]float64, n), make([]float64, n)
	for k := 0; k < n; k++ {
		r[k], g[k], b[k] = hlsToSRGB(h[k], l[k], s[k])
	}
	return
}

func hlsToSRGB(h, l, s float64) (r, g, b float64) {
	var p2 float64
	if l <= 0.5 {
		p2 = l * (1 + s)
	} else {
		p2 = l + s - l*s
	}
	p1 := 2*l - p2
	if s == 0 {
		return l, l, l
	}
	return qtrans(p1, p2, h+120), qtrans(p1, p2, h), qtrans(p1, p2, h-120)
}

// qtrans evaluates one channel of the HLS hexcone.
func qtrans(q1, q2, hue float64) float64 {
	if hue > 360 {
		hue -= 360
	}
	if hue < 0 {
		hue += 360
	}
	switch {
	case hue < 60:
		return q1 + (q2-q1)*hue/60
	case hue < 180:
		return q2
	case hue < 240:
		return q1 + (q2-q1)*(240-hue)/60
	default:
		return q1
	}
}
