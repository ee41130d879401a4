package colorlib

import "math"

// DefaultGamma is the exponent of the sRGB transfer curve.
const DefaultGamma = 2.4

// Thresholds of the piecewise transfer curve.
const (
	encodeThreshold = 0.00304
	decodeThreshold = 0.03928
)

// GammaEncode maps linear intensities onto the sRGB transfer curve.
// gamma is a scalar or a vector with one exponent per element.
func GammaEncode(u, gamma []float64) ([]float64, error) {
	g, err := Recycle(gamma, len(u))
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(u))
	for i, v := range u {
		if v > encodeThreshold {
			out[i] = 1.055*math.Pow(v, 1/g[i]) - 0.055
		} else {
			out[i] = 12.92 * v
		}
	}
	return out, nil
}

// GammaDecode is the inverse of GammaEncode.
func GammaDecode(u, gamma []float64) ([]float64, error) {
	g, err := Recycle(gamma, len(u))
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(u))
	for i, v := range u {
		if v > decodeThreshold {
			out[i] = math.Pow((v+0.055)/1.055, g[i])
		} else {
			out[i] = v / 12.92
		}
	}
	return out, nil
}

// RGBToSRGB gamma-encodes linear RGB.
func RGBToSRGB(r, g, b, gamma []float64) (sr, sg, sb []float64, err error) {
	if err = checkLengths("RGBToSRGB", r, g, b); err != nil {
		return
	}
	if sr, err = GammaEncode(r, gamma); err != nil {
		return
	}
	if sg, err = GammaEncode(g, gamma); err != nil {
		return
	}
	sb, err = GammaEncode(b, gamma)
	return
}

// SRGBToRGB gamma-decodes sRGB into linear RGB.
func SRGBToRGB(r, g, b, gamma []float64) (lr, lg, lb []float64, err error) {
	if err = checkLengths("SRGBToRGB", r, g, b); err != nil {
		return
	}
	if lr, err = GammaDecode(r, gamma); err != nil {
		return
	}
	if lg, err = GammaDecode(g, gamma); err != nil {
		return
	}
	lb, err = GammaDecode(b, gamma)
	return
}
