package colorlib

// rgbToXYZ is the linear RGB to CIEXYZ matrix, scaled by YN on use.
var rgbToXYZ = [3][3]float64{
	{0.412453, 0.357580, 0.180423},
	{0.212671, 0.715160, 0.072169},
	{0.019334, 0.119193, 0.950227},
}

// xyzToRGB is the published inverse of rgbToXYZ.
var xyzToRGB = [3][3]float64{
	{3.240479, -1.537150, -0.498535},
	{-0.969256, 1.875992, 0.041556},
	{0.055648, -0.204043, 1.057311},
}

// RGBToXYZ converts linear RGB to CIEXYZ.
// Only the Y component of the whitepoint scales the result.
func RGBToXYZ(r, g, b []float64, wp Whitepoint) (x, y, z []float64, err error) {
	if err = checkLengths("RGBToXYZ", r, g, b); err != nil {
		return
	}
	n := len(r)
	x, y, z = make([]float64, n), make([]float64, n), make([]float64, n)
	m := &rgbToXYZ
	for i := 0; i < n; i++ {
		x[i] = wp.Y * (m[0][0]*r[i] + m[0][1]*g[i] + m[0][2]*b[i])
		y[i] = wp.Y * (m[1][0]*r[i] + m[1][1]*g[i] + m[1][2]*b[i])
		z[i] = wp.Y * (m[2][0]*r[i] + m[2][1]*g[i] + m[2][2]*b[i])
	}
	return
}

// XYZToRGB converts CIEXYZ to linear RGB. Values outside [0,1] are kept.
func XYZToRGB(x, y, z []float64, wp Whitepoint) (r, g, b []float64, err error) {
	if err = checkLengths("XYZToRGB", x, y, z); err != nil {
		return
	}
	n := len(x)
	r, g, b = make([]float64, n), make([]float64, n), make([]float64, n)
	m := &xyzToRGB
	for i := 0; i < n; i++ {
		r[i] = (m[0][0]*x[i] + m[0][1]*y[i] + m[0][2]*z[i]) / wp.Y
		g[i] = (m[1][0]*x[i] + m[1][1]*y[i] + m[1][2]*z[i]) / wp.Y
		b[i] = (m[2][0]*x[i] + m[2][1]*y[i] + m[2][2]*z[i]) / wp.Y
	}
	return
}
