package colorspace

import (
	"math"
	"sync"

	"github.com/opd-ai/go-colorspace/internal/colorlib"
)

const (
	// chromaSearchLimit bounds the bisection; no sRGB color exceeds it.
	chromaSearchLimit = 250
	chromaSearchSteps = 40
)

// gridChroma memoizes the gamut limit at whole-degree, whole-percent
// grid points, keyed by [2]int{hue, luminance}.
var gridChroma sync.Map

// MaxChroma returns, for each hue/luminance pair, the largest HCL chroma
// that still encodes as a hex color. The limit is known at whole-degree,
// whole-percent grid points (truncated to two decimals) and bilinearly
// interpolated in between. h and l are recycled against each other; hues
// wrap into [0, 360) and luminance is clamped to [0, 100]. With floor the
// results are rounded down to integers. NaN inputs give NaN.
func MaxChroma(h, l []float64, floor bool) ([]float64, error) {
	if len(h) == 0 || len(l) == 0 {
		return nil, invalid(PolarLUV, "", "no colors given")
	}
	n := max(len(h), len(l))
	hh, err := colorlib.Recycle(h, n)
	if err != nil {
		return nil, invalid(PolarLUV, "H", "%v", err)
	}
	ll, err := colorlib.Recycle(l, n)
	if err != nil {
		return nil, invalid(PolarLUV, "L", "%v", err)
	}

	type cell struct {
		h0, l0 int
		th, tl float64
	}
	cells := make([]cell, n)
	var missing [][2]int
	seen := make(map[[2]int]bool)
	need := func(k [2]int) {
		if seen[k] {
			return
		}
		seen[k] = true
		if _, ok := gridChroma.Load(k); !ok {
			missing = append(missing, k)
		}
	}
	for i := range cells {
		H := colorlib.WrapHue(hh[i])
		L := math.Max(0, math.Min(100, ll[i]))
		if math.IsNaN(H) || math.IsNaN(L) {
			cells[i].h0 = -1
			continue
		}
		h0 := int(math.Floor(H + 1e-8))
		l0 := min(int(math.Floor(L+1e-8)), 99)
		cells[i] = cell{h0: h0, l0: l0, th: H - float64(h0), tl: L - float64(l0)}
		for _, k := range [][2]int{{h0, l0}, {h0, l0 + 1}, {h0 + 1, l0}, {h0 + 1, l0 + 1}} {
			need(k)
		}
	}
	if len(missing) > 0 {
		limits, err := gamutLimits(missing)
		if err != nil {
			return nil, err
		}
		for i, k := range missing {
			gridChroma.Store(k, limits[i])
		}
	}

	at := func(h, l int) float64 {
		v, _ := gridChroma.Load([2]int{h, l})
		return v.(float64)
	}
	out := make([]float64, n)
	for i, c := range cells {
		if c.h0 < 0 {
			out[i] = math.NaN()
			continue
		}
		v := (1-c.th)*(1-c.tl)*at(c.h0, c.l0) +
			(1-c.th)*c.tl*at(c.h0, c.l0+1) +
			c.th*(1-c.tl)*at(c.h0+1, c.l0) +
			c.th*c.tl*at(c.h0+1, c.l0+1)
		if floor {
			v = math.Floor(v)
		}
		out[i] = v
	}
	return out, nil
}

// gamutLimits bisects the chroma limit of all grid points at once.
func gamutLimits(pts [][2]int) ([]float64, error) {
	n := len(pts)
	h, l := make([]float64, n), make([]float64, n)
	lo, hi := make([]float64, n), make([]float64, n)
	for i, p := range pts {
		h[i], l[i] = float64(p[0]), float64(p[1])
		hi[i] = chromaSearchLimit
	}
	c := make([]float64, n)
	for step := 0; step < chromaSearchSteps; step++ {
		for i := range c {
			c[i] = (lo[i] + hi[i]) / 2
		}
		ok, err := hexEncodable(h, c, l)
		if err != nil {
			return nil, err
		}
		for i := range c {
			if ok[i] {
				lo[i] = c[i]
			} else {
				hi[i] = c[i]
			}
		}
	}
	for i := range lo {
		if l[i] <= 0 {
			lo[i] = 0
			continue
		}
		lo[i] = math.Floor(lo[i]*100) / 100
	}
	return lo, nil
}

// hexEncodable reports which HCL colors land on a hex byte for every
// channel without clamping: 255*v + 0.5 must truncate into 0..255.
func hexEncodable(h, c, l []float64) ([]bool, error) {
	wp := colorlib.D65()
	L, u, v, err := colorlib.PolarLUVToLUV(h, c, l)
	if err != nil {
		return nil, err
	}
	x, y, z, err := colorlib.LUVToXYZ(L, u, v, wp)
	if err != nil {
		return nil, err
	}
	r, g, b, err := colorlib.XYZToRGB(x, y, z, wp)
	if err != nil {
		return nil, err
	}
	sr, sg, sb, err := colorlib.RGBToSRGB(r, g, b, []float64{DefaultGamma})
	if err != nil {
		return nil, err
	}
	ok := make([]bool, len(h))
	for i := range ok {
		ok[i] = byteRange(sr[i]) && byteRange(sg[i]) && byteRange(sb[i])
	}
	return ok, nil
}

func byteRange(v float64) bool {
	x := 255*v + 0.5
	return x > -1 && x < 256
}
