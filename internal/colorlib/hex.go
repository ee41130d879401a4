package colorlib

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// InvalidHex marks an element that has no valid hex representation.
const InvalidHex = ""

// The optional suffix is a two digit decimal opacity in percent.
var hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9]{2})?$`)

// ValidHex reports whether s is a #RRGGBB or #RRGGBBAA color, where AA is
// the opacity in percent, 00 to 99.
func ValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

// SRGBToHex encodes sRGB triples as #RRGGBB strings.
// With fixup, finite channels are clamped to [0,1]; without it, any channel
// outside [0,1] invalidates the element. Non-finite channels are always
// invalid and encode as InvalidHex.
func SRGBToHex(r, g, b []float64, fixup bool) ([]string, error) {
	if err := checkLengths("SRGBToHex", r, g, b); err != nil {
		return nil, err
	}
	out := make([]string, len(r))
	for i := range r {
		cr, okr := gamutFix(r[i], fixup)
		cg, okg := gamutFix(g[i], fixup)
		cb, okb := gamutFix(b[i], fixup)
		if !okr || !okg || !okb {
			out[i] = InvalidHex
			continue
		}
		out[i] = fmt.Sprintf("#%02X%02X%02X", toByte(cr), toByte(cg), toByte(cb))
	}
	return out, nil
}

// gamutFix applies the clamp-or-invalidate policy to one channel.
func gamutFix(x float64, fixup bool) (float64, bool) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	if fixup {
		return math.Max(0, math.Min(1, x)), true
	}
	return x, x >= 0 && x <= 1
}

func toByte(x float64) int {
	return int(x*255 + 0.5)
}

// HexToSRGB decodes hex strings into sRGB. Invalid strings yield NaN
// channels. The alpha slice holds the decimal AA suffix divided by 100,
// or NaN where the element carries no alpha.
func HexToSRGB(hex []string) (r, g, b, alpha []float64) {
	n := len(hex)
	r, g, b, alpha = make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, s := range hex {
		r[i], g[i], b[i], alpha[i] = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		if !ValidHex(s) {
			continue
		}
		r[i] = byteAt(s, 1) / 255
		g[i] = byteAt(s, 3) / 255
		b[i] = byteAt(s, 5) / 255
		if len(s) == 9 {
			pct, _ := strconv.Atoi(s[7:9])
			alpha[i] = float64(pct) / 100
		}
	}
	return
}

// byteAt parses the two hex digits at s[i:i+2]. s must be validated.
func byteAt(s string, i int) float64 {
	v, _ := strconv.ParseUint(s[i:i+2], 16, 8)
	return float64(v)
}

// AlphaSuffix returns the two digit opacity suffix for alpha, truncated to
// whole percent, or "" when alpha is opaque (>= 1) or not finite.
func AlphaSuffix(alpha float64) string {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha >= 1 {
		return ""
	}
	// The epsilon keeps 0.29*100 = 28.999... at 29.
	pct := int(math.Floor(math.Max(0, alpha)*100 + 1e-9))
	return fmt.Sprintf("%02d", min(pct, 99))
}
