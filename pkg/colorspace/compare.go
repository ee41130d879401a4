package colorspace

import (
	"math"
	"strings"

	"github.com/opd-ai/go-colorspace/internal/colorlib"
)

// Default comparison tolerances.
const (
	// DeviceTolerance covers 1/255 hex quantization in RGB, sRGB, HSV and HLS.
	DeviceTolerance = 0.005
	// CIETolerance applies to CIEXYZ, CIELUV, CIELAB and their polar forms.
	CIETolerance = 1.0
	// ExactTolerance is used when CompareOptions.Exact is set.
	ExactTolerance = 1e-6
)

// CompareOptions controls numeric comparison.
type CompareOptions struct {
	// Exact forces ExactTolerance.
	Exact bool
	// Tolerance overrides the per-space default when positive. Negative or
	// NaN values are rejected.
	Tolerance float64
}

// CompareEach reports, per color, whether a and b match. Both batches must
// be in the same space and have the same length.
//
// Hex batches compare their encoded strings case-insensitively; an invalid
// entry never matches, not even another invalid one. Numeric
// batches compare the Euclidean distance over all channels, plus alpha when
// either side has it (missing alpha counts as 1), against the tolerance.
func CompareEach(a, b *Batch, opts CompareOptions) ([]bool, error) {
	if a.space != b.space {
		return nil, invalid(a.space, "", "cannot compare with %s batch", b.space)
	}
	if a.Len() != b.Len() {
		return nil, invalid(a.space, "", "cannot compare %d colors with %d", a.Len(), b.Len())
	}
	if opts.Tolerance < 0 || math.IsNaN(opts.Tolerance) {
		return nil, invalid(a.space, "", "tolerance %v must not be negative", opts.Tolerance)
	}

	out := make([]bool, a.Len())
	if a.space == Hex {
		ha, hb := a.withAlpha(), b.withAlpha()
		for i := range out {
			out[i] = ha[i] != colorlib.InvalidHex && strings.EqualFold(ha[i], hb[i])
		}
		return out, nil
	}

	tol := opts.tolerance(a.space)
	withAlpha := a.alpha != nil || b.alpha != nil
	for i := range out {
		var sum float64
		for c := range a.ch {
			d := a.ch[c][i] - b.ch[c][i]
			sum += d * d
		}
		if withAlpha {
			d := alphaAt(a.alpha, i) - alphaAt(b.alpha, i)
			sum += d * d
		}
		out[i] = math.Sqrt(sum) <= tol
	}
	return out, nil
}

// Compare reports whether every color of a matches b.
func Compare(a, b *Batch, opts CompareOptions) (bool, error) {
	each, err := CompareEach(a, b, opts)
	if err != nil {
		return false, err
	}
	for _, ok := range each {
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (o CompareOptions) tolerance(s Space) float64 {
	switch {
	case o.Exact:
		return ExactTolerance
	case o.Tolerance > 0:
		return o.Tolerance
	case s.deviceDependent():
		return DeviceTolerance
	default:
		return CIETolerance
	}
}

func alphaAt(alpha []float64, i int) float64 {
	if alpha == nil {
		return 1
	}
	return alpha[i]
}
