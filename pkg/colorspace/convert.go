package colorspace

import (
	"errors"

	"github.com/opd-ai/go-colorspace/internal/colorlib"
)

// errMissingEdge signals a path whose hop has no transform registered.
var errMissingEdge = errors.New("no transform between adjacent spaces")

// hopFunc replaces the channels of b, which is a private working copy.
type hopFunc func(b *Batch, fixup bool) error

type triple func(c0, c1, c2 []float64) (o0, o1, o2 []float64, err error)

// edges holds one transform per directed pair of adjacent spaces.
var edges = map[route]hopFunc{
	{PolarLUV, CIELUV}: pure(colorlib.PolarLUVToLUV),
	{CIELUV, PolarLUV}: pure(colorlib.LUVToPolarLUV),
	{PolarLAB, CIELAB}: pure(colorlib.PolarLABToLAB),
	{CIELAB, PolarLAB}: pure(colorlib.LABToPolarLAB),

	{CIELUV, CIEXYZ}: white(colorlib.LUVToXYZ),
	{CIEXYZ, CIELUV}: white(colorlib.XYZToLUV),
	{CIELAB, CIEXYZ}: white(colorlib.LABToXYZ),
	{CIEXYZ, CIELAB}: white(colorlib.XYZToLAB),
	{CIEXYZ, RGB}:    white(colorlib.XYZToRGB),
	{RGB, CIEXYZ}:    white(colorlib.RGBToXYZ),

	{RGB, SRGB}: gamma(colorlib.RGBToSRGB),
	{SRGB, RGB}: gamma(colorlib.SRGBToRGB),

	{SRGB, HSV}: pure(colorlib.SRGBToHSV),
	{HSV, SRGB}: pure(colorlib.HSVToSRGB),
	{SRGB, HLS}: pure(colorlib.SRGBToHLS),
	{HLS, SRGB}: pure(colorlib.HLSToSRGB),

	{SRGB, Hex}: toHex,
	{Hex, SRGB}: fromHex,
}

func pure(fn triple) hopFunc {
	return func(b *Batch, _ bool) error {
		return b.apply(fn)
	}
}

func white(fn func(c0, c1, c2 []float64, wp colorlib.Whitepoint) ([]float64, []float64, []float64, error)) hopFunc {
	return func(b *Batch, _ bool) error {
		return b.apply(func(c0, c1, c2 []float64) ([]float64, []float64, []float64, error) {
			return fn(c0, c1, c2, b.whitepoint)
		})
	}
}

func gamma(fn func(c0, c1, c2, g []float64) ([]float64, []float64, []float64, error)) hopFunc {
	return func(b *Batch, _ bool) error {
		return b.apply(func(c0, c1, c2 []float64) ([]float64, []float64, []float64, error) {
			return fn(c0, c1, c2, b.gamma)
		})
	}
}

func (b *Batch) apply(fn triple) error {
	o0, o1, o2, err := fn(b.ch[0], b.ch[1], b.ch[2])
	if err != nil {
		return err
	}
	b.ch = [3][]float64{o0, o1, o2}
	return nil
}

func toHex(b *Batch, fixup bool) error {
	hex, err := colorlib.SRGBToHex(b.ch[0], b.ch[1], b.ch[2], fixup)
	if err != nil {
		return err
	}
	b.hex = hex
	b.ch = [3][]float64{}
	return nil
}

func fromHex(b *Batch, _ bool) error {
	r, g, bl, _ := colorlib.HexToSRGB(b.hex)
	b.ch = [3][]float64{r, g, bl}
	b.hex = nil
	return nil
}

// Convert returns a copy of b converted to target. The receiver is never
// modified. fixup selects clamping (true) or invalidation (false) of
// out-of-gamut colors when the conversion ends in Hex.
func (b *Batch) Convert(target Space, fixup bool) (*Batch, error) {
	path, err := Path(b.space, target)
	if err != nil {
		return nil, err
	}
	out := b.Clone()
	for _, next := range path {
		hop, ok := edges[route{out.space, next}]
		if !ok {
			return nil, &ConversionError{From: b.space, To: target, Err: errMissingEdge}
		}
		if err := hop(out, fixup); err != nil {
			return nil, &ConversionError{From: b.space, To: target, Err: err}
		}
		out.space = next
	}
	return out, nil
}

// To converts b in place. On error b is left unchanged.
func (b *Batch) To(target Space, fixup bool) error {
	if target == b.space {
		return nil
	}
	out, err := b.Convert(target, fixup)
	if err != nil {
		return err
	}
	*b = *out
	return nil
}

// ToNamed is To with the target given by name, as accepted by ParseSpace.
func (b *Batch) ToNamed(name string, fixup bool) error {
	target, ok := ParseSpace(name)
	if !ok {
		return &ConversionError{From: b.space, Target: name, Err: ErrUnsupportedConversion}
	}
	return b.To(target, fixup)
}
