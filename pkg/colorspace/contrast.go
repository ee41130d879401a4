package colorspace

import (
	"github.com/opd-ai/go-colorspace/internal/colorlib"
)

// Luminance weights of linear R, G and B (WCAG 2.x).
var luminanceWeights = [3]float64{0.2126, 0.7152, 0.0722}

// RelativeLuminance returns the WCAG relative luminance of each color,
// from 0 for black to 1 for white. Colors are quantized to hex first, with
// fixup; invalid colors give NaN.
func (b *Batch) RelativeLuminance() ([]float64, error) {
	hx, err := b.Convert(Hex, true)
	if err != nil {
		return nil, err
	}
	if err := hx.To(SRGB, true); err != nil {
		return nil, err
	}
	gamma := []float64{DefaultGamma}
	out := make([]float64, hx.Len())
	for c, w := range luminanceWeights {
		lin, err := colorlib.GammaDecode(hx.ch[c], gamma)
		if err != nil {
			return nil, err
		}
		for i, v := range lin {
			out[i] += w * v
		}
	}
	return out, nil
}

// ContrastRatio returns the WCAG contrast ratio between each color and its
// background, from 1 to 21. A nil bg means white. When the batches differ
// in length the shorter one is repeated cyclically.
func ContrastRatio(colors, bg *Batch) ([]float64, error) {
	if bg == nil {
		var err error
		if bg, err = NewHex([]string{"#FFFFFF"}); err != nil {
			return nil, err
		}
	}
	fg, err := colors.RelativeLuminance()
	if err != nil {
		return nil, err
	}
	back, err := bg.RelativeLuminance()
	if err != nil {
		return nil, err
	}

	out := make([]float64, max(len(fg), len(back)))
	for i := range out {
		r := (fg[i%len(fg)] + 0.05) / (back[i%len(back)] + 0.05)
		if r < 1 {
			r = 1 / r
		}
		out[i] = r
	}
	return out, nil
}
