package colorspace

import (
	"math"
	"strings"
)

// LightenMethod selects how Lighten moves luminance.
type LightenMethod int

const (
	// Relative moves luminance the given fraction of the remaining distance
	// to white, or of the distance to black for negative amounts.
	Relative LightenMethod = iota
	// Absolute adds amount times the full luminance range.
	Absolute
)

// LightenSpace selects where Lighten changes luminance.
type LightenSpace int

const (
	// LightenHCL changes L in HCL and caps chroma at MaxChroma.
	LightenHCL LightenSpace = iota
	// LightenHLS changes L in HLS.
	LightenHLS
	// LightenCombined takes luminance from the HCL result and chroma from
	// the HLS result.
	LightenCombined
)

// LightenOptions configures Lighten and Darken. The zero value lightens
// relatively in HCL.
type LightenOptions struct {
	Method LightenMethod
	Space  LightenSpace
}

// ParseLightenMethod resolves "relative" or "absolute", ignoring case.
func ParseLightenMethod(name string) (LightenMethod, bool) {
	switch strings.ToLower(name) {
	case "relative":
		return Relative, true
	case "absolute":
		return Absolute, true
	}
	return 0, false
}

// ParseLightenSpace resolves "HCL", "HLS" or "combined", ignoring case.
func ParseLightenSpace(name string) (LightenSpace, bool) {
	switch strings.ToLower(name) {
	case "hcl":
		return LightenHCL, true
	case "hls":
		return LightenHLS, true
	case "combined":
		return LightenCombined, true
	}
	return 0, false
}

// Lighten returns a Hex batch with every color lightened by amount, a
// fraction of the luminance range. Negative amounts darken. Alpha is kept;
// invalid colors stay invalid. fixup applies to the hex encoding of the
// input and of the result.
func (b *Batch) Lighten(amount float64, opts LightenOptions, fixup bool) (*Batch, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, invalid(b.space, "", "lighten amount must be finite, got %v", amount)
	}
	if opts.Method != Relative && opts.Method != Absolute {
		return nil, invalid(b.space, "", "unknown lighten method %d", opts.Method)
	}

	hx, err := b.Convert(Hex, fixup)
	if err != nil {
		return nil, err
	}

	var out *Batch
	switch opts.Space {
	case LightenHCL:
		out, err = lightenHCL(hx, amount, opts.Method)
	case LightenHLS:
		out, err = lightenHLS(hx, amount, opts.Method)
	case LightenCombined:
		out, err = lightenCombined(hx, amount, opts.Method)
	default:
		return nil, invalid(b.space, "", "unknown lighten space %d", opts.Space)
	}
	if err != nil {
		return nil, err
	}
	return out.Convert(Hex, fixup)
}

// Darken is Lighten with the amount negated.
func (b *Batch) Darken(amount float64, opts LightenOptions, fixup bool) (*Batch, error) {
	return b.Lighten(-amount, opts, fixup)
}

// shiftLightness applies amount to a lightness in [0, top].
func shiftLightness(x, amount, top float64, m LightenMethod) float64 {
	x = math.Max(0, math.Min(top, x))
	switch {
	case m == Absolute:
		x += amount * top
	case amount >= 0:
		x = top - (top-x)*(1-amount)
	default:
		x *= 1 + amount
	}
	return math.Max(0, math.Min(top, x))
}

func lightenHCL(hx *Batch, amount float64, m LightenMethod) (*Batch, error) {
	t, err := hx.Convert(PolarLUV, true)
	if err != nil {
		return nil, err
	}
	l := t.ch[2]
	for i := range l {
		l[i] = shiftLightness(l[i], amount, 100, m)
	}
	if err := capChroma(t); err != nil {
		return nil, err
	}
	return t, nil
}

func lightenHLS(hx *Batch, amount float64, m LightenMethod) (*Batch, error) {
	t, err := hx.Convert(HLS, true)
	if err != nil {
		return nil, err
	}
	l := t.ch[1]
	for i := range l {
		l[i] = shiftLightness(l[i], amount, 1, m)
	}
	return t, nil
}

func lightenCombined(hx *Batch, amount float64, m LightenMethod) (*Batch, error) {
	t, err := lightenHCL(hx, amount, m)
	if err != nil {
		return nil, err
	}
	viaHLS, err := lightenHLS(hx, amount, m)
	if err != nil {
		return nil, err
	}
	if err := viaHLS.To(PolarLUV, true); err != nil {
		return nil, err
	}
	t.ch[1] = viaHLS.ch[1]
	if err := capChroma(t); err != nil {
		return nil, err
	}
	return t, nil
}

// capChroma limits the chroma of an HCL batch to [0, MaxChroma].
func capChroma(t *Batch) error {
	limit, err := MaxChroma(t.ch[0], t.ch[2], true)
	if err != nil {
		return err
	}
	c := t.ch[1]
	for i := range c {
		c[i] = math.Min(limit[i], math.Max(0, c[i]))
	}
	return nil
}
