package colorspace

import (
	"math"

	"github.com/opd-ai/go-colorspace/internal/colorlib"
)

// Batch is a sequence of N colors in a single space.
//
// A Batch is not safe for concurrent mutation. Conversions with To replace
// the channels in place; Convert returns a new Batch instead.
type Batch struct {
	space Space
	// ch holds the three numeric channels in Space.Channels order.
	// It is unused for Hex.
	ch [3][]float64
	// hex holds #RRGGBB strings (or colorlib.InvalidHex) for Hex.
	hex        []string
	alpha      []float64
	whitepoint Whitepoint
	gamma      []float64
}

// Option configures a Batch at construction.
type Option func(*Batch)

// WithAlpha attaches an opacity vector in [0,1].
func WithAlpha(alpha []float64) Option {
	return func(b *Batch) {
		b.alpha = colorlib.Clone(alpha)
	}
}

// WithWhitepoint overrides the default D65 whitepoint.
func WithWhitepoint(wp Whitepoint) Option {
	return func(b *Batch) {
		b.whitepoint = wp
	}
}

// WithGamma sets the sRGB transfer exponent, either a single value or one
// per color.
func WithGamma(gamma ...float64) Option {
	return func(b *Batch) {
		b.gamma = colorlib.Clone(gamma)
	}
}

// NewCIEXYZ creates a batch of CIEXYZ colors.
func NewCIEXYZ(x, y, z []float64, opts ...Option) (*Batch, error) {
	return newNumeric(CIEXYZ, x, y, z, opts)
}

// NewCIELUV creates a batch of CIELUV colors.
func NewCIELUV(l, u, v []float64, opts ...Option) (*Batch, error) {
	return newNumeric(CIELUV, l, u, v, opts)
}

// NewCIELAB creates a batch of CIELAB colors.
func NewCIELAB(l, a, b []float64, opts ...Option) (*Batch, error) {
	return newNumeric(CIELAB, l, a, b, opts)
}

// NewPolarLUV creates a batch of HCL colors from hue, chroma and luminance.
func NewPolarLUV(h, c, l []float64, opts ...Option) (*Batch, error) {
	return newNumeric(PolarLUV, h, c, l, opts)
}

// NewHCL is an alias for NewPolarLUV.
func NewHCL(h, c, l []float64, opts ...Option) (*Batch, error) {
	return NewPolarLUV(h, c, l, opts...)
}

// NewPolarLAB creates a batch of polar CIELAB colors from lightness,
// chroma and hue.
func NewPolarLAB(l, c, h []float64, opts ...Option) (*Batch, error) {
	return newNumeric(PolarLAB, l, c, h, opts)
}

// NewRGB creates a batch of linear RGB colors. Channels must be in [0,1].
func NewRGB(r, g, b []float64, opts ...Option) (*Batch, error) {
	return newNumeric(RGB, r, g, b, opts)
}

// NewSRGB creates a batch of gamma-encoded sRGB colors. Channels must be in [0,1].
func NewSRGB(r, g, b []float64, opts ...Option) (*Batch, error) {
	return newNumeric(SRGB, r, g, b, opts)
}

// NewHSV creates a batch of HSV colors. S and V must be in [0,1].
func NewHSV(h, s, v []float64, opts ...Option) (*Batch, error) {
	return newNumeric(HSV, h, s, v, opts)
}

// NewHLS creates a batch of HLS colors. L and S must be in [0,1].
func NewHLS(h, l, s []float64, opts ...Option) (*Batch, error) {
	return newNumeric(HLS, h, l, s, opts)
}

// NewHex creates a batch from #RRGGBB or #RRGGBBAA strings. Strings that do
// not match either form are kept as invalid entries; an error is returned
// only when the input is empty or contains no valid color at all.
//
// AA is a two digit decimal opacity in percent, so "#FF000075" is red at
// alpha 0.75 and "#FF0000AA" is invalid.
//
// When any string carries an AA suffix the batch gets an alpha vector,
// with 1 for entries that have none. An explicit WithAlpha option wins over
// the embedded values.
func NewHex(hex []string, opts ...Option) (*Batch, error) {
	n := len(hex)
	if n == 0 {
		return nil, invalid(Hex, "hex", "no colors given")
	}
	b := &Batch{space: Hex, whitepoint: D65(), gamma: []float64{DefaultGamma}}

	codes, alpha, valid := splitHex(hex)
	if valid == 0 {
		return nil, invalid(Hex, "hex", "none of the %d colors is a valid hex color", n)
	}
	b.hex = codes
	b.alpha = alpha

	for _, opt := range opts {
		opt(b)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// splitHex separates #RRGGBB codes from optional AA suffixes. alpha is nil
// when no element carries one.
func splitHex(hex []string) (codes []string, alpha []float64, valid int) {
	codes = make([]string, len(hex))
	_, _, _, a := colorlib.HexToSRGB(hex)
	for i, s := range hex {
		if !colorlib.ValidHex(s) {
			codes[i] = colorlib.InvalidHex
			continue
		}
		valid++
		codes[i] = s[:7]
		if !math.IsNaN(a[i]) {
			if alpha == nil {
				alpha = make([]float64, len(hex))
				for j := range alpha {
					alpha[j] = 1
				}
			}
			alpha[i] = a[i]
		}
	}
	return codes, alpha, valid
}

// New creates a batch in any numeric space, taking the channels in the
// order given by s.Channels(). Use NewHex for hex strings.
func New(s Space, c0, c1, c2 []float64, opts ...Option) (*Batch, error) {
	if !s.Valid() || s == Hex {
		return nil, &ConversionError{From: s, To: s, Err: ErrUnsupportedConversion}
	}
	return newNumeric(s, c0, c1, c2, opts)
}

func newNumeric(s Space, c0, c1, c2 []float64, opts []Option) (*Batch, error) {
	b := &Batch{
		space:      s,
		ch:         [3][]float64{colorlib.Clone(c0), colorlib.Clone(c1), colorlib.Clone(c2)},
		whitepoint: D65(),
		gamma:      []float64{DefaultGamma},
	}
	for _, opt := range opts {
		opt(b)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// validate checks shape, ranges, whitepoint and gamma.
func (b *Batch) validate() error {
	n := b.Len()
	if n == 0 {
		return invalid(b.space, "", "no colors given")
	}
	if b.space != Hex {
		names := spaceChannels[b.space]
		for i, c := range b.ch {
			if len(c) != n {
				return invalid(b.space, names[i], "has %d values, want %d", len(c), n)
			}
			if err := b.checkRange(i, c); err != nil {
				return err
			}
		}
	}
	if b.alpha != nil {
		if len(b.alpha) != n {
			return invalid(b.space, "alpha", "has %d values, want %d", len(b.alpha), n)
		}
		if err := checkUnit(b.space, "alpha", b.alpha); err != nil {
			return err
		}
	}
	if err := b.whitepoint.Validate(); err != nil {
		return invalid(b.space, "", "%v", err)
	}
	return checkGamma(b.space, b.gamma, n)
}

// checkRange enforces [0,1] on the bounded channels of device spaces.
func (b *Batch) checkRange(i int, values []float64) error {
	bounded, ok := boundedChannels[b.space]
	if !ok || !bounded[i] {
		return nil
	}
	return checkUnit(b.space, spaceChannels[b.space][i], values)
}

// checkUnit accepts values in [0,1] and NaN.
func checkUnit(s Space, channel string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v < 0 || v > 1 {
			return invalid(s, channel, "value %v at index %d is outside [0,1]", v, i)
		}
	}
	return nil
}

func checkGamma(s Space, gamma []float64, n int) error {
	if len(gamma) != 1 && len(gamma) != n {
		return invalid(s, "gamma", "has %d values, want 1 or %d", len(gamma), n)
	}
	for _, g := range gamma {
		if math.IsNaN(g) || math.IsInf(g, 0) || g <= 0 {
			return invalid(s, "gamma", "must be positive and finite, got %v", g)
		}
	}
	return nil
}

// Space returns the current representation.
func (b *Batch) Space() Space {
	return b.space
}

// Len returns the number of colors.
func (b *Batch) Len() int {
	if b.space == Hex {
		return len(b.hex)
	}
	return len(b.ch[0])
}

// Channels returns the channel names of the current space.
func (b *Batch) Channels() []string {
	return b.space.Channels()
}

// Clone returns a deep copy of b.
func (b *Batch) Clone() *Batch {
	c := &Batch{
		space:      b.space,
		alpha:      colorlib.Clone(b.alpha),
		whitepoint: b.whitepoint,
		gamma:      colorlib.Clone(b.gamma),
	}
	for i := range b.ch {
		c.ch[i] = colorlib.Clone(b.ch[i])
	}
	if b.hex != nil {
		c.hex = append([]string(nil), b.hex...)
	}
	return c
}
