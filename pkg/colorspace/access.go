package colorspace

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/opd-ai/go-colorspace/internal/colorlib"
)

// channelIndex returns the storage index of a channel in the current space.
func (b *Batch) channelIndex(name string) (int, bool) {
	if b.space == Hex {
		return 0, false
	}
	i := slices.Index(spaceChannels[b.space], name)
	return i, i >= 0
}

// Get returns a copy of the named channel. "alpha" addresses the alpha
// vector. ok is false for unknown channels, for alpha when the batch has
// none, and for numeric access to a Hex batch.
func (b *Batch) Get(channel string) ([]float64, bool) {
	if channel == "alpha" {
		return colorlib.Clone(b.alpha), b.alpha != nil
	}
	i, ok := b.channelIndex(channel)
	if !ok {
		return nil, false
	}
	return colorlib.Clone(b.ch[i]), true
}

// Set replaces the named channel. values must have Len elements and respect
// the [0,1] range of bounded channels.
func (b *Batch) Set(channel string, values []float64) error {
	i, ok := b.channelIndex(channel)
	if !ok && channel != "alpha" {
		return invalid(b.space, channel, "no such channel")
	}
	if len(values) != b.Len() {
		return invalid(b.space, channel, "has %d values, want %d", len(values), b.Len())
	}
	if channel == "alpha" {
		if err := checkUnit(b.space, "alpha", values); err != nil {
			return err
		}
		b.alpha = colorlib.Clone(values)
		return nil
	}
	if err := b.checkRange(i, values); err != nil {
		return err
	}
	b.ch[i] = colorlib.Clone(values)
	return nil
}

// Hex returns the #RRGGBB codes of a Hex batch, without alpha suffixes.
// It returns nil for other spaces; use Colors to encode those.
func (b *Batch) Hex() []string {
	if b.space != Hex {
		return nil
	}
	return append([]string(nil), b.hex...)
}

// SetHex replaces the colors of a Hex batch. Invalid strings become
// invalid entries. Embedded AA suffixes update the alpha vector.
func (b *Batch) SetHex(hex []string) error {
	if b.space != Hex {
		return invalid(b.space, "hex", "batch is not in hex space")
	}
	if len(hex) != b.Len() {
		return invalid(b.space, "hex", "has %d values, want %d", len(hex), b.Len())
	}
	codes, alpha, _ := splitHex(hex)
	b.hex = codes
	switch {
	case alpha == nil:
	case b.alpha == nil:
		b.alpha = alpha
	default:
		for i, s := range hex {
			if colorlib.ValidHex(s) && len(s) == 9 {
				b.alpha[i] = alpha[i]
			}
		}
	}
	return nil
}

// HasAlpha reports whether the batch carries an alpha vector.
func (b *Batch) HasAlpha() bool {
	return b.alpha != nil
}

// Alpha returns a copy of the alpha vector, or nil.
func (b *Batch) Alpha() []float64 {
	return colorlib.Clone(b.alpha)
}

// DropAlpha removes the alpha vector, making every color opaque.
func (b *Batch) DropAlpha() {
	b.alpha = nil
}

// AdjustTransparency returns a copy of b with a new alpha vector. nil
// removes alpha; one value applies to every color; otherwise there must be
// one value per color. Values must be in [0,1].
func (b *Batch) AdjustTransparency(alpha []float64) (*Batch, error) {
	out := b.Clone()
	if alpha == nil {
		out.alpha = nil
		return out, nil
	}
	a, err := colorlib.Recycle(alpha, b.Len())
	if err != nil {
		return nil, invalid(b.space, "alpha", "%v", err)
	}
	for i, v := range a {
		if math.IsNaN(v) {
			return nil, invalid(b.space, "alpha", "value at index %d is NaN", i)
		}
	}
	if err := checkUnit(b.space, "alpha", a); err != nil {
		return nil, err
	}
	out.alpha = a
	return out, nil
}

// AlphaBytes returns alpha scaled to 0..255 and rounded, or nil when the
// batch has no alpha. NaN counts as opaque.
func (b *Batch) AlphaBytes() []int {
	if b.alpha == nil {
		return nil
	}
	out := make([]int, len(b.alpha))
	for i, a := range b.alpha {
		if math.IsNaN(a) {
			a = 1
		}
		out[i] = int(math.Round(a * 255))
	}
	return out
}

// AlphaSuffixes returns the hex alpha suffix of each color ("" when
// opaque), or nil when the batch has no alpha.
func (b *Batch) AlphaSuffixes() []string {
	if b.alpha == nil {
		return nil
	}
	out := make([]string, len(b.alpha))
	for i, a := range b.alpha {
		out[i] = colorlib.AlphaSuffix(a)
	}
	return out
}

// Whitepoint returns the reference white of this batch.
func (b *Batch) Whitepoint() Whitepoint {
	return b.whitepoint
}

// SetWhitepoint replaces the reference white. To change a single component,
// read the current value with Whitepoint first.
func (b *Batch) SetWhitepoint(wp Whitepoint) error {
	if err := wp.Validate(); err != nil {
		return invalid(b.space, "", "%v", err)
	}
	b.whitepoint = wp
	return nil
}

// Gamma returns the sRGB transfer exponent(s).
func (b *Batch) Gamma() []float64 {
	return colorlib.Clone(b.gamma)
}

// SetGamma replaces the transfer exponent, either one value or one per color.
func (b *Batch) SetGamma(gamma ...float64) error {
	if err := checkGamma(b.space, gamma, b.Len()); err != nil {
		return err
	}
	b.gamma = colorlib.Clone(gamma)
	return nil
}

// At returns a one-color batch holding element i.
func (b *Batch) At(i int) (*Batch, error) {
	if i < 0 || i >= b.Len() {
		return nil, invalid(b.space, "", "index %d out of range [0,%d)", i, b.Len())
	}
	return b.subset([]int{i}), nil
}

// Reversed returns a copy of b with the colors in reverse order.
func (b *Batch) Reversed() *Batch {
	n := b.Len()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = n - 1 - i
	}
	return b.subset(idx)
}

// subset copies the elements at idx into a new batch.
func (b *Batch) subset(idx []int) *Batch {
	pick := func(v []float64) []float64 {
		if v == nil {
			return nil
		}
		out := make([]float64, len(idx))
		for k, i := range idx {
			out[k] = v[i]
		}
		return out
	}
	out := &Batch{
		space:      b.space,
		alpha:      pick(b.alpha),
		whitepoint: b.whitepoint,
		gamma:      colorlib.Clone(b.gamma),
	}
	if len(b.gamma) > 1 {
		out.gamma = pick(b.gamma)
	}
	for c := range b.ch {
		out.ch[c] = pick(b.ch[c])
	}
	if b.hex != nil {
		out.hex = make([]string, len(idx))
		for k, i := range idx {
			out.hex[k] = b.hex[i]
		}
	}
	return out
}

// Colors encodes a copy of the batch as hex strings. Elements with alpha
// below 1 get an AA suffix. Invalid elements are returned as empty strings.
func (b *Batch) Colors(fixup, reverse bool) []string {
	src := b
	if reverse {
		src = b.Reversed()
	}
	hb, err := src.Convert(Hex, fixup)
	if err != nil {
		// Every space routes to Hex, so this only happens for a corrupted batch.
		return make([]string, b.Len())
	}
	return hb.withAlpha()
}

// withAlpha returns the hex codes of a Hex batch with alpha suffixes.
func (b *Batch) withAlpha() []string {
	out := make([]string, len(b.hex))
	for i, s := range b.hex {
		out[i] = s
		if s != colorlib.InvalidHex && b.alpha != nil {
			out[i] += colorlib.AlphaSuffix(b.alpha[i])
		}
	}
	return out
}

// String renders the batch as a table, one row per color.
func (b *Batch) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s color object (%d colors)\n", b.space, b.Len())

	cols := b.Channels()
	if b.alpha != nil {
		cols = append(cols, "alpha")
	}
	sb.WriteString("     ")
	for _, c := range cols {
		if b.space == Hex && c == "hex" {
			fmt.Fprintf(&sb, " %9s", c)
			continue
		}
		fmt.Fprintf(&sb, " %8s", c)
	}
	sb.WriteByte('\n')

	for i, n := 0, b.Len(); i < n; i++ {
		fmt.Fprintf(&sb, "%4d:", i+1)
		if b.space == Hex {
			s := b.hex[i]
			if s == colorlib.InvalidHex {
				s = "NA"
			}
			fmt.Fprintf(&sb, " %9s", s)
		} else {
			for c := range b.ch {
				sb.WriteString(formatCell(b.ch[c][i]))
			}
		}
		if b.alpha != nil {
			sb.WriteString(formatCell(b.alpha[i]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return fmt.Sprintf(" %8s", "NA")
	}
	return fmt.Sprintf(" %8.2f", v)
}
