package palette

import (
	"fmt"
	"math"

	"github.com/opd-ai/go-colorspace/pkg/colorspace"
)

// DefaultN is the number of colors produced when neither the caller nor
// the settings give a count.
const DefaultN = 10

// Palette is a validated palette definition. It is immutable and safe for
// concurrent use.
type Palette struct {
	kind     Kind
	settings Settings
	// span gives the hue range of a qualitative palette whose h2 is unset.
	span func(n int) float64
}

// params holds the resolved trajectory parameters.
type params struct {
	h1, h2, c1, c2, l1, l2, p1, p2 float64
	cmax                           float64
	hasH2, hasCMax                 bool
	fixup, rev                     bool
	alpha                          float64
}

// qualitativeSpan spreads n hues over [h1, h1+360n/(n+1)] so the first and
// last colors stay apart on the hue circle.
func qualitativeSpan(n int) float64 {
	return 360 * float64(n) / float64(n+1)
}

// rainbowSpan matches qualitativeSpan with the end pulled in to
// 360(n-1)/n, truncated to whole degrees.
func rainbowSpan(n int) float64 {
	return math.Trunc(360 * float64(n-1) / float64(n))
}

// New validates s for the given kind. Unset secondary endpoints (h2, c2,
// l2, p2) fall back to their primary counterparts; unset primaries use the
// kind defaults. A qualitative palette without h2 spreads its hues over
// 360·n/(n+1) degrees.
func New(kind Kind, s Settings) (*Palette, error) {
	return newPalette(kind, s, qualitativeSpan)
}

func newPalette(kind Kind, s Settings, span func(int) float64) (*Palette, error) {
	if _, ok := kindNames[kind]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	p := &Palette{kind: kind, settings: s.Clone(), span: span}
	if _, err := p.resolve(); err != nil {
		return nil, err
	}
	return p, nil
}

// Kind returns the palette family.
func (p *Palette) Kind() Kind {
	return p.kind
}

// Settings returns a copy of the palette's settings.
func (p *Palette) Settings() Settings {
	return p.settings.Clone()
}

// N returns the default color count.
func (p *Palette) N() int {
	if p.settings.N != nil {
		return *p.settings.N
	}
	return DefaultN
}

// With returns a new palette whose settings are p's overridden by over.
func (p *Palette) With(over Settings) (*Palette, error) {
	return newPalette(p.kind, p.settings.Merge(over), p.span)
}

func value(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func flag(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// defaults per kind: h1, c1, l1, p1.
var kindDefaults = map[Kind][4]float64{
	Qualitative: {0, 50, 70, 1},
	Sequential:  {260, 80, 30, 1.5},
	Diverging:   {260, 80, 30, 1.5},
}

// resolve applies defaults and checks the parameter combination.
func (p *Palette) resolve() (params, error) {
	s := p.settings
	def := kindDefaults[p.kind]

	var r params
	r.h1 = value(s.H1, def[0])
	r.c1 = value(s.C1, def[1])
	r.l1 = value(s.L1, def[2])
	r.p1 = value(s.P1, def[3])
	r.h2, r.hasH2 = value(s.H2, r.h1), s.H2 != nil
	r.c2 = value(s.C2, r.c1)
	r.l2 = value(s.L2, r.l1)
	r.p2 = value(s.P2, r.p1)
	r.cmax, r.hasCMax = value(s.CMax, 0), s.CMax != nil
	r.fixup = flag(s.Fixup, true)
	r.rev = flag(s.Rev, false)
	r.alpha = value(s.Alpha, 1)

	for key, v := range map[string]float64{
		"h1": r.h1, "h2": r.h2, "c1": r.c1, "c2": r.c2, "l1": r.l1,
		"l2": r.l2, "p1": r.p1, "p2": r.p2, "cmax": r.cmax, "alpha": r.alpha,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return params{}, badSetting(key, "value %v is not finite", v)
		}
	}
	if r.alpha < 0 || r.alpha > 1 {
		return params{}, badSetting("alpha", "must be in [0,1], got %v", r.alpha)
	}
	if s.N != nil && *s.N <= 0 {
		return params{}, badSetting("n", "must be positive, got %d", *s.N)
	}
	if r.hasCMax {
		if p.kind != Sequential {
			return params{}, badSetting("cmax", "only supported by sequential palettes")
		}
		if _, err := r.turningPoint(); err != nil {
			return params{}, err
		}
	}
	return r, nil
}

// turningPoint locates cmax on the [0,1] chroma trajectory.
func (r params) turningPoint() (float64, error) {
	j := 1 / (1 + math.Abs(r.cmax-r.c1)/math.Abs(r.cmax-r.c2))
	if math.IsNaN(j) || j <= 0 || j >= 1 {
		return 0, badSetting("cmax", "must differ from c1 (%v) and c2 (%v), got %v", r.c1, r.c2, r.cmax)
	}
	return j, nil
}

// Generate evaluates the palette for n colors and returns them as a
// polarLUV batch. The reverse flag is applied; fixup is not, since it only
// matters when encoding.
func (p *Palette) Generate(n int) (*colorspace.Batch, error) {
	if n <= 0 {
		return nil, badSetting("n", "must be positive, got %d", n)
	}
	r, err := p.resolve()
	if err != nil {
		return nil, err
	}

	var h, c, l []float64
	switch p.kind {
	case Qualitative:
		h2 := r.h2
		if !r.hasH2 {
			h2 = r.h1 + p.span(n)
		}
		h, c, l = linspace(r.h1, h2, n), repeat(r.c1, n), repeat(r.l1, n)
	case Sequential:
		h, c, l, err = r.sequential(n)
	case Diverging:
		h, c, l = r.diverging(n)
	}
	if err != nil {
		return nil, err
	}

	var opts []colorspace.Option
	if r.alpha < 1 {
		opts = append(opts, colorspace.WithAlpha(repeat(r.alpha, n)))
	}
	b, err := colorspace.NewHCL(h, c, l, opts...)
	if err != nil {
		return nil, err
	}
	if r.rev {
		b = b.Reversed()
	}
	return b, nil
}

// Colors returns n hex colors, honoring the fixup and rev settings.
// Colors that cannot be encoded without fixup are empty strings.
func (p *Palette) Colors(n int) ([]string, error) {
	b, err := p.Generate(n)
	if err != nil {
		return nil, err
	}
	return b.Colors(flag(p.settings.Fixup, true), false), nil
}

func (r params) sequential(n int) (h, c, l []float64, err error) {
	t := linspace(1, 0, n)
	h, c, l = make([]float64, n), make([]float64, n), make([]float64, n)

	var j float64
	if r.hasCMax {
		if j, err = r.turningPoint(); err != nil {
			return nil, nil, nil, err
		}
	}
	for i, ti := range t {
		l[i] = r.l2 - (r.l2-r.l1)*math.Pow(ti, r.p2)
		h[i] = r.h2 - (r.h2-r.h1)*ti
		tc := math.Pow(ti, r.p1)
		switch {
		case !r.hasCMax:
			c[i] = r.c2 - (r.c2-r.c1)*tc
		case tc <= j:
			c[i] = r.c2 - (r.c2-r.cmax)*tc/j
		default:
			c[i] = r.cmax - (r.cmax-r.c1)*(tc-j)/(1-j)
		}
	}
	return h, c, l, nil
}

func (r params) diverging(n int) (h, c, l []float64) {
	t := linspace(1, -1, n)
	h, c, l = make([]float64, n), make([]float64, n), make([]float64, n)
	for i, ti := range t {
		a := math.Abs(ti)
		l[i] = r.l2 - (r.l2-r.l1)*math.Pow(a, r.p2)
		c[i] = math.Max(0.1, r.c1*math.Pow(a, r.p1))
		if ti > 0 {
			h[i] = r.h1
		} else {
			h[i] = r.h2
		}
	}
	return h, c, l
}
