package palette

import "strings"

// Option adjusts the settings built by the HCL constructors.
type Option func(*Settings)

// WithN sets the default color count.
func WithN(n int) Option {
	return func(s *Settings) { s.N = Int(n) }
}

// WithFixup selects clamping (true, the default) or invalidation of
// out-of-gamut colors.
func WithFixup(fixup bool) Option {
	return func(s *Settings) { s.Fixup = Bool(fixup) }
}

// WithRev reverses the palette order.
func WithRev(rev bool) Option {
	return func(s *Settings) { s.Rev = Bool(rev) }
}

// WithAlpha sets a constant opacity for every color.
func WithAlpha(alpha float64) Option {
	return func(s *Settings) { s.Alpha = Float(alpha) }
}

// WithDesc attaches a description.
func WithDesc(desc string) Option {
	return func(s *Settings) { s.Desc = desc }
}

func orDefault(v []float64, def ...float64) []float64 {
	if v == nil {
		return def
	}
	return v
}

func build(kind Kind, s Settings, span func(int) float64, opts []Option) (*Palette, error) {
	for _, opt := range opts {
		opt(&s)
	}
	return newPalette(kind, s, span)
}

// QualitativeHCL builds a qualitative palette. h holds one or two hues; a
// nil or single hue leaves h2 unset so the hues spread over 360·n/(n+1)
// degrees. c and l are single values and default to 50 and 70.
func QualitativeHCL(h, c, l []float64, opts ...Option) (*Palette, error) {
	var s Settings
	if h != nil {
		hv, err := coerce("h", h, 2, true)
		if err != nil {
			return nil, err
		}
		s.H1 = Float(hv[0])
		if len(h) > 1 {
			s.H2 = Float(hv[1])
		}
	}
	cv, err := coerce("c", orDefault(c, 50), 1, false)
	if err != nil {
		return nil, err
	}
	lv, err := coerce("l", orDefault(l, 70), 1, false)
	if err != nil {
		return nil, err
	}
	s.C1, s.L1 = Float(cv[0]), Float(lv[0])
	return build(Qualitative, s, qualitativeSpan, opts)
}

// RainbowHCL builds a qualitative palette at chroma c and luminance l with
// hues from start to end. A nil end spreads n hues over 360(n-1)/n degrees.
func RainbowHCL(c, l, start, end []float64, opts ...Option) (*Palette, error) {
	var s Settings
	for _, p := range []struct {
		key   string
		v     []float64
		def   float64
		field **float64
	}{
		{"c", c, 50, &s.C1},
		{"l", l, 70, &s.L1},
		{"start", start, 0, &s.H1},
	} {
		v, err := coerce(p.key, orDefault(p.v, p.def), 1, false)
		if err != nil {
			return nil, err
		}
		*p.field = Float(v[0])
	}
	if end != nil {
		v, err := coerce("end", end, 1, false)
		if err != nil {
			return nil, err
		}
		s.H2 = Float(v[0])
	}
	return build(Qualitative, s, rainbowSpan, opts)
}

// SequentialHCL builds a sequential palette. h, l and p take one or two
// values, recycled to two. c takes one or two values, or three to give
// c1, cmax and c2 for a chroma trajectory that peaks at cmax.
//
// Defaults are h 260, c [80, 30], l [30, 90] and p 1.5.
func SequentialHCL(h, c, l, p []float64, opts ...Option) (*Palette, error) {
	hv, err := coerce("h", orDefault(h, 260), 2, true)
	if err != nil {
		return nil, err
	}
	c = orDefault(c, 80, 30)
	var s Settings
	if len(c) >= 3 {
		cv, err := coerce("c", c, 3, false)
		if err != nil {
			return nil, err
		}
		s.C1, s.CMax, s.C2 = Float(cv[0]), Float(cv[1]), Float(cv[2])
	} else {
		cv, err := coerce("c", c, 2, true)
		if err != nil {
			return nil, err
		}
		s.C1, s.C2 = Float(cv[0]), Float(cv[1])
	}
	lv, err := coerce("l", orDefault(l, 30, 90), 2, true)
	if err != nil {
		return nil, err
	}
	pv, err := coerce("p", orDefault(p, 1.5), 2, true)
	if err != nil {
		return nil, err
	}
	s.H1, s.H2 = Float(hv[0]), Float(hv[1])
	s.L1, s.L2 = Float(lv[0]), Float(lv[1])
	s.P1, s.P2 = Float(pv[0]), Float(pv[1])
	return build(Sequential, s, qualitativeSpan, opts)
}

// DivergingHCL builds a diverging palette. h and l take one or two values,
// recycled to two; c and p take a single value, or two for p1 and p2.
//
// Defaults are h [260, 0], c 80, l [30, 90] and p 1.5.
func DivergingHCL(h, c, l, p []float64, opts ...Option) (*Palette, error) {
	hv, err := coerce("h", orDefault(h, 260, 0), 2, true)
	if err != nil {
		return nil, err
	}
	cv, err := coerce("c", orDefault(c, 80), 1, false)
	if err != nil {
		return nil, err
	}
	lv, err := coerce("l", orDefault(l, 30, 90), 2, true)
	if err != nil {
		return nil, err
	}
	pv, err := coerce("p", orDefault(p, 1.5), 2, true)
	if err != nil {
		return nil, err
	}
	s := Settings{
		H1: Float(hv[0]), H2: Float(hv[1]),
		C1: Float(cv[0]),
		L1: Float(lv[0]), L2: Float(lv[1]),
		P1: Float(pv[0]), P2: Float(pv[1]),
	}
	return build(Diverging, s, qualitativeSpan, opts)
}

// FromSettings builds a palette from a settings map of the given kind, as
// read from a palette file. The rainbow method name selects the rainbow
// hue span for qualitative palettes.
func FromSettings(method string, m map[string]any) (*Palette, error) {
	kind, ok := ParseKind(method)
	if !ok {
		return nil, &SettingError{Key: "method", Message: "unknown palette method " + method, Err: ErrUnknownKind}
	}
	s, err := ParseSettings(m)
	if err != nil {
		return nil, err
	}
	span := qualitativeSpan
	if strings.EqualFold(strings.TrimSpace(method), "rainbow_hcl") {
		span = rainbowSpan
	}
	return newPalette(kind, s, span)
}
