// Package palette generates HCL color palettes.
//
// A Palette is built from a Kind and a flat Settings record (the same
// h1/h2/c1/c2/cmax/l1/l2/p1/p2/n/fixup/rev keys used by palette definition
// files). Generate evaluates the palette trajectory for n colors and returns
// a polarLUV batch; Colors projects it to hex strings.
//
//	p, err := palette.DivergingHCL([]float64{260, 0}, []float64{80}, []float64{30, 90}, []float64{1.5})
//	if err != nil {
//		return err
//	}
//	hex, err := p.Colors(5) // #023FA5 #A1A6C8 #E2E2E2 #CA9CA4 #8E063B
package palette

import "strings"

// Kind identifies a palette family.
type Kind int

const (
	// Qualitative palettes vary hue at constant chroma and luminance.
	Qualitative Kind = iota + 1
	// Sequential palettes run monotonically from a dark, colorful end to a
	// light, pale one.
	Sequential
	// Diverging palettes join two sequential ramps at a light neutral center.
	Diverging
)

var kindNames = map[Kind]string{
	Qualitative: "qualitative",
	Sequential:  "sequential",
	Diverging:   "diverging",
}

// kindAliases maps lower-cased names used by palette files and the
// command line onto kinds.
var kindAliases = map[string]Kind{
	"qualitative":             Qualitative,
	"qualitative_hcl":         Qualitative,
	"rainbow_hcl":             Qualitative,
	"sequential":              Sequential,
	"sequential_hcl":          Sequential,
	"sequential (single-hue)": Sequential,
	"sequential (multi-hue)":  Sequential,
	"diverging":               Diverging,
	"diverge_hcl":             Diverging,
	"diverging_hcl":           Diverging,
}

// Kinds returns all palette kinds.
func Kinds() []Kind {
	return []Kind{Qualitative, Sequential, Diverging}
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind resolves a kind name, a palette method name such as
// "diverge_hcl", or a palette file type such as "Sequential (multi-hue)".
func ParseKind(s string) (Kind, bool) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}
