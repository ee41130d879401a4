// Package colorspace provides batches of colors that can be converted between
// ten color spaces: CIEXYZ, CIELUV, CIELAB, polar LUV (HCL), polar LAB,
// linear RGB, sRGB, HSV, HLS and hex strings.
//
// A Batch holds N colors in one space. Conversions follow fixed routes
// through adjacent spaces and carry an optional alpha channel along:
//
//	b, err := colorspace.NewHCL([]float64{260}, []float64{80}, []float64{30})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(b.Colors(true, false)) // [#023FA5]
package colorspace

import (
	"strconv"
	"strings"

	"github.com/opd-ai/go-colorspace/internal/colorlib"
)

// Space identifies a color representation. The zero value is not a valid space.
type Space int

// Supported color spaces.
const (
	CIEXYZ Space = iota + 1
	CIELUV
	CIELAB
	PolarLUV
	PolarLAB
	RGB
	SRGB
	HSV
	HLS
	Hex
)

// HCL is the common name of polar CIELUV.
const HCL = PolarLUV

var spaceNames = [...]string{
	CIEXYZ:   "CIEXYZ",
	CIELUV:   "CIELUV",
	CIELAB:   "CIELAB",
	PolarLUV: "polarLUV",
	PolarLAB: "polarLAB",
	RGB:      "RGB",
	SRGB:     "sRGB",
	HSV:      "HSV",
	HLS:      "HLS",
	Hex:      "hex",
}

var spaceChannels = [...][]string{
	CIEXYZ:   {"X", "Y", "Z"},
	CIELUV:   {"L", "U", "V"},
	CIELAB:   {"L", "A", "B"},
	PolarLUV: {"H", "C", "L"},
	PolarLAB: {"L", "C", "H"},
	RGB:      {"R", "G", "B"},
	SRGB:     {"R", "G", "B"},
	HSV:      {"H", "S", "V"},
	HLS:      {"H", "L", "S"},
	Hex:      {"hex"},
}

// boundedChannels lists channels that must stay within [0,1] at construction.
var boundedChannels = map[Space][]bool{
	RGB:  {true, true, true},
	SRGB: {true, true, true},
	HSV:  {false, true, true},
	HLS:  {false, true, true},
}

// Spaces returns all supported spaces in declaration order.
func Spaces() []Space {
	return []Space{CIEXYZ, CIELUV, CIELAB, PolarLUV, PolarLAB, RGB, SRGB, HSV, HLS, Hex}
}

// Valid reports whether s is one of the supported spaces.
func (s Space) Valid() bool {
	return s >= CIEXYZ && s <= Hex
}

// String returns the conventional name of the space.
func (s Space) String() string {
	if !s.Valid() {
		return "Space(" + strconv.Itoa(int(s)) + ")"
	}
	return spaceNames[s]
}

// Channels returns the channel names of s in storage order.
func (s Space) Channels() []string {
	if !s.Valid() {
		return nil
	}
	return append([]string(nil), spaceChannels[s]...)
}

// deviceDependent reports whether s is one of the bounded device spaces.
func (s Space) deviceDependent() bool {
	switch s {
	case RGB, SRGB, HSV, HLS:
		return true
	}
	return false
}

// ParseSpace translates a space name into a Space. Matching is
// case-insensitive; "HCL" and "hexcols" are accepted as aliases.
func ParseSpace(name string) (Space, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "hcl":
		return PolarLUV, true
	case "hexcols":
		return Hex, true
	}
	for _, s := range Spaces() {
		if strings.ToLower(spaceNames[s]) == key {
			return s, true
		}
	}
	return 0, false
}

// Whitepoint is the reference white used by the CIE transforms.
type Whitepoint = colorlib.Whitepoint

// D65 returns the default whitepoint (95.047, 100.000, 108.883).
func D65() Whitepoint {
	return colorlib.D65()
}

// DefaultGamma is the default sRGB transfer exponent.
const DefaultGamma = colorlib.DefaultGamma
