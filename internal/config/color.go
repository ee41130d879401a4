package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/opd-ai/go-colorspace/internal/colorlib"
)

// ErrInvalidColor is returned by ParseColor for unrecognized input.
var ErrInvalidColor = errors.New("invalid color")

// ParseColor normalizes a user-supplied color to "#RRGGBB", or "#RRGGBBAA"
// when it carries transparency, with AA the opacity in percent (00 to 99).
// Accepted forms are SVG/CSS color names ("steelblue"), #RGB, #RGBA (hex
// alpha digit), #RRGGBB, #RRGGBBAA (decimal AA), rgb(r, g, b) and
// rgba(r, g, b, a) with channels in 0..255 and a in [0,1].
func ParseColor(s string) (string, error) {
	in := strings.TrimSpace(s)
	lower := strings.ToLower(in)

	switch {
	case strings.HasPrefix(lower, "#"):
		return parseHexColor(in)
	case strings.HasPrefix(lower, "rgb"):
		return parseRGBFunc(lower)
	}

	if c, ok := colornames.Map[strings.ReplaceAll(lower, " ", "")]; ok {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHexColor(s string) (string, error) {
	digits := s[1:]
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}
	switch len(digits) {
	case 3, 4:
		var b strings.Builder
		for _, r := range digits[:3] {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		if len(digits) == 4 {
			nib, _ := strconv.ParseUint(digits[3:], 16, 8)
			b.WriteString(colorlib.AlphaSuffix(float64(nib) / 15))
		}
		digits = b.String()
	case 6:
	case 8:
		if !colorlib.ValidHex(s) {
			return "", fmt.Errorf("%w: %q: alpha must be two decimal digits", ErrInvalidColor, s)
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return "#" + strings.ToUpper(digits), nil
}

func parseRGBFunc(s string) (string, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	fn := strings.TrimSpace(s[:open])
	args := strings.Split(s[open+1:len(s)-1], ",")

	want := 3
	if fn == "rgba" {
		want = 4
	} else if fn != "rgb" {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(args) != want {
		return "", fmt.Errorf("%w: %s() takes %d arguments", ErrInvalidColor, fn, want)
	}

	out := "#"
	for _, a := range args[:3] {
		v, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil || v < 0 || v > 255 {
			return "", fmt.Errorf("%w: channel %q must be an integer in 0..255", ErrInvalidColor, strings.TrimSpace(a))
		}
		out += fmt.Sprintf("%02X", v)
	}
	if want == 4 {
		alpha, err := strconv.ParseFloat(strings.TrimSpace(args[3]), 64)
		if err != nil || alpha < 0 || alpha > 1 {
			return "", fmt.Errorf("%w: alpha %q must be in [0,1]", ErrInvalidColor, strings.TrimSpace(args[3]))
		}
		out += colorlib.AlphaSuffix(alpha)
	}
	return out, nil
}

// SplitColors splits a comma separated color list, keeping the commas
// inside rgb()/rgba() arguments.
func SplitColors(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				if part := strings.TrimSpace(s[start:i]); part != "" {
					out = append(out, part)
				}
				start = i + 1
			}
		}
	}
	if part := strings.TrimSpace(s[start:]); part != "" {
		out = append(out, part)
	}
	return out
}
