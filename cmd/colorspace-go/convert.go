package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/opd-ai/go-colorspace/internal/config"
	"github.com/opd-ai/go-colorspace/pkg/colorspace"
)

// parseBatch builds a batch from -convert input. Hex input accepts color
// names, #hex and rgb() forms; numeric spaces take a/b/c triples.
func parseBatch(input string, from colorspace.Space) (*colorspace.Batch, error) {
	items := config.SplitColors(input)
	if len(items) == 0 {
		return nil, fmt.Errorf("no colors given")
	}

	if from == colorspace.Hex {
		hex := make([]string, len(items))
		for i, item := range items {
			c, err := config.ParseColor(item)
			if err != nil {
				return nil, err
			}
			hex[i] = c
		}
		return colorspace.NewHex(hex)
	}

	var ch [3][]float64
	for _, item := range items {
		parts := strings.Split(item, "/")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%s color %q: want three values a/b/c", from, item)
		}
		for i, part := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("%s color %q: %w", from, item, err)
			}
			ch[i] = append(ch[i], v)
		}
	}
	return colorspace.New(from, ch[0], ch[1], ch[2])
}

func runConvert(o *options, stdout, stderr io.Writer) int {
	from, ok := colorspace.ParseSpace(o.from)
	if !ok {
		fmt.Fprintf(stderr, "Unknown color space %q\n", o.from)
		return 2
	}
	to, ok := colorspace.ParseSpace(o.to)
	if !ok {
		fmt.Fprintf(stderr, "Unknown color space %q\n", o.to)
		return 2
	}

	b, err := parseBatch(o.convert, from)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid colors: %v\n", err)
		return 1
	}

	if to == colorspace.Hex {
		printColors(stdout, b.Colors(o.fixup, o.rev))
		return 0
	}
	if o.rev {
		b = b.Reversed()
	}
	out, err := b.Convert(to, o.fixup)
	if err != nil {
		fmt.Fprintf(stderr, "Conversion failed: %v\n", err)
		return 1
	}
	fmt.Fprint(stdout, out.String())
	return 0
}
