// Package config provides parsing of palette definition files for go-colorspace.
// It defines types for both the legacy INI (.conf) and Lua palette formats,
// enabling parsing, validation and migration of user-defined palettes.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/opd-ai/go-colorspace/pkg/palette"
)

// ErrNoPalettes is returned when a file defines its header but no palettes.
var ErrNoPalettes = errors.New("no palettes defined")

// ErrParserClosed is returned when a closed parser is used.
var ErrParserClosed = errors.New("parser is closed")

// PaletteFile is one parsed palette definition file. All palettes in a file
// share a display group and a generator method.
type PaletteFile struct {
	// Type is the display group, e.g. "Sequential (multi-hue)".
	Type string
	// Method names the generator: qualitative_hcl, rainbow_hcl,
	// sequential_hcl or diverging_hcl.
	Method string
	// Parameter lists the settings keys the palettes of this file adjust.
	Parameter []string
	// Palettes holds the definitions in file order.
	Palettes []PaletteDef
	// Source is the path the file was read from, empty for in-memory content.
	Source string
}

// PaletteDef is a single named palette.
type PaletteDef struct {
	// Name is the palette name, unique within a registry.
	Name string
	// Settings maps settings keys to string, bool, int or float64 values
	// as accepted by palette.ParseSettings.
	Settings map[string]any
	// Line is the line of the section header in INI files, 0 for Lua.
	Line int
}

// Kind resolves the file's method to a palette kind.
func (f *PaletteFile) Kind() (palette.Kind, error) {
	k, ok := palette.ParseKind(f.Method)
	if !ok {
		return 0, fmt.Errorf("%w: %q", palette.ErrUnknownKind, f.Method)
	}
	return k, nil
}

// Names returns the palette names in file order.
func (f *PaletteFile) Names() []string {
	names := make([]string, len(f.Palettes))
	for i, d := range f.Palettes {
		names[i] = d.Name
	}
	return names
}

// Find returns the palette with the given name, compared case-insensitively.
func (f *PaletteFile) Find(name string) (PaletteDef, bool) {
	for _, d := range f.Palettes {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return PaletteDef{}, false
}

// Build validates a definition against method and returns the palette.
func (d PaletteDef) Build(method string) (*palette.Palette, error) {
	p, err := palette.FromSettings(method, d.Settings)
	if err != nil {
		return nil, fmt.Errorf("palette %q: %w", d.Name, err)
	}
	return p, nil
}

// Build builds every palette of the file in order.
func (f *PaletteFile) Build() ([]*palette.Palette, error) {
	if len(f.Palettes) == 0 {
		return nil, ErrNoPalettes
	}
	out := make([]*palette.Palette, 0, len(f.Palettes))
	for _, d := range f.Palettes {
		p, err := d.Build(f.Method)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// splitList splits a comma separated list, trimming blanks and dropping
// empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
